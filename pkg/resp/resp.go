package resp

import (
	"errors"
	"log"
	"net/http"

	"github.com/PeterHwu/bar-api/pkg/apperr"
	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"ok": true, "message": msg})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}

// Error maps a service error onto a status code via its apperr kind.
// Internal errors are logged server-side and surfaced as an opaque message.
func Error(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		ae = apperr.Internal(err)
	}
	switch ae.Kind {
	case apperr.KindValidation, apperr.KindWorkflow:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": ae.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": ae.Error()})
	case apperr.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": ae.Error()})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": ae.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
	}
}
