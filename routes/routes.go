package routes

import (
	"github.com/PeterHwu/bar-api/configs"
	"github.com/PeterHwu/bar-api/controllers"
	"github.com/PeterHwu/bar-api/entity"
	"github.com/PeterHwu/bar-api/middlewares"
	"github.com/PeterHwu/bar-api/repository"
	"github.com/PeterHwu/bar-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	catalogSvc := services.NewCatalogService(catalogRepo)
	cartSvc := services.NewCartService(db, cartRepo, catalogRepo, userRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, userRepo, cfg.ClearCartOnOrder)
	groupSvc := services.NewGroupService(userRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	catalogCtrl := controllers.NewCatalogController(catalogSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	groupCtrl := controllers.NewGroupController(groupSvc)

	auth := func(roles ...entity.Role) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth(), authCtrl.Me)
	}

	// Catalog
	r.GET("/categories", auth(), catalogCtrl.ListCategories)
	r.POST("/categories", auth(entity.RoleManager), catalogCtrl.CreateCategory)

	menu := r.Group("/menu-items")
	{
		menu.GET("", auth(), catalogCtrl.ListMenuItems)
		menu.POST("", auth(entity.RoleManager), catalogCtrl.CreateMenuItem)
		menu.GET("/export", auth(entity.RoleManager), catalogCtrl.ExportMenuItems)
		menu.PUT("/:id", auth(entity.RoleManager), catalogCtrl.UpdateMenuItem)
		menu.PATCH("/:id", auth(entity.RoleManager), catalogCtrl.PatchFeatured)
	}

	// Cart and customer orders
	cart := r.Group("/cart", auth(entity.RoleCustomer))
	{
		cart.GET("/menu-items", cartCtrl.List)
		cart.POST("/menu-items", cartCtrl.Add)
		cart.DELETE("/menu-items", cartCtrl.Clear)
		cart.GET("/orders", orderCtrl.ListMine)
		cart.POST("/orders", orderCtrl.Place)
		cart.GET("/orders/:id/items", orderCtrl.ListMyItems)
	}

	// Delivery crew
	r.GET("/orders", auth(entity.RoleDelivery), orderCtrl.ListAssigned)
	r.PATCH("/orders/:id", auth(entity.RoleDelivery, entity.RoleManager, entity.RoleAdmin), orderCtrl.UpdateStatus)

	// Manager / admin
	r.POST("/assign-delivery-crew", auth(entity.RoleManager, entity.RoleAdmin), orderCtrl.AssignCrew)
	r.GET("/manage/orders", auth(entity.RoleManager, entity.RoleAdmin), orderCtrl.ListAll)

	// Group membership (admin only)
	groups := r.Group("/groups", auth(entity.RoleAdmin))
	{
		groups.GET("/:role/users", groupCtrl.Members)
		groups.POST("/manager/users", groupCtrl.AddManager)
		groups.DELETE("/manager/users", groupCtrl.RemoveManager)
		groups.POST("/delivery/users", groupCtrl.AddDelivery)
	}
}
