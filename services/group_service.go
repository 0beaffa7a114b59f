package services

import (
	"errors"

	"github.com/PeterHwu/bar-api/entity"
	"github.com/PeterHwu/bar-api/pkg/apperr"
	"github.com/PeterHwu/bar-api/repository"
	"gorm.io/gorm"
)

// GroupService manages role membership over the fixed role set. Each user
// holds exactly one role, so "adding to the manager group" means switching
// the user's role.
type GroupService struct {
	Repo *repository.UserRepository
}

func NewGroupService(repo *repository.UserRepository) *GroupService {
	return &GroupService{Repo: repo}
}

func (s *GroupService) Members(roleName string) ([]entity.User, error) {
	role, ok := entity.ParseRole(roleName)
	if !ok {
		return nil, apperr.NotFound("group does not exist")
	}
	return s.Repo.ListByRole(role)
}

func (s *GroupService) findUser(username string) (*entity.User, error) {
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	user, err := s.Repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user does not exist")
		}
		return nil, err
	}
	return user, nil
}

// Promote moves a user into the manager or delivery group.
func (s *GroupService) Promote(username string, role entity.Role) (string, error) {
	if role != entity.RoleManager && role != entity.RoleDelivery {
		return "", apperr.Validation("role must be manager or delivery")
	}
	user, err := s.findUser(username)
	if err != nil {
		return "", err
	}
	if user.IsAdmin() {
		return "", apperr.Workflow("cannot change the role of an admin")
	}
	if user.Role == role {
		return "user " + username + " is already in the " + string(role) + " group", nil
	}
	if err := s.Repo.UpdateRole(user.ID, role); err != nil {
		return "", err
	}
	return "user " + username + " added to the " + string(role) + " group", nil
}

// Demote removes a user from the manager group, back to customer.
func (s *GroupService) Demote(username string) (string, error) {
	user, err := s.findUser(username)
	if err != nil {
		return "", err
	}
	if !user.IsManager() {
		return "user " + username + " is not in the manager group", nil
	}
	if err := s.Repo.UpdateRole(user.ID, entity.RoleCustomer); err != nil {
		return "", err
	}
	return "user " + username + " removed from the manager group", nil
}
