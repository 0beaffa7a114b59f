package services

import "github.com/PeterHwu/bar-api/entity"

// Principal is the authenticated actor, passed explicitly into every
// workflow call instead of being read from ambient request state.
type Principal struct {
	UserID uint
	Role   entity.Role
}

func (p Principal) IsCustomer() bool { return p.Role == entity.RoleCustomer }
func (p Principal) IsManager() bool  { return p.Role == entity.RoleManager }
func (p Principal) IsDelivery() bool { return p.Role == entity.RoleDelivery }
func (p Principal) IsAdmin() bool    { return p.Role == entity.RoleAdmin }
