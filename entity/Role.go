package entity

// Role is the fixed set of access groups. Every user holds exactly one.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleDelivery Role = "delivery"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleManager, RoleDelivery, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (u *User) IsCustomer() bool { return u.Role == RoleCustomer }
func (u *User) IsManager() bool  { return u.Role == RoleManager }
func (u *User) IsDelivery() bool { return u.Role == RoleDelivery }
func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
