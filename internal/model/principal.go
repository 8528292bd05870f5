package model

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleOfficer UserRole = "OFFICER"
	UserRoleViewer  UserRole = "VIEWER"
)

// Principal is the authenticated admin-side caller.
type Principal struct {
	UserID string
	Name   string
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsOfficer() bool {
	return p.Role == UserRoleOfficer
}

// CanManage reports whether the principal may change complaint state.
func (p Principal) CanManage() bool {
	return p.IsAdmin() || p.IsOfficer()
}

// AuditName is the identity written into audit entries.
func (p Principal) AuditName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.UserID
}
