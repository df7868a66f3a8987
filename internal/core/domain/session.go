package domain

// Role is the organisational role carried in a session.
type Role string

const (
	RoleSuperUser       Role = "SUPER_USER"
	RoleCenterHead      Role = "CENTER_HEAD"
	RoleAccountant      Role = "ACCOUNTANT"
	RolePropertyManager Role = "PROPERTY_MANAGER"
)

// Session identifies who is acting and for which company. It is passed explicitly to every
// component that talks to the server; nothing reads it from global state.
type Session struct {
	Token     string
	UserID    string
	Role      Role
	CompanyID string
}

// LoggedIn reports whether the session carries a bearer token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}
