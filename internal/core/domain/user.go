package domain

const (
	RoleAdmin    = "admin"
	RoleOwner    = "owner"
	RoleManager  = "manager"
	RoleSales    = "sales"
	RoleDesigner = "designer"
)

// User is the cached identity of the logged-in operator, as returned by the
// backend on login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// Session is the client-held proof of authentication. Token and User are
// always present together; the zero value is the empty session.
type Session struct {
	Token string
	User  *User
}

// Active reports whether both halves of the session are present.
func (s Session) Active() bool {
	return s.Token != "" && s.User != nil
}
