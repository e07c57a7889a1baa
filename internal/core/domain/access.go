package domain

// AccessState is a node of the route-guard state machine.
type AccessState string

const (
	AccessAnonymous     AccessState = "anonymous"
	AccessAuthenticated AccessState = "authenticated"
	AccessAuthorized    AccessState = "authorized"
	AccessDenied        AccessState = "denied"
)

// Route is a protected screen. An empty RequiredRole admits any
// authenticated operator.
type Route struct {
	Path         string
	RequiredRole string
}

// RouteAccessDecision is computed on every navigation attempt and never
// stored. Redirect is set only when State is AccessDenied.
type RouteAccessDecision struct {
	State    AccessState
	Redirect string
	Reason   string
	User     *User
}

// Allowed reports whether the requested view may be rendered.
func (d RouteAccessDecision) Allowed() bool {
	return d.State == AccessAuthorized
}
