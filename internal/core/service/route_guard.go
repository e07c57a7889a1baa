package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/crmdesk/admin-console/internal/core/domain"
	"github.com/crmdesk/admin-console/internal/core/ports"
)

// RouteGuard decides, on every navigation attempt, whether a protected
// screen may be entered. Nothing is cached between attempts, and a denial
// never touches the session: a role mismatch keeps the operator logged in.
type RouteGuard struct {
	sessions      ports.SessionReader
	loginPath     string
	forbiddenPath string
	log           zerolog.Logger
}

// NewRouteGuard returns a guard redirecting anonymous operators to loginPath
// and role mismatches to forbiddenPath, or to loginPath when forbiddenPath is
// empty.
func NewRouteGuard(sessions ports.SessionReader, loginPath, forbiddenPath string, log zerolog.Logger) *RouteGuard {
	if forbiddenPath == "" {
		forbiddenPath = loginPath
	}
	return &RouteGuard{
		sessions:      sessions,
		loginPath:     loginPath,
		forbiddenPath: forbiddenPath,
		log:           log,
	}
}

// Evaluate runs the state machine:
//
//	Anonymous --no token or user--> Denied(login)
//	Anonymous --session--> Authenticated
//	Authenticated --role mismatch--> Denied(forbidden)
//	Authenticated --role ok or none required--> Authorized
func (g *RouteGuard) Evaluate(ctx context.Context, route domain.Route) domain.RouteAccessDecision {
	sess := g.sessions.Get(ctx)
	if !sess.Active() {
		return g.deny(route, domain.AccessAnonymous, g.loginPath, "no session")
	}

	if route.RequiredRole != "" && sess.User.Role != route.RequiredRole {
		return g.deny(route, domain.AccessAuthenticated, g.forbiddenPath, "role mismatch")
	}

	return domain.RouteAccessDecision{
		State: domain.AccessAuthorized,
		User:  sess.User,
	}
}

func (g *RouteGuard) deny(route domain.Route, from domain.AccessState, target, reason string) domain.RouteAccessDecision {
	g.log.Info().
		Str("route", route.Path).
		Str("required_role", route.RequiredRole).
		Str("from", string(from)).
		Str("redirect", target).
		Str("reason", reason).
		Msg("navigation denied")

	return domain.RouteAccessDecision{
		State:    domain.AccessDenied,
		Redirect: target,
		Reason:   reason,
	}
}
