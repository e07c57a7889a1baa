package ports

import (
	"context"

	"github.com/crmdesk/admin-console/internal/core/domain"
)

type RouteGuard interface {
	Evaluate(ctx context.Context, route domain.Route) domain.RouteAccessDecision
}
