package ports

import "context"

// Navigator moves the operator to another screen.
type Navigator interface {
	Redirect(ctx context.Context, path string)
}
