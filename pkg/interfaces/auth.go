package interfaces

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned by AuthProvider when the request carries no
// authenticated user.
var ErrUnauthenticated = errors.New("unauthenticated")

// AuthProvider resolves the user behind a request context. Hosts plug their
// session or token middleware in through it; pages flagged requiresAuth are
// only served when CurrentUserID succeeds.
type AuthProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
}
