package store

import (
	"context"
	"time"

	"lingo-guard/app/models"
)

// UserStore is the backend-agnostic user registry. Both implementations match
// identities case-insensitively and return (nil, nil) when nothing matches.
// The auth service never branches on the backend in use.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Count(ctx context.Context) (int64, error)
	// LegacyPassword looks up the plaintext side table kept for pre-hash
	// accounts. Backends without such a table report absence.
	LegacyPassword(ctx context.Context, username string) (string, bool, error)
}
