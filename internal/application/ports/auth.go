package ports

import (
	"user-presence-api/internal/domain/user"
)

// Auth checks a login password against the stored hash and issues an access token.
type Auth interface {
	GenerateToken(u *user.User, requestPassword string) (string, error)
}
