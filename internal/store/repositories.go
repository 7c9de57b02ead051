package store

import "context"

// UserRepository resolves user identities by context and user id.
type UserRepository interface {
	GetByID(ctx context.Context, contextID, userID int) (*User, error)
}
