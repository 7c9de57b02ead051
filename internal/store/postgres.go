package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// userRepo implements UserRepository.
type userRepo struct {
	pool *pgxpool.Pool
}

const userByIDQuery = `
SELECT login, given_name, surname
FROM users
WHERE context_id = $1 AND id = $2`

func (r *userRepo) GetByID(ctx context.Context, contextID, userID int) (*User, error) {
	defer observeDB("db.user_by_id")()

	user := &User{ID: userID, ContextID: contextID}
	err := r.pool.QueryRow(ctx, userByIDQuery, contextID, userID).
		Scan(&user.Login, &user.GivenName, &user.Surname)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query user %d in context %d: %w", userID, contextID, err)
	}
	return user, nil
}
