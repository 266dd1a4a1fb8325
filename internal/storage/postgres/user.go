package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// GetOrCreateByUsername returns the id for username, creating an inactive
// account on first use. The trending sync uses this for its system owner, so
// the account must never become a login.
func (s *UserStore) GetOrCreateByUsername(ctx context.Context, username string) (int64, error) {
	exec := GetExecutor(ctx, s.db)

	var id int64
	err := exec.QueryRowxContext(ctx, `
		INSERT INTO users (username, active)
		VALUES ($1, FALSE)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`,
		username,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		err = exec.QueryRowxContext(ctx,
			"SELECT id FROM users WHERE username = $1",
			username,
		).Scan(&id)
	}

	if err != nil {
		return 0, err
	}

	return id, nil
}
