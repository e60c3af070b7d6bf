package repositories

import (
	"context"
	"database/sql"
	"errors"

	"reviewsBack/internal/models"
)

// UserRepository reads the externally managed users table. This service does
// not own user records; the lookup exists only so tokens issued for deleted
// or deactivated users can be rejected.
type UserRepository struct {
	DB *sql.DB
}

// CheckUserActive reports whether the user behind a verified token still
// exists and is active. When the lookup itself fails (table missing, store
// unavailable) it returns UserStatusUnknown with the underlying error so the
// caller can decide to trust the token claim instead of failing the request.
func (r *UserRepository) CheckUserActive(ctx context.Context, userID int) (models.UserStatus, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`SELECT id FROM users WHERE id = $1 AND is_active = TRUE`, userID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserStatusInactive, nil
		}
		return models.UserStatusUnknown, err
	}
	return models.UserStatusActive, nil
}
