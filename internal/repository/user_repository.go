package repository

import (
	"context"
	"errors"

	"supermanager/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a new user and returns the assigned ID.
func (r *userRepository) Create(ctx context.Context, user *model.User) (int64, error) {
	query := `
		INSERT INTO users (email, name, password_hash, verified, verification_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		user.Email, user.Name, user.PasswordHash, user.Verified, user.VerificationCode,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Warn().Str("email", user.Email).Msg("duplicate email")
			return 0, model.ErrDuplicateEmail
		}
		r.logger.Error().Err(err).Str("email", user.Email).Msg("failed to insert user")
		return 0, model.WrapDomainError(model.ErrCodeStorageWrite, "failed to insert user", err)
	}

	r.logger.Debug().Int64("user_id", id).Str("email", user.Email).Msg("user created")
	return id, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) on a miss.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, name, password_hash, verified, verification_code, created_at
		FROM users
		WHERE email = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Verified, &u.VerificationCode, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("email", email).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query user")
		return nil, model.WrapDomainError(model.ErrCodeStorageRead, "failed to query user", err)
	}

	return &u, nil
}

// SetVerified marks the user's email as verified.
func (r *userRepository) SetVerified(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET verified = TRUE WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to mark user verified")
		return model.WrapDomainError(model.ErrCodeStorageWrite, "failed to mark user verified", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	r.logger.Debug().Int64("user_id", id).Msg("user verified")
	return nil
}
