package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/truckhire/truckhire-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// userColumns excludes the password hash; it is selected only by
// GetByEmailWithPassword.
const userColumns = `id, name, email, phone, avatar, role, active,
			  password_changed_at, reset_token_digest, reset_token_expiry, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, name, email, phone, avatar, role, active, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + userColumns

	saved, err := r.scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, user.Avatar, user.Role, user.Active,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmailWithPassword(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE email = $1`

	var user model.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Avatar, &user.Role, &user.Active,
		&user.PasswordChangedAt, &user.ResetTokenDigest, &user.ResetTokenExpiry,
		&user.CreatedAt, &user.UpdatedAt, &user.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, params model.UpdateUserParams) (model.User, error) {
	query := `UPDATE users SET
				name = COALESCE($2, name),
				email = COALESCE($3, email),
				phone = COALESCE($4, phone),
				avatar = COALESCE($5, avatar),
				active = COALESCE($6, active),
				updated_at = now()
			  WHERE id = $1
			  RETURNING ` + userColumns

	user, err := r.scanUser(r.db.QueryRow(ctx, query,
		params.ID, params.Name, params.Email, params.Phone, params.Avatar, params.Active,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiry time.Time) error {
	query := `UPDATE users SET reset_token_digest = $2, reset_token_expiry = $3, updated_at = now()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, digest, expiry)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET reset_token_digest = NULL, reset_token_expiry = NULL, updated_at = now()
			  WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// ConsumeResetToken is the single atomic read-modify-write of the reset
// flow: the WHERE clause matches only an unexpired, still-set digest, so
// two racing consumers cannot both see a match.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, digest string, now time.Time, newHash string, changedAt time.Time) (model.User, error) {
	query := `UPDATE users SET
				password_hash = $2,
				password_changed_at = $3,
				reset_token_digest = NULL,
				reset_token_expiry = NULL,
				updated_at = now()
			  WHERE reset_token_digest = $1 AND reset_token_expiry > $4
			  RETURNING ` + userColumns

	user, err := r.scanUser(r.db.QueryRow(ctx, query, digest, newHash, changedAt, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to consume reset token: %w", err)
	}

	return user, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.Avatar, &user.Role, &user.Active,
		&user.PasswordChangedAt, &user.ResetTokenDigest, &user.ResetTokenExpiry,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}
