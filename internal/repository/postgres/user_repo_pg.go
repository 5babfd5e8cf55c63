package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/domain"
	"github.com/njprem/Hotel_booking_APP_BackEnd/internal/repository/ports"
)

const userColumns = `id, username, email, first_name, last_name, password_hash, password_salt, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (username, email, first_name, last_name, password_hash, password_salt)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, in.Username, in.Email, in.FirstName, in.LastName, in.PasswordHash, in.PasswordSalt)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertGoogleUser creates an account keyed by email. The username defaults to
// the email address, which is unique on its own.
func (r *UserRepository) UpsertGoogleUser(ctx context.Context, email, firstName, lastName string) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (username, email, first_name, last_name)
        VALUES ($1, $1, $2, $3)
        ON CONFLICT (email) DO UPDATE
        SET first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), user_account.first_name),
            last_name = COALESCE(NULLIF(EXCLUDED.last_name, ''), user_account.last_name),
            updated_at = NOW()
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, firstName, lastName)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM user_account WHERE username = $1`, username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM user_account WHERE email = $1`, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM user_account WHERE id = $1`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the account. Reviews, bookings, favorites, sessions and
// role links go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return execAffectingOne(ctx, r.db, `DELETE FROM user_account WHERE id = $1`, id)
}

var _ ports.UserRepository = (*UserRepository)(nil)
