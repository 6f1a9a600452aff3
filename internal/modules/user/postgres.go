package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const userColumns = `id, username, password_hash, full_name, email, role, company_name`

func (r *postgresRepository) CreateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		u.ID, u.Username, u.PasswordHash, u.FullName, u.Email, u.Role, u.CompanyName)
	return err
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id), id.String())
}

func (r *postgresRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username), username)
}

func (r *postgresRepository) scan(row *sql.Row, ref string) (*User, error) {
	u := &User{}
	var companyName sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName,
		&u.Email, &u.Role, &companyName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user", ref)
	}
	if err != nil {
		return nil, err
	}
	u.CompanyName = companyName.String
	return u, nil
}
