package certificate

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const certificateColumns = `id, user_id, file_name, file_type, file_size, document_type,
	alias, description, storage_path, storage_url, uploaded_at`

func (r *postgresRepo) Create(ctx context.Context, c *Certificate) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO certificates (`+certificateColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID, c.UserID, c.FileName, c.FileType, c.FileSize, c.DocumentType,
		c.Alias, c.Description, c.StoragePath, c.StorageURL, c.UploadedAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Certificate, error) {
	c := &Certificate{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE id=$1`, id).
		Scan(&c.ID, &c.UserID, &c.FileName, &c.FileType, &c.FileSize,
			&c.DocumentType, &c.Alias, &c.Description, &c.StoragePath,
			&c.StorageURL, &c.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("certificate", id.String())
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certificate, error) {
	return r.query(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE user_id=$1 ORDER BY uploaded_at DESC`,
		userID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Certificate, error) {
	return r.query(ctx,
		`SELECT `+certificateColumns+` FROM certificates ORDER BY uploaded_at DESC`)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM certificates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("certificate", id.String())
	}
	return nil
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...interface{}) ([]*Certificate, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var certs []*Certificate
	for rows.Next() {
		c := &Certificate{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.FileName, &c.FileType,
			&c.FileSize, &c.DocumentType, &c.Alias, &c.Description,
			&c.StoragePath, &c.StorageURL, &c.UploadedAt); err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}
