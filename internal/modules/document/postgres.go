package document

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const documentColumns = `id, partner_id, file_name, file_type, file_size, document_type, storage_path, uploaded_at`

func (r *postgresRepo) Create(ctx context.Context, d *Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents
		  (id, partner_id, file_name, file_type, file_size, document_type, storage_path, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.PartnerID, d.FileName, d.FileType, d.FileSize,
		d.DocumentType, d.StoragePath, d.UploadedAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	d := &Document{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id=$1`, id).
		Scan(&d.ID, &d.PartnerID, &d.FileName, &d.FileType, &d.FileSize,
			&d.DocumentType, &d.StoragePath, &d.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("document", id.String())
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *postgresRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*Document, error) {
	return r.query(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE partner_id=$1 ORDER BY uploaded_at ASC`,
		partnerID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Document, error) {
	return r.query(ctx,
		`SELECT `+documentColumns+` FROM documents ORDER BY uploaded_at DESC`)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("document", id.String())
	}
	return nil
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...interface{}) ([]*Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var docs []*Document
	for rows.Next() {
		d := &Document{}
		if err := rows.Scan(&d.ID, &d.PartnerID, &d.FileName, &d.FileType,
			&d.FileSize, &d.DocumentType, &d.StoragePath, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
