package partner

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type approvalPostgresRepo struct{ db *sql.DB }

func NewApprovalPostgresRepository(db *sql.DB) ApprovalRepository {
	return &approvalPostgresRepo{db: db}
}

const approvalColumns = `id, partner_id, approver_id, status, comments, created_at, updated_at`

func (r *approvalPostgresRepo) ListAll(ctx context.Context) ([]*Approval, error) {
	return r.query(ctx,
		`SELECT `+approvalColumns+` FROM approvals ORDER BY created_at DESC`)
}

func (r *approvalPostgresRepo) ListByStatus(ctx context.Context, status ApprovalStatus) ([]*Approval, error) {
	return r.query(ctx,
		`SELECT `+approvalColumns+` FROM approvals WHERE status=$1 ORDER BY created_at DESC`,
		status)
}

func (r *approvalPostgresRepo) ListApprovedSince(ctx context.Context, since time.Time) ([]*Approval, error) {
	return r.query(ctx,
		`SELECT `+approvalColumns+` FROM approvals WHERE status=$1 AND updated_at>=$2 ORDER BY updated_at DESC`,
		ApprovalApproved, since)
}

func (r *approvalPostgresRepo) CountApprovedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM approvals WHERE status=$1 AND updated_at>=$2`,
		ApprovalApproved, since).Scan(&n)
	return n, err
}

func (r *approvalPostgresRepo) query(ctx context.Context, q string, args ...interface{}) ([]*Approval, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var approvals []*Approval
	for rows.Next() {
		a := &Approval{}
		var approverID sql.NullString
		if err := rows.Scan(&a.ID, &a.PartnerID, &approverID, &a.Status,
			&a.Comments, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		if approverID.Valid {
			if uid, err := uuid.Parse(approverID.String); err == nil {
				a.ApproverID = &uid
			}
		}
		approvals = append(approvals, a)
	}
	return approvals, rows.Err()
}
