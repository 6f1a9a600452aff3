package partner

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
	"github.com/partnergate/onboarding-backend/internal/modules/onboarding"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const partnerColumns = `id, user_id, company_name, contact_name, contact_email, contact_phone,
	address, city, state, zip_code, country, industry, website,
	partner_type, status, notes,
	protocol, auth_type, direction, endpoints, username, password,
	http_header_name, api_key_value, identity_key_id, host, port,
	character_encoding, source_path, support_format_type, file_name_pattern,
	archival_path, additional_settings, certificate_snapshot,
	current_step, total_steps,
	submitted_at, approved_at, rejected_at, created_at, updated_at`

// Create inserts the partner and its PENDING approval inside a single
// transaction so a partner can never exist without its decision record.
func (r *postgresRepo) Create(ctx context.Context, p *Partner, a *Approval) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	endpoints, err := json.Marshal(p.Interface.Endpoints)
	if err != nil {
		return fmt.Errorf("encode endpoints: %w", err)
	}
	settings, err := json.Marshal(p.Interface.AdditionalSettings)
	if err != nil {
		return fmt.Errorf("encode additional settings: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO partners (`+partnerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,
		        $17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,
		        $31,$32,$33,$34,$35,$36,$37,$38,$39,$40,$41)`,
		p.ID, p.UserID, p.CompanyName, p.ContactName, p.ContactEmail, p.ContactPhone,
		p.Address, p.City, p.State, p.ZipCode, p.Country, p.Industry, p.Website,
		p.PartnerType, p.Status, p.Notes,
		p.Interface.Protocol, p.Interface.AuthType, p.Interface.Direction, nullableJSON(endpoints),
		p.Interface.Username, p.Interface.Password,
		p.Interface.HTTPHeaderName, p.Interface.APIKeyValue, p.Interface.IdentityKeyID,
		p.Interface.Host, p.Interface.Port,
		p.Interface.CharacterEncoding, p.Interface.SourcePath, p.Interface.SupportFormatType,
		p.Interface.FileNamePattern, p.Interface.ArchivalPath, nullableJSON(settings),
		nullableJSON(p.CertificateSnapshot),
		p.CurrentStep, p.TotalSteps,
		p.SubmittedAt, p.ApprovedAt, p.RejectedAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert partner: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO approvals (id, partner_id, approver_id, status, comments, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.PartnerID, a.ApproverID, a.Status, a.Comments, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Partner, error) {
	p, err := scanPartner(r.db.QueryRowContext(ctx,
		`SELECT `+partnerColumns+` FROM partners WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("partner", id.String())
	}
	return p, err
}

func (r *postgresRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*Partner, error) {
	p, err := scanPartner(r.db.QueryRowContext(ctx,
		`SELECT `+partnerColumns+` FROM partners WHERE user_id=$1 ORDER BY created_at ASC LIMIT 1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("partner for user", userID.String())
	}
	return p, err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Partner, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+partnerColumns+` FROM partners ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var partners []*Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, id uuid.UUID, upd UpdatePartnerRequest) (*Partner, error) {
	set := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s=$%d", col, len(args)))
	}
	addStr := func(col string, v *string) {
		if v != nil {
			add(col, *v)
		}
	}
	addStr("user_id", upd.UserID)
	addStr("company_name", upd.CompanyName)
	addStr("contact_name", upd.ContactName)
	addStr("contact_email", upd.ContactEmail)
	addStr("contact_phone", upd.ContactPhone)
	addStr("address", upd.Address)
	addStr("city", upd.City)
	addStr("state", upd.State)
	addStr("zip_code", upd.ZipCode)
	addStr("country", upd.Country)
	addStr("industry", upd.Industry)
	addStr("website", upd.Website)
	addStr("partner_type", upd.PartnerType)
	addStr("notes", upd.Notes)
	addStr("status", upd.Status)
	addStr("protocol", upd.Protocol)
	addStr("auth_type", upd.AuthType)
	addStr("direction", upd.Direction)
	addStr("username", upd.Username)
	addStr("password", upd.Password)
	addStr("http_header_name", upd.HTTPHeaderName)
	addStr("api_key_value", upd.APIKeyValue)
	addStr("identity_key_id", upd.IdentityKeyID)
	addStr("host", upd.Host)
	addStr("port", upd.Port)
	addStr("character_encoding", upd.CharacterEncoding)
	addStr("source_path", upd.SourcePath)
	addStr("support_format_type", upd.SupportFormatType)
	addStr("file_name_pattern", upd.FileNamePattern)
	addStr("archival_path", upd.ArchivalPath)
	if upd.Endpoints != nil {
		b, err := json.Marshal(*upd.Endpoints)
		if err != nil {
			return nil, fmt.Errorf("encode endpoints: %w", err)
		}
		add("endpoints", nullableJSON(b))
	}
	if upd.AdditionalSettings != nil {
		b, err := json.Marshal(*upd.AdditionalSettings)
		if err != nil {
			return nil, fmt.Errorf("encode additional settings: %w", err)
		}
		add("additional_settings", nullableJSON(b))
	}
	if len(upd.CertificateSnapshot) > 0 {
		add("certificate_snapshot", nullableJSON(upd.CertificateSnapshot))
	}
	if upd.CurrentStep != nil {
		add("current_step", *upd.CurrentStep)
	}
	if upd.TotalSteps != nil {
		add("total_steps", *upd.TotalSteps)
	}

	if len(set) > 0 {
		args = append(args, time.Now())
		set = append(set, fmt.Sprintf("updated_at=$%d", len(args)))
		args = append(args, id)
		query := "UPDATE partners SET "
		for i, clause := range set {
			if i > 0 {
				query += ", "
			}
			query += clause
		}
		query += fmt.Sprintf(" WHERE id=$%d", len(args))
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, apperr.NotFound("partner", id.String())
		}
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM approvals WHERE partner_id=$1`, id); err != nil {
		return fmt.Errorf("delete approvals: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM partners WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("partner", id.String())
	}
	return tx.Commit()
}

// Decide runs the whole decision inside one transaction with the
// partner row locked, which closes the last-write-wins race between
// two concurrent decisions.
func (r *postgresRepo) Decide(ctx context.Context, partnerID uuid.UUID, d Decision) (*Approval, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists uuid.UUID
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM partners WHERE id=$1 FOR UPDATE`, partnerID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("partner", partnerID.String())
	}
	if err != nil {
		return nil, err
	}

	a := &Approval{
		PartnerID:  partnerID,
		ApproverID: d.ApproverID,
		Status:     d.Status,
		Comments:   d.Comments,
		UpdatedAt:  d.DecidedAt,
	}
	err = tx.QueryRowContext(ctx,
		`SELECT id, created_at FROM approvals WHERE partner_id=$1 ORDER BY created_at ASC LIMIT 1`,
		partnerID).Scan(&a.ID, &a.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		a.ID = uuid.New()
		a.CreatedAt = d.DecidedAt
		_, err = tx.ExecContext(ctx, `
			INSERT INTO approvals (id, partner_id, approver_id, status, comments, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			a.ID, a.PartnerID, a.ApproverID, a.Status, a.Comments, a.CreatedAt, a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert approval: %w", err)
		}
	case err != nil:
		return nil, err
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE approvals SET status=$1, comments=$2, approver_id=$3, updated_at=$4 WHERE id=$5`,
			a.Status, a.Comments, a.ApproverID, a.UpdatedAt, a.ID)
		if err != nil {
			return nil, fmt.Errorf("update approval: %w", err)
		}
	}

	// The opposite decision timestamp is intentionally left untouched;
	// the latest decision wins without cleanup.
	timestampCol := "approved_at"
	partnerStatus := StatusApproved
	if d.Status == ApprovalRejected {
		timestampCol = "rejected_at"
		partnerStatus = StatusRejected
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE partners SET status=$1, `+timestampCol+`=$2, updated_at=$2 WHERE id=$3`,
		partnerStatus, d.DecidedAt, partnerID)
	if err != nil {
		return nil, fmt.Errorf("update partner status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM partners`).Scan(&n)
	return n, err
}

func (r *postgresRepo) CountByStatus(ctx context.Context, status Status) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM partners WHERE status=$1`, status).Scan(&n)
	return n, err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanPartner(row rowScanner) (*Partner, error) {
	p := &Partner{}
	var endpoints, settings, snapshot []byte
	var submittedAt, approvedAt, rejectedAt sql.NullTime
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.ContactName, &p.ContactEmail, &p.ContactPhone,
		&p.Address, &p.City, &p.State, &p.ZipCode, &p.Country, &p.Industry, &p.Website,
		&p.PartnerType, &p.Status, &p.Notes,
		&p.Interface.Protocol, &p.Interface.AuthType, &p.Interface.Direction, &endpoints,
		&p.Interface.Username, &p.Interface.Password,
		&p.Interface.HTTPHeaderName, &p.Interface.APIKeyValue, &p.Interface.IdentityKeyID,
		&p.Interface.Host, &p.Interface.Port,
		&p.Interface.CharacterEncoding, &p.Interface.SourcePath, &p.Interface.SupportFormatType,
		&p.Interface.FileNamePattern, &p.Interface.ArchivalPath, &settings,
		&snapshot,
		&p.CurrentStep, &p.TotalSteps,
		&submittedAt, &approvedAt, &rejectedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(endpoints) > 0 {
		var eps []onboarding.Endpoint
		if err := json.Unmarshal(endpoints, &eps); err != nil {
			return nil, fmt.Errorf("decode endpoints: %w", err)
		}
		p.Interface.Endpoints = eps
	}
	if len(settings) > 0 {
		var m map[string]string
		if err := json.Unmarshal(settings, &m); err != nil {
			return nil, fmt.Errorf("decode additional settings: %w", err)
		}
		p.Interface.AdditionalSettings = m
	}
	p.CertificateSnapshot = snapshot
	if submittedAt.Valid {
		p.SubmittedAt = &submittedAt.Time
	}
	if approvedAt.Valid {
		p.ApprovedAt = &approvedAt.Time
	}
	if rejectedAt.Valid {
		p.RejectedAt = &rejectedAt.Time
	}
	return p, nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	return b
}
