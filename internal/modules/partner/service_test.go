package partner

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
	"github.com/partnergate/onboarding-backend/internal/modules/document"
	"github.com/partnergate/onboarding-backend/internal/modules/onboarding"
	"github.com/partnergate/onboarding-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	svc     Service
	store   *MemoryStore
	docs    document.Service
	objects *storage.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := NewMemoryStore()
	objects := storage.NewMemoryStore()
	docs := document.NewService(document.NewMemoryRepository(), objects, NewDirectory(store))
	return &testEnv{
		svc:     NewService(store, store, docs),
		store:   store,
		docs:    docs,
		objects: objects,
	}
}

func validCreateRequest() CreatePartnerRequest {
	return CreatePartnerRequest{
		UserID:       uuid.NewString(),
		CompanyName:  "Acme Corporation",
		ContactName:  "John Smith",
		ContactEmail: "john@acmecorp.com",
		ContactPhone: "555-123-4567",
		PartnerType:  string(onboarding.PartnerTypeGeneric),
	}
}

func TestCreateForcesPendingApprovalAndCreatesApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusPendingApproval, p.Status)
	require.NotNil(t, p.SubmittedAt)
	assert.Equal(t, 3, p.TotalSteps)

	approvals, err := env.store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, approvals, 1)
	assert.Equal(t, p.ID, approvals[0].PartnerID)
	assert.Equal(t, ApprovalPending, approvals[0].Status)
}

func TestCreateB2BEDIHasFourSteps(t *testing.T) {
	env := newTestEnv(t)
	req := validCreateRequest()
	req.PartnerType = string(onboarding.PartnerTypeB2BEDI)

	p, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 4, p.TotalSteps)
}

func TestCreateCollectsAllViolations(t *testing.T) {
	env := newTestEnv(t)

	req := validCreateRequest()
	req.CompanyName = ""
	req.InterfaceConfig = &InterfaceConfigPayload{
		Interface: &onboarding.InterfaceConfig{
			Protocol: onboarding.ProtocolSFTP,
			AuthType: onboarding.AuthBasic,
			Host:     "sftp.example.com",
			Port:     "22",
		},
	}

	_, err := env.svc.Create(context.Background(), req)
	var vErr *apperr.ValidationError
	require.True(t, errors.As(err, &vErr))

	paths := make([]string, len(vErr.Fields))
	for i, f := range vErr.Fields {
		paths[i] = f.Path
	}
	assert.ElementsMatch(t, []string{
		"companyName", "sourcePath", "supportFormatType", "fileNamePattern",
		"archivalPath", "username", "password",
	}, paths)
}

func TestCreateCopiesCertificateSnapshot(t *testing.T) {
	env := newTestEnv(t)

	snapshot := json.RawMessage(`{"id":"abc","fileName":"partner.pem","alias":"prod"}`)
	req := validCreateRequest()
	req.InterfaceConfig = &InterfaceConfigPayload{
		Security: &SecurityPayload{SelectedCertificate: snapshot},
	}

	p, err := env.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, string(snapshot), string(p.CertificateSnapshot))
}

func TestDecideApproveThenReject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	adminID := uuid.New()
	a, err := env.svc.Decide(ctx, p.ID.String(), &adminID, DecisionRequest{
		Status: "APPROVED", Comments: "ok",
	})
	require.NoError(t, err)
	assert.Equal(t, ApprovalApproved, a.Status)
	assert.Equal(t, "ok", a.Comments)
	require.NotNil(t, a.ApproverID)
	assert.Equal(t, adminID, *a.ApproverID)

	approved, err := env.svc.Get(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)

	// Re-deciding a terminal partner is allowed: the latest decision
	// wins and the earlier timestamp is not cleared.
	a2, err := env.svc.Decide(ctx, p.ID.String(), &adminID, DecisionRequest{
		Status: "REJECTED", Comments: "changed our mind",
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, a2.ID, "decisions update the same approval record")
	assert.Equal(t, ApprovalRejected, a2.Status)

	rejected, err := env.svc.Get(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectedAt)
	assert.NotNil(t, rejected.ApprovedAt, "approvedAt is left as it was")
}

func TestDecideUnknownPartner(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Decide(context.Background(), uuid.NewString(), nil,
		DecisionRequest{Status: "APPROVED"})
	var nfErr *apperr.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
}

func TestDecideRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = env.svc.Decide(ctx, p.ID.String(), nil, DecisionRequest{Status: "MAYBE"})
	var vErr *apperr.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = env.svc.Decide(ctx, first.ID.String(), nil, DecisionRequest{Status: "APPROVED"})
	require.NoError(t, err)

	// An approval completed two months ago must not count towards the
	// current month even though its partner stays APPROVED.
	old := time.Now().AddDate(0, -2, 0)
	stale := &Partner{
		ID: uuid.New(), UserID: uuid.New(),
		CompanyName: "Old Co", ContactName: "Jane", ContactEmail: "jane@old.co",
		ContactPhone: "555-000-0000",
		PartnerType:  onboarding.PartnerTypeGeneric,
		Status:       StatusApproved,
		ApprovedAt:   &old, CreatedAt: old, UpdatedAt: old,
	}
	require.NoError(t, env.store.Create(ctx, stale, &Approval{
		ID: uuid.New(), PartnerID: stale.ID, Status: ApprovalApproved,
		CreatedAt: old, UpdatedAt: old,
	}))

	stats, err := env.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalPartners)
	assert.Equal(t, 1, stats.PendingApprovals)
	assert.Equal(t, 2, stats.ApprovedPartners)
	assert.Equal(t, 1, stats.CompletedThisMonth)
}

func TestCompletedThisMonthExcludesOlderApprovals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)
	_, err = env.svc.Decide(ctx, p.ID.String(), nil, DecisionRequest{Status: "APPROVED"})
	require.NoError(t, err)

	old := time.Now().AddDate(0, -1, -5)
	stalePartner := &Partner{
		ID: uuid.New(), UserID: uuid.New(),
		CompanyName: "Old Co", ContactName: "Jane", ContactEmail: "jane@old.co",
		ContactPhone: "555-000-0000",
		PartnerType:  onboarding.PartnerTypeGeneric, Status: StatusApproved,
		CreatedAt: old, UpdatedAt: old,
	}
	require.NoError(t, env.store.Create(ctx, stalePartner, &Approval{
		ID: uuid.New(), PartnerID: stalePartner.ID, Status: ApprovalApproved,
		CreatedAt: old, UpdatedAt: old,
	}))

	completed, err := env.svc.CompletedThisMonth(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, p.ID, completed[0].PartnerID)
	assert.Equal(t, "Acme Corporation", completed[0].CompanyName)
}

func TestPendingApprovalsAreEnriched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := validCreateRequest()
	req.PartnerType = string(onboarding.PartnerTypeB2BEDI)
	req.InterfaceConfig = &InterfaceConfigPayload{
		Interface: &onboarding.InterfaceConfig{
			Protocol:       onboarding.ProtocolHTTPS,
			AuthType:       onboarding.AuthAPIKey,
			HTTPHeaderName: "X-Api-Key",
			APIKeyValue:    "k",
		},
	}
	p, err := env.svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = env.docs.Upload(ctx, p.ID, document.UploadRequest{
		FileName:     "agreement.pdf",
		ContentType:  "application/pdf",
		DocumentType: "contract",
		Content:      []byte("pdf bytes"),
	})
	require.NoError(t, err)

	pending, err := env.svc.PendingApprovals(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	e := pending[0]
	assert.Equal(t, "Acme Corporation", e.CompanyName)
	assert.Equal(t, StatusPendingApproval, e.PartnerStatus)
	require.NotNil(t, e.Interface)
	assert.Equal(t, onboarding.ProtocolHTTPS, e.Interface.Protocol)
	require.Len(t, e.Documents, 1)
	assert.Equal(t, "agreement.pdf", e.Documents[0].FileName)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	email := "new@acmecorp.com"
	updated, err := env.svc.Update(ctx, p.ID.String(), UpdatePartnerRequest{
		ContactEmail: &email,
	})
	require.NoError(t, err)
	assert.Equal(t, email, updated.ContactEmail)
	assert.Equal(t, p.CompanyName, updated.CompanyName)
	assert.Equal(t, p.ContactPhone, updated.ContactPhone)
}

func TestUpdateAppliesInterfaceFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	protocol := onboarding.ProtocolFTP
	host := "ftp.example.com"
	port := "21"
	endpoints := []onboarding.Endpoint{{Name: "primary", URL: "https://as2.example.com"}}
	step := 2
	updated, err := env.svc.Update(ctx, p.ID.String(), UpdatePartnerRequest{
		Protocol:    &protocol,
		Host:        &host,
		Port:        &port,
		Endpoints:   &endpoints,
		CurrentStep: &step,
	})
	require.NoError(t, err)
	assert.Equal(t, onboarding.ProtocolFTP, updated.Interface.Protocol)
	assert.Equal(t, "ftp.example.com", updated.Interface.Host)
	assert.Equal(t, "21", updated.Interface.Port)
	assert.Equal(t, endpoints, updated.Interface.Endpoints)
	assert.Equal(t, 2, updated.CurrentStep)
	assert.Equal(t, p.CompanyName, updated.CompanyName)

	got, err := env.svc.Get(ctx, p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ftp.example.com", got.Interface.Host)
}

func TestUpdateRejectsUnknownPartnerType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	bad := "C2C"
	_, err = env.svc.Update(ctx, p.ID.String(), UpdatePartnerRequest{PartnerType: &bad})
	var vErr *apperr.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "partnerType", vErr.Fields[0].Path)
}

func TestDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p, err := env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	d, err := env.docs.Upload(ctx, p.ID, document.UploadRequest{
		FileName:    "w9.pdf",
		ContentType: "application/pdf",
		Content:     []byte("tax form"),
	})
	require.NoError(t, err)
	require.True(t, env.objects.Has(d.StoragePath))

	require.NoError(t, env.svc.Delete(ctx, p.ID.String()))

	_, err = env.svc.Get(ctx, p.ID.String())
	var nfErr *apperr.NotFoundError
	assert.True(t, errors.As(err, &nfErr))

	approvals, err := env.store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, approvals)

	assert.False(t, env.objects.Has(d.StoragePath), "stored object removed with the partner")
}

func TestListFiltersByUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := validCreateRequest()
	p, err := env.svc.Create(ctx, req)
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	mine, err := env.svc.List(ctx, req.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p.ID, mine[0].ID)

	all, err := env.svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := env.svc.List(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, none)
}
