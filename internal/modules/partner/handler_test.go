package partner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/modules/document"
	"github.com/partnergate/onboarding-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store := NewMemoryStore()
	docs := document.NewService(document.NewMemoryRepository(), storage.NewMemoryStore(), NewDirectory(store))
	r := chi.NewRouter()
	NewHandler(NewService(store, store, docs)).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getJSON(t *testing.T, r http.Handler, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestCreatePartnerEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := postJSON(t, r, "/api/partners", map[string]interface{}{
		"userId":       uuid.NewString(),
		"companyName":  "Acme Corporation",
		"contactName":  "John Smith",
		"contactEmail": "john@acmecorp.com",
		"contactPhone": "555-123-4567",
		"partnerType":  "GENERIC",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created Partner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, StatusPendingApproval, created.Status)
	assert.Equal(t, 3, created.TotalSteps)
}

func TestCreatePartnerReportsEveryFieldPath(t *testing.T) {
	r := newTestRouter(t)

	rec := postJSON(t, r, "/api/partners", map[string]interface{}{
		"userId":      uuid.NewString(),
		"companyName": "Acme Corporation",
		"contactName": "John Smith",
		"partnerType": "B2B_EDI",
		"interfaceConfig": map[string]interface{}{
			"interface": map[string]interface{}{
				"protocol": "sftp",
				"authType": "basic",
				"username": "acme",
				"password": "pw",
			},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Path    string `json:"path"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Validation error", body.Message)

	paths := make([]string, len(body.Errors))
	for i, e := range body.Errors {
		paths[i] = e.Path
	}
	assert.ElementsMatch(t, []string{
		"contactEmail", "contactPhone",
		"host", "port", "sourcePath", "supportFormatType",
		"fileNamePattern", "archivalPath",
	}, paths)
}

func TestDecideAndStatsEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := postJSON(t, r, "/api/partners", map[string]interface{}{
		"userId":       uuid.NewString(),
		"companyName":  "Acme Corporation",
		"contactName":  "John Smith",
		"contactEmail": "john@acmecorp.com",
		"contactPhone": "555-123-4567",
		"partnerType":  "GENERIC",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Partner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	var pending []EnrichedApproval
	getJSON(t, r, "/api/approvals/pending", &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "Acme Corporation", pending[0].CompanyName)

	rec = postJSON(t, r, fmt.Sprintf("/api/approvals/%s", created.ID), map[string]string{
		"status":   "APPROVED",
		"comments": "looks good",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var decided Approval
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decided))
	assert.Equal(t, ApprovalApproved, decided.Status)

	var stats Stats
	getJSON(t, r, "/api/stats", &stats)
	assert.Equal(t, 1, stats.TotalPartners)
	assert.Equal(t, 0, stats.PendingApprovals)
	assert.Equal(t, 1, stats.ApprovedPartners)
	assert.Equal(t, 1, stats.CompletedThisMonth)
}

func TestDecideUnknownPartnerEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := postJSON(t, r, fmt.Sprintf("/api/approvals/%s", uuid.New()), map[string]string{
		"status": "APPROVED",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPatchPartnerInterfaceFields(t *testing.T) {
	r := newTestRouter(t)

	rec := postJSON(t, r, "/api/partners", map[string]interface{}{
		"userId":       uuid.NewString(),
		"companyName":  "Acme Corporation",
		"contactName":  "John Smith",
		"contactEmail": "john@acmecorp.com",
		"contactPhone": "555-123-4567",
		"partnerType":  "B2B_EDI",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Partner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	payload, err := json.Marshal(map[string]string{
		"protocol": "ftp",
		"host":     "ftp.example.com",
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, "/api/partners/"+created.ID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	patch := httptest.NewRecorder()
	r.ServeHTTP(patch, req)
	require.Equal(t, http.StatusOK, patch.Code, patch.Body.String())

	var updated Partner
	getJSON(t, r, "/api/partners/"+created.ID.String(), &updated)
	assert.Equal(t, "ftp", updated.Interface.Protocol)
	assert.Equal(t, "ftp.example.com", updated.Interface.Host)
}

func TestDeletePartnerEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := postJSON(t, r, "/api/partners", map[string]interface{}{
		"userId":       uuid.NewString(),
		"companyName":  "Acme Corporation",
		"contactName":  "John Smith",
		"contactEmail": "john@acmecorp.com",
		"contactPhone": "555-123-4567",
		"partnerType":  "GENERIC",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created Partner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/api/partners/"+created.ID.String(), nil)
	del := httptest.NewRecorder()
	r.ServeHTTP(del, req)
	assert.Equal(t, http.StatusNoContent, del.Code)

	got := getJSON(t, r, "/api/partners/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, got.Code)
}
