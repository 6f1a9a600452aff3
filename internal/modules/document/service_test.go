package document

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/partnergate/onboarding-backend/internal/apperr"
	"github.com/partnergate/onboarding-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	known map[uuid.UUID]bool
}

func (f *fakeDirectory) Exists(ctx context.Context, id uuid.UUID) error {
	if !f.known[id] {
		return apperr.NotFound("partner", id.String())
	}
	return nil
}

func newDocEnv(partnerIDs ...uuid.UUID) (Service, *storage.MemoryStore) {
	dir := &fakeDirectory{known: make(map[uuid.UUID]bool)}
	for _, id := range partnerIDs {
		dir.known[id] = true
	}
	objects := storage.NewMemoryStore()
	return NewService(NewMemoryRepository(), objects, dir), objects
}

func TestUploadStoresObjectAndRecord(t *testing.T) {
	partnerID := uuid.New()
	svc, objects := newDocEnv(partnerID)
	ctx := context.Background()

	d, err := svc.Upload(ctx, partnerID, UploadRequest{
		FileName:     "msa.pdf",
		ContentType:  "application/pdf",
		DocumentType: "contract",
		Content:      []byte("agreement body"),
	})
	require.NoError(t, err)

	assert.Equal(t, partnerID, d.PartnerID)
	assert.Equal(t, "msa.pdf", d.FileName)
	assert.Equal(t, "contract", d.DocumentType)
	assert.Equal(t, int64(len("agreement body")), d.FileSize)
	assert.True(t, objects.Has(d.StoragePath))

	got, err := svc.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.StoragePath, got.StoragePath)
}

func TestUploadDefaultsDocumentType(t *testing.T) {
	partnerID := uuid.New()
	svc, _ := newDocEnv(partnerID)

	d, err := svc.Upload(context.Background(), partnerID, UploadRequest{
		FileName:    "ca.pem",
		ContentType: "application/x-pem-file",
		Content:     []byte("-----BEGIN CERTIFICATE-----"),
	})
	require.NoError(t, err)
	assert.Equal(t, "certificate", d.DocumentType)
}

func TestUploadRejectsUnknownPartner(t *testing.T) {
	svc, objects := newDocEnv()

	_, err := svc.Upload(context.Background(), uuid.New(), UploadRequest{
		FileName:    "msa.pdf",
		ContentType: "application/pdf",
		Content:     []byte("agreement body"),
	})
	var nfErr *apperr.NotFoundError
	require.True(t, errors.As(err, &nfErr))
	assert.False(t, objects.Has(storage.ObjectPath("msa.pdf", []byte("agreement body"))))
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	partnerID := uuid.New()
	svc, _ := newDocEnv(partnerID)

	_, err := svc.Upload(context.Background(), partnerID, UploadRequest{
		FileName:    "empty.pdf",
		ContentType: "application/pdf",
	})
	var upErr *apperr.UploadError
	assert.True(t, errors.As(err, &upErr))
}

func TestDeleteRemovesObjectAndRecord(t *testing.T) {
	partnerID := uuid.New()
	svc, objects := newDocEnv(partnerID)
	ctx := context.Background()

	d, err := svc.Upload(ctx, partnerID, UploadRequest{
		FileName:    "w9.pdf",
		ContentType: "application/pdf",
		Content:     []byte("tax form"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, d.ID))
	assert.False(t, objects.Has(d.StoragePath))

	_, err = svc.Get(ctx, d.ID)
	var nfErr *apperr.NotFoundError
	assert.True(t, errors.As(err, &nfErr))
}

func TestListByPartner(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	svc, _ := newDocEnv(first, second)
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.pdf"} {
		_, err := svc.Upload(ctx, first, UploadRequest{
			FileName: name, ContentType: "application/pdf", Content: []byte(name),
		})
		require.NoError(t, err)
	}
	_, err := svc.Upload(ctx, second, UploadRequest{
		FileName: "c.pdf", ContentType: "application/pdf", Content: []byte("c"),
	})
	require.NoError(t, err)

	docs, err := svc.ListByPartner(ctx, first)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
