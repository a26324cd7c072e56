// AngelaMos | 2026
// service_test.go

package profile

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type fakeRepo struct {
	profiles map[string]*BusinessProfile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[string]*BusinessProfile)}
}

func (r *fakeRepo) GetByUserID(
	_ context.Context,
	userID string,
) (*BusinessProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) Upsert(_ context.Context, p *BusinessProfile) error {
	if existing, ok := r.profiles[p.UserID]; ok {
		p.ID = existing.ID
		p.LogoURL = existing.LogoURL
	}
	copied := *p
	r.profiles[p.UserID] = &copied
	return nil
}

func (r *fakeRepo) SetLogoURL(
	_ context.Context,
	userID, logoURL string,
) error {
	p, ok := r.profiles[userID]
	if !ok {
		return core.ErrNotFound
	}
	p.LogoURL = &logoURL
	return nil
}

type fakeUploader struct {
	key         string
	contentType string
	data        []byte
	err         error
}

func (u *fakeUploader) Upload(
	_ context.Context,
	key, contentType string,
	body io.Reader,
) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.key = key
	u.contentType = contentType
	u.data, _ = io.ReadAll(body)
	return "https://cdn.example.com/" + key, nil
}

// Smallest valid PNG header bytes, enough for sniffing.
var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0, 0, 0, 13, 'I', 'H', 'D', 'R',
}

func TestUpdateCreatesThenReplacesProfile(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeUploader{})
	ctx := context.Background()

	created, err := service.Update(ctx, "u1", UpdateProfileRequest{
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", created.CompanyName)

	updated, err := service.Update(ctx, "u1", UpdateProfileRequest{
		CompanyName:  "Acme Ltd",
		CompanyPhone: "+1 555 0100",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Acme Ltd", updated.CompanyName)

	stored, err := service.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", stored.CompanyName)
}

func TestUploadLogoStoresPNGAndRecordsURL(t *testing.T) {
	repo := newFakeRepo()
	uploader := &fakeUploader{}
	service := NewService(repo, uploader)
	ctx := context.Background()

	_, err := service.Update(ctx, "u1", UpdateProfileRequest{
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)

	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 600)...)
	url, err := service.UploadLogo(ctx, "u1", bytes.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, "image/png", uploader.contentType)
	assert.True(t, strings.HasPrefix(uploader.key, "logos/u1/"))
	assert.True(t, strings.HasSuffix(uploader.key, ".png"))
	assert.Equal(t, payload, uploader.data)

	stored, err := service.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, stored.LogoURL)
	assert.Equal(t, url, *stored.LogoURL)
}

func TestUploadLogoAcceptsSVG(t *testing.T) {
	repo := newFakeRepo()
	uploader := &fakeUploader{}
	service := NewService(repo, uploader)
	ctx := context.Background()

	_, err := service.Update(ctx, "u1", UpdateProfileRequest{
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)

	svg := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`
	_, err = service.UploadLogo(ctx, "u1", strings.NewReader(svg))
	require.NoError(t, err)

	assert.Equal(t, "image/svg+xml", uploader.contentType)
	assert.True(t, strings.HasSuffix(uploader.key, ".svg"))
}

func TestUploadLogoRejectsNonImage(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo, &fakeUploader{})
	ctx := context.Background()

	_, err := service.Update(ctx, "u1", UpdateProfileRequest{
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)

	_, err = service.UploadLogo(ctx, "u1", strings.NewReader("%PDF-1.4 not a logo"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestUploadLogoWithoutProfileIsNotFound(t *testing.T) {
	service := NewService(newFakeRepo(), &fakeUploader{})

	payload := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 600)...)
	_, err := service.UploadLogo(
		context.Background(),
		"ghost",
		bytes.NewReader(payload),
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
