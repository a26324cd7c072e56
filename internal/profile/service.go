// AngelaMos | 2026
// service.go

package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/invoicery/internal/core"
	"github.com/carterperez-dev/invoicery/internal/storage"
)

// logoExtensions maps accepted sniffed content types to the stored
// object extension. Anything else is refused.
var logoExtensions = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

type Service struct {
	repo     Repository
	uploader storage.Uploader
}

func NewService(repo Repository, uploader storage.Uploader) *Service {
	return &Service{repo: repo, uploader: uploader}
}

func (s *Service) Get(
	ctx context.Context,
	userID string,
) (*BusinessProfile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// Update creates the profile on first write and replaces it afterwards.
func (s *Service) Update(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*BusinessProfile, error) {
	p := &BusinessProfile{
		ID:             uuid.New().String(),
		UserID:         userID,
		CompanyName:    req.CompanyName,
		CompanyAddress: req.CompanyAddress,
		CompanyEmail:   req.CompanyEmail,
		CompanyPhone:   req.CompanyPhone,
		Website:        req.Website,
		TaxID:          req.TaxID,
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// UploadLogo sniffs the real content type from the first bytes, refuses
// anything that is not an image we can render, stores the blob, and
// records the public URL on the profile.
func (s *Service) UploadLogo(
	ctx context.Context,
	userID string,
	file io.Reader,
) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read logo: %w", err)
	}
	head = head[:n]

	contentType := detectImageType(head)
	ext, ok := logoExtensions[contentType]
	if !ok {
		return "", fmt.Errorf(
			"unsupported logo type %q, want JPEG, PNG, WebP, or SVG: %w",
			contentType,
			core.ErrInvalidInput,
		)
	}

	key := fmt.Sprintf("logos/%s/%s.%s", userID, uuid.New().String(), ext)
	body := io.MultiReader(bytes.NewReader(head), file)

	url, err := s.uploader.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", err
	}

	if err := s.repo.SetLogoURL(ctx, userID, url); err != nil {
		return "", err
	}

	return url, nil
}

// detectImageType is http.DetectContentType plus an SVG check, since
// the standard sniffer reports SVG as plain text or XML.
func detectImageType(head []byte) string {
	contentType := http.DetectContentType(head)

	if strings.HasPrefix(contentType, "text/") ||
		strings.Contains(contentType, "xml") {
		trimmed := strings.TrimSpace(string(head))
		if strings.Contains(trimmed, "<svg") {
			return "image/svg+xml"
		}
	}

	base, _, found := strings.Cut(contentType, ";")
	if found {
		return strings.TrimSpace(base)
	}
	return contentType
}
