// AngelaMos | 2026
// service.go

package template

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Template, error) {
	return s.repo.GetByID(ctx, id)
}

// GetDefault falls back to the built-in style when no template has
// been marked default yet.
func (s *Service) GetDefault(ctx context.Context) (*Template, error) {
	return s.repo.GetDefault(ctx)
}

func (s *Service) Create(
	ctx context.Context,
	req CreateTemplateRequest,
) (*Template, error) {
	style := DefaultStyle()

	tmpl := &Template{
		ID:              uuid.New().String(),
		Name:            req.Name,
		PrimaryColor:    style.PrimaryColor,
		SecondaryColor:  style.SecondaryColor,
		FontFamily:      style.FontFamily,
		Layout:          style.Layout,
		HeaderAlignment: style.HeaderAlignment,
		ShowWatermark:   req.ShowWatermark,
		ShowFooter:      req.ShowFooter,
	}

	if req.PrimaryColor != "" {
		tmpl.PrimaryColor = req.PrimaryColor
	}
	if req.SecondaryColor != "" {
		tmpl.SecondaryColor = req.SecondaryColor
	}
	if req.FontFamily != "" {
		tmpl.FontFamily = req.FontFamily
	}
	if req.Layout != "" {
		tmpl.Layout = req.Layout
	}
	if req.HeaderAlignment != "" {
		tmpl.HeaderAlignment = req.HeaderAlignment
	}

	if err := s.repo.Create(ctx, tmpl); err != nil {
		return nil, err
	}

	if req.IsDefault {
		if err := s.repo.SetDefault(ctx, tmpl.ID); err != nil {
			return nil, err
		}
		tmpl.IsDefault = true
	}

	return tmpl, nil
}

func (s *Service) Update(
	ctx context.Context,
	id string,
	req UpdateTemplateRequest,
) (*Template, error) {
	tmpl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tmpl.Name = *req.Name
	}
	if req.PrimaryColor != nil {
		tmpl.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		tmpl.SecondaryColor = *req.SecondaryColor
	}
	if req.FontFamily != nil {
		tmpl.FontFamily = *req.FontFamily
	}
	if req.Layout != nil {
		tmpl.Layout = *req.Layout
	}
	if req.HeaderAlignment != nil {
		tmpl.HeaderAlignment = *req.HeaderAlignment
	}
	if req.ShowWatermark != nil {
		tmpl.ShowWatermark = *req.ShowWatermark
	}
	if req.ShowFooter != nil {
		tmpl.ShowFooter = *req.ShowFooter
	}

	if err := s.repo.Update(ctx, tmpl); err != nil {
		return nil, err
	}

	if req.IsDefault != nil && *req.IsDefault && !tmpl.IsDefault {
		if err := s.repo.SetDefault(ctx, tmpl.ID); err != nil {
			return nil, err
		}
		tmpl.IsDefault = true
	}

	return tmpl, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ResolveStyle picks the effective style for a render: an explicit
// override wins, then the referenced template, then the default
// template, then the built-in style.
func (s *Service) ResolveStyle(
	ctx context.Context,
	templateID *string,
	override *Style,
) Style {
	if override != nil {
		return *override
	}

	if templateID != nil && *templateID != "" {
		if tmpl, err := s.repo.GetByID(ctx, *templateID); err == nil {
			return tmpl.Style()
		}
	}

	if tmpl, err := s.repo.GetDefault(ctx); err == nil {
		return tmpl.Style()
	}

	return DefaultStyle()
}
