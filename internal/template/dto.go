// AngelaMos | 2026
// dto.go

package template

import (
	"time"
)

type CreateTemplateRequest struct {
	Name            string `json:"name"             validate:"required,min=1,max=100"`
	PrimaryColor    string `json:"primary_color"    validate:"omitempty,hexcolor"`
	SecondaryColor  string `json:"secondary_color"  validate:"omitempty,hexcolor"`
	FontFamily      string `json:"font_family"      validate:"omitempty,oneof=Helvetica Times Courier"`
	Layout          string `json:"layout"           validate:"omitempty,oneof=classic modern minimal"`
	HeaderAlignment string `json:"header_alignment" validate:"omitempty,oneof=left center right"`
	ShowWatermark   bool   `json:"show_watermark"`
	ShowFooter      bool   `json:"show_footer"`
	IsDefault       bool   `json:"is_default"`
}

type UpdateTemplateRequest struct {
	Name            *string `json:"name,omitempty"             validate:"omitempty,min=1,max=100"`
	PrimaryColor    *string `json:"primary_color,omitempty"    validate:"omitempty,hexcolor"`
	SecondaryColor  *string `json:"secondary_color,omitempty"  validate:"omitempty,hexcolor"`
	FontFamily      *string `json:"font_family,omitempty"      validate:"omitempty,oneof=Helvetica Times Courier"`
	Layout          *string `json:"layout,omitempty"           validate:"omitempty,oneof=classic modern minimal"`
	HeaderAlignment *string `json:"header_alignment,omitempty" validate:"omitempty,oneof=left center right"`
	ShowWatermark   *bool   `json:"show_watermark,omitempty"`
	ShowFooter      *bool   `json:"show_footer,omitempty"`
	IsDefault       *bool   `json:"is_default,omitempty"`
}

type TemplateResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PrimaryColor    string    `json:"primary_color"`
	SecondaryColor  string    `json:"secondary_color"`
	FontFamily      string    `json:"font_family"`
	Layout          string    `json:"layout"`
	HeaderAlignment string    `json:"header_alignment"`
	ShowWatermark   bool      `json:"show_watermark"`
	ShowFooter      bool      `json:"show_footer"`
	IsDefault       bool      `json:"is_default"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToTemplateResponse(t *Template) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		Name:            t.Name,
		PrimaryColor:    t.PrimaryColor,
		SecondaryColor:  t.SecondaryColor,
		FontFamily:      t.FontFamily,
		Layout:          t.Layout,
		HeaderAlignment: t.HeaderAlignment,
		ShowWatermark:   t.ShowWatermark,
		ShowFooter:      t.ShowFooter,
		IsDefault:       t.IsDefault,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func ToTemplateResponseList(templates []Template) []TemplateResponse {
	responses := make([]TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, ToTemplateResponse(&t))
	}
	return responses
}
