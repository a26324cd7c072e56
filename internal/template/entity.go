// AngelaMos | 2026
// entity.go

package template

import (
	"time"
)

const (
	LayoutClassic = "classic"
	LayoutModern  = "modern"
	LayoutMinimal = "minimal"

	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

type Template struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	PrimaryColor    string    `db:"primary_color"`
	SecondaryColor  string    `db:"secondary_color"`
	FontFamily      string    `db:"font_family"`
	Layout          string    `db:"layout"`
	HeaderAlignment string    `db:"header_alignment"`
	ShowWatermark   bool      `db:"show_watermark"`
	ShowFooter      bool      `db:"show_footer"`
	IsDefault       bool      `db:"is_default"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (t *Template) Style() Style {
	return Style{
		PrimaryColor:    t.PrimaryColor,
		SecondaryColor:  t.SecondaryColor,
		FontFamily:      t.FontFamily,
		Layout:          t.Layout,
		HeaderAlignment: t.HeaderAlignment,
		ShowWatermark:   t.ShowWatermark,
		ShowFooter:      t.ShowFooter,
	}
}
