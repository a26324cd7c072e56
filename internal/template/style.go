// AngelaMos | 2026
// style.go

package template

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Style is the renderable subset of a template. Documents may persist
// one inline as a JSONB override, so it round-trips through the
// driver as JSON.
type Style struct {
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	FontFamily      string `json:"font_family"`
	Layout          string `json:"layout"`
	HeaderAlignment string `json:"header_alignment"`
	ShowWatermark   bool   `json:"show_watermark"`
	ShowFooter      bool   `json:"show_footer"`
}

func DefaultStyle() Style {
	return Style{
		PrimaryColor:    "#1e3a5f",
		SecondaryColor:  "#64748b",
		FontFamily:      "Helvetica",
		Layout:          LayoutClassic,
		HeaderAlignment: AlignLeft,
		ShowWatermark:   false,
		ShowFooter:      true,
	}
}

func (s Style) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Style) Scan(src any) error {
	if src == nil {
		*s = Style{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("scan style: unsupported type %T", src)
	}

	return json.Unmarshal(data, s)
}
