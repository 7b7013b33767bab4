package themes

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Theme is a named, reusable page configuration owned by a project. A project
// may reference one theme as its default via Project.DefaultThemeID.
type Theme struct {
	bun.BaseModel `bun:"table:themes,alias:t"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Name      string     `bun:"name,notnull" json:"name"`
	Config    PageConfig `bun:"config,type:jsonb,notnull,default:'{}'" json:"config"`
	ProjectID uuid.UUID  `bun:"project_id,notnull,type:uuid" json:"project_id"`
	UserID    uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// PageConfig captures the visual configuration of a page or theme. New data
// uses the sectioned fields; the flat fields at the bottom are a legacy
// schema read as a fallback and never written back on save, so stored
// configs converge to the sectioned form over time.
type PageConfig struct {
	Colors     *ColorConfig      `json:"colors,omitempty"`
	Typography *TypographyConfig `json:"typography,omitempty"`
	Borders    *BorderConfig     `json:"borders,omitempty"`
	Dividers   *DividerConfig    `json:"dividers,omitempty"`
	Shadows    *ShadowConfig     `json:"shadows,omitempty"`

	// Root-level presentation knobs.
	ButtonVariant  string `json:"buttonVariant,omitempty"`
	HeaderImageURL string `json:"headerImageUrl,omitempty"`

	// Legacy flat fields. Read-only fallbacks for migration-era rows.
	BackgroundColor string `json:"backgroundColor,omitempty"`
	ButtonColor     string `json:"buttonColor,omitempty"`
	ButtonTextColor string `json:"buttonTextColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	LinkColor       string `json:"linkColor,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
}

// ColorConfig groups the palette used by the renderer.
type ColorConfig struct {
	Background string `json:"background,omitempty"`
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Text       string `json:"text,omitempty"`
	Link       string `json:"link,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
}

// TypographyConfig groups font settings.
type TypographyConfig struct {
	FontFamily string `json:"fontFamily,omitempty"`
}

// BorderConfig groups button and card border settings.
type BorderConfig struct {
	Radius string `json:"radius,omitempty"`
	Width  string `json:"width,omitempty"`
	Style  string `json:"style,omitempty"`
}

// DividerConfig styles separator blocks.
type DividerConfig struct {
	Style string `json:"style,omitempty"`
	Width string `json:"width,omitempty"`
	Color string `json:"color,omitempty"`
}

// Shadow styles accepted by ShadowConfig.Style.
const (
	ShadowNone = "none"
	ShadowHard = "hard"
	ShadowSoft = "soft"
)

// ShadowConfig controls the box shadow applied to buttons and cards.
type ShadowConfig struct {
	Style   string   `json:"style,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// Button variants understood by the renderer.
const (
	ButtonVariantFill       = "fill"
	ButtonVariantOutline    = "outline"
	ButtonVariantSoftShadow = "soft-shadow"
)

// IsEmpty reports whether the config carries no information at all. An empty
// config never wins theme resolution; selection falls through to the next
// candidate.
func (c *PageConfig) IsEmpty() bool {
	if c == nil {
		return true
	}
	return c.Colors == nil &&
		c.Typography == nil &&
		c.Borders == nil &&
		c.Dividers == nil &&
		c.Shadows == nil &&
		c.ButtonVariant == "" &&
		c.HeaderImageURL == "" &&
		c.BackgroundColor == "" &&
		c.ButtonColor == "" &&
		c.ButtonTextColor == "" &&
		c.TextColor == "" &&
		c.LinkColor == "" &&
		c.FontFamily == ""
}

// DefaultConfig returns the fully-populated system default used as the last
// resolution fallback. Every leaf the renderer reads is set.
func DefaultConfig() PageConfig {
	opacity := 0.25
	return PageConfig{
		Colors: &ColorConfig{
			Background: "#ffffff",
			Primary:    "#111827",
			Secondary:  "#e5e7eb",
			Text:       "#1f2937",
			Link:       "#2563eb",
			ButtonText: "#ffffff",
		},
		Typography: &TypographyConfig{
			FontFamily: "Inter, system-ui, sans-serif",
		},
		Borders: &BorderConfig{
			Radius: "8px",
			Width:  "1px",
			Style:  "solid",
		},
		Dividers: &DividerConfig{
			Style: "solid",
			Width: "1px",
			Color: "#e5e7eb",
		},
		Shadows: &ShadowConfig{
			Style:   ShadowNone,
			Opacity: &opacity,
		},
		ButtonVariant: ButtonVariantFill,
	}
}
