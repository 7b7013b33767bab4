package themes

import buildthemes "github.com/pagehaven/go-builder/themes"

type (
	Theme            = buildthemes.Theme
	PageConfig       = buildthemes.PageConfig
	ColorConfig      = buildthemes.ColorConfig
	TypographyConfig = buildthemes.TypographyConfig
	BorderConfig     = buildthemes.BorderConfig
	DividerConfig    = buildthemes.DividerConfig
	ShadowConfig     = buildthemes.ShadowConfig
)

const (
	ShadowNone = buildthemes.ShadowNone
	ShadowHard = buildthemes.ShadowHard
	ShadowSoft = buildthemes.ShadowSoft

	ButtonVariantFill       = buildthemes.ButtonVariantFill
	ButtonVariantOutline    = buildthemes.ButtonVariantOutline
	ButtonVariantSoftShadow = buildthemes.ButtonVariantSoftShadow
)

// DefaultConfig re-exports the system default configuration.
func DefaultConfig() PageConfig {
	return buildthemes.DefaultConfig()
}
