package themes

import (
	"fmt"
	"strconv"
	"strings"
)

// EffectiveConfig is the fully-resolved set of rendering variables. Every
// field is always populated; the renderer never needs a fallback of its own.
type EffectiveConfig struct {
	Background string
	Primary    string
	Secondary  string
	Text       string
	Link       string
	ButtonText string

	FontFamily string

	BorderRadius string
	BorderWidth  string
	BorderStyle  string

	DividerStyle string
	DividerWidth string
	DividerColor string

	HeaderImage   string
	ButtonVariant string
	BoxShadow     string
}

// Resolve produces the effective rendering config for a page. Selection is
// all-or-nothing at the top level: the first of [theme, pageConfig] that is
// non-empty becomes the base, otherwise the system default is used. There is
// no field-by-field merge across theme and pageConfig, which keeps a
// partially-filled theme from mixing with page-local tweaks. Per-leaf
// resolution then falls back sectioned field, legacy flat field, system
// default, in that order.
func Resolve(theme, pageConfig *PageConfig, systemDefault PageConfig) EffectiveConfig {
	def := normalizeDefault(systemDefault)
	base := selectBase(def, theme, pageConfig)
	return resolveLeaves(base, def)
}

// normalizeDefault guarantees every section of the system default exists so
// leaf resolution stays total even when a caller hands in a partial default.
func normalizeDefault(def PageConfig) PageConfig {
	full := DefaultConfig()
	if def.Colors == nil {
		def.Colors = full.Colors
	}
	if def.Typography == nil {
		def.Typography = full.Typography
	}
	if def.Borders == nil {
		def.Borders = full.Borders
	}
	if def.Dividers == nil {
		def.Dividers = full.Dividers
	}
	if def.Shadows == nil {
		def.Shadows = full.Shadows
	}
	if def.ButtonVariant == "" {
		def.ButtonVariant = full.ButtonVariant
	}
	return def
}

// ResolveForPage layers the project default theme behind the page-level
// candidates: page theme, page local config, project default theme, system
// default. Selection stays all-or-nothing.
func ResolveForPage(pageTheme, pageConfig, projectDefault *PageConfig, systemDefault PageConfig) EffectiveConfig {
	def := normalizeDefault(systemDefault)
	base := selectBase(def, pageTheme, pageConfig, projectDefault)
	return resolveLeaves(base, def)
}

// selectBase picks the first non-empty candidate, falling back to def.
func selectBase(def PageConfig, candidates ...*PageConfig) *PageConfig {
	for _, candidate := range candidates {
		if !candidate.IsEmpty() {
			return candidate
		}
	}
	return &def
}

func resolveLeaves(base *PageConfig, def PageConfig) EffectiveConfig {
	colors := base.Colors
	if colors == nil {
		colors = &ColorConfig{}
	}
	defColors := def.Colors

	out := EffectiveConfig{
		Background: firstOf(colors.Background, base.BackgroundColor, defColors.Background),
		Primary:    firstOf(colors.Primary, base.ButtonColor, defColors.Primary),
		Secondary:  firstOf(colors.Secondary, "", defColors.Secondary),
		Text:       firstOf(colors.Text, base.TextColor, defColors.Text),
		Link:       firstOf(colors.Link, base.LinkColor, defColors.Link),
		ButtonText: firstOf(colors.ButtonText, base.ButtonTextColor, defColors.ButtonText),
	}

	fontFamily := ""
	if base.Typography != nil {
		fontFamily = base.Typography.FontFamily
	}
	out.FontFamily = firstOf(fontFamily, base.FontFamily, def.Typography.FontFamily)

	borders := base.Borders
	if borders == nil {
		borders = &BorderConfig{}
	}
	out.BorderRadius = firstOf(borders.Radius, "", def.Borders.Radius)
	out.BorderWidth = firstOf(borders.Width, "", def.Borders.Width)
	out.BorderStyle = firstOf(borders.Style, "", def.Borders.Style)

	dividers := base.Dividers
	if dividers == nil {
		dividers = &DividerConfig{}
	}
	out.DividerStyle = firstOf(dividers.Style, "", def.Dividers.Style)
	out.DividerWidth = firstOf(dividers.Width, "", def.Dividers.Width)
	out.DividerColor = firstOf(dividers.Color, "", def.Dividers.Color)

	out.HeaderImage = base.HeaderImageURL
	out.ButtonVariant = firstOf(base.ButtonVariant, "", def.ButtonVariant)

	shadowStyle := ShadowNone
	shadowOpacity := 0.25
	if def.Shadows != nil {
		shadowStyle = firstOf(def.Shadows.Style, "", ShadowNone)
		if def.Shadows.Opacity != nil {
			shadowOpacity = *def.Shadows.Opacity
		}
	}
	if base.Shadows != nil {
		if base.Shadows.Style != "" {
			shadowStyle = base.Shadows.Style
		}
		if base.Shadows.Opacity != nil {
			shadowOpacity = *base.Shadows.Opacity
		}
	}
	out.BoxShadow = BoxShadow(shadowStyle, out.Secondary, shadowOpacity)

	return out
}

func firstOf(sectioned, legacy, fallback string) string {
	if sectioned != "" {
		return sectioned
	}
	if legacy != "" {
		return legacy
	}
	return fallback
}

// BoxShadow derives the CSS box-shadow string for a shadow style. The shadow
// color is the secondary color converted to rgba with the configured
// opacity; soft shadows get a 4px blur, hard shadows none.
func BoxShadow(style, hexColor string, opacity float64) string {
	if style == ShadowNone || style == "" {
		return "none"
	}
	blur := "0px"
	if style == ShadowSoft {
		blur = "4px"
	}
	r, g, b, ok := hexToRGB(hexColor)
	if !ok {
		r, g, b = 0, 0, 0
	}
	return fmt.Sprintf("4px 4px %s rgba(%d, %d, %d, %s)", blur, r, g, b, formatOpacity(opacity))
}

// hexToRGB splits consecutive hex pairs after the leading # and parses each
// in base 16. Short forms like #abc are not produced by the editor and fail
// the ok flag.
func hexToRGB(hexColor string) (r, g, b int, ok bool) {
	value := strings.TrimPrefix(strings.TrimSpace(hexColor), "#")
	if len(value) < 6 {
		return 0, 0, 0, false
	}
	channels := [3]int{}
	for i := 0; i < 3; i++ {
		parsed, err := strconv.ParseInt(value[i*2:i*2+2], 16, 32)
		if err != nil {
			return 0, 0, 0, false
		}
		channels[i] = int(parsed)
	}
	return channels[0], channels[1], channels[2], true
}

func formatOpacity(opacity float64) string {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return strconv.FormatFloat(opacity, 'f', -1, 64)
}

// cssVariableOrder fixes the emission order so editor preview and public
// render produce byte-identical output.
var cssVariableOrder = []struct {
	name  string
	value func(EffectiveConfig) string
}{
	{"--pb-background", func(c EffectiveConfig) string { return c.Background }},
	{"--pb-primary", func(c EffectiveConfig) string { return c.Primary }},
	{"--pb-secondary", func(c EffectiveConfig) string { return c.Secondary }},
	{"--pb-text", func(c EffectiveConfig) string { return c.Text }},
	{"--pb-link", func(c EffectiveConfig) string { return c.Link }},
	{"--pb-button-text", func(c EffectiveConfig) string { return c.ButtonText }},
	{"--pb-font-family", func(c EffectiveConfig) string { return c.FontFamily }},
	{"--pb-border-radius", func(c EffectiveConfig) string { return c.BorderRadius }},
	{"--pb-border-width", func(c EffectiveConfig) string { return c.BorderWidth }},
	{"--pb-border-style", func(c EffectiveConfig) string { return c.BorderStyle }},
	{"--pb-divider-style", func(c EffectiveConfig) string { return c.DividerStyle }},
	{"--pb-divider-width", func(c EffectiveConfig) string { return c.DividerWidth }},
	{"--pb-divider-color", func(c EffectiveConfig) string { return c.DividerColor }},
	{"--pb-box-shadow", func(c EffectiveConfig) string { return c.BoxShadow }},
}

// CSSVariables renders the effective config as CSS custom properties. Both
// rendering surfaces call this single function so the output is identical
// byte for byte.
func (c EffectiveConfig) CSSVariables() string {
	var out strings.Builder
	for _, entry := range cssVariableOrder {
		out.WriteString(entry.name)
		out.WriteString(": ")
		out.WriteString(entry.value(c))
		out.WriteString(";\n")
	}
	if c.HeaderImage != "" {
		out.WriteString("--pb-header-image: url(")
		out.WriteString(c.HeaderImage)
		out.WriteString(");\n")
	}
	return out.String()
}

// Upgrade rewrites a config so only the sectioned schema is populated,
// folding legacy flat fields into their sectioned equivalents. Save paths
// run configs through this so persisted data converges to the new schema;
// legacy fields are read as fallbacks but never written.
func Upgrade(cfg PageConfig) PageConfig {
	out := cfg

	if cfg.BackgroundColor != "" || cfg.ButtonColor != "" || cfg.ButtonTextColor != "" ||
		cfg.TextColor != "" || cfg.LinkColor != "" {
		colors := ColorConfig{}
		if cfg.Colors != nil {
			colors = *cfg.Colors
		}
		colors.Background = firstOf(colors.Background, cfg.BackgroundColor, "")
		colors.Primary = firstOf(colors.Primary, cfg.ButtonColor, "")
		colors.ButtonText = firstOf(colors.ButtonText, cfg.ButtonTextColor, "")
		colors.Text = firstOf(colors.Text, cfg.TextColor, "")
		colors.Link = firstOf(colors.Link, cfg.LinkColor, "")
		out.Colors = &colors
	}

	if cfg.FontFamily != "" {
		typography := TypographyConfig{}
		if cfg.Typography != nil {
			typography = *cfg.Typography
		}
		typography.FontFamily = firstOf(typography.FontFamily, cfg.FontFamily, "")
		out.Typography = &typography
	}

	out.BackgroundColor = ""
	out.ButtonColor = ""
	out.ButtonTextColor = ""
	out.TextColor = ""
	out.LinkColor = ""
	out.FontFamily = ""

	return out
}
