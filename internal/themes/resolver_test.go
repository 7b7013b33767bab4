package themes

import (
	"strings"
	"testing"
)

func themeConfig() *PageConfig {
	return &PageConfig{
		Colors: &ColorConfig{
			Background: "#101010",
			Primary:    "#ff0055",
			Text:       "#fafafa",
		},
	}
}

func pageLocalConfig() *PageConfig {
	return &PageConfig{
		Colors: &ColorConfig{Background: "#222222"},
	}
}

func TestResolvePrefersThemeOverPageConfig(t *testing.T) {
	def := DefaultConfig()
	resolved := Resolve(themeConfig(), pageLocalConfig(), def)

	if resolved.Background != "#101010" {
		t.Fatalf("expected theme background, got %q", resolved.Background)
	}
	if resolved.Primary != "#ff0055" {
		t.Fatalf("expected theme primary, got %q", resolved.Primary)
	}
	// The page config must be ignored entirely; no field-by-field merging.
	if resolved.Background == "#222222" {
		t.Fatal("page config leaked into a theme-based resolution")
	}
	// Leaves missing from the theme fall through to the system default.
	if resolved.Link != "#2563eb" {
		t.Fatalf("expected default link color, got %q", resolved.Link)
	}
	if resolved.FontFamily != "Inter, system-ui, sans-serif" {
		t.Fatalf("expected default font, got %q", resolved.FontFamily)
	}
}

func TestResolveFallsBackToPageConfig(t *testing.T) {
	resolved := Resolve(&PageConfig{}, pageLocalConfig(), DefaultConfig())
	if resolved.Background != "#222222" {
		t.Fatalf("expected page config background, got %q", resolved.Background)
	}
	resolvedNil := Resolve(nil, pageLocalConfig(), DefaultConfig())
	if resolvedNil.Background != "#222222" {
		t.Fatalf("expected page config background with nil theme, got %q", resolvedNil.Background)
	}
}

func TestResolveUsesSystemDefaultWhenBothEmpty(t *testing.T) {
	def := DefaultConfig()
	resolved := Resolve(nil, &PageConfig{}, def)

	if resolved.Background != def.Colors.Background {
		t.Fatalf("expected default background, got %q", resolved.Background)
	}
	if resolved.ButtonVariant != ButtonVariantFill {
		t.Fatalf("expected default button variant, got %q", resolved.ButtonVariant)
	}
	if resolved.BoxShadow != "none" {
		t.Fatalf("expected no shadow by default, got %q", resolved.BoxShadow)
	}
}

func TestResolveLegacyFlatFallback(t *testing.T) {
	legacy := &PageConfig{
		ButtonColor:     "#ff00ff",
		BackgroundColor: "#000000",
		FontFamily:      "Georgia, serif",
		Colors:          &ColorConfig{Text: "#333333"},
	}
	resolved := Resolve(legacy, nil, DefaultConfig())

	if resolved.Primary != "#ff00ff" {
		t.Fatalf("legacy buttonColor should back primary, got %q", resolved.Primary)
	}
	if resolved.Background != "#000000" {
		t.Fatalf("legacy backgroundColor should back background, got %q", resolved.Background)
	}
	if resolved.Text != "#333333" {
		t.Fatalf("sectioned text must win over legacy, got %q", resolved.Text)
	}
	if resolved.FontFamily != "Georgia, serif" {
		t.Fatalf("legacy fontFamily should apply, got %q", resolved.FontFamily)
	}
}

func TestResolveForPageProjectDefaultLayer(t *testing.T) {
	projectDefault := &PageConfig{Colors: &ColorConfig{Background: "#00ff00"}}
	resolved := ResolveForPage(nil, &PageConfig{}, projectDefault, DefaultConfig())
	if resolved.Background != "#00ff00" {
		t.Fatalf("expected project default background, got %q", resolved.Background)
	}

	withPage := ResolveForPage(nil, pageLocalConfig(), projectDefault, DefaultConfig())
	if withPage.Background != "#222222" {
		t.Fatalf("page config must win over project default, got %q", withPage.Background)
	}
}

func TestBoxShadow(t *testing.T) {
	if got := BoxShadow(ShadowNone, "#e5e7eb", 0.5); got != "none" {
		t.Fatalf("expected none, got %q", got)
	}
	if got := BoxShadow(ShadowSoft, "#000000", 1); got != "4px 4px 4px rgba(0, 0, 0, 1)" {
		t.Fatalf("unexpected soft shadow %q", got)
	}
	if got := BoxShadow(ShadowHard, "#e5e7eb", 0.5); got != "4px 4px 0px rgba(229, 231, 235, 0.5)" {
		t.Fatalf("unexpected hard shadow %q", got)
	}
	// Malformed colors degrade to black rather than erroring.
	if got := BoxShadow(ShadowHard, "oops", 0.5); got != "4px 4px 0px rgba(0, 0, 0, 0.5)" {
		t.Fatalf("unexpected fallback shadow %q", got)
	}
}

func TestCSSVariablesDeterministic(t *testing.T) {
	resolved := Resolve(themeConfig(), nil, DefaultConfig())
	first := resolved.CSSVariables()
	second := resolved.CSSVariables()
	if first != second {
		t.Fatal("CSS variable output must be stable")
	}
	if !strings.HasPrefix(first, "--pb-background: #101010;\n") {
		t.Fatalf("unexpected leading variable: %q", first[:40])
	}
	if !strings.Contains(first, "--pb-box-shadow: none;\n") {
		t.Fatal("missing box shadow variable")
	}
}

func TestUpgradeFoldsLegacyFields(t *testing.T) {
	upgraded := Upgrade(PageConfig{
		ButtonColor: "#123456",
		FontFamily:  "Georgia, serif",
		Colors:      &ColorConfig{Text: "#222222"},
	})

	if upgraded.Colors == nil || upgraded.Colors.Primary != "#123456" {
		t.Fatalf("legacy button color not folded: %+v", upgraded.Colors)
	}
	if upgraded.Colors.Text != "#222222" {
		t.Fatal("existing sectioned value must be preserved")
	}
	if upgraded.Typography == nil || upgraded.Typography.FontFamily != "Georgia, serif" {
		t.Fatalf("legacy font not folded: %+v", upgraded.Typography)
	}
	if upgraded.ButtonColor != "" || upgraded.FontFamily != "" {
		t.Fatal("legacy fields must be cleared after upgrade")
	}

	// Upgrading an already-sectioned config is a no-op.
	again := Upgrade(upgraded)
	if again.Colors.Primary != "#123456" || again.Typography.FontFamily != "Georgia, serif" {
		t.Fatalf("upgrade not idempotent: %+v", again)
	}
}
