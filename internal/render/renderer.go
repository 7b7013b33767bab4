package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/pagehaven/go-builder/embeds"
	"github.com/pagehaven/go-builder/internal/blocks"
	"github.com/pagehaven/go-builder/internal/logging"
	"github.com/pagehaven/go-builder/internal/themes"
	"github.com/pagehaven/go-builder/pkg/interfaces"
)

// Surface selects the rendering context. Hidden blocks are omitted on the
// public surface and rendered dimmed in the editor so authors can still see
// and re-enable them.
type Surface string

const (
	SurfacePublic Surface = "public"
	SurfaceEditor Surface = "editor"
)

// Renderer turns a page's block array plus its effective theme config into
// HTML. Rendering is pure: same blocks, same config, same bytes.
type Renderer struct {
	tmpl   *template.Template
	logger interfaces.Logger
}

// Option configures renderer behaviour.
type Option func(*Renderer)

// WithLoggerProvider attaches the module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(r *Renderer) {
		r.logger = logging.PagesLogger(provider)
	}
}

// NewRenderer parses the built-in block templates. Templates are static
// strings, so parse failures are programmer errors and panic.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		tmpl:   template.Must(template.New("builder").Parse(blockTemplates)),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderBlock renders a single block for the given surface. Hidden blocks
// produce no output publicly; unknown types and empty links produce no
// output anywhere.
func (r *Renderer) RenderBlock(block *blocks.Block, surface Surface) (template.HTML, error) {
	if block == nil {
		return "", nil
	}
	visible := block.Visible()
	if !visible && surface == SurfacePublic {
		return "", nil
	}

	body, err := r.renderBody(block)
	if err != nil {
		return "", err
	}
	if body == "" {
		return "", nil
	}

	class := "pb-block pb-block--" + string(block.Type)
	if !visible {
		class += " pb-block--hidden"
		body = `<span class="pb-block-hidden-label">Masqué</span>` + body
	}
	return template.HTML(fmt.Sprintf(`<div class="%s" data-block-id="%s">%s</div>`, class, block.ID, body)), nil
}

func (r *Renderer) renderBody(block *blocks.Block) (template.HTML, error) {
	content := blocks.DecodeContent(block.Type, block.Content)
	if content == nil {
		return "", nil
	}

	name := ""
	var data any = content

	switch typed := content.(type) {
	case blocks.LinkContent:
		if unsetURL(typed.URL) {
			return "", nil
		}
		name = "link"
	case blocks.HeaderContent:
		name = "header"
	case blocks.SocialGridContent:
		links := typed.Links[:0:0]
		for _, link := range typed.Links {
			if !unsetURL(link.URL) {
				link.Icon = socialIcon(link.Icon)
				links = append(links, link)
			}
		}
		if len(links) == 0 {
			return "", nil
		}
		name = "social_grid"
		data = blocks.SocialGridContent{Links: links}
	case blocks.TitleContent:
		name = "title"
	case blocks.TextContent:
		name = "text"
	case blocks.HeroContent:
		name = "hero"
	case blocks.DoubleLinkContent:
		name = "double_link"
	case blocks.EmbedContent:
		return r.renderEmbed(typed)
	case blocks.FileContent:
		if unsetURL(typed.URL) {
			return "", nil
		}
		if block.Type == blocks.TypeImage {
			name = "image"
		} else {
			name = "file"
		}
	case struct{}:
		name = "separator"
	default:
		return "", nil
	}

	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, name, data); err != nil {
		return "", fmt.Errorf("render %s block: %w", block.Type, err)
	}
	return template.HTML(out.String()), nil
}

func (r *Renderer) renderEmbed(content blocks.EmbedContent) (template.HTML, error) {
	if unsetURL(content.URL) {
		return "", nil
	}

	resolved := embeds.Resolve(content.URL)
	if resolved == nil {
		var out strings.Builder
		if err := r.tmpl.ExecuteTemplate(&out, "embed_unsupported", content); err != nil {
			return "", fmt.Errorf("render embed placeholder: %w", err)
		}
		return template.HTML(out.String()), nil
	}

	aspect := embeds.AspectFor(resolved.Type)
	data := struct {
		EmbedURL string
		Provider string
		// Style carries computed sizing values only; template.CSS keeps the
		// multi-declaration ratio box from being rejected by the CSS filter.
		Style template.CSS
		Ratio bool
	}{
		EmbedURL: resolved.EmbedURL,
		Provider: resolved.Type,
	}
	switch aspect.Mode {
	case embeds.AspectFixed:
		data.Style = template.CSS(fmt.Sprintf("height: %dpx", aspect.HeightPx))
	case embeds.AspectRatio:
		data.Ratio = true
		data.Style = template.CSS(fmt.Sprintf("position: relative; padding-bottom: %.2f%%", aspect.RatioPercent))
	}

	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, "embed", data); err != nil {
		return "", fmt.Errorf("render embed block: %w", err)
	}
	return template.HTML(out.String()), nil
}

// PageData carries everything the page shell needs.
type PageData struct {
	Title       string
	Description string
	CSS         template.CSS
	Blocks      []template.HTML
}

// RenderPage renders the full public or preview document: the theme's CSS
// variables, the base stylesheet, and every renderable block in order.
func (r *Renderer) RenderPage(title, description string, records []*blocks.Block, cfg themes.EffectiveConfig, surface Surface) (string, error) {
	rendered := make([]template.HTML, 0, len(records))
	for _, record := range records {
		html, err := r.RenderBlock(record, surface)
		if err != nil {
			return "", err
		}
		if html != "" {
			rendered = append(rendered, html)
		}
	}

	data := PageData{
		Title:       title,
		Description: description,
		CSS:         template.CSS(pageCSS(cfg)),
		Blocks:      rendered,
	}

	var out strings.Builder
	if err := r.tmpl.ExecuteTemplate(&out, "page", data); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return out.String(), nil
}

// unsetURL reports whether a URL field is still at its creation default.
func unsetURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "https://"
}

// socialIcons is the closed set of icons the social grid can display.
var socialIcons = map[string]bool{
	"globe":      true,
	"instagram":  true,
	"facebook":   true,
	"twitter":    true,
	"x":          true,
	"tiktok":     true,
	"youtube":    true,
	"linkedin":   true,
	"github":     true,
	"spotify":    true,
	"soundcloud": true,
	"twitch":     true,
	"snapchat":   true,
	"pinterest":  true,
	"whatsapp":   true,
	"telegram":   true,
	"discord":    true,
	"email":      true,
}

// socialIcon maps an icon name onto the known set; anything unrecognized
// falls back to the globe.
func socialIcon(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if socialIcons[normalized] {
		return normalized
	}
	return "globe"
}

// pageCSS emits the theme variables plus the base stylesheet. The soft
// shadow button variant derives its shadow from the primary color at 25%
// alpha rather than the theme shadow.
func pageCSS(cfg themes.EffectiveConfig) string {
	var out strings.Builder
	out.WriteString(":root {\n")
	out.WriteString(cfg.CSSVariables())
	out.WriteString("--pb-button-soft-shadow: ")
	out.WriteString(themes.BoxShadow(themes.ShadowSoft, cfg.Primary, 0.25))
	out.WriteString(";\n}\n")
	out.WriteString(baseCSS)

	switch cfg.ButtonVariant {
	case themes.ButtonVariantOutline:
		out.WriteString(outlineButtonCSS)
	case themes.ButtonVariantSoftShadow:
		out.WriteString(softShadowButtonCSS)
	default:
		out.WriteString(fillButtonCSS)
	}
	return out.String()
}

const baseCSS = `body {
  margin: 0;
  background: var(--pb-background);
  color: var(--pb-text);
  font-family: var(--pb-font-family);
}
.pb-page {
  max-width: 680px;
  margin: 0 auto;
  padding: 24px 16px;
  display: flex;
  flex-direction: column;
  gap: 16px;
}
.pb-block--hidden {
  opacity: 0.4;
}
.pb-block-hidden-label {
  display: inline-block;
  font-size: 11px;
  text-transform: uppercase;
  letter-spacing: 0.05em;
  opacity: 0.7;
}
.pb-header {
  text-align: center;
}
.pb-header img {
  width: 96px;
  height: 96px;
  border-radius: 50%;
  object-fit: cover;
}
.pb-social {
  display: flex;
  justify-content: center;
  gap: 12px;
}
.pb-social a {
  width: 44px;
  height: 44px;
  border-radius: 50%;
  display: inline-flex;
  align-items: center;
  justify-content: center;
  background: var(--pb-secondary);
  color: var(--pb-text);
  text-decoration: none;
}
.pb-separator {
  border: none;
  border-top: var(--pb-divider-width) var(--pb-divider-style) var(--pb-divider-color);
}
.pb-text {
  white-space: pre-wrap;
}
.pb-button {
  display: block;
  text-align: center;
  padding: 14px 18px;
  border-radius: var(--pb-border-radius);
  text-decoration: none;
  box-shadow: var(--pb-box-shadow);
}
.pb-double {
  display: grid;
  grid-template-columns: 1fr 1fr;
  gap: 12px;
}
.pb-image img, .pb-hero img {
  max-width: 100%;
  border-radius: var(--pb-border-radius);
}
.pb-file {
  display: flex;
  align-items: center;
  gap: 10px;
  text-decoration: none;
  color: var(--pb-text);
}
.pb-embed {
  width: 100%;
}
.pb-embed iframe {
  width: 100%;
  height: 100%;
  border: 0;
  border-radius: var(--pb-border-radius);
}
.pb-embed--ratio iframe {
  position: absolute;
  inset: 0;
}
a {
  color: var(--pb-link);
}
`

const fillButtonCSS = `.pb-button {
  background: var(--pb-primary);
  color: var(--pb-button-text);
  border: var(--pb-border-width) var(--pb-border-style) var(--pb-primary);
}
`

const outlineButtonCSS = `.pb-button {
  background: transparent;
  color: var(--pb-primary);
  border: var(--pb-border-width) var(--pb-border-style) var(--pb-primary);
}
`

const softShadowButtonCSS = `.pb-button {
  background: #ffffff;
  color: var(--pb-primary);
  border: var(--pb-border-width) var(--pb-border-style) var(--pb-primary);
  box-shadow: var(--pb-button-soft-shadow);
}
`

const blockTemplates = `
{{define "link"}}<a class="pb-button" href="{{.URL}}" target="_blank" rel="noopener">{{.Title}}</a>{{end}}

{{define "header"}}<header class="pb-header">{{if .URL}}<img src="{{.URL}}" alt="">{{end}}<h1>{{.Title}}</h1>{{if .Subtitle}}<p>{{.Subtitle}}</p>{{end}}</header>{{end}}

{{define "social_grid"}}<nav class="pb-social">{{range .Links}}<a href="{{.URL}}" target="_blank" rel="noopener" data-icon="{{.Icon}}"></a>{{end}}</nav>{{end}}

{{define "separator"}}<hr class="pb-separator">{{end}}

{{define "title"}}<h2 style="text-align: {{.Align}}">{{.Title}}</h2>{{end}}

{{define "text"}}<p class="pb-text">{{.Text}}</p>{{end}}

{{define "hero"}}<section class="pb-hero">{{if .URL}}<img src="{{.URL}}" alt="">{{end}}{{if .Title}}<h2>{{.Title}}</h2>{{end}}{{if .Text}}<p class="pb-text">{{.Text}}</p>{{end}}</section>{{end}}

{{define "double_link"}}<div class="pb-double">{{range .Links}}<a class="pb-button" href="{{.URL}}" target="_blank" rel="noopener">{{.Label}}</a>{{end}}</div>{{end}}

{{define "file"}}<a class="pb-file" href="{{.URL}}" target="_blank" rel="noopener" download><span data-icon="file"></span>{{.Title}}</a>{{end}}

{{define "image"}}<figure class="pb-image"><img src="{{.URL}}" alt="{{.Title}}">{{if .Title}}<figcaption>{{.Title}}</figcaption>{{end}}</figure>{{end}}

{{define "embed"}}<div class="pb-embed{{if .Ratio}} pb-embed--ratio{{end}}" data-provider="{{.Provider}}" style="{{.Style}}"><iframe src="{{.EmbedURL}}" loading="lazy" allowfullscreen allow="autoplay; encrypted-media; picture-in-picture"></iframe></div>{{end}}

{{define "embed_unsupported"}}<div class="pb-embed pb-embed--unsupported"><p>Contenu non disponible</p></div>{{end}}

{{define "page"}}<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{if .Description}}<meta name="description" content="{{.Description}}">
{{end}}<style>{{.CSS}}</style>
</head>
<body>
<main class="pb-page">
{{range .Blocks}}{{.}}
{{end}}</main>
</body>
</html>{{end}}
`
