package blocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Type tags the closed set of block kinds a page can contain. Unknown tags
// coming back from the store are preserved and simply render as nothing.
type Type string

const (
	TypeHeader     Type = "header"
	TypeSocialGrid Type = "social_grid"
	TypeSeparator  Type = "separator"
	TypeTitle      Type = "title"
	TypeText       Type = "text"
	TypeHero       Type = "hero"
	TypeLink       Type = "link"
	TypeDoubleLink Type = "double-link"
	TypeFile       Type = "file"
	TypeImage      Type = "image"
	TypeEmbed      Type = "embed"
)

// Types lists every known block type in presentation order.
func Types() []Type {
	return []Type{
		TypeHeader, TypeSocialGrid, TypeSeparator, TypeTitle, TypeText,
		TypeHero, TypeLink, TypeDoubleLink, TypeFile, TypeImage, TypeEmbed,
	}
}

// Known reports whether t belongs to the closed type set.
func Known(t Type) bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Block is one positioned content unit on a page. IDs are client-generated
// so the editor can insert blocks optimistically before the batched save.
// Position is a dense rank re-derived from array order at save time; the
// model itself does not enforce uniqueness.
type Block struct {
	bun.BaseModel `bun:"table:blocks,alias:b"`

	ID        uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	PageID    uuid.UUID      `bun:"page_id,notnull,type:uuid" json:"page_id"`
	Type      Type           `bun:"type,notnull" json:"type"`
	Content   map[string]any `bun:"content,type:jsonb,notnull,default:'{}'" json:"content"`
	Position  int            `bun:"position,notnull,default:0" json:"position"`
	IsVisible bool           `bun:"is_visible,notnull,default:true" json:"is_visible"`
	CreatedAt time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// DefaultContent returns the initial content map for a freshly added block.
// The copy is fresh on every call so callers can mutate it safely.
func DefaultContent(t Type) map[string]any {
	switch t {
	case TypeLink:
		return map[string]any{"title": "Nouveau lien", "url": "https://"}
	case TypeHeader:
		return map[string]any{"title": "Mon Profil", "url": ""}
	case TypeSocialGrid:
		return map[string]any{"links": []any{map[string]any{"icon": "globe", "url": ""}}}
	case TypeSeparator:
		return map[string]any{}
	case TypeTitle:
		return map[string]any{"title": "Nouveau Titre", "align": "left"}
	case TypeText:
		return map[string]any{"text": "Votre texte ici..."}
	case TypeHero:
		return map[string]any{"title": "", "text": "", "url": ""}
	case TypeEmbed:
		return map[string]any{"url": ""}
	case TypeDoubleLink:
		return map[string]any{"links": []any{
			map[string]any{"label": "Lien 1", "url": ""},
			map[string]any{"label": "Lien 2", "url": ""},
		}}
	case TypeImage, TypeFile:
		return map[string]any{"title": "", "url": ""}
	default:
		return map[string]any{}
	}
}

// Visible resolves the effective visibility of a block. Migration-era rows
// carry two sources of truth; content.is_visible wins when present, then the
// top-level column, then visible-by-default.
func (b *Block) Visible() bool {
	if b == nil {
		return false
	}
	if raw, ok := b.Content["is_visible"]; ok {
		if value, ok := raw.(bool); ok {
			return value
		}
	}
	return b.IsVisible
}

// SetVisible writes both visibility fields, preserving the sync invariant.
func (b *Block) SetVisible(visible bool) {
	if b == nil {
		return
	}
	if b.Content == nil {
		b.Content = map[string]any{}
	}
	b.Content["is_visible"] = visible
	b.IsVisible = visible
}

// NormalizeVisibility syncs both visibility fields from the resolved value.
// Load paths run this once so legacy rows converge to a single truth.
func (b *Block) NormalizeVisibility() {
	b.SetVisible(b.Visible())
}
