package pages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/pagehaven/go-builder/themes"
)

// Page is one published surface inside a project: a slug-addressed block
// stack with per-page appearance overrides. Config holds the page-level
// theme overrides; ThemeID points at a reusable theme that, when set, wins
// over Config wholesale.
type Page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID          uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	ProjectID   uuid.UUID         `bun:"project_id,notnull,type:uuid" json:"project_id"`
	Title       string            `bun:"title,notnull" json:"title"`
	Slug        string            `bun:"slug,notnull" json:"slug"`
	Description string            `bun:"description" json:"description,omitempty"`
	MetaTitle   string            `bun:"meta_title" json:"meta_title,omitempty"`
	Config      themes.PageConfig `bun:"config,type:jsonb" json:"config"`
	ThemeID     *uuid.UUID        `bun:"theme_id,type:uuid,nullzero" json:"theme_id,omitempty"`
	IsPublished bool              `bun:"is_published,notnull,default:false" json:"is_published"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// SEOTitle returns the browser/OG title for the page, preferring the explicit
// meta title over the display title.
func (p *Page) SEOTitle() string {
	if p.MetaTitle != "" {
		return p.MetaTitle
	}
	return p.Title
}
