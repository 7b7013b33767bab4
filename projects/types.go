package projects

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Project is a user's workspace: a named container of pages sharing a public
// slug and an optional default theme applied to pages without one.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:pr"`

	ID             uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	UserID         uuid.UUID  `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Name           string     `bun:"name,notnull" json:"name"`
	Slug           string     `bun:"slug,notnull" json:"slug"`
	DefaultThemeID *uuid.UUID `bun:"default_theme_id,type:uuid,nullzero" json:"default_theme_id,omitempty"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
