package pages

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// PageRepository exposes persistence operations for pages.
type PageRepository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, projectID uuid.UUID, slug string) (*Page, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a page cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
