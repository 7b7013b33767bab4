package themes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ThemeRepository exposes persistence operations for themes.
type ThemeRepository interface {
	Create(ctx context.Context, theme *Theme) (*Theme, error)
	Update(ctx context.Context, theme *Theme) (*Theme, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Theme, error)
	GetByName(ctx context.Context, projectID uuid.UUID, name string) (*Theme, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Theme, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a theme cannot be located.
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
