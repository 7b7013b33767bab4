package projects

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ProjectRepository exposes persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) (*Project, error)
	Update(ctx context.Context, project *Project) (*Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	GetByUserSlug(ctx context.Context, userID uuid.UUID, slug string) (*Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a project cannot be located.
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
