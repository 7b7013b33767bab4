package projects

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunProjectRepository implements ProjectRepository with optional caching.
type BunProjectRepository struct {
	repo repository.Repository[*Project]
}

// NewBunProjectRepository creates a project repository without caching.
func NewBunProjectRepository(db *bun.DB) *BunProjectRepository {
	return NewBunProjectRepositoryWithCache(db, nil, nil)
}

// NewBunProjectRepositoryWithCache creates a project repository with caching support.
func NewBunProjectRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunProjectRepository {
	base := NewProjectBunRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunProjectRepository{repo: base}
}

func (r *BunProjectRepository) Create(ctx context.Context, project *Project) (*Project, error) {
	record, err := r.repo.Create(ctx, project)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunProjectRepository) Update(ctx context.Context, project *Project) (*Project, error) {
	record, err := r.repo.Update(ctx, project)
	if err != nil {
		return nil, mapRepositoryError(err, "project", project.ID.String())
	}
	return record, nil
}

func (r *BunProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "project", id.String())
	}
	return record, nil
}

func (r *BunProjectRepository) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "project", slug)
	}
	return record, nil
}

func (r *BunProjectRepository) GetByUserSlug(ctx context.Context, userID uuid.UUID, slug string) (*Project, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.user_id = ?", userID).
				Where("?TableAlias.slug = ?", slug)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "project", slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "project", Key: slug}
	}
	return records[0], nil
}

func (r *BunProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Project, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.user_id = ?", userID).Order("created_at ASC")
	}))
	return records, err
}

func (r *BunProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Project{ID: id}); err != nil {
		return mapRepositoryError(err, "project", id.String())
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
