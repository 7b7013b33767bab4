package blocks

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

// BunBlockRepository implements BlockRepository with optional caching on the
// read path. Replace runs against the raw DB handle because it needs a
// transaction spanning delete and bulk insert.
type BunBlockRepository struct {
	db   *bun.DB
	repo repository.Repository[*Block]
}

// NewBunBlockRepository creates a block repository without caching.
func NewBunBlockRepository(db *bun.DB) *BunBlockRepository {
	return NewBunBlockRepositoryWithCache(db, nil, nil)
}

// NewBunBlockRepositoryWithCache creates a block repository with caching support.
func NewBunBlockRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunBlockRepository {
	base := NewBlockBunRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunBlockRepository{db: db, repo: base}
}

func (r *BunBlockRepository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Block, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.page_id = ?", pageID).Order("position ASC")
	}))
	if err != nil {
		return nil, mapBlockRepositoryError(err, pageID.String())
	}
	return records, nil
}

// ReplacePageBlocks swaps the page's stored blocks for the given array in a
// single transaction. Positions are trusted as sent; the service derives them
// from array order before calling in.
func (r *BunBlockRepository) ReplacePageBlocks(ctx context.Context, pageID uuid.UUID, records []*Block) ([]*Block, error) {
	if r.db == nil {
		return nil, fmt.Errorf("block repository: database not configured")
	}

	toInsert := make([]*Block, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		cloned := *record
		cloned.PageID = pageID
		if cloned.ID == uuid.Nil {
			cloned.ID = uuid.New()
		}
		toInsert = append(toInsert, &cloned)
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*Block)(nil)).
			Where("?TableAlias.page_id = ?", pageID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete page blocks: %w", err)
		}

		if len(toInsert) == 0 {
			return nil
		}

		if _, err := tx.NewInsert().
			Model(&toInsert).
			Exec(ctx); err != nil {
			return fmt.Errorf("insert page blocks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInsert, nil
}

func (r *BunBlockRepository) DeleteByPage(ctx context.Context, pageID uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("block repository: database not configured")
	}
	if _, err := r.db.NewDelete().
		Model((*Block)(nil)).
		Where("?TableAlias.page_id = ?", pageID).
		Exec(ctx); err != nil {
		return fmt.Errorf("delete page blocks: %w", err)
	}
	return nil
}

func mapBlockRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "block", Key: key}
	}
	return fmt.Errorf("block repository error: %w", err)
}
