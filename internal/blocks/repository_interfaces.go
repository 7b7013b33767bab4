package blocks

import (
	"context"

	"github.com/google/uuid"
)

// BlockRepository exposes persistence operations for page blocks. Blocks are
// always read and written as a whole page: the editor saves the full array,
// so partial mutation APIs are deliberately absent.
type BlockRepository interface {
	ListByPage(ctx context.Context, pageID uuid.UUID) ([]*Block, error)
	ReplacePageBlocks(ctx context.Context, pageID uuid.UUID, records []*Block) ([]*Block, error)
	DeleteByPage(ctx context.Context, pageID uuid.UUID) error
}
