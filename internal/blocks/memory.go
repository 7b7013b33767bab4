package blocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/util"
)

// NewMemoryBlockRepository constructs an in-memory block repository.
func NewMemoryBlockRepository() BlockRepository {
	return &memoryBlockRepository{
		byPage: make(map[uuid.UUID][]*Block),
	}
}

type memoryBlockRepository struct {
	mu     sync.RWMutex
	byPage map[uuid.UUID][]*Block
}

func (m *memoryBlockRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Block, 0, len(m.byPage[pageID]))
	for _, record := range m.byPage[pageID] {
		records = append(records, cloneBlock(record))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})
	return records, nil
}

func (m *memoryBlockRepository) ReplacePageBlocks(_ context.Context, pageID uuid.UUID, records []*Block) ([]*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]*Block, 0, len(records))
	for _, record := range records {
		stored = append(stored, cloneBlock(record))
	}
	m.byPage[pageID] = stored

	out := make([]*Block, 0, len(stored))
	for _, record := range stored {
		out = append(out, cloneBlock(record))
	}
	return out, nil
}

func (m *memoryBlockRepository) DeleteByPage(_ context.Context, pageID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byPage, pageID)
	return nil
}

func cloneBlock(record *Block) *Block {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Content = util.CloneAnyMap(record.Content)
	return &cloned
}
