package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/themes"
)

// NewMemoryPageRepository constructs an in-memory page repository.
func NewMemoryPageRepository() PageRepository {
	return &memoryPageRepository{
		byID: make(map[uuid.UUID]*Page),
	}
}

type memoryPageRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Page
}

func (m *memoryPageRepository) Create(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned
	return clonePage(cloned), nil
}

func (m *memoryPageRepository) Update(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[page.ID]; !ok {
		return nil, &NotFoundError{Resource: "page", Key: page.ID.String()}
	}
	cloned := clonePage(page)
	m.byID[cloned.ID] = cloned
	return clonePage(cloned), nil
}

func (m *memoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(record), nil
}

func (m *memoryPageRepository) GetBySlug(_ context.Context, projectID uuid.UUID, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.ProjectID == projectID && record.Slug == slug {
			return clonePage(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "page", Key: slug}
}

func (m *memoryPageRepository) ListByProject(_ context.Context, projectID uuid.UUID) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Page, 0)
	for _, record := range m.byID {
		if record.ProjectID == projectID {
			records = append(records, clonePage(record))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].Title < records[j].Title
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (m *memoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "page", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func clonePage(page *Page) *Page {
	if page == nil {
		return nil
	}
	cloned := *page
	cloned.Config = themes.CloneConfig(page.Config)
	if page.ThemeID != nil {
		themeID := *page.ThemeID
		cloned.ThemeID = &themeID
	}
	return &cloned
}
