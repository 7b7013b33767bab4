package themes

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryThemeRepository constructs an in-memory theme repository.
func NewMemoryThemeRepository() ThemeRepository {
	return &memoryThemeRepository{
		byID: make(map[uuid.UUID]*Theme),
	}
}

type memoryThemeRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Theme
}

func (m *memoryThemeRepository) Create(_ context.Context, theme *Theme) (*Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneTheme(theme)
	m.byID[cloned.ID] = cloned
	return cloneTheme(cloned), nil
}

func (m *memoryThemeRepository) Update(_ context.Context, theme *Theme) (*Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[theme.ID]; !ok {
		return nil, &NotFoundError{Resource: "theme", Key: theme.ID.String()}
	}
	cloned := cloneTheme(theme)
	m.byID[cloned.ID] = cloned
	return cloneTheme(cloned), nil
}

func (m *memoryThemeRepository) GetByID(_ context.Context, id uuid.UUID) (*Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "theme", Key: id.String()}
	}
	return cloneTheme(record), nil
}

func (m *memoryThemeRepository) GetByName(_ context.Context, projectID uuid.UUID, name string) (*Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.ProjectID == projectID && strings.EqualFold(record.Name, name) {
			return cloneTheme(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "theme", Key: name}
}

func (m *memoryThemeRepository) ListByProject(_ context.Context, projectID uuid.UUID) ([]*Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Theme, 0)
	for _, record := range m.byID {
		if record.ProjectID == projectID {
			records = append(records, cloneTheme(record))
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].Name < records[j].Name
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (m *memoryThemeRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "theme", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func cloneTheme(theme *Theme) *Theme {
	if theme == nil {
		return nil
	}
	cloned := *theme
	cloned.Config = CloneConfig(theme.Config)
	return &cloned
}

// CloneConfig deep-copies a page config, including its pointer sections.
func CloneConfig(cfg PageConfig) PageConfig {
	out := cfg
	if cfg.Colors != nil {
		colors := *cfg.Colors
		out.Colors = &colors
	}
	if cfg.Typography != nil {
		typography := *cfg.Typography
		out.Typography = &typography
	}
	if cfg.Borders != nil {
		borders := *cfg.Borders
		out.Borders = &borders
	}
	if cfg.Dividers != nil {
		dividers := *cfg.Dividers
		out.Dividers = &dividers
	}
	if cfg.Shadows != nil {
		shadows := *cfg.Shadows
		if cfg.Shadows.Opacity != nil {
			opacity := *cfg.Shadows.Opacity
			shadows.Opacity = &opacity
		}
		out.Shadows = &shadows
	}
	return out
}
