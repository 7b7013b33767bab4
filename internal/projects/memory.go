package projects

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryProjectRepository constructs an in-memory project repository.
func NewMemoryProjectRepository() ProjectRepository {
	return &memoryProjectRepository{
		byID: make(map[uuid.UUID]*Project),
	}
}

type memoryProjectRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Project
}

func (m *memoryProjectRepository) Create(_ context.Context, project *Project) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneProject(project)
	m.byID[cloned.ID] = cloned
	return cloneProject(cloned), nil
}

func (m *memoryProjectRepository) Update(_ context.Context, project *Project) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[project.ID]; !ok {
		return nil, &NotFoundError{Resource: "project", Key: project.ID.String()}
	}
	cloned := cloneProject(project)
	m.byID[cloned.ID] = cloned
	return cloneProject(cloned), nil
}

func (m *memoryProjectRepository) GetByID(_ context.Context, id uuid.UUID) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "project", Key: id.String()}
	}
	return cloneProject(record), nil
}

func (m *memoryProjectRepository) GetBySlug(_ context.Context, slug string) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.Slug == slug {
			return cloneProject(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "project", Key: slug}
}

func (m *memoryProjectRepository) GetByUserSlug(_ context.Context, userID uuid.UUID, slug string) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, record := range m.byID {
		if record.UserID == userID && record.Slug == slug {
			return cloneProject(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "project", Key: slug}
}

func (m *memoryProjectRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Project, 0)
	for _, record := range m.byID {
		if record.UserID == userID {
			records = append(records, cloneProject(record))
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

func (m *memoryProjectRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "project", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}

func cloneProject(project *Project) *Project {
	if project == nil {
		return nil
	}
	cloned := *project
	if project.DefaultThemeID != nil {
		themeID := *project.DefaultThemeID
		cloned.DefaultThemeID = &themeID
	}
	return &cloned
}
