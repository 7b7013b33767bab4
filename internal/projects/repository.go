package projects

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewProjectBunRepository creates the generic bun repository for projects.
func NewProjectBunRepository(db *bun.DB) repository.Repository[*Project] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Project]{
		NewRecord:          func() *Project { return &Project{} },
		GetID:              func(project *Project) uuid.UUID { return project.ID },
		SetID:              func(project *Project, id uuid.UUID) { project.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(project *Project) string { return project.Slug },
	})
}
