package blocks

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewBlockBunRepository creates the generic bun repository for blocks.
func NewBlockBunRepository(db *bun.DB) repository.Repository[*Block] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Block]{
		NewRecord:          func() *Block { return &Block{} },
		GetID:              func(record *Block) uuid.UUID { return record.ID },
		SetID:              func(record *Block, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(record *Block) string { return record.ID.String() },
	})
}
