package blocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/logging"
	"github.com/pagehaven/go-builder/pkg/interfaces"
)

// Service exposes block operations for a page. Blocks are saved as a full
// ordered array; positions are re-derived from array order on every save so
// the stored ranks stay dense regardless of what the client sends.
type Service interface {
	ListPageBlocks(ctx context.Context, pageID uuid.UUID) ([]*Block, error)
	SaveAll(ctx context.Context, pageID uuid.UUID, records []*Block) ([]*Block, error)
	NewBlock(pageID uuid.UUID, t Type) (*Block, error)
	ValidateContent(t Type, content map[string]any) error
	DeletePageBlocks(ctx context.Context, pageID uuid.UUID) error
	Registry() *Registry
}

// IDGenerator produces unique identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDGenerator overrides the default ID generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLoggerProvider attaches the module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *service) {
		s.logger = logging.BlocksLogger(provider)
	}
}

// WithRegistry overrides the built-in block definition registry.
func WithRegistry(registry *Registry) ServiceOption {
	return func(s *service) {
		if registry != nil {
			s.registry = registry
		}
	}
}

type service struct {
	blocks   BlockRepository
	registry *Registry
	id       IDGenerator
	now      func() time.Time
	logger   interfaces.Logger
}

// NewService constructs a block service instance.
func NewService(blockRepo BlockRepository, opts ...ServiceOption) Service {
	if blockRepo == nil {
		panic(ErrRepositoryRequired)
	}

	s := &service{
		blocks:   blockRepo,
		registry: NewRegistry(),
		id:       uuid.New,
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListPageBlocks(ctx context.Context, pageID uuid.UUID) ([]*Block, error) {
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}
	records, err := s.blocks.ListByPage(ctx, pageID)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		record.NormalizeVisibility()
	}
	return records, nil
}

// SaveAll persists the page's entire block array in one shot. Array order is
// authoritative: each block's position is rewritten to its index, so ranks
// coming in sparse or duplicated leave the store dense.
func (s *service) SaveAll(ctx context.Context, pageID uuid.UUID, records []*Block) ([]*Block, error) {
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}

	now := s.now().UTC()
	for i, record := range records {
		if record.ID == uuid.Nil {
			record.ID = s.id()
			record.CreatedAt = now
		}
		record.PageID = pageID
		record.Position = i
		record.NormalizeVisibility()
		record.UpdatedAt = now
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}

		if err := s.registry.ValidateContent(record.Type, record.Content); err != nil {
			return nil, err
		}
	}

	saved, err := s.blocks.ReplacePageBlocks(ctx, pageID, records)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page blocks saved", "page_id", pageID.String(), "count", len(saved))
	return saved, nil
}

// NewBlock builds an unsaved block of the given type with its creation
// defaults. Position is left for SaveAll to assign.
func (s *service) NewBlock(pageID uuid.UUID, t Type) (*Block, error) {
	if !Known(t) {
		return nil, ErrUnknownType
	}
	now := s.now().UTC()
	record := &Block{
		ID:        s.id(),
		PageID:    pageID,
		Type:      t,
		Content:   DefaultContent(t),
		CreatedAt: now,
		UpdatedAt: now,
	}
	record.SetVisible(true)
	return record, nil
}

func (s *service) ValidateContent(t Type, content map[string]any) error {
	return s.registry.ValidateContent(t, content)
}

func (s *service) DeletePageBlocks(ctx context.Context, pageID uuid.UUID) error {
	if pageID == uuid.Nil {
		return ErrPageRequired
	}
	return s.blocks.DeleteByPage(ctx, pageID)
}

func (s *service) Registry() *Registry {
	return s.registry
}
