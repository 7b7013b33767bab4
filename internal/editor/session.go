package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/blocks"
	"github.com/pagehaven/go-builder/internal/logging"
	"github.com/pagehaven/go-builder/internal/util"
	"github.com/pagehaven/go-builder/pkg/interfaces"
)

// State tracks whether the session's working copy diverges from the store.
type State string

const (
	StateClean State = "clean"
	StateDirty State = "dirty"
)

var (
	ErrSaverRequired = errors.New("editor: saver required")
	ErrPageRequired  = errors.New("editor: page id required")
	ErrSaveInFlight  = errors.New("editor: save already in flight")
	ErrBlockNotFound = errors.New("editor: block not found")
	ErrInvalidMove   = errors.New("editor: invalid move")
)

// Saver persists the full block array of a page. The block service
// satisfies this directly.
type Saver interface {
	SaveAll(ctx context.Context, pageID uuid.UUID, records []*blocks.Block) ([]*blocks.Block, error)
}

// DirtyGuard observes clean/dirty transitions, typically to arm or disarm a
// "unsaved changes" navigation warning. The guard runs with the session lock
// held and must not call back into the session.
type DirtyGuard func(dirty bool)

// Session is the editor's working copy of one page's blocks. All edits are
// local and ordered by the slice; nothing touches the store until SaveAll.
// A session is safe for concurrent use, though the editor normally drives it
// from a single goroutine.
type Session struct {
	mu     sync.Mutex
	pageID uuid.UUID
	blocks []*blocks.Block
	state  State
	saving bool

	// revision counts edits so a save that raced a concurrent edit does
	// not wrongly mark the session clean.
	revision uint64

	saver  Saver
	guard  DirtyGuard
	id     func() uuid.UUID
	logger interfaces.Logger
}

// SessionOption configures session behaviour.
type SessionOption func(*Session)

// WithIDGenerator overrides the default block ID generator.
func WithIDGenerator(generator func() uuid.UUID) SessionOption {
	return func(s *Session) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLoggerProvider attaches the module logger.
func WithLoggerProvider(provider interfaces.LoggerProvider) SessionOption {
	return func(s *Session) {
		s.logger = logging.EditorLogger(provider)
	}
}

// WithDirtyGuard registers a transition observer.
func WithDirtyGuard(guard DirtyGuard) SessionOption {
	return func(s *Session) {
		s.guard = guard
	}
}

// NewSession opens an editing session over the given block array. The slice
// is cloned; the caller's copy stays untouched.
func NewSession(pageID uuid.UUID, initial []*blocks.Block, saver Saver, opts ...SessionOption) (*Session, error) {
	if saver == nil {
		return nil, ErrSaverRequired
	}
	if pageID == uuid.Nil {
		return nil, ErrPageRequired
	}

	s := &Session{
		pageID: pageID,
		blocks: cloneBlocks(initial),
		state:  StateClean,
		saver:  saver,
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, record := range s.blocks {
		record.NormalizeVisibility()
	}
	return s, nil
}

// State reports whether the working copy has unsaved edits.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dirty reports whether navigating away would lose edits. UIs gate their
// "unsaved changes" warning on this.
func (s *Session) Dirty() bool {
	return s.State() == StateDirty
}

// Blocks returns a snapshot of the working copy in display order.
func (s *Session) Blocks() []*blocks.Block {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBlocks(s.blocks)
}

// AddBlock appends a new block of the given type with its creation defaults.
func (s *Session) AddBlock(t blocks.Type) (*blocks.Block, error) {
	if !blocks.Known(t) {
		return nil, blocks.ErrUnknownType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := &blocks.Block{
		ID:       s.id(),
		PageID:   s.pageID,
		Type:     t,
		Content:  blocks.DefaultContent(t),
		Position: len(s.blocks),
	}
	record.SetVisible(true)
	s.blocks = append(s.blocks, record)
	s.markDirty()
	return cloneBlock(record), nil
}

// Reorder moves the block at index from to index to, shifting the rest.
func (s *Session) Reorder(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from < 0 || from >= len(s.blocks) || to < 0 || to >= len(s.blocks) {
		return ErrInvalidMove
	}
	if from == to {
		return nil
	}

	moved := s.blocks[from]
	rest := append(s.blocks[:from:from], s.blocks[from+1:]...)
	s.blocks = append(rest[:to:to], append([]*blocks.Block{moved}, rest[to:]...)...)
	s.markDirty()
	return nil
}

// UpdateContent replaces the block's content map wholesale.
func (s *Session) UpdateContent(id uuid.UUID, content map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(id)
	if record == nil {
		return ErrBlockNotFound
	}
	record.Content = util.CloneAnyMap(content)
	record.NormalizeVisibility()
	s.markDirty()
	return nil
}

// ToggleVisibility flips the block's visibility, keeping both stored fields
// in sync.
func (s *Session) ToggleVisibility(id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.find(id)
	if record == nil {
		return false, ErrBlockNotFound
	}
	next := !record.Visible()
	record.SetVisible(next)
	s.markDirty()
	return next, nil
}

// DeleteBlock removes the block from the working copy.
func (s *Session) DeleteBlock(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, record := range s.blocks {
		if record.ID == id {
			s.blocks = append(s.blocks[:i], s.blocks[i+1:]...)
			s.markDirty()
			return nil
		}
	}
	return ErrBlockNotFound
}

// SaveAll persists the working copy as the page's full block array. Only one
// save may be in flight at a time. A failed save keeps the session dirty and
// the edits intact; a successful save marks it clean unless more edits landed
// while the save was running.
func (s *Session) SaveAll(ctx context.Context) error {
	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving = true
	snapshot := cloneBlocks(s.blocks)
	revision := s.revision
	s.mu.Unlock()

	saved, err := s.saver.SaveAll(ctx, s.pageID, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false

	if err != nil {
		s.logger.Error("save failed", "page_id", s.pageID.String(), "error", err)
		return err
	}
	if s.revision == revision {
		s.blocks = cloneBlocks(saved)
		s.state = StateClean
		if s.guard != nil {
			s.guard(false)
		}
	}
	s.logger.Debug("blocks saved", "page_id", s.pageID.String(), "count", len(saved))
	return nil
}

func (s *Session) find(id uuid.UUID) *blocks.Block {
	for _, record := range s.blocks {
		if record.ID == id {
			return record
		}
	}
	return nil
}

func (s *Session) markDirty() {
	if s.state != StateDirty && s.guard != nil {
		s.guard(true)
	}
	s.state = StateDirty
	s.revision++
}

func cloneBlocks(records []*blocks.Block) []*blocks.Block {
	out := make([]*blocks.Block, 0, len(records))
	for _, record := range records {
		out = append(out, cloneBlock(record))
	}
	return out
}

func cloneBlock(record *blocks.Block) *blocks.Block {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Content = util.CloneAnyMap(record.Content)
	return &cloned
}
