package blocks

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func sequentialIDs() IDGenerator {
	var counter int
	return func() uuid.UUID {
		counter++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", counter))
	}
}

func newTestService(t *testing.T) Service {
	t.Helper()
	return NewService(NewMemoryBlockRepository(),
		WithIDGenerator(sequentialIDs()),
		WithNow(fixedClock()),
	)
}

func TestSaveAllRederivesPositions(t *testing.T) {
	svc := newTestService(t)
	pageID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	link, err := svc.NewBlock(pageID, TypeLink)
	if err != nil {
		t.Fatalf("new link block: %v", err)
	}
	title, err := svc.NewBlock(pageID, TypeTitle)
	if err != nil {
		t.Fatalf("new title block: %v", err)
	}

	link.Position = 7
	title.Position = 7

	saved, err := svc.SaveAll(context.Background(), pageID, []*Block{link, title})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(saved))
	}
	for i, record := range saved {
		if record.Position != i {
			t.Fatalf("block %d: expected position %d, got %d", i, i, record.Position)
		}
	}

	listed, err := svc.ListPageBlocks(context.Background(), pageID)
	if err != nil {
		t.Fatalf("list page blocks: %v", err)
	}
	if listed[0].Type != TypeLink || listed[1].Type != TypeTitle {
		t.Fatalf("unexpected block order: %s, %s", listed[0].Type, listed[1].Type)
	}
}

func TestSaveAllReplacesWholePage(t *testing.T) {
	svc := newTestService(t)
	pageID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	first, _ := svc.NewBlock(pageID, TypeLink)
	second, _ := svc.NewBlock(pageID, TypeText)
	if _, err := svc.SaveAll(context.Background(), pageID, []*Block{first, second}); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	// drop the link, keep the text at the top
	if _, err := svc.SaveAll(context.Background(), pageID, []*Block{second}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	listed, err := svc.ListPageBlocks(context.Background(), pageID)
	if err != nil {
		t.Fatalf("list page blocks: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 block after replace, got %d", len(listed))
	}
	if listed[0].Type != TypeText || listed[0].Position != 0 {
		t.Fatalf("unexpected surviving block: %s at %d", listed[0].Type, listed[0].Position)
	}
}

func TestSaveAllSyncsVisibilityFields(t *testing.T) {
	svc := newTestService(t)
	pageID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	record, _ := svc.NewBlock(pageID, TypeLink)
	// legacy shape: only the content flag set
	record.Content["is_visible"] = false
	record.IsVisible = true

	saved, err := svc.SaveAll(context.Background(), pageID, []*Block{record})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	if saved[0].IsVisible {
		t.Fatal("expected top-level visibility synced to false")
	}
	if visible, ok := saved[0].Content["is_visible"].(bool); !ok || visible {
		t.Fatalf("expected content visibility false, got %v", saved[0].Content["is_visible"])
	}
}

func TestSaveAllRejectsInvalidContent(t *testing.T) {
	svc := newTestService(t)
	pageID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	record, _ := svc.NewBlock(pageID, TypeTitle)
	record.Content["align"] = "diagonal"

	_, err := svc.SaveAll(context.Background(), pageID, []*Block{record})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var contentErr *ContentValidationError
	if !errors.As(err, &contentErr) {
		t.Fatalf("expected ContentValidationError, got %T", err)
	}
	if contentErr.Type != TypeTitle {
		t.Fatalf("expected title type in error, got %s", contentErr.Type)
	}
}

func TestSaveAllAssignsIDsToNewBlocks(t *testing.T) {
	svc := newTestService(t)
	pageID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	record := &Block{Type: TypeSeparator, Content: map[string]any{}}
	saved, err := svc.SaveAll(context.Background(), pageID, []*Block{record})
	if err != nil {
		t.Fatalf("save all: %v", err)
	}
	if saved[0].ID == uuid.Nil {
		t.Fatal("expected generated block id")
	}
	if saved[0].PageID != pageID {
		t.Fatalf("expected page id stamped, got %s", saved[0].PageID)
	}
	if saved[0].CreatedAt.IsZero() || saved[0].UpdatedAt.IsZero() {
		t.Fatal("expected timestamps set")
	}
}

func TestNewBlockAppliesTypeDefaults(t *testing.T) {
	svc := newTestService(t)
	pageID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	record, err := svc.NewBlock(pageID, TypeLink)
	if err != nil {
		t.Fatalf("new block: %v", err)
	}
	if record.Content["title"] != "Nouveau lien" {
		t.Fatalf("unexpected default title: %v", record.Content["title"])
	}
	if record.Content["url"] != "https://" {
		t.Fatalf("unexpected default url: %v", record.Content["url"])
	}
	if !record.Visible() {
		t.Fatal("expected new block visible")
	}

	if _, err := svc.NewBlock(pageID, Type("carousel")); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestSaveAllRequiresPage(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.SaveAll(context.Background(), uuid.Nil, nil); !errors.Is(err, ErrPageRequired) {
		t.Fatalf("expected ErrPageRequired, got %v", err)
	}
}
