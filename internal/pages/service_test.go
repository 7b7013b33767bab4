package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/themes"
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
	return NewService(NewMemoryPageRepository(),
		WithIDGenerator(sequentialIDs()),
		WithNow(fixedClock()),
	)
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	created, err := svc.Create(context.Background(), CreatePageInput{
		ProjectID: projectID,
		Title:     "Liens Été 2025",
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if created.Slug != "liens-ete-2025" {
		t.Fatalf("unexpected slug: %s", created.Slug)
	}
	if created.IsPublished {
		t.Fatal("new pages start unpublished")
	}
}

func TestCreateRejectsDuplicateSlugInProject(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	if _, err := svc.Create(context.Background(), CreatePageInput{ProjectID: projectID, Title: "Links"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), CreatePageInput{ProjectID: projectID, Title: "links"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	// same slug in another project is fine
	otherProject := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	if _, err := svc.Create(context.Background(), CreatePageInput{ProjectID: otherProject, Title: "Links"}); err != nil {
		t.Fatalf("other project create: %v", err)
	}
}

func TestCreateRejectsOverlongMetadata(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	_, err := svc.Create(context.Background(), CreatePageInput{
		ProjectID:   projectID,
		Title:       "Links",
		Description: strings.Repeat("x", 501),
	})
	if err == nil {
		t.Fatal("expected validation error for long description")
	}
}

func TestUpdateConfigUpgradesLegacyFields(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	created, _ := svc.Create(context.Background(), CreatePageInput{ProjectID: projectID, Title: "Links"})

	updated, err := svc.UpdateConfig(context.Background(), created.ID, themes.PageConfig{
		BackgroundColor: "#0f172a",
		ButtonColor:     "#38bdf8",
	})
	if err != nil {
		t.Fatalf("update config: %v", err)
	}
	if updated.Config.Colors == nil {
		t.Fatal("expected legacy colors folded into sections")
	}
	if updated.Config.Colors.Background != "#0f172a" {
		t.Fatalf("unexpected background: %s", updated.Config.Colors.Background)
	}
	if updated.Config.BackgroundColor != "" {
		t.Fatalf("expected legacy field cleared, got %s", updated.Config.BackgroundColor)
	}
}

func TestUpdateConfigRejectsBadColors(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	created, _ := svc.Create(context.Background(), CreatePageInput{ProjectID: projectID, Title: "Links"})

	_, err := svc.UpdateConfig(context.Background(), created.ID, themes.PageConfig{
		BackgroundColor: "blue",
	})
	if !errors.Is(err, themes.ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}

func TestAssignAndClearTheme(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	themeID := uuid.MustParse("77777777-7777-7777-7777-777777777777")

	created, _ := svc.Create(context.Background(), CreatePageInput{ProjectID: projectID, Title: "Links"})

	updated, err := svc.AssignTheme(context.Background(), created.ID, &themeID)
	if err != nil {
		t.Fatalf("assign theme: %v", err)
	}
	if updated.ThemeID == nil || *updated.ThemeID != themeID {
		t.Fatalf("expected theme %s, got %v", themeID, updated.ThemeID)
	}

	cleared, err := svc.AssignTheme(context.Background(), created.ID, nil)
	if err != nil {
		t.Fatalf("clear theme: %v", err)
	}
	if cleared.ThemeID != nil {
		t.Fatalf("expected theme cleared, got %v", cleared.ThemeID)
	}
}

func TestSetPublished(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	created, _ := svc.Create(context.Background(), CreatePageInput{ProjectID: projectID, Title: "Links"})

	published, err := svc.SetPublished(context.Background(), created.ID, true)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !published.IsPublished {
		t.Fatal("expected page published")
	}

	found, err := svc.GetBySlug(context.Background(), projectID, "links")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if !found.IsPublished {
		t.Fatal("publish state not persisted")
	}
}

func TestSEOTitlePrefersMetaTitle(t *testing.T) {
	page := &Page{Title: "Links", MetaTitle: "All my links"}
	if got := page.SEOTitle(); got != "All my links" {
		t.Fatalf("unexpected seo title: %s", got)
	}
	page.MetaTitle = ""
	if got := page.SEOTitle(); got != "Links" {
		t.Fatalf("unexpected fallback title: %s", got)
	}
}
