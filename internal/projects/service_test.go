package projects

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
	return NewService(NewMemoryProjectRepository(),
		WithIDGenerator(sequentialIDs()),
		WithNow(fixedClock()),
	)
}

func TestCreateDerivesSlugFromName(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	created, err := svc.Create(context.Background(), CreateProjectInput{
		UserID: userID,
		Name:   "Mon Café Préféré",
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if created.Slug != "mon-cafe-prefere" {
		t.Fatalf("unexpected slug: %s", created.Slug)
	}
	if created.Name != "Mon Café Préféré" {
		t.Fatalf("unexpected name: %s", created.Name)
	}
}

func TestCreateRejectsDuplicateSlugForSameUser(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	if _, err := svc.Create(context.Background(), CreateProjectInput{UserID: userID, Name: "Portfolio"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), CreateProjectInput{UserID: userID, Name: "portfolio"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	// a different user can reuse the slug
	otherUser := uuid.MustParse("88888888-8888-8888-8888-888888888888")
	if _, err := svc.Create(context.Background(), CreateProjectInput{UserID: otherUser, Name: "Portfolio"}); err != nil {
		t.Fatalf("other user create: %v", err)
	}
}

func TestCreateRejectsUnusableSlug(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	_, err := svc.Create(context.Background(), CreateProjectInput{UserID: userID, Name: "???"})
	if !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestUpdateSlugChecksUniqueness(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	first, _ := svc.Create(context.Background(), CreateProjectInput{UserID: userID, Name: "Portfolio"})
	second, _ := svc.Create(context.Background(), CreateProjectInput{UserID: userID, Name: "Blog"})

	taken := first.Slug
	_, err := svc.Update(context.Background(), UpdateProjectInput{ID: second.ID, Slug: &taken})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	// updating to its own slug is a no-op, not a collision
	own := second.Slug
	if _, err := svc.Update(context.Background(), UpdateProjectInput{ID: second.ID, Slug: &own}); err != nil {
		t.Fatalf("self slug update: %v", err)
	}
}

func TestGetBySlugNormalizesLookup(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	created, _ := svc.Create(context.Background(), CreateProjectInput{UserID: userID, Name: "Mon Café"})

	found, err := svc.GetBySlug(context.Background(), "Mon Café")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected project %s, got %s", created.ID, found.ID)
	}
}

func TestSetDefaultTheme(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	themeID := uuid.MustParse("77777777-7777-7777-7777-777777777777")

	created, _ := svc.Create(context.Background(), CreateProjectInput{UserID: userID, Name: "Portfolio"})

	updated, err := svc.SetDefaultTheme(context.Background(), created.ID, &themeID)
	if err != nil {
		t.Fatalf("set default theme: %v", err)
	}
	if updated.DefaultThemeID == nil || *updated.DefaultThemeID != themeID {
		t.Fatalf("expected default theme %s, got %v", themeID, updated.DefaultThemeID)
	}

	cleared, err := svc.SetDefaultTheme(context.Background(), created.ID, nil)
	if err != nil {
		t.Fatalf("clear default theme: %v", err)
	}
	if cleared.DefaultThemeID != nil {
		t.Fatalf("expected default theme cleared, got %v", cleared.DefaultThemeID)
	}
}
