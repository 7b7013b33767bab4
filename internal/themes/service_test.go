package themes

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
	return NewService(NewMemoryThemeRepository(),
		WithIDGenerator(sequentialIDs()),
		WithNow(fixedClock()),
	)
}

func TestCreateTheme(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	created, err := svc.Create(context.Background(), CreateThemeInput{
		ProjectID: projectID,
		UserID:    userID,
		Name:      "  Nuit  ",
		Config: PageConfig{
			Colors: &ColorConfig{Background: "#0f172a"},
		},
	})
	if err != nil {
		t.Fatalf("create theme: %v", err)
	}
	if created.Name != "Nuit" {
		t.Fatalf("name not trimmed: %q", created.Name)
	}
	if !created.CreatedAt.Equal(fixedClock()()) {
		t.Fatalf("unexpected created at: %v", created.CreatedAt)
	}
}

func TestCreateThemeRejectsDuplicateName(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	input := CreateThemeInput{ProjectID: projectID, Name: "Nuit"}
	if _, err := svc.Create(context.Background(), input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrThemeExists) {
		t.Fatalf("expected ErrThemeExists, got %v", err)
	}

	otherProject := CreateThemeInput{
		ProjectID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:      "Nuit",
	}
	if _, err := svc.Create(context.Background(), otherProject); err != nil {
		t.Fatalf("same name in another project should work: %v", err)
	}
}

func TestCreateThemeRejectsBadColor(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateThemeInput{
		ProjectID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Mauvais",
		Config: PageConfig{
			Colors: &ColorConfig{Background: "blue"},
		},
	})
	if !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
}

func TestCreateThemeUpgradesLegacyConfig(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), CreateThemeInput{
		ProjectID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Ancien",
		Config: PageConfig{
			BackgroundColor: "#fafafa",
			ButtonColor:     "#111111",
		},
	})
	if err != nil {
		t.Fatalf("create theme: %v", err)
	}
	if created.Config.Colors == nil || created.Config.Colors.Background != "#fafafa" {
		t.Fatalf("legacy background not folded into sections: %+v", created.Config.Colors)
	}
	if created.Config.BackgroundColor != "" || created.Config.ButtonColor != "" {
		t.Fatal("legacy flat fields should be cleared after upgrade")
	}
}

func TestUpdateThemeNameAndConfig(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	created, err := svc.Create(context.Background(), CreateThemeInput{
		ProjectID: projectID,
		Name:      "Nuit",
	})
	if err != nil {
		t.Fatalf("create theme: %v", err)
	}

	name := "Aurore"
	config := PageConfig{Colors: &ColorConfig{Background: "#fff7ed"}}
	updated, err := svc.Update(context.Background(), UpdateThemeInput{
		ID:     created.ID,
		Name:   &name,
		Config: &config,
	})
	if err != nil {
		t.Fatalf("update theme: %v", err)
	}
	if updated.Name != "Aurore" {
		t.Fatalf("unexpected name: %q", updated.Name)
	}
	if updated.Config.Colors == nil || updated.Config.Colors.Background != "#fff7ed" {
		t.Fatalf("config not replaced: %+v", updated.Config)
	}
}

func TestUpdateThemeRejectsNameCollision(t *testing.T) {
	svc := newTestService(t)
	projectID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	if _, err := svc.Create(context.Background(), CreateThemeInput{ProjectID: projectID, Name: "Nuit"}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(context.Background(), CreateThemeInput{ProjectID: projectID, Name: "Jour"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	name := "Nuit"
	if _, err := svc.Update(context.Background(), UpdateThemeInput{ID: second.ID, Name: &name}); !errors.Is(err, ErrThemeExists) {
		t.Fatalf("expected ErrThemeExists, got %v", err)
	}
}

func TestDeleteTheme(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(context.Background(), CreateThemeInput{
		ProjectID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Nuit",
	})
	if err != nil {
		t.Fatalf("create theme: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete theme: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err == nil {
		t.Fatal("expected lookup to fail after delete")
	} else {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected not found error, got %v", err)
		}
	}
}
