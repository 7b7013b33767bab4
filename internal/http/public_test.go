package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/blocks"
	"github.com/pagehaven/go-builder/internal/pages"
	"github.com/pagehaven/go-builder/internal/projects"
	"github.com/pagehaven/go-builder/internal/render"
	"github.com/pagehaven/go-builder/internal/themes"
)

type fixture struct {
	server  *PublicServer
	project *projects.Project
	page    *pages.Page

	projectSvc projects.Service
	pageSvc    pages.Service
	blockSvc   blocks.Service
	themeSvc   themes.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	projectSvc := projects.NewService(projects.NewMemoryProjectRepository())
	pageSvc := pages.NewService(pages.NewMemoryPageRepository())
	blockSvc := blocks.NewService(blocks.NewMemoryBlockRepository())
	themeSvc := themes.NewService(themes.NewMemoryThemeRepository())

	userID := uuid.MustParse("99999999-9999-9999-9999-999999999999")
	project, err := projectSvc.Create(ctx, projects.CreateProjectInput{UserID: userID, Name: "Mon Café"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	page, err := pageSvc.Create(ctx, pages.CreatePageInput{ProjectID: project.ID, Title: "Liens"})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	if _, err := pageSvc.SetPublished(ctx, page.ID, true); err != nil {
		t.Fatalf("publish page: %v", err)
	}

	link, err := blockSvc.NewBlock(page.ID, blocks.TypeLink)
	if err != nil {
		t.Fatalf("new block: %v", err)
	}
	link.Content["title"] = "Mon site"
	link.Content["url"] = "https://example.com"
	if _, err := blockSvc.SaveAll(ctx, page.ID, []*blocks.Block{link}); err != nil {
		t.Fatalf("save blocks: %v", err)
	}

	server := NewPublicServer(projectSvc, pageSvc, blockSvc, themeSvc, render.NewRenderer(), "https://pagehaven.example.com")
	return &fixture{
		server:     server,
		project:    project,
		page:       page,
		projectSvc: projectSvc,
		pageSvc:    pageSvc,
		blockSvc:   blockSvc,
		themeSvc:   themeSvc,
	}
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.server.Routes().ServeHTTP(rec, req)
	return rec
}

func TestServesPublishedPage(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/mon-cafe/liens")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Mon site") {
		t.Fatalf("missing block content: %s", body)
	}
	if !strings.Contains(body, "--pb-background: #ffffff;") {
		t.Fatalf("missing default theme variables: %s", body)
	}
}

func TestUnpublishedPageRedirectsToLanding(t *testing.T) {
	f := newFixture(t)
	if _, err := f.pageSvc.SetPublished(context.Background(), f.page.ID, false); err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	rec := f.get(t, "/mon-cafe/liens")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "https://pagehaven.example.com" {
		t.Fatalf("unexpected redirect target: %s", got)
	}
}

func TestUnknownSlugsRedirectToLanding(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/nope/liens", "/mon-cafe/nope", "/only-one-segment"} {
		rec := f.get(t, path)
		if rec.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", path, rec.Code)
		}
	}
}

func TestHiddenBlocksStayOffThePublicPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	records, err := f.blockSvc.ListPageBlocks(ctx, f.page.ID)
	if err != nil {
		t.Fatalf("list blocks: %v", err)
	}
	records[0].SetVisible(false)
	if _, err := f.blockSvc.SaveAll(ctx, f.page.ID, records); err != nil {
		t.Fatalf("save blocks: %v", err)
	}

	rec := f.get(t, "/mon-cafe/liens")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Mon site") {
		t.Fatal("hidden block rendered publicly")
	}
}

func TestAssignedThemeWinsOverPageConfig(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.pageSvc.UpdateConfig(ctx, f.page.ID, themes.PageConfig{
		Colors: &themes.ColorConfig{Background: "#111111"},
	}); err != nil {
		t.Fatalf("update page config: %v", err)
	}

	theme, err := f.themeSvc.Create(ctx, themes.CreateThemeInput{
		ProjectID: f.project.ID,
		UserID:    f.project.UserID,
		Name:      "Nuit",
		Config: themes.PageConfig{
			Colors: &themes.ColorConfig{Background: "#0f172a"},
		},
	})
	if err != nil {
		t.Fatalf("create theme: %v", err)
	}
	if _, err := f.pageSvc.AssignTheme(ctx, f.page.ID, &theme.ID); err != nil {
		t.Fatalf("assign theme: %v", err)
	}

	rec := f.get(t, "/mon-cafe/liens")
	body := rec.Body.String()
	if !strings.Contains(body, "--pb-background: #0f172a;") {
		t.Fatalf("theme background not applied: %s", body)
	}
	if strings.Contains(body, "--pb-background: #111111;") {
		t.Fatal("page config leaked past the assigned theme")
	}
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
