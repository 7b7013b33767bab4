package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	builder "github.com/pagehaven/go-builder"
	"github.com/pagehaven/go-builder/internal/blocks"
	"github.com/pagehaven/go-builder/internal/di"
	builderhttp "github.com/pagehaven/go-builder/internal/http"
	"github.com/pagehaven/go-builder/internal/pages"
	"github.com/pagehaven/go-builder/internal/projects"
	"github.com/pagehaven/go-builder/internal/themes"
	pagemodels "github.com/pagehaven/go-builder/pages"
	projectmodels "github.com/pagehaven/go-builder/projects"
	thememodels "github.com/pagehaven/go-builder/themes"
)

// Demo binary: seeds a project with one published page and serves it on the
// public surface. Configuration comes from the environment, with an optional
// .env file for local runs.
func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg := builder.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Render.LandingURL = envOr("BUILDER_LANDING_URL", "https://example.com")
	cfg.Logging.Level = envOr("BUILDER_LOG_LEVEL", "info")
	if endpoint := os.Getenv("BUILDER_MEDIA_ENDPOINT"); endpoint != "" {
		cfg.Features.Media = true
		cfg.Media = builder.MediaConfig{
			Enabled:   true,
			Endpoint:  endpoint,
			Region:    envOr("BUILDER_MEDIA_REGION", "us-east-1"),
			AccessKey: os.Getenv("BUILDER_MEDIA_ACCESS_KEY"),
			SecretKey: os.Getenv("BUILDER_MEDIA_SECRET_KEY"),
			Bucket:    os.Getenv("BUILDER_MEDIA_BUCKET"),
			PublicURL: os.Getenv("BUILDER_MEDIA_PUBLIC_URL"),
		}
	}

	bunDB, err := openDatabase(ctx, envOr("BUILDER_DB_PATH", "file::memory:?cache=shared"))
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer bunDB.Close()

	module, err := builder.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		log.Fatalf("initialise builder: %v", err)
	}

	project, page, err := seedDemo(ctx, module)
	if err != nil {
		log.Fatalf("seed demo content: %v", err)
	}

	server := builderhttp.NewPublicServer(
		module.Projects(),
		module.Pages(),
		module.Blocks(),
		module.Themes(),
		module.Renderer(),
		cfg.Render.LandingURL,
		builderhttp.WithLoggerProvider(module.Container().LoggerProvider()),
	)

	addr := envOr("BUILDER_HTTP_ADDR", ":8080")
	log.Printf("serving http://localhost%s/%s/%s", addr, project.Slug, page.Slug)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)

	models := []any{
		(*projectmodels.Project)(nil),
		(*pagemodels.Page)(nil),
		(*blocks.Block)(nil),
		(*thememodels.Theme)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func seedDemo(ctx context.Context, module *builder.Module) (*projectmodels.Project, *pagemodels.Page, error) {
	userID := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

	project, err := module.Projects().Create(ctx, projects.CreateProjectInput{
		UserID: userID,
		Name:   "Café Lumière",
	})
	if err != nil {
		return nil, nil, err
	}

	theme, err := module.Themes().Create(ctx, themes.CreateThemeInput{
		ProjectID: project.ID,
		UserID:    userID,
		Name:      "Nuit",
		Config: thememodels.PageConfig{
			Colors: &thememodels.ColorConfig{
				Background: "#0f172a",
				Primary:    "#38bdf8",
				Text:       "#f8fafc",
				ButtonText: "#0f172a",
			},
		},
	})
	if err != nil {
		return nil, nil, err
	}
	if _, err := module.Projects().SetDefaultTheme(ctx, project.ID, &theme.ID); err != nil {
		return nil, nil, err
	}

	page, err := module.Pages().Create(ctx, pages.CreatePageInput{
		ProjectID:   project.ID,
		Title:       "Liens",
		Description: "Tous nos liens utiles",
	})
	if err != nil {
		return nil, nil, err
	}

	session, err := module.NewEditorSession(ctx, page.ID)
	if err != nil {
		return nil, nil, err
	}
	title, err := session.AddBlock(blocks.TypeTitle)
	if err != nil {
		return nil, nil, err
	}
	if err := session.UpdateContent(title.ID, map[string]any{
		"title": "Bienvenue au Café Lumière",
		"align": "center",
	}); err != nil {
		return nil, nil, err
	}
	link, err := session.AddBlock(blocks.TypeLink)
	if err != nil {
		return nil, nil, err
	}
	if err := session.UpdateContent(link.ID, map[string]any{
		"title": "Notre carte",
		"url":   "https://example.com/carte",
	}); err != nil {
		return nil, nil, err
	}
	social, err := session.AddBlock(blocks.TypeSocialGrid)
	if err != nil {
		return nil, nil, err
	}
	if err := session.UpdateContent(social.ID, map[string]any{
		"links": []any{
			map[string]any{"icon": "instagram", "url": "https://instagram.com/cafelumiere"},
			map[string]any{"icon": "facebook", "url": "https://facebook.com/cafelumiere"},
		},
	}); err != nil {
		return nil, nil, err
	}
	if err := session.SaveAll(ctx); err != nil {
		return nil, nil, err
	}

	page, err = module.Pages().SetPublished(ctx, page.ID, true)
	if err != nil {
		return nil, nil, err
	}
	return project, page, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
