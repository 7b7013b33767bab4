package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/logging"
	"github.com/pagehaven/go-builder/internal/themes"
	"github.com/pagehaven/go-builder/pkg/interfaces"
	"github.com/pagehaven/go-builder/slug"
)

// Service exposes page management capabilities.
type Service interface {
	Create(ctx context.Context, input CreatePageInput) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*Page, error)
	GetBySlug(ctx context.Context, projectID uuid.UUID, pageSlug string) (*Page, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Page, error)
	Update(ctx context.Context, input UpdatePageInput) (*Page, error)
	UpdateConfig(ctx context.Context, pageID uuid.UUID, config themes.PageConfig) (*Page, error)
	AssignTheme(ctx context.Context, pageID uuid.UUID, themeID *uuid.UUID) (*Page, error)
	SetPublished(ctx context.Context, pageID uuid.UUID, published bool) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreatePageInput captures the attributes of a new page. Slug is derived
// from Title when absent.
type CreatePageInput struct {
	ProjectID   uuid.UUID
	Title       string
	Slug        string
	Description string
	MetaTitle   string
}

// UpdatePageInput captures mutable page metadata. Nil means "leave as is".
type UpdatePageInput struct {
	ID          uuid.UUID
	Title       *string
	Slug        *string
	Description *string
	MetaTitle   *string
}

var (
	ErrPageRepositoryRequired = errors.New("pages: page repository required")
	ErrPageTitleRequired      = errors.New("pages: title required")
	ErrPageProjectRequired    = errors.New("pages: project id required")
	ErrInvalidSlug            = errors.New("pages: invalid slug")
	ErrSlugExists             = errors.New("pages: slug already in use")
)

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
		s.logger = logging.PagesLogger(provider)
	}
}

type service struct {
	pages  PageRepository
	id     IDGenerator
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs a page service instance.
func NewService(pageRepo PageRepository, opts ...ServiceOption) Service {
	if pageRepo == nil {
		panic(ErrPageRepositoryRequired)
	}

	s := &service{
		pages:  pageRepo,
		id:     uuid.New,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreatePageInput) (*Page, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPageTitleRequired
	}
	if input.ProjectID == uuid.Nil {
		return nil, ErrPageProjectRequired
	}
	if err := validateMetadata(title, input.Description, input.MetaTitle); err != nil {
		return nil, err
	}

	pageSlug, err := resolveSlug(input.Slug, title)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, input.ProjectID, pageSlug, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Page{
		ID:          s.id(),
		ProjectID:   input.ProjectID,
		Title:       title,
		Slug:        pageSlug,
		Description: strings.TrimSpace(input.Description),
		MetaTitle:   strings.TrimSpace(input.MetaTitle),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.pages.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page created", "page_id", created.ID.String(), "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Page, error) {
	return s.pages.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, projectID uuid.UUID, pageSlug string) (*Page, error) {
	return s.pages.GetBySlug(ctx, projectID, slug.ForSlug(pageSlug))
}

func (s *service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Page, error) {
	return s.pages.ListByProject(ctx, projectID)
}

func (s *service) Update(ctx context.Context, input UpdatePageInput) (*Page, error) {
	record, err := s.pages.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrPageTitleRequired
		}
		record.Title = title
	}
	if input.Description != nil {
		record.Description = strings.TrimSpace(*input.Description)
	}
	if input.MetaTitle != nil {
		record.MetaTitle = strings.TrimSpace(*input.MetaTitle)
	}
	if err := validateMetadata(record.Title, record.Description, record.MetaTitle); err != nil {
		return nil, err
	}

	if input.Slug != nil {
		pageSlug, err := resolveSlug(*input.Slug, "")
		if err != nil {
			return nil, err
		}
		if pageSlug != record.Slug {
			if err := s.ensureSlugFree(ctx, record.ProjectID, pageSlug, record.ID); err != nil {
				return nil, err
			}
			record.Slug = pageSlug
		}
	}
	record.UpdatedAt = s.now().UTC()

	return s.pages.Update(ctx, record)
}

// UpdateConfig replaces the page's appearance overrides. Legacy flat fields
// are folded into their sectioned homes before the write so stored configs
// converge on the sectioned shape.
func (s *service) UpdateConfig(ctx context.Context, pageID uuid.UUID, config themes.PageConfig) (*Page, error) {
	record, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	if err := themes.ValidateConfig(config); err != nil {
		return nil, err
	}
	record.Config = themes.Upgrade(config)
	record.UpdatedAt = s.now().UTC()

	return s.pages.Update(ctx, record)
}

func (s *service) AssignTheme(ctx context.Context, pageID uuid.UUID, themeID *uuid.UUID) (*Page, error) {
	record, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	record.ThemeID = themeID
	record.UpdatedAt = s.now().UTC()

	updated, err := s.pages.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page theme changed", "page_id", pageID.String())
	return updated, nil
}

func (s *service) SetPublished(ctx context.Context, pageID uuid.UUID, published bool) (*Page, error) {
	record, err := s.pages.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	record.IsPublished = published
	record.UpdatedAt = s.now().UTC()

	updated, err := s.pages.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("page publish state changed", "page_id", pageID.String(), "published", published)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.pages.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("page deleted", "page_id", id.String())
	return nil
}

func validateMetadata(title, description, metaTitle string) error {
	return validation.Errors{
		"title":       validation.Validate(title, validation.Length(1, 120)),
		"description": validation.Validate(description, validation.Length(0, 500)),
		"meta_title":  validation.Validate(metaTitle, validation.Length(0, 120)),
	}.Filter()
}

func resolveSlug(explicit, fallbackTitle string) (string, error) {
	candidate := strings.TrimSpace(explicit)
	if candidate == "" {
		candidate = fallbackTitle
	}
	normalized := slug.ForSlug(candidate)
	if normalized == "" {
		return "", ErrInvalidSlug
	}
	return normalized, nil
}

func (s *service) ensureSlugFree(ctx context.Context, projectID uuid.UUID, pageSlug string, selfID uuid.UUID) error {
	existing, err := s.pages.GetBySlug(ctx, projectID, pageSlug)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrSlugExists
	}
	return nil
}
