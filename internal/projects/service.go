package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/logging"
	"github.com/pagehaven/go-builder/pkg/interfaces"
	"github.com/pagehaven/go-builder/slug"
)

// Service exposes project management capabilities.
type Service interface {
	Create(ctx context.Context, input CreateProjectInput) (*Project, error)
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	GetBySlug(ctx context.Context, projectSlug string) (*Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Project, error)
	Update(ctx context.Context, input UpdateProjectInput) (*Project, error)
	SetDefaultTheme(ctx context.Context, projectID uuid.UUID, themeID *uuid.UUID) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateProjectInput captures the attributes of a new project. Slug is
// derived from Name when absent.
type CreateProjectInput struct {
	UserID uuid.UUID
	Name   string
	Slug   string
}

// UpdateProjectInput captures mutable project fields. Nil means "leave as is".
type UpdateProjectInput struct {
	ID   uuid.UUID
	Name *string
	Slug *string
}

var (
	ErrProjectRepositoryRequired = errors.New("projects: project repository required")
	ErrProjectNameRequired       = errors.New("projects: name required")
	ErrProjectUserRequired       = errors.New("projects: user id required")
	ErrInvalidSlug               = errors.New("projects: invalid slug")
	ErrSlugExists                = errors.New("projects: slug already in use")
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
		s.logger = logging.ProjectsLogger(provider)
	}
}

type service struct {
	projects ProjectRepository
	id       IDGenerator
	now      func() time.Time
	logger   interfaces.Logger
}

// NewService constructs a project service instance.
func NewService(projectRepo ProjectRepository, opts ...ServiceOption) Service {
	if projectRepo == nil {
		panic(ErrProjectRepositoryRequired)
	}

	s := &service{
		projects: projectRepo,
		id:       uuid.New,
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateProjectInput) (*Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}
	if input.UserID == uuid.Nil {
		return nil, ErrProjectUserRequired
	}

	projectSlug, err := s.resolveSlug(input.Slug, name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, input.UserID, projectSlug, uuid.Nil); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &Project{
		ID:        s.id(),
		UserID:    input.UserID,
		Name:      name,
		Slug:      projectSlug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.projects.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project created", "project_id", created.ID.String(), "slug", created.Slug)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, projectSlug string) (*Project, error) {
	return s.projects.GetBySlug(ctx, slug.ForSlug(projectSlug))
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, input UpdateProjectInput) (*Project, error) {
	record, err := s.projects.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrProjectNameRequired
		}
		record.Name = name
	}
	if input.Slug != nil {
		projectSlug, err := s.resolveSlug(*input.Slug, "")
		if err != nil {
			return nil, err
		}
		if projectSlug != record.Slug {
			if err := s.ensureSlugFree(ctx, record.UserID, projectSlug, record.ID); err != nil {
				return nil, err
			}
			record.Slug = projectSlug
		}
	}
	record.UpdatedAt = s.now().UTC()

	return s.projects.Update(ctx, record)
}

func (s *service) SetDefaultTheme(ctx context.Context, projectID uuid.UUID, themeID *uuid.UUID) (*Project, error) {
	record, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	record.DefaultThemeID = themeID
	record.UpdatedAt = s.now().UTC()

	updated, err := s.projects.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("project default theme changed", "project_id", projectID.String())
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", id.String())
	return nil
}

// resolveSlug normalizes an explicit slug or derives one from the fallback
// name. Collisions are the caller's problem; a slug that normalizes to
// nothing is not.
func (s *service) resolveSlug(explicit, fallbackName string) (string, error) {
	candidate := strings.TrimSpace(explicit)
	if candidate == "" {
		candidate = fallbackName
	}
	normalized := slug.ForSlug(candidate)
	if normalized == "" {
		return "", ErrInvalidSlug
	}
	return normalized, nil
}

// ensureSlugFree enforces per-user slug uniqueness. Taken slugs surface as an
// explicit error instead of an auto-generated suffix so the user stays in
// control of their public URL.
func (s *service) ensureSlugFree(ctx context.Context, userID uuid.UUID, projectSlug string, selfID uuid.UUID) error {
	existing, err := s.projects.GetByUserSlug(ctx, userID, projectSlug)
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
