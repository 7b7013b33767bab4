package themes

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/pagehaven/go-builder/internal/logging"
	"github.com/pagehaven/go-builder/pkg/interfaces"
)

// Service exposes theme management capabilities.
type Service interface {
	Create(ctx context.Context, input CreateThemeInput) (*Theme, error)
	Get(ctx context.Context, id uuid.UUID) (*Theme, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Theme, error)
	Update(ctx context.Context, input UpdateThemeInput) (*Theme, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateThemeInput captures the attributes of a new reusable theme.
type CreateThemeInput struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
	Name      string
	Config    PageConfig
}

// UpdateThemeInput captures mutable theme fields. Nil means "leave as is".
type UpdateThemeInput struct {
	ID     uuid.UUID
	Name   *string
	Config *PageConfig
}

var (
	ErrThemeRepositoryRequired = errors.New("themes: theme repository required")
	ErrThemeNameRequired       = errors.New("themes: name required")
	ErrThemeProjectRequired    = errors.New("themes: project id required")
	ErrThemeExists             = errors.New("themes: theme already exists")
	ErrInvalidColor            = errors.New("themes: invalid color value")
	ErrInvalidShadowOpacity    = errors.New("themes: shadow opacity must be between 0 and 1")
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

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
		s.logger = logging.ThemesLogger(provider)
	}
}

type service struct {
	themes ThemeRepository
	id     IDGenerator
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs a theme service instance.
func NewService(themeRepo ThemeRepository, opts ...ServiceOption) Service {
	if themeRepo == nil {
		panic(ErrThemeRepositoryRequired)
	}

	s := &service{
		themes: themeRepo,
		id:     uuid.New,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateThemeInput) (*Theme, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrThemeNameRequired
	}
	if input.ProjectID == uuid.Nil {
		return nil, ErrThemeProjectRequired
	}
	if err := ValidateConfig(input.Config); err != nil {
		return nil, err
	}

	if existing, err := s.themes.GetByName(ctx, input.ProjectID, name); err == nil && existing != nil {
		return nil, ErrThemeExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now().UTC()
	record := &Theme{
		ID:        s.id(),
		Name:      name,
		Config:    Upgrade(input.Config),
		ProjectID: input.ProjectID,
		UserID:    input.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.themes.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("theme created", "theme_id", created.ID.String(), "project_id", created.ProjectID.String())
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Theme, error) {
	return s.themes.GetByID(ctx, id)
}

func (s *service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Theme, error) {
	return s.themes.ListByProject(ctx, projectID)
}

func (s *service) Update(ctx context.Context, input UpdateThemeInput) (*Theme, error) {
	record, err := s.themes.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrThemeNameRequired
		}
		if name != record.Name {
			if existing, err := s.themes.GetByName(ctx, record.ProjectID, name); err == nil && existing != nil && existing.ID != record.ID {
				return nil, ErrThemeExists
			}
			record.Name = name
		}
	}
	if input.Config != nil {
		if err := ValidateConfig(*input.Config); err != nil {
			return nil, err
		}
		record.Config = Upgrade(*input.Config)
	}
	record.UpdatedAt = s.now().UTC()

	return s.themes.Update(ctx, record)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.themes.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("theme deleted", "theme_id", id.String())
	return nil
}

// ValidateConfig rejects malformed color values and out-of-range shadow
// opacity. Absent fields are always fine; the resolver supplies defaults.
func ValidateConfig(cfg PageConfig) error {
	colorFields := []string{}
	if cfg.Colors != nil {
		colorFields = append(colorFields,
			cfg.Colors.Background, cfg.Colors.Primary, cfg.Colors.Secondary,
			cfg.Colors.Text, cfg.Colors.Link, cfg.Colors.ButtonText)
	}
	if cfg.Dividers != nil {
		colorFields = append(colorFields, cfg.Dividers.Color)
	}
	colorFields = append(colorFields,
		cfg.BackgroundColor, cfg.ButtonColor, cfg.ButtonTextColor, cfg.TextColor, cfg.LinkColor)

	for _, value := range colorFields {
		if value == "" {
			continue
		}
		if err := validation.Validate(value, validation.Match(hexColorRe)); err != nil {
			return ErrInvalidColor
		}
	}

	if cfg.Shadows != nil && cfg.Shadows.Opacity != nil {
		if *cfg.Shadows.Opacity < 0 || *cfg.Shadows.Opacity > 1 {
			return ErrInvalidShadowOpacity
		}
	}
	return nil
}
