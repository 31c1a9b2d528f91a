package theme

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/validation"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultName = "Default Theme"
	CustomName  = "Custom Theme"

	folder = "portfolio/theme"

	// lockKey serializes theme writes through a postgres advisory lock.
	lockKey int64 = 0x7468656d65
)

var errDeactivate = content.Invalid("isActive", "The active theme cannot be deactivated; activate another theme instead")

// Service owns every theme write so the single-active rule holds on all paths.
// Each write runs in one transaction that clears other active themes before
// saving; the partial unique index on is_active backs this at the database.
type Service struct {
	db       *gorm.DB
	pipeline *assets.Pipeline
}

func NewService(db *gorm.DB, pipeline *assets.Pipeline) *Service {
	return &Service{db: db, pipeline: pipeline}
}

// Migrate adds the index that allows at most one active row.
func Migrate(db *gorm.DB) error {
	return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_themes_single_active ON themes (is_active) WHERE is_active").Error
}

// GetActive returns the active theme, else the default theme, else a newly
// created default theme which becomes active.
func (s *Service) GetActive(ctx context.Context) (*Theme, error) {
	var t *Theme
	var err error
	// A concurrent first read may create the default theme first; read again.
	for attempt := 0; attempt < 2; attempt++ {
		t, err = s.active(ctx)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	return t, nil
}

func (s *Service) active(ctx context.Context) (*Theme, error) {
	db := s.db.WithContext(ctx)
	t := new(Theme)
	err := db.Where("is_active = ?", true).Take(t).Error
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.Where("is_default = ?", true).Order("created_at ASC").Take(t).Error
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t = newTheme(DefaultName)
	t.IsActive, t.IsDefault = true, true
	err = db.Transaction(func(tx *gorm.DB) error {
		return save(tx, t, true)
	})
	return t, err
}

func (s *Service) List(ctx context.Context) ([]Theme, error) {
	themes := make([]Theme, 0)
	err := s.db.WithContext(ctx).Order("is_active DESC, created_at DESC").Find(&themes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	return themes, nil
}

func (s *Service) Create(ctx context.Context, in *ThemeInput, favicon []*multipart.FileHeader) (*Theme, error) {
	if in.Name == nil || *content.Trim(in.Name) == "" {
		return nil, content.Invalid("name", "name is required")
	}

	t := newTheme("")
	return s.write(ctx, in, favicon, func(tx *gorm.DB) (*Theme, bool, error) {
		return t, true, nil
	})
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in *ThemeInput, favicon []*multipart.FileHeader) (*Theme, error) {
	return s.write(ctx, in, favicon, func(tx *gorm.DB) (*Theme, bool, error) {
		t, err := find(tx, id)
		return t, false, err
	})
}

// UpdateActive patches the active theme, creating an active custom theme
// when none is active.
func (s *Service) UpdateActive(ctx context.Context, in *ThemeInput, favicon []*multipart.FileHeader) (*Theme, error) {
	return s.write(ctx, in, favicon, func(tx *gorm.DB) (*Theme, bool, error) {
		t := new(Theme)
		err := tx.Where("is_active = ?", true).Take(t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			t = newTheme(CustomName)
			t.IsActive = true
			return t, true, nil
		}
		return t, false, err
	})
}

func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*Theme, error) {
	var t *Theme
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lock(tx); err != nil {
			return err
		}
		var err error
		if t, err = find(tx, id); err != nil {
			return err
		}
		t.IsActive = true
		return save(tx, t, false)
	})
	if err != nil {
		return nil, wrap("activate", err)
	}
	return t, nil
}

// Reset deletes every non-default theme and leaves the default theme active.
// Favicons of deleted themes are released once the transaction commits.
func (s *Service) Reset(ctx context.Context) (*Theme, error) {
	var t *Theme
	var released []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lock(tx); err != nil {
			return err
		}

		var doomed []Theme
		if err := tx.Where("is_default = ?", false).Find(&doomed).Error; err != nil {
			return err
		}
		for _, d := range doomed {
			if d.FaviconCloudinaryID != "" {
				released = append(released, d.FaviconCloudinaryID)
			}
		}
		if err := tx.Where("is_default = ?", false).Delete(&Theme{}).Error; err != nil {
			return err
		}

		t = new(Theme)
		err := tx.Where("is_default = ?", true).Order("created_at ASC").Take(t).Error
		creating := errors.Is(err, gorm.ErrRecordNotFound)
		switch {
		case creating:
			t = newTheme(DefaultName)
			t.IsDefault = true
		case err != nil:
			return err
		}
		t.IsActive = true
		return save(tx, t, creating)
	})
	if err != nil {
		return nil, wrap("reset", err)
	}

	s.pipeline.Forget(context.WithoutCancel(ctx), released...)
	return t, nil
}

// write runs a validated patch against the theme returned by load. The
// favicon is uploaded before the transaction opens and discarded on failure.
func (s *Service) write(ctx context.Context, in *ThemeInput, favicon []*multipart.FileHeader, load func(tx *gorm.DB) (*Theme, bool, error)) (*Theme, error) {
	if errs := validation.Partial(in); len(errs) > 0 {
		return nil, &content.ValidationError{Fields: errs}
	}
	if len(favicon) > 1 {
		return nil, content.Invalid("favicon", "Only one file is allowed")
	}

	var uploaded *assets.Asset
	if len(favicon) == 1 {
		var err error
		if uploaded, err = s.pipeline.Upload(ctx, favicon[0], folder); err != nil {
			return nil, err
		}
	}

	var t *Theme
	var released []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lock(tx); err != nil {
			return err
		}
		var creating bool
		var err error
		if t, creating, err = load(tx); err != nil {
			return err
		}
		if t.IsActive && in.IsActive != nil && !*in.IsActive {
			return errDeactivate
		}

		released = apply(in, t)
		if uploaded != nil {
			if previous := t.FaviconCloudinaryID; previous != "" {
				released = append(released, previous)
			}
			t.FaviconURL, t.FaviconCloudinaryID = uploaded.URL, uploaded.RemoteID
		}
		return save(tx, t, creating)
	})
	if err != nil {
		if uploaded != nil {
			s.pipeline.Discard(context.WithoutCancel(ctx), uploaded)
		}
		return nil, wrap("save", err)
	}

	s.pipeline.Forget(context.WithoutCancel(ctx), released...)
	return t, nil
}

// save clears every other active theme before writing t when t is active.
func save(tx *gorm.DB, t *Theme, creating bool) error {
	if t.IsActive {
		err := tx.Model(&Theme{}).
			Where("is_active = ? AND id <> ?", true, t.ID).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
	}
	if creating {
		return tx.Create(t).Error
	}
	return tx.Save(t).Error
}

func lock(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(?)", lockKey).Error
}

func find(tx *gorm.DB, id uuid.UUID) (*Theme, error) {
	t := new(Theme)
	if err := tx.First(t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &content.NotFoundError{Label: "Theme"}
		}
		return nil, err
	}
	return t, nil
}

// wrap keeps client-facing errors intact and annotates the rest.
func wrap(op string, err error) error {
	var ve *content.ValidationError
	if errors.As(err, &ve) || errors.Is(err, content.ErrNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s theme: %w", op, err)
}

func apply(in *ThemeInput, t *Theme) []string {
	content.Set(&t.Name, content.Trim(in.Name))
	content.Set(&t.EnableAnimations, in.EnableAnimations)
	content.Set(&t.ScrollAnimation, content.Trim(in.ScrollAnimation))
	if in.IsActive != nil && *in.IsActive {
		t.IsActive = true
	}

	if c := in.Colors; c != nil {
		v := t.Colors.Data()
		content.Set(&v.Primary, c.Primary)
		content.Set(&v.Secondary, c.Secondary)
		content.Set(&v.Accent, c.Accent)
		content.Set(&v.Background, c.Background)
		content.Set(&v.BackgroundSecondary, c.BackgroundSecondary)
		content.Set(&v.Text, c.Text)
		content.Set(&v.TextSecondary, c.TextSecondary)
		content.Set(&v.Border, c.Border)
		content.Set(&v.CardBackground, c.CardBackground)
		content.Set(&v.CardHover, c.CardHover)
		t.Colors = datatypes.NewJSONType(v)
	}
	if f := in.Fonts; f != nil {
		v := t.Fonts.Data()
		content.Set(&v.Heading, f.Heading)
		content.Set(&v.Body, f.Body)
		content.Set(&v.Code, f.Code)
		t.Fonts = datatypes.NewJSONType(v)
	}
	if e := in.Effects; e != nil {
		v := t.Effects.Data()
		content.Set(&v.BorderRadius, e.BorderRadius)
		content.Set(&v.Shadow, e.Shadow)
		content.Set(&v.ShadowHover, e.ShadowHover)
		content.Set(&v.GlowColor, e.GlowColor)
		t.Effects = datatypes.NewJSONType(v)
	}
	if g := in.Gradients; g != nil {
		v := t.Gradients.Data()
		content.Set(&v.Primary, g.Primary)
		content.Set(&v.Secondary, g.Secondary)
		content.Set(&v.Accent, g.Accent)
		t.Gradients = datatypes.NewJSONType(v)
	}

	if in.FaviconURL != nil && *in.FaviconURL != t.FaviconURL {
		t.FaviconURL = *in.FaviconURL
		if previous := t.FaviconCloudinaryID; previous != "" {
			t.FaviconCloudinaryID = ""
			return []string{previous}
		}
	}
	return nil
}
