package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the generic CRUD engine for one content type.
type Service[M any, I any] struct {
	db       *gorm.DB
	pipeline *assets.Pipeline
	def      *Definition[M, I]
	logger   *slog.Logger
}

func NewService[M any, I any](db *gorm.DB, pipeline *assets.Pipeline, def *Definition[M, I]) *Service[M, I] {
	return &Service[M, I]{
		db:       db,
		pipeline: pipeline,
		def:      def,
		logger:   slog.Default().With("kind", def.Kind.Singular),
	}
}

func (s *Service[M, I]) Definition() *Definition[M, I] { return s.def }

func (s *Service[M, I]) List(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]M, error) {
	q := s.db.WithContext(ctx).Model(new(M))
	if scope != nil {
		q = q.Scopes(scope)
	}

	items := make([]M, 0)
	if err := q.Order(s.def.order()).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.def.Kind.Plural, err)
	}
	return items, nil
}

func (s *Service[M, I]) Get(ctx context.Context, id uuid.UUID) (*M, error) {
	return s.get(s.db.WithContext(ctx), id)
}

func (s *Service[M, I]) get(tx *gorm.DB, id uuid.UUID) (*M, error) {
	m := new(M)
	if err := tx.First(m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Label: s.def.Kind.Label}
		}
		return nil, fmt.Errorf("failed to load %s: %w", s.def.Kind.Singular, err)
	}
	return m, nil
}

// Create validates in, uploads any attached files and persists the document.
// Uploads are released again if the insert fails.
func (s *Service[M, I]) Create(ctx context.Context, in *I, files Files) (*M, error) {
	if errs := validation.Struct(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	if err := checkAttachments(s.pipeline, s.def.Attachments, files, true); err != nil {
		return nil, err
	}

	m := new(M)
	s.def.Build(in, m)

	up, err := uploadAttachments(ctx, s.pipeline, s.def.Attachments, s.def.Kind.Folder, files)
	if err != nil {
		return nil, err
	}
	embedUploads(m, s.def.Attachments, up)

	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		s.pipeline.Discard(context.WithoutCancel(ctx), up.all...)
		return nil, fmt.Errorf("failed to create %s: %w", s.def.Kind.Singular, err)
	}
	return m, nil
}

// Update patches the fields present in in. Assets detached by the patch or
// replaced by new uploads are released after the write commits.
func (s *Service[M, I]) Update(ctx context.Context, id uuid.UUID, in *I, files Files) (*M, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if errs := validation.Partial(in); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	if err := checkAttachments(s.pipeline, s.def.Attachments, files, false); err != nil {
		return nil, err
	}

	up, err := uploadAttachments(ctx, s.pipeline, s.def.Attachments, s.def.Kind.Folder, files)
	if err != nil {
		return nil, err
	}
	released := s.def.Apply(in, m)
	released = append(released, embedUploads(m, s.def.Attachments, up)...)

	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		s.pipeline.Discard(context.WithoutCancel(ctx), up.all...)
		return nil, fmt.Errorf("failed to update %s: %w", s.def.Kind.Singular, err)
	}

	s.pipeline.Forget(context.WithoutCancel(ctx), released...)
	return m, nil
}

// Delete releases every remote asset the document owns and then removes it.
// If a release fails the document is kept so the ids are not lost.
func (s *Service[M, I]) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if s.def.Assets != nil {
		if err := s.pipeline.ReleaseAll(ctx, s.def.Assets(m)...); err != nil {
			return err
		}
	}

	if err := s.db.WithContext(ctx).Delete(m).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.def.Kind.Singular, err)
	}
	return nil
}
