package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/validation"
	"gorm.io/gorm"
)

// SingletonDefinition describes a content type with at most one document.
// Models carry a unique slot column so a second row cannot be inserted.
type SingletonDefinition[M any, I any] struct {
	Kind Kind
	// New returns a document holding the defaults.
	New         func() *M
	Apply       func(in *I, m *M) (released []string)
	Attachments []Attachment[M]
}

type Singleton[M any, I any] struct {
	db       *gorm.DB
	pipeline *assets.Pipeline
	def      *SingletonDefinition[M, I]
}

func NewSingleton[M any, I any](db *gorm.DB, pipeline *assets.Pipeline, def *SingletonDefinition[M, I]) *Singleton[M, I] {
	return &Singleton[M, I]{db: db, pipeline: pipeline, def: def}
}

// Get returns the document, or nil before the first write.
func (s *Singleton[M, I]) Get(ctx context.Context) (*M, error) {
	m := new(M)
	err := s.db.WithContext(ctx).Take(m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.def.Kind.Singular, err)
	}
	return m, nil
}

// Upsert creates the document from defaults when absent, then patches the
// fields present in in. Files are uploaded before the transaction opens.
func (s *Singleton[M, I]) Upsert(ctx context.Context, in *I, files Files) (*M, error) {
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

	var m *M
	var released []string
	// A concurrent first write loses on the unique slot; run once more as an update.
	for attempt := 0; attempt < 2; attempt++ {
		m, released, err = s.write(ctx, in, up)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		s.pipeline.Discard(context.WithoutCancel(ctx), up.all...)
		return nil, fmt.Errorf("failed to save %s: %w", s.def.Kind.Singular, err)
	}

	s.pipeline.Forget(context.WithoutCancel(ctx), released...)
	return m, nil
}

func (s *Singleton[M, I]) write(ctx context.Context, in *I, up *uploads) (*M, []string, error) {
	var m *M
	var released []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m = new(M)
		err := tx.Take(m).Error
		creating := errors.Is(err, gorm.ErrRecordNotFound)
		switch {
		case creating:
			m = s.def.New()
		case err != nil:
			return err
		}

		released = s.def.Apply(in, m)
		released = append(released, embedUploads(m, s.def.Attachments, up)...)

		if creating {
			return tx.Create(m).Error
		}
		return tx.Save(m).Error
	})
	return m, released, err
}
