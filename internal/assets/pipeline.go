package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/metrics"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedMIME = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type Pipeline struct {
	store      Store
	stagingDir string
	maxBytes   int64
	maxFiles   int
	logger     *slog.Logger
}

type Options struct {
	StagingDir string
	MaxBytes   int64
	MaxFiles   int
	Logger     *slog.Logger
}

func NewPipeline(store Store, opts Options) *Pipeline {
	if opts.StagingDir == "" {
		opts.StagingDir = os.TempDir()
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 5 << 20
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = 10
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Pipeline{
		store:      store,
		stagingDir: opts.StagingDir,
		maxBytes:   opts.MaxBytes,
		maxFiles:   opts.MaxFiles,
		logger:     opts.Logger,
	}
}

func (p *Pipeline) MaxFiles() int { return p.maxFiles }

// Check validates size, extension and sniffed content type of fh without
// touching the remote store.
func (p *Pipeline) Check(fh *multipart.FileHeader) error {
	if fh.Size > p.maxBytes {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, fh.Filename)
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedMIME...) {
		return fmt.Errorf("%w: %s is %s", ErrUnsupportedFileType, fh.Filename, mt.String())
	}
	return nil
}

// CheckAll validates every file, and the file count, before anything is uploaded.
func (p *Pipeline) CheckAll(files []*multipart.FileHeader) error {
	if len(files) > p.maxFiles {
		return fmt.Errorf("%w: at most %d allowed", ErrTooManyFiles, p.maxFiles)
	}
	for _, fh := range files {
		if err := p.Check(fh); err != nil {
			metrics.RecordAssetOperation("upload", "rejected")
			return err
		}
	}
	return nil
}

// Upload stages fh in a temporary file, pushes it to the store and removes the
// staging copy on every path.
func (p *Pipeline) Upload(ctx context.Context, fh *multipart.FileHeader, folder string) (*Asset, error) {
	if err := p.CheckAll([]*multipart.FileHeader{fh}); err != nil {
		return nil, err
	}
	return p.upload(ctx, fh, folder)
}

// UploadMany is all-or-nothing: if any upload fails, the ones that succeeded
// are released and the first error is returned.
func (p *Pipeline) UploadMany(ctx context.Context, files []*multipart.FileHeader, folder string) ([]*Asset, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if err := p.CheckAll(files); err != nil {
		return nil, err
	}

	results := make([]*Asset, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		g.Go(func() error {
			asset, err := p.upload(gctx, fh, folder)
			if err != nil {
				return err
			}
			results[i] = asset
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var done []*Asset
		for _, a := range results {
			if a != nil {
				done = append(done, a)
			}
		}
		p.Discard(context.WithoutCancel(ctx), done...)
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) upload(ctx context.Context, fh *multipart.FileHeader, folder string) (*Asset, error) {
	staged, err := p.stage(fh)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(staged); err != nil && !errors.Is(err, os.ErrNotExist) {
			p.logger.Error("failed to remove staged upload", "path", staged, "error", err)
		}
	}()

	asset, err := p.store.Put(ctx, staged, folder)
	if err != nil {
		metrics.RecordAssetOperation("upload", "error")
		return nil, fmt.Errorf("%w: upload %s: %w", ErrUpstream, fh.Filename, err)
	}
	metrics.RecordAssetOperation("upload", "ok")
	return asset, nil
}

func (p *Pipeline) stage(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	tmp, err := os.CreateTemp(p.stagingDir, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to stage upload: %w", err)
	}

	// Copy one byte past the limit so an understated header size is still caught.
	n, err := io.Copy(tmp, io.LimitReader(src, p.maxBytes+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > p.maxBytes {
		err = fmt.Errorf("%w: %s", ErrFileTooLarge, fh.Filename)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// Release deletes one remote asset. An asset that is already gone is logged
// and treated as released.
func (p *Pipeline) Release(ctx context.Context, remoteID string) error {
	if remoteID == "" {
		return nil
	}
	err := p.store.Delete(ctx, remoteID)
	switch {
	case err == nil:
		metrics.RecordAssetOperation("release", "ok")
		return nil
	case errors.Is(err, ErrRemoteNotFound):
		metrics.RecordAssetOperation("release", "not_found")
		p.logger.Warn("remote asset already gone", "remote_id", remoteID)
		return nil
	default:
		metrics.RecordAssetOperation("release", "error")
		return fmt.Errorf("%w: delete %s: %w", ErrUpstream, remoteID, err)
	}
}

// ReleaseAll releases every id and joins the failures.
func (p *Pipeline) ReleaseAll(ctx context.Context, remoteIDs ...string) error {
	var errs []error
	for _, id := range remoteIDs {
		if err := p.Release(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard releases assets whose owning write did not happen. Failures are
// logged since there is no caller left to surface them to.
func (p *Pipeline) Discard(ctx context.Context, assets ...*Asset) {
	for _, a := range assets {
		if a == nil {
			continue
		}
		if err := p.Release(ctx, a.RemoteID); err != nil {
			p.logger.Error("failed to release orphaned asset", "remote_id", a.RemoteID, "error", err)
		}
	}
}

// Forget releases assets that were replaced by a committed write. Failures are
// logged; the write itself already succeeded.
func (p *Pipeline) Forget(ctx context.Context, remoteIDs ...string) {
	for _, id := range remoteIDs {
		if err := p.Release(ctx, id); err != nil {
			p.logger.Error("failed to release replaced asset", "remote_id", id, "error", err)
		}
	}
}
