package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore keeps assets under a local directory served at baseURL. It stands
// in for the remote store when no cloud credentials are configured.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Put(_ context.Context, localPath, folder string) (*Asset, error) {
	ext := strings.ToLower(filepath.Ext(localPath))
	remoteID := path.Join(cleanFolder(folder), uuid.NewString()+ext)
	dest := filepath.Join(s.root, filepath.FromSlash(remoteID))

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, err
	}

	src, err := os.Open(localPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dest)
		return nil, err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dest)
		return nil, err
	}

	asset := &Asset{
		URL:      s.baseURL + "/" + remoteID,
		RemoteID: remoteID,
		Format:   strings.TrimPrefix(ext, "."),
	}
	if _, err := src.Seek(0, io.SeekStart); err == nil {
		if cfg, _, err := image.DecodeConfig(src); err == nil {
			asset.Width, asset.Height = cfg.Width, cfg.Height
		}
	}
	return asset, nil
}

func (s *DiskStore) Delete(_ context.Context, remoteID string) error {
	clean := path.Clean("/" + remoteID)[1:]
	if clean == "" || clean != remoteID {
		return fmt.Errorf("invalid asset id %q", remoteID)
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if errors.Is(err, os.ErrNotExist) {
		return ErrRemoteNotFound
	}
	return err
}

func cleanFolder(folder string) string {
	f := path.Clean("/" + folder)[1:]
	if f == "" {
		return "misc"
	}
	return f
}
