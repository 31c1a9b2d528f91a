// Package assets stages uploaded images locally, pushes them to a remote object
// store and releases them again when the owning document goes away.
package assets

import (
	"context"
	"errors"
)

var (
	ErrUnsupportedFileType = errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrTooManyFiles        = errors.New("too many files")
	// ErrRemoteNotFound is returned by a Store when the asset is already gone.
	ErrRemoteNotFound = errors.New("remote asset not found")
	// ErrUpstream wraps every other remote store failure.
	ErrUpstream = errors.New("remote asset store request failed")
)

// Asset is what a remote store hands back for an upload. RemoteID is the
// handle used to delete it later.
type Asset struct {
	URL      string `json:"url"`
	RemoteID string `json:"remoteId"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Format   string `json:"format,omitempty"`
}

// Store is a remote object store.
type Store interface {
	Put(ctx context.Context, localPath, folder string) (*Asset, error)
	Delete(ctx context.Context, remoteID string) error
}
