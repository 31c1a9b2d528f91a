package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/portfolio-backend/internal/assets"
)

// FakeStore is an in-memory assets.Store that records every call.
type FakeStore struct {
	mu sync.Mutex
	n  int

	Live    map[string]*assets.Asset
	Puts    []string // folders, in call order
	Deletes []string // remote ids, in call order
	Staged  []string // local paths seen by Put

	// FailPutOn makes the Nth Put (1-based) fail.
	FailPutOn int
	// FailDelete makes Delete fail for every id with this error.
	FailDelete error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{Live: map[string]*assets.Asset{}}
}

func (s *FakeStore) Put(_ context.Context, localPath, folder string) (*assets.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.n++
	s.Puts = append(s.Puts, folder)
	s.Staged = append(s.Staged, localPath)
	if _, err := os.Stat(localPath); err != nil {
		return nil, fmt.Errorf("staged file missing: %w", err)
	}
	if s.FailPutOn > 0 && s.n == s.FailPutOn {
		return nil, errors.New("fake upload failure")
	}

	id := fmt.Sprintf("%s/asset-%d", folder, s.n)
	a := &assets.Asset{
		URL:      "https://cdn.test/" + id + filepath.Ext(localPath),
		RemoteID: id,
		Width:    10,
		Height:   10,
		Format:   "png",
	}
	s.Live[id] = a
	return a, nil
}

func (s *FakeStore) Delete(_ context.Context, remoteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Deletes = append(s.Deletes, remoteID)
	if s.FailDelete != nil {
		return s.FailDelete
	}
	if _, ok := s.Live[remoteID]; !ok {
		return assets.ErrRemoteNotFound
	}
	delete(s.Live, remoteID)
	return nil
}

func (s *FakeStore) PutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Puts)
}

func (s *FakeStore) DeleteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Deletes)
}

func (s *FakeStore) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Deletes...)
}

// Seed registers an asset as live, as if uploaded earlier.
func (s *FakeStore) Seed(remoteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Live[remoteID] = &assets.Asset{RemoteID: remoteID, URL: "https://cdn.test/" + remoteID}
}

// NewPipeline wires a pipeline to the fake store with a test-scoped staging dir.
func NewPipeline(t testing.TB, store *FakeStore) *assets.Pipeline {
	return assets.NewPipeline(store, assets.Options{
		StagingDir: t.TempDir(),
		MaxBytes:   5 << 20,
		MaxFiles:   10,
	})
}
