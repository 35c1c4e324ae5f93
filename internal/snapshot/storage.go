package snapshot

import (
	"context"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"
)

// Storage writes and reads whole snapshot documents by key. Implementations
// report a missing key with an error matching errs.ErrNotFound.
type Storage interface {
	Write(ctx context.Context, key string, content []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
}

// MirroredStorage writes every snapshot to a primary storage and a set of
// mirrors. Reads are served by the primary only.
type MirroredStorage struct {
	primary Storage
	mirrors []Storage
}

var _ Storage = (*MirroredStorage)(nil)

// Mirror returns a Storage that fans writes out to primary and mirrors.
func Mirror(primary Storage, mirrors ...Storage) *MirroredStorage {
	return &MirroredStorage{primary: primary, mirrors: mirrors}
}

// Write stores content in all backends concurrently and waits for all of
// them. The first failure is returned.
func (m *MirroredStorage) Write(ctx context.Context, key string, content []byte) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := m.primary.Write(ctx, key, content); err != nil {
			return errors.Wrap(err, "primary")
		}
		return nil
	})
	for i, mirror := range m.mirrors {
		g.Go(func() error {
			if err := mirror.Write(ctx, key, content); err != nil {
				return errors.Wrapf(err, "mirror %d", i)
			}
			return nil
		})
	}

	return g.Wait()
}

// Read returns the snapshot from the primary storage.
func (m *MirroredStorage) Read(ctx context.Context, key string) ([]byte, error) {
	return m.primary.Read(ctx, key)
}
