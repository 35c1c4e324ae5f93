// Package file stores snapshots as files on the local filesystem.
package file

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"

	"github.com/xenking/pizzeria/internal/pkg/errs"
	"github.com/xenking/pizzeria/internal/snapshot"
)

const gzipExt = ".gz"

var _ snapshot.Storage = (*Storage)(nil)

// Storage implements snapshot.Storage with one file per key. Keys are paths,
// resolved against Dir when relative. Keys ending in ".gz" are gzip-compressed.
type Storage struct {
	Dir string
}

// New returns a Storage rooted at dir. An empty dir means the working directory.
func New(dir string) *Storage {
	return &Storage{Dir: dir}
}

// Write replaces the file at key with content, creating parent directories.
func (s *Storage) Write(_ context.Context, key string, content []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}

	if isGzip(path) {
		var buf bytes.Buffer
		gz := pgzip.NewWriter(&buf)
		if _, err := gz.Write(content); err != nil {
			return errors.Wrapf(err, "compress %s", path)
		}
		if err := gz.Close(); err != nil {
			return errors.Wrapf(err, "compress %s", path)
		}
		content = buf.Bytes()
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// Read returns the content of the file at key.
func (s *Storage) Read(_ context.Context, key string) ([]byte, error) {
	path := s.path(key)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.NewNotFoundError("snapshot", path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if isGzip(path) {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

func (s *Storage) path(key string) string {
	if s.Dir == "" || filepath.IsAbs(key) {
		return key
	}
	return filepath.Join(s.Dir, key)
}

func isGzip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), gzipExt)
}
