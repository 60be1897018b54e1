// Binary file access for context assembly
package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clarityhq/clarity/pkg/utils"
)

// BinaryStore reads stored media files. Context assembly only ever reads;
// writes go through the media service.
type BinaryStore interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FSBinaryStore reads files straight from disk.
type FSBinaryStore struct{}

// NewFSBinaryStore creates a filesystem-backed binary store
func NewFSBinaryStore() *FSBinaryStore {
	return &FSBinaryStore{}
}

// ReadFile reads the file at path
func (s *FSBinaryStore) ReadFile(_ context.Context, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return b, nil
}

const binaryCacheTTL = 10 * time.Minute

// CachedBinaryStore decorates another BinaryStore with a Redis read-through
// cache. Image bytes are re-sent to the model on every question, so caching
// the disk read is worthwhile for frequently-asked companies. Cache failures
// degrade to direct reads.
type CachedBinaryStore struct {
	inner  BinaryStore
	client *redis.Client
	logger *slog.Logger
}

// NewCachedBinaryStore wraps inner with a Redis cache at addr
func NewCachedBinaryStore(inner BinaryStore, addr string) *CachedBinaryStore {
	return &CachedBinaryStore{
		inner:  inner,
		client: redis.NewClient(&redis.Options{Addr: addr}),
		logger: utils.GetLogger(),
	}
}

// ReadFile returns the cached bytes for path, falling back to the inner store
func (s *CachedBinaryStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	key := "clarity:file:" + path

	b, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.Debug("File cache read failed, falling back to disk", "path", path, "error", err)
	}

	b, err = s.inner.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := s.client.Set(ctx, key, b, binaryCacheTTL).Err(); err != nil {
		s.logger.Debug("File cache write failed", "path", path, "error", err)
	}
	return b, nil
}
