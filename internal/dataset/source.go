package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Source yields the current dataset.
type Source interface {
	Load(ctx context.Context) (*Dataset, error)
}

// FileSource reads the dataset from disk on every call.
type FileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource creates a FileSource for the CSV at path.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{fs: fs, path: path}
}

// Path returns the dataset location.
func (s *FileSource) Path() string {
	return s.path
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	return Load(s.fs, s.path)
}

// Cache keeps the last successfully loaded dataset until it is invalidated.
// Each invalidation bumps Version, which identifies the dataset a caller saw.
type Cache struct {
	src Source

	mu      sync.RWMutex
	ds      *Dataset
	version uint64
}

// NewCache wraps src.
func NewCache(src Source) *Cache {
	return &Cache{src: src}
}

// Load implements Source. Failed loads are not cached.
func (c *Cache) Load(ctx context.Context) (*Dataset, error) {
	c.mu.RLock()
	ds := c.ds
	c.mu.RUnlock()
	if ds != nil {
		return ds, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ds != nil {
		return c.ds, nil
	}
	ds, err := c.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.ds = ds
	return ds, nil
}

// Invalidate drops the cached dataset.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.ds = nil
	c.version++
	c.mu.Unlock()
}

// Version returns the number of invalidations so far.
func (c *Cache) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Watch invalidates the cache whenever the file at path is written, created,
// removed or renamed. The parent directory is watched so editors that replace
// the file atomically are picked up. Watch blocks until ctx is done.
func (c *Cache) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	name := filepath.Base(path)
	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name || event.Op&relevant == 0 {
				continue
			}
			c.Invalidate()
			slog.Debug("Dataset changed, cache invalidated", "path", path, "op", event.Op.String())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Dataset watcher error", "path", path, "error", err)
		}
	}
}
