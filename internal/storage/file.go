package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// ErrNotJSON is returned when a FileStore is given a non-JSON value.
var ErrNotJSON = errors.New("storage: file slots hold JSON documents only")

// FileStore keeps every slot in a single JSON file.
type FileStore struct {
	mu    sync.Mutex
	path  string
	slots map[string]json.RawMessage
}

// NewFileStore loads the slot file at path. A missing file is an empty
// store. A file that is not valid JSON is moved aside to path+".bad" and
// the store starts empty.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fs := &FileStore{path: path, slots: map[string]json.RawMessage{}}

	err := fs.load()
	switch {
	case err == nil, errors.Is(err, os.ErrNotExist):
	case errors.Is(err, errMalformed):
		fs.slots = map[string]json.RawMessage{}
		bad := path + ".bad"
		logger.Warn("slot file is malformed, starting empty",
			zap.String("path", path),
			zap.String("moved_to", bad),
			zap.Error(err))
		if rerr := os.Rename(path, bad); rerr != nil {
			logger.Warn("failed to move malformed slot file aside", zap.Error(rerr))
		}
	default:
		return nil, err
	}

	return fs, nil
}

var errMalformed = errors.New("malformed slot file")

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &fs.slots); err != nil {
		return fmt.Errorf("%w %s: %w", errMalformed, fs.path, err)
	}
	return nil
}

// save writes the file through a temporary sibling so a crash never
// leaves it half written.
func (fs *FileStore) save() error {
	data, err := json.MarshalIndent(fs.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return fmt.Errorf("failed to create slot directory: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write slot file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace slot file: %w", err)
	}

	return nil
}

// Get returns the slot value and whether it exists.
func (fs *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	v, ok := fs.slots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put creates or replaces a slot. Values must be JSON documents.
func (fs *FileStore) Put(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return ErrNotJSON
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.slots[key] = append(json.RawMessage(nil), value...)
	return fs.save()
}

// Delete removes a slot.
func (fs *FileStore) Delete(_ context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.slots[key]; !ok {
		return nil
	}
	delete(fs.slots, key)
	return fs.save()
}

// Close is a no-op; every write is already on disk.
func (fs *FileStore) Close() error {
	return nil
}

// Path returns the slot file path.
func (fs *FileStore) Path() string {
	return fs.path
}
