package storage

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/twisty"
)

var (
	_ twisty.SlotStore = (*SQLiteStore)(nil)
	_ twisty.SlotStore = (*BadgerStore)(nil)
	_ twisty.SlotStore = (*FileStore)(nil)
)

// Backend names a slot store implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBadger Backend = "badger"
	BackendFile   Backend = "file"
)

// Backends lists the supported backends.
var Backends = []Backend{BackendSQLite, BackendBadger, BackendFile}

// Valid reports whether b is a known backend.
func (b Backend) Valid() bool {
	for _, known := range Backends {
		if b == known {
			return true
		}
	}
	return false
}

// File names used inside the data directory.
const (
	SQLiteFile = "twisty.db"
	BadgerDir  = "badger"
	SlotFile   = "slots.json"
)

// OpenStore opens the slot store for backend under dir.
func OpenStore(backend Backend, dir string, logger *zap.Logger) (twisty.SlotStore, error) {
	switch backend {
	case BackendSQLite:
		db, err := Open(filepath.Join(dir, SQLiteFile))
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	case BackendBadger:
		cfg := DefaultBadgerConfig(filepath.Join(dir, BadgerDir))
		cfg.Logger = logger
		s, err := OpenBadgerStore(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendFile:
		s, err := NewFileStore(filepath.Join(dir, SlotFile), logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
