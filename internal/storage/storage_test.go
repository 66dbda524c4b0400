package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/pkg/sched"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	s := NewSQLiteStore(db)
	t.Cleanup(func() { s.Close() })
	return s
}

func newBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenBadgerStore(InMemoryBadgerConfig())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), SlotFile), nil)
	require.NoError(t, err)
	return s
}

func TestSlotStores(t *testing.T) {
	stores := map[string]func(*testing.T) twisty.SlotStore{
		"sqlite": func(t *testing.T) twisty.SlotStore { return newSQLiteStore(t) },
		"badger": func(t *testing.T) twisty.SlotStore { return newBadgerStore(t) },
		"file":   func(t *testing.T) twisty.SlotStore { return newFileStore(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, ok, err := s.Get(ctx, twisty.SlotState)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Put(ctx, twisty.SlotState, []byte(`{"a":1}`)))
			require.NoError(t, s.Put(ctx, twisty.SlotState, []byte(`{"a":2}`)))

			v, ok, err := s.Get(ctx, twisty.SlotState)
			require.NoError(t, err)
			require.True(t, ok)
			assert.JSONEq(t, `{"a":2}`, string(v))

			require.NoError(t, s.Delete(ctx, twisty.SlotState))
			require.NoError(t, s.Delete(ctx, twisty.SlotState), "deleting twice is fine")
			_, ok, err = s.Get(ctx, twisty.SlotState)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPuzzleSaveLoadThroughStores(t *testing.T) {
	stores := map[string]func(*testing.T) twisty.SlotStore{
		"sqlite": func(t *testing.T) twisty.SlotStore { return newSQLiteStore(t) },
		"badger": func(t *testing.T) twisty.SlotStore { return newBadgerStore(t) },
		"file":   func(t *testing.T) twisty.SlotStore { return newFileStore(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			clock := sched.NewClock()
			p := twisty.New(twisty.WithScheduler(clock))
			for _, n := range twisty.SexyMove {
				require.True(t, p.PerformMove(0, n))
				clock.RunUntilIdle()
			}
			require.NoError(t, p.ApplySkin(twisty.SkinPastel))
			require.NoError(t, p.Save(ctx, s))

			q := twisty.New()
			require.NoError(t, q.Load(ctx, s))
			assert.Equal(t, p.State(), q.State())
			assert.Equal(t, p.Config(), q.Config())
		})
	}
}

func TestFileStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", SlotFile)

	s, err := NewFileStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, twisty.SlotConfig, []byte(`{"moves":3}`)))
	assert.ErrorIs(t, s.Put(ctx, twisty.SlotConfig, []byte(`not json`)), ErrNotJSON)

	reopened, err := NewFileStore(path, nil)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, twisty.SlotConfig)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"moves":3}`, string(v))
}

func TestFileStoreMalformedFileFallsBack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, SlotFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	core, logs := observer.New(zapcore.WarnLevel)
	s, err := OpenStore(BackendFile, dir, zap.New(core))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 1, logs.FilterMessage("slot file is malformed, starting empty").Len())
	bad, err := os.ReadFile(path + ".bad")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(bad), "malformed file is kept aside")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	p := twisty.New()
	require.NoError(t, p.Load(ctx, s))
	assert.True(t, p.IsSolved())
	assert.Equal(t, twisty.SolvedState(), p.State())
	assert.Zero(t, p.MoveCount())

	require.NoError(t, p.Save(ctx, s))
	reopened, err := NewFileStore(path, nil)
	require.NoError(t, err)
	_, ok, err := reopened.Get(ctx, twisty.SlotState)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBadgerStorePersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenBadgerStore(DefaultBadgerConfig(dir))
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, twisty.SlotState, []byte("state")))
	require.NoError(t, s.Put(ctx, twisty.SlotConfig, []byte("config")))
	require.NoError(t, s.Close())

	s, err = OpenBadgerStore(DefaultBadgerConfig(dir))
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(ctx, twisty.SlotState)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("state"), v)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{twisty.SlotState, twisty.SlotConfig}, keys)
}

func TestBadgerRequiresPath(t *testing.T) {
	_, err := OpenBadgerStore(BadgerConfig{})
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	for _, b := range Backends {
		t.Run(string(b), func(t *testing.T) {
			s, err := OpenStore(b, t.TempDir(), nil)
			require.NoError(t, err)
			require.NoError(t, s.Put(context.Background(), "k", []byte(`1`)))
			assert.NoError(t, s.Close())
		})
	}

	_, err := OpenStore("mongo", t.TempDir(), nil)
	assert.Error(t, err)
	assert.False(t, Backend("mongo").Valid())
}

func TestMigrations(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), SQLiteFile))
	require.NoError(t, err)
	defer db.Close()

	version, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), version)

	require.NoError(t, applyMigrations(db.DB), "reapplying is a no-op")
}
