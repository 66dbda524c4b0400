package twisty

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memStore struct {
	slots map[string][]byte
	err   error
}

func newMemStore() *memStore {
	return &memStore{slots: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *memStore) Put(_ context.Context, key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.slots[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.slots, key)
	return nil
}

func (m *memStore) Close() error { return nil }

func TestDefaultConfigJSON(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"moves": 0,
		"skin": "CLASSIC",
		"size": "Normal",
		"angle": {"x": -20, "y": -30, "z": 0},
		"baseColor": {"r": 0, "g": 0, "b": 0, "a": 1},
		"easingFunction": "NORMAL",
		"transitionDuration": "Fast"
	}`, string(data))
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"negative moves", func(c *Config) { c.Moves = -1 }, ErrInvalidConfig},
		{"skin", func(c *Config) { c.Skin = "NEON" }, ErrInvalidSkin},
		{"size", func(c *Config) { c.Size = "Tiny" }, ErrInvalidSize},
		{"easing", func(c *Config) { c.Easing = "WOBBLE" }, ErrInvalidEasing},
		{"speed", func(c *Config) { c.Transition = "Warp" }, ErrInvalidSpeed},
		{"alpha", func(c *Config) { c.BaseColor.A = 2 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			err := c.Validate()
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	p, clock := newTestPuzzle(t)
	for _, n := range scrambleFixture {
		require.True(t, p.PerformMove(0, n))
		clock.RunUntilIdle()
	}
	require.NoError(t, p.ApplySkin(SkinStroke))
	p.ApplyBaseColor(BaseColors["PINK"])
	p.SetBaseAlpha(0.25)
	require.NoError(t, p.SetTransition(SpeedMedium))
	require.NoError(t, p.SetEasing(EasingMagnetic))
	require.NoError(t, p.SetSize(SizeBig))
	p.SetView(Angle{X: -20, Y: 100, Z: 180})

	state, config, err := p.Export()
	require.NoError(t, err)

	q, _ := newTestPuzzle(t)
	require.NoError(t, q.Restore(state, config))

	if diff := cmp.Diff(p.State(), q.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, p.Config(), q.Config())
	assert.Equal(t, len(scrambleFixture), q.MoveCount())
	assert.True(t, q.Flipped())
}

func TestRestoreFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, _ := newTestPuzzle(t, WithLogger(zap.New(core)))

	require.NoError(t, p.Restore([]byte(`{"0":`), []byte(`not json`)))
	assert.Equal(t, SolvedState(), p.State())
	assert.Equal(t, DefaultConfig(), p.Config())
	assert.Equal(t, 2, logs.Len())
}

func TestRestoreSingleColorStateFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, _ := newTestPuzzle(t, WithLogger(zap.New(core)))

	mono := SolvedState()
	for id := range mono {
		for _, f := range mono[id].Faces() {
			mono[id][f] = 2
		}
	}
	data, err := json.Marshal(mono)
	require.NoError(t, err)

	require.NoError(t, p.Restore(data, nil))
	assert.Equal(t, SolvedState(), p.State())
	assert.Equal(t, 1, logs.Len())
}

func TestRestoreMissingSlots(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, clock := newTestPuzzle(t, WithLogger(zap.New(core)))
	require.True(t, p.PerformMove(0, R))
	clock.RunUntilIdle()

	require.NoError(t, p.Restore(nil, nil))
	assert.True(t, p.IsSolved())
	assert.Equal(t, DefaultConfig(), p.Config())
	assert.Zero(t, logs.Len())
}

func TestRestoreFallsBackPerField(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, _ := newTestPuzzle(t, WithLogger(zap.New(core)))

	config := []byte(`{"moves": 7, "skin": "NEON", "size": "Big", "transitionDuration": "Warp"}`)
	require.NoError(t, p.Restore(nil, config))

	assert.Equal(t, 7, p.MoveCount())
	assert.Equal(t, SkinClassic, p.Skin())
	assert.Equal(t, SizeBig, p.Size())
	assert.Equal(t, SpeedFast, p.Speed())
	assert.Equal(t, DefaultAngle, p.View(), "missing fields keep defaults")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, []interface{}{"skin", "transitionDuration"}, logs.All()[0].ContextMap()["fields"])
}

func TestRestoreSpecialSkinForcesTransparentBase(t *testing.T) {
	p, _ := newTestPuzzle(t)
	require.NoError(t, p.Restore(nil, []byte(`{"skin": "HOLLOW", "baseColor": {"r": 255, "g": 0, "b": 0, "a": 1}}`)))
	assert.Equal(t, Transparent, p.BaseColor())
}

func TestRestoreCanonicalizesSkinName(t *testing.T) {
	p, _ := newTestPuzzle(t)
	require.NoError(t, p.Restore(nil, []byte(`{"skin": "hollow"}`)))
	assert.Equal(t, SkinHollow, p.Skin())
	assert.Equal(t, Transparent, p.BaseColor())
}

func TestRestoreWhileScrambling(t *testing.T) {
	p, _ := newTestPuzzle(t)
	require.True(t, p.Scramble())
	assert.ErrorIs(t, p.Restore(nil, nil), ErrBusy)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	p, clock := newTestPuzzle(t)
	require.True(t, p.PerformMove(0, F))
	clock.RunUntilIdle()
	require.NoError(t, p.Save(ctx, store))
	assert.Contains(t, store.slots, SlotState)
	assert.Contains(t, store.slots, SlotConfig)

	q, _ := newTestPuzzle(t)
	require.NoError(t, q.Load(ctx, store))
	assert.Equal(t, p.State(), q.State())
	assert.Equal(t, 1, q.MoveCount())
}

func TestLoadStoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	store := newMemStore()
	store.err = boom

	p, _ := newTestPuzzle(t)
	assert.ErrorIs(t, p.Load(context.Background(), store), boom)
	assert.ErrorIs(t, p.Save(context.Background(), store), boom)
}
