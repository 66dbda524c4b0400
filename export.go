package twisty

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Storage slot names.
const (
	SlotState  = "puzzleState"
	SlotConfig = "puzzleConfig"
)

// Config is the persisted presentation and counter data of a puzzle.
type Config struct {
	Moves      int    `json:"moves"`
	Skin       Skin   `json:"skin"`
	Size       Size   `json:"size"`
	Angle      Angle  `json:"angle"`
	BaseColor  RGBA   `json:"baseColor"`
	Easing     Easing `json:"easingFunction"`
	Transition Speed  `json:"transitionDuration"`
}

// DefaultConfig returns the config of a fresh puzzle.
func DefaultConfig() Config {
	return Config{
		Moves:      0,
		Skin:       SkinClassic,
		Size:       SizeNormal,
		Angle:      DefaultAngle,
		BaseColor:  Black,
		Easing:     EasingNormal,
		Transition: SpeedFast,
	}
}

// Validate checks every named field against its known values.
func (c Config) Validate() error {
	if c.Moves < 0 {
		return fmt.Errorf("%w: negative move count %d", ErrInvalidConfig, c.Moves)
	}
	if _, err := ParseSkin(string(c.Skin)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, ok := sizeScales[c.Size]; !ok {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrInvalidSize, c.Size)
	}
	if _, ok := easingFunctions[c.Easing]; !ok {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrInvalidEasing, c.Easing)
	}
	if _, ok := speedDurations[c.Transition]; !ok {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrInvalidSpeed, c.Transition)
	}
	if c.BaseColor.A < 0 || c.BaseColor.A > 1 {
		return fmt.Errorf("%w: base alpha %g", ErrInvalidConfig, c.BaseColor.A)
	}
	return nil
}

// normalize replaces each invalid field with its default and returns the
// names of the replaced fields.
func (c Config) normalize() (Config, []string) {
	def := DefaultConfig()
	var fixed []string

	if c.Moves < 0 {
		c.Moves = def.Moves
		fixed = append(fixed, "moves")
	}
	if skin, err := ParseSkin(string(c.Skin)); err != nil {
		c.Skin = def.Skin
		fixed = append(fixed, "skin")
	} else {
		c.Skin = skin
	}
	if _, ok := sizeScales[c.Size]; !ok {
		c.Size = def.Size
		fixed = append(fixed, "size")
	}
	if _, ok := easingFunctions[c.Easing]; !ok {
		c.Easing = def.Easing
		fixed = append(fixed, "easingFunction")
	}
	if _, ok := speedDurations[c.Transition]; !ok {
		c.Transition = def.Transition
		fixed = append(fixed, "transitionDuration")
	}
	if c.BaseColor.A < 0 || c.BaseColor.A > 1 {
		c.BaseColor = c.BaseColor.WithAlpha(c.BaseColor.A)
		fixed = append(fixed, "baseColor")
	}
	return c, fixed
}

// Config returns the puzzle's current persisted config.
func (p *Puzzle) Config() Config {
	return Config{
		Moves:      p.moveCount,
		Skin:       p.skin,
		Size:       p.size,
		Angle:      p.view,
		BaseColor:  p.base,
		Easing:     p.easing,
		Transition: p.speed,
	}
}

// Export encodes the two persisted slots.
func (p *Puzzle) Export() (state, config []byte, err error) {
	state, err = json.Marshal(p.state)
	if err != nil {
		return nil, nil, fmt.Errorf("encode state: %w", err)
	}
	config, err = json.Marshal(p.Config())
	if err != nil {
		return nil, nil, fmt.Errorf("encode config: %w", err)
	}
	return state, config, nil
}

// Restore loads the two persisted slots. Missing or malformed data falls
// back to the solved state and the default config; invalid config fields
// fall back one by one. It fails only with ErrBusy while scrambling.
func (p *Puzzle) Restore(state, config []byte) error {
	if p.status == StatusScrambling {
		return ErrBusy
	}
	p.forceSettle()

	st := SolvedState()
	if len(state) > 0 {
		var decoded State
		if err := json.Unmarshal(state, &decoded); err != nil {
			p.log.Warn("stored state is malformed, using solved state", zap.Error(err))
		} else {
			st = decoded
		}
	}

	cfg := DefaultConfig()
	if len(config) > 0 {
		decoded := DefaultConfig()
		if err := json.Unmarshal(config, &decoded); err != nil {
			p.log.Warn("stored config is malformed, using defaults", zap.Error(err))
		} else {
			var fixed []string
			cfg, fixed = decoded.normalize()
			if len(fixed) > 0 {
				p.log.Warn("stored config has invalid fields, using defaults",
					zap.Strings("fields", fixed))
			}
		}
	}

	p.state = st
	p.applyConfig(cfg)
	p.log.Debug("puzzle restored",
		zap.Int("moves", p.moveCount),
		zap.String("skin", string(p.skin)),
		zap.Bool("flipped", p.flipped))
	return nil
}

// applyConfig assumes cfg is valid.
func (p *Puzzle) applyConfig(cfg Config) {
	p.moveCount = cfg.Moves
	p.skin = cfg.Skin
	p.base = cfg.BaseColor
	if p.skin.Special() {
		p.base = Transparent
	}
	p.size = cfg.Size
	p.easing = cfg.Easing
	p.speed = cfg.Transition
	p.SetView(cfg.Angle)
}

// SlotStore persists named byte slots.
type SlotStore interface {
	// Get returns the slot value and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Save exports the puzzle into both slots of store.
func (p *Puzzle) Save(ctx context.Context, store SlotStore) error {
	state, config, err := p.Export()
	if err != nil {
		return err
	}
	if err := store.Put(ctx, SlotState, state); err != nil {
		return fmt.Errorf("save %s: %w", SlotState, err)
	}
	if err := store.Put(ctx, SlotConfig, config); err != nil {
		return fmt.Errorf("save %s: %w", SlotConfig, err)
	}
	return nil
}

// Load restores the puzzle from store. Missing slots are treated like
// a fresh puzzle.
func (p *Puzzle) Load(ctx context.Context, store SlotStore) error {
	state, _, err := store.Get(ctx, SlotState)
	if err != nil {
		return fmt.Errorf("load %s: %w", SlotState, err)
	}
	config, _, err := store.Get(ctx, SlotConfig)
	if err != nil {
		return fmt.Errorf("load %s: %w", SlotConfig, err)
	}
	return p.Restore(state, config)
}
