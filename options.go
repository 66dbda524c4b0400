package twisty

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/twisty/pkg/sched"
)

// Option configures Puzzle behavior.
type Option func(*config)

type config struct {
	logger         *zap.Logger
	scheduler      sched.Scheduler
	rand           *rand.Rand
	speed          Speed
	easing         Easing
	skin           Skin
	scrambleLength int
}

const (
	// ScrambleLength is the number of moves in a scramble.
	ScrambleLength = 25
	// ScrambleBuffer separates consecutive scramble moves beyond the
	// transition itself.
	ScrambleBuffer = 50 * time.Millisecond
)

func defaultConfig() *config {
	return &config{
		logger:         zap.NewNop(),
		speed:          SpeedFast,
		easing:         EasingNormal,
		skin:           SkinClassic,
		scrambleLength: ScrambleLength,
	}
}

// WithLogger sets the logger. Rejected moves and state transitions are
// logged at debug level, persistence fallbacks at warn level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithScheduler sets the scheduler that ends layer transitions and paces
// scrambles. By default the puzzle owns a sched.Clock, reachable through
// Scheduler.
func WithScheduler(s sched.Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
	}
}

// WithRand sets the random source used for scrambles.
// Use a seeded source for reproducible scrambles.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.rand = r
	}
}

// WithTransition sets the initial transition speed and easing.
func WithTransition(speed Speed, easing Easing) Option {
	return func(c *config) {
		c.speed = speed
		c.easing = easing
	}
}

// WithSkin sets the initial skin.
func WithSkin(skin Skin) Option {
	return func(c *config) {
		c.skin = skin
	}
}

// WithScrambleLength overrides the number of moves in a scramble.
func WithScrambleLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.scrambleLength = n
		}
	}
}
