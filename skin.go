package twisty

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Skin is a visual palette for the sticker color ids.
type Skin string

const (
	SkinClassic     Skin = "CLASSIC"
	SkinPastel      Skin = "PASTEL"
	SkinHollow      Skin = "HOLLOW"
	SkinInverted    Skin = "INVERTED"
	SkinStickerless Skin = "STICKERLESS"
	SkinGlass       Skin = "GLASS"
	SkinStroke      Skin = "STROKE"
)

// Skins lists every skin in menu order.
var Skins = []Skin{SkinClassic, SkinPastel, SkinHollow, SkinInverted, SkinStickerless, SkinGlass, SkinStroke}

// AppearanceBaseURL prefixes every sticker image path.
const AppearanceBaseURL = "./images/appearance/"

// ParseSkin parses a skin name, ignoring case.
func ParseSkin(s string) (Skin, error) {
	for _, skin := range Skins {
		if strings.EqualFold(s, string(skin)) {
			return skin, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSkin, s)
}

// Special reports whether the skin replaces the piece body itself and
// forces a transparent base.
func (s Skin) Special() bool {
	return s == SkinHollow || s == SkinGlass
}

// BaseColorEnabled reports whether the base color and its opacity can be
// customised under this skin.
func (s Skin) BaseColorEnabled() bool {
	return s == SkinClassic || s == SkinStroke
}

// Appearance returns the image used for color c under this skin.
func (s Skin) Appearance(c Color) string {
	if c == NoColor {
		return ""
	}
	return fmt.Sprintf("%s%s/color_%d.svg", AppearanceBaseURL, strings.ToLower(string(s)), c)
}

// Overlay returns the image laid over every face by special skins.
func (s Skin) Overlay() string {
	switch s {
	case SkinHollow:
		return AppearanceBaseURL + "hollow/hole.svg"
	case SkinGlass:
		return AppearanceBaseURL + "glass/cristal.svg"
	default:
		return ""
	}
}

// RGBA is the color of the piece bodies behind the stickers.
type RGBA struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// WithAlpha returns c with opacity a clamped into [0, 1].
func (c RGBA) WithAlpha(a float64) RGBA {
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	c.A = a
	return c
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

// Base colors offered for skins that allow one.
var BaseColors = map[string]RGBA{
	"BLACK":     {0, 0, 0, 1},
	"GRAY":      {210, 210, 210, 1},
	"WHITE":     {255, 255, 255, 1},
	"CYAN":      {0, 255, 255, 1},
	"CREAM":     {236, 219, 191, 1},
	"SKY_BLUE":  {133, 156, 202, 1},
	"PURPLE":    {164, 122, 206, 1},
	"OLIVE":     {164, 190, 0, 1},
	"RED":       {130, 21, 21, 1},
	"GREEN":     {0, 158, 0, 1},
	"CHOCOLATE": {101, 64, 37, 1},
	"ORANGE":    {255, 165, 0, 1},
	"BLUE":      {0, 0, 255, 1},
	"YELLOW":    {255, 230, 0, 1},
	"PINK":      {255, 93, 166, 1},
}

var (
	// Black is the default base color.
	Black = BaseColors["BLACK"]
	// Transparent is forced by special skins.
	Transparent = RGBA{0, 0, 0, 0}
)

// BaseColorNames returns the base color names sorted alphabetically.
func BaseColorNames() []string {
	names := make([]string, 0, len(BaseColors))
	for name := range BaseColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Speed names a layer transition duration.
type Speed string

const (
	SpeedInstant  Speed = "Instant"
	SpeedFast     Speed = "Fast"
	SpeedMedium   Speed = "Medium"
	SpeedSlow     Speed = "Slow"
	SpeedVerySlow Speed = "Very Slow"
)

// Speeds lists the transition speeds from fastest to slowest.
var Speeds = []Speed{SpeedInstant, SpeedFast, SpeedMedium, SpeedSlow, SpeedVerySlow}

var speedDurations = map[Speed]time.Duration{
	SpeedInstant:  0,
	SpeedFast:     200 * time.Millisecond,
	SpeedMedium:   400 * time.Millisecond,
	SpeedSlow:     600 * time.Millisecond,
	SpeedVerySlow: 800 * time.Millisecond,
}

// ParseSpeed parses a speed name, ignoring case.
func ParseSpeed(s string) (Speed, error) {
	for _, speed := range Speeds {
		if strings.EqualFold(s, string(speed)) {
			return speed, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSpeed, s)
}

// Duration returns how long a layer turn takes at this speed.
func (s Speed) Duration() time.Duration {
	return speedDurations[s]
}

// Easing names the timing function of a layer turn animation.
type Easing string

const (
	EasingNormal   Easing = "NORMAL"
	EasingLinear   Easing = "LINEAR"
	EasingMecanic  Easing = "MECANIC"
	EasingMagnetic Easing = "MAGNETIC"
	EasingBounce   Easing = "BOUNCE"
)

// Easings lists the easing functions in menu order.
var Easings = []Easing{EasingNormal, EasingLinear, EasingMecanic, EasingMagnetic, EasingBounce}

var easingFunctions = map[Easing]string{
	EasingNormal:   "ease",
	EasingLinear:   "linear",
	EasingMecanic:  "ease-out",
	EasingMagnetic: "ease-in",
	EasingBounce:   "cubic-bezier(0.68, -0.2, 0.32,1.6)",
}

// ParseEasing parses an easing name, ignoring case.
func ParseEasing(s string) (Easing, error) {
	e := Easing(strings.ToUpper(s))
	if _, ok := easingFunctions[e]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidEasing, s)
	}
	return e, nil
}

// Timing returns the CSS timing function for the easing.
func (e Easing) Timing() string {
	return easingFunctions[e]
}

// Size names a display scale of the puzzle.
type Size string

const (
	SizeMicro    Size = "Micro"
	SizeMini     Size = "Mini"
	SizeSmall    Size = "Small"
	SizeNormal   Size = "Normal"
	SizeMedium   Size = "Medium"
	SizeBig      Size = "Big"
	SizeHuge     Size = "Huge"
	SizeColossal Size = "Colossal"
)

// Sizes lists the display sizes from smallest to largest.
var Sizes = []Size{SizeMicro, SizeMini, SizeSmall, SizeNormal, SizeMedium, SizeBig, SizeHuge, SizeColossal}

var sizeScales = map[Size]float64{
	SizeMicro:    0.4,
	SizeMini:     0.6,
	SizeSmall:    0.8,
	SizeNormal:   1,
	SizeMedium:   1.2,
	SizeBig:      1.4,
	SizeHuge:     1.6,
	SizeColossal: 1.8,
}

// ParseSize parses a size name, ignoring case.
func ParseSize(s string) (Size, error) {
	for _, size := range Sizes {
		if strings.EqualFold(s, string(size)) {
			return size, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSize, s)
}

// Scale returns the display scale factor.
func (s Size) Scale() float64 {
	return sizeScales[s]
}

// Angle is the camera orientation in degrees.
type Angle struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DefaultAngle is the initial camera orientation.
var DefaultAngle = Angle{X: -20, Y: -30, Z: 0}

// Flipped reports whether the camera looks at the puzzle upside down.
func (a Angle) Flipped() bool {
	return a.Z != 0
}
