// Package config holds the runtime settings of the coaster.
//
// Values come from defaults, then from dotenv files, then from the process
// environment, each layer overriding the previous one. Keys are prefixed with
// COASTER_. A Config also serves as the schuko configuration for tracing.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"roller-coaster/internal/physics"
	"roller-coaster/internal/track"
)

// Prefix is prepended to every environment key.
const Prefix = "COASTER_"

// Environment keys, without Prefix.
const (
	KeySamples      = "SAMPLES"
	KeyVelocity     = "VELOCITY"
	KeyJumpStep     = "JUMP_STEP"
	KeyJumpHeight   = "JUMP_HEIGHT"
	KeyFallStep     = "FALL_STEP"
	KeyFloor        = "FLOOR"
	KeyWorldScale   = "WORLD_SCALE"
	KeyWindowWidth  = "WINDOW_WIDTH"
	KeyWindowHeight = "WINDOW_HEIGHT"
	KeyTPS          = "TPS"
	KeyTrack        = "TRACK"
	KeyAutopilot    = "AUTOPILOT"
	KeyTraceLevel   = "TRACE_LEVEL"
	KeyTracing      = "TRACING"
	KeyTraceDest    = "TRACE_DEST"
)

// ErrInvalidConfig flags a setting that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete set of runtime settings.
type Config struct {
	Samples    int
	Velocity   float64
	JumpStep   float64
	JumpHeight float64
	FallStep   float64
	Floor      float64
	WorldScale float64

	WindowWidth  int
	WindowHeight int
	TPS          int // frame updates per second

	Track     string // waypoint file
	Autopilot bool

	TraceLevel   string // Debug, Info or Error
	TraceAdapter string // registered schuko adapter key
	TraceDest    string // empty for stderr
}

var _ schuko.Configuration = (*Config)(nil)

// Default returns the settings of the reference ride.
func Default() *Config {
	c := &Config{}
	c.InitDefaults()
	return c
}

// InitDefaults resets every setting to its default.
func (c *Config) InitDefaults() {
	p := physics.DefaultParams()
	*c = Config{
		Samples:      p.Samples,
		Velocity:     p.Velocity,
		JumpStep:     p.JumpStep,
		JumpHeight:   p.JumpHeight,
		FallStep:     p.FallStep,
		Floor:        p.Floor,
		WorldScale:   p.WorldScale,
		WindowWidth:  600,
		WindowHeight: 600,
		TPS:          60,
		Track:        "assets/track.csv",
		TraceLevel:   "Info",
		TraceAdapter: "go",
	}
}

// Load builds a Config from the defaults, the given dotenv files and the
// process environment. Missing dotenv files are skipped.
func Load(envFiles ...string) (*Config, error) {
	vars := make(map[string]string)
	for _, path := range envFiles {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		for k, v := range values {
			vars[k] = v
		}
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, Prefix) {
			vars[k] = v
		}
	}
	c := Default()
	if err := c.apply(vars); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) apply(vars map[string]string) error {
	ints := map[string]*int{
		KeySamples:      &c.Samples,
		KeyWindowWidth:  &c.WindowWidth,
		KeyWindowHeight: &c.WindowHeight,
		KeyTPS:          &c.TPS,
	}
	floats := map[string]*float64{
		KeyVelocity:   &c.Velocity,
		KeyJumpStep:   &c.JumpStep,
		KeyJumpHeight: &c.JumpHeight,
		KeyFallStep:   &c.FallStep,
		KeyFloor:      &c.Floor,
		KeyWorldScale: &c.WorldScale,
	}
	strs := map[string]*string{
		KeyTrack:      &c.Track,
		KeyTraceLevel: &c.TraceLevel,
		KeyTracing:    &c.TraceAdapter,
		KeyTraceDest:  &c.TraceDest,
	}
	for key, raw := range vars {
		name := strings.TrimPrefix(key, Prefix)
		if name == key {
			continue
		}
		raw = strings.TrimSpace(raw)
		var err error
		switch {
		case ints[name] != nil:
			*ints[name], err = strconv.Atoi(raw)
		case floats[name] != nil:
			*floats[name], err = strconv.ParseFloat(raw, 64)
		case strs[name] != nil:
			*strs[name] = raw
		case name == KeyAutopilot:
			c.Autopilot, err = strconv.ParseBool(raw)
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, raw)
		}
	}
	return nil
}

// Validate checks that the settings describe a playable ride.
func (c *Config) Validate() error {
	switch {
	case c.Samples < 2:
		return fmt.Errorf("%w: samples must be at least 2, got %d", ErrInvalidConfig, c.Samples)
	case !finite(c.Velocity, c.JumpStep, c.JumpHeight, c.FallStep, c.Floor, c.WorldScale):
		return fmt.Errorf("%w: ride constants must be finite numbers", ErrInvalidConfig)
	case c.Velocity < 0:
		return fmt.Errorf("%w: negative velocity %g", ErrInvalidConfig, c.Velocity)
	case c.JumpStep <= 0 || c.FallStep <= 0:
		return fmt.Errorf("%w: jump and fall steps must be positive", ErrInvalidConfig)
	case c.WorldScale <= 0:
		return fmt.Errorf("%w: world scale must be positive", ErrInvalidConfig)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalidConfig, c.WindowWidth, c.WindowHeight)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalidConfig, c.TPS)
	}
	return nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Params returns the ride constants of this configuration.
func (c *Config) Params() physics.Params {
	return physics.Params{
		Samples:    c.Samples,
		Velocity:   c.Velocity,
		JumpStep:   c.JumpStep,
		JumpHeight: c.JumpHeight,
		FallStep:   c.FallStep,
		Floor:      c.Floor,
		WorldScale: c.WorldScale,
	}
}

// Rail returns the rail geometry for a built track under this configuration.
func (c *Config) Rail(d *track.Dense) *track.Rail {
	return track.NewRail(d, c.WorldScale)
}

// SetupTracing installs the schuko root tracer configured from c. Package
// tracers selected afterwards pick up the configured level and destination.
func (c *Config) SetupTracing() error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(c, "tracelevel", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// --- schuko.Configuration --------------------------------------------------

// IsSet is true for every key GetString knows.
func (c *Config) IsSet(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// GetString returns the setting for key. Keys are lower-case, dotted
// variants of the environment names, e.g. "jump.step". Any key below
// "tracelevel" yields the global trace level.
func (c *Config) GetString(key string) string {
	v, _ := c.lookup(key)
	return v
}

// GetInt returns the setting for key as an integer, 0 if not numeric.
func (c *Config) GetInt(key string) int {
	v, _ := c.lookup(key)
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// GetBool returns the setting for key as a boolean.
func (c *Config) GetBool(key string) bool {
	v, _ := c.lookup(key)
	b, _ := strconv.ParseBool(v)
	return b
}

// IsInteractive is always false.
func (c *Config) IsInteractive() bool {
	return false
}

func (c *Config) lookup(key string) (string, bool) {
	if strings.HasPrefix(key, "tracelevel") {
		return c.TraceLevel, true
	}
	switch key {
	case "tracing", "tracing.adapter":
		return c.TraceAdapter, true
	case "tracing.destination":
		return c.TraceDest, c.TraceDest != ""
	case "track":
		return c.Track, true
	case "autopilot":
		return strconv.FormatBool(c.Autopilot), true
	case "samples":
		return strconv.Itoa(c.Samples), true
	case "tps":
		return strconv.Itoa(c.TPS), true
	case "window.width":
		return strconv.Itoa(c.WindowWidth), true
	case "window.height":
		return strconv.Itoa(c.WindowHeight), true
	}
	floats := map[string]float64{
		"velocity":    c.Velocity,
		"jump.step":   c.JumpStep,
		"jump.height": c.JumpHeight,
		"fall.step":   c.FallStep,
		"floor":       c.Floor,
		"world.scale": c.WorldScale,
	}
	if f, ok := floats[key]; ok {
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}
	return "", false
}
