package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/0x0FACED/fortune-sweep/pkg/logger"
	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

// Config is everything the demo needs to build and show a sweep.
type Config struct {
	Sweep  Sweep  `toml:"sweep"`
	Server Server `toml:"server"`
	Render Render `toml:"render"`
	Log    Log    `toml:"log"`
	Sites  []Site `toml:"sites"`
}

type Sweep struct {
	// Step is how far one keypress or request moves the sweep line.
	Step       float64 `toml:"step"`
	SiteOffset float64 `toml:"site_offset"`
}

type Server struct {
	Addr string `toml:"addr"`

	// SessionTTL is how long a browser session may stay idle before its
	// sweep is dropped, e.g. "30m".
	SessionTTL time.Duration `toml:"session_ttl"`
}

type Render struct {
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	XMax          float64 `toml:"x_max"`
	YMax          float64 `toml:"y_max"`
	ShowCircles   bool    `toml:"show_circles"`
	ShowParabolas bool    `toml:"show_parabolas"`
}

type Log struct {
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
}

type Site struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// Default is the interactive demo: four sites, a step of 2 and both overlay
// layers on.
func Default() Config {
	return Config{
		Sweep: Sweep{
			Step:       2,
			SiteOffset: voronoi.DefaultSiteOffset,
		},
		Server: Server{
			Addr:       ":8080",
			SessionTTL: 30 * time.Minute,
		},
		Render: Render{
			Width:         1600,
			Height:        1000,
			XMax:          1600,
			YMax:          1000,
			ShowCircles:   true,
			ShowParabolas: true,
		},
		Log: Log{Level: "info"},
		Sites: []Site{
			{X: 450, Y: 200},
			{X: 1100, Y: 300},
			{X: 900, Y: 600},
			{X: 1400, Y: 800},
		},
	}
}

// Load reads a TOML file over the defaults. Keys the file leaves out keep
// their default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs error
	if !(c.Sweep.Step > 0) {
		errs = multierr.Append(errs, fmt.Errorf("sweep.step must be positive, got %g", c.Sweep.Step))
	}
	if !(c.Sweep.SiteOffset > 0) {
		errs = multierr.Append(errs, fmt.Errorf("sweep.site_offset must be positive, got %g", c.Sweep.SiteOffset))
	}
	if c.Server.Addr == "" {
		errs = multierr.Append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.SessionTTL <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("server.session_ttl must be positive, got %s", c.Server.SessionTTL))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("render size %dx%d is not positive", c.Render.Width, c.Render.Height))
	}
	if !(c.Render.XMax > 0) || !(c.Render.YMax > 0) {
		errs = multierr.Append(errs, fmt.Errorf("render extent %gx%g is not positive", c.Render.XMax, c.Render.YMax))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("log.level: %w", err))
	}

	seen := make(map[float64]int, len(c.Sites))
	for i, s := range c.Sites {
		if s.Y < 0 {
			errs = multierr.Append(errs, fmt.Errorf("sites[%d]: y=%g is above the sweep start", i, s.Y))
		}
		if j, dup := seen[s.Y]; dup {
			errs = multierr.Append(errs, fmt.Errorf("sites[%d]: y=%g repeats sites[%d]", i, s.Y, j))
			continue
		}
		seen[s.Y] = i
	}
	return errs
}

func (c Config) Points() []voronoi.Point {
	out := make([]voronoi.Point, len(c.Sites))
	for i, s := range c.Sites {
		out[i] = voronoi.Point{X: s.X, Y: s.Y}
	}
	return out
}

// SweepOptions turns the sweep section into voronoi options.
func (c Config) SweepOptions(log *logger.ZapLogger) []voronoi.Option {
	return []voronoi.Option{
		voronoi.WithSiteOffset(c.Sweep.SiteOffset),
		voronoi.WithLogger(log),
	}
}

// NewLogger builds the logger described by the log section.
func (c Config) NewLogger(console io.Writer) (*logger.ZapLogger, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	o := logger.Options{Level: level}
	if c.Log.Console {
		o.Console = console
	}
	return logger.NewWithOptions(o), nil
}
