package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/0x0FACED/fortune-sweep/pkg/config"
	"github.com/0x0FACED/fortune-sweep/pkg/logger"
	"github.com/0x0FACED/fortune-sweep/pkg/sites"
	"github.com/0x0FACED/fortune-sweep/pkg/voronoi"
)

// rootOpts are the flags every subcommand shares.
type rootOpts struct {
	configPath string
	verbose    bool
	random     int // random sites instead of the configured ones
	grid       int // grid sites instead of the configured ones
	seed       int64
}

func newRootCmd() *cobra.Command {
	var o rootOpts

	root := &cobra.Command{
		Use:          "fortune",
		Short:        "Step through Fortune's sweep for Voronoi diagrams",
		Long:         `fortune builds a Voronoi diagram incrementally with a sweep line and lets you watch it grow in the browser, in the terminal or as a batch run.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log debug records to stderr")
	root.PersistentFlags().IntVar(&o.random, "random", 0, "use N random sites")
	root.PersistentFlags().IntVar(&o.grid, "grid", 0, "use N sites on a grid")
	root.PersistentFlags().Int64Var(&o.seed, "seed", 0, "seed for --random (0 picks one from the clock)")

	root.AddCommand(newServeCmd(&o))
	root.AddCommand(newRunCmd(&o))
	root.AddCommand(newTUICmd(&o))
	return root
}

func (o *rootOpts) load() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.verbose {
		cfg.Log.Level = "debug"
		cfg.Log.Console = true
	}
	return cfg, nil
}

// points picks the sites: generated when --random or --grid is set, the
// configured ones otherwise.
func (o *rootOpts) points(cfg config.Config) ([]voronoi.Point, error) {
	w, h := int(cfg.Render.XMax), int(cfg.Render.YMax)
	switch {
	case o.random > 0 && o.grid > 0:
		return nil, fmt.Errorf("--random and --grid are mutually exclusive")
	case o.random > 0:
		seed := o.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return sites.Random(rand.New(rand.NewSource(seed)), o.random, w, h)
	case o.grid > 0:
		return sites.Grid(o.grid, w, h)
	}
	return cfg.Points(), nil
}

func (o *rootOpts) sweep(cfg config.Config, log *logger.ZapLogger) (*voronoi.Sweep, error) {
	points, err := o.points(cfg)
	if err != nil {
		return nil, err
	}
	return voronoi.New(points, cfg.SweepOptions(log)...)
}

func newLogger(cfg config.Config, console io.Writer) (*logger.ZapLogger, error) {
	if console == nil {
		console = os.Stderr
	}
	return cfg.NewLogger(console)
}

func configSite(p voronoi.Point) config.Site {
	return config.Site{X: p.X, Y: p.Y}
}
