// Command fill clicks a canvas offline until it is full and prints the arrangement.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kyiku/shapefill/internal/config"
	"github.com/kyiku/shapefill/internal/geometry"
	"github.com/kyiku/shapefill/internal/model"
	"github.com/kyiku/shapefill/internal/placement"
	"github.com/kyiku/shapefill/internal/selection"
	"github.com/kyiku/shapefill/internal/session"
)

var logger = log.New("fill")

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options are the fill parameters.
type options struct {
	width   float64
	height  float64
	retries int
	set     string
	seed    int64
	clicks  int
	maxFull int
	format  string
	verbose bool
}

// placed is one shape in the printed arrangement.
type placed struct {
	Shape  model.Record  `json:"shape" yaml:"shape"`
	Bounds geometry.Rect `json:"bounds" yaml:"bounds"`
}

// arrangement is the printed result.
type arrangement struct {
	Canvas     geometry.Canvas    `json:"canvas" yaml:"canvas"`
	Dimensions model.Dimensions   `json:"dimensions" yaml:"dimensions"`
	Policy     string             `json:"policy" yaml:"policy"`
	Clicks     int                `json:"clicks" yaml:"clicks"`
	Counts     map[model.Kind]int `json:"counts" yaml:"counts"`
	Shapes     []placed           `json:"shapes" yaml:"shapes"`
}

func newRootCommand(out io.Writer) *cobra.Command {
	defaults := config.Default()
	opts := options{
		width:   defaults.CanvasWidth,
		height:  defaults.CanvasHeight,
		retries: defaults.RetryLimit,
		set:     defaults.ShapeSet,
		clicks:  1000,
		maxFull: 10,
		format:  "json",
	}

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a canvas with non-overlapping shapes and print the result",
		Long: `fill keeps clicking a fresh canvas until the placement engine reports a full
canvas several times in a row, or the click cap is reached, then prints every
placed shape with its bounding box.`,
		Example: `  fill --width 300 --height 300 --seed 7
  fill --set legacy --format yaml --max-full 20`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.SetOutput(cmd.ErrOrStderr())
			if opts.verbose {
				logger.SetLevel(log.DEBUG)
			}
			result, err := fill(opts)
			if err != nil {
				return err
			}
			return write(out, result, opts.format)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.width, "width", opts.width, "canvas width in pixels")
	flags.Float64Var(&opts.height, "height", opts.height, "canvas height in pixels")
	flags.IntVar(&opts.retries, "retries", opts.retries, "placement attempts per click")
	flags.StringVar(&opts.set, "set", opts.set, "shape set: regular or legacy")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed (0 seeds from the clock)")
	flags.IntVar(&opts.clicks, "clicks", opts.clicks, "maximum number of clicks")
	flags.IntVar(&opts.maxFull, "max-full", opts.maxFull, "stop after this many consecutive full-canvas clicks")
	flags.StringVarP(&opts.format, "format", "f", opts.format, "output format: json or yaml")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every click")

	cmd.AddCommand(newVerifyCommand(out))
	return cmd
}

func fill(opts options) (*arrangement, error) {
	cfg := config.Default()
	cfg.CanvasWidth = opts.width
	cfg.CanvasHeight = opts.height
	cfg.RetryLimit = opts.retries
	cfg.ShapeSet = opts.set
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.maxFull <= 0 {
		return nil, fmt.Errorf("--max-full must be positive")
	}

	policy, err := selection.ForSet(cfg.ShapeSet)
	if err != nil {
		return nil, err
	}

	engine := placement.NewEngine(cfg.Canvas(), cfg.Dimensions(), placement.NewRandSampler(opts.seed))
	engine.SetRetryLimit(cfg.RetryLimit)
	sess := session.NewSession("fill", engine, policy)

	full := 0
	for i := 0; i < opts.clicks && full < opts.maxFull; i++ {
		result, err := sess.Click()
		if err != nil {
			return nil, err
		}

		switch result.Outcome {
		case session.OutcomePlaced:
			full = 0
			logger.Debugf("click %d: %s at (%.1f, %.1f) after %d attempts",
				result.Click, result.Kind, result.Entry.Bounds.X, result.Entry.Bounds.Y, result.Attempts)
		case session.OutcomeCanvasFull:
			full++
			logger.Debugf("click %d: no room for %s", result.Click, result.Kind)
		}
	}

	snap := sess.Snapshot()
	logger.Infof("placed %d shapes in %d clicks", len(snap.Entries), snap.Clicks)

	shapes := make([]placed, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		shapes = append(shapes, placed{Shape: model.ToRecord(e.Shape), Bounds: e.Bounds})
	}

	return &arrangement{
		Canvas:     snap.Canvas,
		Dimensions: sess.Dimensions(),
		Policy:     snap.Policy,
		Clicks:     snap.Clicks,
		Counts:     snap.Counts,
		Shapes:     shapes,
	}, nil
}

func write(out io.Writer, a *arrangement, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(a)
	}
	return fmt.Errorf("unknown format %q", format)
}
