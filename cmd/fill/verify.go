package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kyiku/shapefill/internal/geometry"
)

// boundsTolerance absorbs float formatting in the printed arrangement.
const boundsTolerance = 1e-6

func newVerifyCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE",
		Short: "Check a printed arrangement for off-canvas or overlapping shapes",
		Long: `verify reads an arrangement printed by fill (JSON or YAML), rebuilds every
shape from its record, recomputes its bounding box and checks that each box
matches, stays on the canvas and overlaps no other box.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read arrangement: %w", err)
			}
			var a arrangement
			// JSON is valid YAML, so one decoder covers both formats.
			if err := yaml.Unmarshal(data, &a); err != nil {
				return fmt.Errorf("parse arrangement: %w", err)
			}
			if err := verify(&a); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "ok: %d shapes on %.0fx%.0f\n", len(a.Shapes), a.Canvas.Width, a.Canvas.Height)
			return err
		},
	}
}

func verify(a *arrangement) error {
	rects := make([]geometry.Rect, 0, len(a.Shapes))
	for i, p := range a.Shapes {
		shape, err := p.Shape.Shape()
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}

		bounds := shape.Bounds(a.Dimensions)
		if !rectsClose(bounds, p.Bounds) {
			return fmt.Errorf("shape %d: recorded bounds %+v, computed %+v", i, p.Bounds, bounds)
		}
		if geometry.IsOffCanvas(bounds, a.Canvas) {
			return fmt.Errorf("shape %d: off canvas", i)
		}
		for j, other := range rects {
			if geometry.Intersects(bounds, other) {
				return fmt.Errorf("shape %d overlaps shape %d", i, j)
			}
		}
		rects = append(rects, bounds)
	}
	return nil
}

func rectsClose(a, b geometry.Rect) bool {
	return math.Abs(a.X-b.X) <= boundsTolerance &&
		math.Abs(a.Y-b.Y) <= boundsTolerance &&
		math.Abs(a.Width-b.Width) <= boundsTolerance &&
		math.Abs(a.Height-b.Height) <= boundsTolerance
}
