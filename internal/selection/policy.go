// Package selection decides which shape kind a click places.
package selection

import (
	"fmt"

	"github.com/kyiku/shapefill/internal/model"
)

// Shape set names
const (
	SetLegacy  = "legacy"
	SetRegular = "regular"
)

// Policy maps a zero-based click index to the kind it places.
// Returns false when the click places nothing.
type Policy interface {
	Select(click int) (model.Kind, bool)
	Name() string
}

// Cycle selects kinds by click index modulo Length.
// Residues without an entry place nothing.
type Cycle struct {
	Length   int
	Residues map[int]model.Kind
}

// NewRegularCycle returns the square/circle/triangle cycle: residues 0, 5
// and 10 of 15. Two of every three slots place nothing.
func NewRegularCycle() *Cycle {
	return &Cycle{
		Length: 15,
		Residues: map[int]model.Kind{
			0:  model.KindSquare,
			5:  model.KindCircle,
			10: model.KindTriangle,
		},
	}
}

// Select returns the kind for the click index.
func (c *Cycle) Select(click int) (model.Kind, bool) {
	if c.Length <= 0 || click < 0 {
		return "", false
	}
	kind, ok := c.Residues[click%c.Length]
	return kind, ok
}

// Name returns the policy name.
func (c *Cycle) Name() string {
	return SetRegular
}

// Alternating places a rectangle on even clicks and a semicircle on odd clicks.
type Alternating struct{}

// NewAlternating returns the rectangle/semicircle policy.
func NewAlternating() *Alternating {
	return &Alternating{}
}

// Select returns the kind for the click index.
func (a *Alternating) Select(click int) (model.Kind, bool) {
	if click < 0 {
		return "", false
	}
	if click%2 == 0 {
		return model.KindRectangle, true
	}
	return model.KindSemicircle, true
}

// Name returns the policy name.
func (a *Alternating) Name() string {
	return SetLegacy
}

// ForSet returns the policy for a shape set name.
func ForSet(name string) (Policy, error) {
	switch name {
	case SetRegular:
		return NewRegularCycle(), nil
	case SetLegacy:
		return NewAlternating(), nil
	}
	return nil, fmt.Errorf("unknown shape set %q", name)
}
