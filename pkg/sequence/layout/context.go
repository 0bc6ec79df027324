// Package layout holds the configuration shared by the coordinate pass: the
// final lifeline order, the spacing constants, the label alignment policy and
// the root node that receives the diagram's bounds.
//
// A [Context] is a plain value. Build one with [Default] and override the
// fields you need:
//
//	lc := layout.Default()
//	lc.Order = order
//	lc.Root = &root
//	lc.LabelAlignment = layout.AlignCenter
package layout

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// ExecutionWidth is the committed width of an execution box.
	ExecutionWidth = 16.0

	// MinExecutionHeight is the floor applied to every execution's height.
	MinExecutionHeight = 20.0

	// StackOffset is the horizontal shift per enclosing execution.
	StackOffset = ExecutionWidth / 2

	// DiagramMargin is the fixed padding added to the diagram height.
	DiagramMargin = 60.0

	// ScaleMargin is added to the diagram height before it is divided by a
	// lifeline's height to obtain the scale factor.
	ScaleMargin = 20.0

	// ReverseScaleMargin is added to the diagram height when mapping a
	// lost/found endpoint back into lifeline-relative space.
	ReverseScaleMargin = 40.0

	// MarkerOffset shifts duration and time-constraint markers downward, and
	// is the vertical origin of lost/found endpoints.
	MarkerOffset = 20.0

	// ExecutionInset is subtracted from a lifeline's height when message
	// positions are rescaled relative to an execution box.
	ExecutionInset = 20.0

	// LabelGap is the vertical distance between a label and its message
	// line.
	LabelGap = 2.0
)

// Default spacing values.
const (
	DefaultMessageSpacing  = 50.0
	DefaultLifelineHeader  = 30.0
	DefaultLifelineYPos    = 10.0
	DefaultLifelineSpacing = 50.0
	DefaultBorderSpacing   = 12.0
	DefaultLabelSpacing    = 5.0
	DefaultLabelMargin     = 10.0
)

// DefaultLabelAlignment is the label alignment used by [Default].
const DefaultLabelAlignment = AlignSourceCenter

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrEmptyOrder is returned when the context has no lifeline order.
	ErrEmptyOrder = errors.New("lifeline order is empty")

	// ErrUnknownOrderEntry is returned when an order entry does not resolve
	// to a lifeline of the graph.
	ErrUnknownOrderEntry = errors.New("lifeline order references unknown lifeline")

	// ErrDuplicateOrderEntry is returned when a lifeline appears more than
	// once in the order.
	ErrDuplicateOrderEntry = errors.New("lifeline order lists a lifeline twice")

	// ErrMissingRoot is returned when the context has no root node.
	ErrMissingRoot = errors.New("root node is missing")

	// ErrInvalidSpacing is returned when a spacing value is negative or not
	// finite.
	ErrInvalidSpacing = errors.New("invalid spacing")
)

// =============================================================================
// Context
// =============================================================================

// Context is the read-only configuration of one coordinate pass.
type Context struct {
	// Order is the final left-to-right lifeline order. It may contain dummy
	// entries and ends at the surrounding-interaction marker, if present.
	Order []sgraph.LifelineID

	MessageSpacing  float64
	LifelineHeader  float64
	LifelineYPos    float64
	LifelineSpacing float64
	BorderSpacing   float64
	LabelSpacing    float64
	LabelMargin     float64

	LabelAlignment Alignment

	// Root receives the diagram's bounds.
	Root *sgraph.Rect
}

// Default returns a context with the default spacing and alignment. Order
// and Root are left unset.
func Default() Context {
	return Context{
		MessageSpacing:  DefaultMessageSpacing,
		LifelineHeader:  DefaultLifelineHeader,
		LifelineYPos:    DefaultLifelineYPos,
		LifelineSpacing: DefaultLifelineSpacing,
		BorderSpacing:   DefaultBorderSpacing,
		LabelSpacing:    DefaultLabelSpacing,
		LabelMargin:     DefaultLabelMargin,
		LabelAlignment:  DefaultLabelAlignment,
	}
}

// IndexOf returns the position of id in the order, or -1.
func (c Context) IndexOf(id sgraph.LifelineID) int {
	return slices.Index(c.Order, id)
}

// Validate checks that the context can drive a pass over g.
func (c Context) Validate(g *sgraph.Graph) error {
	if len(c.Order) == 0 {
		return ErrEmptyOrder
	}
	if c.Root == nil {
		return ErrMissingRoot
	}
	seen := make(map[sgraph.LifelineID]int, len(c.Order))
	for i, id := range c.Order {
		if g.Lifeline(id) == nil {
			return fmt.Errorf("%w: position %d, id %d", ErrUnknownOrderEntry, i, id)
		}
		if j, dup := seen[id]; dup {
			return fmt.Errorf("%w: id %d at positions %d and %d", ErrDuplicateOrderEntry, id, j, i)
		}
		seen[id] = i
	}
	spacings := []struct {
		name string
		v    float64
	}{
		{"message_spacing", c.MessageSpacing},
		{"lifeline_header", c.LifelineHeader},
		{"lifeline_y_pos", c.LifelineYPos},
		{"lifeline_spacing", c.LifelineSpacing},
		{"border_spacing", c.BorderSpacing},
		{"label_spacing", c.LabelSpacing},
		{"label_margin", c.LabelMargin},
	}
	for _, s := range spacings {
		if s.v < 0 || math.IsNaN(s.v) || math.IsInf(s.v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidSpacing, s.name, s.v)
		}
	}
	if !c.LabelAlignment.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownAlignment, int(c.LabelAlignment))
	}
	return nil
}
