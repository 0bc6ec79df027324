package pipeline

import (
	"context"

	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/sequence/coords"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout runs the coordinate pass on a copy of d and returns the laid-out
// copy. d itself is not modified.
//
// Errors carry a code from pkg/errors: INVALID_INPUT for malformed wire
// data, INVALID_GRAPH or INVALID_ALIGNMENT for precondition failures of the
// pass, and TIMEOUT or CANCELED when ctx is done before the pass starts.
func Layout(ctx context.Context, d graph.Diagram, opts Options) (graph.Diagram, coords.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Diagram{}, coords.Result{}, err
	}
	if err := ctxErr(ctx); err != nil {
		return graph.Diagram{}, coords.Result{}, err
	}

	work := d.Clone()
	lc, err := opts.Context(&work)
	if err != nil {
		return graph.Diagram{}, coords.Result{}, err
	}

	g, idx, err := graph.ToSGraph(&work)
	if err != nil {
		return graph.Diagram{}, coords.Result{}, err
	}

	var root sgraph.Rect
	lc.Order = idx.Order
	lc.Root = &root

	res, err := coords.Apply(g, lc, coords.WithLogger(opts.Logger))
	if err != nil {
		return graph.Diagram{}, coords.Result{}, err
	}
	graph.FromSGraph(&work, g, idx, root)
	work.Options = effectiveOptions(lc)
	return work, res, nil
}

// effectiveOptions records the settings a diagram was laid out with, so
// renderers and later runs see the same values.
func effectiveOptions(lc layout.Context) *graph.Options {
	f := func(v float64) *float64 { return &v }
	return &graph.Options{
		MessageSpacing:  f(lc.MessageSpacing),
		LifelineHeader:  f(lc.LifelineHeader),
		LifelineYPos:    f(lc.LifelineYPos),
		LifelineSpacing: f(lc.LifelineSpacing),
		BorderSpacing:   f(lc.BorderSpacing),
		LabelSpacing:    f(lc.LabelSpacing),
		LabelMargin:     f(lc.LabelMargin),
		LabelAlignment:  lc.LabelAlignment.String(),
	}
}

func ctxErr(ctx context.Context) error {
	return errors.FromContext(ctx.Err(), "layout interrupted")
}
