package coords

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	lferrors "github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// Option configures a call to [Apply].
type Option func(*engine)

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Result summarizes a coordinate pass.
type Result struct {
	Lifelines     int     // lifelines that received geometry
	Messages      int     // messages with at least one endpoint assigned
	Executions    int     // executions committed
	Comments      int     // comments placed
	DiagramHeight float64 // height written to the root node
}

type engine struct {
	g      *sgraph.Graph
	lc     layout.Context
	logger *log.Logger

	diagramHeight float64

	// touched records executions that already absorbed a message in this
	// pass. Only the first touch may seed an empty span.
	touched  map[sgraph.ExecutionID]bool
	messages map[sgraph.MessageID]bool
	res      Result
}

// Apply assigns final coordinates to every lifeline in lc.Order, the
// messages and executions attached to them, all comments of g, and the root
// node lc.Root. The graph is modified in place.
//
// The graph and the context are validated first. On a validation failure
// Apply returns an error with code INVALID_GRAPH (or INVALID_ALIGNMENT for
// an unknown label alignment) and g is left untouched.
func Apply(g *sgraph.Graph, lc layout.Context, opts ...Option) (Result, error) {
	if g == nil {
		return Result{}, lferrors.New(lferrors.ErrCodeInvalidGraph, "sequence graph is nil")
	}
	if err := g.Validate(); err != nil {
		return Result{}, lferrors.Wrap(lferrors.ErrCodeInvalidGraph, err, "invalid sequence graph")
	}
	if err := lc.Validate(g); err != nil {
		if errors.Is(err, layout.ErrUnknownAlignment) {
			return Result{}, lferrors.Wrap(lferrors.ErrCodeInvalidAlignment, err, "invalid layout context")
		}
		return Result{}, lferrors.Wrap(lferrors.ErrCodeInvalidGraph, err, "invalid layout context")
	}

	e := &engine{
		g:        g,
		lc:       lc,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		touched:  make(map[sgraph.ExecutionID]bool),
		messages: make(map[sgraph.MessageID]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e.run(), nil
}

func (e *engine) run() Result {
	start := time.Now()
	lc := e.lc

	e.diagramHeight = e.g.Size.Y + lc.MessageSpacing + lc.LifelineHeader + lc.LifelineYPos + layout.DiagramMargin
	e.res.DiagramHeight = e.diagramHeight

walk:
	for _, id := range lc.Order {
		ll := e.g.Lifeline(id)
		switch ll.Kind {
		case sgraph.LifelineDummy:
			continue
		case sgraph.LifelineInteraction:
			break walk
		case sgraph.LifelineRegular:
			e.lifeline(id, ll)
		}
	}

	e.res.Comments = PlaceComments(e.g)

	root := lc.Root
	root.Width = e.g.Size.X
	root.Height = e.diagramHeight
	root.X = lc.BorderSpacing
	root.Y = lc.BorderSpacing

	e.res.Messages = len(e.messages)
	e.logger.Debug("coordinates assigned",
		"lifelines", e.res.Lifelines,
		"messages", e.res.Messages,
		"executions", e.res.Executions,
		"comments", e.res.Comments,
		"height", e.diagramHeight,
		"duration", time.Since(start))
	return e.res
}

// lifeline handles one regular lifeline: message endpoints and labels, then
// executions, then the lifeline's own bounds and destruction marker.
func (e *engine) lifeline(id sgraph.LifelineID, ll *sgraph.Lifeline) {
	factor := e.scaleFactor(ll)
	e.resize(ll)

	center := ll.CenterX()
	for _, mid := range ll.Outgoing {
		e.outgoing(id, ll, mid, factor, center)
	}
	for _, mid := range ll.Incoming {
		e.incoming(ll, mid, factor, center)
	}

	e.executions(id, ll)

	ll.Bounds.X = ll.Position.X
	ll.Bounds.Y = ll.Position.Y
	ll.Bounds.Height = ll.Size.Y
	if ll.Bounds.Width == 0 {
		ll.Bounds.Width = ll.Size.X
	}
	if d := ll.Destruction; d != nil {
		d.X = ll.Bounds.Width/2 - d.Width/2
		d.Y = ll.Bounds.Height - d.Height
	}
	e.res.Lifelines++
}

// scaleFactor converts raw message Y values into the editor's
// lifeline-relative convention. A zero-height lifeline maps Y unchanged.
func (e *engine) scaleFactor(ll *sgraph.Lifeline) float64 {
	if ll.Size.Y == 0 {
		e.logger.Warn("lifeline has zero height, coordinates left unscaled", "lifeline", ll.Name)
		return 1
	}
	return (e.diagramHeight + layout.ScaleMargin) / ll.Size.Y
}

// reverseFactor maps a dangling lost/found endpoint back from diagram space
// into the lifeline's own space.
func (e *engine) reverseFactor(ll *sgraph.Lifeline) float64 {
	return ll.Size.Y / (e.diagramHeight + layout.ReverseScaleMargin)
}

// resize applies create and delete messages to the lifeline's vertical
// extent. A created lifeline starts at its create message; a deleted one
// ends at its delete message.
func (e *engine) resize(ll *sgraph.Lifeline) {
	lc := e.lc
	for _, mid := range ll.Incoming {
		m := e.g.Message(mid)
		switch m.Kind {
		case sgraph.MessageCreate:
			ll.Position.Y = m.TargetY + lc.LifelineHeader/2
			ll.Size.Y += lc.LifelineYPos - m.TargetY - lc.LifelineHeader/2
		case sgraph.MessageDelete:
			ll.Size.Y -= e.g.Size.Y + lc.MessageSpacing - m.TargetY
		}
	}
}
