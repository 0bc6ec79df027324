package graph

import (
	"github.com/google/uuid"

	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// Index maps the wire IDs of a diagram to the handles of the graph built
// from it.
type Index struct {
	Order      []sgraph.LifelineID
	Lifelines  map[string]sgraph.LifelineID
	Messages   map[string]sgraph.MessageID
	Executions map[string]sgraph.ExecutionID
	Comments   map[string]sgraph.CommentID
}

// =============================================================================
// Diagram → sgraph
// =============================================================================

// ToSGraph builds the internal model of d. Missing diagram, execution and
// comment IDs are filled in with fresh UUIDs, so d is modified. Lifelines
// and messages must carry unique IDs since other elements reference them.
//
// All errors carry code INVALID_INPUT.
func ToSGraph(d *Diagram) (*sgraph.Graph, *Index, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	g := sgraph.New()
	g.Size = sgraph.Vec{X: d.Size.X, Y: d.Size.Y}
	idx := &Index{
		Lifelines:  make(map[string]sgraph.LifelineID, len(d.Lifelines)),
		Messages:   make(map[string]sgraph.MessageID, len(d.Messages)),
		Executions: make(map[string]sgraph.ExecutionID, len(d.Executions)),
		Comments:   make(map[string]sgraph.CommentID, len(d.Comments)),
	}

	for _, l := range d.Lifelines {
		if err := errors.ValidateElementID("lifeline", l.ID); err != nil {
			return nil, nil, err
		}
		if _, dup := idx.Lifelines[l.ID]; dup {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "duplicate lifeline id %q", l.ID)
		}
		if err := errors.ValidateText("lifeline name", l.Name); err != nil {
			return nil, nil, err
		}
		kind, err := sgraph.ParseLifelineKind(l.Kind)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "lifeline %q", l.ID)
		}
		ll := sgraph.Lifeline{
			Name:        l.DisplayName(),
			Kind:        kind,
			Slot:        l.Slot,
			Position:    vec(l.Position),
			Size:        vec(l.Size),
			Destruction: rectPtr(l.Destruction),
		}
		if l.Bounds != nil {
			ll.Bounds.Width = l.Bounds.Width
		}
		idx.Lifelines[l.ID] = g.AddLifeline(ll)
	}

	for _, id := range d.Order {
		h, ok := idx.Lifelines[id]
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "order references unknown lifeline %q", id)
		}
		idx.Order = append(idx.Order, h)
	}

	for _, m := range d.Messages {
		if err := errors.ValidateElementID("message", m.ID); err != nil {
			return nil, nil, err
		}
		if _, dup := idx.Messages[m.ID]; dup {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "duplicate message id %q", m.ID)
		}
		kind, err := sgraph.ParseMessageKind(m.Kind)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "message %q", m.ID)
		}
		src, ok := idx.Lifelines[m.Source]
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "message %q: unknown source %q", m.ID, m.Source)
		}
		dst, ok := idx.Lifelines[m.Target]
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "message %q: unknown target %q", m.ID, m.Target)
		}
		msg := sgraph.Message{
			Name:    m.Name,
			Kind:    kind,
			Source:  src,
			Target:  dst,
			SourceY: m.SourceY,
			TargetY: m.TargetY,
		}
		for _, lbl := range m.Labels {
			if err := errors.ValidateText("label", lbl.Text); err != nil {
				return nil, nil, err
			}
			msg.Edge.Labels = append(msg.Edge.Labels, sgraph.Label{
				Text: lbl.Text,
				Size: sgraph.Vec{X: lbl.Width, Y: lbl.Height},
			})
		}
		if m.Edge != nil {
			for _, b := range m.Edge.Bends {
				msg.Edge.Bends = append(msg.Edge.Bends, sgraph.Point{X: b.X, Y: b.Y})
			}
		}
		h, err := g.AddMessage(msg)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "message %q", m.ID)
		}
		idx.Messages[m.ID] = h
	}

	for i := range d.Executions {
		x := &d.Executions[i]
		if x.ID == "" {
			x.ID = uuid.NewString()
		} else if err := errors.ValidateElementID("execution", x.ID); err != nil {
			return nil, nil, err
		}
		if _, dup := idx.Executions[x.ID]; dup {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "duplicate execution id %q", x.ID)
		}
		kind, err := sgraph.ParseExecutionKind(x.Kind)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "execution %q", x.ID)
		}
		owner, ok := idx.Lifelines[x.Lifeline]
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "execution %q: unknown lifeline %q", x.ID, x.Lifeline)
		}
		ex := sgraph.Execution{
			Kind:     kind,
			Lifeline: owner,
			Position: vec(x.Position),
			Size:     vec(x.Size),
		}
		if x.Origin != nil {
			ex.Origin = rect(*x.Origin)
		}
		for _, mid := range x.Messages {
			h, ok := idx.Messages[mid]
			if !ok {
				return nil, nil, errors.New(errors.ErrCodeInvalidInput, "execution %q: unknown message %q", x.ID, mid)
			}
			ex.Messages = append(ex.Messages, h)
		}
		h, err := g.AddExecution(ex)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "execution %q", x.ID)
		}
		idx.Executions[x.ID] = h
	}

	for i := range d.Comments {
		c := &d.Comments[i]
		if c.ID == "" {
			c.ID = uuid.NewString()
		} else if err := errors.ValidateElementID("comment", c.ID); err != nil {
			return nil, nil, err
		}
		if _, dup := idx.Comments[c.ID]; dup {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "duplicate comment id %q", c.ID)
		}
		if c.Lifeline != "" && c.Message != "" {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "comment %q is attached to both a lifeline and a message", c.ID)
		}
		if err := errors.ValidateText("comment", c.Text); err != nil {
			return nil, nil, err
		}
		h := g.AddComment(sgraph.Comment{
			Text:            c.Text,
			AttachedElement: c.AttachedElement,
			Position:        vec(c.Position),
			Size:            vec(c.Size),
		})
		switch {
		case c.Lifeline != "":
			ll, ok := idx.Lifelines[c.Lifeline]
			if !ok {
				return nil, nil, errors.New(errors.ErrCodeInvalidInput, "comment %q: unknown lifeline %q", c.ID, c.Lifeline)
			}
			if err := g.AttachCommentToLifeline(h, ll); err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "comment %q", c.ID)
			}
		case c.Message != "":
			m, ok := idx.Messages[c.Message]
			if !ok {
				return nil, nil, errors.New(errors.ErrCodeInvalidInput, "comment %q: unknown message %q", c.ID, c.Message)
			}
			if err := g.AttachCommentToMessage(h, m); err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "comment %q", c.ID)
			}
		}
		idx.Comments[c.ID] = h
	}

	return g, idx, nil
}

// =============================================================================
// sgraph → Diagram
// =============================================================================

// FromSGraph copies the geometry computed on g into the output fields of d.
// Position and Size stay as they were read, so laying out the result again
// gives the same geometry. idx must be the index returned by the [ToSGraph]
// call that built g from d. root is the diagram root's bounds.
func FromSGraph(d *Diagram, g *sgraph.Graph, idx *Index, root sgraph.Rect) {
	r := fromRect(root)
	d.Root = &r

	for i := range d.Lifelines {
		l := &d.Lifelines[i]
		ll := g.Lifeline(idx.Lifelines[l.ID])
		if ll == nil || ll.IsDummy() || ll.Kind == sgraph.LifelineInteraction {
			continue
		}
		b := fromRect(ll.Bounds)
		l.Bounds = &b
		if ll.Destruction != nil {
			dr := fromRect(*ll.Destruction)
			l.Destruction = &dr
		}
	}

	for i := range d.Messages {
		m := &d.Messages[i]
		msg := g.Message(idx.Messages[m.ID])
		if msg == nil {
			continue
		}
		e := &Edge{
			Start: fromPoint(msg.Edge.Start),
			End:   fromPoint(msg.Edge.End),
		}
		for _, b := range msg.Edge.Bends {
			e.Bends = append(e.Bends, fromPoint(b))
		}
		m.Edge = e
		for j := range m.Labels {
			if j < len(msg.Edge.Labels) {
				p := msg.Edge.Labels[j].Position
				m.Labels[j].X, m.Labels[j].Y = p.X, p.Y
			}
		}
	}

	for i := range d.Executions {
		x := &d.Executions[i]
		ex := g.Execution(idx.Executions[x.ID])
		if ex == nil {
			continue
		}
		b := fromRect(ex.Bounds)
		x.Bounds = &b
	}

	for i := range d.Comments {
		c := &d.Comments[i]
		cm := g.Comment(idx.Comments[c.ID])
		if cm == nil {
			continue
		}
		b := fromRect(cm.Bounds)
		c.Bounds = &b
		c.Connector = nil
		if cm.Connector != nil {
			c.Connector = &Connector{Start: fromPoint(cm.Connector.Start), End: fromPoint(cm.Connector.End)}
		}
	}
}

// =============================================================================
// Internal Helpers
// =============================================================================

func vec(v Vec) sgraph.Vec { return sgraph.Vec{X: v.X, Y: v.Y} }

func rect(r Rect) sgraph.Rect {
	return sgraph.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

func rectPtr(r *Rect) *sgraph.Rect {
	if r == nil {
		return nil
	}
	out := rect(*r)
	return &out
}

func fromPoint(p sgraph.Point) Vec { return Vec{X: p.X, Y: p.Y} }

func fromRect(r sgraph.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
