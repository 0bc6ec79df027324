package sgraph

import (
	"fmt"
	"math"
)

// Validate checks the invariants the coordinate pass relies on. It returns
// the first violation found, wrapping one of the package's sentinel errors
// with the offending element.
func (g *Graph) Validate() error {
	if badExtent(g.Size.X) || badExtent(g.Size.Y) {
		return fmt.Errorf("graph: %w: size %v x %v", ErrInvalidSize, g.Size.X, g.Size.Y)
	}
	for i := range g.lifelines {
		l := &g.lifelines[i]
		if badExtent(l.Size.Y) {
			return fmt.Errorf("lifeline %d (%s): %w: height %v", i, l.Name, ErrInvalidSize, l.Size.Y)
		}
		for _, m := range l.Outgoing {
			msg, ok := g.message(m)
			if !ok {
				return fmt.Errorf("lifeline %d (%s) outgoing %d: %w", i, l.Name, m, ErrUnknownMessage)
			}
			if msg.Source != LifelineID(i) {
				return fmt.Errorf("lifeline %d (%s) outgoing %d: %w: source is %d", i, l.Name, m, ErrUnknownLifeline, msg.Source)
			}
		}
		for _, m := range l.Incoming {
			msg, ok := g.message(m)
			if !ok {
				return fmt.Errorf("lifeline %d (%s) incoming %d: %w", i, l.Name, m, ErrUnknownMessage)
			}
			if msg.Target != LifelineID(i) {
				return fmt.Errorf("lifeline %d (%s) incoming %d: %w: target is %d", i, l.Name, m, ErrUnknownLifeline, msg.Target)
			}
		}
		for _, e := range l.Executions {
			ex, ok := g.execution(e)
			if !ok {
				return fmt.Errorf("lifeline %d (%s) execution %d: %w", i, l.Name, e, ErrUnknownExecution)
			}
			if ex.Lifeline != LifelineID(i) {
				return fmt.Errorf("lifeline %d (%s) execution %d: %w: owner is %d", i, l.Name, e, ErrUnknownLifeline, ex.Lifeline)
			}
		}
		for _, c := range l.Comments {
			if _, ok := g.comment(c); !ok {
				return fmt.Errorf("lifeline %d (%s) comment %d: %w", i, l.Name, c, ErrUnknownComment)
			}
		}
	}

	for i := range g.messages {
		m := &g.messages[i]
		if _, ok := g.lifeline(m.Source); !ok {
			return fmt.Errorf("message %d (%s) source %d: %w", i, m.Name, m.Source, ErrUnknownLifeline)
		}
		if _, ok := g.lifeline(m.Target); !ok {
			return fmt.Errorf("message %d (%s) target %d: %w", i, m.Name, m.Target, ErrUnknownLifeline)
		}
	}

	for i := range g.executions {
		e := &g.executions[i]
		if _, ok := g.lifeline(e.Lifeline); !ok {
			return fmt.Errorf("execution %d: %w: %d", i, ErrUnknownLifeline, e.Lifeline)
		}
		for _, mid := range e.Messages {
			m, ok := g.message(mid)
			if !ok {
				return fmt.Errorf("execution %d message %d: %w", i, mid, ErrUnknownMessage)
			}
			if m.Source != e.Lifeline && m.Target != e.Lifeline {
				return fmt.Errorf("execution %d message %d (%s): %w", i, mid, m.Name, ErrForeignMessage)
			}
		}
	}

	for i := range g.comments {
		c := &g.comments[i]
		if c.Lifeline != NoLifeline && c.Message != NoMessage {
			return fmt.Errorf("comment %d: %w", i, ErrAmbiguousComment)
		}
		if c.Lifeline != NoLifeline {
			if _, ok := g.lifeline(c.Lifeline); !ok {
				return fmt.Errorf("comment %d: %w: %d", i, ErrUnknownLifeline, c.Lifeline)
			}
		}
		if c.Message != NoMessage {
			if _, ok := g.message(c.Message); !ok {
				return fmt.Errorf("comment %d: %w: %d", i, ErrUnknownMessage, c.Message)
			}
		}
	}
	return nil
}

func badExtent(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
