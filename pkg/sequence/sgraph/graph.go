package sgraph

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrUnknownLifeline is returned when a handle does not resolve to a
	// lifeline of the graph.
	ErrUnknownLifeline = errors.New("unknown lifeline")

	// ErrUnknownMessage is returned when a handle does not resolve to a
	// message of the graph.
	ErrUnknownMessage = errors.New("unknown message")

	// ErrUnknownExecution is returned when a handle does not resolve to an
	// execution of the graph.
	ErrUnknownExecution = errors.New("unknown execution")

	// ErrUnknownComment is returned when a handle does not resolve to a
	// comment of the graph.
	ErrUnknownComment = errors.New("unknown comment")

	// ErrUnknownKind is returned by the Parse*Kind functions.
	ErrUnknownKind = errors.New("unknown kind")

	// ErrForeignMessage is returned by [Graph.Validate] when an execution
	// lists a message that neither starts nor ends on the execution's
	// lifeline.
	ErrForeignMessage = errors.New("execution message does not touch its lifeline")

	// ErrAmbiguousComment is returned by [Graph.Validate] when a comment is
	// attached to both a lifeline and a message.
	ErrAmbiguousComment = errors.New("comment attached to both lifeline and message")

	// ErrInvalidSize is returned by [Graph.Validate] when the graph size or
	// a lifeline height is negative or not finite.
	ErrInvalidSize = errors.New("invalid size")
)

// LifelineID is a handle into the lifeline table of a [Graph].
type LifelineID int

// MessageID is a handle into the message table of a [Graph].
type MessageID int

// ExecutionID is a handle into the execution table of a [Graph].
type ExecutionID int

// CommentID is a handle into the comment table of a [Graph].
type CommentID int

// Sentinel handles for unset references.
const (
	NoLifeline LifelineID = -1
	NoMessage  MessageID  = -1
)

// Lifeline is a participant of the diagram.
//
// Position and Size are the working geometry produced by the upstream layout
// stage and refined by the coordinate pass. Bounds is the committed node
// geometry; its Width is supplied by the extraction stage and its X, Y and
// Height are written when the lifeline is finished.
type Lifeline struct {
	Name string
	Kind LifelineKind
	Slot int

	Position Vec
	Size     Vec
	Bounds   Rect

	Incoming   []MessageID
	Outgoing   []MessageID
	Executions []ExecutionID
	Comments   []CommentID

	// Destruction is the optional destruction marker, relative to the
	// lifeline's bounds.
	Destruction *Rect
}

// IsDummy reports whether the lifeline only exists as the synthetic endpoint
// of a lost or found message.
func (l *Lifeline) IsDummy() bool { return l.Kind == LifelineDummy }

// CenterX returns the horizontal centerline of the lifeline's working
// geometry.
func (l *Lifeline) CenterX() float64 { return l.Position.X + l.Size.X/2 }

// Message is a directed communication between two lifelines.
// SourceY and TargetY are relative coordinates from the upstream layout,
// before the host's scaling convention is applied.
type Message struct {
	Name    string
	Kind    MessageKind
	Source  LifelineID
	Target  LifelineID
	SourceY float64
	TargetY float64

	Edge     Edge
	Comments []CommentID
}

// IsSelfLoop reports whether the message starts and ends on the same
// lifeline.
func (m *Message) IsSelfLoop() bool { return m.Source == m.Target }

// Execution is a span on a lifeline. Origin holds the geometry the
// extraction stage found; Bounds receives the committed geometry.
type Execution struct {
	Kind     ExecutionKind
	Lifeline LifelineID

	Position Vec
	Size     Vec
	Origin   Rect
	Bounds   Rect

	Messages []MessageID
}

// IsMarker reports whether the execution is a duration or time constraint,
// drawn as a thin marker instead of a box.
func (e *Execution) IsMarker() bool {
	return e.Kind == ExecutionDuration || e.Kind == ExecutionTimeConstraint
}

// Comment is an annotation attached to a lifeline (or one of its
// executions) or to a message.
type Comment struct {
	Text string

	Position Vec
	Size     Vec

	Lifeline LifelineID
	Message  MessageID

	// AttachedElement is the host's tag of the annotated element, such as
	// "Lifeline_Shape" or "Message_SynchEdge".
	AttachedElement string

	Bounds    Rect
	Connector *Connector
}

// AttachedToLifeline reports whether the comment's tag names a lifeline or
// an execution, which are connected horizontally.
func (c *Comment) AttachedToLifeline() bool {
	tag := strings.ToLower(c.AttachedElement)
	return strings.HasPrefix(tag, "lifeline") || strings.Contains(tag, "execution")
}

// Graph is the sequence graph. The zero value is not usable; use [New].
type Graph struct {
	// Size is the provisional extent of the diagram computed upstream.
	Size Vec

	lifelines  []Lifeline
	messages   []Message
	executions []Execution
	comments   []Comment
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddLifeline appends a lifeline and returns its handle. Relation slices on
// the argument are ignored; they are maintained by the Add* methods.
func (g *Graph) AddLifeline(l Lifeline) LifelineID {
	l.Incoming, l.Outgoing, l.Executions, l.Comments = nil, nil, nil, nil
	g.lifelines = append(g.lifelines, l)
	return LifelineID(len(g.lifelines) - 1)
}

// AddMessage appends a message and links it to its source's outgoing and
// its target's incoming lists.
func (g *Graph) AddMessage(m Message) (MessageID, error) {
	src, ok := g.lifeline(m.Source)
	if !ok {
		return NoMessage, ErrUnknownLifeline
	}
	dst, ok := g.lifeline(m.Target)
	if !ok {
		return NoMessage, ErrUnknownLifeline
	}
	m.Comments = nil
	g.messages = append(g.messages, m)
	id := MessageID(len(g.messages) - 1)
	src.Outgoing = append(src.Outgoing, id)
	dst.Incoming = append(dst.Incoming, id)
	return id, nil
}

// AddExecution appends an execution to its lifeline. The graph is left
// unchanged when the lifeline or any of the messages is unknown.
func (g *Graph) AddExecution(e Execution) (ExecutionID, error) {
	ll, ok := g.lifeline(e.Lifeline)
	if !ok {
		return -1, ErrUnknownLifeline
	}
	var msgs []MessageID
	for _, m := range e.Messages {
		if _, ok := g.message(m); !ok {
			return -1, ErrUnknownMessage
		}
		if !slices.Contains(msgs, m) {
			msgs = append(msgs, m)
		}
	}
	e.Messages = msgs
	g.executions = append(g.executions, e)
	id := ExecutionID(len(g.executions) - 1)
	ll.Executions = append(ll.Executions, id)
	return id, nil
}

// AttachMessage records that the execution covers the message.
// Attaching the same message twice is a no-op.
func (g *Graph) AttachMessage(e ExecutionID, m MessageID) error {
	ex, ok := g.execution(e)
	if !ok {
		return ErrUnknownExecution
	}
	if _, ok := g.message(m); !ok {
		return ErrUnknownMessage
	}
	if !slices.Contains(ex.Messages, m) {
		ex.Messages = append(ex.Messages, m)
	}
	return nil
}

// AddComment appends an unattached comment. Use
// [Graph.AttachCommentToLifeline] or [Graph.AttachCommentToMessage] to
// attach it.
func (g *Graph) AddComment(c Comment) CommentID {
	c.Lifeline, c.Message = NoLifeline, NoMessage
	g.comments = append(g.comments, c)
	return CommentID(len(g.comments) - 1)
}

// AttachCommentToLifeline moves the comment onto the lifeline, detaching it
// from whatever it was attached to before.
func (g *Graph) AttachCommentToLifeline(c CommentID, l LifelineID) error {
	if _, ok := g.lifeline(l); !ok {
		return ErrUnknownLifeline
	}
	if err := g.DetachComment(c); err != nil {
		return err
	}
	g.comments[c].Lifeline = l
	g.lifelines[l].Comments = append(g.lifelines[l].Comments, c)
	return nil
}

// AttachCommentToMessage moves the comment onto the message, detaching it
// from whatever it was attached to before.
func (g *Graph) AttachCommentToMessage(c CommentID, m MessageID) error {
	if _, ok := g.message(m); !ok {
		return ErrUnknownMessage
	}
	if err := g.DetachComment(c); err != nil {
		return err
	}
	g.comments[c].Message = m
	g.messages[m].Comments = append(g.messages[m].Comments, c)
	return nil
}

// DetachComment removes the comment from its current owner, if any.
func (g *Graph) DetachComment(c CommentID) error {
	cm, ok := g.comment(c)
	if !ok {
		return ErrUnknownComment
	}
	if l, ok := g.lifeline(cm.Lifeline); ok {
		l.Comments = slices.DeleteFunc(l.Comments, func(id CommentID) bool { return id == c })
	}
	if m, ok := g.message(cm.Message); ok {
		m.Comments = slices.DeleteFunc(m.Comments, func(id CommentID) bool { return id == c })
	}
	cm.Lifeline, cm.Message = NoLifeline, NoMessage
	return nil
}

// Lifeline returns the lifeline for id, or nil if id does not resolve.
func (g *Graph) Lifeline(id LifelineID) *Lifeline {
	l, _ := g.lifeline(id)
	return l
}

// Message returns the message for id, or nil if id does not resolve.
func (g *Graph) Message(id MessageID) *Message {
	m, _ := g.message(id)
	return m
}

// Execution returns the execution for id, or nil if id does not resolve.
func (g *Graph) Execution(id ExecutionID) *Execution {
	e, _ := g.execution(id)
	return e
}

// Comment returns the comment for id, or nil if id does not resolve.
func (g *Graph) Comment(id CommentID) *Comment {
	c, _ := g.comment(id)
	return c
}

// LifelineCount returns the number of lifelines, dummies included.
func (g *Graph) LifelineCount() int { return len(g.lifelines) }

// MessageCount returns the number of messages.
func (g *Graph) MessageCount() int { return len(g.messages) }

// ExecutionCount returns the number of executions.
func (g *Graph) ExecutionCount() int { return len(g.executions) }

// CommentCount returns the number of comments.
func (g *Graph) CommentCount() int { return len(g.comments) }

// LifelineIDs returns every lifeline handle in insertion order.
func (g *Graph) LifelineIDs() []LifelineID {
	ids := make([]LifelineID, len(g.lifelines))
	for i := range ids {
		ids[i] = LifelineID(i)
	}
	return ids
}

// Comments returns every comment handle in insertion order.
func (g *Graph) Comments() []CommentID {
	ids := make([]CommentID, len(g.comments))
	for i := range ids {
		ids[i] = CommentID(i)
	}
	return ids
}

func (g *Graph) lifeline(id LifelineID) (*Lifeline, bool) {
	if id < 0 || int(id) >= len(g.lifelines) {
		return nil, false
	}
	return &g.lifelines[id], true
}

func (g *Graph) message(id MessageID) (*Message, bool) {
	if id < 0 || int(id) >= len(g.messages) {
		return nil, false
	}
	return &g.messages[id], true
}

func (g *Graph) execution(id ExecutionID) (*Execution, bool) {
	if id < 0 || int(id) >= len(g.executions) {
		return nil, false
	}
	return &g.executions[id], true
}

func (g *Graph) comment(id CommentID) (*Comment, bool) {
	if id < 0 || int(id) >= len(g.comments) {
		return nil, false
	}
	return &g.comments[id], true
}
