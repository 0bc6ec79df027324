package sgraph

import (
	"errors"
	"math"
	"testing"
)

func twoLifelines() (*Graph, LifelineID, LifelineID) {
	g := New()
	a := g.AddLifeline(Lifeline{Name: "a", Slot: 0, Size: Vec{X: 40, Y: 200}})
	b := g.AddLifeline(Lifeline{Name: "b", Slot: 1, Size: Vec{X: 40, Y: 200}})
	return g, a, b
}

func TestAddMessage(t *testing.T) {
	g, a, b := twoLifelines()

	m, err := g.AddMessage(Message{Name: "call", Source: a, Target: b, SourceY: 50, TargetY: 50})
	if err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	if got := g.Lifeline(a).Outgoing; len(got) != 1 || got[0] != m {
		t.Errorf("a.Outgoing = %v, want [%d]", got, m)
	}
	if got := g.Lifeline(b).Incoming; len(got) != 1 || got[0] != m {
		t.Errorf("b.Incoming = %v, want [%d]", got, m)
	}
	if len(g.Lifeline(a).Incoming) != 0 || len(g.Lifeline(b).Outgoing) != 0 {
		t.Error("message linked on the wrong side")
	}

	self, _ := g.AddMessage(Message{Source: a, Target: a})
	if !g.Message(self).IsSelfLoop() {
		t.Error("self message not reported as self-loop")
	}
	if g.Message(m).IsSelfLoop() {
		t.Error("a->b reported as self-loop")
	}
}

func TestAddMessageUnknownLifeline(t *testing.T) {
	g, a, _ := twoLifelines()
	tests := []struct {
		name string
		msg  Message
	}{
		{"UnknownSource", Message{Source: 7, Target: a}},
		{"UnknownTarget", Message{Source: a, Target: NoLifeline}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := g.AddMessage(tt.msg)
			if !errors.Is(err, ErrUnknownLifeline) {
				t.Fatalf("err = %v, want ErrUnknownLifeline", err)
			}
			if id != NoMessage {
				t.Errorf("id = %d, want NoMessage", id)
			}
		})
	}
	if g.MessageCount() != 0 {
		t.Errorf("MessageCount = %d, want 0", g.MessageCount())
	}
}

func TestAddExecution(t *testing.T) {
	g, a, b := twoLifelines()
	m, _ := g.AddMessage(Message{Source: a, Target: b})

	e, err := g.AddExecution(Execution{Lifeline: b, Messages: []MessageID{m, m}})
	if err != nil {
		t.Fatalf("AddExecution: %v", err)
	}
	if got := g.Lifeline(b).Executions; len(got) != 1 || got[0] != e {
		t.Errorf("b.Executions = %v, want [%d]", got, e)
	}
	if got := g.Execution(e).Messages; len(got) != 1 {
		t.Errorf("Messages = %v, want one entry", got)
	}

	if _, err := g.AddExecution(Execution{Lifeline: 9}); !errors.Is(err, ErrUnknownLifeline) {
		t.Errorf("err = %v, want ErrUnknownLifeline", err)
	}
	if _, err := g.AddExecution(Execution{Lifeline: b, Messages: []MessageID{m, 42}}); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("err = %v, want ErrUnknownMessage", err)
	}
	if g.ExecutionCount() != 1 || len(g.Lifeline(b).Executions) != 1 {
		t.Errorf("rejected execution was recorded: count %d, b.Executions %v", g.ExecutionCount(), g.Lifeline(b).Executions)
	}
	if err := g.AttachMessage(e, 42); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("err = %v, want ErrUnknownMessage", err)
	}
	if err := g.AttachMessage(42, m); !errors.Is(err, ErrUnknownExecution) {
		t.Errorf("err = %v, want ErrUnknownExecution", err)
	}
}

func TestCommentAttachment(t *testing.T) {
	g, a, b := twoLifelines()
	m, _ := g.AddMessage(Message{Source: a, Target: b})
	c := g.AddComment(Comment{AttachedElement: "Lifeline_Shape"})

	if cm := g.Comment(c); cm.Lifeline != NoLifeline || cm.Message != NoMessage {
		t.Fatalf("new comment attached: %+v", cm)
	}

	if err := g.AttachCommentToLifeline(c, a); err != nil {
		t.Fatalf("AttachCommentToLifeline: %v", err)
	}
	if len(g.Lifeline(a).Comments) != 1 {
		t.Fatalf("a.Comments = %v", g.Lifeline(a).Comments)
	}

	// Moving to a message removes it from the lifeline.
	if err := g.AttachCommentToMessage(c, m); err != nil {
		t.Fatalf("AttachCommentToMessage: %v", err)
	}
	if len(g.Lifeline(a).Comments) != 0 {
		t.Errorf("a.Comments = %v, want empty", g.Lifeline(a).Comments)
	}
	if got := g.Message(m).Comments; len(got) != 1 || got[0] != c {
		t.Errorf("m.Comments = %v, want [%d]", got, c)
	}
	cm := g.Comment(c)
	if cm.Lifeline != NoLifeline || cm.Message != m {
		t.Errorf("comment owner = (%d, %d), want (NoLifeline, %d)", cm.Lifeline, cm.Message, m)
	}

	if err := g.DetachComment(c); err != nil {
		t.Fatalf("DetachComment: %v", err)
	}
	if len(g.Message(m).Comments) != 0 {
		t.Errorf("m.Comments = %v, want empty", g.Message(m).Comments)
	}
	if err := g.DetachComment(99); !errors.Is(err, ErrUnknownComment) {
		t.Errorf("err = %v, want ErrUnknownComment", err)
	}
	if err := g.AttachCommentToLifeline(c, 99); !errors.Is(err, ErrUnknownLifeline) {
		t.Errorf("err = %v, want ErrUnknownLifeline", err)
	}
}

func TestAccessorsOutOfRange(t *testing.T) {
	g := New()
	if g.Lifeline(0) != nil || g.Message(-1) != nil || g.Execution(3) != nil || g.Comment(0) != nil {
		t.Error("accessor on empty graph returned non-nil")
	}
}

func TestCommentAttachedToLifeline(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"Lifeline_Shape", true},
		{"lifeline", true},
		{"BehaviorExecutionSpecification_Shape", true},
		{"ActionExecutionSpecification_Shape", true},
		{"Message_SynchEdge", false},
		{"", false},
		{"Interaction_Shape", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			c := Comment{AttachedElement: tt.tag}
			if got := c.AttachedToLifeline(); got != tt.want {
				t.Errorf("AttachedToLifeline(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Graph
		want  error
	}{
		{
			name: "Valid",
			build: func() *Graph {
				g, a, b := twoLifelines()
				m, _ := g.AddMessage(Message{Source: a, Target: b})
				g.AddExecution(Execution{Lifeline: b, Messages: []MessageID{m}})
				c := g.AddComment(Comment{})
				g.AttachCommentToMessage(c, m)
				return g
			},
		},
		{
			name: "ForeignMessage",
			build: func() *Graph {
				g, a, b := twoLifelines()
				c := g.AddLifeline(Lifeline{Name: "c", Slot: 2})
				m, _ := g.AddMessage(Message{Source: a, Target: b})
				g.AddExecution(Execution{Lifeline: c, Messages: []MessageID{m}})
				return g
			},
			want: ErrForeignMessage,
		},
		{
			name: "AmbiguousComment",
			build: func() *Graph {
				g, a, b := twoLifelines()
				m, _ := g.AddMessage(Message{Source: a, Target: b})
				c := g.AddComment(Comment{})
				g.AttachCommentToMessage(c, m)
				g.Comment(c).Lifeline = a
				return g
			},
			want: ErrAmbiguousComment,
		},
		{
			name: "NegativeHeight",
			build: func() *Graph {
				g, a, _ := twoLifelines()
				g.Lifeline(a).Size.Y = -1
				return g
			},
			want: ErrInvalidSize,
		},
		{
			name: "NaNHeight",
			build: func() *Graph {
				g, a, _ := twoLifelines()
				g.Lifeline(a).Size.Y = math.NaN()
				return g
			},
			want: ErrInvalidSize,
		},
		{
			name: "DanglingTarget",
			build: func() *Graph {
				g, a, b := twoLifelines()
				m, _ := g.AddMessage(Message{Source: a, Target: b})
				g.Message(m).Target = 12
				return g
			},
			want: ErrUnknownLifeline,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build().Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseKinds(t *testing.T) {
	for k := MessageSync; k <= MessageFound; k++ {
		got, err := ParseMessageKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseMessageKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, _ := ParseExecutionKind(""); k != ExecutionBox {
		t.Errorf("ParseExecutionKind(\"\") = %v, want execution", k)
	}
	if k, _ := ParseLifelineKind("dummy"); k != LifelineDummy {
		t.Errorf("ParseLifelineKind(dummy) = %v", k)
	}
	if _, err := ParseMessageKind("gossip"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("err = %v, want ErrUnknownKind", err)
	}
	if got := MessageKind(42).String(); got != "MessageKind(42)" {
		t.Errorf("String() = %q", got)
	}
}
