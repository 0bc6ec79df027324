package graph

import (
	"slices"

	"github.com/matzehuels/lifeline/pkg/sequence/layout"
)

// =============================================================================
// Geometry
// =============================================================================

// Vec is a position or size.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a committed node bounds.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Edge is the routed geometry of a message.
type Edge struct {
	Start Vec   `json:"start"`
	End   Vec   `json:"end"`
	Bends []Vec `json:"bends,omitempty"`
}

// Connector joins a comment to the element it annotates.
type Connector struct {
	Start Vec `json:"start"`
	End   Vec `json:"end"`
}

// =============================================================================
// Diagram
// =============================================================================

// Diagram is the canonical serialization format for sequence diagrams.
//
// Input fields come from the extraction and ordering stages. Output fields
// (Root and the per-element Bounds, Edge, Connector and label positions) are
// filled by a layout run and omitted before it.
type Diagram struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Size    Vec      `json:"size"`
	Order   []string `json:"order"`
	Options *Options `json:"options,omitempty"`

	Lifelines  []Lifeline  `json:"lifelines"`
	Messages   []Message   `json:"messages,omitempty"`
	Executions []Execution `json:"executions,omitempty"`
	Comments   []Comment   `json:"comments,omitempty"`

	Root *Rect `json:"root,omitempty"`
}

// IsLaidOut reports whether the diagram carries the result of a layout run.
func (d *Diagram) IsLaidOut() bool { return d.Root != nil }

// Clone returns a copy of d whose element slices can be modified without
// affecting d. Rect and Edge pointers are shared; layout replaces them
// rather than writing through them.
func (d Diagram) Clone() Diagram {
	d.Order = slices.Clone(d.Order)
	d.Lifelines = slices.Clone(d.Lifelines)
	d.Messages = slices.Clone(d.Messages)
	for i := range d.Messages {
		d.Messages[i].Labels = slices.Clone(d.Messages[i].Labels)
	}
	d.Executions = slices.Clone(d.Executions)
	for i := range d.Executions {
		d.Executions[i].Messages = slices.Clone(d.Executions[i].Messages)
	}
	d.Comments = slices.Clone(d.Comments)
	return d
}

// Lifeline is a participant. Bounds.Width is an input; the rest of Bounds is
// written by the layout.
type Lifeline struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Slot        int    `json:"slot"`
	Position    Vec    `json:"position"`
	Size        Vec    `json:"size"`
	Bounds      *Rect  `json:"bounds,omitempty"`
	Destruction *Rect  `json:"destruction,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (l *Lifeline) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Message is a directed communication between two lifelines.
type Message struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Kind    string  `json:"kind,omitempty"`
	Source  string  `json:"source"`
	Target  string  `json:"target"`
	SourceY float64 `json:"source_y"`
	TargetY float64 `json:"target_y"`
	Labels  []Label `json:"labels,omitempty"`
	Edge    *Edge   `json:"edge,omitempty"`
}

// Label is a message label. Width and Height are inputs; X and Y are written
// by the layout.
type Label struct {
	Text   string  `json:"text,omitempty"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

// Execution is an execution, duration or time-constraint span.
type Execution struct {
	ID       string   `json:"id,omitempty"`
	Kind     string   `json:"kind,omitempty"`
	Lifeline string   `json:"lifeline"`
	Messages []string `json:"messages,omitempty"`
	Position Vec      `json:"position"`
	Size     Vec      `json:"size"`
	Origin   *Rect    `json:"origin,omitempty"`
	Bounds   *Rect    `json:"bounds,omitempty"`
}

// Comment is an annotation attached to at most one of a lifeline or a
// message.
type Comment struct {
	ID              string     `json:"id,omitempty"`
	Text            string     `json:"text,omitempty"`
	AttachedElement string     `json:"attached_element,omitempty"`
	Lifeline        string     `json:"lifeline,omitempty"`
	Message         string     `json:"message,omitempty"`
	Position        Vec        `json:"position"`
	Size            Vec        `json:"size"`
	Bounds          *Rect      `json:"bounds,omitempty"`
	Connector       *Connector `json:"connector,omitempty"`
}

// =============================================================================
// Options
// =============================================================================

// Options overrides layout settings for one diagram. Unset fields keep the
// value of the context they are applied to.
type Options struct {
	MessageSpacing  *float64 `json:"message_spacing,omitempty"`
	LifelineHeader  *float64 `json:"lifeline_header,omitempty"`
	LifelineYPos    *float64 `json:"lifeline_y_pos,omitempty"`
	LifelineSpacing *float64 `json:"lifeline_spacing,omitempty"`
	BorderSpacing   *float64 `json:"border_spacing,omitempty"`
	LabelSpacing    *float64 `json:"label_spacing,omitempty"`
	LabelMargin     *float64 `json:"label_margin,omitempty"`
	LabelAlignment  string   `json:"label_alignment,omitempty"`
}

// ApplyTo overlays the set fields onto lc.
func (o *Options) ApplyTo(lc *layout.Context) error {
	if o == nil {
		return nil
	}
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{o.MessageSpacing, &lc.MessageSpacing},
		{o.LifelineHeader, &lc.LifelineHeader},
		{o.LifelineYPos, &lc.LifelineYPos},
		{o.LifelineSpacing, &lc.LifelineSpacing},
		{o.BorderSpacing, &lc.BorderSpacing},
		{o.LabelSpacing, &lc.LabelSpacing},
		{o.LabelMargin, &lc.LabelMargin},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if o.LabelAlignment != "" {
		a, err := layout.ParseAlignment(o.LabelAlignment)
		if err != nil {
			return err
		}
		lc.LabelAlignment = a
	}
	return nil
}
