package styles

import (
	"bytes"
	"fmt"
)

const sketchFilter = "sketch"

// Sketch draws the [Simple] shapes through a turbulence displacement
// filter, giving strokes a slight hand-drawn wobble. Text is left sharp.
type Sketch struct {
	// Roughness is the displacement scale. Zero means 2.
	Roughness float64
}

// RenderDefs writes the arrow markers and the displacement filter.
func (s Sketch) RenderDefs(buf *bytes.Buffer) {
	renderMarkers(buf)
	scale := s.Roughness
	if scale == 0 {
		scale = 2
	}
	fmt.Fprintf(buf, `    <filter id="%s"><feTurbulence type="fractalNoise" baseFrequency="0.03" numOctaves="2" seed="7"/><feDisplacementMap in="SourceGraphic" scale="%.1f"/></filter>`+"\n",
		sketchFilter, scale)
}

func (Sketch) RenderLifeline(buf *bytes.Buffer, l Lifeline) {
	renderLifeline(buf, l, sketchFilter)
}

func (Sketch) RenderExecution(buf *bytes.Buffer, e Execution) {
	renderExecution(buf, e, sketchFilter)
}

func (Sketch) RenderMessage(buf *bytes.Buffer, m Message) {
	renderMessage(buf, m, sketchFilter)
}

func (Sketch) RenderLabel(buf *bytes.Buffer, l Label) {
	renderLabel(buf, l)
}

func (Sketch) RenderComment(buf *bytes.Buffer, c Comment) {
	renderComment(buf, c, sketchFilter)
}

var _ Style = Sketch{}
