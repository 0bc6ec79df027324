// Package dot exports laid-out sequence diagrams to Graphviz.
//
// Graphviz does not lay anything out here: [ToDOT] pins every lifeline,
// execution, label and comment at the position computed by the coordinate
// pass, and [RenderSVG] runs neato, which honors pinned positions and only
// routes the straight edges between them. The DOT output is useful for
// feeding diagrams into existing Graphviz tooling.
//
//	src, err := dot.ToDOT(d, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
package dot
