// Package coords assigns final pixel-space geometry to a laid-out sequence
// graph.
//
// # Overview
//
// The upstream layout decides the left-to-right lifeline order, the
// lifeline sizes and a provisional diagram height. [Apply] takes those
// results, held in an [sgraph.Graph] and a [layout.Context], and resolves
// everything that is still open:
//
//   - message endpoints, including lost/found dangling ends and create/delete
//     adjustments of the lifeline extent
//   - self-loop bend points
//   - execution spans, grown to cover every attached message and stacked when
//     nested ([Arrange])
//   - label positions, following the context's alignment policy ([PlaceLabels])
//   - comment bounds and connectors ([PlaceComments])
//   - the root node's bounds
//
// # Coordinate Convention
//
// The target editor stores message Y coordinates relative to the lifeline
// they touch, but scaled as if the lifeline were as tall as the whole
// diagram. Apply compensates by multiplying raw Y values by
//
//	factor = (diagramHeight + 20) / lifeline.Size.Y
//
// Messages that touch an execution are re-anchored relative to the
// execution box with the same kind of correction.
//
// # Usage
//
//	lc := layout.Default()
//	lc.Order = order
//	lc.Root = &root
//	res, err := coords.Apply(g, lc, coords.WithLogger(logger))
//
// Apply validates the graph and the context before it writes anything. A
// failed validation leaves the graph untouched.
package coords
