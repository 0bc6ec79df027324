// Package sgraph provides the sequence graph: the in-memory model of a
// sequence diagram handed from the extraction stage to the coordinate pass.
//
// # Overview
//
// A [Graph] owns four tables of entities:
//
//   - [Lifeline]: a participant line with a horizontal slot
//   - [Message]: a directed communication between two lifelines
//   - [Execution]: an activity, duration or time-constraint span on a lifeline
//   - [Comment]: an annotation attached to a lifeline/execution or a message
//
// Entities are addressed by typed integer handles ([LifelineID], [MessageID],
// [ExecutionID], [CommentID]) rather than pointers. Relations are slices of
// handles held by the owning entity, so re-attaching a comment is a pure data
// operation: remove the handle from the old owner, add it to the new one.
//
// # Building a Graph
//
//	g := sgraph.New()
//	a := g.AddLifeline(sgraph.Lifeline{Name: "client", Slot: 0, Size: sgraph.Vec{X: 40, Y: 200}})
//	b := g.AddLifeline(sgraph.Lifeline{Name: "server", Slot: 1, Size: sgraph.Vec{X: 40, Y: 200}})
//	m, _ := g.AddMessage(sgraph.Message{Kind: sgraph.MessageSync, Source: a, Target: b, SourceY: 50, TargetY: 50})
//
// Accessors such as [Graph.Lifeline] return pointers into the arena; writes
// through them are how the coordinate pass records its results.
//
// # Validation
//
// [Graph.Validate] checks the contract the extraction stage must honor:
// every handle resolves, executions only reference messages that touch their
// lifeline, and comments are attached to at most one element. Violations are
// reported with the sentinel errors declared in this package.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Each layout run works on its own
// instance.
package sgraph
