// Package tactile is a drag-and-drop and touch-gesture coordination layer
// for [Ebitengine] hosts.
//
// Tactile owns no rendering. It maintains a retained tree of [Element]
// boxes (position, size, margins, borders, padding, scroll state), routes
// pointer input through hit testing and listener dispatch, recognizes
// touch gestures, and runs drag sessions against registered drop targets.
// The host draws however it likes and mirrors its layout into the tree.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// game loop for you:
//
//	doc := tactile.NewDocument(tactile.Rect{Width: 640, Height: 480})
//	// ... add elements, draggables, droppables ...
//	tactile.Run(doc, tactile.RunConfig{
//		Title: "My App", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself, call
// [Document.AttachBackend] once, and [Document.Update] every tick:
//
//	type Game struct{ doc *tactile.Document }
//
//	func (g *Game) Update() error        { g.doc.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { /* host rendering */ }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Element tree
//
// Every interactive region is an [Element]. Elements form a tree rooted at
// [Document.Root]. An element's X/Y position its border box inside the
// parent's content area; scrollable parents offset their children by their
// scroll state.
//
//	panel := tactile.NewElement("panel", 200, 150)
//	doc.Root().AddChild(panel)
//
// # Interaction
//
// Listeners attach through [Document.Events]; [NewDraggable] and
// [Document.RegisterDroppable] wire drag-and-drop; [NewTouch]
// recognizes taps, tap-holds, scrolls, and swipes. All waiting (hold
// thresholds, debounce, tap windows) runs on the document's frame-stepped
// [Scheduler], so tests drive time with [Document.Update] rather than the
// wall clock. Tweens (via [gween]) animate element fields for revert and
// smooth scrolling.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package tactile
