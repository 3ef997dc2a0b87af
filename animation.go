package tactile

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on an Element simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScroll,
// TweenSize) and call Update(dt) each frame, or drive it from a scheduler
// frame hook. If the target element is disposed, the group stops
// immediately.
//
// There is no global animation manager; callers step groups themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Element
	settle func()
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target element has been disposed, Done is set to true and
// no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.settle != nil {
		g.settle()
	}
}

// TweenPosition creates a TweenGroup that animates el.X and el.Y to the
// given target coordinates over the specified duration using the easing
// function.
func TweenPosition(el *Element, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: el}
	g.tweens[0] = gween.New(float32(el.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(el.Y), float32(toY), duration, fn)
	g.fields[0] = &el.X
	g.fields[1] = &el.Y
	return g
}

// TweenScroll creates a TweenGroup that animates el.ScrollX and el.ScrollY
// to the given offsets. Values are re-clamped to the element's scroll extent
// after every step.
func TweenScroll(el *Element, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: el}
	g.tweens[0] = gween.New(float32(el.ScrollX), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(el.ScrollY), float32(toY), duration, fn)
	g.fields[0] = &el.ScrollX
	g.fields[1] = &el.ScrollY
	g.settle = func() { el.SetScroll(el.ScrollX, el.ScrollY) }
	return g
}

// TweenSize creates a TweenGroup that animates el.Width and el.Height to
// the given dimensions over the specified duration using the easing
// function.
func TweenSize(el *Element, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: el}
	g.tweens[0] = gween.New(float32(el.Width), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(el.Height), float32(toH), duration, fn)
	g.fields[0] = &el.Width
	g.fields[1] = &el.Height
	return g
}
