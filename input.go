package tactile

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenBackend polls the host window each frame and feeds pointer samples
// into Document.DispatchPointer. Pointer 0 is the mouse; touches are mapped
// to slots 1-9 for as long as they stay down.
type ebitenBackend struct {
	prevTouchIDs []ebiten.TouchID
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// poll is called once per Document.Update to sample all real input.
func (b *ebitenBackend) poll(d *Document) {
	mods := readModifiers()
	b.pollMouse(d, mods)
	b.pollTouches(d, mods)
}

// pollMouse handles the mouse (pointer 0). Window coordinates become page
// coordinates by adding the document scroll offset.
func (b *ebitenBackend) pollMouse(d *Document, mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	px := float64(mx) + d.scrollRoot.ScrollX
	py := float64(my) + d.scrollRoot.ScrollY

	// Detect which button is pressed. If the pointer is already down, the
	// stored button wins so it cannot change mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	d.DispatchPointer(0, PointerMouse, px, py, pressed, button, mods)
}

// pollTouches handles touch input (pointers 1-9).
func (b *ebitenBackend) pollTouches(d *Document, mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(b.prevTouchIDs[:0])
	b.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := b.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		px := float64(tx) + d.scrollRoot.ScrollX
		py := float64(ty) + d.scrollRoot.ScrollY
		d.DispatchPointer(slot, PointerTouch, px, py, true, MouseButtonLeft, mods)
	}

	// Release any touch slots that vanished this frame.
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && !activeSlots[i] {
			ps := &d.pointers[i]
			if ps.down {
				d.DispatchPointer(i, PointerTouch, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			b.touchUsed[i] = false
			b.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns the
// existing slot or allocates a new one. Returns -1 if full.
func (b *ebitenBackend) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if b.touchUsed[i] && b.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !b.touchUsed[i] {
			b.touchUsed[i] = true
			b.touchMap[i] = tid
			return i
		}
	}
	return -1
}
