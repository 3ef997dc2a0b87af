package tactile

import (
	"reflect"
	"strings"
	"time"
)

// PointerListener receives low-level pointer events from the registry.
type PointerListener func(PointerEvent)

// binding records one registered listener for one event name. The effective
// listener may be a debounced wrapper of the original; removal always keys
// on the original listener's identity, so repeated Add/Remove pairs with
// the same function are idempotent in effect.
type binding struct {
	name      string
	original  uintptr
	effective PointerListener
	pending   *Timer // outstanding debounce timer, if any
}

// Registry is the per-element listener side table. Element lifecycle and
// listener-table lifecycle are independent: disposing an element clears its
// entry, and clearing an entry never touches the element.
type Registry struct {
	sched *Scheduler
	table map[*Element][]*binding
}

func newRegistry(sched *Scheduler) *Registry {
	return &Registry{
		sched: sched,
		table: make(map[*Element][]*binding),
	}
}

// funcPointer returns the identity key for a listener. Go functions are not
// comparable, so the code pointer stands in for identity; distinct
// closures over the same function body share a key, which callers holding
// several such closures should disambiguate with the returned effective
// listener and Clear.
func funcPointer(fn PointerListener) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}

// Add registers fn for each space-separated event name on el and returns
// the effective listener actually invoked (the debounce wrapper when
// debounce > 0, fn itself otherwise). With several names and a debounce,
// each name gets its own wrapper and the last one is returned; Remove
// still detaches every binding because it keys on fn, not the wrapper.
//
// A nil element or listener is a no-op returning nil.
func (r *Registry) Add(el *Element, names string, fn PointerListener, debounce time.Duration) PointerListener {
	if el == nil || fn == nil {
		return nil
	}
	key := funcPointer(fn)
	var effective PointerListener
	for _, name := range strings.Fields(names) {
		b := &binding{name: name, original: key}
		if debounce > 0 {
			b.effective = r.debounced(b, fn, debounce)
		} else {
			b.effective = fn
		}
		effective = b.effective
		r.table[el] = append(r.table[el], b)
	}
	return effective
}

// debounced wraps fn so it runs once the events stop arriving for the
// given window. Each call replaces the pending timer.
func (r *Registry) debounced(b *binding, fn PointerListener, window time.Duration) PointerListener {
	return func(ev PointerEvent) {
		b.pending.Stop()
		b.pending = r.sched.After(window, func() {
			fn(ev)
		})
	}
}

// Remove detaches fn from each space-separated event name on el, matching
// by original listener identity. No-op when no matching entry exists.
func (r *Registry) Remove(el *Element, names string, fn PointerListener) {
	if el == nil || fn == nil {
		return
	}
	key := funcPointer(fn)
	bindings := r.table[el]
	for _, name := range strings.Fields(names) {
		for i, b := range bindings {
			if b.name == name && b.original == key {
				b.pending.Stop()
				copy(bindings[i:], bindings[i+1:])
				bindings[len(bindings)-1] = nil
				bindings = bindings[:len(bindings)-1]
				break
			}
		}
	}
	if len(bindings) == 0 {
		delete(r.table, el)
	} else {
		r.table[el] = bindings
	}
}

// Trigger synthetically invokes every effective listener registered for the
// event name on el, passing ev. No real dispatch occurs; this is how a
// simulated event propagates without the input backend.
func (r *Registry) Trigger(el *Element, name string, ev PointerEvent) {
	if el == nil {
		return
	}
	bindings := r.table[el]
	if len(bindings) == 0 {
		return
	}
	// Copy so listeners that add/remove bindings don't disturb this pass.
	snapshot := make([]*binding, 0, len(bindings))
	for _, b := range bindings {
		if b.name == name {
			snapshot = append(snapshot, b)
		}
	}
	ev.Name = name
	for _, b := range snapshot {
		b.effective(ev)
	}
}

// Clear detaches every registered listener on el. Used on teardown.
func (r *Registry) Clear(el *Element) {
	if el == nil {
		return
	}
	for _, b := range r.table[el] {
		b.pending.Stop()
	}
	delete(r.table, el)
}

// Count returns the number of listeners registered for the event name on
// el. A name of "" counts all listeners on the element.
func (r *Registry) Count(el *Element, name string) int {
	if el == nil {
		return 0
	}
	if name == "" {
		return len(r.table[el])
	}
	n := 0
	for _, b := range r.table[el] {
		if b.name == name {
			n++
		}
	}
	return n
}
