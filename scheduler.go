package tactile

import "time"

// Scheduler is the document's frame-stepped clock. All "waiting" in tactile
// (hold thresholds, tap-repeat windows, debounce, re-arm delays) is a timer
// on this scheduler, advanced by Document.Update rather than wall time, so
// tests step frames deterministically.
type Scheduler struct {
	now    float64 // seconds since the document was created
	timers []*Timer
	hooks  []frameHook
	nextID uint32

	// reused buffer for due timers so firing callbacks can schedule
	// new timers without invalidating the iteration
	dueBuf []*Timer
}

// Timer is a scheduled one-shot callback. Stop is idempotent: stopping an
// already-fired or already-stopped timer is a no-op.
type Timer struct {
	deadline float64
	fn       func()
	done     bool
}

// Stop cancels the timer if it has not fired yet.
func (t *Timer) Stop() {
	if t == nil {
		return
	}
	t.done = true
}

// Active reports whether the timer is still pending.
func (t *Timer) Active() bool {
	return t != nil && !t.done
}

type frameHook struct {
	id uint32
	fn func(dt float64)
}

// FrameHook allows removing a registered per-frame callback.
type FrameHook struct {
	id    uint32
	sched *Scheduler
}

// Remove unregisters this hook so it no longer runs.
func (h FrameHook) Remove() {
	if h.sched == nil {
		return
	}
	for i := range h.sched.hooks {
		if h.sched.hooks[i].id == h.id {
			copy(h.sched.hooks[i:], h.sched.hooks[i+1:])
			h.sched.hooks[len(h.sched.hooks)-1] = frameHook{}
			h.sched.hooks = h.sched.hooks[:len(h.sched.hooks)-1]
			return
		}
	}
}

// Now returns the scheduler clock in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once d from now. A zero or negative duration
// fires on the next Step.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	t := &Timer{deadline: s.now + d.Seconds(), fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// OnFrame registers fn to run every Step with the frame's dt.
func (s *Scheduler) OnFrame(fn func(dt float64)) FrameHook {
	s.nextID++
	s.hooks = append(s.hooks, frameHook{id: s.nextID, fn: fn})
	return FrameHook{id: s.nextID, sched: s}
}

// Step advances the clock by dt seconds, fires every due timer in deadline
// order, and runs frame hooks. Callbacks may schedule further timers; those
// fire on a later Step even if already due, matching how a host event loop
// never re-enters the current tick.
func (s *Scheduler) Step(dt float64) {
	s.now += dt

	// Partition due timers into dueBuf, keeping pending ones in place.
	s.dueBuf = s.dueBuf[:0]
	kept := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.done:
			// dropped
		case t.deadline <= s.now:
			s.dueBuf = append(s.dueBuf, t)
		default:
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept

	// Earliest deadline first.
	for i := 1; i < len(s.dueBuf); i++ {
		key := s.dueBuf[i]
		j := i - 1
		for j >= 0 && s.dueBuf[j].deadline > key.deadline {
			s.dueBuf[j+1] = s.dueBuf[j]
			j--
		}
		s.dueBuf[j+1] = key
	}
	for _, t := range s.dueBuf {
		if t.done {
			continue // stopped by an earlier callback this Step
		}
		t.done = true
		t.fn()
	}

	// Frame hooks run after timers; copy so a hook removing itself
	// (or adding another) doesn't skip entries.
	if len(s.hooks) > 0 {
		hooks := make([]frameHook, len(s.hooks))
		copy(hooks, s.hooks)
		for _, h := range hooks {
			h.fn(dt)
		}
	}
}
