package tricolor

import "github.com/orizon-lang/tricolor/internal/gcerrors"

// Mutation, Visitor and Finalization are capability tokens: the only way
// a host ever gets to allocate, trace, or resurrect is by receiving one
// of these as a callback argument from Heap.Mutate, Heap.Mark, or
// Heap.Finalize. None of them exposes a public constructor, so a host
// cannot forge one outside those callbacks.
//
// The Rust original ties each capability, and every handle it touches,
// to an invariant brand lifetime so the borrow checker rejects a handle
// that outlives the callback that produced it or that crosses into a
// different heap's callback. Go has no lifetime system capable of
// expressing that statically, so these capabilities instead carry the
// originating *Heap and every handle operation that accepts a capability
// checks it against the handle's own origin heap at call time
// (gcerrors.HeapMismatch), trading a compile-time guarantee for a dynamic
// one. This catches cross-heap misuse; it does not catch a handle
// smuggled out of the callback's return value into a longer-lived
// variable within the *same* heap, which the invariant lifetime would
// have rejected statically (documented as an accepted gap in DESIGN.md).
type Mutation struct {
	heap *Heap
}

type Visitor struct {
	heap *Heap
}

type Finalization struct {
	heap *Heap
}

// Allocate places value under heap management and returns a strong
// handle to it. Must be called from inside a Heap.Mutate callback.
func Allocate[T Managed](m *Mutation, value T) Gc[T] {
	return allocate(m.heap, value)
}

// Trace registers g as reachable from whatever is currently being traced.
// It must be called from inside a Managed.Trace implementation, and only
// with the Visitor passed to that Trace call.
func Trace[T any](v *Visitor, g Gc[T]) {
	if g.ptr == nil {
		return
	}
	v.trace(headerFromInner(g.ptr))
}

// TraceWeak registers w as weakly observed. Unlike Trace, observing a
// dead target through TraceWeak never resurrects it; it only protects a
// live-but-unreached target's header from being reused before the
// observer itself is swept (§4.3, §4.4).
func TraceWeak[T any](v *Visitor, w GcWeak[T]) {
	if w.inner.ptr == nil {
		return
	}
	v.traceWeak(headerFromInner(w.inner.ptr))
}

// markReachable is the shared White/WhiteWeak -> Grey-or-Black transition
// used both by an ordinary trace and by resurrection: a target that
// carries nothing to trace goes straight to Black without ever touching
// the worklist (so its vtable's trace function, which would call the
// payload's own Trace, is never invoked for a type that declared
// NeedsTrace() == false).
func markReachable(heap *Heap, h *AllocationHeader) {
	switch h.color() {
	case colorWhite, colorWhiteWeak:
		if h.needsTrace() {
			h.setColor(colorGrey)
			heap.grey = append(heap.grey, h)
		} else {
			h.setColor(colorBlack)
		}
	}
}

func (v *Visitor) trace(h *AllocationHeader) {
	markReachable(v.heap, h)
}

func (v *Visitor) traceWeak(h *AllocationHeader) {
	if h.color() == colorWhite {
		h.setColor(colorWhiteWeak)
	}
}

// Resurrect pulls a weakly-held, otherwise-dead target back onto the grey
// worklist during finalization, extending its life for (at least) one
// more cycle (§4.3 "Resurrection", §8 scenario 4). Calling it on a target
// that is already black, or already on the worklist, is a no-op.
func (w GcWeak[T]) Resurrect(f *Finalization) {
	if f.heap != w.inner.heap {
		gcerrors.HeapMismatch("Resurrect")
	}

	markReachable(f.heap, headerFromInner(w.inner.ptr))
}
