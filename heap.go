package tricolor

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/orizon-lang/tricolor/internal/gcerrors"
)

// Heap is a single managed object space: one intrusive singly-linked list
// of allocations, one grey worklist, and the bookkeeping a collection
// cycle needs. It is not safe for concurrent use — exactly one goroutine
// may be inside a Heap method at a time (spec.md §5) — and that
// constraint is enforced dynamically by busy rather than documented and
// trusted, since Go gives no static tool to enforce it the way a brand
// lifetime would.
type Heap struct {
	head *AllocationHeader
	grey []*AllocationHeader

	busy       int32
	isSweeping bool

	cfg   Config
	stats Stats
}

// New creates an empty heap governed by cfg.
func New(cfg Config) *Heap {
	return &Heap{cfg: cfg}
}

// enter acquires the single-caller guard for the duration of one public
// method call, returning the release func to defer. With
// Config.AssertSingleThreaded off the guard is skipped entirely, trading
// safety for the (rare) case a host has already serialized access itself
// and wants to avoid the atomic.
func (h *Heap) enter(op string) func() {
	if !h.cfg.AssertSingleThreaded {
		return func() {}
	}

	if !atomic.CompareAndSwapInt32(&h.busy, 0, 1) {
		gcerrors.Reentrancy(op)
	}

	return func() { atomic.StoreInt32(&h.busy, 0) }
}

// Mutate opens a Mutation capability for the duration of fn. Allocate may
// only be called with the Mutation handed to fn.
func (h *Heap) Mutate(fn func(*Mutation)) {
	release := h.enter("Mutate")
	defer release()

	fn(&Mutation{heap: h})
}

func allocate[T Managed](h *Heap, value T) Gc[T] {
	var gc Gc[T]

	func() {
		defer func() {
			if r := recover(); r != nil {
				panic(gcerrors.AllocatorExhausted(unsafe.Sizeof(allocationInner[T]{}), asError(r)))
			}
		}()

		vt := vtableFor[T]()
		inner := &allocationInner[T]{
			header: newHeader(vt),
			value:  value,
		}
		inner.header.setLive(true)
		inner.header.setColor(colorWhite)
		inner.header.setNeedsTrace(value.NeedsTrace())

		hdr := headerFromInner(inner)
		hdr.setNext(h.head)
		h.head = hdr

		gc = Gc[T]{ptr: inner, heap: h}
	}()

	atomic.AddInt64(&h.stats.TotalAllocations, 1)
	return gc
}

// Mark traces root and everything transitively reachable from it,
// draining the grey worklist to completion — unless user trace code
// panics, in which case the allocation being traced when the panic
// occurred is left exactly where it was (on the worklist, painted grey),
// and the next Mark call picks up where this one aborted (§4.4).
func (h *Heap) Mark(root Managed) {
	release := h.enter("Mark")
	defer release()

	v := &Visitor{heap: h}

	defer func() {
		if r := recover(); r != nil {
			logger.Printf("tricolor: trace aborted mid-mark, resuming next cycle: %v", r)
			panic(r)
		}
	}()

	root.Trace(v)
	h.drainGrey(v)
}

func (h *Heap) drainGrey(v *Visitor) {
	for len(h.grey) > 0 {
		n := len(h.grey)
		hdr := h.grey[n-1]
		h.grey = h.grey[:n-1] // pop before tracing: children the trace appends land after this point

		func() {
			defer func() {
				if r := recover(); r != nil {
					h.grey = append(h.grey, hdr) // leave hdr on the worklist, still grey, for the next Mark
					panic(r)
				}
			}()
			hdr.vtable().trace(hdr, v)
		}()

		hdr.setColor(colorBlack)
	}
}

// Finalize opens a Finalization capability, letting fn resurrect
// would-be-collected weak targets before Sweep runs (§4.3 "Resurrection",
// §8 scenario 4). Call it after Mark and before Sweep.
func (h *Heap) Finalize(fn func(*Finalization)) {
	release := h.enter("Finalize")
	defer release()

	fn(&Finalization{heap: h})

	v := &Visitor{heap: h}
	h.drainGrey(v)
}

// Sweep walks the allocation list once: black survivors are repainted
// white for the next cycle, white-weak survivors are dropped but kept
// linked (a weak handle may still observe them), and plain white entries
// are unlinked so the host runtime's own GC can reclaim them once nothing
// else references them. A header found with color Grey is an engine bug
// (mark never completed draining it), reported via gcerrors.GreyInSweep.
func (h *Heap) Sweep() {
	release := h.enter("Sweep")
	defer release()

	h.isSweeping = true
	defer func() { h.isSweeping = false }()

	var prev *AllocationHeader
	cursor := h.head
	var live, freed, retainedWeak int64

	for cursor != nil {
		curr := cursor
		next := curr.next()

		switch curr.color() {
		case colorBlack:
			curr.setColor(colorWhite)
			prev = curr
			live++

		case colorWhiteWeak:
			curr.setColor(colorWhite)
			if curr.isLive() {
				h.drop(curr)
				logger.Printf("tricolor: dead weakly-observed allocation retained for another cycle")
			}
			prev = curr
			live++
			retainedWeak++

		case colorWhite:
			if prev == nil {
				h.head = next
			} else {
				prev.setNext(next)
			}

			if curr.isLive() {
				h.drop(curr)
			}

			freed++

		case colorGrey:
			gcerrors.GreyInSweep(uintptr(unsafe.Pointer(curr)))
		}

		cursor = next
	}

	atomic.AddInt64(&h.stats.Cycles, 1)
	atomic.AddInt64(&h.stats.FreedWhite, freed)
	atomic.StoreInt64(&h.stats.RetainedWeak, retainedWeak)
	atomic.StoreInt64(&h.stats.LiveAfterSweep, live)
}

// Collect is the common-case convenience: mark from root, then sweep,
// with no finalization step in between. Use Mark/Finalize/Sweep
// separately when weak-handle resurrection is needed.
func (h *Heap) Collect(root Managed) {
	h.Mark(root)
	h.Sweep()
}

// Close runs every remaining live allocation's drop hook exactly once,
// iteratively (a plain loop over the list, never recursive — Go's lack
// of ownership-driven destructor chains means the recursive-teardown
// hazard the design notes call out for the original runtime largely
// doesn't arise here, but the loop is written explicitly rather than
// leaning on that). Intended for tearing down a Heap that is being
// discarded outright, independent of any collection cycle.
func (h *Heap) Close() {
	release := h.enter("Close")
	defer release()

	for cursor := h.head; cursor != nil; cursor = cursor.next() {
		if cursor.isLive() {
			h.drop(cursor)
		}
	}

	h.head = nil
	h.grey = nil
}

// drop runs curr's vtable drop hook and marks it no longer live. Every
// caller is expected to have already checked isLive(); calling drop on an
// allocation that is not live is the double-drop bug gcerrors.DoubleFree
// exists to report.
func (h *Heap) drop(curr *AllocationHeader) {
	if !curr.isLive() {
		gcerrors.DoubleFree(uintptr(unsafe.Pointer(curr)), "drop")
		return
	}

	curr.vtable().drop(curr)
	curr.setLive(false)
}

// Stats returns a point-in-time snapshot of the heap's counters.
func (h *Heap) Stats() Stats {
	return Stats{
		TotalAllocations: atomic.LoadInt64(&h.stats.TotalAllocations),
		Cycles:           atomic.LoadInt64(&h.stats.Cycles),
		FreedWhite:       atomic.LoadInt64(&h.stats.FreedWhite),
		RetainedWeak:     atomic.LoadInt64(&h.stats.RetainedWeak),
		LiveAfterSweep:   atomic.LoadInt64(&h.stats.LiveAfterSweep),
	}
}

func asError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
