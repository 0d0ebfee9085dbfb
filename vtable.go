package tricolor

import (
	"reflect"
	"sync"
	"unsafe"
)

// Dropper is an optional hook a Managed payload may implement to run
// cleanup (closing a file descriptor, releasing an external handle) the
// moment the engine determines it is unreachable, or when Heap.Close tears
// the heap down. Go has no destructor equivalent to Rust's Drop, so this is
// the nearest analogue: called once, synchronously, from Sweep or Close,
// before the payload's Go-level references are cleared.
type Dropper interface {
	Drop()
}

// managedVTable holds the per-type operations an erased AllocationHeader
// needs to manipulate its own payload: how big the whole record is, how
// to trace it, and how to drop it. One instance is built per concrete
// Managed type T and cached forever (§4.2).
//
// managedVTable is always allocated as an ordinary Go value (via &managedVTable{...}),
// never inside the force-aligned byte slot described below: its drop/trace
// fields are funcvals, and a funcval is itself a heap pointer the runtime
// GC must be able to find and keep alive. A noscan allocation (a plain
// []byte) never gets scanned for outgoing pointers, so a managedVTable
// placed there would have its drop/trace closures invisible to the
// collector — nothing would keep them alive, and a later call through a
// stale header would dereference already-freed memory. See vtableAnchor
// for how the alignment trick is kept without that hazard.
type managedVTable struct {
	size  uintptr
	align uintptr
	drop  func(h *AllocationHeader)
	trace func(h *AllocationHeader, v *Visitor)
}

// vtableAnchor is the thing a header's tagged word actually points to. It
// holds nothing but a uintptr recording the address of the real,
// normally-allocated managedVTable, so it is safe to place inside a
// force-aligned, noscan byte slot: there is no pointer field here for the
// GC to need to see, only an address value it is never asked to follow.
type vtableAnchor struct {
	vtable uintptr
}

// vtableEntry is what vtableRegistry actually stores: the anchor (what
// headers point to) alongside an ordinary, scanned pointer to the real
// vtable, which is what actually keeps the vtable's drop/trace closures
// reachable for the runtime GC. Without this second field, the only
// reference to the real vtable would be the uintptr inside the anchor,
// which the GC does not trace.
type vtableEntry struct {
	anchor *vtableAnchor
	real   *managedVTable
}

var vtableRegistry sync.Map // reflect.Type -> *vtableEntry

// vtableFor returns the singleton vtable anchor for T, building the
// vtable on first use. The returned pointer is never freed: it is
// force-aligned to tagAlign bytes (so it can live inside a header's
// tagged word) and kept alive for the lifetime of the process by
// vtableRegistry holding onto both it and the real vtable it points to.
func vtableFor[T Managed]() *vtableAnchor {
	key := reflect.TypeOf((*T)(nil)).Elem()

	if v, ok := vtableRegistry.Load(key); ok {
		return v.(*vtableEntry).anchor
	}

	entry := buildVTableEntry[T]()
	actual, _ := vtableRegistry.LoadOrStore(key, entry)
	return actual.(*vtableEntry).anchor
}

func buildVTableEntry[T Managed]() *vtableEntry {
	real := &managedVTable{
		size:  unsafe.Sizeof(allocationInner[T]{}),
		align: tagAlign,
	}

	real.drop = func(h *AllocationHeader) {
		inner := innerFromHeader[T](h)
		if d, ok := any(inner.value).(Dropper); ok {
			d.Drop()
		}
		var zero T
		inner.value = zero
	}

	real.trace = func(h *AllocationHeader, v *Visitor) {
		inner := innerFromHeader[T](h)
		inner.value.Trace(v)
	}

	anchor := newAlignedAnchor()
	anchor.vtable = uintptr(unsafe.Pointer(real))

	return &vtableEntry{anchor: anchor, real: real}
}

// newAlignedAnchor over-allocates a byte slice and rounds its address up
// to tagAlign, then never frees it. Go has no portable alignment
// directive for an arbitrary struct, so this is the idiomatic escape
// hatch (mirrors the size-class rounding a runtime allocator already
// does internally). The returned pointer is an interior pointer into the
// backing array; Go's GC keeps the whole array alive for as long as any
// interior pointer into it is reachable, so holding onto the returned
// *vtableAnchor (as vtableRegistry does, forever) is sufficient — no
// separate reference to the backing slice needs to be retained. Unlike
// managedVTable, vtableAnchor holds only a uintptr, so placing it in this
// noscan region never hides a live pointer from the GC.
func newAlignedAnchor() *vtableAnchor {
	raw := make([]byte, unsafe.Sizeof(vtableAnchor{})+tagAlign)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	aligned := (addr + tagAlign - 1) &^ (tagAlign - 1)
	return (*vtableAnchor)(unsafe.Pointer(aligned))
}
