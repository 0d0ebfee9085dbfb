package tricolor

import (
	"unsafe"

	"github.com/orizon-lang/tricolor/internal/gcerrors"
)

// Gc is a strong handle to a T allocated in some Heap. Holding one keeps
// the target reachable through the next collection cycle only if it is
// also reachable via Trace from the root passed to that cycle's Mark —
// a Gc value stashed outside anything the root graph reaches is exactly
// as dead to the collector as having no handle at all (I9).
type Gc[T any] struct {
	ptr  *allocationInner[T]
	heap *Heap
}

// Deref borrows the payload. Nominally tied to the handle's own
// lifetime; see AsRef for the long-lived variant. Go has no borrow
// checker to distinguish the two, so both return the same pointer — kept
// as separate methods to mirror the two call shapes a host written
// against the original API would expect.
func (g Gc[T]) Deref() *T {
	return &g.ptr.value
}

// AsRef borrows the payload for as long as the handle itself is valid.
func (g Gc[T]) AsRef() *T {
	return &g.ptr.value
}

// AsPtr returns a raw pointer to the payload, suitable for round-tripping
// through FromPtr or for interop with code outside this package's type
// system.
func (g Gc[T]) AsPtr() unsafe.Pointer {
	return unsafe.Pointer(&g.ptr.value)
}

// FromPtr reconstructs a handle from a pointer previously returned by
// AsPtr on a T allocated in heap. Passing a pointer obtained any other
// way is undefined.
func FromPtr[T any](heap *Heap, ptr unsafe.Pointer) Gc[T] {
	offset := unsafe.Offsetof(allocationInner[T]{}.value)
	inner := (*allocationInner[T])(unsafe.Pointer(uintptr(ptr) - offset))
	return Gc[T]{ptr: inner, heap: heap}
}

// CastGc reinterprets a handle's payload type. Both T and U must
// describe the same in-memory layout; this performs no conversion, only
// a type-level relabeling of the same address.
func CastGc[T, U any](g Gc[T]) Gc[U] {
	return Gc[U]{ptr: (*allocationInner[U])(unsafe.Pointer(g.ptr)), heap: g.heap}
}

// GcPtrEq reports whether a and b refer to the same allocation.
func GcPtrEq[T any](a, b Gc[T]) bool {
	return a.ptr == b.ptr
}

// Downgrade produces a weak handle to the same allocation. The strong
// handle it was derived from is unaffected.
func (g Gc[T]) Downgrade() GcWeak[T] {
	return GcWeak[T]{inner: g}
}

// Write replaces the payload in place. m must belong to the same heap
// the handle was allocated from.
func (g Gc[T]) Write(m *Mutation, value T) {
	if m.heap != g.heap {
		gcerrors.HeapMismatch("Write")
	}

	g.ptr.value = value
}
