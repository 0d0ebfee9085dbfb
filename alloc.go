package tricolor

import "unsafe"

// allocationInner is the concrete, typed record backing every Gc[T]/
// GcWeak[T] handle for payload type T. header is always the first field,
// which is what lets an erased *AllocationHeader and a typed
// *allocationInner[T] alias the same address: Go guarantees struct field
// order, so recovering the typed record from the erased header (and vice
// versa) is a plain pointer cast, no offset arithmetic required — unlike
// the Rust original, which erases through a NonNull<AllocationInner<()>>
// and recovers the concrete type with raw offset math.
type allocationInner[T any] struct {
	header AllocationHeader
	value  T
}

func innerFromHeader[T any](h *AllocationHeader) *allocationInner[T] {
	return (*allocationInner[T])(unsafe.Pointer(h))
}

func headerFromInner[T any](inner *allocationInner[T]) *AllocationHeader {
	return &inner.header
}
