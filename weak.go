package tricolor

import (
	"unsafe"

	"github.com/orizon-lang/tricolor/internal/gcerrors"
)

// GcWeak is a weak handle: it observes an allocation without keeping it
// alive. Deliberately does not embed Gc[T] as an exported field — a weak
// handle exposes Upgrade/IsDropped/Resurrect/AsPtr, never Deref, so the
// two cannot be confused at the type level the way a plain embedding
// would allow.
type GcWeak[T any] struct {
	inner Gc[T]
}

// Upgrade produces a strong handle if the target is still live, or false
// if it has already been dropped. m must belong to the same heap the
// weak handle was derived from.
func (w GcWeak[T]) Upgrade(m *Mutation) (Gc[T], bool) {
	if m.heap != w.inner.heap {
		gcerrors.HeapMismatch("Upgrade")
	}

	if !headerFromInner(w.inner.ptr).isLive() {
		return Gc[T]{}, false
	}

	return w.inner, true
}

// IsDropped reports whether the target's payload has already been
// dropped. The header itself may remain linked (colorWhiteWeak) for one
// more cycle purely so this call, and AsPtr, stay valid to make.
func (w GcWeak[T]) IsDropped() bool {
	return !headerFromInner(w.inner.ptr).isLive()
}

// AsPtr returns a raw pointer to the payload slot, live or not.
func (w GcWeak[T]) AsPtr() unsafe.Pointer {
	return w.inner.AsPtr()
}

// WeakFromPtr reconstructs a weak handle from a pointer previously
// returned by AsPtr.
func WeakFromPtr[T any](heap *Heap, ptr unsafe.Pointer) GcWeak[T] {
	return GcWeak[T]{inner: FromPtr[T](heap, ptr)}
}

// CastGcWeak reinterprets a weak handle's payload type, same contract as
// CastGc.
func CastGcWeak[T, U any](w GcWeak[T]) GcWeak[U] {
	return GcWeak[U]{inner: CastGc[T, U](w.inner)}
}

// GcWeakPtrEq reports whether a and b refer to the same allocation.
func GcWeakPtrEq[T any](a, b GcWeak[T]) bool {
	return GcPtrEq(a.inner, b.inner)
}
