package tricolor

import (
	"testing"
	"unsafe"
)

func TestVTableForIsCachedPerType(t *testing.T) {
	a := vtableFor[*leaf]()
	b := vtableFor[*leaf]()

	if a != b {
		t.Fatal("vtableFor[*leaf]() returned two distinct instances")
	}
}

func TestVTableForDistinguishesTypes(t *testing.T) {
	leafVT := vtableFor[*leaf]()
	pairVT := vtableFor[*pair]()

	if leafVT == pairVT {
		t.Fatal("vtableFor returned the same instance for two distinct types")
	}
}

func TestVTableIsAligned(t *testing.T) {
	vt := vtableFor[*leaf]()
	addr := uintptr(unsafe.Pointer(vt))

	if addr%tagAlign != 0 {
		t.Fatalf("vtable address %#x is not %d-byte aligned", addr, tagAlign)
	}
}
