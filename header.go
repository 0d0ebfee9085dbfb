package tricolor

import (
	"unsafe"

	"github.com/orizon-lang/tricolor/internal/tag"
)

// tagAlign is the alignment every vtableAnchor is forced to (§4.2): with
// four tag bits in use (0x3 color, 0x4 needs_trace, 0x8 is_live) the
// anchor pointer stored in the tagged word must be a multiple of 16.
const tagAlign = 16

const (
	colorMask    uintptr = 0x3
	traceMask    uintptr = 0x4
	liveMask     uintptr = 0x8
	allFlagsMask uintptr = colorMask | traceMask | liveMask
)

func init() {
	tag.MustFit(allFlagsMask, tagAlign)
}

// AllocationHeader is the fixed-layout metadata every allocation carries
// ahead of its payload (spec.md §3, §4.2). The vtable pointer and the
// color/needs_trace/is_live flags share one tagged word; next is a plain,
// untagged pointer into the rest of the global allocation list.
type AllocationHeader struct {
	nextAlloc    *AllocationHeader
	taggedVTable uintptr
}

func newHeader(anchor *vtableAnchor) AllocationHeader {
	return AllocationHeader{taggedVTable: uintptr(unsafe.Pointer(anchor))}
}

func (h *AllocationHeader) next() *AllocationHeader { return h.nextAlloc }

func (h *AllocationHeader) setNext(n *AllocationHeader) { h.nextAlloc = n }

// vtable resolves the header's tagged word to the anchor it points at,
// then follows the anchor's recorded address to the real, GC-scanned
// managedVTable holding the actual drop/trace closures (see vtable.go).
func (h *AllocationHeader) vtable() *managedVTable {
	anchor := (*vtableAnchor)(unsafe.Pointer(tag.Untag(h.taggedVTable, tagAlign)))
	return (*managedVTable)(unsafe.Pointer(anchor.vtable))
}

func (h *AllocationHeader) color() color {
	return color(tag.Get(h.taggedVTable, colorMask))
}

func (h *AllocationHeader) setColor(c color) {
	h.taggedVTable = tag.Set(h.taggedVTable, colorMask, uintptr(c))
}

func (h *AllocationHeader) needsTrace() bool {
	return tag.Get(h.taggedVTable, traceMask) != 0
}

func (h *AllocationHeader) setNeedsTrace(v bool) {
	h.taggedVTable = tag.SetBool(h.taggedVTable, traceMask, v)
}

// isLive reports whether the payload has not yet been dropped (I4).
func (h *AllocationHeader) isLive() bool {
	return tag.Get(h.taggedVTable, liveMask) != 0
}

func (h *AllocationHeader) setLive(v bool) {
	h.taggedVTable = tag.SetBool(h.taggedVTable, liveMask, v)
}
