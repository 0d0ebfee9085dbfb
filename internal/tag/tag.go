// Package tag provides utilities for stealing low bits from an aligned
// pointer to store small integer flags, the way Go's own runtime hides
// flag bits inside otherwise-unused low bits of word-aligned addresses
// (guintptr/puintptr-style tricks in the scheduler) rather than carrying a
// separate flags word.
//
// The tagged value is carried as a uintptr, never as unsafe.Pointer: a
// uintptr is invisible to the garbage collector's pointer scanner, so a
// dirtied low bit can never be mistaken for part of a live reference or
// cause the collector to "fix up" the value. Untagging recovers the real
// address, which the caller converts back to unsafe.Pointer itself.
package tag

import "fmt"

// MustFit panics if mask is not a valid set of tag bits for a pointer with
// the given alignment. Go has no compile-time, post-monomorphization error
// mechanism the way Rust's const-assert trick does; this is the named
// fallback from spec.md §4.1 ("enforce ... with a fatal assertion at first
// use"). The root package checks its combined flag mask once, from
// header.go's init, so the cost is paid once per process.
func MustFit(mask, align uintptr) {
	if align == 0 || mask >= align {
		panic(fmt.Sprintf("tag: mask %#x does not fit under alignment %#x", mask, align))
	}
}

// Untag masks off the tag bits under the given alignment, returning the
// real, naturally-aligned address.
func Untag(taggedAddr uintptr, align uintptr) uintptr {
	return taggedAddr &^ (align - 1)
}

// Get reads the tag bits under mask out of a tagged address.
func Get(taggedAddr, mask uintptr) uintptr {
	return taggedAddr & mask
}

// Set replaces the tag bits under mask in taggedAddr with value, leaving
// every other bit (including the untagged address and any other tag's
// bits) untouched.
func Set(taggedAddr, mask, value uintptr) uintptr {
	return (taggedAddr &^ mask) | (value & mask)
}

// SetBool is the single-bit specialization of Set: mask must have exactly
// one bit set.
func SetBool(taggedAddr, mask uintptr, value bool) uintptr {
	if value {
		return taggedAddr | mask
	}

	return taggedAddr &^ mask
}
