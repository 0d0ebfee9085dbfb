// Package tricolor implements the core of an incremental tri-color
// mark-and-sweep garbage collector with first-class weak references,
// meant to be embedded in a host program (an interpreter or scripting
// runtime) that can describe its own root object's reachability graph.
//
// A host never touches a managed object directly: it receives a Gc[T] or
// GcWeak[T] handle, obtained only by allocating through a Mutation
// capability inside Heap.Mutate, and reachability is discovered by the
// engine calling the host's Managed.Trace method starting from a root
// supplied to Heap.Collect.
package tricolor

// Managed is implemented by every type a Heap can allocate and trace.
//
// NeedsTrace MUST be conservatively true if T transitively owns any
// strong or weak handle; returning false is purely a performance hint
// that lets the engine skip the grey worklist for leaf payloads (§4.4,
// §8 scenario 6). Getting this wrong in the false direction causes the
// collector to free a reachable object.
type Managed interface {
	// NeedsTrace reports whether values of this type may contain
	// outgoing Gc/GcWeak handles that Trace must visit.
	NeedsTrace() bool

	// Trace calls Trace(visitor, h) for every strong outgoing handle and
	// TraceWeak(visitor, w) for every weak one reachable from this value.
	// Implementations that hold no handles at all may leave this empty,
	// but must still report NeedsTrace() == false in that case so the
	// engine never bothers calling it.
	Trace(visitor *Visitor)
}
