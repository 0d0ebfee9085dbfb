package tricolor

// Stats is a snapshot of a Heap's lifetime counters, returned by
// Heap.Stats. All fields are updated with atomic instructions internally,
// so a Stats value itself is an ordinary (non-atomic) struct safe to
// read and pass around once copied out, even from a goroutine other than
// the one driving the heap.
type Stats struct {
	// TotalAllocations counts every Allocate call ever made on the heap.
	TotalAllocations int64
	// Cycles counts completed Sweep calls.
	Cycles int64
	// FreedWhite is how many allocations all Sweeps so far have unlinked
	// outright (plain White, no weak observers), summed over every cycle.
	FreedWhite int64
	// RetainedWeak is how many allocations the most recent Sweep dropped
	// but kept linked, because a weak handle might still observe them
	// (WhiteWeak).
	RetainedWeak int64
	// LiveAfterSweep is how many allocations remained linked (Black or
	// WhiteWeak) after the most recent Sweep.
	LiveAfterSweep int64
}
