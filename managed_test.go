package tricolor

// leafAlias names the same type as *leaf; used to exercise CastGc's
// same-layout reinterpretation without contriving an unrelated type.
type leafAlias = *leaf

// leaf is a Managed payload with no outgoing handles: NeedsTrace is
// false, so the engine should never call Trace on it.
type leaf struct {
	id      int
	dropped *int // incremented by Drop, nil if the test doesn't care
}

func (l *leaf) NeedsTrace() bool { return false }
func (l *leaf) Trace(*Visitor)   { panic("Trace called on a leaf despite NeedsTrace()==false") }
func (l *leaf) Drop() {
	if l.dropped != nil {
		*l.dropped++
	}
}

// pair holds one strong and one weak outgoing handle, both to leaf.
type pair struct {
	strong Gc[*leaf]
	weak   GcWeak[*leaf]
}

func (p *pair) NeedsTrace() bool { return true }
func (p *pair) Trace(v *Visitor) {
	Trace(v, p.strong)
	TraceWeak(v, p.weak)
}

// stubRoot is a Managed root that traces a fixed, explicit list of
// strong handles — standing in for whatever graph-shaped root object a
// host would actually supply.
type stubRoot struct {
	strong []Gc[*leaf]
	pairs  []Gc[*pair]
}

func (r *stubRoot) NeedsTrace() bool { return true }
func (r *stubRoot) Trace(v *Visitor) {
	for _, g := range r.strong {
		Trace(v, g)
	}
	for _, g := range r.pairs {
		Trace(v, g)
	}
}

// node is a Managed payload that itself needs tracing and holds a strong
// handle to another node, used to build a multi-generation strong chain
// (root -> P -> Q) deep enough to push a second generation onto the grey
// worklist while the first is still being traced.
type node struct {
	id      int
	dropped *int
	next    Gc[*node]
	hasNext bool
}

func (n *node) NeedsTrace() bool { return true }
func (n *node) Trace(v *Visitor) {
	if n.hasNext {
		Trace(v, n.next)
	}
}
func (n *node) Drop() {
	if n.dropped != nil {
		*n.dropped++
	}
}

// chainRoot traces a fixed list of node handles.
type chainRoot struct {
	nodes []Gc[*node]
}

func (r *chainRoot) NeedsTrace() bool { return true }
func (r *chainRoot) Trace(v *Visitor) {
	for _, g := range r.nodes {
		Trace(v, g)
	}
}

// explodingContainer panics from inside its own Trace method while
// panics is true, used to test that a trace aborting mid-call (not in
// the root's own Trace, but in a grey-worklist item's) leaves the item
// on the worklist rather than losing it.
type explodingContainer struct {
	panics *bool
}

func (e *explodingContainer) NeedsTrace() bool { return true }
func (e *explodingContainer) Trace(*Visitor) {
	if *e.panics {
		panic("simulated trace failure")
	}
}

// containerRoot traces a fixed list of explodingContainer handles.
type containerRoot struct {
	containers []Gc[*explodingContainer]
}

func (r *containerRoot) NeedsTrace() bool { return true }
func (r *containerRoot) Trace(v *Visitor) {
	for _, g := range r.containers {
		Trace(v, g)
	}
}
