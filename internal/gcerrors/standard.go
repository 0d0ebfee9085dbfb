// Package gcerrors provides standardized, structured fatal errors for the
// collector core. Every invariant violation the engine can detect in itself
// (a grey object surviving sweep, a live object already dropped, an OOM from
// the platform allocator) is reported through the same shape instead of a
// bare panic string, so a caller recovering from a panic can branch on
// Category without parsing text.
package gcerrors

import (
	"fmt"
	"runtime"
)

// Category classifies why the collector gave up.
type Category string

const (
	// CategoryInvariant marks an impossible-state assertion (a bug in the
	// collector itself) or a broken usage contract the host can trigger:
	// a handle used with another heap's capability (HeapMismatch) or a
	// reentrant Heap call (Reentrancy).
	CategoryInvariant Category = "INVARIANT"
	// CategoryMemory marks a null/dangling pointer or use-after-free class
	// of bug detected defensively before it could corrupt memory.
	CategoryMemory Category = "MEMORY"
	// CategorySystem marks a failure from beneath the collector, such as
	// the platform allocator refusing a request.
	CategorySystem Category = "SYSTEM"
)

// StandardError is a consistent, inspectable fatal-error shape.
type StandardError struct {
	Category Category
	Code     string
	Message  string
	Context  map[string]interface{}
	Caller   string
}

// Error implements the error interface.
func (e *StandardError) Error() string {
	return fmt.Sprintf("[%s:%s] %s (caller: %s)", e.Category, e.Code, e.Message, e.Caller)
}

// New creates a standardized error, recording its caller as the Caller
// field — same convention as Orizon's internal/errors.NewStandardError.
func New(category Category, code, message string, context map[string]interface{}) *StandardError {
	pc, _, _, ok := runtime.Caller(1)
	caller := "unknown"

	if ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	return &StandardError{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  context,
		Caller:   caller,
	}
}

// Invariant builds a CategoryInvariant error and panics with it. Every call
// site names a concrete impossible state; there is no generic "something
// went wrong" variant.
func Invariant(code, message string, context map[string]interface{}) {
	panic(New(CategoryInvariant, code, message, context))
}

// GreyInSweep reports an allocation observed with color Grey during sweep,
// which §4.4 of the collector's design forbids: grey-ness only exists while
// an allocation is logically on the worklist, never as a color left behind
// in the list a sweep walks.
func GreyInSweep(ptr uintptr) {
	Invariant("GREY_IN_SWEEP", "allocation carries color Grey outside the worklist",
		map[string]interface{}{"ptr": ptr})
}

// DoubleFree reports an attempt to deallocate a record that was already
// freed, or to drop a payload that was already dropped.
func DoubleFree(ptr uintptr, op string) {
	Invariant("DOUBLE_FREE", fmt.Sprintf("%s on an already-freed allocation", op),
		map[string]interface{}{"ptr": ptr, "operation": op})
}

// HeapMismatch reports a handle or capability used against a *Heap other
// than the one it was minted from — the dynamic half of the brand-lifetime
// discipline described in SPEC_FULL.md §4.4.
func HeapMismatch(op string) {
	Invariant("HEAP_MISMATCH", fmt.Sprintf("%s used with a handle from a different heap", op),
		map[string]interface{}{"operation": op})
}

// Reentrancy reports a public Heap method being invoked while another one
// is already in progress, which would violate the single-threaded,
// non-reentrant contract in spec.md §5.
func Reentrancy(op string) {
	Invariant("REENTRANT_CALL", fmt.Sprintf("%s invoked while the heap was already busy", op),
		map[string]interface{}{"operation": op})
}

// AllocatorExhausted wraps a platform allocation failure. It is fatal: the
// collector does not retry (spec.md §5, §7).
func AllocatorExhausted(size uintptr, cause error) *StandardError {
	return New(CategorySystem, "ALLOCATOR_EXHAUSTED", "platform allocator failed to satisfy allocation",
		map[string]interface{}{"size": size, "cause": cause})
}
