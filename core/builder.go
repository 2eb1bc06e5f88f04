package core

// Builder is the contract every request builder implements: accumulate
// configuration through chained setters, then Build once to validate the
// accumulated state and materialize the wire-ready request.
//
// Build is pure. It performs no I/O, emits no logs, and is deterministic:
// the same setter chain always yields the same request. Validation runs
// only at Build time, so setters may be called in any order without
// premature failure. The first violated constraint is reported; constraints
// are checked in a fixed order (required fields, numeric ranges, structural
// checks, collection non-emptiness).
//
// A successful Build returns a request that needs no further client-side
// validation. A failed Build returns an error unwrapping to
// ErrInvalidRequest; the builder state is untouched and the caller may
// adjust the offending field and build again.
type Builder[T any] interface {
	Build() (T, error)
}
