package gojinja

// TestFunc is the type every test (built-in or user-registered) must
// satisfy: spec §4.5's contract is `(subject, positional_args) -> bool`,
// grounded on the same FilterFunction shape the teacher uses for
// filters (filters.go), trimmed to the narrower test contract spec §4.5
// specifies (no keyword args, no state).
type TestFunc func(subject *Value, args []*Value) (bool, error)
