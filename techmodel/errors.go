package techmodel

import "errors"

// Sentinel errors in the teacher's idiom (gokvm kvm/error.go): one
// package-level var per distinguishable failure, wrapped with context at
// the call site rather than stringly-typed.
var (
	// ErrUnsupportedNode indicates a process node with no scaling data.
	ErrUnsupportedNode = errors.New("unsupported process node")

	// ErrZeroLeakage indicates a leakage-current derivation hit zero in
	// the denominator; callers must fall back to the invalid sentinel
	// (spec.md §7).
	ErrZeroLeakage = errors.New("zero leakage current in derivation")
)
