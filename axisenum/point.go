// Package axisenum implements the design-space enumerator of spec.md §4.4
// (C4 of spec.md §2): the Cartesian product over the discrete tiling,
// mux-level, and wire/buffer axes, with the invalid-combination skip rules
// and the pruning policy.
//
// Adapted from gokvm's probe package (a capability-discovery loop walking
// and reporting a closed space of entries) and pci.go's packed, ordered
// `address` bitfield type, whose field-by-field ordering is reused here as
// the canonical key that makes `full_exploration` output reproducible.
package axisenum

import "github.com/bobuhiro11/memsysexplorer/paramtypes"

// Range is an inclusive integer axis range (spec.md §3.1 "search ranges").
type Range struct {
	Min int
	Max int
}

// Valid reports whether the range satisfies spec.md §3.1's invariant:
// min <= max, both positive.
func (r Range) Valid() bool {
	return r.Min >= 1 && r.Min <= r.Max
}

// PowersOfTwo returns every power of two in [Min, Max], starting from the
// smallest power of two >= Min. spec.md §4.4: "Each axis iterates in
// powers of two where applicable (the source restricts totals to powers
// of two; an implementation must do the same)".
func (r Range) PowersOfTwo() []int {
	if !r.Valid() {
		return nil
	}

	var out []int

	for v := 1; v <= r.Max; v *= 2 {
		if v >= r.Min {
			out = append(out, v)
		}
	}

	return out
}

// DesignPoint is one fully-resolved point in the design space: every axis
// named by spec.md §3.1/§4.4 bound to a concrete value. axisenum.Enumerate
// produces a stream of these; search.Evaluate consumes one at a time.
type DesignPoint struct {
	NumRowMat    int
	NumColumnMat int

	NumActiveMatPerRow    int
	NumActiveMatPerColumn int

	NumRowSubarray    int
	NumColumnSubarray int

	NumActiveSubarrayPerRow    int
	NumActiveSubarrayPerColumn int

	MuxSenseAmp   int
	MuxOutputLev1 int
	MuxOutputLev2 int

	NumRowPerSet int

	LocalWire  paramtypes.WireType
	LocalRep   paramtypes.RepeaterClass
	LocalSwing bool

	GlobalWire  paramtypes.WireType
	GlobalRep   paramtypes.RepeaterClass
	GlobalSwing bool

	BufferOpt paramtypes.BufferOptLevel
	Routing   paramtypes.RoutingMode
	Sensing   paramtypes.AccessType

	// SubarrayNumRow/SubarrayNumColumn are derived, not enumerated
	// (spec.md §4.4 lists no subarray-interior-size axis; spec.md §8's
	// capacity identity nonetheless needs both factors). See DESIGN.md:
	// resolved here as a square split of the per-subarray cell count.
	SubarrayNumRow    int
	SubarrayNumColumn int
}
