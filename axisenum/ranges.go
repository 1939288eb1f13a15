package axisenum

import "github.com/bobuhiro11/memsysexplorer/paramtypes"

// Ranges holds every axis range/vocabulary named in spec.md §3.1's "Search
// ranges" and "Enum axes", defaulted by paramdoc and then narrowed by the
// CACTI-assumption shortcut and any Force* keys (spec.md §4.1).
type Ranges struct {
	NumRowMat    Range
	NumColumnMat Range

	NumActiveMatPerRow    Range
	NumActiveMatPerColumn Range

	NumRowSubarray    Range
	NumColumnSubarray Range

	NumActiveSubarrayPerRow    Range
	NumActiveSubarrayPerColumn Range

	MuxSenseAmp   Range
	MuxOutputLev1 Range
	MuxOutputLev2 Range

	NumRowPerSet Range

	LocalWireTypes       []paramtypes.WireType
	LocalRepeaterClasses []paramtypes.RepeaterClass
	LocalLowSwing        []bool

	GlobalWireTypes       []paramtypes.WireType
	GlobalRepeaterClasses []paramtypes.RepeaterClass
	GlobalLowSwing        []bool

	BufferOptLevels []paramtypes.BufferOptLevel
	RoutingModes    []paramtypes.RoutingMode
	SensingModes    []paramtypes.AccessType
}

// Default returns the default search Ranges: the mat and mux axes span
// [1,4], the subarray tiling and active-subarray axes span [1,2], and
// NumRowPerSet is fixed at 1. The enum axes span a subset of their
// vocabularies: local aggressive/conservative and global
// aggressive/conservative wire types, no repeater or fully-optimized
// repeaters, low-swing off, the balanced buffer level, both routing modes,
// and voltage sensing. paramdoc
// narrows this per the document's explicit search-range keys before any
// shortcut or force key is applied.
func Default() Ranges {
	wide := Range{Min: 1, Max: 4}

	return Ranges{
		NumRowMat:    wide,
		NumColumnMat: wide,

		NumActiveMatPerRow:    wide,
		NumActiveMatPerColumn: wide,

		NumRowSubarray:    Range{Min: 1, Max: 2},
		NumColumnSubarray: Range{Min: 1, Max: 2},

		NumActiveSubarrayPerRow:    Range{Min: 1, Max: 2},
		NumActiveSubarrayPerColumn: Range{Min: 1, Max: 2},

		MuxSenseAmp:   wide,
		MuxOutputLev1: wide,
		MuxOutputLev2: wide,

		NumRowPerSet: Range{Min: 1, Max: 1},

		LocalWireTypes: []paramtypes.WireType{
			paramtypes.LocalAggressive, paramtypes.LocalConservative,
		},
		LocalRepeaterClasses: []paramtypes.RepeaterClass{
			paramtypes.RepeaterNone, paramtypes.RepeaterFullyOptimized,
		},
		LocalLowSwing: []bool{false},

		GlobalWireTypes: []paramtypes.WireType{
			paramtypes.GlobalAggressive, paramtypes.GlobalConservative,
		},
		GlobalRepeaterClasses: []paramtypes.RepeaterClass{
			paramtypes.RepeaterNone, paramtypes.RepeaterFullyOptimized,
		},
		GlobalLowSwing: []bool{false},

		BufferOptLevels: []paramtypes.BufferOptLevel{paramtypes.Balanced},
		RoutingModes:    []paramtypes.RoutingMode{paramtypes.HTree, paramtypes.NonHTree},
		SensingModes:    []paramtypes.AccessType{paramtypes.VoltageSense},
	}
}

// ApplyCactiAssumption narrows the active-mat and subarray axes to the
// fixed vector CACTI itself defaults to (spec.md §4.1): active-mat
// columns locked to cols (the caller's word-width-derived column count),
// and every other named axis in the fixed vector locked to the literal
// values {1,2,2,2,2,2,2} CACTI uses.
//
// The eight-element vector spec.md quotes, `{cols, 1, 2, 2, 2, 2, 2, 2}`,
// is not itself positionally documented against named axes; this maps it,
// in order, onto NumActiveMatPerColumn, NumActiveMatPerRow,
// NumRowSubarray, NumColumnSubarray, NumActiveSubarrayPerRow,
// NumActiveSubarrayPerColumn, MuxOutputLev1, MuxOutputLev2 — the same
// order those axes are first introduced in spec.md §3.1/§4.4.
func (r *Ranges) ApplyCactiAssumption(cols int) {
	r.NumActiveMatPerColumn = Range{cols, cols}
	r.NumActiveMatPerRow = Range{1, 1}
	r.NumRowSubarray = Range{2, 2}
	r.NumColumnSubarray = Range{2, 2}
	r.NumActiveSubarrayPerRow = Range{2, 2}
	r.NumActiveSubarrayPerColumn = Range{2, 2}
	r.MuxOutputLev1 = Range{2, 2}
	r.MuxOutputLev2 = Range{2, 2}
}

// ForceKeys collapses min and max of the named axes to the given single
// value (spec.md §4.1: "Forced-configuration keys ... collapse min and
// max of the named axes to the given single value"). Zero fields are
// left untouched (spec.md §9 supplement: force keys apply only to the
// axes they explicitly name).
type ForceKeys struct {
	BankTotalRows    int
	BankTotalColumns int
	BankActiveRows   int
	BankActiveColumns int

	MatTotalRows    int
	MatTotalColumns int
	MatActiveRows   int
	MatActiveColumns int

	MuxSenseAmp   int
	MuxOutputLev1 int
	MuxOutputLev2 int
}

// Apply collapses every non-zero field of f onto r's matching axis,
// always winning over both the defaults and the CACTI shortcut (spec.md
// §4.1's stated evaluation order: "defaults → CACTI shortcut → explicit
// force-keys (forces always win)").
func (f ForceKeys) Apply(r *Ranges) {
	collapse := func(v int, dst *Range) {
		if v > 0 {
			*dst = Range{v, v}
		}
	}

	collapse(f.BankTotalRows, &r.NumRowMat)
	collapse(f.BankTotalColumns, &r.NumColumnMat)
	collapse(f.BankActiveRows, &r.NumActiveMatPerRow)
	collapse(f.BankActiveColumns, &r.NumActiveMatPerColumn)

	collapse(f.MatTotalRows, &r.NumRowSubarray)
	collapse(f.MatTotalColumns, &r.NumColumnSubarray)
	collapse(f.MatActiveRows, &r.NumActiveSubarrayPerRow)
	collapse(f.MatActiveColumns, &r.NumActiveSubarrayPerColumn)

	collapse(f.MuxSenseAmp, &r.MuxSenseAmp)
	collapse(f.MuxOutputLev1, &r.MuxOutputLev1)
	collapse(f.MuxOutputLev2, &r.MuxOutputLev2)
}
