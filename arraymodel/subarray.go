package arraymodel

import (
	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
)

// SubarrayPoint names one fully-resolved subarray configuration: its
// physical extent plus the three mux-level axes between the bitlines and
// the subarray's output (spec.md §3.1/§4.4).
type SubarrayPoint struct {
	NumRow    int
	NumColumn int

	MuxSenseAmp   int
	MuxOutputLev1 int
	MuxOutputLev2 int

	WordWidthBits int
	IsCache       bool
	IsTagArray    bool
}

// Subarray is the evaluated cost of one SubarrayPoint: the per-stage
// breakdown (spec.md §9: report per-stage breakdown fields) plus the
// serially-summed total.
type Subarray struct {
	Point  SubarrayPoint
	Stages []Stage
	Total  Stage
}

// ComputeSubarray evaluates a single subarray in isolation: row decode,
// bitline, sense amp, the three mux levels, precharge, and (DRAM family
// only) refresh. Column decode and tag comparison are Mat/Bank-level
// concerns layered on top (spec.md §4.3).
func ComputeSubarray(ctx techmodel.Context, c *cell.Cell, p SubarrayPoint) Subarray {
	predecoder, rowDecoder := decoderStages(ctx, p.NumRow)
	bitline := bitlineStages(ctx, c, p.NumRow)
	senseAmp := senseAmpStage(ctx, c)
	muxSA := muxStage(ctx, "mux_sense_amp", p.MuxSenseAmp)
	muxL1 := muxStage(ctx, "mux_output_lev1", p.MuxOutputLev1)
	muxL2 := muxStage(ctx, "mux_output_lev2", p.MuxOutputLev2)
	precharger := prechargerStage(ctx, p.NumColumn)
	refresh := refreshStage(ctx, c, p.NumRow, p.NumColumn)

	stages := []Stage{predecoder, rowDecoder, bitline, senseAmp, muxSA, muxL1, muxL2, precharger, refresh}
	total := sumStages("subarray", stages...)

	return Subarray{Point: p, Stages: stages, Total: total}
}
