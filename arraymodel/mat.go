package arraymodel

import (
	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

// MatPoint tiles a grid of NumRowSubarray x NumColumnSubarray identical
// Subarrays, of which only NumActiveSubarrayPerRow x
// NumActiveSubarrayPerColumn are driven on a given access (spec.md §4.4:
// "active-subarray counts" axis, each restricted to {1,2}).
type MatPoint struct {
	NumRowSubarray    int
	NumColumnSubarray int

	NumActiveSubarrayPerRow    int
	NumActiveSubarrayPerColumn int

	Subarray SubarrayPoint

	// LocalWire carries an active subarray's word output to the mat's
	// column decoder/mux (spec.md §4.4's local wire/repeater/low-swing
	// axes — distinct from BankPoint.Routing, which covers mat-to-mat
	// global routing).
	LocalWire wire.Config
}

// Mat is the evaluated cost of one MatPoint: the single representative
// Subarray result plus the mat-level column decoder (cache only) and the
// totals after accounting for how many subarrays are actually active.
type Mat struct {
	Point    MatPoint
	Subarray Subarray
	Stages   []Stage
	Total    Stage
}

// ComputeMat evaluates a mat as NumRowSubarray*NumColumnSubarray identical
// subarray tiles. Only the active subset contributes dynamic read/write
// energy and latency (they activate in parallel, so latency does not
// scale with the active count); every tile, active or not, leaks and
// contributes area (spec.md §4.3).
func ComputeMat(ctx techmodel.Context, c *cell.Cell, p MatPoint) Mat {
	sub := ComputeSubarray(ctx, c, p.Subarray)

	totalTiles := p.NumRowSubarray * p.NumColumnSubarray
	activeTiles := p.NumActiveSubarrayPerRow * p.NumActiveSubarrayPerColumn
	if activeTiles < 1 {
		activeTiles = 1
	}

	if activeTiles > totalTiles {
		activeTiles = totalTiles
	}

	scaled := Stage{
		Name:          "subarray_active",
		ReadLatencyS:  sub.Total.ReadLatencyS,
		WriteLatencyS: sub.Total.WriteLatencyS,
		ReadEnergyJ:   sub.Total.ReadEnergyJ * float64(activeTiles),
		WriteEnergyJ:  sub.Total.WriteEnergyJ * float64(activeTiles),
		LeakageW:      sub.Total.LeakageW * float64(totalTiles),
		AreaM2:        sub.Total.AreaM2 * float64(totalTiles),
	}

	stages := []Stage{scaled}

	loadCapF := float64(maxInt(p.Subarray.WordWidthBits, 1)) * ctx.TechR.JunctionCap
	wireLatency, wireEnergy, wireLeakage := localWireLatencyEnergy(ctx, p.LocalWire, loadCapF)

	stages = append(stages, Stage{
		Name:          "local_wire",
		ReadLatencyS:  wireLatency,
		WriteLatencyS: wireLatency,
		ReadEnergyJ:   wireEnergy * float64(activeTiles),
		WriteEnergyJ:  wireEnergy * float64(activeTiles),
		LeakageW:      wireLeakage * float64(totalTiles),
	})

	if p.Subarray.IsCache {
		colDecoder := columnDecoderStage(ctx, p.Subarray.NumColumn*totalTiles, maxInt(p.Subarray.WordWidthBits, 1))
		stages = append(stages, colDecoder)
	}

	total := sumStages("mat", stages...)

	return Mat{Point: p, Subarray: sub, Stages: stages, Total: total}
}
