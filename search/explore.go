package search

import (
	"fmt"

	"github.com/bobuhiro11/memsysexplorer/arraymodel"
	"github.com/bobuhiro11/memsysexplorer/axisenum"
	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/paramdoc"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

// localWireLengthM and globalWireLengthM are representative wire spans
// used to evaluate the reported local/global Wire instances: local wire
// spans one subarray's bitline-to-mux hop, global wire spans the bank's
// routing distance, scaled by how many mats the access must reach.
const localWireLengthM = 50e-6

func globalWireLengthM(totalMats int) float64 {
	return 200e-6 * float64(maxInt(totalMats, 1))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// Explore runs the enumerator of spec.md §4.4 over p.Ranges, evaluating
// every admissible design point through arraymodel and updating the
// incumbent per spec.md §4.5. For OptimizationTarget == FullExploration
// no incumbent is tracked; every admissible candidate is returned instead
// (spec.md §4.5.4).
//
// kind selects whether this run builds a data array or a tag array
// (spec.md §4.6); capacityBits/wordWidthBits are the already-resolved
// per-kind capacity and word width (tag runs use tag-bit width and the
// set count, not the cache line size).
func Explore(ctx techmodel.Context, c *cell.Cell, p paramdoc.InputParameter,
	kind paramtypes.MemoryKind, capacityBits, wordWidthBits int,
) (*Result, []Result, error) {
	ranges := p.Ranges
	spec := axisenum.Spec{CapacityBits: capacityBits, WordWidthBits: wordWidthBits}
	fullExploration := p.OptimizationTarget == paramtypes.FullExploration

	var incumbent *Result

	var all []Result

	violations := map[string]int{}

	// Pruning (spec.md §5/§9 expansion): a candidate's area and leakage can
	// only grow with its tile counts (arraymodel scales both multiplicatively
	// by totalMats*totalSubarrays), so the single-tile point's area/leakage
	// is a sound per-tile lower bound for any larger tiling. Latency is left
	// unbounded (unitLatencyS=0) since no cheap per-mux-level unit is derived
	// here — see DESIGN.md.
	pruneLimits := axisenum.Limits{AreaM2: p.Constraints.AreaM2, LeakageW: p.Constraints.LeakageW}

	var unitAreaM2, unitLeakageW float64

	if p.EnablePruning {
		unit := evaluate(ctx, c, axisenum.DesignPoint{
			NumRowMat: 1, NumColumnMat: 1, NumActiveMatPerRow: 1, NumActiveMatPerColumn: 1,
			NumRowSubarray: 1, NumColumnSubarray: 1, NumActiveSubarrayPerRow: 1, NumActiveSubarrayPerColumn: 1,
			MuxSenseAmp: 1, MuxOutputLev1: 1, MuxOutputLev2: 1,
			SubarrayNumRow: 1, SubarrayNumColumn: 1,
		}, kind, wordWidthBits, p.OptimizationTarget)

		unitAreaM2 = unit.AreaM2()
		unitLeakageW = unit.LeakageW()
	}

	axisenum.Enumerate(ranges, spec, func(pt axisenum.DesignPoint) bool {
		if p.EnablePruning {
			bound := axisenum.LowerBound(pt, unitAreaM2, unitLeakageW, 0)
			if axisenum.ShouldPrune(bound, pruneLimits) {
				violations["pruned (area/leakage lower bound)"]++
				return true
			}
		}

		res := evaluate(ctx, c, pt, kind, wordWidthBits, p.OptimizationTarget)

		if !admissible(res, p.Constraints) {
			violations[violatedClass(res, p.Constraints)]++
			return true
		}

		if fullExploration {
			all = append(all, res)
			return true
		}

		if incumbent == nil || res.Objective < incumbent.Objective {
			clone := res.Clone()
			incumbent = &clone
		}

		return true
	})

	if fullExploration {
		return nil, all, nil
	}

	if incumbent == nil {
		return nil, nil, fmt.Errorf("%w: most-violated constraint class %q", ErrInfeasible, mostViolated(violations))
	}

	return incumbent, nil, nil
}

func evaluate(ctx techmodel.Context, c *cell.Cell, pt axisenum.DesignPoint,
	kind paramtypes.MemoryKind, wordWidthBits int, target paramtypes.OptimizationTarget,
) Result {
	isTag := kind == paramtypes.TagArray

	tagBits := 0
	if isTag {
		tagBits = wordWidthBits
	}

	totalMats := pt.NumRowMat * pt.NumColumnMat

	localWireConfig := wire.Config{
		Type: pt.LocalWire, Repeater: pt.LocalRep, LowSwing: pt.LocalSwing,
		LengthM: localWireLengthM, FeatureSizeM: ctx.TechR.FeatureSizeM,
	}

	bankPoint := arraymodel.BankPoint{
		NumRowMat: pt.NumRowMat, NumColumnMat: pt.NumColumnMat,
		NumActiveMatPerRow: pt.NumActiveMatPerRow, NumActiveMatPerColumn: pt.NumActiveMatPerColumn,
		Mat: arraymodel.MatPoint{
			NumRowSubarray: pt.NumRowSubarray, NumColumnSubarray: pt.NumColumnSubarray,
			NumActiveSubarrayPerRow: pt.NumActiveSubarrayPerRow, NumActiveSubarrayPerColumn: pt.NumActiveSubarrayPerColumn,
			Subarray: arraymodel.SubarrayPoint{
				NumRow: pt.SubarrayNumRow, NumColumn: pt.SubarrayNumColumn,
				MuxSenseAmp: pt.MuxSenseAmp, MuxOutputLev1: pt.MuxOutputLev1, MuxOutputLev2: pt.MuxOutputLev2,
				WordWidthBits: wordWidthBits,
				IsCache:       true,
				IsTagArray:    isTag,
			},
			LocalWire: localWireConfig,
		},
		Routing: wire.Config{
			Type: pt.GlobalWire, Repeater: pt.GlobalRep, LowSwing: pt.GlobalSwing,
			LengthM: globalWireLengthM(totalMats), FeatureSizeM: ctx.TechR.FeatureSizeM,
		},
		TagBits: tagBits,
	}

	var routing arraymodel.RoutingModel
	if pt.Routing == paramtypes.NonHTree {
		routing = arraymodel.NewNonHTreeRouting()
	} else {
		routing = arraymodel.NewHTreeRouting()
	}

	bank := arraymodel.ComputeBank(ctx, c, bankPoint, routing)

	localWire, _ := wire.Evaluate(localWireConfig, ctx.TechR, 0)

	globalWire, _ := wire.Evaluate(bankPoint.Routing, ctx.TechR, 0)

	res := Result{
		Kind: kind, Point: pt, Bank: bank,
		LocalWire: localWire, GlobalWire: globalWire,
	}
	res.Objective = objective(res, target)

	return res
}

func mostViolated(counts map[string]int) string {
	best := "unknown"
	bestCount := 0

	for class, n := range counts {
		if n > bestCount {
			best, bestCount = class, n
		}
	}

	return best
}
