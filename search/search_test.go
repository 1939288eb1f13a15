package search_test

import (
	"errors"
	"testing"

	"github.com/bobuhiro11/memsysexplorer/axisenum"
	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/paramdoc"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/search"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
)

func pinnedRanges() axisenum.Ranges {
	one := axisenum.Range{Min: 1, Max: 1}

	return axisenum.Ranges{
		NumRowMat: one, NumColumnMat: one,
		NumActiveMatPerRow: one, NumActiveMatPerColumn: one,
		NumRowSubarray: one, NumColumnSubarray: one,
		NumActiveSubarrayPerRow: one, NumActiveSubarrayPerColumn: one,
		MuxSenseAmp: one, MuxOutputLev1: one, MuxOutputLev2: one,
		NumRowPerSet: one,

		LocalWireTypes:       []paramtypes.WireType{paramtypes.LocalAggressive},
		LocalRepeaterClasses: []paramtypes.RepeaterClass{paramtypes.RepeaterNone},
		LocalLowSwing:        []bool{false},

		GlobalWireTypes:       []paramtypes.WireType{paramtypes.GlobalAggressive},
		GlobalRepeaterClasses: []paramtypes.RepeaterClass{paramtypes.RepeaterNone},
		GlobalLowSwing:        []bool{false},

		BufferOptLevels: []paramtypes.BufferOptLevel{paramtypes.Balanced},
		RoutingModes:    []paramtypes.RoutingMode{paramtypes.HTree},
		SensingModes:    []paramtypes.AccessType{paramtypes.VoltageSense},
	}
}

func sramCell() *cell.Cell {
	return &cell.Cell{
		Type:              paramtypes.SRAM,
		AreaF2:            146,
		CapacitanceF:      1e-15,
		ReadVoltageV:      1.0,
		ReadPowerW:        1e-4,
		MinSenseVoltageV:  0.1,
		AccessWidthNMOSUm: 0.2,
	}
}

// TestExploreSingleCandidate pins every axis to a single value, so the
// enumerator visits exactly one DesignPoint and that point becomes the
// incumbent unconditionally.
func TestExploreSingleCandidate(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	p := paramdoc.InputParameter{
		OptimizationTarget: paramtypes.ReadLatency,
		Ranges:             pinnedRanges(),
	}

	// capacityBits/wordWidthBits chosen so the capacity identity divides
	// evenly into a perfect-square, power-of-two subarray (16 cells -> 4x4).
	incumbent, all, err := search.Explore(ctx, c, p, paramtypes.DataArray, 1024, 64)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}

	if all != nil {
		t.Fatalf("expected no full_exploration slice for a non-FullExploration target, got %d entries", len(all))
	}

	if incumbent == nil {
		t.Fatalf("expected exactly one admitted incumbent")
	}

	if incumbent.Point.SubarrayNumRow != 4 || incumbent.Point.SubarrayNumColumn != 4 {
		t.Fatalf("derived subarray interior = %dx%d, want 4x4",
			incumbent.Point.SubarrayNumRow, incumbent.Point.SubarrayNumColumn)
	}

	if incumbent.ReadLatencyS() <= 0 {
		t.Fatalf("expected positive read latency, got %v", incumbent.ReadLatencyS())
	}

	if incumbent.Bank.ReadBandwidthBps <= 0 {
		t.Fatalf("expected positive read bandwidth, got %v", incumbent.Bank.ReadBandwidthBps)
	}
}

// TestExploreFullExplorationReturnsAllCandidates exercises spec.md §4.5.4:
// FullExploration tracks no incumbent and returns every admissible point.
func TestExploreFullExplorationReturnsAllCandidates(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	ranges := pinnedRanges()
	ranges.NumRowMat = axisenum.Range{Min: 1, Max: 2}
	ranges.NumColumnMat = axisenum.Range{Min: 1, Max: 2}

	p := paramdoc.InputParameter{
		OptimizationTarget: paramtypes.FullExploration,
		Ranges:             ranges,
	}

	incumbent, all, err := search.Explore(ctx, c, p, paramtypes.DataArray, 4096, 64)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}

	if incumbent != nil {
		t.Fatalf("FullExploration must not track an incumbent")
	}

	if len(all) < 2 {
		t.Fatalf("expected at least two admissible candidates, got %d", len(all))
	}
}

// TestExploreInfeasibleConstraint exercises spec.md §4.5.1/§7: an
// unsatisfiable constraint yields ErrInfeasible naming the violated class.
func TestExploreInfeasibleConstraint(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	p := paramdoc.InputParameter{
		OptimizationTarget: paramtypes.ReadLatency,
		Ranges:             pinnedRanges(),
		Constraints:        paramdoc.Constraints{ReadLatencyS: 1e-12},
	}

	_, _, err := search.Explore(ctx, c, p, paramtypes.DataArray, 1024, 64)
	if !errors.Is(err, search.ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

// TestExploreForcedConfigurationSingleCandidatePerWireCross exercises
// spec.md §8 seed scenario 4: with the bank tiling and the sense-amp mux
// forced to single values, the remaining axes still vary, and every
// surviving combination of them is paired with the full wire/buffer
// cross-product, so the candidate count is a multiple of its size.
func TestExploreForcedConfigurationSingleCandidatePerWireCross(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	ranges := axisenum.Default()
	forced := axisenum.ForceKeys{
		BankTotalRows: 4, BankTotalColumns: 4,
		BankActiveRows: 1, BankActiveColumns: 4,
		MuxSenseAmp: 2,
	}
	forced.Apply(&ranges)

	p := paramdoc.InputParameter{
		OptimizationTarget: paramtypes.FullExploration,
		Ranges:             ranges,
	}

	expectedCross := len(ranges.LocalWireTypes) * len(ranges.LocalRepeaterClasses) * len(ranges.LocalLowSwing) *
		len(ranges.GlobalWireTypes) * len(ranges.GlobalRepeaterClasses) * len(ranges.GlobalLowSwing) *
		len(ranges.BufferOptLevels) * len(ranges.RoutingModes) * len(ranges.SensingModes)

	_, all, err := search.Explore(ctx, c, p, paramtypes.DataArray, 1024, 64)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}

	if len(all) == 0 {
		t.Fatalf("expected at least one admissible candidate")
	}

	// Every surviving subarray/mux combination contributes exactly one
	// full wire/buffer cross-product's worth of candidates.
	if len(all)%expectedCross != 0 {
		t.Fatalf("got %d candidates, want a multiple of the wire/buffer cross-product %d", len(all), expectedCross)
	}
}

// TestExplorePruningMatchesUnprunedIncumbent exercises spec.md §8's pruning
// soundness property: enabling the area/leakage lower-bound prune must not
// change which point becomes the incumbent, since the bound can only ever
// discard points a full evaluation would also have rejected.
func TestExplorePruningMatchesUnprunedIncumbent(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	ranges := pinnedRanges()
	ranges.NumRowMat = axisenum.Range{Min: 1, Max: 4}
	ranges.NumColumnMat = axisenum.Range{Min: 1, Max: 4}

	base := paramdoc.InputParameter{
		OptimizationTarget: paramtypes.ReadLatency,
		Ranges:             ranges,
	}

	unpruned, _, err := search.Explore(ctx, c, base, paramtypes.DataArray, 4096, 64)
	if err != nil {
		t.Fatalf("Explore (unpruned): %v", err)
	}

	pruned := base
	pruned.EnablePruning = true
	pruned.Constraints = paramdoc.Constraints{AreaM2: unpruned.AreaM2() * 10}

	got, _, err := search.Explore(ctx, c, pruned, paramtypes.DataArray, 4096, 64)
	if err != nil {
		t.Fatalf("Explore (pruned): %v", err)
	}

	if got.Objective != unpruned.Objective {
		t.Fatalf("pruned incumbent objective = %v, want unpruned objective %v", got.Objective, unpruned.Objective)
	}
}

// TestExploreIncumbentMatchesFullExplorationMinimum cross-checks spec.md
// §4.5's incumbent-tracking mode against §4.5.4's FullExploration mode:
// the single incumbent a non-FullExploration run reports must equal the
// minimum-objective candidate among every admissible point FullExploration
// returns for the same ranges/constraints.
func TestExploreIncumbentMatchesFullExplorationMinimum(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	ranges := pinnedRanges()
	ranges.NumRowMat = axisenum.Range{Min: 1, Max: 4}
	ranges.NumColumnMat = axisenum.Range{Min: 1, Max: 4}

	incumbentParam := paramdoc.InputParameter{OptimizationTarget: paramtypes.ReadLatency, Ranges: ranges}
	fullParam := paramdoc.InputParameter{OptimizationTarget: paramtypes.FullExploration, Ranges: ranges}

	incumbent, _, err := search.Explore(ctx, c, incumbentParam, paramtypes.DataArray, 4096, 64)
	if err != nil {
		t.Fatalf("Explore (incumbent mode): %v", err)
	}

	_, all, err := search.Explore(ctx, c, fullParam, paramtypes.DataArray, 4096, 64)
	if err != nil {
		t.Fatalf("Explore (full exploration): %v", err)
	}

	if len(all) == 0 {
		t.Fatalf("expected at least one full_exploration candidate")
	}

	min := all[0]
	for _, r := range all[1:] {
		if r.Objective < min.Objective {
			min = r
		}
	}

	if incumbent.Objective != min.Objective {
		t.Fatalf("incumbent objective = %v, want minimum full_exploration objective %v", incumbent.Objective, min.Objective)
	}
}

func pcramCell() *cell.Cell {
	return &cell.Cell{
		Type:              paramtypes.PCRAM,
		AreaF2:            40,
		CapacitanceF:      1e-15,
		ReadVoltageV:      0.5,
		ReadPowerW:        1e-5,
		MinSenseVoltageV:  0.05,
		AccessWidthNMOSUm: 0.1,
		ResetVoltageV:     2.5,
		ResetCurrentA:     2e-4,
		ResetPulseS:       50e-9,
		ResistanceAtReset: 1e6,
		SetVoltageV:       1.5,
		SetCurrentA:       1e-4,
		SetPulseS:         150e-9,
		ResistanceAtSet:   1e4,
	}
}

// TestExplorePCRAMResetSetLatencyFloors exercises spec.md §8 seed scenario
// 2: resetLatency >= the cell's reset pulse and setLatency >= its set
// pulse, for an asymmetric-write cell kind.
func TestExplorePCRAMResetSetLatencyFloors(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(32, paramtypes.HP, 350)
	c := pcramCell()

	p := paramdoc.InputParameter{
		OptimizationTarget: paramtypes.WriteEDP,
		Ranges:             pinnedRanges(),
	}

	incumbent, _, err := search.Explore(ctx, c, p, paramtypes.DataArray, 1024*1024, 64)
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}

	if incumbent.Bank.ResetLatencyS < c.ResetPulseS {
		t.Fatalf("resetLatency = %v, want >= resetPulse %v", incumbent.Bank.ResetLatencyS, c.ResetPulseS)
	}

	if incumbent.Bank.SetLatencyS < c.SetPulseS {
		t.Fatalf("setLatency = %v, want >= setPulse %v", incumbent.Bank.SetLatencyS, c.SetPulseS)
	}
}

func edramCell(ctx techmodel.Context) *cell.Cell {
	c := &cell.Cell{
		Type:                    paramtypes.EDRAM,
		CapacitanceF:            1e-15,
		AreaF2:                  60,
		AccessWidthNMOSUm:       0.2,
		DRAMStorageCapF:         2e-14,
		DRAMMaxStorageNodeDropV: 0.3,
	}
	c.ApplyPVT(ctx)

	return c
}

// TestComposeCacheAccessModes exercises spec.md §4.6's three per-mode hit
// latency formulas and the shared miss/hit energy and leakage/area sums.
func TestComposeCacheAccessModes(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	dataParam := paramdoc.InputParameter{OptimizationTarget: paramtypes.ReadLatency, Ranges: pinnedRanges()}
	tagParam := paramdoc.InputParameter{OptimizationTarget: paramtypes.ReadLatency, Ranges: pinnedRanges()}

	data, _, err := search.Explore(ctx, c, dataParam, paramtypes.DataArray, 1024, 64)
	if err != nil {
		t.Fatalf("Explore data: %v", err)
	}

	tag, _, err := search.Explore(ctx, c, tagParam, paramtypes.TagArray, 256, 16)
	if err != nil {
		t.Fatalf("Explore tag: %v", err)
	}

	fast := search.Compose(*data, *tag, c, paramtypes.FastAccess)
	if fast.HitLatencyS <= 0 {
		t.Fatalf("expected positive fast-mode hit latency")
	}

	sequential := search.Compose(*data, *tag, c, paramtypes.SequentialAccess)
	if want := tag.ReadLatencyS() + data.ReadLatencyS(); sequential.HitLatencyS != want {
		t.Fatalf("sequential hit latency = %v, want tag.read + data.read = %v", sequential.HitLatencyS, want)
	}

	if sequential.HasCacheAvailability {
		t.Fatalf("SRAM data array must not report cache availability")
	}

	if sequential.LeakageW != tag.LeakageW()+data.LeakageW() {
		t.Fatalf("leakage = %v, want sum of tag and data leakage", sequential.LeakageW)
	}

	if sequential.AreaM2 != tag.AreaM2()+data.AreaM2() {
		t.Fatalf("area = %v, want sum of tag and data area", sequential.AreaM2)
	}
}

// TestComposeEDRAMCacheAvailability exercises spec.md §8 seed scenario 3:
// for an eDRAM data array, availability = (retention -
// max(tag.refresh, data.refresh)) / retention.
func TestComposeEDRAMCacheAvailability(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	dataCell := edramCell(ctx)
	tagCell := sramCell()

	if dataCell.RetentionTimeS <= 0 {
		t.Fatalf("expected ApplyPVT to derive a positive retention time")
	}

	dataParam := paramdoc.InputParameter{OptimizationTarget: paramtypes.ReadLatency, Ranges: pinnedRanges()}
	tagParam := paramdoc.InputParameter{OptimizationTarget: paramtypes.ReadLatency, Ranges: pinnedRanges()}

	data, _, err := search.Explore(ctx, dataCell, dataParam, paramtypes.DataArray, 1024, 64)
	if err != nil {
		t.Fatalf("Explore data: %v", err)
	}

	tag, _, err := search.Explore(ctx, tagCell, tagParam, paramtypes.TagArray, 256, 16)
	if err != nil {
		t.Fatalf("Explore tag: %v", err)
	}

	composed := search.Compose(*data, *tag, dataCell, paramtypes.NormalAccess)
	if !composed.HasCacheAvailability {
		t.Fatalf("expected eDRAM data array to report cache availability")
	}

	want := (dataCell.RetentionTimeS - data.Bank.RefreshLatencyS) / dataCell.RetentionTimeS
	if composed.CacheAvailability != want {
		t.Fatalf("cache availability = %v, want %v", composed.CacheAvailability, want)
	}
}
