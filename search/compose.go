package search

import (
	"math"

	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
)

// CacheResult is the composition of a data-array incumbent and a tag-array
// incumbent into the single reported cache outcome (spec.md §4.6).
type CacheResult struct {
	Data Result
	Tag  Result

	Mode paramtypes.CacheAccessMode

	HitLatencyS   float64
	MissLatencyS  float64
	WriteLatencyS float64

	HitEnergyJ  float64
	MissEnergyJ float64

	LeakageW float64
	AreaM2   float64

	// HasCacheAvailability is false unless the data array's cell is a DRAM
	// family cell (spec.md §4.6: "For eDRAM data arrays the composed result
	// additionally reports cache availability").
	HasCacheAvailability bool
	CacheAvailability    float64
}

// columnDecoderLatencyS returns the column-decoder stage's contribution to
// r's mat-level Stages, or 0 if the mat carries no such stage (data target
// is not a cache, or column decode was never added).
func columnDecoderLatencyS(r Result) float64 {
	for _, st := range r.Bank.Mat.Stages {
		if st.Name == "column_decoder" {
			return st.ReadLatencyS
		}
	}

	return 0
}

// Compose implements spec.md §4.6: the per-mode hit latency formula, the
// mode-independent miss/write latency formulas, the shared miss/hit
// dynamic energy formula, summed
// leakage/area, and (DRAM-family data arrays only) cache availability.
//
// dataCell is the bitcell used for the data-array run; its RetentionTimeS
// (post-ApplyPVT) and cell kind decide whether availability is reported.
func Compose(data, tag Result, dataCell *cell.Cell, mode paramtypes.CacheAccessMode) CacheResult {
	out := CacheResult{
		Data: data, Tag: tag, Mode: mode,
		MissLatencyS:  tag.ReadLatencyS(),
		WriteLatencyS: math.Max(tag.WriteLatencyS(), data.WriteLatencyS()),
		MissEnergyJ:   tag.ReadEnergyJ() + data.ReadEnergyJ(),
		HitEnergyJ:    tag.ReadEnergyJ() + data.ReadEnergyJ(),
		LeakageW:      tag.LeakageW() + data.LeakageW(),
		AreaM2:        tag.AreaM2() + data.AreaM2(),
	}

	matReadS := data.Bank.Mat.Subarray.Total.ReadLatencyS
	colDecS := columnDecoderLatencyS(data)

	switch mode {
	case paramtypes.FastAccess:
		out.HitLatencyS = math.Max(tag.ReadLatencyS(), data.ReadLatencyS())
	case paramtypes.SequentialAccess:
		out.HitLatencyS = tag.ReadLatencyS() + data.ReadLatencyS()
	default: // paramtypes.NormalAccess
		out.HitLatencyS = math.Max(tag.ReadLatencyS(), matReadS) + colDecS + (data.ReadLatencyS() - matReadS)
	}

	if dataCell.Type.IsDRAMFamily() && dataCell.RetentionTimeS > 0 {
		out.HasCacheAvailability = true

		worstRefresh := math.Max(tag.Bank.RefreshLatencyS, data.Bank.RefreshLatencyS)
		out.CacheAvailability = (dataCell.RetentionTimeS - worstRefresh) / dataCell.RetentionTimeS
	}

	return out
}
