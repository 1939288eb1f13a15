package arraymodel

import (
	"math"

	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

// BankPoint is the top-level fully-resolved design point for one array
// (data array or tag array — spec.md §4.6): a grid of Mats, how many of
// them activate per access, the wire used to route between them, and
// (tag arrays only) the comparator width.
type BankPoint struct {
	NumRowMat    int
	NumColumnMat int

	NumActiveMatPerRow    int
	NumActiveMatPerColumn int

	Mat     MatPoint
	Routing wire.Config

	// TagBits is >0 for a tag-array Bank (spec.md §4.6), triggering the
	// comparator stage; 0 for a data array.
	TagBits int
}

// Bank is the evaluated cost of one BankPoint: the representative Mat
// result, the routing contribution, an optional comparator, and the
// derived totals including bandwidth and (DRAM family) refresh power,
// carried as its own field per spec.md's per-stage breakdown.
type Bank struct {
	Point   BankPoint
	Mat     Mat
	Routing RoutingModel
	Stages  []Stage
	Total   Stage

	RefreshPowerW     float64
	RefreshLatencyS   float64
	ReadBandwidthBps  float64
	WriteBandwidthBps float64

	// ResetLatencyS/SetLatencyS are populated only for asymmetric-write
	// cell kinds (spec.md §8 seed scenario 2: "resetLatency >= cell's
	// reset pulse and setLatency >= cell's set pulse"). The bitline RC
	// delay alone does not model the cell's minimum pulse width, so each
	// is the bank's write latency with the bitline component floored at
	// the matching pulse width.
	ResetLatencyS float64
	SetLatencyS   float64
}

// ComputeBank evaluates a bank as NumRowMat*NumColumnMat identical mat
// tiles routed together by routing, activating
// NumActiveMatPerRow*NumActiveMatPerColumn of them per access.
func ComputeBank(ctx techmodel.Context, c *cell.Cell, p BankPoint, routing RoutingModel) Bank {
	mat := ComputeMat(ctx, c, p.Mat)

	totalMats := p.NumRowMat * p.NumColumnMat
	activeMats := p.NumActiveMatPerRow * p.NumActiveMatPerColumn
	if activeMats < 1 {
		activeMats = 1
	}

	if activeMats > totalMats {
		activeMats = totalMats
	}

	scaled := Stage{
		Name:          "mat_active",
		ReadLatencyS:  mat.Total.ReadLatencyS,
		WriteLatencyS: mat.Total.WriteLatencyS,
		ReadEnergyJ:   mat.Total.ReadEnergyJ * float64(activeMats),
		WriteEnergyJ:  mat.Total.WriteEnergyJ * float64(activeMats),
		LeakageW:      mat.Total.LeakageW * float64(totalMats),
		AreaM2:        mat.Total.AreaM2 * float64(totalMats),
	}

	route := routing.Route(ctx, p.Routing, totalMats, activeMats)

	stages := []Stage{scaled, route}

	if p.TagBits > 0 {
		stages = append(stages, comparatorStage(ctx, p.TagBits))
	}

	total := sumStages("bank", stages...)

	wordWidth := float64(maxInt(p.Mat.Subarray.WordWidthBits, 1))
	if c.Type.IsMLC() && c.MLCLevels > 1 {
		wordWidth *= math.Log2(float64(c.MLCLevels))
	}

	blockSizeBytes := wordWidth / 8

	var readBW, writeBW float64

	rowDecoder := findStage(mat.Subarray.Stages, "row_decoder")
	precharger := findStage(mat.Subarray.Stages, "precharger")
	readLatency := mat.Subarray.Total.ReadLatencyS - rowDecoder.ReadLatencyS + precharger.ReadLatencyS

	if readLatency > 0 {
		readBW = blockSizeBytes / readLatency
	}

	if mat.Subarray.Total.WriteLatencyS > 0 {
		writeBW = blockSizeBytes / mat.Subarray.Total.WriteLatencyS
	}

	var refreshPower, refreshLatency float64

	if c.Type.IsDRAMFamily() && c.RetentionTimeS > 0 {
		refresh := refreshStage(ctx, c, p.Mat.Subarray.NumRow, p.Mat.Subarray.NumColumn)
		refreshesPerSecond := 1.0 / c.RetentionTimeS
		refreshPower = refresh.ReadEnergyJ * refreshesPerSecond * float64(totalMats)
		refreshLatency = refresh.ReadLatencyS
	}

	var resetLatency, setLatency float64

	if c.Type.HasAsymmetricWrite(c.AccessDevice) {
		bitline := findStage(mat.Subarray.Stages, "bitline")
		nonBitlineWrite := total.WriteLatencyS - bitline.WriteLatencyS
		resetLatency = nonBitlineWrite + math.Max(bitline.WriteLatencyS, c.ResetPulseS)
		setLatency = nonBitlineWrite + math.Max(bitline.WriteLatencyS, c.SetPulseS)
	}

	return Bank{
		Point:             p,
		Mat:               mat,
		Routing:           routing,
		Stages:            stages,
		Total:             total,
		RefreshPowerW:     refreshPower,
		RefreshLatencyS:   refreshLatency,
		ReadBandwidthBps:  readBW,
		WriteBandwidthBps: writeBW,
		ResetLatencyS:     resetLatency,
		SetLatencyS:       setLatency,
	}
}

// Clone returns an independent copy of b: the Stages slices of the bank,
// its Mat and the Mat's Subarray are copied so a later mutation of the
// incumbent's slices cannot alias a candidate still under evaluation, and
// the RoutingModel is cloned through its own
// Clone method rather than copied as an interface value (spec.md §4.5:
// the incumbent is updated by value, never by shared reference).
func (b Bank) Clone() Bank {
	clone := b
	clone.Stages = append([]Stage(nil), b.Stages...)
	clone.Mat.Stages = append([]Stage(nil), b.Mat.Stages...)
	clone.Mat.Subarray.Stages = append([]Stage(nil), b.Mat.Subarray.Stages...)

	if b.Routing != nil {
		clone.Routing = b.Routing.Clone()
	}

	return clone
}
