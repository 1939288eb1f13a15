package arraymodel

import (
	"math"

	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

// gateDelayS is the representative delay of one logic-gate stage at the
// given tech, used by the decoder/mux/precharger stand-ins (spec.md §1:
// analytic formulas referenced abstractly, not transistor-level).
func gateDelayS(tech techmodel.Tech) float64 {
	return 0.35 * tech.NMOSOnResPerUm * tech.GateCapPerUm * 10
}

func log2Ceil(n int) float64 {
	if n <= 1 {
		return 1
	}

	return math.Ceil(math.Log2(float64(n)))
}

// decoderStages returns the predecoder and row-decoder Stages for a
// subarray with numRow rows: both scale with the address width
// (log2(numRow)) the way a tree decoder does.
func decoderStages(ctx techmodel.Context, numRow int) (predecoder, rowDecoder Stage) {
	bits := log2Ceil(numRow)
	g := gateDelayS(ctx.TechR)

	predecoder = Stage{
		Name:          "predecoder",
		ReadLatencyS:  g * bits,
		WriteLatencyS: g * bits,
		ReadEnergyJ:   bits * ctx.TechR.GateCapPerUm * 10 * ctx.TechR.Vdd * ctx.TechR.Vdd,
		WriteEnergyJ:  bits * ctx.TechW.GateCapPerUm * 10 * ctx.TechW.Vdd * ctx.TechW.Vdd,
		LeakageW:      bits * ctx.TechR.LeakCurrentA * 10 * ctx.TechR.Vdd,
		AreaM2:        bits * 10 * ctx.TechR.FeatureSizeM * ctx.TechR.FeatureSizeM,
	}

	rowDecoder = Stage{
		Name:          "row_decoder",
		ReadLatencyS:  g * bits * 2,
		WriteLatencyS: g * bits * 2,
		ReadEnergyJ:   float64(numRow) * ctx.TechR.GateCapPerUm * ctx.TechR.Vdd * ctx.TechR.Vdd,
		WriteEnergyJ:  float64(numRow) * ctx.TechW.GateCapPerUm * ctx.TechW.Vdd * ctx.TechW.Vdd,
		LeakageW:      float64(numRow) * ctx.TechR.LeakCurrentA * ctx.TechR.Vdd,
		AreaM2:        float64(numRow) * 6 * ctx.TechR.FeatureSizeM * ctx.TechR.FeatureSizeM,
	}

	return predecoder, rowDecoder
}

// bitlineStages returns the read and write bitline delay/energy of a
// column of numRow cells. 3T-eDRAM family kinds have a genuinely distinct
// read and write bitline path (spec.md §4.3: "two values for 3T eDRAM
// variants: read and write"); every other kind shares one RC bitline.
func bitlineStages(ctx techmodel.Context, c *cell.Cell, numRow int) Stage {
	bitlineCap := float64(numRow) * c.CapacitanceF
	bitlineRes := float64(numRow) * ctx.TechR.WireResPerUm * ctx.TechR.FeatureSizeM * 1e6

	readLatency := 0.69 * bitlineRes * bitlineCap
	writeLatency := readLatency

	if c.Type == paramtypes.ThreeTEDRAM || c.Type == paramtypes.ThreeTEDRAM333 {
		writeLatency *= 1.4
	}

	energy := 0.5 * bitlineCap * c.ReadVoltageV * c.ReadVoltageV
	if energy == 0 {
		energy = 0.5 * bitlineCap * ctx.TechR.Vdd * ctx.TechR.Vdd
	}

	return Stage{
		Name:          "bitline",
		ReadLatencyS:  readLatency,
		WriteLatencyS: writeLatency,
		ReadEnergyJ:   energy,
		WriteEnergyJ:  energy,
		LeakageW:      float64(numRow) * ctx.TechR.LeakCurrentA * ctx.TechR.Vdd * 0.1,
		AreaM2:        float64(numRow) * c.AreaF2 * ctx.TechR.FeatureSizeM * ctx.TechR.FeatureSizeM,
	}
}

// findStage returns the named stage's values, or the zero Stage if absent.
func findStage(stages []Stage, name string) Stage {
	for _, st := range stages {
		if st.Name == name {
			return st
		}
	}

	return Stage{}
}

// senseAmpStage models the sense amplifier, whose delay depends on the
// minimum distinguishable sense voltage (or, for current-sense cells, on
// the read current).
func senseAmpStage(ctx techmodel.Context, c *cell.Cell) Stage {
	minV := c.MinSenseVoltageV
	if minV <= 0 {
		minV = 0.05
	}

	latency := 0.2e-9 * (ctx.TechR.Vdd / minV)
	if c.ReadMode == paramtypes.CurrentSense && c.ReadCurrentA > 0 {
		latency = 0.2e-9 * (1e-6 / c.ReadCurrentA)
	}

	return Stage{
		Name:          "sense_amp",
		ReadLatencyS:  latency,
		WriteLatencyS: 0,
		ReadEnergyJ:   c.ReadPowerW * latency,
		WriteEnergyJ:  0,
		LeakageW:      ctx.TechR.LeakCurrentA * 20 * ctx.TechR.Vdd,
		AreaM2:        20 * ctx.TechR.FeatureSizeM * ctx.TechR.FeatureSizeM,
	}
}

// muxStage models one analog/logical select stage between the bitlines
// and the output (GLOSSARY: "Mux level"). level is the axis value chosen
// for this stage (bitline mux, sense-amp mux level 1, or level 2).
func muxStage(ctx techmodel.Context, name string, level int) Stage {
	bits := log2Ceil(level)
	g := gateDelayS(ctx.TechR)

	return Stage{
		Name:          name,
		ReadLatencyS:  g * bits,
		WriteLatencyS: g * bits,
		ReadEnergyJ:   bits * ctx.TechR.GateCapPerUm * 5 * ctx.TechR.Vdd * ctx.TechR.Vdd,
		WriteEnergyJ:  bits * ctx.TechW.GateCapPerUm * 5 * ctx.TechW.Vdd * ctx.TechW.Vdd,
		LeakageW:      float64(level) * ctx.TechR.LeakCurrentA * ctx.TechR.Vdd,
		AreaM2:        float64(level) * 4 * ctx.TechR.FeatureSizeM * ctx.TechR.FeatureSizeM,
	}
}

// prechargerStage models the precharge/equalization circuit for numColumn
// bitlines.
func prechargerStage(ctx techmodel.Context, numColumn int) Stage {
	g := gateDelayS(ctx.TechR)

	return Stage{
		Name:          "precharger",
		ReadLatencyS:  g,
		WriteLatencyS: g,
		ReadEnergyJ:   float64(numColumn) * ctx.TechR.GateCapPerUm * 3 * ctx.TechR.Vdd * ctx.TechR.Vdd,
		WriteEnergyJ:  float64(numColumn) * ctx.TechW.GateCapPerUm * 3 * ctx.TechW.Vdd * ctx.TechW.Vdd,
		LeakageW:      float64(numColumn) * ctx.TechR.LeakCurrentA * ctx.TechR.Vdd,
		AreaM2:        float64(numColumn) * 3 * ctx.TechR.FeatureSizeM * ctx.TechR.FeatureSizeM,
	}
}

// columnDecoderStage models the cache-only column decoder that picks the
// word out of a wide row (spec.md §4.3: "column-decoder (cache only)").
func columnDecoderStage(ctx techmodel.Context, numColumn, wordWidth int) Stage {
	ways := numColumn / maxInt(wordWidth, 1)
	bits := log2Ceil(maxInt(ways, 1))
	g := gateDelayS(ctx.TechR)

	return Stage{
		Name:          "column_decoder",
		ReadLatencyS:  g * bits,
		WriteLatencyS: g * bits,
		ReadEnergyJ:   bits * ctx.TechR.GateCapPerUm * 4 * ctx.TechR.Vdd * ctx.TechR.Vdd,
		WriteEnergyJ:  bits * ctx.TechW.GateCapPerUm * 4 * ctx.TechW.Vdd * ctx.TechW.Vdd,
		LeakageW:      bits * ctx.TechR.LeakCurrentA * ctx.TechR.Vdd,
		AreaM2:        bits * 5 * ctx.TechR.FeatureSizeM * ctx.TechR.FeatureSizeM,
	}
}

// comparatorStage models the tag-array comparator (spec.md §4.3:
// "comparator for tag matches").
func comparatorStage(ctx techmodel.Context, tagBits int) Stage {
	g := gateDelayS(ctx.TechR)

	return Stage{
		Name:          "comparator",
		ReadLatencyS:  g * log2Ceil(tagBits),
		WriteLatencyS: 0,
		ReadEnergyJ:   float64(tagBits) * ctx.TechR.GateCapPerUm * ctx.TechR.Vdd * ctx.TechR.Vdd,
		WriteEnergyJ:  0,
		LeakageW:      float64(tagBits) * ctx.TechR.LeakCurrentA * ctx.TechR.Vdd,
		AreaM2:        float64(tagBits) * 8 * ctx.TechR.FeatureSizeM * ctx.TechR.FeatureSizeM,
	}
}

// refreshStage models the periodic refresh cost of a DRAM-family subarray,
// present only when c.Type.IsDRAMFamily() (spec.md §4.3).
func refreshStage(ctx techmodel.Context, c *cell.Cell, numRow, numColumn int) Stage {
	if !c.Type.IsDRAMFamily() {
		return Stage{Name: "refresh"}
	}

	bl := bitlineStages(ctx, c, numRow)
	predecoder, rowDecoder := decoderStages(ctx, numRow)

	return Stage{
		Name:          "refresh",
		ReadLatencyS:  predecoder.ReadLatencyS + rowDecoder.ReadLatencyS + bl.ReadLatencyS,
		WriteLatencyS: 0,
		ReadEnergyJ:   float64(numColumn) * (predecoder.ReadEnergyJ + rowDecoder.ReadEnergyJ + bl.ReadEnergyJ),
		WriteEnergyJ:  0,
		LeakageW:      0,
		AreaM2:        0,
	}
}

// localWireLatencyEnergy returns the latency, dynamic energy and repeater
// leakage of driving loadCapF over the local wire cfg threaded in from the
// enclosing Mat/Bank.
func localWireLatencyEnergy(ctx techmodel.Context, cfg wire.Config, loadCapF float64) (float64, float64, float64) {
	m, err := wire.Evaluate(cfg, ctx.TechR, loadCapF)
	if err != nil {
		// An invalid wire.Config (low-swing + repeater) cannot occur once
		// axisenum has validated the axis cross-product; treat defensively
		// as a zero contribution rather than propagating a panic into a
		// pure evaluation function.
		return 0, 0, 0
	}

	return m.LatencyS, m.EnergyJ, m.LeakageW
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
