// Package wire implements the wire model of spec.md §4.2: for a chosen
// wire type, repeater class, low-swing flag, physical length and feature
// size, it derives the per-segment latency and dynamic energy of driving a
// load capacitance, plus the leakage of any inserted repeaters.
//
// Adapted from gokvm's term package: a small struct with a handful of pure
// methods and no dependency beyond the numbers it operates on. term derives
// raw terminal mode bits from a requested mode; wire derives RC delay/
// energy/leakage from a requested wire configuration. Neither package talks
// to the outside world.
package wire

import (
	"math"

	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
)

// Config names one point in the wire design space (spec.md §4.2).
type Config struct {
	Type          paramtypes.WireType
	Repeater      paramtypes.RepeaterClass
	LowSwing      bool
	LengthM       float64
	FeatureSizeM  float64
}

// Model is the evaluated result of a Config at a given load capacitance:
// per-segment latency, dynamic energy, and repeater leakage.
type Model struct {
	Config Config

	LatencyS     float64
	EnergyJ      float64
	LeakageW     float64
}

// typeFactors gives the resistance/capacitance multiplier for each wire
// type, applied to the per-um local wire constants carried in
// techmodel.Tech; semi-global and global wires are modeled as
// progressively wider/taller (lower resistance, higher capacitance) metal
// layers, and the DRAM wordline as a narrow, highly resistive polysilicon
// line.
func typeFactors(t paramtypes.WireType) (resFactor, capFactor float64) {
	switch t {
	case paramtypes.LocalAggressive:
		return 1.0, 1.0
	case paramtypes.LocalConservative:
		return 1.3, 0.9
	case paramtypes.SemiGlobal:
		return 0.5, 1.3
	case paramtypes.GlobalAggressive:
		return 0.2, 1.8
	case paramtypes.GlobalConservative:
		return 0.3, 1.6
	case paramtypes.DRAMWordline:
		return 3.0, 0.6
	default:
		return 1.0, 1.0
	}
}

// Evaluate computes latency, energy and leakage of driving loadCapF over
// cfg's length, using tech's per-unit-length wire constants.
//
// Low-swing is mutually exclusive with repeater insertion (spec.md §4.2):
// a Config requesting both is invalid and Evaluate returns
// ErrLowSwingWithRepeater rather than silently picking one.
func Evaluate(cfg Config, tech techmodel.Tech, loadCapF float64) (Model, error) {
	if cfg.LowSwing && cfg.Repeater != paramtypes.RepeaterNone {
		return Model{}, ErrLowSwingWithRepeater
	}

	resFactor, capFactor := typeFactors(cfg.Type)
	r := tech.WireResPerUm * resFactor * (cfg.LengthM * 1e6)
	c := tech.WireCapPerUm*capFactor*(cfg.LengthM*1e6) + loadCapF

	swing := 1.0
	if cfg.LowSwing {
		swing = 0.3
	}

	// Elmore-style RC delay, 0.69*R*C for a single unrepeated segment.
	latency := 0.69 * r * c * swing

	var repEnergy, repLeakage float64

	if cfg.Repeater != paramtypes.RepeaterNone {
		// The repeated segments replace the single unrepeated segment.
		latency, repEnergy, repLeakage = repeaterContribution(cfg, tech, r, c)
	}

	energy := 0.5 * c * tech.Vdd * tech.Vdd * swing

	return Model{
		Config:   cfg,
		LatencyS: latency,
		EnergyJ:  energy + repEnergy,
		LeakageW: repLeakage,
	}, nil
}

// repeaterContribution models inserting n optimally (or fixed-overhead)
// sized repeaters along the wire, the standard technique for keeping RC
// delay linear instead of quadratic in length on long global wires.
func repeaterContribution(cfg Config, tech techmodel.Tech, r, c float64) (latency, energy, leakage float64) {
	segments := math.Max(1, math.Round(math.Sqrt(r*c/(0.4*tech.NMOSOnResPerUm*tech.GateCapPerUm))))

	overhead := 0.0
	if cfg.Repeater != paramtypes.RepeaterFullyOptimized {
		overhead = cfg.Repeater.OverheadFraction()
	}

	perSegLatency := 0.69 * (r / segments) * (c/segments + tech.GateCapPerUm*10)
	latency = perSegLatency * segments * (1 + overhead)

	driveCap := tech.GateCapPerUm * 10
	energy = segments * 0.5 * driveCap * tech.Vdd * tech.Vdd

	leakage = segments * tech.LeakCurrentA * 10 * tech.Vdd

	return latency, energy, leakage
}
