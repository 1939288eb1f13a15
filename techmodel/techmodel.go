// Package techmodel holds the physical constants of a process technology
// node and device roadmap (C1 of spec.md §2), and the explicit evaluation
// Context that replaces the source's global pointers.
//
// Design Notes (spec.md §9): the original C++ keeps process-wide pointers
// `cell`, `tech`, `techR`, `techW`, `inputParameter`. Those are read-mostly
// inputs to every component evaluation; this package collects the tech side
// (read Tech, write Tech, temperature) into one immutable Context value
// threaded explicitly through every call, with the cell and the input
// parameters passed alongside it as explicit arguments,
// which is what makes the outer Cartesian product in axisenum trivially
// parallelizable (spec.md §5).
package techmodel

import (
	"fmt"
	"math"

	"github.com/bobuhiro11/memsysexplorer/paramtypes"
)

// Tech holds the per-node, per-roadmap physical constants derived for one
// process technology. Values are scaled off a 90 nm baseline the way
// CACTI/NVSim analytic models do; this is intentionally not transistor-level
// accurate (spec.md §1: "an implementer reuses the published CACTI/NVSim
// analytic equations" — this package supplies internally consistent
// stand-ins for those equations).
type Tech struct {
	NodeNM  int
	Roadmap paramtypes.DeviceRoadmap

	Vdd            float64 // volts
	NMOSOnResPerUm float64 // ohm*um, effective NMOS channel resistance
	PMOSOnResPerUm float64 // ohm*um
	GateCapPerUm   float64 // F/um, gate capacitance per unit width
	JunctionCap    float64 // F, fixed junction/diffusion capacitance
	WireResPerUm   float64 // ohm/um, local wire resistance
	WireCapPerUm   float64 // F/um, local wire capacitance
	LeakCurrentA   float64 // A/um, subthreshold leakage current density at 300K
	FeatureSizeM   float64 // m, feature size F = node in meters
}

const baselineNodeNM = 90

// minSupportedNodeNM/maxSupportedNodeNM bound the range over which the 90nm
// baseline scaling rule of New is taken to stay internally consistent
// (spec.md §1: the analytic model is abstract, not transistor-level, and
// stops being a meaningful stand-in far outside the published CACTI/NVSim
// node range).
const (
	minSupportedNodeNM = 3
	maxSupportedNodeNM = 180
)

// ValidateNode reports ErrUnsupportedNode if nodeNM falls outside the range
// the scaling formulas of New were derived for.
func ValidateNode(nodeNM int) error {
	if nodeNM < minSupportedNodeNM || nodeNM > maxSupportedNodeNM {
		return fmt.Errorf("%w: %d nm", ErrUnsupportedNode, nodeNM)
	}

	return nil
}

// roadmapFactor scales leakage and switching energy relative to the HP
// (high-performance) roadmap: LOP and LSTP trade leakage for switching
// speed, IGZO and CNT are emerging-device stand-ins with much lower
// leakage at a latency premium.
func roadmapFactor(r paramtypes.DeviceRoadmap) (leak, delay float64) {
	switch r {
	case paramtypes.HP:
		return 1.0, 1.0
	case paramtypes.LOP:
		return 0.2, 1.3
	case paramtypes.LSTP:
		return 0.02, 1.8
	case paramtypes.IGZO:
		return 0.002, 2.5
	case paramtypes.CNT:
		return 0.05, 0.8
	default:
		return 1.0, 1.0
	}
}

// New derives a Tech for a process node (nm) and device roadmap by scaling
// a 90 nm baseline. Resistance scales as 1/node (narrower, more resistive
// channels), capacitance scales as node (less gate area), matching the
// first-order RC scaling rule used throughout CACTI's wire and device
// models.
func New(nodeNM int, roadmap paramtypes.DeviceRoadmap) Tech {
	leak, delay := roadmapFactor(roadmap)
	scale := float64(baselineNodeNM) / float64(nodeNM)

	return Tech{
		NodeNM:         nodeNM,
		Roadmap:        roadmap,
		Vdd:            1.2 * math.Pow(float64(nodeNM)/float64(baselineNodeNM), 0.3),
		NMOSOnResPerUm: 5000.0 * scale * delay,
		PMOSOnResPerUm: 10000.0 * scale * delay,
		GateCapPerUm:   1e-15 / scale,
		JunctionCap:    0.5e-15 / scale,
		WireResPerUm:   0.2 * scale,
		WireCapPerUm:   2e-16 / scale,
		LeakCurrentA:   1e-9 * leak / scale,
		FeatureSizeM:   float64(nodeNM) * 1e-9,
	}
}

// LeakageCurrentAt returns the subthreshold leakage current of a device of
// the given width (um) at the given temperature (K), used by cell.ApplyPVT
// to derive DRAM-family retention time when it is not supplied
// (spec.md §3.2).
func (t Tech) LeakageCurrentAt(widthUm, temperatureK float64) float64 {
	if widthUm <= 0 {
		return 0
	}
	// Subthreshold leakage doubles roughly every 10K above 300K.
	tempScale := math.Pow(2, (temperatureK-300.0)/10.0)

	return t.LeakCurrentA * widthUm * tempScale
}

// Context is the explicit, immutable evaluation context threaded through
// every C2/C3 call: the (possibly distinct) read and write Tech and the
// operating temperature. The chosen Cell is passed separately. Read and
// write Tech differ only for asymmetric three-terminal DRAM variants (spec.md §3.1:
// "single value, or separate read/write nodes").
type Context struct {
	TechR       Tech
	TechW       Tech
	Temperature float64
}

// NewContext builds a Context for a single process node shared by read and
// write paths.
func NewContext(nodeNM int, roadmap paramtypes.DeviceRoadmap, temperatureK float64) Context {
	t := New(nodeNM, roadmap)

	return Context{TechR: t, TechW: t, Temperature: temperatureK}
}

// NewAsymmetricContext builds a Context with distinct read/write process
// nodes and roadmaps, for 3T-eDRAM-333-style asymmetric cells.
func NewAsymmetricContext(nodeR int, roadmapR paramtypes.DeviceRoadmap,
	nodeW int, roadmapW paramtypes.DeviceRoadmap, temperatureK float64,
) Context {
	return Context{
		TechR:       New(nodeR, roadmapR),
		TechW:       New(nodeW, roadmapW),
		Temperature: temperatureK,
	}
}
