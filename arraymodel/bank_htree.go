package arraymodel

import (
	"math"

	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

// htreeRouting distributes an access across the bank through a balanced
// binary tree (GLOSSARY: "H-tree"): cfg.LengthM is split evenly across
// log2(numTotalMat) levels, and only the levels below the branch point
// shared by every active mat carry switching energy while the ones above
// it are common to the whole access.
type htreeRouting struct{}

// NewHTreeRouting returns the H-tree RoutingModel implementer.
func NewHTreeRouting() RoutingModel {
	return htreeRouting{}
}

func (htreeRouting) Mode() paramtypes.RoutingMode { return paramtypes.HTree }

func (htreeRouting) Clone() RoutingModel { return htreeRouting{} }

func (htreeRouting) Route(ctx techmodel.Context, cfg wire.Config, numTotalMat, numActiveMat int) Stage {
	depth := int(log2Ceil(maxInt(numTotalMat, 1)))
	if depth < 1 {
		depth = 1
	}

	segCfg := cfg
	segCfg.LengthM = cfg.LengthM / float64(depth)

	m, err := wire.Evaluate(segCfg, ctx.TechR, 0)
	if err != nil {
		return Stage{Name: "routing_htree"}
	}

	// Every level is on the path from the bank's edge to any mat, so
	// latency accrues across all of them regardless of fan-out.
	latency := m.LatencyS * float64(depth)

	// Only the branch levels that actually diverge between distinct
	// active mats switch more than once per access; approximate that
	// count as log2(numActiveMat), clamped to depth.
	activeLevels := math.Min(float64(depth), log2Ceil(maxInt(numActiveMat, 1)))
	if activeLevels < 1 {
		activeLevels = 1
	}

	energy := m.EnergyJ * activeLevels
	leakage := m.LeakageW * float64(depth)

	return Stage{
		Name:          "routing_htree",
		ReadLatencyS:  latency,
		WriteLatencyS: latency,
		ReadEnergyJ:   energy,
		WriteEnergyJ:  energy,
		LeakageW:      leakage,
	}
}
