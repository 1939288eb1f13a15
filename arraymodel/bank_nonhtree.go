package arraymodel

import (
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

// nonHtreeRouting distributes an access over a single shared bus spanning
// the bank (GLOSSARY: "non-H-tree"): one wire drives every mat, so
// latency is independent of which or how many mats are active, but each
// active mat's tap switches and so contributes its own energy.
type nonHtreeRouting struct{}

// NewNonHTreeRouting returns the non-H-tree (bus) RoutingModel implementer.
func NewNonHTreeRouting() RoutingModel {
	return nonHtreeRouting{}
}

func (nonHtreeRouting) Mode() paramtypes.RoutingMode { return paramtypes.NonHTree }

func (nonHtreeRouting) Clone() RoutingModel { return nonHtreeRouting{} }

func (nonHtreeRouting) Route(ctx techmodel.Context, cfg wire.Config, numTotalMat, numActiveMat int) Stage {
	m, err := wire.Evaluate(cfg, ctx.TechR, 0)
	if err != nil {
		return Stage{Name: "routing_nonhtree"}
	}

	active := float64(maxInt(numActiveMat, 1))

	return Stage{
		Name:          "routing_nonhtree",
		ReadLatencyS:  m.LatencyS,
		WriteLatencyS: m.LatencyS,
		ReadEnergyJ:   m.EnergyJ * active,
		WriteEnergyJ:  m.EnergyJ * active,
		LeakageW:      m.LeakageW * float64(maxInt(numTotalMat, 1)),
	}
}
