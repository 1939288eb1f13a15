package search

import (
	"github.com/bobuhiro11/memsysexplorer/paramdoc"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
)

// admissible implements spec.md §4.5.1: reject unless every constraint is
// satisfied (<= limit), with a non-positive limit treated as +∞ ("no
// constraint" — paramdoc.Constraints' zero value).
func admissible(r Result, c paramdoc.Constraints) bool {
	checks := []struct {
		limit float64
		value float64
	}{
		{c.ReadLatencyS, r.ReadLatencyS()},
		{c.WriteLatencyS, r.WriteLatencyS()},
		{c.ReadEnergyJ, r.ReadEnergyJ()},
		{c.WriteEnergyJ, r.WriteEnergyJ()},
		{c.ReadEDP, r.ReadLatencyS() * r.ReadEnergyJ()},
		{c.WriteEDP, r.WriteLatencyS() * r.WriteEnergyJ()},
		{c.LeakageW, r.LeakageW()},
		{c.AreaM2, r.AreaM2()},
	}

	for _, check := range checks {
		if check.limit > 0 && check.value > check.limit {
			return false
		}
	}

	return true
}

// objective computes the single scalar spec.md §4.5.2 compares
// incumbents by: EDP targets multiply latency by dynamic energy, every
// other target reads directly off the matching Bank total.
func objective(r Result, target paramtypes.OptimizationTarget) float64 {
	switch target {
	case paramtypes.ReadLatency:
		return r.ReadLatencyS()
	case paramtypes.WriteLatency:
		return r.WriteLatencyS()
	case paramtypes.ReadEnergy:
		return r.ReadEnergyJ()
	case paramtypes.WriteEnergy:
		return r.WriteEnergyJ()
	case paramtypes.ReadEDP:
		return r.ReadLatencyS() * r.ReadEnergyJ()
	case paramtypes.WriteEDP:
		return r.WriteLatencyS() * r.WriteEnergyJ()
	case paramtypes.Leakage:
		return r.LeakageW()
	case paramtypes.Area:
		return r.AreaM2()
	default:
		return 0
	}
}

// violatedClass names which constraint class was first found violated,
// for the infeasibility message spec.md §7 requires ("terminal with a
// message naming which constraint class was most frequently violated").
func violatedClass(r Result, c paramdoc.Constraints) string {
	switch {
	case c.ReadLatencyS > 0 && r.ReadLatencyS() > c.ReadLatencyS:
		return "read latency"
	case c.WriteLatencyS > 0 && r.WriteLatencyS() > c.WriteLatencyS:
		return "write latency"
	case c.ReadEnergyJ > 0 && r.ReadEnergyJ() > c.ReadEnergyJ:
		return "read energy"
	case c.WriteEnergyJ > 0 && r.WriteEnergyJ() > c.WriteEnergyJ:
		return "write energy"
	case c.ReadEDP > 0 && r.ReadLatencyS()*r.ReadEnergyJ() > c.ReadEDP:
		return "read EDP"
	case c.WriteEDP > 0 && r.WriteLatencyS()*r.WriteEnergyJ() > c.WriteEDP:
		return "write EDP"
	case c.LeakageW > 0 && r.LeakageW() > c.LeakageW:
		return "leakage"
	case c.AreaM2 > 0 && r.AreaM2() > c.AreaM2:
		return "area"
	default:
		return "unknown"
	}
}
