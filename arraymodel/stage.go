// Package arraymodel implements the array hierarchy models of spec.md §4.3
// (C3 of spec.md §2): Subarray, Mat and Bank, each a deterministic analytic
// function of a fully-specified tile tuple, composed bottom-up.
//
// Adapted from gokvm's kvm/memory.go: there, a flat address range is tiled
// into MemorySlot entries owned by an AddressSpace tree. Here, a bit range
// is tiled into Subarray/Mat/Bank entries instead — the same "partition a
// flat resource into an owned tree of fixed-size pieces" shape, with
// analytic cost attached to each piece instead of a backing mmap.
package arraymodel

// Stage is one serial pipeline stage's contribution to a tile's totals
// (decoder, bitline, sense amp, a mux level, precharger, comparator,
// column decoder, refresh — spec.md §3.3/§4.3). ReadLatencyS/WriteLatencyS
// are summed serially across stages; the energy and leakage and area
// fields are summed directly.
type Stage struct {
	Name string

	ReadLatencyS  float64
	WriteLatencyS float64
	ReadEnergyJ   float64
	WriteEnergyJ  float64
	LeakageW      float64
	AreaM2        float64
}

// sumStages totals a set of Stages into one combined Stage (spec.md §4.3:
// "Total subarray latency is the sum of the serial stages").
func sumStages(name string, stages ...Stage) Stage {
	var s Stage
	s.Name = name

	for _, st := range stages {
		s.ReadLatencyS += st.ReadLatencyS
		s.WriteLatencyS += st.WriteLatencyS
		s.ReadEnergyJ += st.ReadEnergyJ
		s.WriteEnergyJ += st.WriteEnergyJ
		s.LeakageW += st.LeakageW
		s.AreaM2 += st.AreaM2
	}

	return s
}
