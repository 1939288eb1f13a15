// Package search implements the search driver of spec.md §4.5/§4.6 (C5 of
// spec.md §2): for each admissible design point it evaluates a candidate
// Result, compares it to the current incumbent using the declared
// objective, and replaces the incumbent on strict improvement only. It
// also composes the two per-access-mode engine runs a cache requires
// (data array + tag array) into one combined cache Result.
//
// Adapted from gokvm's vmm package (Init/Setup/Boot orchestration
// lifecycle — adapted here to Explore/Compose) and migration/state.go
// (by-value VM-state snapshot, adapted into Result.Clone).
package search

import (
	"github.com/bobuhiro11/memsysexplorer/arraymodel"
	"github.com/bobuhiro11/memsysexplorer/axisenum"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

// Result is one evaluated candidate (or the incumbent): the Bank subtree
// plus the two Wire instances spec.md §3.3 names (local, global), the
// design point it was evaluated from, and the scalar objective value used
// to compare it against the incumbent.
type Result struct {
	Kind paramtypes.MemoryKind

	Point axisenum.DesignPoint
	Bank  arraymodel.Bank

	LocalWire  wire.Model
	GlobalWire wire.Model

	Objective float64
}

// Clone returns an independent deep copy of r (spec.md §4.5.3: "replace
// the incumbent by value-copy of the candidate's bank, local-wire and
// global-wire"). wire.Model has no backing slices, so only Bank needs its
// own Clone; Clone still copies Bank explicitly rather than relying on
// Go's implicit struct-copy-on-assign, to keep the value-copy contract
// visible at every call site.
func (r Result) Clone() Result {
	clone := r
	clone.Bank = r.Bank.Clone()

	return clone
}

// ReadLatencyS/WriteLatencyS/etc. forward to the evaluated Bank's totals,
// giving callers (report, property tests) one stable accessor surface
// regardless of how Bank's internal Stage breakdown evolves.
func (r Result) ReadLatencyS() float64  { return r.Bank.Total.ReadLatencyS }
func (r Result) WriteLatencyS() float64 { return r.Bank.Total.WriteLatencyS }
func (r Result) ReadEnergyJ() float64   { return r.Bank.Total.ReadEnergyJ }
func (r Result) WriteEnergyJ() float64  { return r.Bank.Total.WriteEnergyJ }
func (r Result) LeakageW() float64      { return r.Bank.Total.LeakageW }
func (r Result) AreaM2() float64        { return r.Bank.Total.AreaM2 }
