package arraymodel

import (
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

// RoutingModel is the small capability set that distinguishes an H-tree
// bank from a non-H-tree (bus-style) bank (spec.md §4.3, GLOSSARY
// "Routing mode"). Bank owns one RoutingModel and calls it rather than
// branching on mode directly, the same shape wire.Evaluate's caller uses
// to stay agnostic of wire.Type.
type RoutingModel interface {
	// Route returns the latency/energy/leakage/area of distributing one
	// access from the bank's edge to numActiveMat mats out of numTotalMat,
	// over wires built from cfg.
	Route(ctx techmodel.Context, cfg wire.Config, numTotalMat, numActiveMat int) Stage

	// Mode reports which paramtypes.RoutingMode this implementer is.
	Mode() paramtypes.RoutingMode

	// Clone returns an independent copy, so a Bank can be snapshotted as
	// an incumbent without aliasing its routing model.
	Clone() RoutingModel
}
