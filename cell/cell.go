// Package cell holds the Cell bitcell descriptor (spec.md §3.2) and its
// PVT (process/voltage/temperature) derivation pass, ApplyPVT.
//
// Adapted from gokvm's bootparam package: there, a single large flat
// struct is populated from an external document (a bzImage header) by a
// constructor that validates the input and fills in fields the loader
// itself must compute (e.g. the real-mode code size). Here the external
// document is a YAML cell file instead of a binary kernel header, and the
// fields the constructor fills in are retention time and write energy
// instead of boot-loader geometry.
package cell

import "github.com/bobuhiro11/memsysexplorer/paramtypes"

// Cell is the bitcell descriptor of spec.md §3.2. Type-specific fields are
// meaningful only for their kind (the invariant enforced by ApplyPVT and by
// Load, which warns and ignores fields addressed at the wrong kind rather
// than silently mis-applying them).
type Cell struct {
	Type paramtypes.CellType

	AreaF2      float64
	AspectRatio float64

	// On-resistances at each named bias point (ohm). Off-resistance is a
	// single representative value; finer per-bias off-resistance is not
	// modeled (spec.md §1: analytic formulas are referenced abstractly).
	ResistanceAtSet        float64
	ResistanceAtReset      float64
	ResistanceAtRead       float64
	ResistanceAtHalfRead   float64
	ResistanceAtHalfReset  float64
	OffResistance          float64
	CapacitanceF           float64
	GateOxThicknessFactor  float64
	SOIWidthUm             float64

	ReadMode         paramtypes.AccessType
	ReadVoltageV     float64
	ReadCurrentA     float64
	ReadPowerW       float64
	WordlineBoostRatio float64
	MinSenseVoltageV float64

	AccessDevice      paramtypes.AccessDevice
	AccessWidthNMOSUm float64
	AccessWidthPMOSUm float64

	SRAMNMOSWidthUm float64
	SRAMPMOSWidthUm float64

	DRAMStorageCapF         float64
	DRAMMaxStorageNodeDropV float64

	ResetVoltageV float64
	ResetCurrentA float64
	ResetPulseS   float64
	ResetEnergyJ  float64 // 0 means "not yet derived" (Open Question #1)

	SetVoltageV float64
	SetCurrentA float64
	SetPulseS   float64
	SetEnergyJ  float64 // 0 means "not yet derived"

	WriteEnergyJ float64 // used by cell kinds without asymmetric reset/set

	FlashProgramVoltageV float64
	FlashEraseVoltageV   float64
	FlashProgramTimeS    float64
	FlashEraseTimeS      float64
	GateCouplingRatio    float64

	RetentionTimeS float64 // 0 means "not yet derived", DRAM family only

	MLCFingers int
	MLCLevels  int
}

// InvalidValue is the sentinel for "no value"/"derivation failed"
// (spec.md §7, §9 Design Notes). The search's admissibility and objective
// comparisons do not check for it: a candidate whose values carry it is
// compared on those values like any other. Only the refresh and
// cache-availability computations skip a non-positive RetentionTimeS.
const InvalidValue = -1.0

// IsValid reports whether v is not the invalid sentinel.
func IsValid(v float64) bool {
	return v != InvalidValue
}
