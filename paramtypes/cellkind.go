package paramtypes

import "fmt"

// CellType is the closed set of bitcell technologies (spec.md §3.2).
type CellType int

const (
	SRAM CellType = iota
	DRAM
	EDRAM
	ThreeTEDRAM
	ThreeTEDRAM333
	MRAM
	PCRAM
	FBRAM
	Memristor
	CTT
	MLCCTT
	FeFET
	MLCFeFET
	MLCRRAM
	SLCNAND
	MLCNAND
)

var cellTypeNames = map[CellType]string{
	SRAM:           "SRAM",
	DRAM:           "DRAM",
	EDRAM:          "eDRAM",
	ThreeTEDRAM:    "3T-eDRAM",
	ThreeTEDRAM333: "3T-eDRAM-333",
	MRAM:           "MRAM",
	PCRAM:          "PCRAM",
	FBRAM:          "FBRAM",
	Memristor:      "memristor",
	CTT:            "CTT",
	MLCCTT:         "MLC-CTT",
	FeFET:          "FeFET",
	MLCFeFET:       "MLC-FeFET",
	MLCRRAM:        "MLC-RRAM",
	SLCNAND:        "SLCNAND",
	MLCNAND:        "MLCNAND",
}

func (c CellType) String() string {
	if n, ok := cellTypeNames[c]; ok {
		return n
	}

	return "unknown"
}

func ParseCellType(s string) (CellType, error) {
	for k, v := range cellTypeNames {
		if v == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: CellType %q", ErrUnknownValue, s)
}

// IsDRAMFamily reports whether a cell kind requires refresh and retention
// modeling (spec.md §3.2, §4.3).
func (c CellType) IsDRAMFamily() bool {
	switch c {
	case DRAM, EDRAM, ThreeTEDRAM, ThreeTEDRAM333:
		return true
	default:
		return false
	}
}

// HasAsymmetricWrite reports whether a cell kind reports distinct
// reset/set latencies and energies instead of one write latency/energy
// (spec.md §4.3, "Derived outputs exposed per bank"). A memristor only
// qualifies with a CMOS/BJT series access device (spec.md §4.3: "memristor
// with CMOS/BJT access"); a selector-less memristor has no access device to
// isolate a reset/set distinction against, so it reports one write latency.
func (c CellType) HasAsymmetricWrite(access AccessDevice) bool {
	switch c {
	case PCRAM, FBRAM, FeFET, MLCFeFET, MLCRRAM, SLCNAND:
		return true
	case Memristor:
		return access == AccessCMOS || access == AccessBJT
	default:
		return false
	}
}

// IsMLC reports whether the cell stores more than one bit per cell
// (spec.md §4.3 bandwidth multiplier, §3.2 MLC parameters).
func (c CellType) IsMLC() bool {
	switch c {
	case MLCCTT, MLCFeFET, MLCRRAM, MLCNAND:
		return true
	default:
		return false
	}
}

// IsFlash reports whether page/block sizing and program/erase voltages
// apply (spec.md §3.1, §3.2).
func (c CellType) IsFlash() bool {
	return c == SLCNAND || c == MLCNAND
}

// DeviceRoadmap is the transistor roadmap for a process node
// (spec.md §3.1).
type DeviceRoadmap int

const (
	HP DeviceRoadmap = iota
	LOP
	LSTP
	IGZO
	CNT
)

func (d DeviceRoadmap) String() string {
	switch d {
	case HP:
		return "HP"
	case LOP:
		return "LOP"
	case LSTP:
		return "LSTP"
	case IGZO:
		return "IGZO"
	case CNT:
		return "CNT"
	default:
		return "unknown"
	}
}

func ParseDeviceRoadmap(s string) (DeviceRoadmap, error) {
	switch s {
	case "HP":
		return HP, nil
	case "LOP":
		return LOP, nil
	case "LSTP":
		return LSTP, nil
	case "IGZO":
		return IGZO, nil
	case "CNT":
		return CNT, nil
	default:
		return 0, fmt.Errorf("%w: DeviceRoadmap %q", ErrUnknownValue, s)
	}
}
