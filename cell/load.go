package cell

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"gopkg.in/yaml.v3"
)

// document is the YAML shape of a cell file: a flat map of named fields.
// Unknown keys are ignored (spec.md §6: "forward compatibility"); known
// keys with an out-of-vocabulary enum spelling are fatal.
type document map[string]any

// Load reads a Cell from r. name is used only in error messages.
func Load(r io.Reader, name string) (*Cell, error) {
	dec := yaml.NewDecoder(r)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrMalformedDocument, name, err)
	}

	return fromDocument(doc)
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Cell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f, path)
}

func fromDocument(doc document) (*Cell, error) {
	c := &Cell{}

	typeStr, ok := doc["MemCellType"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: MemCellType is required", ErrMalformedDocument)
	}

	kind, err := paramtypes.ParseCellType(typeStr)
	if err != nil {
		return nil, err
	}

	c.Type = kind

	assignFloat(doc, "CellArea_F2", &c.AreaF2)
	assignFloat(doc, "CellAspectRatio", &c.AspectRatio)
	assignFloat(doc, "ResistanceOnAtSetOperation", &c.ResistanceAtSet)
	assignFloat(doc, "ResistanceOnAtResetOperation", &c.ResistanceAtReset)
	assignFloat(doc, "ResistanceOnAtReadOperation", &c.ResistanceAtRead)
	assignFloat(doc, "ResistanceOnAtHalfReadOperation", &c.ResistanceAtHalfRead)
	assignFloat(doc, "ResistanceOnAtHalfResetOperation", &c.ResistanceAtHalfReset)
	assignFloat(doc, "ResistanceOff", &c.OffResistance)
	assignFloat(doc, "Capacitance_F", &c.CapacitanceF)
	assignFloat(doc, "GateOxThicknessFactor", &c.GateOxThicknessFactor)
	assignFloat(doc, "SOIWidth_um", &c.SOIWidthUm)

	assignFloat(doc, "ReadVoltage", &c.ReadVoltageV)
	assignFloat(doc, "ReadCurrent", &c.ReadCurrentA)
	assignFloat(doc, "ReadPower", &c.ReadPowerW)
	assignFloat(doc, "WordlineBoostRatio", &c.WordlineBoostRatio)
	assignFloat(doc, "MinSenseVoltage", &c.MinSenseVoltageV)

	assignFloat(doc, "AccessCMOSWidthNMOS", &c.AccessWidthNMOSUm)
	assignFloat(doc, "AccessCMOSWidthPMOS", &c.AccessWidthPMOSUm)

	assignFloat(doc, "SRAMCellNMOSWidth", &c.SRAMNMOSWidthUm)
	assignFloat(doc, "SRAMCellPMOSWidth", &c.SRAMPMOSWidthUm)

	assignFloat(doc, "DRAMCellCapacitance", &c.DRAMStorageCapF)
	assignFloat(doc, "DRAMCellMaxStorageNodeDrop", &c.DRAMMaxStorageNodeDropV)

	assignFloat(doc, "ResetVoltage", &c.ResetVoltageV)
	assignFloat(doc, "ResetCurrent", &c.ResetCurrentA)
	assignFloat(doc, "ResetPulse", &c.ResetPulseS)
	assignFloat(doc, "ResetEnergy", &c.ResetEnergyJ)

	assignFloat(doc, "SetVoltage", &c.SetVoltageV)
	assignFloat(doc, "SetCurrent", &c.SetCurrentA)
	assignFloat(doc, "SetPulse", &c.SetPulseS)
	assignFloat(doc, "SetEnergy", &c.SetEnergyJ)

	assignFloat(doc, "WriteEnergy", &c.WriteEnergyJ)

	assignFloat(doc, "FlashProgramVoltage", &c.FlashProgramVoltageV)
	assignFloat(doc, "FlashEraseVoltage", &c.FlashEraseVoltageV)
	assignFloat(doc, "FlashProgramTime", &c.FlashProgramTimeS)
	assignFloat(doc, "FlashEraseTime", &c.FlashEraseTimeS)
	assignFloat(doc, "GateCouplingRatio", &c.GateCouplingRatio)

	assignFloat(doc, "RetentionTime", &c.RetentionTimeS)

	assignInt(doc, "MLCFingers", &c.MLCFingers)
	assignInt(doc, "MLCLevels", &c.MLCLevels)

	if v, ok := doc["ReadMode"].(string); ok {
		mode, err := paramtypes.ParseAccessType(v)
		if err != nil {
			return nil, err
		}

		c.ReadMode = mode
	}

	if v, ok := doc["AccessType"].(string); ok {
		dev, err := paramtypes.ParseAccessDevice(v)
		if err != nil {
			return nil, err
		}

		c.AccessDevice = dev
	}

	warnWrongKindFields(c, doc)

	return c, nil
}

func assignFloat(doc document, key string, dst *float64) {
	switch v := doc[key].(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	}
}

func assignInt(doc document, key string, dst *int) {
	switch v := doc[key].(type) {
	case int:
		*dst = v
	case float64:
		*dst = int(v)
	}
}

// dramOnlyKeys are document keys meaningful only for DRAM-family cells
// (spec.md §3.2 invariant: "inputs addressing the wrong kind are warned
// and ignored, never silently mis-applied").
var dramOnlyKeys = []string{"DRAMCellCapacitance", "DRAMCellMaxStorageNodeDrop", "RetentionTime"}

// flashOnlyKeys are document keys meaningful only for flash cells.
var flashOnlyKeys = []string{"FlashProgramVoltage", "FlashEraseVoltage", "FlashProgramTime", "FlashEraseTime", "GateCouplingRatio"}

func warnWrongKindFields(c *Cell, doc document) {
	if !c.Type.IsDRAMFamily() {
		for _, k := range dramOnlyKeys {
			if _, present := doc[k]; present {
				log.Printf("warning: %s is meaningful only for DRAM-family cells, ignored for %s", k, c.Type)
			}
		}
	}

	if !c.Type.IsFlash() {
		for _, k := range flashOnlyKeys {
			if _, present := doc[k]; present {
				log.Printf("warning: %s is meaningful only for flash cells, ignored for %s", k, c.Type)
			}
		}
	}
}
