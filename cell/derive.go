package cell

import (
	"log"

	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
)

// ApplyPVT fills in values the document did not (or legitimately left at
// zero, which this implementation treats as absent per spec.md §9's
// resolution of the "is zero absent?" Open Question): DRAM-family
// retention time, and reset/set or generic write energy. It never
// overwrites a non-zero value.
func (c *Cell) ApplyPVT(ctx techmodel.Context) {
	if c.Type.IsDRAMFamily() && c.RetentionTimeS == 0 {
		c.RetentionTimeS = c.deriveRetention(ctx)
	}

	if c.Type.HasAsymmetricWrite(c.AccessDevice) {
		if c.ResetEnergyJ == 0 {
			c.ResetEnergyJ = c.deriveWriteEnergy(ctx, true)
		}

		if c.SetEnergyJ == 0 {
			c.SetEnergyJ = c.deriveWriteEnergy(ctx, false)
		}

		return
	}

	if c.WriteEnergyJ == 0 {
		c.WriteEnergyJ = c.deriveWriteEnergy(ctx, false)
	}
}

// deriveRetention implements spec.md §3.2's retention formula:
// capDRAMCell * maxStorageNodeDrop / leakageCurrent, where leakage current
// comes from the access-device width at the requested temperature. A zero
// leakage current (e.g. AccessWidthNMOSUm unset) falls back to the invalid
// sentinel (spec.md §7).
func (c *Cell) deriveRetention(ctx techmodel.Context) float64 {
	leak := ctx.TechR.LeakageCurrentAt(c.AccessWidthNMOSUm, ctx.Temperature)
	if leak <= 0 {
		log.Printf("%v: accessWidthNMOSUm=%g, falling back to invalid retention", techmodel.ErrZeroLeakage, c.AccessWidthNMOSUm)
		return InvalidValue
	}

	return c.DRAMStorageCapF * c.DRAMMaxStorageNodeDropV / leak
}

// accessDeviceDropV estimates the voltage dropped across the series access
// device during a write, from its on-resistance relative to the cell's own
// resistance at the targeted bias point.
func (c *Cell) accessDeviceDropV(ctx techmodel.Context, voltage, cellResistance float64) float64 {
	if c.AccessDevice == paramtypes.AccessNone || c.AccessWidthNMOSUm <= 0 || cellResistance <= 0 {
		return 0
	}

	accessRes := ctx.TechW.NMOSOnResPerUm / c.AccessWidthNMOSUm
	if accessRes+cellResistance <= 0 {
		return 0
	}

	return voltage * accessRes / (accessRes + cellResistance)
}

// deriveWriteEnergy branches by cell kind exactly as
// original_source/tech/ArrayCharacterization/MemCell.cpp's
// CalculateWriteEnergy does (spec.md §3.2, §4 expansion in SPEC_FULL.md §4).
func (c *Cell) deriveWriteEnergy(ctx techmodel.Context, reset bool) float64 {
	voltage, current, pulse, onRes := c.writeOperatingPoint(reset)

	switch c.Type {
	case paramtypes.PCRAM:
		// PCRAM clamps to on-resistance throughout the pulse.
		if onRes <= 0 {
			return InvalidValue
		}

		return voltage * voltage / onRes * pulse

	case paramtypes.FBRAM:
		return voltage * current * pulse

	case paramtypes.Memristor, paramtypes.FeFET, paramtypes.MLCRRAM:
		if c.AccessDevice == paramtypes.AccessNone {
			if onRes <= 0 {
				return InvalidValue
			}

			return voltage * voltage / onRes * pulse
		}

		if onRes <= 0 {
			return InvalidValue
		}

		return voltage * (voltage - c.accessDeviceDropV(ctx, voltage, onRes)) / onRes * pulse

	default:
		if onRes <= 0 {
			return InvalidValue
		}

		drop := c.accessDeviceDropV(ctx, voltage, onRes)

		return voltage * (voltage - drop) / onRes * pulse
	}
}

// writeOperatingPoint selects the reset or set bias point, falling back to
// the set bias point for cell kinds with a single write energy.
func (c *Cell) writeOperatingPoint(reset bool) (voltage, current, pulse, onRes float64) {
	if !c.Type.HasAsymmetricWrite(c.AccessDevice) {
		return c.SetVoltageV, c.SetCurrentA, c.SetPulseS, c.ResistanceAtSet
	}

	if reset {
		return c.ResetVoltageV, c.ResetCurrentA, c.ResetPulseS, c.ResistanceAtReset
	}

	return c.SetVoltageV, c.SetCurrentA, c.SetPulseS, c.ResistanceAtSet
}
