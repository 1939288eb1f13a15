package report

import (
	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/config"
	"github.com/bobuhiro11/memsysexplorer/paramdoc"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/search"
	"gopkg.in/yaml.v3"
)

// Document builds the structured-document report of spec.md §6 item 2: a
// hierarchical map keyed `MemoryCell`/`Configuration`/`Results`, or
// `MemoryCell`/`Configuration`/`CacheDesign` with embedded `DataArray`/
// `TagArray` for cache design targets. Physical quantities carry a unit
// suffix (_mm2, _ns, _pJ, _mW); only the bandwidth keys are K/M-prefixed by
// magnitude, per bandwidthSuffix. Counts and ratios such as Associativity,
// CandidateCount and CacheAvailability carry no suffix.
func Document(outcome config.Outcome, c *cell.Cell, param paramdoc.InputParameter) map[string]any {
	doc := map[string]any{
		"MemoryCell":    memoryCellMap(c),
		"Configuration": configurationMap(param),
	}

	if outcome.FullExploration != nil {
		doc["FullExploration"] = map[string]any{"CandidateCount": len(outcome.FullExploration)}
		return doc
	}

	if outcome.Cache != nil {
		doc["CacheDesign"] = map[string]any{
			"DataArray": resultMap(outcome.Data),
			"TagArray":  resultMap(*outcome.Tag),
			"Composed":  cacheMap(*outcome.Cache),
		}

		return doc
	}

	doc["Results"] = resultMap(outcome.Data)

	return doc
}

// Marshal renders doc as YAML (spec.md §6's structured-document emitter).
func Marshal(doc map[string]any) ([]byte, error) {
	return yaml.Marshal(doc)
}

func memoryCellMap(c *cell.Cell) map[string]any {
	m := map[string]any{
		"MemCellType":   c.Type.String(),
		"CellArea_F2":   c.AreaF2,
		"Capacitance_F": c.CapacitanceF,
		"ReadVoltage_V": c.ReadVoltageV,
		"ReadPower_W":   c.ReadPowerW,
	}

	if c.Type.IsDRAMFamily() && c.RetentionTimeS > 0 {
		m["RetentionTime_ns"] = latencyNS(c.RetentionTimeS)
	}

	if c.Type.HasAsymmetricWrite(c.AccessDevice) {
		m["ResetPulse_ns"] = latencyNS(c.ResetPulseS)
		m["SetPulse_ns"] = latencyNS(c.SetPulseS)
	}

	return m
}

func configurationMap(p paramdoc.InputParameter) map[string]any {
	m := map[string]any{
		"DesignTarget":         p.DesignTarget.String(),
		"OptimizationTarget":   p.OptimizationTarget.String(),
		"Capacity_bits":        p.CapacityBits,
		"WordWidth_bits":       p.WordWidthBits,
		"Associativity":        p.Associativity,
		"ProcessNodeRead_nm":   p.ProcessNodeReadNM,
		"ProcessNodeWrite_nm":  p.ProcessNodeWriteNM,
		"Temperature_K":        p.TemperatureK,
	}

	if p.DesignTarget == paramtypes.Cache {
		m["CacheAccessMode"] = p.CacheAccessMode.String()
	}

	return m
}

func resultMap(r search.Result) map[string]any {
	m := map[string]any{
		"Area_mm2":        areaMM2(r.AreaM2()),
		"ReadLatency_ns":  latencyNS(r.ReadLatencyS()),
		"WriteLatency_ns": latencyNS(r.WriteLatencyS()),
		"ReadEnergy_pJ":   energyPJ(r.ReadEnergyJ()),
		"WriteEnergy_pJ":  energyPJ(r.WriteEnergyJ()),
		"Leakage_mW":      powerMW(r.LeakageW()),
	}

	readVal, readSuffix := bandwidthSuffix(r.Bank.ReadBandwidthBps)
	writeVal, writeSuffix := bandwidthSuffix(r.Bank.WriteBandwidthBps)
	m["ReadBandwidth_"+readSuffix] = readVal
	m["WriteBandwidth_"+writeSuffix] = writeVal

	if r.Bank.RefreshPowerW > 0 {
		m["RefreshPower_mW"] = powerMW(r.Bank.RefreshPowerW)
	}

	if r.Bank.ResetLatencyS > 0 || r.Bank.SetLatencyS > 0 {
		m["ResetLatency_ns"] = latencyNS(r.Bank.ResetLatencyS)
		m["SetLatency_ns"] = latencyNS(r.Bank.SetLatencyS)
	}

	return m
}

func cacheMap(cr search.CacheResult) map[string]any {
	m := map[string]any{
		"AccessMode":      cr.Mode.String(),
		"HitLatency_ns":   latencyNS(cr.HitLatencyS),
		"MissLatency_ns":  latencyNS(cr.MissLatencyS),
		"WriteLatency_ns": latencyNS(cr.WriteLatencyS),
		"HitEnergy_pJ":    energyPJ(cr.HitEnergyJ),
		"MissEnergy_pJ":   energyPJ(cr.MissEnergyJ),
		"Leakage_mW":      powerMW(cr.LeakageW),
		"Area_mm2":        areaMM2(cr.AreaM2),
	}

	if cr.HasCacheAvailability {
		m["CacheAvailability"] = cr.CacheAvailability
	}

	return m
}
