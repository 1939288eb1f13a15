package report

import (
	"fmt"
	"strings"

	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/config"
	"github.com/bobuhiro11/memsysexplorer/paramdoc"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/search"
)

// section is one named block of "key: value" lines, indented two spaces
// under its heading — the field order and indentation SPEC_FULL.md §7
// calls part of the contract.
type section struct {
	heading string
	lines   []string
}

func (s section) write(b *strings.Builder) {
	b.WriteString(s.heading)
	b.WriteString("\n")

	for _, line := range s.lines {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func kv(key string, value string) string {
	return fmt.Sprintf("%-24s %s", key+":", value)
}

// PlainText renders outcome as the CONFIGURATION/RESULT/CACHE DESIGN SUMMARY
// report of spec.md §6 item 1. FullExploration runs have no single incumbent
// to report and are rendered as a candidate count instead.
func PlainText(outcome config.Outcome, c *cell.Cell, param paramdoc.InputParameter) string {
	var b strings.Builder

	configSection(param, c).write(&b)
	b.WriteString("\n")

	if outcome.FullExploration != nil {
		section{
			heading: "RESULT",
			lines:   []string{kv("Mode", "full_exploration"), kv("Candidates", fmt.Sprintf("%d", len(outcome.FullExploration)))},
		}.write(&b)

		return b.String()
	}

	resultSection(outcome.Data).write(&b)

	if outcome.Cache != nil {
		b.WriteString("\n")
		cacheSection(*outcome.Cache).write(&b)
	}

	return b.String()
}

func configSection(p paramdoc.InputParameter, c *cell.Cell) section {
	lines := []string{
		kv("DesignTarget", p.DesignTarget.String()),
		kv("OptimizationTarget", p.OptimizationTarget.String()),
		kv("Capacity_bits", fmt.Sprintf("%d", p.CapacityBits)),
		kv("WordWidth_bits", fmt.Sprintf("%d", p.WordWidthBits)),
		kv("Associativity", fmt.Sprintf("%d", p.Associativity)),
		kv("ProcessNodeRead_nm", fmt.Sprintf("%d", p.ProcessNodeReadNM)),
		kv("ProcessNodeWrite_nm", fmt.Sprintf("%d", p.ProcessNodeWriteNM)),
		kv("Temperature_K", formatFloat(p.TemperatureK)),
		kv("MemCellType", c.Type.String()),
	}

	if p.DesignTarget == paramtypes.Cache {
		lines = append(lines, kv("CacheAccessMode", p.CacheAccessMode.String()))
	}

	return section{heading: "CONFIGURATION", lines: lines}
}

func resultSection(r config.Result) section {
	lines := []string{
		kv("Area_mm2", formatFloat(areaMM2(r.AreaM2()))),
		kv("ReadLatency_ns", formatFloat(latencyNS(r.ReadLatencyS()))),
		kv("WriteLatency_ns", formatFloat(latencyNS(r.WriteLatencyS()))),
		kv("ReadEnergy_pJ", formatFloat(energyPJ(r.ReadEnergyJ()))),
		kv("WriteEnergy_pJ", formatFloat(energyPJ(r.WriteEnergyJ()))),
		kv("Leakage_mW", formatFloat(powerMW(r.LeakageW()))),
	}

	if r.Bank.RefreshPowerW > 0 {
		lines = append(lines, kv("RefreshPower_mW", formatFloat(powerMW(r.Bank.RefreshPowerW))))
	}

	if r.Bank.ResetLatencyS > 0 || r.Bank.SetLatencyS > 0 {
		lines = append(lines,
			kv("ResetLatency_ns", formatFloat(latencyNS(r.Bank.ResetLatencyS))),
			kv("SetLatency_ns", formatFloat(latencyNS(r.Bank.SetLatencyS))),
		)
	}

	readVal, readSuffix := bandwidthSuffix(r.Bank.ReadBandwidthBps)
	writeVal, writeSuffix := bandwidthSuffix(r.Bank.WriteBandwidthBps)

	lines = append(lines,
		kv("ReadBandwidth_"+readSuffix, formatFloat(readVal)),
		kv("WriteBandwidth_"+writeSuffix, formatFloat(writeVal)),
	)

	return section{heading: "RESULT", lines: lines}
}

func cacheSection(cr search.CacheResult) section {
	lines := []string{
		kv("AccessMode", cr.Mode.String()),
		kv("HitLatency_ns", formatFloat(latencyNS(cr.HitLatencyS))),
		kv("MissLatency_ns", formatFloat(latencyNS(cr.MissLatencyS))),
		kv("WriteLatency_ns", formatFloat(latencyNS(cr.WriteLatencyS))),
		kv("HitEnergy_pJ", formatFloat(energyPJ(cr.HitEnergyJ))),
		kv("MissEnergy_pJ", formatFloat(energyPJ(cr.MissEnergyJ))),
		kv("Leakage_mW", formatFloat(powerMW(cr.LeakageW))),
		kv("Area_mm2", formatFloat(areaMM2(cr.AreaM2))),
	}

	if cr.HasCacheAvailability {
		lines = append(lines, kv("CacheAvailability", formatFloat(cr.CacheAvailability)))
	}

	return section{heading: "CACHE DESIGN SUMMARY", lines: lines}
}
