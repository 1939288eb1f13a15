// Package report renders a config.Outcome as the two forms SPEC_FULL.md §7
// names: a plain-text report (CONFIGURATION/RESULT/CACHE DESIGN SUMMARY,
// field order and indentation part of the contract) and a structured
// document (a hierarchical map with unit-suffixed, magnitude-prefixed key
// names) emitted as YAML.
//
// Adapted from gokvm's ebda package (a small section-assembler that
// concatenates sub-structures into one byte-oriented output — adapted here
// into the plain-text report's section writer) and acpi/header.go +
// acpi/const.go (header/table hierarchical assembly split across small
// per-table files — adapted into the structured-document's per-section
// builders).
package report

import "fmt"

// areaMM2 converts the engine's native m^2 area into mm^2 for display
// (spec.md §6 item 2's "_mm2" key suffix).
func areaMM2(m2 float64) float64 { return m2 * 1e6 }

// latencyNS converts seconds to nanoseconds ("_ns").
func latencyNS(s float64) float64 { return s * 1e9 }

// energyPJ converts joules to picojoules ("_pJ").
func energyPJ(j float64) float64 { return j * 1e12 }

// powerMW converts watts to milliwatts ("_mW").
func powerMW(w float64) float64 { return w * 1e3 }

// bandwidthSuffix renders a bytes-per-second rate with the K/M prefix chosen
// by spec.md §6 item 2's magnitude thresholds (1e3, 1e6), producing both the
// scaled value and its key suffix (e.g. 12.5e6 gives 12.5 and "MBps").
func bandwidthSuffix(bytesPerSecond float64) (value float64, suffix string) {
	switch {
	case bytesPerSecond >= 1e6:
		return bytesPerSecond / 1e6, "MBps"
	case bytesPerSecond >= 1e3:
		return bytesPerSecond / 1e3, "KBps"
	default:
		return bytesPerSecond, "Bps"
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
