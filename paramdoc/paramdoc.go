// Package paramdoc reads the hierarchical parameter document of spec.md
// §3.1/§4.1/§6 into the canonical InputParameter struct: it accepts both
// the nested (`Capacity: {Value, Unit}`) and flat (`Capacity_KB`)
// spellings, merges them last-read-wins, applies the CACTI-assumption
// shortcut and Force* key collapsing in the stated order, and converts
// flash page/block sizes to bits once, at ingestion.
//
// Adapted from gokvm's bootproto package: a single-purpose decode-and-
// validate step reading one structured blob and failing fast on an
// unrecognized field, here reading a YAML tree instead of a binary
// header and reconciling two spellings instead of negotiating a version.
package paramdoc

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bobuhiro11/memsysexplorer/axisenum"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
)

// InputParameter is the canonical, fully-normalized parameter set of
// spec.md §3.1: one value per run, after nested/flat reconciliation,
// the CACTI shortcut, and Force* collapsing have all been applied.
type InputParameter struct {
	DesignTarget       paramtypes.DesignTarget
	OptimizationTarget paramtypes.OptimizationTarget

	CapacityBits      int
	WordWidthBits     int
	Associativity     int
	CacheAccessMode   paramtypes.CacheAccessMode

	ProcessNodeReadNM  int
	ProcessNodeWriteNM int
	DeviceRoadmapRead  paramtypes.DeviceRoadmap
	DeviceRoadmapWrite paramtypes.DeviceRoadmap
	TemperatureK       float64

	Ranges axisenum.Ranges

	WriteScheme paramtypes.WriteScheme

	FlashPageSizeBits  int
	FlashBlockSizeBits int

	EnablePruning      bool
	UseCactiAssumption bool

	Constraints Constraints

	MemoryCellInputFile string
}

// Constraints holds spec.md §3.1's optional admissibility bounds. A zero
// (or any non-positive) value means "unbounded".
type Constraints struct {
	ReadLatencyS   float64
	WriteLatencyS  float64
	ReadEnergyJ    float64
	WriteEnergyJ   float64
	ReadEDP        float64
	WriteEDP       float64
	LeakageW       float64
	AreaM2         float64
}

// Load reads and normalizes one parameter document from r. name is used
// only in error messages (typically the file path).
//
// Decoding into a *yaml.Node (rather than a map[string]any) is what
// preserves the document's original key order, which the last-read-wins
// dual-spelling rule of spec.md §4.1/§9 depends on — a Go map's iteration
// order is unspecified and would make that rule unreproducible.
func Load(r io.Reader, name string) (InputParameter, error) {
	var root yaml.Node

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return InputParameter{}, fmt.Errorf("paramdoc: decode %s: %w", name, err)
	}

	return fromDocument(&root)
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (InputParameter, error) {
	f, err := os.Open(path)
	if err != nil {
		return InputParameter{}, fmt.Errorf("paramdoc: %w", err)
	}
	defer f.Close()

	return Load(f, path)
}
