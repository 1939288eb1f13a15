// Package config ties the parameter/cell documents (paramdoc, cell) to the
// search driver: it loads both documents, derives the per-run capacity and
// word width for the data array and (cache design targets only) the tag
// array, and runs the engine once or twice per SPEC_FULL.md §7.
//
// Adapted from gokvm's flag package: runs.go wires a kong CLI to an
// Init/Setup/Boot orchestration sequence and maps a failure at any stage
// to a returned error; config.Run plays the same role over
// Load-document/Explore/Compose instead of over a VM lifecycle.
package config

import (
	"fmt"
	"math"

	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/paramdoc"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/search"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
)

// CLI is the kong command-line schema of SPEC_FULL.md §7:
// `memsysexplorer <param-file> [out-dir]`.
type CLI struct {
	ParamFile string `arg:"" help:"Path to the parameter YAML document."`
	OutDir    string `arg:"" optional:"" help:"Directory to write report.txt/report.yaml; stdout if omitted."`
}

// Outcome is everything main/report needs after a run: the data-array
// result always, the tag-array result and composed CacheResult only for
// DesignTarget == Cache, and the full candidate list only when the
// objective is FullExploration.
type Outcome struct {
	Design paramtypes.DesignTarget

	// Param and Cell are the already-loaded documents this run evaluated,
	// carried here so report rendering never has to re-open either file
	// (spec.md §5: "File I/O happens exactly twice per run: parameters
	// in, report out").
	Param paramdoc.InputParameter
	Cell  *cell.Cell

	Data  Result
	Tag   *Result
	Cache *search.CacheResult

	FullExploration []search.Result
}

// Result re-exports search.Result so callers of this package need not
// import search directly for the common case.
type Result = search.Result

// Run loads paramFile (and the cell document it names), runs the engine
// once (RAM/CAM chip) or twice (cache), and composes the cache result
// when applicable.
func Run(paramFile string) (Outcome, error) {
	param, err := paramdoc.LoadFile(paramFile)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %s", ErrBadDocument, err)
	}

	if param.MemoryCellInputFile == "" {
		return Outcome{}, fmt.Errorf("%w: MemoryCellInputFile is required", ErrBadDocument)
	}

	c, err := cell.LoadFile(param.MemoryCellInputFile)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %s", ErrBadDocument, err)
	}

	if err := techmodel.ValidateNode(param.ProcessNodeReadNM); err != nil {
		return Outcome{}, fmt.Errorf("%w: %s", ErrBadDocument, err)
	}

	if err := techmodel.ValidateNode(param.ProcessNodeWriteNM); err != nil {
		return Outcome{}, fmt.Errorf("%w: %s", ErrBadDocument, err)
	}

	ctx := techmodel.NewAsymmetricContext(
		param.ProcessNodeReadNM, param.DeviceRoadmapRead,
		param.ProcessNodeWriteNM, param.DeviceRoadmapWrite,
		param.TemperatureK,
	)
	c.ApplyPVT(ctx)

	dataIncumbent, dataAll, err := search.Explore(ctx, c, param, paramtypes.DataArray,
		param.CapacityBits, param.WordWidthBits)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Design: param.DesignTarget, Param: param, Cell: c}

	if param.OptimizationTarget == paramtypes.FullExploration {
		out.FullExploration = dataAll
		return out, nil
	}

	out.Data = *dataIncumbent

	if param.DesignTarget != paramtypes.Cache {
		return out, nil
	}

	tagCapacityBits, tagWordWidthBits := TagSpec(param)

	tagIncumbent, _, err := search.Explore(ctx, c, param, paramtypes.TagArray, tagCapacityBits, tagWordWidthBits)
	if err != nil {
		return Outcome{}, err
	}

	out.Tag = tagIncumbent

	composed := search.Compose(out.Data, *tagIncumbent, c, param.CacheAccessMode)
	out.Cache = &composed

	return out, nil
}

// tagOverheadBits is the per-tag valid/dirty bit overhead added on top of
// the set-index complement bits (Open Question, not named by spec.md:
// see DESIGN.md).
const tagOverheadBits = 2

// TagSpec derives the tag array's capacity and word width from the
// already-normalized InputParameter (spec.md §4.6: "width = tag bits,
// rows = number of sets; associativity determines the number of physical
// ways"). One row holds every way's tag for its set, so the tag array's
// word width is associativity*tagBits and its capacity is
// numSets*associativity*tagBits.
func TagSpec(p paramdoc.InputParameter) (capacityBits, wordWidthBits int) {
	assoc := p.Associativity
	if assoc < 1 {
		assoc = 1
	}

	numSets := p.CapacityBits / (p.WordWidthBits * assoc)
	if numSets < 1 {
		numSets = 1
	}

	tagBits := int(math.Ceil(math.Log2(float64(numSets)))) + tagOverheadBits
	if tagBits < 1 {
		tagBits = 1
	}

	wordWidthBits = assoc * tagBits
	capacityBits = numSets * wordWidthBits

	return capacityBits, wordWidthBits
}
