package paramdoc_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bobuhiro11/memsysexplorer/paramdoc"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
)

func TestLoadDefaultsAndBasicScalars(t *testing.T) {
	t.Parallel()

	doc := `
DesignTarget: cache
OptimizationTarget: ReadLatency
Capacity_KB: 32
WordWidth: 512
Associativity: 8
ProcessNode: 45
`
	p, err := paramdoc.Load(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p.DesignTarget != paramtypes.Cache {
		t.Fatalf("DesignTarget = %v, want Cache", p.DesignTarget)
	}

	if p.CapacityBits != 32*1024*8 {
		t.Fatalf("CapacityBits = %d, want %d", p.CapacityBits, 32*1024*8)
	}

	if p.WordWidthBits != 512 {
		t.Fatalf("WordWidthBits = %d, want 512", p.WordWidthBits)
	}

	if p.ProcessNodeReadNM != 45 || p.ProcessNodeWriteNM != 45 {
		t.Fatalf("ProcessNode = %d/%d, want 45/45", p.ProcessNodeReadNM, p.ProcessNodeWriteNM)
	}
}

// TestDualSpellingLastReadWins pins the Open Question #2 decision
// (DESIGN.md): when both the nested and flat spellings of Capacity
// appear, whichever is later in file order wins, not the nested form
// unconditionally.
func TestDualSpellingLastReadWins(t *testing.T) {
	t.Parallel()

	nestedFirst := `
Capacity:
  Value: 16
  Unit: KB
Capacity_KB: 32
`
	p, err := paramdoc.Load(strings.NewReader(nestedFirst), "test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if want := 32 * 1024 * 8; p.CapacityBits != want {
		t.Fatalf("CapacityBits = %d, want %d (flat form, read last)", p.CapacityBits, want)
	}

	flatFirst := `
Capacity_KB: 32
Capacity:
  Value: 16
  Unit: KB
`
	p2, err := paramdoc.Load(strings.NewReader(flatFirst), "test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if want := 16 * 1024 * 8; p2.CapacityBits != want {
		t.Fatalf("CapacityBits = %d, want %d (nested form, read last)", p2.CapacityBits, want)
	}
}

func TestUnknownEnumValueIsFatal(t *testing.T) {
	t.Parallel()

	doc := `DesignTarget: not_a_real_target`

	if _, err := paramdoc.Load(strings.NewReader(doc), "test"); err == nil {
		t.Fatalf("expected an error for an unrecognized DesignTarget spelling")
	}
}

func TestForceKeysCollapseRanges(t *testing.T) {
	t.Parallel()

	doc := `
ForceBank:
  TotalRows: 4
  TotalColumns: 4
  ActiveRows: 1
  ActiveColumns: 4
ForceMuxSenseAmp: 2
`
	p, err := paramdoc.Load(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p.Ranges.NumRowMat.Min != 4 || p.Ranges.NumRowMat.Max != 4 {
		t.Fatalf("NumRowMat = %+v, want {4,4}", p.Ranges.NumRowMat)
	}

	if p.Ranges.MuxSenseAmp.Min != 2 || p.Ranges.MuxSenseAmp.Max != 2 {
		t.Fatalf("MuxSenseAmp = %+v, want {2,2}", p.Ranges.MuxSenseAmp)
	}
}

func TestIdempotentReread(t *testing.T) {
	t.Parallel()

	doc := `
Capacity_KB: 32
WordWidth: 512
DesignTarget: cache
`
	p1, err := paramdoc.Load(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatalf("Load #1: %v", err)
	}

	p2, err := paramdoc.Load(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatalf("Load #2: %v", err)
	}

	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Fatalf("re-reading the same document produced different canonical state (-first +second):\n%s", diff)
	}
}
