package axisenum_test

import (
	"testing"

	"github.com/bobuhiro11/memsysexplorer/axisenum"
)

func TestRangePowersOfTwo(t *testing.T) {
	t.Parallel()

	got := axisenum.Range{Min: 1, Max: 8}.PowersOfTwo()
	want := []int{1, 2, 4, 8}

	if len(got) != len(want) {
		t.Fatalf("PowersOfTwo() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PowersOfTwo() = %v, want %v", got, want)
		}
	}
}

func TestRangePowersOfTwoSkipsBelowMin(t *testing.T) {
	t.Parallel()

	got := axisenum.Range{Min: 3, Max: 8}.PowersOfTwo()
	want := []int{4, 8}

	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("PowersOfTwo() = %v, want %v", got, want)
	}
}

func TestEnumerateSkipsActiveCountAboveTotal(t *testing.T) {
	t.Parallel()

	r := axisenum.Default()
	r.NumRowMat = axisenum.Range{Min: 2, Max: 2}
	r.NumColumnMat = axisenum.Range{Min: 2, Max: 2}
	r.NumActiveMatPerRow = axisenum.Range{Min: 1, Max: 4}
	r.NumActiveMatPerColumn = axisenum.Range{Min: 1, Max: 4}

	s := axisenum.Spec{CapacityBits: 32 * 1024 * 8, WordWidthBits: 64}

	axisenum.Enumerate(r, s, func(p axisenum.DesignPoint) bool {
		if p.NumActiveMatPerRow > p.NumRowMat {
			t.Fatalf("active mat rows %d exceeds total %d", p.NumActiveMatPerRow, p.NumRowMat)
		}

		if p.NumActiveMatPerColumn > p.NumColumnMat {
			t.Fatalf("active mat columns %d exceeds total %d", p.NumActiveMatPerColumn, p.NumColumnMat)
		}

		return true
	})
}

func TestEnumerateSatisfiesCapacityIdentity(t *testing.T) {
	t.Parallel()

	r := axisenum.Default()
	s := axisenum.Spec{CapacityBits: 32 * 1024 * 8, WordWidthBits: 512}

	count := 0

	axisenum.Enumerate(r, s, func(p axisenum.DesignPoint) bool {
		count++

		lhs := p.NumRowMat * p.NumColumnMat * p.NumRowSubarray * p.NumColumnSubarray *
			p.SubarrayNumRow * p.SubarrayNumColumn * s.WordWidthBits
		rhs := s.CapacityBits * p.MuxSenseAmp * p.MuxOutputLev1 * p.MuxOutputLev2

		if lhs != rhs {
			t.Fatalf("capacity identity violated: lhs=%d rhs=%d point=%+v", lhs, rhs, p)
		}

		return count < 20
	})

	if count == 0 {
		t.Fatalf("expected at least one admissible point")
	}
}

func TestEnumerateStopsWhenVisitReturnsFalse(t *testing.T) {
	t.Parallel()

	r := axisenum.Default()
	s := axisenum.Spec{CapacityBits: 4 * 1024 * 8, WordWidthBits: 64}

	count := 0

	axisenum.Enumerate(r, s, func(axisenum.DesignPoint) bool {
		count++
		return count < 3
	})

	if count != 3 {
		t.Fatalf("expected Enumerate to stop after 3 points, visited %d", count)
	}
}

func TestApplyCactiAssumptionLocksAxes(t *testing.T) {
	t.Parallel()

	r := axisenum.Default()
	r.ApplyCactiAssumption(64)

	if r.NumActiveMatPerColumn.Min != 64 || r.NumActiveMatPerColumn.Max != 64 {
		t.Fatalf("expected NumActiveMatPerColumn locked to 64, got %+v", r.NumActiveMatPerColumn)
	}

	if r.NumRowSubarray.Min != 2 || r.NumRowSubarray.Max != 2 {
		t.Fatalf("expected NumRowSubarray locked to 2, got %+v", r.NumRowSubarray)
	}
}

func TestForceKeysOverrideCactiAssumption(t *testing.T) {
	t.Parallel()

	r := axisenum.Default()
	r.ApplyCactiAssumption(64)

	f := axisenum.ForceKeys{BankTotalRows: 4, BankTotalColumns: 4, BankActiveRows: 1, BankActiveColumns: 4, MuxSenseAmp: 2}
	f.Apply(&r)

	if r.NumRowMat.Min != 4 || r.NumRowMat.Max != 4 {
		t.Fatalf("expected NumRowMat forced to 4, got %+v", r.NumRowMat)
	}

	if r.NumActiveMatPerColumn.Min != 4 {
		t.Fatalf("expected force key to override CACTI assumption, got %+v", r.NumActiveMatPerColumn)
	}

	if r.MuxSenseAmp.Min != 2 || r.MuxSenseAmp.Max != 2 {
		t.Fatalf("expected MuxSenseAmp forced to 2, got %+v", r.MuxSenseAmp)
	}
}

func TestShouldPruneRespectsUnboundedLimits(t *testing.T) {
	t.Parallel()

	b := axisenum.Bound{AreaM2: 10, LeakageW: 1, LatencyS: 1}

	if axisenum.ShouldPrune(b, axisenum.Limits{}) {
		t.Fatalf("expected no pruning when every limit is unbounded (zero)")
	}

	if !axisenum.ShouldPrune(b, axisenum.Limits{AreaM2: 5}) {
		t.Fatalf("expected pruning when area bound exceeds a positive limit")
	}
}
