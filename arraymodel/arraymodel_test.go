package arraymodel_test

import (
	"testing"

	"github.com/bobuhiro11/memsysexplorer/arraymodel"
	"github.com/bobuhiro11/memsysexplorer/cell"
	"github.com/bobuhiro11/memsysexplorer/paramtypes"
	"github.com/bobuhiro11/memsysexplorer/techmodel"
	"github.com/bobuhiro11/memsysexplorer/wire"
)

func sramCell() *cell.Cell {
	return &cell.Cell{
		Type:              paramtypes.SRAM,
		AreaF2:            146,
		CapacitanceF:      1e-15,
		ReadVoltageV:      1.0,
		ReadPowerW:        1e-4,
		MinSenseVoltageV:  0.1,
		AccessWidthNMOSUm: 0.2,
	}
}

func subarrayPoint() arraymodel.SubarrayPoint {
	return arraymodel.SubarrayPoint{
		NumRow:        128,
		NumColumn:     128,
		MuxSenseAmp:   8,
		MuxOutputLev1: 2,
		MuxOutputLev2: 2,
		WordWidthBits: 64,
		IsCache:       true,
	}
}

func TestComputeSubarrayPositiveTotals(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	sub := arraymodel.ComputeSubarray(ctx, c, subarrayPoint())

	if sub.Total.ReadLatencyS <= 0 {
		t.Fatalf("expected positive read latency, got %v", sub.Total.ReadLatencyS)
	}

	if sub.Total.ReadEnergyJ <= 0 {
		t.Fatalf("expected positive read energy, got %v", sub.Total.ReadEnergyJ)
	}
}

func TestComputeMatScalesEnergyByActiveTiles(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	one := arraymodel.ComputeMat(ctx, c, arraymodel.MatPoint{
		NumRowSubarray: 2, NumColumnSubarray: 2,
		NumActiveSubarrayPerRow: 1, NumActiveSubarrayPerColumn: 1,
		Subarray: subarrayPoint(),
	})

	two := arraymodel.ComputeMat(ctx, c, arraymodel.MatPoint{
		NumRowSubarray: 2, NumColumnSubarray: 2,
		NumActiveSubarrayPerRow: 2, NumActiveSubarrayPerColumn: 1,
		Subarray: subarrayPoint(),
	})

	if two.Total.ReadEnergyJ <= one.Total.ReadEnergyJ {
		t.Fatalf("expected more active subarrays to cost more energy: one=%v two=%v",
			one.Total.ReadEnergyJ, two.Total.ReadEnergyJ)
	}

	if two.Total.LeakageW != one.Total.LeakageW {
		t.Fatalf("expected equal leakage regardless of active count (same total tiles): one=%v two=%v",
			one.Total.LeakageW, two.Total.LeakageW)
	}
}

func TestComputeBankHTreeVsNonHTreeLatencyDiffer(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	point := arraymodel.BankPoint{
		NumRowMat: 4, NumColumnMat: 4,
		NumActiveMatPerRow: 1, NumActiveMatPerColumn: 1,
		Mat: arraymodel.MatPoint{
			NumRowSubarray: 1, NumColumnSubarray: 1,
			NumActiveSubarrayPerRow: 1, NumActiveSubarrayPerColumn: 1,
			Subarray: subarrayPoint(),
		},
		Routing: wire.Config{Type: paramtypes.GlobalAggressive, LengthM: 2000e-6},
	}

	htree := arraymodel.ComputeBank(ctx, c, point, arraymodel.NewHTreeRouting())
	bus := arraymodel.ComputeBank(ctx, c, point, arraymodel.NewNonHTreeRouting())

	if htree.Total.ReadLatencyS == bus.Total.ReadLatencyS {
		t.Fatalf("expected H-tree and non-H-tree routing to produce different latency")
	}

	if htree.ReadBandwidthBps <= 0 {
		t.Fatalf("expected positive read bandwidth, got %v", htree.ReadBandwidthBps)
	}
}

func TestBankCloneIsIndependent(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := sramCell()

	point := arraymodel.BankPoint{
		NumRowMat: 2, NumColumnMat: 2,
		NumActiveMatPerRow: 1, NumActiveMatPerColumn: 1,
		Mat: arraymodel.MatPoint{
			NumRowSubarray: 1, NumColumnSubarray: 1,
			NumActiveSubarrayPerRow: 1, NumActiveSubarrayPerColumn: 1,
			Subarray: subarrayPoint(),
		},
		Routing: wire.Config{Type: paramtypes.LocalAggressive, LengthM: 50e-6},
	}

	original := arraymodel.ComputeBank(ctx, c, point, arraymodel.NewHTreeRouting())
	clone := original.Clone()

	clone.Stages[0].AreaM2 = -1

	if original.Stages[0].AreaM2 == -1 {
		t.Fatalf("mutating clone's Stages must not affect original")
	}
}

func TestDRAMFamilyBankHasRefreshPower(t *testing.T) {
	t.Parallel()

	ctx := techmodel.NewContext(45, paramtypes.HP, 350)
	c := &cell.Cell{
		Type:                    paramtypes.EDRAM,
		CapacitanceF:            1e-15,
		AreaF2:                  60,
		AccessWidthNMOSUm:       0.2,
		DRAMStorageCapF:         2e-14,
		DRAMMaxStorageNodeDropV: 0.3,
	}
	c.ApplyPVT(ctx)

	point := arraymodel.BankPoint{
		NumRowMat: 1, NumColumnMat: 1,
		NumActiveMatPerRow: 1, NumActiveMatPerColumn: 1,
		Mat: arraymodel.MatPoint{
			NumRowSubarray: 1, NumColumnSubarray: 1,
			NumActiveSubarrayPerRow: 1, NumActiveSubarrayPerColumn: 1,
			Subarray: subarrayPoint(),
		},
		Routing: wire.Config{Type: paramtypes.LocalAggressive, LengthM: 50e-6},
	}

	bank := arraymodel.ComputeBank(ctx, c, point, arraymodel.NewHTreeRouting())

	if bank.RefreshPowerW <= 0 {
		t.Fatalf("expected positive refresh power for eDRAM bank, got %v", bank.RefreshPowerW)
	}
}
