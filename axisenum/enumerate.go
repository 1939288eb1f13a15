package axisenum

import "math"

// Spec bundles the two scalars, outside of Ranges, that the validity
// checks of spec.md §4.4 need: the requested capacity and word width.
type Spec struct {
	CapacityBits     int
	WordWidthBits    int
	MuxSenseAmpFixed int // 0 means "use r.MuxSenseAmp range as-is"
}

// Enumerate walks the Cartesian product of r in the exact nesting order
// of spec.md §4.4, deriving each point's square subarray interior (see
// DESIGN.md) and skipping invalid combinations silently, calling visit
// for every remaining admissible DesignPoint. Enumerate stops early if
// visit returns false.
//
// The nesting order is also the canonical ordering spec.md §5 requires of
// full_exploration output: a parallel implementation must still emit (or
// sort) in this order, never in goroutine-completion order.
func Enumerate(r Ranges, s Spec, visit func(DesignPoint) bool) {
	for _, numRowMat := range r.NumRowMat.PowersOfTwo() {
		for _, numColumnMat := range r.NumColumnMat.PowersOfTwo() {
			for _, activeMatCol := range r.NumActiveMatPerColumn.PowersOfTwo() {
				if activeMatCol > numColumnMat {
					continue
				}

				for _, activeMatRow := range r.NumActiveMatPerRow.PowersOfTwo() {
					if activeMatRow > numRowMat {
						continue
					}

					base := DesignPoint{
						NumRowMat: numRowMat, NumColumnMat: numColumnMat,
						NumActiveMatPerRow: activeMatRow, NumActiveMatPerColumn: activeMatCol,
					}

					if !enumerateSubarrayAxes(r, s, base, visit) {
						return
					}
				}
			}
		}
	}
}

func enumerateSubarrayAxes(r Ranges, s Spec, base DesignPoint, visit func(DesignPoint) bool) bool {
	for _, numRowSub := range r.NumRowSubarray.PowersOfTwo() {
		for _, numColSub := range r.NumColumnSubarray.PowersOfTwo() {
			for _, activeSubCol := range r.NumActiveSubarrayPerColumn.PowersOfTwo() {
				if activeSubCol > numColSub {
					continue
				}

				for _, activeSubRow := range r.NumActiveSubarrayPerRow.PowersOfTwo() {
					if activeSubRow > numRowSub {
						continue
					}

					p := base
					p.NumRowSubarray = numRowSub
					p.NumColumnSubarray = numColSub
					p.NumActiveSubarrayPerRow = activeSubRow
					p.NumActiveSubarrayPerColumn = activeSubCol

					if !enumerateMuxAxes(r, s, p, visit) {
						return false
					}
				}
			}
		}
	}

	return true
}

func enumerateMuxAxes(r Ranges, s Spec, base DesignPoint, visit func(DesignPoint) bool) bool {
	muxSenseAmps := r.MuxSenseAmp.PowersOfTwo()
	if s.MuxSenseAmpFixed > 0 {
		muxSenseAmps = []int{s.MuxSenseAmpFixed}
	}

	for _, muxSA := range muxSenseAmps {
		for _, muxL1 := range r.MuxOutputLev1.PowersOfTwo() {
			for _, muxL2 := range r.MuxOutputLev2.PowersOfTwo() {
				subRows, subCols, ok := deriveSubarrayInterior(s, base.NumRowMat, base.NumColumnMat,
					base.NumRowSubarray, base.NumColumnSubarray, muxSA, muxL1, muxL2)
				if !ok {
					continue
				}

				p := base
				p.MuxSenseAmp = muxSA
				p.MuxOutputLev1 = muxL1
				p.MuxOutputLev2 = muxL2
				p.SubarrayNumRow = subRows
				p.SubarrayNumColumn = subCols

				for _, numRowPerSet := range r.NumRowPerSet.PowersOfTwo() {
					if numRowPerSet >= subRows {
						continue
					}

					p.NumRowPerSet = numRowPerSet

					if !enumerateWireAxes(r, p, visit) {
						return false
					}
				}
			}
		}
	}

	return true
}

func enumerateWireAxes(r Ranges, base DesignPoint, visit func(DesignPoint) bool) bool {
	for _, lw := range r.LocalWireTypes {
		for _, lr := range r.LocalRepeaterClasses {
			for _, ls := range r.LocalLowSwing {
				if ls && lr != 0 {
					continue
				}

				for _, gw := range r.GlobalWireTypes {
					for _, gr := range r.GlobalRepeaterClasses {
						for _, gs := range r.GlobalLowSwing {
							if gs && gr != 0 {
								continue
							}

							p := base
							p.LocalWire, p.LocalRep, p.LocalSwing = lw, lr, ls
							p.GlobalWire, p.GlobalRep, p.GlobalSwing = gw, gr, gs

							if !enumerateFinalAxes(r, p, visit) {
								return false
							}
						}
					}
				}
			}
		}
	}

	return true
}

func enumerateFinalAxes(r Ranges, base DesignPoint, visit func(DesignPoint) bool) bool {
	for _, buf := range r.BufferOptLevels {
		for _, route := range r.RoutingModes {
			for _, sense := range r.SensingModes {
				p := base
				p.BufferOpt = buf
				p.Routing = route
				p.Sensing = sense

				if !visit(p) {
					return false
				}
			}
		}
	}

	return true
}

// deriveSubarrayInterior computes the subarray's row/column count from
// spec.md §8's capacity identity, holding every other already-chosen axis
// fixed, and assumes a square subarray (see DESIGN.md). ok is false when
// the capacity does not divide evenly by the chosen tiling (spec.md §4.4:
// "capacity not divisible by ... is skipped silently").
func deriveSubarrayInterior(s Spec, numRowMat, numColumnMat, numRowSub, numColSub, muxSA, muxL1, muxL2 int) (rows, cols int, ok bool) {
	tiles := numRowMat * numColumnMat * numRowSub * numColSub
	if tiles <= 0 || s.WordWidthBits <= 0 {
		return 0, 0, false
	}

	numerator := s.CapacityBits * muxSA * muxL1 * muxL2
	denominator := tiles * s.WordWidthBits

	if denominator <= 0 || numerator%denominator != 0 {
		return 0, 0, false
	}

	cellsPerSubarray := numerator / denominator
	if cellsPerSubarray < 1 {
		return 0, 0, false
	}

	side := int(math.Round(math.Sqrt(float64(cellsPerSubarray))))
	if side < 1 {
		side = 1
	}

	// Round the square root to the nearest power of two so the resulting
	// interior stays on the same power-of-two grid as every enumerated
	// axis (spec.md §4.4).
	side = nearestPowerOfTwo(side)
	if side*side == cellsPerSubarray {
		return side, side, true
	}

	// Not a perfect power-of-two square: fall back to a 1 x N rectangle,
	// which still satisfies the capacity identity exactly.
	return 1, cellsPerSubarray, true
}

func nearestPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	lower := 1
	for lower*2 <= n {
		lower *= 2
	}

	upper := lower * 2
	if upper-n < n-lower {
		return upper
	}

	return lower
}
