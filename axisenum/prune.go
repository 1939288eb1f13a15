package axisenum

// Bound is a cheap, monotone lower bound on one scalar metric, computed
// from the axes alone before arraymodel is ever invoked (spec.md §4.4:
// "a cheap lower-bound on any active constraint is already violated").
// Larger tile counts and mux levels can only add area, leakage and
// latency, never remove it, so a bound computed from the smallest
// remaining axis values is always an admissible lower bound on the true
// cost of any completion.
type Bound struct {
	AreaM2   float64
	LeakageW float64
	LatencyS float64
}

// Limits is the subset of spec.md §3.1's constraint fields pruning cares
// about; an "invalid" (<=0 treated as unbounded) limit never prunes.
type Limits struct {
	AreaM2   float64
	LeakageW float64
	LatencyS float64
}

// ShouldPrune reports whether a candidate at this point can be discarded
// without full evaluation: true when some already-computed lower bound
// strictly exceeds an active (positive) limit. Pruning must never reject
// a point that unpruned evaluation would admit (spec.md §4.4: "Pruning
// must not change which point wins"), so ShouldPrune only ever compares
// bound <= limit, never equates or estimates the true value.
func ShouldPrune(b Bound, l Limits) bool {
	if l.AreaM2 > 0 && b.AreaM2 > l.AreaM2 {
		return true
	}

	if l.LeakageW > 0 && b.LeakageW > l.LeakageW {
		return true
	}

	if l.LatencyS > 0 && b.LatencyS > l.LatencyS {
		return true
	}

	return false
}

// LowerBound derives a cheap Bound for a DesignPoint from the axes alone:
// area grows with every tile count, leakage with every tile count, and
// latency with every mux level (spec.md §5: "Pruning lower bounds ...
// area and leakage are monotone non-decreasing in every tile-count axis;
// latency is monotone non-decreasing in mux levels"). unitAreaM2 and
// unitLeakageW are the per-tile cost of the single smallest subarray
// already evaluated once per run, so repeated calls stay cheap.
func LowerBound(p DesignPoint, unitAreaM2, unitLeakageW, unitLatencyS float64) Bound {
	totalMats := p.NumRowMat * p.NumColumnMat
	totalSubarrays := p.NumRowSubarray * p.NumColumnSubarray

	tiles := float64(totalMats * totalSubarrays)
	muxLevels := float64(p.MuxSenseAmp + p.MuxOutputLev1 + p.MuxOutputLev2)

	return Bound{
		AreaM2:   tiles * unitAreaM2,
		LeakageW: tiles * unitLeakageW,
		LatencyS: muxLevels * unitLatencyS,
	}
}
