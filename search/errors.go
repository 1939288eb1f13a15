package search

import "errors"

// ErrInfeasible is spec.md §7's infeasibility error: no candidate in the
// entire enumerated space satisfied every active constraint. Always
// wrapped with the most-frequently-violated constraint class.
var ErrInfeasible = errors.New("no admissible design point satisfies the given constraints")
