package evaluator

// DeltaPolicy decides how the two fee-adjusted direct-buy deltas gate a flip.
// The boundary comparison is deliberately a named policy: it is the one rule
// whose intended operator is debatable, so changing it is a one-line swap
// covered by tests rather than an edit buried in a compound condition.
type DeltaPolicy int

const (
	// RequireAny accepts when at least one delta exceeds the threshold.
	RequireAny DeltaPolicy = iota
	// RequireBoth accepts only when both deltas exceed the threshold.
	RequireBoth
)

// Accept applies the policy. Comparisons are strict: a delta exactly at the
// threshold does not clear it.
func (p DeltaPolicy) Accept(delta1, delta2, threshold float64) bool {
	if p == RequireBoth {
		return delta1 > threshold && delta2 > threshold
	}
	return delta1 > threshold || delta2 > threshold
}
