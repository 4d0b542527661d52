package comparison

// MoreVolatile names the instrument with the strictly greater beta.
//
// Equal betas resolve to B. The tie-break is arbitrary and carries no financial
// meaning. If either beta is undefined the verdict is undetermined.
func MoreVolatile(betaA, betaB Metric) Verdict {
	a, okA := betaA.Float()
	b, okB := betaB.Float()
	if !okA || !okB {
		return VerdictUndetermined
	}
	if a > b {
		return VerdictA
	}
	return VerdictB
}
