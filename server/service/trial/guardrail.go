package trial

// MaxConsecutiveFailures is the reject count at which the two-strikes
// guardrail forces manual entry within the current trial.
const MaxConsecutiveFailures = 2

// ShouldAbstain reports whether the abstention guardrail withholds the
// accept/override/reject controls for the revealed assessment. Abstention is
// a display decision only: it counts no rejection and leaves the decision
// window untouched.
func ShouldAbstain(a *Assessment) bool {
	return a != nil && a.Uncertainty == UncertaintyHigh
}

// NextAfterReject applies the two-strikes guardrail to the incremented
// consecutive-reject count. It returns the next view, the fail count to
// store, and whether the decision window closes. When the guardrail fires the
// count resets to zero at that instant, not on the next success.
func NextAfterReject(failCount int) (View, int, bool) {
	if failCount >= MaxConsecutiveFailures {
		return ViewManual, 0, true
	}
	return ViewUpload, failCount, false
}
