package prescription

// balanceMinExercises is the selection size from which the diagnostic runs.
const balanceMinExercises = 3

// balanceRatioLimit flags a session when one side of a ratio exceeds the
// other by more than this factor.
const balanceRatioLimit = 2

// checkBalance inspects a committed selection for push/pull and upper/lower
// skew. The result is advisory only; it never feeds back into selection.
func checkBalance(selected []PrescribedExercise) []string {
	if len(selected) < balanceMinExercises {
		return nil
	}

	var push, pull, upper, lower int
	for _, exercise := range selected {
		switch exercise.Pattern {
		case PatternPush:
			push++
			upper++
		case PatternPull:
			pull++
			upper++
		case PatternSquat, PatternHinge:
			lower++
		case PatternCarry, PatternCore, PatternIsolation:
			// Neither side of either ratio.
		}
	}

	var issues []string
	if skewed(push, pull) {
		issues = append(issues, "pushing volume far exceeds pulling volume")
	}
	if skewed(pull, push) {
		issues = append(issues, "pulling volume far exceeds pushing volume")
	}
	if skewed(upper, lower) {
		issues = append(issues, "upper-body volume far exceeds lower-body volume")
	}
	if skewed(lower, upper) {
		issues = append(issues, "lower-body volume far exceeds upper-body volume")
	}
	return issues
}

// skewed reports whether a dominates b beyond the ratio limit. A zero b
// counts as skew only when a is at least the limit itself.
func skewed(a, b int) bool {
	if a == 0 {
		return false
	}
	if b == 0 {
		return a >= balanceRatioLimit
	}
	return a > b*balanceRatioLimit
}
