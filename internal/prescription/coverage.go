package prescription

// updateCoverage records the muscles worked by a committed exercise. Entries
// are inserted on first sight and upgraded from secondary to primary when the
// muscle is primary for this exercise or its activation reaches the primary
// threshold. Entries are never removed and never downgraded; totals only grow.
func updateCoverage(coverage map[string]MuscleCoverage, exercise Exercise, sets int) {
	for muscle, activation := range exercise.Activations {
		level := ActivationSecondary
		if exercise.isPrimary(muscle) || activation >= primaryActivationThreshold {
			level = ActivationPrimary
		}
		entry, ok := coverage[muscle]
		if !ok {
			coverage[muscle] = MuscleCoverage{Level: level, TotalSets: sets}
			continue
		}
		entry.TotalSets += sets
		if level == ActivationPrimary {
			entry.Level = ActivationPrimary
		}
		coverage[muscle] = entry
	}
}
