package prescription

// overBandPenaltyPerTier is subtracted per difficulty tier above the fitness
// band maximum.
const overBandPenaltyPerTier = 5.0

// score computes the additive desirability of one candidate exercise given
// the request and the current solve state. The five terms are counted as
// integers before the weight multiplication so the result is independent of
// map iteration order.
func score(exercise Exercise, req PrescriptionRequest, coverage map[string]MuscleCoverage, windows RecoveryWindows, profiles *Profiles) float64 {
	weights := profiles.Weights

	goalHits := 0
	compoundGoalHits := 0
	for _, goal := range req.Goals {
		profile, ok := profiles.Goals[goal]
		if !ok {
			continue
		}
		if profile.prefersPattern(exercise.Pattern) {
			goalHits++
		}
		if profile.PrefersCompound && exercise.Compound {
			compoundGoalHits++
		}
	}
	total := float64(goalHits)*weights.GoalAlignment + float64(compoundGoalHits)*weights.GoalAlignment/2

	if exercise.Compound {
		total += weights.CompoundPreference
	}

	fatigued24 := 0
	fatigued48 := 0
	gaps := 0
	for muscle := range exercise.Activations {
		switch {
		case windows.Last24h[muscle]:
			fatigued24++
		case windows.Last48h[muscle]:
			fatigued48++
		}
		if _, covered := coverage[muscle]; !covered {
			gaps++
		}
	}
	total += float64(fatigued24)*weights.RecoveryPenalty24h + float64(fatigued48)*weights.RecoveryPenalty48h
	total += float64(gaps) * weights.MuscleCoverageGap

	if band, ok := profiles.band(req.FitnessLevel); ok {
		switch {
		case exercise.Difficulty >= band.Min && exercise.Difficulty <= band.Max:
			total += weights.FitnessLevelMatch
		case exercise.Difficulty > band.Max:
			total -= overBandPenaltyPerTier * float64(exercise.Difficulty-band.Max)
		}
	}

	return total
}
