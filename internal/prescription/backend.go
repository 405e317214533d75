package prescription

import (
	"math"
	"sort"
	"strconv"
)

// PackingResult is the backend output. Coverage keys and substitution values
// reference muscle and exercise ids; display names are decorated by the
// service layer.
type PackingResult struct {
	Exercises             []PrescribedExercise
	Coverage              map[string]MuscleCoverage
	ActualDurationSeconds int
	Substitutions         map[string][]PrescribedExercise
	BalanceIssues         []string
}

// SolverBackend packs a prescription from a catalog. Implementations must be
// synchronous, must never select an exercise twice, and must keep coverage
// monotone across the iterations of one solve. Backends are stateless across
// calls and safe for concurrent use.
type SolverBackend interface {
	Name() string
	Solve(catalog []Exercise, req PrescriptionRequest, windows RecoveryWindows) PackingResult
}

// emptyPackingResult is the non-error outcome when nothing is eligible or
// nothing fits.
func emptyPackingResult() PackingResult {
	return PackingResult{
		Exercises:     []PrescribedExercise{},
		Coverage:      map[string]MuscleCoverage{},
		Substitutions: map[string][]PrescribedExercise{},
	}
}

// prescribe freezes a committed exercise into its output form.
func prescribe(exercise Exercise, sets, reps, restSeconds, estimated int) PrescribedExercise {
	var secondary []string
	for muscle := range exercise.Activations {
		if !exercise.isPrimary(muscle) {
			secondary = append(secondary, muscle)
		}
	}
	sort.Strings(secondary)
	primary := make([]string, len(exercise.PrimaryMuscles))
	copy(primary, exercise.PrimaryMuscles)
	sort.Strings(primary)
	return PrescribedExercise{
		ExerciseID:       exercise.ID,
		Name:             exercise.Name,
		Sets:             sets,
		Reps:             strconv.Itoa(reps),
		RestSeconds:      restSeconds,
		EstimatedSeconds: estimated,
		PrimaryMuscles:   primary,
		SecondaryMuscles: secondary,
		Pattern:          exercise.Pattern,
	}
}

// scaledRest rounds the exercise's default rest by the goal multiplier.
func scaledRest(exercise Exercise, multiplier float64) int {
	return int(math.Round(float64(exercise.RestSeconds) * multiplier))
}
