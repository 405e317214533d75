package prescription

import "sort"

// GreedyBackend is the default solver. Each iteration scores every remaining
// eligible exercise against the current coverage and recovery state, sorts
// descending with a stable sort so ties keep catalog order, and commits the
// best candidate whose estimated time fits the remaining budget.
type GreedyBackend struct {
	profiles *Profiles
}

// NewGreedyBackend returns a greedy solver using the given tuning profiles.
func NewGreedyBackend(profiles *Profiles) *GreedyBackend {
	return &GreedyBackend{profiles: profiles}
}

// Name identifies the backend in logs and diagnostics.
func (b *GreedyBackend) Name() string { return "greedy" }

// Solve packs exercises until the remaining budget drops to a minute or less
// or no candidate fits. A catalog with no eligible exercise yields an empty
// result, not an error.
func (b *GreedyBackend) Solve(catalog []Exercise, req PrescriptionRequest, windows RecoveryWindows) PackingResult {
	eligibles := filterEligible(catalog, req)
	result := emptyPackingResult()
	if len(eligibles) == 0 {
		return result
	}

	remaining := req.TimeAvailable*60 - sessionOverheadSeconds(req.TimeAvailable)
	sets, reps := b.profiles.volumeFor(req.Goals)
	multiplier := b.profiles.restMultiplier(req.Goals)

	selected := make(map[string]bool, len(eligibles))
	for remaining > minUsefulRemaining {
		type candidate struct {
			index int
			score float64
		}
		ranked := make([]candidate, 0, len(eligibles))
		for i, exercise := range eligibles {
			if selected[exercise.ID] {
				continue
			}
			ranked = append(ranked, candidate{
				index: i,
				score: score(exercise, req, result.Coverage, windows, b.profiles),
			})
		}
		if len(ranked) == 0 {
			break
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].score > ranked[j].score
		})

		committed := false
		for _, cand := range ranked {
			exercise := eligibles[cand.index]
			estimated := estimateSeconds(exercise, sets, reps, multiplier)
			if estimated > remaining {
				continue
			}
			selected[exercise.ID] = true
			remaining -= estimated
			result.ActualDurationSeconds += estimated
			result.Exercises = append(result.Exercises, prescribe(exercise, sets, reps, scaledRest(exercise, multiplier), estimated))
			updateCoverage(result.Coverage, exercise, sets)
			result.Substitutions[exercise.ID] = b.substitutionsFor(exercise, catalog, req, sets, reps, multiplier)
			committed = true
			break
		}
		if !committed {
			break
		}
	}

	result.BalanceIssues = checkBalance(result.Exercises)
	return result
}

func (b *GreedyBackend) substitutionsFor(exercise Exercise, catalog []Exercise, req PrescriptionRequest, sets, reps int, multiplier float64) []PrescribedExercise {
	alternatives := findSubstitutions(exercise, catalog, req)
	subs := make([]PrescribedExercise, 0, len(alternatives))
	for _, alt := range alternatives {
		estimated := estimateSeconds(alt, sets, reps, multiplier)
		subs = append(subs, prescribe(alt, sets, reps, scaledRest(alt, multiplier), estimated))
	}
	return subs
}
