package prescription

import "math/bits"

// muscleSet is a fixed-width bitset over an indexed muscle universe.
type muscleSet []uint64

func newMuscleSet(size int) muscleSet {
	return make(muscleSet, (size+63)/64)
}

func (s muscleSet) add(i int) {
	s[i/64] |= 1 << (i % 64)
}

func (s muscleSet) intersects(o muscleSet) bool {
	for w := range s {
		if s[w]&o[w] != 0 {
			return true
		}
	}
	return false
}

// countIn counts the bits of s also present in o.
func (s muscleSet) countIn(o muscleSet) int {
	n := 0
	for w := range s {
		n += bits.OnesCount64(s[w] & o[w])
	}
	return n
}

// countNotIn counts the bits of s absent from o.
func (s muscleSet) countNotIn(o muscleSet) int {
	n := 0
	for w := range s {
		n += bits.OnesCount64(s[w] &^ o[w])
	}
	return n
}

// MaskBackend is the accelerated solver. It precomputes per-exercise muscle
// bitmasks once, then filters and scores with bitwise operations instead of
// map lookups. Selection picks the running maximum with strict comparison so
// ties resolve to catalog order, matching the greedy backend candidate for
// candidate.
type MaskBackend struct {
	profiles *Profiles
}

// NewMaskBackend returns the bitmask-accelerated solver.
func NewMaskBackend(profiles *Profiles) *MaskBackend {
	return &MaskBackend{profiles: profiles}
}

// Name identifies the backend in logs and diagnostics.
func (b *MaskBackend) Name() string { return "mask" }

// maskedExercise carries an eligible exercise and its precomputed masks.
type maskedExercise struct {
	exercise Exercise
	// any marks every activated muscle, primary those in the primary list,
	// and strong those activated above the exclusion threshold.
	any, primary, strong muscleSet
}

func (b *MaskBackend) Solve(catalog []Exercise, req PrescriptionRequest, windows RecoveryWindows) PackingResult {
	index := buildMuscleIndex(catalog, req, windows)

	mask24 := newMuscleSet(len(index))
	mask48 := newMuscleSet(len(index))
	for muscle := range windows.Last24h {
		mask24.add(index[muscle])
	}
	for muscle := range windows.Last48h {
		mask48.add(index[muscle])
	}
	excludedMask := newMuscleSet(len(index))
	for _, muscle := range req.ExcludedMuscles {
		excludedMask.add(index[muscle])
	}
	excludedIDs := make(map[string]bool, len(req.ExcludedExercises))
	for _, id := range req.ExcludedExercises {
		excludedIDs[id] = true
	}

	eligibles := make([]maskedExercise, 0, len(catalog))
	for _, exercise := range catalog {
		if !exercise.availableAt(req.Location) || excludedIDs[exercise.ID] {
			continue
		}
		if req.Location != LocationGym && !equipmentSatisfied(exercise, req) {
			continue
		}
		masked := maskExercise(exercise, index)
		if masked.primary.intersects(excludedMask) || masked.strong.intersects(excludedMask) {
			continue
		}
		eligibles = append(eligibles, masked)
	}

	result := emptyPackingResult()
	if len(eligibles) == 0 {
		return result
	}

	remaining := req.TimeAvailable*60 - sessionOverheadSeconds(req.TimeAvailable)
	sets, reps := b.profiles.volumeFor(req.Goals)
	multiplier := b.profiles.restMultiplier(req.Goals)

	covered := newMuscleSet(len(index))
	selected := make(map[string]bool, len(eligibles))
	for remaining > minUsefulRemaining {
		scores := make([]float64, len(eligibles))
		skipped := make([]bool, len(eligibles))
		live := 0
		for i, masked := range eligibles {
			if selected[masked.exercise.ID] {
				skipped[i] = true
				continue
			}
			scores[i] = b.scoreMasked(masked, req, covered, mask24, mask48)
			live++
		}
		if live == 0 {
			break
		}

		committed := false
		for !committed {
			best := -1
			for i := range eligibles {
				if skipped[i] {
					continue
				}
				if best < 0 || scores[i] > scores[best] {
					best = i
				}
			}
			if best < 0 {
				break
			}
			masked := eligibles[best]
			estimated := estimateSeconds(masked.exercise, sets, reps, multiplier)
			if estimated > remaining {
				skipped[best] = true
				continue
			}
			selected[masked.exercise.ID] = true
			remaining -= estimated
			result.ActualDurationSeconds += estimated
			result.Exercises = append(result.Exercises, prescribe(masked.exercise, sets, reps, scaledRest(masked.exercise, multiplier), estimated))
			updateCoverage(result.Coverage, masked.exercise, sets)
			for w := range covered {
				covered[w] |= masked.any[w]
			}
			result.Substitutions[masked.exercise.ID] = b.substitutionsFor(masked.exercise, catalog, req, sets, reps, multiplier)
			committed = true
		}
		if !committed {
			break
		}
	}

	result.BalanceIssues = checkBalance(result.Exercises)
	return result
}

// scoreMasked mirrors score() term for term, with the per-muscle counts
// taken from popcounts instead of map iteration.
func (b *MaskBackend) scoreMasked(masked maskedExercise, req PrescriptionRequest, covered, mask24, mask48 muscleSet) float64 {
	weights := b.profiles.Weights
	exercise := masked.exercise

	goalHits := 0
	compoundGoalHits := 0
	for _, goal := range req.Goals {
		profile, ok := b.profiles.Goals[goal]
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

	fatigued24 := masked.any.countIn(mask24)
	fatigued48 := masked.any.countIn(mask48) - masked.any.countIn(mask24AndMask48(mask24, mask48))
	gaps := masked.any.countNotIn(covered)
	total += float64(fatigued24)*weights.RecoveryPenalty24h + float64(fatigued48)*weights.RecoveryPenalty48h
	total += float64(gaps) * weights.MuscleCoverageGap

	if band, ok := b.profiles.band(req.FitnessLevel); ok {
		switch {
		case exercise.Difficulty >= band.Min && exercise.Difficulty <= band.Max:
			total += weights.FitnessLevelMatch
		case exercise.Difficulty > band.Max:
			total -= overBandPenaltyPerTier * float64(exercise.Difficulty-band.Max)
		}
	}

	return total
}

// mask24AndMask48 returns the overlap of the two windows. The resolver keeps
// them disjoint, so this is normally empty, but the 24h window must win when
// a caller supplies overlapping sets.
func mask24AndMask48(mask24, mask48 muscleSet) muscleSet {
	overlap := make(muscleSet, len(mask24))
	for w := range mask24 {
		overlap[w] = mask24[w] & mask48[w]
	}
	return overlap
}

func (b *MaskBackend) substitutionsFor(exercise Exercise, catalog []Exercise, req PrescriptionRequest, sets, reps int, multiplier float64) []PrescribedExercise {
	alternatives := findSubstitutions(exercise, catalog, req)
	subs := make([]PrescribedExercise, 0, len(alternatives))
	for _, alt := range alternatives {
		estimated := estimateSeconds(alt, sets, reps, multiplier)
		subs = append(subs, prescribe(alt, sets, reps, scaledRest(alt, multiplier), estimated))
	}
	return subs
}

// buildMuscleIndex assigns a bit index to every muscle id mentioned by the
// catalog, the request, or the recovery windows.
func buildMuscleIndex(catalog []Exercise, req PrescriptionRequest, windows RecoveryWindows) map[string]int {
	index := make(map[string]int)
	assign := func(muscle string) {
		if _, ok := index[muscle]; !ok {
			index[muscle] = len(index)
		}
	}
	for _, exercise := range catalog {
		for muscle := range exercise.Activations {
			assign(muscle)
		}
		for _, muscle := range exercise.PrimaryMuscles {
			assign(muscle)
		}
	}
	for _, muscle := range req.ExcludedMuscles {
		assign(muscle)
	}
	for muscle := range windows.Last24h {
		assign(muscle)
	}
	for muscle := range windows.Last48h {
		assign(muscle)
	}
	return index
}

// maskExercise precomputes the three masks for one exercise.
func maskExercise(exercise Exercise, index map[string]int) maskedExercise {
	masked := maskedExercise{
		exercise: exercise,
		any:      newMuscleSet(len(index)),
		primary:  newMuscleSet(len(index)),
		strong:   newMuscleSet(len(index)),
	}
	for muscle, activation := range exercise.Activations {
		masked.any.add(index[muscle])
		if activation > excludedActivationThreshold {
			masked.strong.add(index[muscle])
		}
	}
	for _, muscle := range exercise.PrimaryMuscles {
		masked.primary.add(index[muscle])
	}
	return masked
}
