package prescription

// substitutionLimit caps the alternatives reported per committed exercise.
const substitutionLimit = 3

// findSubstitutions returns up to substitutionLimit alternatives for a
// committed exercise, in catalog order. A candidate must be a different
// exercise, share at least one primary muscle, and be performable at the
// requested location with the owned equipment. Exclusions and recovery are
// deliberately not re-applied; substitutes are suggestions, not selections.
func findSubstitutions(exercise Exercise, catalog []Exercise, req PrescriptionRequest) []Exercise {
	var subs []Exercise
	for _, candidate := range catalog {
		if candidate.ID == exercise.ID {
			continue
		}
		if !candidate.availableAt(req.Location) {
			continue
		}
		if req.Location != LocationGym && !equipmentSatisfied(candidate, req) {
			continue
		}
		if !sharesPrimaryMuscle(candidate, exercise) {
			continue
		}
		subs = append(subs, candidate)
		if len(subs) == substitutionLimit {
			break
		}
	}
	return subs
}

func equipmentSatisfied(exercise Exercise, req PrescriptionRequest) bool {
	for _, tag := range exercise.RequiredEquipment {
		if !req.ownsEquipment(tag) {
			return false
		}
	}
	return true
}

func sharesPrimaryMuscle(a, b Exercise) bool {
	for _, muscle := range a.PrimaryMuscles {
		if b.isPrimary(muscle) {
			return true
		}
	}
	return false
}
