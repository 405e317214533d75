package prescription

// eligible applies the hard constraints. An exercise passes only when it is
// available at the location, all required equipment is owned (or the location
// is a gym), it is not explicitly excluded, and no excluded muscle is primary
// or activated above the exclusion threshold. Optional equipment never
// disqualifies.
func eligible(exercise Exercise, req PrescriptionRequest) bool {
	if !exercise.availableAt(req.Location) {
		return false
	}
	if req.Location != LocationGym {
		for _, tag := range exercise.RequiredEquipment {
			if !req.ownsEquipment(tag) {
				return false
			}
		}
	}
	for _, excluded := range req.ExcludedExercises {
		if exercise.ID == excluded {
			return false
		}
	}
	for _, muscle := range req.ExcludedMuscles {
		if exercise.isPrimary(muscle) {
			return false
		}
		if exercise.Activations[muscle] > excludedActivationThreshold {
			return false
		}
	}
	return true
}

// filterEligible returns the catalog subset passing the hard constraints,
// preserving catalog order.
func filterEligible(catalog []Exercise, req PrescriptionRequest) []Exercise {
	eligibles := make([]Exercise, 0, len(catalog))
	for _, exercise := range catalog {
		if eligible(exercise, req) {
			eligibles = append(eligibles, exercise)
		}
	}
	return eligibles
}
