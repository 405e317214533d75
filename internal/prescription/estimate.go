package prescription

import "math"

// Time model constants, in seconds.
const (
	secondsPerRep        = 3
	equipmentSetupTime   = 30
	overheadLong         = 300
	overheadShort        = 120
	overheadThresholdMin = 30
	minUsefulRemaining   = 60
)

// estimateSeconds models the wall-clock cost of one exercise: optional
// equipment setup, work time for every set, and rest between sets scaled by
// the goal multiplier. Rest is rounded half away from zero after scaling.
func estimateSeconds(exercise Exercise, sets, reps int, restMultiplier float64) int {
	setup := 0
	if len(exercise.RequiredEquipment) > 0 {
		setup = equipmentSetupTime
	}
	work := sets * reps * secondsPerRep
	rest := 0
	if sets > 1 {
		scaled := int(math.Round(float64(exercise.RestSeconds) * restMultiplier))
		rest = (sets - 1) * scaled
	}
	return setup + work + rest
}

// sessionOverheadSeconds is the warm-up and cool-down allowance subtracted
// from the budget before packing.
func sessionOverheadSeconds(timeAvailableMinutes int) int {
	if timeAvailableMinutes >= overheadThresholdMin {
		return overheadLong
	}
	return overheadShort
}
