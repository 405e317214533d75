// Package prescription selects a sequence of exercises that maximizes training
// value within a wall-clock time budget, respecting equipment, location,
// exclusion, and recovery constraints.
package prescription

// MovementPattern categorizes how an exercise moves the body.
type MovementPattern string

// Movement pattern constants.
const (
	PatternPush      MovementPattern = "push"
	PatternPull      MovementPattern = "pull"
	PatternSquat     MovementPattern = "squat"
	PatternHinge     MovementPattern = "hinge"
	PatternCarry     MovementPattern = "carry"
	PatternCore      MovementPattern = "core"
	PatternIsolation MovementPattern = "isolation"
)

// Location is where a workout takes place.
type Location string

// Location constants. LocationGym is treated as a full-equipment context.
const (
	LocationGym    Location = "gym"
	LocationHome   Location = "home"
	LocationPark   Location = "park"
	LocationHotel  Location = "hotel"
	LocationOffice Location = "office"
	LocationTravel Location = "travel"
)

// Goal is a training goal steering scoring, rest, and set/rep schemes.
type Goal string

// Goal constants.
const (
	GoalStrength    Goal = "strength"
	GoalHypertrophy Goal = "hypertrophy"
	GoalEndurance   Goal = "endurance"
	GoalMobility    Goal = "mobility"
	GoalFatLoss     Goal = "fat_loss"
)

// FitnessLevel classifies the user's training experience.
type FitnessLevel string

// Fitness level constants.
const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// Thresholds shared between the catalog loader and the solver.
const (
	// primaryActivationThreshold promotes a muscle to primary.
	primaryActivationThreshold = 60.0
	// excludedActivationThreshold is the activation above which an excluded
	// muscle disqualifies an exercise even when it is not primary.
	excludedActivationThreshold = 40.0
)

// Exercise is a catalog entity. It is immutable within a solve.
type Exercise struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Difficulty          int                `json:"difficulty"`
	Pattern             MovementPattern    `json:"movementPattern"`
	Compound            bool               `json:"isCompound"`
	Locations           []Location         `json:"locations"`
	RequiredEquipment   []string           `json:"requiredEquipment"`
	OptionalEquipment   []string           `json:"optionalEquipment,omitempty"`
	RestSeconds         int                `json:"restSeconds"`
	Activations         map[string]float64 `json:"activations"`
	PrimaryMuscles      []string           `json:"primaryMuscles"`
	DescriptionMarkdown string             `json:"descriptionMarkdown,omitempty"`
}

// availableAt reports whether the exercise can be performed at the location.
func (e Exercise) availableAt(location Location) bool {
	for _, l := range e.Locations {
		if l == location {
			return true
		}
	}
	return false
}

// isPrimary reports whether the muscle is one of the exercise's primary muscles.
func (e Exercise) isPrimary(muscleID string) bool {
	for _, m := range e.PrimaryMuscles {
		if m == muscleID {
			return true
		}
	}
	return false
}

// PrescriptionRequest is the pre-validated solver input.
type PrescriptionRequest struct {
	// TimeAvailable is the wall-clock budget in minutes.
	TimeAvailable     int          `json:"timeAvailable"`
	Location          Location     `json:"location"`
	Equipment         []string     `json:"equipment"`
	Goals             []Goal       `json:"goals,omitempty"`
	FitnessLevel      FitnessLevel `json:"fitnessLevel,omitempty"`
	ExcludedExercises []string     `json:"excludedExercises,omitempty"`
	ExcludedMuscles   []string     `json:"excludedMuscles,omitempty"`
	RecentWorkoutIDs  []string     `json:"recentWorkoutIds,omitempty"`
}

// ownsEquipment reports whether the requested equipment list contains tag.
func (r PrescriptionRequest) ownsEquipment(tag string) bool {
	for _, owned := range r.Equipment {
		if owned == tag {
			return true
		}
	}
	return false
}

// PrescribedExercise is one committed entry of a prescription. Immutable once
// created.
type PrescribedExercise struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Sets       int    `json:"sets"`
	// Reps is a rep count such as "10"; timed holds use a duration token such
	// as "30s".
	Reps             string          `json:"reps"`
	RestSeconds      int             `json:"restSeconds"`
	EstimatedSeconds int             `json:"estimatedSeconds"`
	PrimaryMuscles   []string        `json:"primaryMuscles"`
	SecondaryMuscles []string        `json:"secondaryMuscles"`
	Pattern          MovementPattern `json:"movementPattern"`
	Note             string          `json:"note,omitempty"`
}

// ActivationLevel is the coverage level of a muscle within one solve.
type ActivationLevel string

// Activation level constants. Secondary may upgrade to primary, never the
// reverse.
const (
	ActivationSecondary ActivationLevel = "secondary"
	ActivationPrimary   ActivationLevel = "primary"
)

// MuscleCoverage accumulates the work committed to one muscle during a solve.
type MuscleCoverage struct {
	Name      string          `json:"name"`
	Level     ActivationLevel `json:"activationLevel"`
	TotalSets int             `json:"totalSets"`
}

// RecoveryWindows holds the muscles stimulated recently, bucketed by how long
// ago. The two sets are disjoint; the 24h bucket wins on overlap.
type RecoveryWindows struct {
	Last24h map[string]bool
	Last48h map[string]bool
}

// emptyRecoveryWindows returns windows that penalize nothing.
func emptyRecoveryWindows() RecoveryWindows {
	return RecoveryWindows{
		Last24h: map[string]bool{},
		Last48h: map[string]bool{},
	}
}

// PrescriptionResult is the output contract of one solve.
type PrescriptionResult struct {
	Exercises             []PrescribedExercise            `json:"exercises"`
	Coverage              map[string]MuscleCoverage       `json:"coverage"`
	ActualDurationSeconds int                             `json:"actualDurationSeconds"`
	Substitutions         map[string][]PrescribedExercise `json:"substitutions"`
	// BalanceIssues are advisory only and never alter selection.
	BalanceIssues []string `json:"balanceIssues,omitempty"`
}
