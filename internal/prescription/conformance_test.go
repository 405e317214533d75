package prescription

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// conformanceCatalog is wide enough to exercise fallback commits, coverage
// upgrades, and recovery penalties in both backends.
func conformanceCatalog() []Exercise {
	return append(testCatalog(),
		Exercise{
			ID:             "romanian-deadlift",
			Name:           "Romanian Deadlift",
			Pattern:        PatternHinge,
			Compound:       true,
			Difficulty:     3,
			Locations:      []Location{LocationGym, LocationHome},
			RestSeconds:    150,
			Activations:    map[string]float64{"hamstrings": 85, "glutes": 70, "lower_back": 40},
			PrimaryMuscles: []string{"hamstrings", "glutes"},
		},
		Exercise{
			ID:             "plank",
			Name:           "Plank",
			Pattern:        PatternCore,
			Difficulty:     1,
			Locations:      []Location{LocationGym, LocationHome, LocationHotel, LocationOffice},
			RestSeconds:    45,
			Activations:    map[string]float64{"core": 80, "obliques": 40},
			PrimaryMuscles: []string{"core"},
		},
		Exercise{
			ID:                "lateral-raise",
			Name:              "Lateral Raise",
			Pattern:           PatternIsolation,
			Difficulty:        1,
			Locations:         []Location{LocationGym, LocationHome},
			RequiredEquipment: []string{"dumbbells"},
			RestSeconds:       60,
			Activations:       map[string]float64{"side_delts": 90},
			PrimaryMuscles:    []string{"side_delts"},
		},
	)
}

// TestBackendConformance checks that the mask backend reproduces the greedy
// backend exactly over a spread of requests.
func TestBackendConformance(t *testing.T) {
	t.Parallel()
	profiles := mustProfiles(t)
	greedy := NewGreedyBackend(profiles)
	mask := NewMaskBackend(profiles)

	fatigued := emptyRecoveryWindows()
	fatigued.Last24h["chest"] = true
	fatigued.Last48h["quads"] = true

	tests := []struct {
		name    string
		req     PrescriptionRequest
		windows RecoveryWindows
	}{
		{
			name:    "gym strength hour",
			req:     PrescriptionRequest{TimeAvailable: 60, Location: LocationGym, Goals: []Goal{GoalStrength}, FitnessLevel: LevelIntermediate},
			windows: emptyRecoveryWindows(),
		},
		{
			name:    "hotel quick session",
			req:     PrescriptionRequest{TimeAvailable: 20, Location: LocationHotel, Goals: []Goal{GoalEndurance}},
			windows: emptyRecoveryWindows(),
		},
		{
			name:    "home with partial equipment",
			req:     PrescriptionRequest{TimeAvailable: 45, Location: LocationHome, Equipment: []string{"pullup_bar", "dumbbells"}, Goals: []Goal{GoalHypertrophy}, FitnessLevel: LevelBeginner},
			windows: emptyRecoveryWindows(),
		},
		{
			name:    "fatigued muscles penalized",
			req:     PrescriptionRequest{TimeAvailable: 45, Location: LocationGym, Goals: []Goal{GoalFatLoss, GoalMobility}},
			windows: fatigued,
		},
		{
			name:    "exclusions applied",
			req:     PrescriptionRequest{TimeAvailable: 90, Location: LocationGym, ExcludedMuscles: []string{"lower_back"}, ExcludedExercises: []string{"push-up"}},
			windows: emptyRecoveryWindows(),
		},
		{
			name:    "nothing eligible",
			req:     PrescriptionRequest{TimeAvailable: 30, Location: LocationTravel},
			windows: emptyRecoveryWindows(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			catalog := conformanceCatalog()
			got := mask.Solve(catalog, tt.req, tt.windows)
			want := greedy.Solve(catalog, tt.req, tt.windows)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("backend mismatch (-greedy +mask):\n%s", diff)
			}
		})
	}
}
