package prescription

import "testing"

func TestLoadProfiles(t *testing.T) {
	t.Parallel()
	profiles := mustProfiles(t)

	if got := profiles.Weights.GoalAlignment; got != 10 {
		t.Errorf("goalAlignment weight = %g, want 10", got)
	}
	if got := profiles.Weights.RecoveryPenalty24h; got != -20 {
		t.Errorf("recoveryPenalty24h weight = %g, want -20", got)
	}
	for _, goal := range []Goal{GoalStrength, GoalHypertrophy, GoalEndurance, GoalMobility, GoalFatLoss} {
		if _, ok := profiles.Goals[goal]; !ok {
			t.Errorf("missing profile for goal %q", goal)
		}
	}
	if band, ok := profiles.band(LevelAdvanced); !ok || band.Min != 3 || band.Max != 5 {
		t.Errorf("advanced band = %+v ok=%v, want [3,5]", band, ok)
	}
}

func TestRestMultiplierPriority(t *testing.T) {
	t.Parallel()
	profiles := mustProfiles(t)

	tests := []struct {
		name  string
		goals []Goal
		want  float64
	}{
		{name: "strength outranks everything", goals: []Goal{GoalFatLoss, GoalStrength}, want: 1.5},
		{name: "endurance outranks fat loss", goals: []Goal{GoalFatLoss, GoalEndurance}, want: 0.5},
		{name: "single goal", goals: []Goal{GoalMobility}, want: 0.75},
		{name: "hypertrophy falls back to default", goals: []Goal{GoalHypertrophy}, want: 1.0},
		{name: "no goals", goals: nil, want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := profiles.restMultiplier(tt.goals); got != tt.want {
				t.Errorf("restMultiplier(%v) = %g, want %g", tt.goals, got, tt.want)
			}
		})
	}
}

func TestVolumeForFirstGoalWins(t *testing.T) {
	t.Parallel()
	profiles := mustProfiles(t)

	tests := []struct {
		name     string
		goals    []Goal
		wantSets int
		wantReps int
	}{
		{name: "endurance first", goals: []Goal{GoalEndurance, GoalStrength}, wantSets: 2, wantReps: 20},
		{name: "strength first", goals: []Goal{GoalStrength, GoalEndurance}, wantSets: 5, wantReps: 4},
		{name: "no goals uses defaults", goals: nil, wantSets: 3, wantReps: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sets, reps := profiles.volumeFor(tt.goals)
			if sets != tt.wantSets || reps != tt.wantReps {
				t.Errorf("volumeFor(%v) = %dx%d, want %dx%d", tt.goals, sets, reps, tt.wantSets, tt.wantReps)
			}
		})
	}
}
