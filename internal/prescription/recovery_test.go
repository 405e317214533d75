package prescription

import (
	"context"
	"testing"
	"time"
)

type fakeActivationSource struct {
	workouts []WorkoutActivations
	calls    int
}

func (f *fakeActivationSource) RecentWorkoutActivations(_ context.Context, _ []string) ([]WorkoutActivations, error) {
	f.calls++
	return f.workouts, nil
}

func TestRecoveryResolverBucketsByAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeActivationSource{workouts: []WorkoutActivations{
		{PerformedAt: now.Add(-6 * time.Hour), MuscleIDs: []string{"chest", "triceps"}},
		{PerformedAt: now.Add(-36 * time.Hour), MuscleIDs: []string{"quads", "chest"}},
		{PerformedAt: now.Add(-72 * time.Hour), MuscleIDs: []string{"lats"}},
	}}
	resolver := NewRecoveryResolver(source)
	resolver.now = func() time.Time { return now }

	windows, err := resolver.Resolve(context.Background(), []string{"w1", "w2", "w3"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	for _, muscle := range []string{"chest", "triceps"} {
		if !windows.Last24h[muscle] {
			t.Errorf("%q missing from 24h window", muscle)
		}
	}
	if !windows.Last48h["quads"] {
		t.Error("quads missing from 48h window")
	}
	// Chest was trained in both windows; the 24h bucket wins.
	if windows.Last48h["chest"] {
		t.Error("chest must not appear in both windows")
	}
	// Older than 48h is forgotten.
	if windows.Last24h["lats"] || windows.Last48h["lats"] {
		t.Error("lats should not be fatigued")
	}
}

func TestRecoveryResolverEmptyInput(t *testing.T) {
	t.Parallel()

	source := &fakeActivationSource{}
	resolver := NewRecoveryResolver(source)

	windows, err := resolver.Resolve(context.Background(), nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(windows.Last24h) != 0 || len(windows.Last48h) != 0 {
		t.Errorf("windows = %+v, want empty", windows)
	}
	if source.calls != 0 {
		t.Errorf("data layer called %d times for empty input", source.calls)
	}
}
