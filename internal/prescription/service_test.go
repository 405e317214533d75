package prescription

import (
	"context"
	"strings"
	"testing"

	"github.com/musclemap/musclemap/internal/errors"
	"github.com/musclemap/musclemap/internal/testhelpers"
)

type fakeGenerator struct {
	exercise Exercise
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, _ []string) (Exercise, error) {
	return f.exercise, f.err
}

func newTestService(t *testing.T, gen generator) *Service {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	profiles, err := LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles() error: %v", err)
	}
	return NewService(logger, newTestDatabase(t), NewGreedyBackend(profiles), gen)
}

func TestServicePrescribe(t *testing.T) {
	t.Parallel()
	service := newTestService(t, nil)

	result, err := service.Prescribe(context.Background(), PrescriptionRequest{
		TimeAvailable: 45,
		Location:      LocationHotel,
		Goals:         []Goal{GoalEndurance},
		FitnessLevel:  LevelBeginner,
	})
	if err != nil {
		t.Fatalf("Prescribe() error: %v", err)
	}
	if len(result.Exercises) == 0 {
		t.Fatal("Prescribe() selected nothing")
	}
	for _, exercise := range result.Exercises {
		if exercise.ExerciseID == "pull-up" {
			t.Error("pull-up prescribed at a hotel without a bar")
		}
	}
	// Coverage is decorated with display names from the muscles table.
	if entry, ok := result.Coverage["chest"]; ok && entry.Name != "Chest" {
		t.Errorf("chest coverage name = %q, want Chest", entry.Name)
	}
	budget := 45*60 - sessionOverheadSeconds(45)
	if result.ActualDurationSeconds > budget {
		t.Errorf("duration %d exceeds budget %d", result.ActualDurationSeconds, budget)
	}
}

func TestServicePrescribeWithRecentWorkout(t *testing.T) {
	t.Parallel()
	service := newTestService(t, nil)
	ctx := context.Background()

	workoutID, err := service.RecordWorkout(ctx, service.recovery.now(), []WorkoutEntry{
		{ExerciseID: "push-up", Sets: 3},
	})
	if err != nil {
		t.Fatalf("RecordWorkout() error: %v", err)
	}

	if _, err := service.Prescribe(ctx, PrescriptionRequest{
		TimeAvailable:    30,
		Location:         LocationGym,
		RecentWorkoutIDs: []string{workoutID},
	}); err != nil {
		t.Fatalf("Prescribe() with recent workout error: %v", err)
	}
}

func TestServiceGetExercise(t *testing.T) {
	t.Parallel()
	service := newTestService(t, nil)
	ctx := context.Background()

	exercise, html, err := service.GetExercise(ctx, "push-up")
	if err != nil {
		t.Fatalf("GetExercise() error: %v", err)
	}
	if exercise.Name != "Push-Up" {
		t.Errorf("Name = %q, want Push-Up", exercise.Name)
	}
	if !strings.Contains(html, "<h2") {
		t.Errorf("description HTML %q missing heading", html)
	}

	if _, _, err := service.GetExercise(ctx, "no-such"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("GetExercise(unknown) error = %v, want ErrExerciseNotFound", err)
	}
}

func TestServiceUpdateExerciseInvalidatesCache(t *testing.T) {
	t.Parallel()
	service := newTestService(t, nil)
	ctx := context.Background()

	// Warm the cache, then edit.
	if _, err := service.ListExercises(ctx); err != nil {
		t.Fatalf("ListExercises() error: %v", err)
	}
	if err := service.UpdateExercise(ctx, "push-up", 2, 75, "## Changed"); err != nil {
		t.Fatalf("UpdateExercise() error: %v", err)
	}
	exercise, _, err := service.GetExercise(ctx, "push-up")
	if err != nil {
		t.Fatalf("GetExercise() error: %v", err)
	}
	if exercise.RestSeconds != 75 {
		t.Errorf("RestSeconds after update = %d, want 75", exercise.RestSeconds)
	}

	if err := service.UpdateExercise(ctx, "no-such", 2, 75, ""); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("UpdateExercise(unknown) error = %v, want ErrExerciseNotFound", err)
	}
	if err := service.UpdateExercise(ctx, "push-up", 9, 75, ""); err == nil {
		t.Error("UpdateExercise() accepted out-of-range difficulty")
	}
}

func TestServiceGenerateExercise(t *testing.T) {
	t.Parallel()

	generated := Exercise{
		ID:             "wall-sit",
		Name:           "Wall Sit",
		Difficulty:     1,
		Pattern:        PatternSquat,
		RestSeconds:    60,
		Locations:      []Location{LocationHome, LocationHotel},
		Activations:    map[string]float64{"quads": 80},
		PrimaryMuscles: []string{"quads"},
	}
	service := newTestService(t, &fakeGenerator{exercise: generated})
	ctx := context.Background()

	got, err := service.GenerateExercise(ctx, "Wall Sit")
	if err != nil {
		t.Fatalf("GenerateExercise() error: %v", err)
	}
	if got.ID != "wall-sit" {
		t.Errorf("generated ID = %q, want wall-sit", got.ID)
	}

	// The new exercise is visible through the invalidated cache.
	if _, _, err := service.GetExercise(ctx, "wall-sit"); err != nil {
		t.Errorf("GetExercise(wall-sit) after generate error: %v", err)
	}
}

func TestServiceGenerateExerciseUnconfigured(t *testing.T) {
	t.Parallel()
	service := newTestService(t, nil)

	if _, err := service.GenerateExercise(context.Background(), "anything"); !errors.Is(err, ErrGeneratorUnavailable) {
		t.Errorf("GenerateExercise() error = %v, want ErrGeneratorUnavailable", err)
	}
}

func TestServiceRecordWorkoutValidation(t *testing.T) {
	t.Parallel()
	service := newTestService(t, nil)

	if _, err := service.RecordWorkout(context.Background(), service.recovery.now(), nil); err == nil {
		t.Error("RecordWorkout() accepted an empty workout")
	}
}
