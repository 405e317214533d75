package prescription

import (
	"context"
	"fmt"
	"time"
)

// WorkoutActivations is the recorded muscle work of one past workout.
type WorkoutActivations struct {
	PerformedAt time.Time
	MuscleIDs   []string
}

// activationSource looks up the recorded activations of past workouts.
type activationSource interface {
	RecentWorkoutActivations(ctx context.Context, workoutIDs []string) ([]WorkoutActivations, error)
}

// RecoveryResolver buckets recently trained muscles into the two fatigue
// windows consumed by scoring.
type RecoveryResolver struct {
	source activationSource
	now    func() time.Time
}

// NewRecoveryResolver returns a resolver reading from source.
func NewRecoveryResolver(source activationSource) *RecoveryResolver {
	return &RecoveryResolver{source: source, now: time.Now}
}

// Resolve derives the recovery windows for the given workouts. The returned
// sets are disjoint; a muscle trained both yesterday and the day before lands
// only in the 24h set. An empty id list yields empty windows without a data
// layer round trip.
func (r *RecoveryResolver) Resolve(ctx context.Context, workoutIDs []string) (RecoveryWindows, error) {
	windows := emptyRecoveryWindows()
	if len(workoutIDs) == 0 {
		return windows, nil
	}

	workouts, err := r.source.RecentWorkoutActivations(ctx, workoutIDs)
	if err != nil {
		return RecoveryWindows{}, fmt.Errorf("load recent workout activations: %w", err)
	}

	now := r.now()
	for _, workout := range workouts {
		age := now.Sub(workout.PerformedAt)
		switch {
		case age < 0 || age > 48*time.Hour:
			continue
		case age <= 24*time.Hour:
			for _, muscle := range workout.MuscleIDs {
				windows.Last24h[muscle] = true
			}
		default:
			for _, muscle := range workout.MuscleIDs {
				windows.Last48h[muscle] = true
			}
		}
	}
	for muscle := range windows.Last24h {
		delete(windows.Last48h, muscle)
	}
	return windows, nil
}
