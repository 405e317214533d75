package prescription

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/musclemap/musclemap/internal/sqlite"
)

// Repository is the SQLite-backed data layer for exercises and workouts.
// Reads go through the read-only pool; writes through the single-writer
// connection.
type Repository struct {
	db *sqlite.Database
}

// NewRepository returns a repository over db.
func NewRepository(db *sqlite.Database) *Repository {
	return &Repository{db: db}
}

// GetAllExercises loads the full catalog with locations, equipment, and
// activations attached. Primary muscles are those flagged primary or
// activated at or above the primary threshold.
func (r *Repository) GetAllExercises(ctx context.Context) ([]Exercise, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, difficulty, movement_pattern, is_compound, rest_seconds, description_markdown
		FROM exercises
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	byID := map[string]int{}
	for rows.Next() {
		var e Exercise
		var compound int
		if err := rows.Scan(&e.ID, &e.Name, &e.Difficulty, &e.Pattern, &compound, &e.RestSeconds, &e.DescriptionMarkdown); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		e.Compound = compound != 0
		e.Activations = map[string]float64{}
		byID[e.ID] = len(exercises)
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}

	if err := r.attachLocations(ctx, exercises, byID); err != nil {
		return nil, err
	}
	if err := r.attachEquipment(ctx, exercises, byID); err != nil {
		return nil, err
	}
	if err := r.attachActivations(ctx, exercises, byID); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *Repository) attachLocations(ctx context.Context, exercises []Exercise, byID map[string]int) error {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, location FROM exercise_locations ORDER BY exercise_id, location`)
	if err != nil {
		return fmt.Errorf("query exercise locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var location Location
		if err := rows.Scan(&id, &location); err != nil {
			return fmt.Errorf("scan exercise location: %w", err)
		}
		if i, ok := byID[id]; ok {
			exercises[i].Locations = append(exercises[i].Locations, location)
		}
	}
	return rows.Err()
}

func (r *Repository) attachEquipment(ctx context.Context, exercises []Exercise, byID map[string]int) error {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, tag, required FROM exercise_equipment ORDER BY exercise_id, tag`)
	if err != nil {
		return fmt.Errorf("query exercise equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, tag string
		var required int
		if err := rows.Scan(&id, &tag, &required); err != nil {
			return fmt.Errorf("scan exercise equipment: %w", err)
		}
		i, ok := byID[id]
		if !ok {
			continue
		}
		if required != 0 {
			exercises[i].RequiredEquipment = append(exercises[i].RequiredEquipment, tag)
		} else {
			exercises[i].OptionalEquipment = append(exercises[i].OptionalEquipment, tag)
		}
	}
	return rows.Err()
}

func (r *Repository) attachActivations(ctx context.Context, exercises []Exercise, byID map[string]int) error {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, muscle_id, activation, is_primary
		FROM exercise_muscles
		ORDER BY exercise_id, muscle_id`)
	if err != nil {
		return fmt.Errorf("query exercise activations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, muscle string
		var activation float64
		var primary int
		if err := rows.Scan(&id, &muscle, &activation, &primary); err != nil {
			return fmt.Errorf("scan exercise activation: %w", err)
		}
		i, ok := byID[id]
		if !ok {
			continue
		}
		exercises[i].Activations[muscle] = activation
		if primary != 0 || activation >= primaryActivationThreshold {
			exercises[i].PrimaryMuscles = append(exercises[i].PrimaryMuscles, muscle)
		}
	}
	return rows.Err()
}

// GetMuscleNames maps muscle ids to display names.
func (r *Repository) GetMuscleNames(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `SELECT id, name FROM muscles`)
	if err != nil {
		return nil, fmt.Errorf("query muscles: %w", err)
	}
	defer rows.Close()

	names := map[string]string{}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan muscle: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate muscles: %w", err)
	}
	return names, nil
}

// RecentWorkoutActivations returns, per requested workout, its timestamp and
// the distinct muscles its exercises activate. Unknown ids are silently
// absent from the result.
func (r *Repository) RecentWorkoutActivations(ctx context.Context, workoutIDs []string) ([]WorkoutActivations, error) {
	if len(workoutIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(workoutIDs)), ",")
	args := make([]any, len(workoutIDs))
	for i, id := range workoutIDs {
		args[i] = id
	}

	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT w.id, w.performed_at, em.muscle_id
		FROM workouts w
		JOIN workout_exercises we ON we.workout_id = w.id
		JOIN exercise_muscles em ON em.exercise_id = we.exercise_id
		WHERE w.id IN (`+placeholders+`)
		GROUP BY w.id, em.muscle_id
		ORDER BY w.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query workout activations: %w", err)
	}
	defer rows.Close()

	var out []WorkoutActivations
	index := map[string]int{}
	for rows.Next() {
		var id, performedAtText, muscle string
		if err := rows.Scan(&id, &performedAtText, &muscle); err != nil {
			return nil, fmt.Errorf("scan workout activation: %w", err)
		}
		i, ok := index[id]
		if !ok {
			performedAt, err := time.Parse(time.RFC3339, performedAtText)
			if err != nil {
				return nil, fmt.Errorf("parse workout timestamp %q: %w", performedAtText, err)
			}
			index[id] = len(out)
			i = len(out)
			out = append(out, WorkoutActivations{PerformedAt: performedAt})
		}
		out[i].MuscleIDs = append(out[i].MuscleIDs, muscle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate workout activations: %w", err)
	}
	return out, nil
}

// WorkoutEntry is one performed exercise in a recorded workout.
type WorkoutEntry struct {
	ExerciseID string
	Sets       int
}

// InsertWorkout records a performed workout and its exercises in one
// transaction.
func (r *Repository) InsertWorkout(ctx context.Context, id string, performedAt time.Time, entries []WorkoutEntry) error {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin workout transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO workouts (id, performed_at) VALUES (?, ?)`,
		id, performedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO workout_exercises (workout_id, exercise_id, sets) VALUES (?, ?, ?)`,
			id, entry.ExerciseID, entry.Sets); err != nil {
			return fmt.Errorf("insert workout exercise %s: %w", entry.ExerciseID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit workout: %w", err)
	}
	return nil
}

// UpdateExercise edits the mutable fields of a catalog entry. Returns
// sql.ErrNoRows when the exercise does not exist.
func (r *Repository) UpdateExercise(ctx context.Context, id string, difficulty, restSeconds int, descriptionMarkdown string) error {
	res, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE exercises
		SET difficulty = ?, rest_seconds = ?, description_markdown = ?
		WHERE id = ?`, difficulty, restSeconds, descriptionMarkdown, id)
	if err != nil {
		return fmt.Errorf("update exercise %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update exercise %s rows affected: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// InsertExercise adds a new catalog entry with its locations, equipment, and
// activations in one transaction.
func (r *Repository) InsertExercise(ctx context.Context, exercise Exercise) error {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin exercise transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	compound := 0
	if exercise.Compound {
		compound = 1
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO exercises (id, name, difficulty, movement_pattern, is_compound, rest_seconds, description_markdown)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exercise.ID, exercise.Name, exercise.Difficulty, exercise.Pattern, compound,
		exercise.RestSeconds, exercise.DescriptionMarkdown); err != nil {
		return fmt.Errorf("insert exercise %s: %w", exercise.ID, err)
	}
	for _, location := range exercise.Locations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_locations (exercise_id, location) VALUES (?, ?)`,
			exercise.ID, location); err != nil {
			return fmt.Errorf("insert exercise location: %w", err)
		}
	}
	for _, tag := range exercise.RequiredEquipment {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_equipment (exercise_id, tag, required) VALUES (?, ?, 1)`,
			exercise.ID, tag); err != nil {
			return fmt.Errorf("insert exercise equipment: %w", err)
		}
	}
	for _, tag := range exercise.OptionalEquipment {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_equipment (exercise_id, tag, required) VALUES (?, ?, 0)`,
			exercise.ID, tag); err != nil {
			return fmt.Errorf("insert exercise equipment: %w", err)
		}
	}
	for muscle, activation := range exercise.Activations {
		primary := 0
		if exercise.isPrimary(muscle) {
			primary = 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO exercise_muscles (exercise_id, muscle_id, activation, is_primary)
			VALUES (?, ?, ?, ?)`,
			exercise.ID, muscle, activation, primary); err != nil {
			return fmt.Errorf("insert exercise activation: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit exercise: %w", err)
	}
	return nil
}
