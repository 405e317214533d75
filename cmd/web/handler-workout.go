package main

import (
	"net/http"
	"time"

	"github.com/musclemap/musclemap/internal/prescription"
)

type workoutRecordRequest struct {
	// PerformedAt is optional RFC 3339; defaults to now.
	PerformedAt string               `json:"performedAt,omitempty"`
	Exercises   []workoutRecordEntry `json:"exercises"`
}

type workoutRecordEntry struct {
	ExerciseID string `json:"exerciseId"`
	Sets       int    `json:"sets"`
}

// workoutRecordPOST stores a performed workout so later prescriptions can
// account for the fatigue it caused.
func (app *application) workoutRecordPOST(w http.ResponseWriter, r *http.Request) {
	var req workoutRecordRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Exercises) == 0 {
		app.clientError(w, http.StatusUnprocessableEntity, "workout must contain at least one exercise")
		return
	}

	var performedAt time.Time
	if req.PerformedAt != "" {
		var err error
		if performedAt, err = time.Parse(time.RFC3339, req.PerformedAt); err != nil {
			app.clientError(w, http.StatusUnprocessableEntity, "performedAt must be RFC 3339")
			return
		}
	}

	entries := make([]prescription.WorkoutEntry, 0, len(req.Exercises))
	for _, entry := range req.Exercises {
		if entry.ExerciseID == "" || entry.Sets <= 0 {
			app.clientError(w, http.StatusUnprocessableEntity, "each exercise needs an id and a positive set count")
			return
		}
		entries = append(entries, prescription.WorkoutEntry{ExerciseID: entry.ExerciseID, Sets: entry.Sets})
	}

	id, err := app.prescriptions.RecordWorkout(r.Context(), performedAt, entries)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"workoutId": id})
}
