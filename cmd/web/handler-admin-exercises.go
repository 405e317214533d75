package main

import (
	"net/http"

	"github.com/musclemap/musclemap/internal/errors"
	"github.com/musclemap/musclemap/internal/prescription"
)

type exerciseUpdateRequest struct {
	Difficulty          int    `json:"difficulty"`
	RestSeconds         int    `json:"restSeconds"`
	DescriptionMarkdown string `json:"descriptionMarkdown"`
}

// adminExerciseUpdatePOST edits a catalog entry.
func (app *application) adminExerciseUpdatePOST(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req exerciseUpdateRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := app.prescriptions.UpdateExercise(r.Context(), id, req.Difficulty, req.RestSeconds, req.DescriptionMarkdown)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case errors.Is(err, prescription.ErrExerciseNotFound):
		http.NotFound(w, r)
	default:
		app.clientError(w, http.StatusUnprocessableEntity, err.Error())
	}
}

type exerciseGenerateRequest struct {
	Name string `json:"name"`
}

// adminExerciseGeneratePOST drafts and persists a new exercise.
func (app *application) adminExerciseGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req exerciseGenerateRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		app.clientError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	exercise, err := app.prescriptions.GenerateExercise(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, prescription.ErrGeneratorUnavailable) {
			app.clientError(w, http.StatusServiceUnavailable, "exercise generator not configured")
			return
		}
		app.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}
