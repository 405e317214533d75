package main

import (
	"net/http"

	"github.com/musclemap/musclemap/internal/errors"
	"github.com/musclemap/musclemap/internal/prescription"
)

// exercisesGET lists the exercise catalog.
func (app *application) exercisesGET(w http.ResponseWriter, r *http.Request) {
	exercises, err := app.prescriptions.ListExercises(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercises": exercises})
}

type exerciseInfoResponse struct {
	Exercise        prescription.Exercise `json:"exercise"`
	DescriptionHTML string                `json:"descriptionHTML"`
}

// exerciseInfoGET returns one exercise with its description rendered to HTML.
func (app *application) exerciseInfoGET(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	exercise, html, err := app.prescriptions.GetExercise(r.Context(), id)
	if err != nil {
		if errors.Is(err, prescription.ErrExerciseNotFound) {
			http.NotFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exerciseInfoResponse{Exercise: exercise, DescriptionHTML: html})
}
