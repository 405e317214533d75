package main

import (
	"encoding/json"
	"net/http"

	"github.com/musclemap/musclemap/internal/prescription"
)

// preferencesSessionKey stores the serialized solver defaults in the session.
const preferencesSessionKey = "preferences"

// preferences are session-scoped defaults applied to prescription requests
// that leave the corresponding fields empty.
type preferences struct {
	Goals        []prescription.Goal       `json:"goals,omitempty"`
	FitnessLevel prescription.FitnessLevel `json:"fitnessLevel,omitempty"`
	Equipment    []string                  `json:"equipment,omitempty"`
}

func (app *application) sessionPreferences(r *http.Request) preferences {
	var prefs preferences
	raw := app.sessionManager.GetString(r.Context(), preferencesSessionKey)
	if raw == "" {
		return prefs
	}
	// A corrupt session value falls back to empty defaults.
	_ = json.Unmarshal([]byte(raw), &prefs)
	return prefs
}

// preferencesGET returns the solver defaults stored in the session.
func (app *application) preferencesGET(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, app.sessionPreferences(r))
}

// preferencesPOST replaces the solver defaults stored in the session.
func (app *application) preferencesPOST(w http.ResponseWriter, r *http.Request) {
	var prefs preferences
	if err := readJSON(r, &prefs); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, goal := range prefs.Goals {
		if !validGoal(goal) {
			app.clientError(w, http.StatusUnprocessableEntity, "unknown goal "+string(goal))
			return
		}
	}
	if prefs.FitnessLevel != "" && !validFitnessLevel(prefs.FitnessLevel) {
		app.clientError(w, http.StatusUnprocessableEntity, "unknown fitness level "+string(prefs.FitnessLevel))
		return
	}

	raw, err := json.Marshal(prefs)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), preferencesSessionKey, string(raw))
	writeJSON(w, http.StatusOK, prefs)
}
