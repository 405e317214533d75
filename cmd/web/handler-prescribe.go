package main

import (
	"net/http"

	"github.com/musclemap/musclemap/internal/prescription"
)

// Time budget bounds accepted by the API, in minutes.
const (
	minTimeAvailable = 15
	maxTimeAvailable = 120
)

var validLocations = map[prescription.Location]bool{
	prescription.LocationGym:    true,
	prescription.LocationHome:   true,
	prescription.LocationPark:   true,
	prescription.LocationHotel:  true,
	prescription.LocationOffice: true,
	prescription.LocationTravel: true,
}

var validGoals = map[prescription.Goal]bool{
	prescription.GoalStrength:    true,
	prescription.GoalHypertrophy: true,
	prescription.GoalEndurance:   true,
	prescription.GoalMobility:    true,
	prescription.GoalFatLoss:     true,
}

var validFitnessLevels = map[prescription.FitnessLevel]bool{
	prescription.LevelBeginner:     true,
	prescription.LevelIntermediate: true,
	prescription.LevelAdvanced:     true,
}

func validGoal(goal prescription.Goal) bool                  { return validGoals[goal] }
func validFitnessLevel(level prescription.FitnessLevel) bool { return validFitnessLevels[level] }
func validLocation(location prescription.Location) bool      { return validLocations[location] }

// prescribePOST validates a prescription request, fills empty fields from
// the session preferences, and runs the solver.
func (app *application) prescribePOST(w http.ResponseWriter, r *http.Request) {
	var req prescription.PrescriptionRequest
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, http.StatusBadRequest, err.Error())
		return
	}

	prefs := app.sessionPreferences(r)
	if len(req.Goals) == 0 {
		req.Goals = prefs.Goals
	}
	if req.FitnessLevel == "" {
		req.FitnessLevel = prefs.FitnessLevel
	}
	if len(req.Equipment) == 0 {
		req.Equipment = prefs.Equipment
	}

	if req.TimeAvailable < minTimeAvailable || req.TimeAvailable > maxTimeAvailable {
		app.clientError(w, http.StatusUnprocessableEntity, "timeAvailable must be between 15 and 120 minutes")
		return
	}
	if !validLocation(req.Location) {
		app.clientError(w, http.StatusUnprocessableEntity, "unknown location "+string(req.Location))
		return
	}
	for _, goal := range req.Goals {
		if !validGoal(goal) {
			app.clientError(w, http.StatusUnprocessableEntity, "unknown goal "+string(goal))
			return
		}
	}
	if req.FitnessLevel != "" && !validFitnessLevel(req.FitnessLevel) {
		app.clientError(w, http.StatusUnprocessableEntity, "unknown fitness level "+string(req.FitnessLevel))
		return
	}

	result, err := app.prescriptions.Prescribe(r.Context(), req)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
