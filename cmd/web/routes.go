package main

import "net/http"

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		api = func(next http.Handler) http.Handler {
			return app.recoverPanic(app.logAndTraceRequest(secureHeaders(next)))
		}
		session = func(next http.Handler) http.Handler {
			return api(noCache(app.sessionManager.LoadAndSave(next)))
		}
		admin = func(next http.Handler) http.Handler {
			return api(noCache(app.mustAdmin(next)))
		}
	)

	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))

	mux.Handle("GET /api/exercises", api(http.HandlerFunc(app.exercisesGET)))
	mux.Handle("GET /api/exercises/{id}", api(http.HandlerFunc(app.exerciseInfoGET)))

	mux.Handle("POST /api/workouts/prescribe", session(http.HandlerFunc(app.prescribePOST)))
	mux.Handle("POST /api/workouts", session(http.HandlerFunc(app.workoutRecordPOST)))

	mux.Handle("GET /api/preferences", session(http.HandlerFunc(app.preferencesGET)))
	mux.Handle("POST /api/preferences", session(http.HandlerFunc(app.preferencesPOST)))

	mux.Handle("POST /api/admin/exercises/generate", admin(http.HandlerFunc(app.adminExerciseGeneratePOST)))
	mux.Handle("POST /api/admin/exercises/{id}", admin(http.HandlerFunc(app.adminExerciseUpdatePOST)))

	return mux
}
