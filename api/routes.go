package main

import (
	"net/http"
)

func composeRoutes(app *application) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", app.healthCheckHandler)
	mux.HandleFunc("GET /api/info", app.apiInfoHandler)

	mux.HandleFunc("POST /api/auth/login", app.loginHandler)

	mux.HandleFunc("GET /api/tasks", app.requireAuthenticatedUser(app.getTasksHandler))
	mux.HandleFunc("POST /api/tasks", app.requireAuthenticatedUser(app.createTaskHandler))
	mux.HandleFunc("PUT /api/tasks/{id}", app.requireAuthenticatedUser(app.updateTaskHandler))
	mux.HandleFunc("DELETE /api/tasks/{id}", app.requireAuthenticatedUser(app.deleteTaskHandler))

	handler := app.logRequests(app.enableCORS(mux))
	if app.config.limiter.enabled {
		return app.rateLimit(handler)
	}
	return handler
}
