package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	healthCheck := struct {
		Message string `json:"message"`
		Version string `json:"version"`
		Status  string `json:"status"`
	}{
		Message: "Task Manager API is running",
		Version: version,
		Status:  "healthy",
	}
	writeJSON(w, http.StatusOK, healthCheck)
}

func (app *application) apiInfoHandler(w http.ResponseWriter, r *http.Request) {
	info := struct {
		Title       string            `json:"title"`
		Version     string            `json:"version"`
		Environment string            `json:"environment"`
		Endpoints   map[string]string `json:"endpoints"`
	}{
		Title:       "Task Manager API",
		Version:     version,
		Environment: app.config.env,
		Endpoints: map[string]string{
			"authentication": "/api/auth",
			"tasks":          "/api/tasks",
		},
	}
	writeJSON(w, http.StatusOK, info)
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	v := newValidator()
	v.checkCond(input.Username != "", "username", "must be provided")
	v.checkCond(len(input.Username) <= 100, "username", "must be atmost 100 characters")
	v.checkCond(input.Password != "", "password", "must be provided")
	v.checkCond(len(input.Password) <= 100, "password", "must be atmost 100 characters")
	if v.hasErrors() {
		writeError(w, v.toError(), http.StatusBadRequest)
		return
	}
	user, err := app.auth.authenticate(input.Username, input.Password)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	if user == nil {
		writeError(w, errors.New("invalid username or password"), http.StatusUnauthorized)
		return
	}
	resp := struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
		Username    string `json:"username"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
	}{
		AccessToken: user.AccessToken,
		UserID:      user.UserID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (app *application) getTasksHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromRequest(r)
	tasks, err := app.tasks.tasksForUser(user.UserID)
	if err != nil {
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	list := struct {
		Tasks []taskItem `json:"tasks"`
		Total int        `json:"total"`
	}{
		Tasks: tasks,
		Total: len(tasks),
	}
	writeJSON(w, http.StatusOK, list)
}

func (app *application) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromRequest(r)
	var input taskInput
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	task, err := app.tasks.createTask(user.UserID, input)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (app *application) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromRequest(r)
	taskID := r.PathValue("id")
	var input taskUpdate
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	task, err := app.tasks.updateTask(taskID, user.UserID, input)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (app *application) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromRequest(r)
	taskID := r.PathValue("id")
	err := app.tasks.deleteTask(taskID, user.UserID)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	resp := struct {
		Message string `json:"message"`
		TaskID  string `json:"task_id"`
	}{
		Message: "Task deleted successfully",
		TaskID:  taskID,
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeTaskError maps repository errors to status codes; everything the
// repository does not name explicitly is a 500.
func writeTaskError(w http.ResponseWriter, err error) {
	var vErr validationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, vErr, http.StatusBadRequest)
	case errors.Is(err, errTaskNotFound):
		writeError(w, err, http.StatusNotFound)
	case errors.Is(err, errNoUpdateFields):
		writeError(w, err, http.StatusBadRequest)
	default:
		log.Println(err)
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		writeError(w, errors.New("internal server error"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data)
}

func composeJSONError(err error) string {
	jsonError := map[string]string{
		"error": err.Error(),
	}
	result, err := json.Marshal(jsonError)
	if err != nil {
		log.Println(err)
		return ""
	}
	return string(result)
}

func writeError(w http.ResponseWriter, err error, statusCode int) {
	h := w.Header()
	h.Del("Content-Length")
	h.Set("Content-type", "application/json")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)
	fmt.Fprintln(w, composeJSONError(err))
}
