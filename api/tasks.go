package main

import (
	"errors"
	"strings"
)

var (
	// errTaskNotFound covers both a missing task and one owned by another
	// user; callers cannot tell the two apart from this error alone.
	errTaskNotFound   = errors.New("task not found or access denied")
	errNoUpdateFields = errors.New("no fields provided for update")
)

type taskInput struct {
	Title   string `json:"title"`
	Details string `json:"details"`
	DueDate string `json:"due_date"`
	Status  string `json:"status"`
}

// taskUpdate is a partial update; nil fields are left untouched.
type taskUpdate struct {
	Title   *string `json:"title"`
	Details *string `json:"details"`
	DueDate *string `json:"due_date"`
	Status  *string `json:"status"`
}

// taskRepository scopes every read and mutation of the tasks store to
// the owning user.
type taskRepository struct {
	store *recordStore
	rules *rules
}

func newTaskRepository(store *recordStore, r *rules) *taskRepository {
	return &taskRepository{
		store: store,
		rules: r,
	}
}

func (t *taskRepository) tasksForUser(userID string) ([]taskItem, error) {
	matches, err := t.store.findByField("userId", userID)
	if err != nil {
		return nil, err
	}
	tasks := make([]taskItem, 0, len(matches))
	for _, rec := range matches {
		var item taskItem
		if err := decodeRecord(rec, &item); err != nil {
			return nil, err
		}
		tasks = append(tasks, item)
	}
	return tasks, nil
}

func (t *taskRepository) createTask(userID string, in taskInput) (*taskItem, error) {
	title := strings.TrimSpace(in.Title)
	details := strings.TrimSpace(in.Details)
	status := in.Status
	if status == "" {
		status = t.rules.DefaultStatus
	}

	v := newValidator()
	v.checkTitle(title, t.rules.MaxTitleLength)
	v.checkDetails(details, t.rules.MaxDetailsLength)
	v.checkStatus(status, t.rules.ValidStatuses)
	v.checkDueDate(in.DueDate)
	if v.hasErrors() {
		return nil, v.toError()
	}

	id, err := t.store.nextID("task_id")
	if err != nil {
		return nil, err
	}
	item := &taskItem{
		TaskID:  id,
		UserID:  userID,
		Title:   title,
		Details: details,
		DueDate: in.DueDate,
		Status:  status,
	}
	if err := t.store.add(item.asRecord()); err != nil {
		return nil, err
	}
	return item, nil
}

// taskOwnedBy returns the task only when it exists and belongs to
// userID; nil, nil otherwise. Missing and foreign tasks are deliberately
// indistinguishable so task existence never leaks across users.
func (t *taskRepository) taskOwnedBy(taskID, userID string) (*taskItem, error) {
	rec, err := t.store.findByID("task_id", taskID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec["userId"] != userID {
		return nil, nil
	}
	var item taskItem
	if err := decodeRecord(rec, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (t *taskRepository) updateTask(taskID, userID string, in taskUpdate) (*taskItem, error) {
	// Shape checks run before any file I/O.
	v := newValidator()
	fields := record{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		v.checkTitle(title, t.rules.MaxTitleLength)
		fields["title"] = title
	}
	if in.Details != nil {
		details := strings.TrimSpace(*in.Details)
		v.checkDetails(details, t.rules.MaxDetailsLength)
		fields["details"] = details
	}
	if in.DueDate != nil {
		v.checkDueDate(*in.DueDate)
		fields["due_date"] = *in.DueDate
	}
	if in.Status != nil {
		v.checkStatus(*in.Status, t.rules.ValidStatuses)
		fields["status"] = *in.Status
	}
	if v.hasErrors() {
		return nil, v.toError()
	}

	// Existence and ownership come before the empty-update case.
	existing, err := t.taskOwnedBy(taskID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errTaskNotFound
	}
	if len(fields) == 0 {
		return nil, errNoUpdateFields
	}

	found, err := t.store.update("task_id", taskID, fields)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errTaskNotFound
	}

	updated, err := t.taskOwnedBy(taskID, userID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errTaskNotFound
	}
	return updated, nil
}

func (t *taskRepository) deleteTask(taskID, userID string) error {
	existing, err := t.taskOwnedBy(taskID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errTaskNotFound
	}
	found, err := t.store.remove("task_id", taskID)
	if err != nil {
		return err
	}
	if !found {
		return errTaskNotFound
	}
	return nil
}
