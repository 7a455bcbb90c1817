package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestRepository(t *testing.T, seed []record) (*taskRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	seedRecords(t, path, seed)
	r, err := loadRules("")
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	return newTaskRepository(newRecordStore(path), r), path
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo, _ := newTestRepository(t, []record{})

	first, err := repo.createTask("u1", taskInput{Title: "buy milk", DueDate: "2026-09-01"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if first.TaskID != "1" {
		t.Fatalf("expected id 1, got %s", first.TaskID)
	}
	if first.Status != "To Do" {
		t.Fatalf("expected default status, got %s", first.Status)
	}

	second, err := repo.createTask("u1", taskInput{Title: "walk dog", DueDate: "2026-09-02", Status: "In Progress"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.TaskID != "2" {
		t.Fatalf("expected id 2, got %s", second.TaskID)
	}
}

func TestCreateTrimsFields(t *testing.T) {
	repo, _ := newTestRepository(t, []record{})
	task, err := repo.createTask("u1", taskInput{Title: "  spaced out  ", Details: "  note  ", DueDate: "2026-09-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Title != "spaced out" || task.Details != "note" {
		t.Fatalf("expected trimmed fields, got %+v", task)
	}
}

func TestCreateValidation(t *testing.T) {
	repo, _ := newTestRepository(t, []record{})
	tests := []struct {
		name  string
		input taskInput
		field string
	}{
		{name: "empty title", input: taskInput{Title: "   ", DueDate: "2026-09-01"}, field: "title"},
		{name: "title too long", input: taskInput{Title: strings.Repeat("a", 201), DueDate: "2026-09-01"}, field: "title"},
		{name: "details too long", input: taskInput{Title: "ok", Details: strings.Repeat("a", 1001), DueDate: "2026-09-01"}, field: "details"},
		{name: "bad status", input: taskInput{Title: "ok", DueDate: "2026-09-01", Status: "Done"}, field: "status"},
		{name: "bad date", input: taskInput{Title: "ok", DueDate: "tomorrow"}, field: "due_date"},
	}
	for _, tc := range tests {
		_, err := repo.createTask("u1", tc.input)
		var vErr validationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: expected a validation error, got %v", tc.name, err)
		}
		if _, ok := vErr[tc.field]; !ok {
			t.Fatalf("%s: expected failure on %q, got %v", tc.name, tc.field, vErr)
		}
	}

	// Shape checks fail before any I/O touches the store.
	repoMissing := newTaskRepository(newRecordStore(filepath.Join(t.TempDir(), "missing.json")), repo.rules)
	_, err := repoMissing.createTask("u1", taskInput{Title: "", DueDate: "2026-09-01"})
	var vErr validationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a validation error before store access, got %v", err)
	}
}

func TestTasksForUser(t *testing.T) {
	repo, _ := newTestRepository(t, []record{
		{"task_id": "1", "userId": "u1", "title": "a", "details": "", "due_date": "2026-09-01", "status": "To Do"},
		{"task_id": "2", "userId": "u2", "title": "b", "details": "", "due_date": "2026-09-01", "status": "To Do"},
		{"task_id": "3", "userId": "u1", "title": "c", "details": "", "due_date": "2026-09-01", "status": "To Do"},
	})
	tasks, err := repo.tasksForUser("u1")
	if err != nil {
		t.Fatalf("tasksForUser: %v", err)
	}
	if len(tasks) != 2 || tasks[0].TaskID != "1" || tasks[1].TaskID != "3" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	tasks, err = repo.tasksForUser("u3")
	if err != nil {
		t.Fatalf("tasksForUser empty: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %+v", tasks)
	}
}

func TestOwnershipIndistinguishable(t *testing.T) {
	repo, _ := newTestRepository(t, []record{
		{"task_id": "1", "userId": "u1", "title": "a", "details": "", "due_date": "2026-09-01", "status": "To Do"},
	})

	// A missing task and another user's task look the same to the caller.
	missing, err := repo.taskOwnedBy("99", "u2")
	if err != nil {
		t.Fatalf("taskOwnedBy missing: %v", err)
	}
	foreign, err := repo.taskOwnedBy("1", "u2")
	if err != nil {
		t.Fatalf("taskOwnedBy foreign: %v", err)
	}
	if missing != nil || foreign != nil {
		t.Fatalf("expected nil for both cases, got %+v and %+v", missing, foreign)
	}

	owned, err := repo.taskOwnedBy("1", "u1")
	if err != nil {
		t.Fatalf("taskOwnedBy owned: %v", err)
	}
	if owned == nil || owned.Title != "a" {
		t.Fatalf("expected owned task, got %+v", owned)
	}
}

func TestUpdateNoFields(t *testing.T) {
	repo, _ := newTestRepository(t, []record{
		{"task_id": "1", "userId": "u1", "title": "a", "details": "", "due_date": "2026-09-01", "status": "To Do"},
	})
	_, err := repo.updateTask("1", "u1", taskUpdate{})
	if !errors.Is(err, errNoUpdateFields) {
		t.Fatalf("expected errNoUpdateFields, got %v", err)
	}
}

func TestUpdateStatusOnly(t *testing.T) {
	repo, path := newTestRepository(t, []record{
		{"task_id": "1", "userId": "u1", "title": "A", "details": "d", "due_date": "2026-09-01", "status": "To Do"},
	})
	status := "Completed"
	updated, err := repo.updateTask("1", "u1", taskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	want := taskItem{TaskID: "1", UserID: "u1", Title: "A", Details: "d", DueDate: "2026-09-01", Status: "Completed"}
	if *updated != want {
		t.Fatalf("unexpected task: %+v", updated)
	}

	records, err := newRecordStore(path).load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 || records[0]["status"] != "Completed" || records[0]["title"] != "A" {
		t.Fatalf("unexpected records on disk: %v", records)
	}
}

func TestUpdateForeignTask(t *testing.T) {
	repo, _ := newTestRepository(t, []record{
		{"task_id": "1", "userId": "u1", "title": "a", "details": "", "due_date": "2026-09-01", "status": "To Do"},
	})
	status := "Completed"
	_, err := repo.updateTask("1", "u2", taskUpdate{Status: &status})
	if !errors.Is(err, errTaskNotFound) {
		t.Fatalf("expected errTaskNotFound, got %v", err)
	}
}

func TestDeleteMissingLeavesFileUntouched(t *testing.T) {
	repo, path := newTestRepository(t, []record{
		{"task_id": "1", "userId": "u1", "title": "a", "details": "", "due_date": "2026-09-01", "status": "To Do"},
	})
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read before: %v", err)
	}
	if err := repo.deleteTask("99", "u1"); !errors.Is(err, errTaskNotFound) {
		t.Fatalf("expected errTaskNotFound, got %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("store file changed on failed delete")
	}
}

func TestDelete(t *testing.T) {
	repo, _ := newTestRepository(t, []record{
		{"task_id": "1", "userId": "u1", "title": "a", "details": "", "due_date": "2026-09-01", "status": "To Do"},
	})
	if err := repo.deleteTask("1", "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, err := repo.tasksForUser("u1")
	if err != nil {
		t.Fatalf("tasksForUser: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %+v", tasks)
	}
}

// Replay a create/update/delete sequence on an empty store and check the
// survivors carry the last applied write for every field.
func TestReplaySequence(t *testing.T) {
	repo, _ := newTestRepository(t, []record{})

	for _, title := range []string{"one", "two", "three"} {
		if _, err := repo.createTask("u1", taskInput{Title: title, DueDate: "2026-09-01"}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	status := "In Progress"
	details := "halfway"
	if _, err := repo.updateTask("2", "u1", taskUpdate{Status: &status, Details: &details}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.deleteTask("1", "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	tasks, err := repo.tasksForUser("u1")
	if err != nil {
		t.Fatalf("tasksForUser: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 survivors, got %+v", tasks)
	}
	if tasks[0].TaskID != "2" || tasks[0].Status != "In Progress" || tasks[0].Details != "halfway" || tasks[0].Title != "two" {
		t.Fatalf("unexpected second task: %+v", tasks[0])
	}
	if tasks[1].TaskID != "3" || tasks[1].Status != "To Do" || tasks[1].Title != "three" {
		t.Fatalf("unexpected third task: %+v", tasks[1])
	}
}
