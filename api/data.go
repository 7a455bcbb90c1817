package main

import "encoding/json"

// record is one flat JSON object from a store file. Field names on disk
// are the contract; they round-trip exactly as stored.
type record map[string]any

type userRecord struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AccessToken string `json:"access_token"`
}

type taskItem struct {
	TaskID  string `json:"task_id"`
	UserID  string `json:"userId"`
	Title   string `json:"title"`
	Details string `json:"details"`
	DueDate string `json:"due_date"`
	Status  string `json:"status"`
}

// identity is the projection of a user handed to request handlers.
// The password never leaves the authenticator.
type identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	AccessToken string `json:"-"`
}

func (u *userRecord) identity() *identity {
	return &identity{
		UserID:      u.UserID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		AccessToken: u.AccessToken,
	}
}

func decodeRecord(rec record, dst any) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (t *taskItem) asRecord() record {
	return record{
		"task_id":  t.TaskID,
		"userId":   t.UserID,
		"title":    t.Title,
		"details":  t.Details,
		"due_date": t.DueDate,
		"status":   t.Status,
	}
}
