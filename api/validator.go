package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// validationError maps request fields to what is wrong with them.
type validationError map[string]string

func (e validationError) Error() string {
	data, err := json.Marshal(map[string]string(e))
	if err != nil {
		return "validation failed"
	}
	return string(data)
}

type validator struct {
	errors map[string]string
}

func newValidator() *validator {
	return &validator{
		errors: make(map[string]string),
	}
}

func (v *validator) toError() error {
	return validationError(v.errors)
}

func (v *validator) hasErrors() bool {
	return len(v.errors) != 0
}

func (v *validator) checkCond(cond bool, key, msg string) {
	if cond {
		return
	}
	if _, ok := v.errors[key]; !ok {
		v.errors[key] = msg
	}
}

func (v *validator) checkTitle(title string, maxLen int) {
	v.checkCond(title != "", "title", "must be provided")
	v.checkCond(len(title) <= maxLen, "title", fmt.Sprintf("must be atmost %d characters", maxLen))
}

func (v *validator) checkDetails(details string, maxLen int) {
	v.checkCond(len(details) <= maxLen, "details", fmt.Sprintf("must be atmost %d characters", maxLen))
}

func (v *validator) checkStatus(status string, valid []string) {
	for _, s := range valid {
		if status == s {
			return
		}
	}
	v.checkCond(false, "status", "must be one of: "+strings.Join(valid, ", "))
}

func (v *validator) checkDueDate(dueDate string) {
	_, err := time.Parse("2006-01-02", dueDate)
	v.checkCond(err == nil, "due_date", "must be a calendar date in YYYY-MM-DD form")
}
