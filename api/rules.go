package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rules holds the externally supplied constants of the API surface.
// Defaults match the seed data; a deployment can override them with a
// YAML file passed via -rules.
type rules struct {
	BearerPrefix     string   `yaml:"bearer_prefix"`
	DefaultStatus    string   `yaml:"default_status"`
	ValidStatuses    []string `yaml:"valid_statuses"`
	MaxTitleLength   int      `yaml:"max_title_length"`
	MaxDetailsLength int      `yaml:"max_details_length"`
	CORSOrigins      []string `yaml:"cors_origins"`
}

func loadRules(path string) (*rules, error) {
	r := &rules{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read rules file: %w", err)
		}
		if err := yaml.Unmarshal(data, r); err != nil {
			return nil, fmt.Errorf("parse rules file: %w", err)
		}
	}
	r.applyDefaults()
	return r, nil
}

func (r *rules) applyDefaults() {
	if r.BearerPrefix == "" {
		r.BearerPrefix = "Bearer "
	}
	if r.DefaultStatus == "" {
		r.DefaultStatus = "To Do"
	}
	if len(r.ValidStatuses) == 0 {
		r.ValidStatuses = []string{"To Do", "In Progress", "Completed"}
	}
	if r.MaxTitleLength == 0 {
		r.MaxTitleLength = 200
	}
	if r.MaxDetailsLength == 0 {
		r.MaxDetailsLength = 1000
	}
	if len(r.CORSOrigins) == 0 {
		r.CORSOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8080",
		}
	}
}
