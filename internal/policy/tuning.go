/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package policy

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Target is one entry of the scan target table.
type Target struct {
	Name  string  `yaml:"name"`
	Az    float64 `yaml:"az"`
	Alt   float64 `yaml:"alt"`
	Throw float64 `yaml:"throw"`
}

// Tuning carries the site-adjustable parameters of the built-in policies.
// All durations are plain integers so the file stays editable by operators.
type Tuning struct {
	ScanMinutes int      `yaml:"scan_minutes"`
	MinMinutes  int      `yaml:"min_minutes"`
	GapSeconds  int      `yaml:"gap_seconds"`
	Targets     []Target `yaml:"targets"`
}

// DefaultTuning is used when no policy file is configured.
func DefaultTuning() Tuning {
	return Tuning{
		ScanMinutes: 60,
		MinMinutes:  5,
		GapSeconds:  60,
		Targets: []Target{
			{Name: "deep_field_a", Az: 180.0, Alt: 50.0, Throw: 20.0},
			{Name: "deep_field_b", Az: 210.0, Alt: 55.0, Throw: 15.0},
			{Name: "wide_survey", Az: 150.0, Alt: 45.0, Throw: 30.0},
		},
	}
}

// LoadTuning reads a YAML tuning file, overlaying it on the defaults.
// An empty path returns the defaults unchanged.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return Tuning{}, fmt.Errorf("parse policy file: %w", err)
	}
	if err := tuning.validate(); err != nil {
		return Tuning{}, err
	}
	return tuning, nil
}

func (t Tuning) validate() error {
	if t.ScanMinutes <= 0 {
		return fmt.Errorf("policy file: scan_minutes must be positive, got %d", t.ScanMinutes)
	}
	if t.MinMinutes < 0 || t.GapSeconds < 0 {
		return fmt.Errorf("policy file: min_minutes and gap_seconds must not be negative")
	}
	if len(t.Targets) == 0 {
		return fmt.Errorf("policy file: at least one target is required")
	}
	return nil
}

func (t Tuning) scanLength() time.Duration  { return time.Duration(t.ScanMinutes) * time.Minute }
func (t Tuning) minDuration() time.Duration { return time.Duration(t.MinMinutes) * time.Minute }
func (t Tuning) gap() time.Duration         { return time.Duration(t.GapSeconds) * time.Second }
