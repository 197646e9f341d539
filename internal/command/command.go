/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package command models the closed set of control actions a finalized
// schedule compiles into, with one renderer per variant. Composite commands
// render as the newline-joined rendering of their children.
package command

import (
	"fmt"
	"strings"
	"time"
)

const isoFormat = "2006-01-02T15:04:05"

// Command is an immutable, render-only value. Commands are produced once by
// the compiler and are terminal.
type Command interface {
	Render() string
}

// MoveTo slews the mount to a fixed azimuth/altitude.
type MoveTo struct {
	Az  float64
	Alt float64
}

func (c MoveTo) Render() string {
	return fmt.Sprintf("acu.move_to(%.2f, %.2f)", c.Az, c.Alt)
}

// Scan runs a constant-elevation scan of a field until the stop time.
type Scan struct {
	Field string
	Stop  time.Time
	Width float64
}

func (c Scan) Render() string {
	return fmt.Sprintf("seq.scan(description='%s', stop_time='%s', width=%.2f)", c.Field, c.Stop.Format(isoFormat), c.Width)
}

// Wait blocks execution until the given time.
type Wait struct {
	T0 time.Time
}

func (c Wait) Render() string {
	return fmt.Sprintf("wait('%s')", c.T0.Format(isoFormat))
}

// BiasStep takes a detector bias step measurement.
type BiasStep struct{}

func (BiasStep) Render() string { return "smurf.bias_step()" }

// Stream toggles detector data streaming.
type Stream struct {
	State string
}

func (c Stream) Render() string {
	return fmt.Sprintf("smurf.stream('%s')", c.State)
}

// IVCurve takes an IV curve. Renders the same text as BiasStep; the control
// software treats them identically for now.
type IVCurve struct{}

func (IVCurve) Render() string { return "smurf.bias_step()" }

// BiasDets biases the detectors into transition.
type BiasDets struct{}

func (BiasDets) Render() string { return "smurf.bias_dets()" }

// Raw is a literal line of command text, used for headers and separators.
type Raw string

func (c Raw) Render() string { return string(c) }

// Composite is the recursive variant: an ordered sequence of child commands.
type Composite struct {
	Commands []Command
}

func (c Composite) Render() string {
	parts := make([]string, len(c.Commands))
	for i, cmd := range c.Commands {
		parts[i] = cmd.Render()
	}
	return strings.Join(parts, "\n")
}

// IV is the standard detector characterization group: an IV curve followed
// by re-biasing the detectors.
func IV() Composite {
	return Composite{Commands: []Command{
		IVCurve{},
		BiasDets{},
	}}
}

// Preamble is the fixed prologue every compiled schedule starts with.
func Preamble() Composite {
	return Composite{Commands: []Command{
		Raw("from sorunlib import *"),
		Raw(""),
		Raw("initialize(test_mode=True)"),
		Raw(""),
		Raw("smurf.uxm_setup()"),
		Raw("smurf.iv_curve()"),
		Raw(""),
	}}
}

// Render serializes any command to text.
func Render(c Command) string {
	return c.Render()
}
