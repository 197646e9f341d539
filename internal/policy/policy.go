/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package policy hosts the supported scheduling policies: each one produces
// a raw candidate tree for an observation window and reduces it through a
// rule pipeline to a committed schedule.
package policy

import (
	"fmt"
	"sort"
	"time"

	"github.com/polarisobs/meridian/internal/block"
	"github.com/polarisobs/meridian/internal/rules"
	"github.com/polarisobs/meridian/internal/tree"
)

// Factory builds a policy for an observation window.
type Factory func(t0, t1 time.Time, tuning Tuning) rules.Policy

var registry = map[string]Factory{
	"dummy": func(t0, t1 time.Time, tuning Tuning) rules.Policy {
		return NewDummy(t0, t1, tuning)
	},
}

// Supported returns the policy names the service accepts, sorted.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named policy for the window [t0, t1].
func New(name string, t0, t1 time.Time, tuning Tuning) (rules.Policy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unsupported policy %q", name)
	}
	return factory(t0, t1, tuning), nil
}

// Dummy is the reference policy: a fixed-cadence scan plan rotating through
// the target table, plus a calibration group the pipeline prunes before
// commit. It exists to exercise the full pipeline end to end.
type Dummy struct {
	t0       time.Time
	t1       time.Time
	tuning   Tuning
	pipeline rules.Pipeline
}

// NewDummy builds the dummy policy for [t0, t1].
func NewDummy(t0, t1 time.Time, tuning Tuning) *Dummy {
	keepScans := rules.Func(func(t tree.Tree) (tree.Tree, error) {
		return tree.Filter(block.IsA(block.KindScan), t), nil
	})
	return &Dummy{
		t0:     t0,
		t1:     t1,
		tuning: tuning,
		pipeline: rules.NewPipeline(
			rules.TrimToWindow(t0, t1),
			keepScans,
			rules.Pad(tuning.gap()),
			rules.MinDuration(tuning.minDuration()),
			rules.Finalize(),
		),
	}
}

// InitSeqs lays candidate scans on a cadence grid anchored below the window
// start, so edge scans deliberately spill past the window and the trim rule
// has real work to do. The calibration group rides along as a sibling
// grouping until the pipeline prunes it.
func (p *Dummy) InitSeqs() (tree.Tree, error) {
	if !p.t0.Before(p.t1) {
		return nil, fmt.Errorf("%w: empty observation window", tree.ErrPrecondition)
	}

	length := p.tuning.scanLength()
	cursor := p.t0.Truncate(length)

	var baseline tree.Seq
	for i := 0; cursor.Before(p.t1); i++ {
		target := p.tuning.Targets[i%len(p.tuning.Targets)]
		baseline = append(baseline, tree.Leaf{Block: block.Scan{
			Span:   block.New(cursor, cursor.Add(length)),
			Target: target.Name,
			Az:     target.Az,
			Alt:    target.Alt,
			Throw:  target.Throw,
		}})
		cursor = cursor.Add(length)
	}

	calibration := tree.Seq{
		tree.Leaf{Block: block.Named{
			Span: block.New(p.t0, p.t0.Add(p.tuning.minDuration())),
			Name: "detector_setup",
		}},
	}

	return tree.Mapping{
		"baseline":    baseline,
		"calibration": calibration,
	}, nil
}

// Apply runs the full pipeline, returning the committed flat sequence.
func (p *Dummy) Apply(t tree.Tree) (tree.Tree, error) {
	return p.pipeline.Apply(t)
}
