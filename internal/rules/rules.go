/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package rules defines the transform contract the planner composes
// schedules from: a Rule maps a block tree to a block tree, a Pipeline
// applies rules left to right, and a Policy owns both the initial candidate
// tree and the pipeline that reduces it to a committed schedule.
package rules

import (
	"time"

	"github.com/polarisobs/meridian/internal/block"
	"github.com/polarisobs/meridian/internal/tree"
)

// Rule transforms a block tree. Shape and leaf types may legally change
// between stages; a rule that cannot honor its contract returns an error and
// the pipeline aborts without retry.
type Rule interface {
	Apply(tree.Tree) (tree.Tree, error)
}

// Func adapts a plain function to the Rule contract, so closures and
// stateful objects are used interchangeably.
type Func func(tree.Tree) (tree.Tree, error)

func (f Func) Apply(t tree.Tree) (tree.Tree, error) { return f(t) }

// Pipeline is an ordered rule set applied left to right: the output of rule
// i is exactly the input of rule i+1.
type Pipeline struct {
	rules []Rule
}

func NewPipeline(rs ...Rule) Pipeline {
	return Pipeline{rules: rs}
}

func (p Pipeline) Apply(t tree.Tree) (tree.Tree, error) {
	var err error
	for _, r := range p.rules {
		if t, err = r.Apply(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Policy produces the raw candidate tree and reduces it to a final flat,
// sorted, non-overlapping sequence. A Policy satisfies Rule itself, so
// policies compose as rules of larger policies.
type Policy interface {
	Rule
	InitSeqs() (tree.Tree, error)
}

// Run executes a policy end to end and validates the result: initial tree,
// full pipeline, then flat + sorted + disjoint checks that fail loudly.
func Run(p Policy) ([]block.Block, error) {
	t, err := p.InitSeqs()
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(t)
	if err != nil {
		return nil, err
	}
	if err := tree.AssertSorted(out); err != nil {
		return nil, err
	}
	if err := tree.AssertNoOverlap(out); err != nil {
		return nil, err
	}
	return tree.Flatten(out), nil
}

// TrimToWindow clips every block to the observation window, pruning blocks
// that fall entirely outside it.
func TrimToWindow(t0, t1 time.Time) Rule {
	return Func(func(t tree.Tree) (tree.Tree, error) {
		return tree.Trim(t, t0, t1), nil
	})
}

// MinDuration prunes blocks shorter than min.
func MinDuration(min time.Duration) Rule {
	return Func(func(t tree.Tree) (tree.Tree, error) {
		return tree.Filter(func(b block.Block) bool {
			return b.Duration() >= min
		}, t), nil
	})
}

// Pad shaves gap off the tail of every block, leaving turnaround slack
// between consecutive observations. Blocks shorter than gap are pruned.
func Pad(gap time.Duration) Rule {
	return Func(func(t tree.Tree) (tree.Tree, error) {
		return tree.Map(func(b block.Block) block.Block {
			return block.ShrinkRight(b, gap)
		}, t), nil
	})
}

// Finalize flattens and sorts the tree into the committed single-level
// sequence, then verifies it is disjoint.
func Finalize() Rule {
	return Func(func(t tree.Tree) (tree.Tree, error) {
		blocks, err := tree.Sort(t, true)
		if err != nil {
			return nil, err
		}
		flat := tree.FromBlocks(blocks)
		if err := tree.AssertNoOverlap(flat); err != nil {
			return nil, err
		}
		return flat, nil
	})
}
