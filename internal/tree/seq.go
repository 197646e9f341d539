/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package tree

import (
	"errors"
	"fmt"
	"sort"

	"github.com/polarisobs/meridian/internal/block"
)

// ErrPrecondition reports a sequence that violates a caller-stated
// precondition: nested where flat is required, unsorted where sorted is
// required, overlapping where disjoint is required. Never auto-repaired.
var ErrPrecondition = errors.New("precondition violation")

// IsNested reports whether t is anything other than a single-level sequence
// of block leaves.
func IsNested(t Tree) bool {
	s, ok := t.(Seq)
	if !ok {
		return true
	}
	for _, child := range s {
		if _, ok := child.(Leaf); !ok {
			return true
		}
	}
	return false
}

// AssertNotNested fails when t is not a flat sequence of blocks.
func AssertNotNested(t Tree) error {
	if IsNested(t) {
		return fmt.Errorf("%w: sequence has nested blocks", ErrPrecondition)
	}
	return nil
}

// Sort returns the blocks of t ascending by start time, stable on ties.
// A nested tree is an error unless flattenFirst is set.
func Sort(t Tree, flattenFirst bool) ([]block.Block, error) {
	if IsNested(t) && !flattenFirst {
		return nil, fmt.Errorf("%w: cannot sort nested sequence without flattening", ErrPrecondition)
	}
	blocks := Flatten(t)
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].T0().Before(blocks[j].T0())
	})
	return blocks, nil
}

// HasOverlap sorts the flattened blocks and reports whether any adjacent pair
// overlaps. Touching endpoints do not count.
func HasOverlap(t Tree) bool {
	blocks, _ := Sort(t, true)
	for i := 0; i < len(blocks)-1; i++ {
		if blocks[i].T1().After(blocks[i+1].T0()) {
			return true
		}
	}
	return false
}

// IsSorted reports whether the flattened blocks have non-decreasing start
// times. Causal order only; overlap is not considered.
func IsSorted(t Tree) bool {
	blocks := Flatten(t)
	for i := 0; i < len(blocks)-1; i++ {
		if blocks[i].T0().After(blocks[i+1].T0()) {
			return false
		}
	}
	return true
}

// AssertSorted fails when the sequence is out of causal order.
func AssertSorted(t Tree) error {
	if !IsSorted(t) {
		return fmt.Errorf("%w: sequence is not sorted", ErrPrecondition)
	}
	return nil
}

// AssertNoOverlap fails when any two blocks overlap.
func AssertNoOverlap(t Tree) error {
	if HasOverlap(t) {
		return fmt.Errorf("%w: sequence has overlap", ErrPrecondition)
	}
	return nil
}
