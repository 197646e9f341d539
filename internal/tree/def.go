/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package tree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructuralMismatch reports a broken shape contract: an unflatten whose
// leaf count disagrees with the descriptor, or parallel trees whose
// structures differ.
var ErrStructuralMismatch = errors.New("structural mismatch")

type defKind uint8

const (
	defLeaf defKind = iota
	defAbsent
	defSeq
	defMapping
)

// Def is a structural descriptor of a tree's shape, independent of its leaf
// values. Two trees have the same structure iff their descriptors are equal.
type Def struct {
	kind     defKind
	keys     []string // mapping nodes only, sorted
	children []*Def
}

// TreeDef computes the shape descriptor for t. With includeAbsent, absence
// markers count as leaf slots (so a filtered tree keeps the structure of its
// source); without it they are recorded as zero-leaf markers that Unflatten
// reproduces as Absent nodes.
func TreeDef(t Tree, includeAbsent bool) *Def {
	switch n := t.(type) {
	case Leaf:
		return &Def{kind: defLeaf}
	case Absent:
		if includeAbsent {
			return &Def{kind: defLeaf}
		}
		return &Def{kind: defAbsent}
	case Seq:
		d := &Def{kind: defSeq, children: make([]*Def, 0, len(n))}
		for _, child := range n {
			d.children = append(d.children, TreeDef(child, includeAbsent))
		}
		return d
	case Mapping:
		d := &Def{kind: defMapping, keys: sortedKeys(n)}
		for _, k := range d.keys {
			d.children = append(d.children, TreeDef(n[k], includeAbsent))
		}
		return d
	default:
		panic(fmt.Sprintf("tree: unknown node %T", t))
	}
}

// NumLeaves is the number of leaf slots Unflatten will fill.
func (d *Def) NumLeaves() int {
	if d.kind == defLeaf {
		return 1
	}
	n := 0
	for _, child := range d.children {
		n += child.NumLeaves()
	}
	return n
}

// Equal reports whether the two descriptors describe the same shape.
func (d *Def) Equal(other *Def) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.kind != other.kind || len(d.keys) != len(other.keys) || len(d.children) != len(other.children) {
		return false
	}
	for i, k := range d.keys {
		if other.keys[i] != k {
			return false
		}
	}
	for i, child := range d.children {
		if !child.Equal(other.children[i]) {
			return false
		}
	}
	return true
}

func (d *Def) String() string {
	switch d.kind {
	case defLeaf:
		return "*"
	case defAbsent:
		return "_"
	case defSeq:
		parts := make([]string, len(d.children))
		for i, child := range d.children {
			parts[i] = child.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case defMapping:
		parts := make([]string, len(d.children))
		for i, child := range d.children {
			parts[i] = d.keys[i] + ":" + child.String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	}
	return "?"
}
