/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package tree implements the nested container the planner threads through
// its rule pipelines: an explicit tagged tree whose leaves are blocks or
// absence markers. Nesting encodes logical grouping; shape-preserving
// operations keep it intact, flatten/sort discard it on purpose.
package tree

import (
	"fmt"
	"sort"

	"github.com/polarisobs/meridian/internal/block"
)

// Tree is the sealed node interface. Concrete nodes are Leaf, Absent, Seq
// and Mapping. Trees are rebuilt, never mutated, by every operation.
type Tree interface {
	isTree()
}

// Leaf holds a single block.
type Leaf struct {
	Block block.Block
}

// Absent marks a pruned position. It is a real leaf value, distinct from a
// position that never existed.
type Absent struct{}

// Seq is an ordered sequence of subtrees.
type Seq []Tree

// Mapping is a keyed collection of subtrees. Traversal visits keys in sorted
// order so flatten order and shape descriptors are deterministic.
type Mapping map[string]Tree

func (Leaf) isTree()    {}
func (Absent) isTree()  {}
func (Seq) isTree()     {}
func (Mapping) isTree() {}

// FromBlocks wraps a flat slice as a single-level sequence. A nil block
// becomes an Absent marker.
func FromBlocks(blocks []block.Block) Seq {
	out := make(Seq, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			out = append(out, Absent{})
			continue
		}
		out = append(out, Leaf{Block: b})
	}
	return out
}

// Flatten returns the depth-first, left-to-right sequence of block leaves,
// dropping absence markers.
func Flatten(t Tree) []block.Block {
	var out []block.Block
	walk(t, func(b block.Block) {
		out = append(out, b)
	})
	return out
}

func walk(t Tree, visit func(block.Block)) {
	switch n := t.(type) {
	case Leaf:
		visit(n.Block)
	case Absent:
	case Seq:
		for _, child := range n {
			walk(child, visit)
		}
	case Mapping:
		for _, k := range sortedKeys(n) {
			walk(n[k], visit)
		}
	case nil:
	default:
		panic(fmt.Sprintf("tree: unknown node %T", t))
	}
}

func sortedKeys(m Mapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
