/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package tree

import (
	"fmt"
	"time"

	"github.com/polarisobs/meridian/internal/block"
)

// Unflatten is the inverse of Flatten: it re-wraps a flat leaf sequence into
// the nesting described by def. The block count must match the descriptor's
// leaf slots exactly.
func Unflatten(def *Def, blocks []block.Block) (Tree, error) {
	if want := def.NumLeaves(); want != len(blocks) {
		return nil, fmt.Errorf("%w: treedef has %d leaf slots, got %d blocks", ErrStructuralMismatch, want, len(blocks))
	}
	t, _ := unflatten(def, blocks)
	return t, nil
}

func unflatten(def *Def, blocks []block.Block) (Tree, []block.Block) {
	switch def.kind {
	case defLeaf:
		b := blocks[0]
		if b == nil {
			return Absent{}, blocks[1:]
		}
		return Leaf{Block: b}, blocks[1:]
	case defAbsent:
		return Absent{}, blocks
	case defSeq:
		out := make(Seq, 0, len(def.children))
		for _, child := range def.children {
			var sub Tree
			sub, blocks = unflatten(child, blocks)
			out = append(out, sub)
		}
		return out, blocks
	case defMapping:
		out := make(Mapping, len(def.children))
		for i, child := range def.children {
			var sub Tree
			sub, blocks = unflatten(child, blocks)
			out[def.keys[i]] = sub
		}
		return out, blocks
	}
	panic(fmt.Sprintf("tree: unknown def kind %d", def.kind))
}

// Map applies op to every block leaf, preserving shape. A nil result prunes
// the leaf to an Absent marker.
func Map(op func(block.Block) block.Block, t Tree) Tree {
	switch n := t.(type) {
	case Leaf:
		if b := op(n.Block); b != nil {
			return Leaf{Block: b}
		}
		return Absent{}
	case Absent:
		return Absent{}
	case Seq:
		out := make(Seq, 0, len(n))
		for _, child := range n {
			out = append(out, Map(op, child))
		}
		return out
	case Mapping:
		out := make(Mapping, len(n))
		for k, child := range n {
			out[k] = Map(op, child)
		}
		return out
	default:
		panic(fmt.Sprintf("tree: unknown node %T", t))
	}
}

// MapWhen applies op only to leaves where pred holds, identity elsewhere.
func MapWhen(pred func(block.Block) bool, op func(block.Block) block.Block, t Tree) Tree {
	return Map(func(b block.Block) block.Block {
		if pred(b) {
			return op(b)
		}
		return b
	}, t)
}

// Filter replaces leaves failing pred with absence, preserving shape.
func Filter(pred func(block.Block) bool, t Tree) Tree {
	return Map(func(b block.Block) block.Block {
		if pred(b) {
			return b
		}
		return nil
	}, t)
}

// FilterOut is the complement of Filter: leaves passing pred are pruned.
func FilterOut(pred func(block.Block) bool, t Tree) Tree {
	return Filter(func(b block.Block) bool { return !pred(b) }, t)
}

// ReplaceBlock swaps every leaf structurally equal to source for target.
func ReplaceBlock(t Tree, source, target block.Block) Tree {
	return MapWhen(
		func(b block.Block) bool { return b == source },
		func(block.Block) block.Block { return target },
		t,
	)
}

// Trim clips every leaf to [t0, t1]; leaves trimmed to empty become absence.
func Trim(t Tree, t0, t1 time.Time) Tree {
	return Map(func(b block.Block) block.Block {
		return block.Trim(b, t0, t1)
	}, t)
}

// AssertSameStructure fails when the trees' shape descriptors differ.
// Absence markers count as leaf slots here, so a filtered tree still matches
// the tree it was filtered from.
func AssertSameStructure(trees ...Tree) error {
	if len(trees) < 2 {
		return nil
	}
	first := TreeDef(trees[0], true)
	for _, t := range trees[1:] {
		if d := TreeDef(t, true); !first.Equal(d) {
			return fmt.Errorf("%w: trees have different structure: %s vs %s", ErrStructuralMismatch, first, d)
		}
	}
	return nil
}
