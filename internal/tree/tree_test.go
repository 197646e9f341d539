/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package tree

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/polarisobs/meridian/internal/block"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 1, hour, min, 0, 0, time.UTC)
}

func span(h0, m0, h1, m1 int) block.Span {
	return block.New(at(h0, m0), at(h1, m1))
}

// fixture nests a mapping over sequences with one absence marker. Mapping
// keys traverse in sorted order, so "cal" flattens before "survey".
func fixture() Tree {
	return Mapping{
		"survey": Seq{
			Leaf{Block: span(10, 0, 11, 0)},
			Seq{Leaf{Block: span(11, 0, 12, 0)}},
		},
		"cal": Seq{
			Leaf{Block: span(9, 0, 9, 30)},
			Absent{},
		},
	}
}

func TestFlattenOrderAndAbsenceDropping(t *testing.T) {
	got := Flatten(fixture())

	want := []block.Block{
		span(9, 0, 9, 30),
		span(10, 0, 11, 0),
		span(11, 0, 12, 0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestUnflattenRoundTrip(t *testing.T) {
	tree := fixture()
	def := TreeDef(tree, false)
	leaves := Flatten(tree)

	rebuilt, err := Unflatten(def, leaves)
	if err != nil {
		t.Fatalf("unflatten: %v", err)
	}

	if diff := cmp.Diff(leaves, Flatten(rebuilt)); diff != "" {
		t.Fatalf("roundtrip flatten mismatch (-want +got):\n%s", diff)
	}
	if !TreeDef(rebuilt, false).Equal(def) {
		t.Fatalf("roundtrip def = %s, want %s", TreeDef(rebuilt, false), def)
	}
}

func TestUnflattenLeafCountMismatch(t *testing.T) {
	tree := fixture()
	def := TreeDef(tree, false)

	_, err := Unflatten(def, Flatten(tree)[1:])
	if !errors.Is(err, ErrStructuralMismatch) {
		t.Fatalf("err = %v, want ErrStructuralMismatch", err)
	}
}

func TestTreeDefEquality(t *testing.T) {
	a := fixture()
	b := fixture()
	if !TreeDef(a, false).Equal(TreeDef(b, false)) {
		t.Fatal("identical trees should have equal defs")
	}

	c := Seq{Leaf{Block: span(9, 0, 9, 30)}}
	if TreeDef(a, false).Equal(TreeDef(c, false)) {
		t.Fatal("different shapes should have unequal defs")
	}
}

func TestMapPreservesShapeAndPrunesNil(t *testing.T) {
	tree := fixture()

	shifted := Map(func(b block.Block) block.Block {
		return block.Shift(b, 5*time.Minute)
	}, tree)
	if err := AssertSameStructure(tree, shifted); err != nil {
		t.Fatalf("map changed structure: %v", err)
	}
	if got := Flatten(shifted)[0].T0(); !got.Equal(at(9, 5)) {
		t.Fatalf("first leaf T0 = %v, want 09:05", got)
	}

	pruned := Map(func(block.Block) block.Block { return nil }, tree)
	if got := len(Flatten(pruned)); got != 0 {
		t.Fatalf("flatten of all-pruned tree has %d leaves, want 0", got)
	}
	if err := AssertSameStructure(tree, pruned); err != nil {
		t.Fatalf("pruning changed structure: %v", err)
	}
}

func TestFilterComplement(t *testing.T) {
	tree := fixture()
	short := func(b block.Block) bool { return b.Duration() < time.Hour }

	kept := Flatten(Filter(short, tree))
	dropped := Flatten(FilterOut(short, tree))

	if len(kept) != 1 || kept[0] != block.Block(span(9, 0, 9, 30)) {
		t.Fatalf("filter kept %v", kept)
	}
	if len(dropped) != 2 {
		t.Fatalf("filter_out kept %d blocks, want 2", len(dropped))
	}
}

func TestMapWhen(t *testing.T) {
	tree := fixture()
	isCal := func(b block.Block) bool { return b.Duration() == 30*time.Minute }

	out := MapWhen(isCal, func(b block.Block) block.Block {
		return block.ExtendRight(b, 30*time.Minute)
	}, tree)

	got := Flatten(out)
	if got[0] != block.Block(span(9, 0, 10, 0)) {
		t.Fatalf("matched leaf = %v, want extended", got[0])
	}
	if got[1] != block.Block(span(10, 0, 11, 0)) {
		t.Fatalf("unmatched leaf changed: %v", got[1])
	}
}

func TestReplaceBlock(t *testing.T) {
	tree := fixture()
	source := block.Block(span(10, 0, 11, 0))
	target := block.Block(span(10, 15, 11, 0))

	out := ReplaceBlock(tree, source, target)

	got := Flatten(out)
	if got[1] != target {
		t.Fatalf("leaf = %v, want %v", got[1], target)
	}
	if got[0] != block.Block(span(9, 0, 9, 30)) {
		t.Fatalf("untouched leaf changed: %v", got[0])
	}
}

func TestTrimTree(t *testing.T) {
	tree := fixture()

	out := Trim(tree, at(10, 30), at(11, 30))

	if err := AssertSameStructure(tree, out); err != nil {
		t.Fatalf("trim changed structure: %v", err)
	}
	got := Flatten(out)
	want := []block.Block{
		span(10, 30, 11, 0),
		span(11, 0, 11, 30),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("trim mismatch (-want +got):\n%s", diff)
	}
}

func TestAssertSameStructureDetectsMismatch(t *testing.T) {
	a := Seq{Leaf{Block: span(9, 0, 10, 0)}, Leaf{Block: span(10, 0, 11, 0)}}
	b := Seq{Leaf{Block: span(9, 0, 10, 0)}}

	if err := AssertSameStructure(a, b); !errors.Is(err, ErrStructuralMismatch) {
		t.Fatalf("err = %v, want ErrStructuralMismatch", err)
	}

	// A filtered tree keeps the structure of its source: absence counts as a
	// leaf slot.
	filtered := Filter(func(block.Block) bool { return false }, a)
	if err := AssertSameStructure(a, filtered); err != nil {
		t.Fatalf("filtered tree should match source: %v", err)
	}
}
