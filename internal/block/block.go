/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package block holds the immutable time-interval value at the heart of the
// planner and the pure geometric operations over it. Blocks are never mutated:
// every operation returns a fresh value, and a nil Block is the absence value
// produced when an operation empties an interval.
package block

import "time"

// Kind tags the concrete block variant.
type Kind string

const (
	KindSpan  Kind = "span"
	KindNamed Kind = "named"
	KindScan  Kind = "scan"
)

// Block is an immutable interval [T0, T1). Implementations must be comparable
// structs so blocks compare structurally with ==. WithSpan is the
// copy-with-modification constructor: it returns a new block of the same
// variant with the bounds replaced and every other field carried over.
type Block interface {
	T0() time.Time
	T1() time.Time
	Duration() time.Duration
	Kind() Kind
	WithSpan(t0, t1 time.Time) Block
}

// Span is the base variant, an interval with no payload.
type Span struct {
	Start time.Time
	End   time.Time
}

// New returns the base interval [t0, t1). Callers keep t0 <= t1.
func New(t0, t1 time.Time) Span {
	return Span{Start: t0, End: t1}
}

func (s Span) T0() time.Time           { return s.Start }
func (s Span) T1() time.Time           { return s.End }
func (s Span) Duration() time.Duration { return s.End.Sub(s.Start) }
func (s Span) Kind() Kind              { return KindSpan }

func (s Span) WithSpan(t0, t1 time.Time) Block {
	return Span{Start: t0, End: t1}
}

// Named is a labelled interval, used for calibration and housekeeping slots.
type Named struct {
	Span
	Name string
}

func (n Named) Kind() Kind { return KindNamed }

func (n Named) WithSpan(t0, t1 time.Time) Block {
	n.Span = Span{Start: t0, End: t1}
	return n
}

// Scan is an on-sky observation of a target field.
type Scan struct {
	Span
	Target string
	Az     float64 // boresight azimuth, degrees
	Alt    float64 // boresight altitude, degrees
	Throw  float64 // scan width, degrees
}

func (s Scan) Kind() Kind { return KindScan }

func (s Scan) WithSpan(t0, t1 time.Time) Block {
	s.Span = Span{Start: t0, End: t1}
	return s
}

// Split cuts b at t. Outside the open interval (T0, T1) the block is returned
// unchanged as a single-element slice; inside, the two halves come back in
// time order, both carrying b's variant and payload.
func Split(b Block, t time.Time) []Block {
	if !t.After(b.T0()) || !t.Before(b.T1()) {
		return []Block{b}
	}
	return []Block{b.WithSpan(b.T0(), t), b.WithSpan(t, b.T1())}
}

// Trim clips b to [t0, t1]. A zero bound defaults to the block's own bound.
// Returns nil when the clipped interval is empty.
func Trim(b Block, t0, t1 time.Time) Block {
	if t0.IsZero() {
		t0 = b.T0()
	}
	if t1.IsZero() {
		t1 = b.T1()
	}
	if !t0.Before(b.T1()) || !t1.After(b.T0()) {
		return nil
	}
	return b.WithSpan(maxTime(b.T0(), t0), minTime(b.T1(), t1))
}

// Shift translates both endpoints by d.
func Shift(b Block, d time.Duration) Block {
	return b.WithSpan(b.T0().Add(d), b.T1().Add(d))
}

// Extend grows b symmetrically: d/2 on each side, not d per side.
func Extend(b Block, d time.Duration) Block {
	return b.WithSpan(b.T0().Add(-d/2), b.T1().Add(d/2))
}

// ExtendLeft grows b by the full d on the left side only.
func ExtendLeft(b Block, d time.Duration) Block {
	return b.WithSpan(b.T0().Add(-d), b.T1())
}

// ExtendRight grows b by the full d on the right side only.
func ExtendRight(b Block, d time.Duration) Block {
	return b.WithSpan(b.T0(), b.T1().Add(d))
}

// Shrink removes d/2 from each side. Returns nil when the block's whole
// duration is d or less.
func Shrink(b Block, d time.Duration) Block {
	if b.Duration() <= d {
		return nil
	}
	return b.WithSpan(b.T0().Add(d/2), b.T1().Add(-d/2))
}

// ShrinkLeft removes the full d from the left side, nil under the same guard.
func ShrinkLeft(b Block, d time.Duration) Block {
	if b.Duration() <= d {
		return nil
	}
	return b.WithSpan(b.T0().Add(d), b.T1())
}

// ShrinkRight removes the full d from the right side, nil under the same guard.
func ShrinkRight(b Block, d time.Duration) Block {
	if b.Duration() <= d {
		return nil
	}
	return b.WithSpan(b.T0(), b.T1().Add(-d))
}

// TrimLeftTo advances T0 to t, leaving T1 alone. Returns nil when t is at or
// past the end of the block.
func TrimLeftTo(b Block, t time.Time) Block {
	if !t.Before(b.T1()) {
		return nil
	}
	return b.WithSpan(maxTime(b.T0(), t), b.T1())
}

// IsA returns a predicate matching blocks of the given variant.
func IsA(k Kind) func(Block) bool {
	return func(b Block) bool {
		return b != nil && b.Kind() == k
	}
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
