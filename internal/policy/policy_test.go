/*
Copyright (C) 2026 Polaris Observatory Collaboration

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package policy

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/polarisobs/meridian/internal/block"
	"github.com/polarisobs/meridian/internal/rules"
	"github.com/polarisobs/meridian/internal/tree"
)

func window() (time.Time, time.Time) {
	return time.Date(2026, 3, 1, 21, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
}

func TestSupportedIncludesDummy(t *testing.T) {
	names := Supported()
	if len(names) == 0 {
		t.Fatal("no supported policies")
	}
	found := false
	for _, n := range names {
		if n == "dummy" {
			found = true
		}
	}
	if !found {
		t.Fatalf("dummy not in supported set %v", names)
	}
}

func TestNewRejectsUnknownPolicy(t *testing.T) {
	t0, t1 := window()
	if _, err := New("nonexistent", t0, t1, DefaultTuning()); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestDummyInitSeqsCoversWindowWithSpill(t *testing.T) {
	t0, t1 := window()
	p := NewDummy(t0, t1, DefaultTuning())

	seqs, err := p.InitSeqs()
	if err != nil {
		t.Fatalf("init_seqs: %v", err)
	}

	m, ok := seqs.(tree.Mapping)
	if !ok {
		t.Fatalf("init_seqs returned %T, want Mapping", seqs)
	}
	if _, ok := m["baseline"]; !ok {
		t.Fatal("missing baseline group")
	}
	if _, ok := m["calibration"]; !ok {
		t.Fatal("missing calibration group")
	}

	scans := tree.Flatten(m["baseline"])
	if len(scans) == 0 {
		t.Fatal("no candidate scans")
	}
	// The grid is anchored below the window start, so the first candidate
	// spills left and the trim rule has real work to do.
	if scans[0].T0().After(t0) {
		t.Fatalf("first scan starts at %v, after window start %v", scans[0].T0(), t0)
	}
	if scans[len(scans)-1].T1().Before(t1) {
		t.Fatalf("last scan ends at %v, before window end %v", scans[len(scans)-1].T1(), t1)
	}
}

func TestDummyRunIsCommittedSchedule(t *testing.T) {
	t0, t1 := window()
	p := NewDummy(t0, t1, DefaultTuning())

	blocks, err := rules.Run(p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(blocks) == 0 {
		t.Fatal("empty schedule")
	}

	flat := tree.FromBlocks(blocks)
	if !tree.IsSorted(flat) {
		t.Fatal("schedule not sorted")
	}
	if tree.HasOverlap(flat) {
		t.Fatal("schedule has overlap")
	}

	for i, b := range blocks {
		if _, ok := b.(block.Scan); !ok {
			t.Fatalf("blocks[%d] is %T, want Scan only", i, b)
		}
		if b.T0().Before(t0) || b.T1().After(t1) {
			t.Fatalf("blocks[%d] = [%v, %v] outside window", i, b.T0(), b.T1())
		}
	}
}

func TestDummyRotatesTargets(t *testing.T) {
	t0, t1 := window()
	tuning := DefaultTuning()
	p := NewDummy(t0, t1, tuning)

	blocks, err := rules.Run(p)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(blocks) < 2 {
		t.Skip("window too small to observe rotation")
	}

	first := blocks[0].(block.Scan).Target
	second := blocks[1].(block.Scan).Target
	if first == second {
		t.Fatalf("consecutive scans target the same field %q", first)
	}
}

func TestDummyRejectsEmptyWindow(t *testing.T) {
	t0, _ := window()
	p := NewDummy(t0, t0, DefaultTuning())

	if _, err := rules.Run(p); err == nil {
		t.Fatal("expected error for empty window")
	}
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	data := []byte(`
scan_minutes: 30
targets:
  - name: test_field
    az: 90.0
    alt: 60.0
    throw: 10.0
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	if tuning.ScanMinutes != 30 {
		t.Fatalf("scan_minutes = %d, want 30", tuning.ScanMinutes)
	}
	if tuning.MinMinutes != DefaultTuning().MinMinutes {
		t.Fatalf("min_minutes = %d, want default %d", tuning.MinMinutes, DefaultTuning().MinMinutes)
	}
	if len(tuning.Targets) != 1 || tuning.Targets[0].Name != "test_field" {
		t.Fatalf("targets = %v", tuning.Targets)
	}
}

func TestLoadTuningRejectsBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(path, []byte("scan_minutes: -5\n"), 0o600); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}

	if _, err := LoadTuning(path); err == nil {
		t.Fatal("expected validation error")
	}

	if _, err := LoadTuning(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadTuningEmptyPathUsesDefaults(t *testing.T) {
	tuning, err := LoadTuning("")
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}
	if tuning.ScanMinutes != DefaultTuning().ScanMinutes {
		t.Fatalf("scan_minutes = %d, want default", tuning.ScanMinutes)
	}
}
