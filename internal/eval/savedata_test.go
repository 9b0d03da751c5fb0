// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import "testing"

func TestSaveDataStack(t *testing.T) {
	d := NewSaveData()

	if _, ok := d.Peek("k"); ok {
		t.Fatal("expected empty store")
	}

	d.Push("k", "a")
	d.Push("k", "b")
	d.Push("other", "x")

	if v, _ := d.Peek("k"); v != "b" {
		t.Errorf("expected 'b', got '%s'", v)
	}
	if d.Depth("k") != 2 {
		t.Errorf("expected depth 2, got %d", d.Depth("k"))
	}

	d.Pop("k")
	if v, _ := d.Peek("k"); v != "a" {
		t.Errorf("expected 'a' after pop, got '%s'", v)
	}

	d.Pop("k")
	if _, ok := d.Peek("k"); ok {
		t.Error("expected key removed once its last value is popped")
	}
	if d.Len() != 1 {
		t.Errorf("expected only 'other' left, got %d keys", d.Len())
	}
	if v, _ := d.Peek("other"); v != "x" {
		t.Errorf("expected other key untouched, got '%s'", v)
	}

	// Popping an absent key is a no-op
	d.Pop("k")
	d.Pop("missing")
	if d.Len() != 1 {
		t.Errorf("expected 1 key, got %d", d.Len())
	}
}

func TestSaveDataEmptyValue(t *testing.T) {
	d := NewSaveData()
	d.Push("k", "")

	v, ok := d.Peek("k")
	if !ok || v != "" {
		t.Errorf("expected present empty value, got %q %v", v, ok)
	}
}

func TestScopeReleasePopsNewestFirst(t *testing.T) {
	e := New(nil)
	e.saves.Push("k", "outer")

	sc := e.openScope()
	sc.push("k", "a")
	sc.push("j", "b")
	sc.push("k", "c")
	if v, _ := e.saves.Peek("k"); v != "c" {
		t.Fatalf("expected 'c', got '%s'", v)
	}

	sc.release()
	if v, _ := e.saves.Peek("k"); v != "outer" {
		t.Errorf("expected 'outer' restored, got '%s'", v)
	}
	if _, ok := e.saves.Peek("j"); ok {
		t.Error("expected 'j' gone after release")
	}

	// A second release is harmless
	sc.release()
	if v, _ := e.saves.Peek("k"); v != "outer" {
		t.Errorf("expected 'outer' after double release, got '%s'", v)
	}
}

func TestScopeForget(t *testing.T) {
	e := New(nil)
	e.saves.Push("k", "outer")

	sc := e.openScope()
	sc.push("k", "a")
	sc.push("k", "b")

	e.saves.Pop("k")
	sc.forget("k")
	sc.forget("never-pushed")
	sc.release()

	if v, _ := e.saves.Peek("k"); v != "outer" {
		t.Errorf("expected 'outer' to survive, got '%s'", v)
	}
}
