package macro

import (
	"errors"
	"testing"
)

func TestKeyStateMarkAndRelease(t *testing.T) {
	rec := newRecorder()
	ks := NewKeyState(rec)

	ks.MarkHeld("Shift")
	ks.MarkHeld("A")
	ks.MarkHeld("Shift") // duplicate is a no-op

	if got := ks.Held(); !equalOps(got, []string{"Shift", "A"}) {
		t.Fatalf("Held() = %v, want [Shift A]", got)
	}

	ks.MarkReleased("Shift")
	if got := ks.Held(); !equalOps(got, []string{"A"}) {
		t.Fatalf("after release, Held() = %v, want [A]", got)
	}

	ks.MarkReleased("NotHeld") // unknown key is a no-op
	if ks.HeldCount() != 1 {
		t.Errorf("HeldCount() = %d, want 1", ks.HeldCount())
	}
}

func TestKeyStateReleaseAll(t *testing.T) {
	rec := newRecorder()
	ks := NewKeyState(rec)

	ks.MarkHeld("Ctrl")
	ks.MarkHeld("Shift")
	ks.MarkHeld("A")

	if err := ks.ReleaseAll(); err != nil {
		t.Fatalf("ReleaseAll() error = %v", err)
	}

	// Most recent press released first.
	want := []string{"release:A", "release:Shift", "release:Ctrl"}
	if got := rec.ops(); !equalOps(got, want) {
		t.Errorf("ReleaseAll ops = %v, want %v", got, want)
	}
	if ks.HeldCount() != 0 {
		t.Errorf("HeldCount() after ReleaseAll = %d, want 0", ks.HeldCount())
	}
}

func TestKeyStateReleaseAllContinuesOnError(t *testing.T) {
	rec := newRecorder()
	rec.failOn("release:Shift", errors.New("refused"))

	ks := NewKeyState(rec)
	ks.MarkHeld("Ctrl")
	ks.MarkHeld("Shift")
	ks.MarkHeld("A")

	err := ks.ReleaseAll()
	if err == nil {
		t.Fatal("ReleaseAll() returned nil, want the first injection error")
	}
	var ierr *InjectionError
	if !errors.As(err, &ierr) || ierr.Key != "Shift" {
		t.Errorf("ReleaseAll() error = %v, want InjectionError for Shift", err)
	}

	// The drain attempted every key despite the failure.
	want := []string{"release:A", "release:Ctrl"}
	if got := rec.ops(); !equalOps(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
	if ks.HeldCount() != 0 {
		t.Errorf("state not cleared after failed drain: %v", ks.Held())
	}
}
