package runlock

import (
	"errors"
	"os"
	"testing"
)

func TestAcquireAndRelease(t *testing.T) {
	dest := t.TempDir()

	lock, err := Acquire(dest)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	// Releasing frees the destination for the next run.
	again, err := Acquire(dest)
	if err != nil {
		t.Fatalf("re-acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestAcquireCreatesDestination(t *testing.T) {
	dest := t.TempDir() + "/not-yet-created"
	lock, err := Acquire(dest)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lock.Release()

	info, err := os.Stat(dest)
	if err != nil || !info.IsDir() {
		t.Fatalf("destination not created: %v", err)
	}
}

func TestSecondAcquireFails(t *testing.T) {
	dest := t.TempDir()

	first, err := Acquire(dest)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer first.Release()

	if _, err := Acquire(dest); !errors.Is(err, ErrHeld) {
		t.Fatalf("second acquire err = %v, want ErrHeld", err)
	}
}
