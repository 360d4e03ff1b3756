package usecase_test

import (
	"errors"
	"testing"

	"github.com/jakeadel/bank-demo/internal/usecase"
)

func TestErrorLogAppend(t *testing.T) {
	log := usecase.NewErrorLog(nil)

	log.Append("Error adding user", errors.New("500 Internal Server Error"))
	log.Append("Unable to refresh funds", errors.New("404 Not Found"))

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0] != "Error adding user, 500 Internal Server Error" {
		t.Errorf("unexpected first entry %q", entries[0])
	}
	if entries[1] != "Unable to refresh funds, 404 Not Found" {
		t.Errorf("unexpected second entry %q", entries[1])
	}
}

// The log only grows; order is append order, oldest first.
func TestErrorLogNonDecreasing(t *testing.T) {
	log := usecase.NewErrorLog(nil)

	prev := 0
	for i := 0; i < 10; i++ {
		log.Append("Error transferring funds", errors.New("422 Unprocessable Entity"))
		if log.Len() <= prev {
			t.Fatalf("log shrank: %d after %d", log.Len(), prev)
		}
		prev = log.Len()
	}

	entries := log.Entries()
	entries[0] = "tampered"
	if log.Entries()[0] == "tampered" {
		t.Error("Entries must return a copy")
	}
}
