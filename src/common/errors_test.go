package common

import (
	"fmt"
	"testing"
)

func TestConsensusErr(t *testing.T) {
	err := NewConsensusErr("EventStore", InvalidParent, "7")

	if !Is(err, InvalidParent) {
		t.Fatalf("error should be classified as InvalidParent")
	}
	if Is(err, UnknownEvent) {
		t.Fatalf("error should not be classified as UnknownEvent")
	}

	wrapped := fmt.Errorf("inserting event: %w", err)
	if !Is(wrapped, InvalidParent) {
		t.Fatalf("wrapped error should still be classified as InvalidParent")
	}

	if Is(fmt.Errorf("plain"), InvalidParent) {
		t.Fatalf("plain error should not be classified")
	}

	expected := "EventStore, 7, Invalid Parent"
	if err.Error() != expected {
		t.Fatalf("Error() should be %q, not %q", expected, err.Error())
	}
}
