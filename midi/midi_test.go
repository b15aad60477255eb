package midi_test

import (
	"testing"
	"time"

	"github.com/pkanerva/fretwave"
	"github.com/pkanerva/fretwave/midi"
)

func TestNilOutputIsSafe(t *testing.T) {
	var out *midi.Output
	out.PlayNote(fretwave.Note{Class: fretwave.E, Octave: 2}, 100, 10*time.Millisecond)
	if got := out.Port(); got != "" {
		t.Fatalf("nil output port: got %q, expected empty", got)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("nil output close: %v", err)
	}
}
