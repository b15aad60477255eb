package practice_test

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkanerva/fretwave"
	"github.com/pkanerva/fretwave/practice"
)

type fakePlayer struct {
	plays  []float64
	stops  int
	closes int
	level  float32
}

func (f *fakePlayer) Play(frequencyHz float64) { f.plays = append(f.plays, frequencyHz) }
func (f *fakePlayer) Stop()                    { f.stops++ }
func (f *fakePlayer) Level() float32           { return f.level }
func (f *fakePlayer) Close()                   { f.closes++ }

type fakeEcho struct {
	notes  []fretwave.Note
	closes int
}

func (f *fakeEcho) PlayNote(note fretwave.Note, velocity byte, duration time.Duration) {
	f.notes = append(f.notes, note)
}

func (f *fakeEcho) Close() error {
	f.closes++
	return nil
}

func TestSessionDefaults(t *testing.T) {
	s := practice.NewSession(&fakePlayer{}, nil)
	if s.Key() != fretwave.C || s.Scale() != fretwave.Major || s.Frets() != practice.DefaultFrets {
		t.Fatalf("defaults: got %v %v %v", s.Key(), s.Scale(), s.Frets())
	}
	table := s.Table()
	if len(table) != 6 {
		t.Fatalf("table rows: got %v, expected 6", len(table))
	}
	for _, row := range table {
		if len(row) != practice.DefaultFrets+1 {
			t.Fatalf("table columns: got %v, expected %v", len(row), practice.DefaultFrets+1)
		}
	}
	if s.MIDIEnabled() {
		t.Fatalf("session without an echo should not report MIDI enabled")
	}
}

func TestPickFret(t *testing.T) {
	player := &fakePlayer{}
	echo := &fakeEcho{}
	s := practice.NewSession(player, echo)
	note := s.PickFret(0, 0)
	if note != (fretwave.Note{Class: fretwave.E, Octave: 2}) {
		t.Fatalf("picked note: got %v, expected E2", note)
	}
	if len(player.plays) != 1 || math.Abs(player.plays[0]-82.4069) > 0.001 {
		t.Fatalf("played frequencies: got %v, expected one tone near 82.41", player.plays)
	}
	if len(echo.notes) != 1 || echo.notes[0] != note {
		t.Fatalf("echoed notes: got %v, expected %v", echo.notes, note)
	}
	s.SetMIDIEnabled(false)
	s.PickFret(5, 0)
	if len(echo.notes) != 1 {
		t.Fatalf("echo should not see picks while disabled, got %v", echo.notes)
	}
	if len(player.plays) != 2 {
		t.Fatalf("player should still see every pick, got %v plays", len(player.plays))
	}
}

func TestSetKey(t *testing.T) {
	s := practice.NewSession(&fakePlayer{}, nil)
	before := s.Table()
	if s.SetKey(fretwave.C) {
		t.Fatalf("setting the current key should be a no-op")
	}
	if after := s.Table(); &after[0] != &before[0] {
		t.Fatalf("no-op key change should not recompute the table")
	}
	// F2 at (0, 1) is in C major but not in A major
	if !s.Table()[0][1].InScale {
		t.Fatalf("F should be in C major")
	}
	if !s.SetKey(fretwave.A) {
		t.Fatalf("changing the key should report a change")
	}
	if s.Table()[0][1].InScale {
		t.Fatalf("F should not be in A major")
	}
}

func TestCycleKey(t *testing.T) {
	s := practice.NewSession(&fakePlayer{}, nil)
	s.CycleKey(-1)
	if s.Key() != fretwave.B {
		t.Fatalf("cycling down from C: got %v, expected B", s.Key())
	}
	s.CycleKey(2)
	if s.Key() != fretwave.CSharp {
		t.Fatalf("cycling up two from B: got %v, expected C#", s.Key())
	}
}

func TestCycleScale(t *testing.T) {
	s := practice.NewSession(&fakePlayer{}, nil)
	s.CycleScale(1)
	if s.Scale() != fretwave.NaturalMinor {
		t.Fatalf("cycling from Major: got %v, expected Natural Minor", s.Scale())
	}
	s.CycleScale(-1)
	if s.Scale() != fretwave.Major {
		t.Fatalf("cycling back: got %v, expected Major", s.Scale())
	}
	s.CycleScale(-1)
	if s.Scale() != fretwave.MinorBlues {
		t.Fatalf("cycling below Major should wrap: got %v, expected Minor Blues", s.Scale())
	}
}

func TestSetFrets(t *testing.T) {
	s := practice.NewSession(&fakePlayer{}, nil)
	if s.SetFrets(practice.DefaultFrets) {
		t.Fatalf("setting the current fret count should be a no-op")
	}
	if !s.SetFrets(24) {
		t.Fatalf("changing the fret count should report a change")
	}
	if got := len(s.Table()[0]); got != 25 {
		t.Fatalf("table columns after SetFrets(24): got %v, expected 25", got)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("SetFrets(0) should have panicked")
		}
	}()
	s.SetFrets(0)
}

func TestSetTuning(t *testing.T) {
	s := practice.NewSession(&fakePlayer{}, nil)
	dropD := fretwave.Tuning{
		{Class: fretwave.D, Octave: 2},
		{Class: fretwave.A, Octave: 2},
		{Class: fretwave.D, Octave: 3},
		{Class: fretwave.G, Octave: 3},
		{Class: fretwave.B, Octave: 3},
		{Class: fretwave.E, Octave: 4},
	}
	s.SetTuning(dropD)
	if got := s.Table()[0][0].Note; got != (fretwave.Note{Class: fretwave.D, Octave: 2}) {
		t.Fatalf("low open string after retuning: got %v, expected D2", got)
	}
	// the session must have copied the tuning
	dropD[0] = fretwave.Note{Class: fretwave.C, Octave: 2}
	if got := s.Tuning()[0]; got != (fretwave.Note{Class: fretwave.D, Octave: 2}) {
		t.Fatalf("mutating the caller's slice changed the session tuning: %v", got)
	}
}

func TestRefreshSingleFlight(t *testing.T) {
	s := practice.NewSession(&fakePlayer{}, nil)
	var wg sync.WaitGroup
	var ran atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Refresh() {
				ran.Add(1)
			}
		}()
	}
	wg.Wait()
	if ran.Load() == 0 {
		t.Fatalf("at least one concurrent refresh should have run")
	}
	if !s.Refresh() {
		t.Fatalf("the guard was not released after the refreshes finished")
	}
}

func TestSessionClose(t *testing.T) {
	player := &fakePlayer{}
	echo := &fakeEcho{}
	s := practice.NewSession(player, echo)
	s.Stop()
	if player.stops != 1 {
		t.Fatalf("stops: got %v, expected 1", player.stops)
	}
	s.Close()
	s.Close()
	if player.closes != 1 || echo.closes != 1 {
		t.Fatalf("closes: got player %v, echo %v, expected 1 and 1", player.closes, echo.closes)
	}
}

func TestSetMIDIEnabledWithoutEcho(t *testing.T) {
	s := practice.NewSession(&fakePlayer{}, nil)
	s.SetMIDIEnabled(true)
	if s.MIDIEnabled() {
		t.Fatalf("MIDI cannot be enabled without an echo destination")
	}
	s.PickFret(0, 0)
}
