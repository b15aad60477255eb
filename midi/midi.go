// Package midi echoes picked notes to a MIDI output port, so a practice
// session can drive an external synth alongside the built-in tone.
package midi

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkanerva/fretwave"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Output is a monophonic note echo on one MIDI output port. Every method
// works on a nil *Output as a no-op, so a missing port degrades to
// silence without the callers branching.
type Output struct {
	driver *rtmididrv.Driver
	out    drivers.Out
	send   func(msg midi.Message) error

	mu         sync.Mutex
	pending    *time.Timer // delivers the NoteOff of the sounding note
	lastKey    uint8
	generation int
}

const echoChannel = 0

// Open opens a MIDI output: the first port whose name starts with
// portPrefix, or simply the first port when the prefix is empty. There
// is no retry on failure; the caller is expected to log the error once
// and continue without an echo.
func Open(portPrefix string) (*Output, error) {
	driver, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("cannot open MIDI driver: %w", err)
	}
	outs, err := driver.Outs()
	if err != nil {
		driver.Close()
		return nil, fmt.Errorf("cannot list MIDI outputs: %w", err)
	}
	var out drivers.Out
	for _, o := range outs {
		if portPrefix == "" || strings.HasPrefix(o.String(), portPrefix) {
			out = o
			break
		}
	}
	if out == nil {
		driver.Close()
		if portPrefix == "" {
			return nil, errors.New("no MIDI outputs available")
		}
		return nil, fmt.Errorf("no MIDI output starting with %q", portPrefix)
	}
	if err := out.Open(); err != nil {
		driver.Close()
		return nil, fmt.Errorf("cannot open MIDI output %v: %w", out, err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		out.Close()
		driver.Close()
		return nil, fmt.Errorf("cannot send to MIDI output %v: %w", out, err)
	}
	return &Output{driver: driver, out: out, send: send}, nil
}

// Port returns the name of the open output port.
func (o *Output) Port() string {
	if o == nil {
		return ""
	}
	return o.out.String()
}

// PlayNote sends a NoteOn for the note and schedules the matching
// NoteOff after the duration. The echo is monophonic: a new note always
// cuts the previous one off first. Send failures are dropped, matching
// the best-effort contract of the audio path.
func (o *Output) PlayNote(note fretwave.Note, velocity byte, duration time.Duration) {
	if o == nil {
		return
	}
	key := midiKey(note)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.noteOffLocked()
	if err := o.send(midi.NoteOn(echoChannel, key, velocity)); err != nil {
		return
	}
	o.lastKey = key
	o.generation++
	gen := o.generation
	o.pending = time.AfterFunc(duration, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.generation != gen {
			// a newer note already cut this one off
			return
		}
		o.send(midi.NoteOff(echoChannel, key))
		o.pending = nil
	})
}

// noteOffLocked cuts the sounding note off, if any. The caller holds mu.
func (o *Output) noteOffLocked() {
	if o.pending == nil {
		return
	}
	o.pending.Stop()
	o.pending = nil
	o.send(midi.NoteOff(echoChannel, o.lastKey))
}

// Close cuts the sounding note off and closes the port and the driver.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.noteOffLocked()
	if err := o.out.Close(); err != nil {
		o.driver.Close()
		return fmt.Errorf("cannot close MIDI output: %w", err)
	}
	if err := o.driver.Close(); err != nil {
		return fmt.Errorf("cannot close MIDI driver: %w", err)
	}
	return nil
}

func midiKey(note fretwave.Note) uint8 {
	key := note.MIDI()
	if key < 0 {
		key = 0
	} else if key > 127 {
		key = 127
	}
	return uint8(key)
}
