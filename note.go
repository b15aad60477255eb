package fretwave

import (
	"fmt"
	"strconv"
)

type (
	// PitchClass is a note name without an octave: one of the twelve
	// chromatic pitch classes, C = 0 through B = 11. The type is closed;
	// code constructing pitch classes from arbitrary integers should go
	// through PitchClassFromInt, which folds any value onto the valid
	// range.
	PitchClass int

	// Note is a pitch class qualified with an octave, in scientific pitch
	// notation: A4 is the 440 Hz concert pitch, C4 is middle C, and the
	// octave number changes between B and C. Note is a plain value; two
	// notes denote the same pitch exactly when their Semitone values are
	// equal, which given the closed PitchClass range is the same as the
	// structs being equal.
	Note struct {
		Class  PitchClass
		Octave int
	}
)

const (
	C PitchClass = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// NumPitchClasses is the number of semitones in an octave.
const NumPitchClasses = 12

var pitchClassNames = [NumPitchClasses]string{
	"C",
	"C#",
	"D",
	"D#",
	"E",
	"F",
	"F#",
	"G",
	"G#",
	"A",
	"A#",
	"B",
}

// PitchClassFromInt folds an arbitrary integer onto the twelve pitch
// classes, using flooring modulo so that 12 wraps to C and -1 to B.
func PitchClassFromInt(n int) PitchClass {
	return PitchClass(mod(n, NumPitchClasses))
}

func (p PitchClass) String() string {
	return pitchClassNames[mod(int(p), NumPitchClasses)]
}

// Semitone returns the absolute pitch of the note in semitones, with C0 =
// 0, C#0 = 1 and so on; octaves below zero give negative values. This is
// the single definition of pitch equality and ordering that everything
// else (fret arithmetic, frequencies, MIDI) is derived from.
func (n Note) Semitone() int {
	return int(n.Class) + NumPitchClasses*n.Octave
}

// NoteFromSemitone is the inverse of Semitone. Flooring division makes it
// total: also negative semitone values resolve to a class in C..B and the
// matching octave, so -1 is B(-1) rather than an out-of-range class.
func NoteFromSemitone(v int) Note {
	class := mod(v, NumPitchClasses)
	return Note{Class: PitchClass(class), Octave: (v - class) / NumPitchClasses}
}

// Add returns the note transposed by the given number of semitones, which
// may be negative.
func (n Note) Add(semitones int) Note {
	return NoteFromSemitone(n.Semitone() + semitones)
}

// MIDI returns the MIDI note number of the note: A4 = 69, low E of a
// guitar E2 = 40.
func (n Note) MIDI() int {
	return n.Semitone() + 12
}

// NoteFromMIDI returns the note denoted by a MIDI note number.
func NoteFromMIDI(m int) Note {
	return NoteFromSemitone(m - 12)
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Class, n.Octave)
}

// ParseNote parses scientific pitch notation, e.g. "E2", "A#4" or "Db3".
// Sharps may be written # or s, flats b; flats parse to their enharmonic
// sharp class. The octave may be negative ("B-1").
func ParseNote(s string) (Note, error) {
	if len(s) < 2 {
		return Note{}, fmt.Errorf("cannot parse note %q: too short", s)
	}
	class, ok := baseClass(s[0])
	if !ok {
		return Note{}, fmt.Errorf("cannot parse note %q: unknown pitch class %q", s, s[0])
	}
	rest := s[1:]
	switch rest[0] {
	case '#', 's':
		class++
		rest = rest[1:]
	case 'b':
		class--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return Note{}, fmt.Errorf("cannot parse octave of note %q: %v", s, err)
	}
	// Folding through the semitone keeps enharmonic edge cases right:
	// Cb4 is B3 and B#4 is C5.
	return NoteFromSemitone(class + NumPitchClasses*octave), nil
}

// ParsePitchClass parses a bare pitch class name such as "C", "F#" or
// "Eb". As in ParseNote, flats fold to their enharmonic sharp class.
func ParsePitchClass(s string) (PitchClass, error) {
	if s == "" {
		return 0, fmt.Errorf("cannot parse a pitch class from an empty string")
	}
	class, ok := baseClass(s[0])
	if !ok {
		return 0, fmt.Errorf("cannot parse pitch class %q: unknown pitch class %q", s, s[0])
	}
	rest := s[1:]
	if rest != "" {
		switch rest[0] {
		case '#', 's':
			class++
			rest = rest[1:]
		case 'b':
			class--
			rest = rest[1:]
		}
	}
	if rest != "" {
		return 0, fmt.Errorf("cannot parse pitch class %q: trailing %q", s, rest)
	}
	return PitchClassFromInt(class), nil
}

func baseClass(c byte) (int, bool) {
	switch c {
	case 'c', 'C':
		return 0, true
	case 'd', 'D':
		return 2, true
	case 'e', 'E':
		return 4, true
	case 'f', 'F':
		return 5, true
	case 'g', 'G':
		return 7, true
	case 'a', 'A':
		return 9, true
	case 'b', 'B':
		return 11, true
	}
	return 0, false
}

func (p PitchClass) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PitchClass) UnmarshalText(text []byte) error {
	parsed, err := ParsePitchClass(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (n Note) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Note) UnmarshalText(text []byte) error {
	parsed, err := ParseNote(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func mod(a, b int) int {
	if a < 0 {
		return b - 1 - mod(-a-1, b)
	}
	return a % b
}
