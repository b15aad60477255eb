package fretwave

import "math"

// ConcertPitch is the frequency of A4 in hertz, the reference everything
// else is tuned against.
const ConcertPitch = 440.0

// ConcertA is the note ConcertPitch refers to.
var ConcertA = Note{Class: A, Octave: 4}

// Frequency returns the frequency of the note in hertz, in twelve-tone
// equal temperament with A4 = 440 Hz.
func (n Note) Frequency() float64 {
	return n.FrequencyAt(ConcertA, ConcertPitch)
}

// FrequencyAt returns the frequency of the note in hertz relative to an
// arbitrary reference note and pitch: refHz * 2^((n-ref)/12). The
// intermediate math stays in float64 and the result is strictly positive
// for every representable note.
func (n Note) FrequencyAt(ref Note, refHz float64) float64 {
	return refHz * math.Exp2(float64(n.Semitone()-ref.Semitone())/12)
}
