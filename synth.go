package fretwave

import (
	"math"
	"time"

	"github.com/viterin/vek/vek32"
)

// Audio constants of the feedback tone. Every rendered tone uses
// SampleRate; interactive feedback uses the default duration and
// amplitude, chosen to be short and quiet enough to never fatigue.
const (
	SampleRate    = 44100
	ToneDuration  = 300 * time.Millisecond
	ToneAmplitude = 0.3
)

// Oscillator renders a pure sine tone as single-channel float32 samples.
// Rendering is unbounded: successive Render calls continue the waveform
// seamlessly for as long as the caller keeps asking, and limiting a tone
// to a duration is the caller's policy (see DurationSamples). The zero
// value is not usable; construct with NewOscillator or NewOscillatorRate.
type Oscillator struct {
	frequency  float64
	amplitude  float64
	sampleRate int
	index      int
}

// NewOscillator returns an oscillator for the given frequency with the
// default feedback-tone amplitude and sample rate.
func NewOscillator(frequencyHz float64) *Oscillator {
	return NewOscillatorRate(frequencyHz, ToneAmplitude, SampleRate)
}

// NewOscillatorRate returns an oscillator with an explicit amplitude and
// sample rate. The frequency and sample rate must be positive and the
// amplitude within (0, 1]; anything else is a bug in the caller and
// panics.
func NewOscillatorRate(frequencyHz, amplitude float64, sampleRate int) *Oscillator {
	if frequencyHz <= 0 {
		panic("fretwave: oscillator frequency must be positive")
	}
	if amplitude <= 0 || amplitude > 1 {
		panic("fretwave: oscillator amplitude must be within (0, 1]")
	}
	if sampleRate <= 0 {
		panic("fretwave: oscillator sample rate must be positive")
	}
	return &Oscillator{frequency: frequencyHz, amplitude: amplitude, sampleRate: sampleRate}
}

// Render fills the whole buffer with the next len(buffer) samples of the
// tone, continuing from where the previous call left off. Phase is
// computed from the running sample index in float64, so long renders do
// not drift in pitch.
func (o *Oscillator) Render(buffer []float32) {
	w := 2 * math.Pi * o.frequency / float64(o.sampleRate)
	for i := range buffer {
		buffer[i] = float32(math.Sin(w * float64(o.index)))
		o.index++
	}
	vek32.MulNumber_Inplace(buffer, float32(o.amplitude))
}

// Rendered returns the total number of samples rendered so far. To start
// a tone over, construct a new Oscillator.
func (o *Oscillator) Rendered() int {
	return o.index
}

// DurationSamples converts a duration to a sample count at the given
// sample rate, rounding down.
func DurationSamples(d time.Duration, sampleRate int) int {
	return int(d * time.Duration(sampleRate) / time.Second)
}
