// Package player owns the audio output: a run loop in its own goroutine
// renders feedback tones to an audio sink, while the rest of the program
// talks to it through a non-blocking, monophonic play/stop surface.
package player

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkanerva/fretwave"
	"github.com/viterin/vek/vek32"
)

type (
	// Player plays one feedback tone at a time. Play and Stop never block:
	// they post commands to the run loop, and a new tone always pre-empts
	// whatever is still sounding, with no queueing and no overlap. A
	// Player built from a nil AudioContext is permanently muted; all
	// methods still work but produce no sound, so callers never branch on
	// whether a device was available.
	Player struct {
		commands  chan command
		closer    chan struct{} // capacity 1, so requesting closure never blocks
		finished  chan struct{} // closed once the run loop has fully cleaned up
		level     atomic.Uint32 // float32 bits of the latest chunk peak
		closeOnce sync.Once
		context   fretwave.AudioContext
	}

	// command tells the run loop what to sound next: a tone at a positive
	// frequency, or silence at frequency 0.
	command struct {
		frequency float64
	}
)

// chunkSize is the number of samples rendered per sink write. Small
// chunks keep the loop responsive to pre-empting commands; at 44100 Hz
// one chunk is around 23 ms.
const chunkSize = 1024

// deviceReleaseDelay is how long Close lingers after the audio device has
// been closed. Some host audio backends hold the device for a moment
// after a stop, and device-sensitive work right after a close can
// conflict with other drivers; the delay is a deliberate workaround, not
// an incidental sleep.
const deviceReleaseDelay = 30 * time.Millisecond

// closeTimeout bounds how long Close waits for the run loop to exit.
const closeTimeout = 3 * time.Second

// New starts a Player on the given audio context. The player owns the
// context from here on: it opens the output sink and closes both when the
// player is closed. A nil context gives a muted player.
func New(ac fretwave.AudioContext) *Player {
	p := &Player{
		commands: make(chan command, 64),
		closer:   make(chan struct{}, 1),
		finished: make(chan struct{}),
		context:  ac,
	}
	go p.run()
	return p
}

// Play starts sounding a tone of the given frequency, first silencing
// whatever tone might still be playing. It returns immediately; the tone
// plays for the default tone duration in the background. The frequency
// must be positive, as it always comes from note math rather than user
// input.
func (p *Player) Play(frequencyHz float64) {
	if frequencyHz <= 0 {
		panic("player: nonpositive frequency")
	}
	p.send(command{frequency: frequencyHz})
}

// Stop silences the current tone, if any. Samples already queued in the
// device buffer still drain, but the device buffer is kept short enough
// that the tail is at most a few tens of milliseconds.
func (p *Player) Stop() {
	p.send(command{})
}

// Level returns the peak amplitude of the latest rendered chunk, 0 when
// idle or muted. It can be read from any goroutine.
func (p *Player) Level() float32 {
	return math.Float32frombits(p.level.Load())
}

// Close stops playback, shuts the run loop down and releases the audio
// device, then waits deviceReleaseDelay before returning so the caller
// can proceed with device-sensitive work. It is safe to call from a
// different goroutine than Play and Stop; only the first call does the
// work, later calls return immediately.
func (p *Player) Close() {
	p.closeOnce.Do(func() {
		trySend(p.closer, struct{}{})
		select {
		case <-p.finished:
		case <-time.After(closeTimeout):
			slog.Warn("player did not close in time")
		}
		time.Sleep(deviceReleaseDelay)
	})
}

// send posts a command without ever blocking. If the queue is full of
// stale commands, the oldest is dropped to make room, keeping the
// last-write-wins behavior.
func (p *Player) send(cmd command) {
	if trySend(p.commands, cmd) {
		return
	}
	select {
	case <-p.commands:
	default:
	}
	if !trySend(p.commands, cmd) {
		slog.Debug("player command dropped")
	}
}

func (p *Player) run() {
	var sink fretwave.AudioSink
	if p.context != nil {
		sink = p.context.Output()
	}
	defer func() {
		p.setLevel(0)
		if sink != nil {
			if err := sink.Close(); err != nil {
				slog.Warn("cannot close audio sink", "error", err)
			}
		}
		if p.context != nil {
			if err := p.context.Close(); err != nil {
				slog.Warn("cannot close audio context", "error", err)
			}
		}
		close(p.finished)
	}()
	var osc *fretwave.Oscillator
	var remaining int
	buffer := make([]float32, chunkSize)
	for {
		var cmd command
		gotCmd := false
		if osc == nil {
			select {
			case cmd = <-p.commands:
				gotCmd = true
			case <-p.closer:
				return
			}
		} else {
			select {
			case cmd = <-p.commands:
				gotCmd = true
			case <-p.closer:
				return
			default:
			}
		}
		if gotCmd {
			// commands queued behind this one are newer; drain so only the
			// newest takes effect
			for {
				select {
				case cmd = <-p.commands:
					continue
				default:
				}
				break
			}
			osc, remaining = nil, 0
			p.setLevel(0)
			if cmd.frequency > 0 && sink != nil {
				osc = fretwave.NewOscillator(cmd.frequency)
				remaining = fretwave.DurationSamples(fretwave.ToneDuration, fretwave.SampleRate)
			}
		}
		if osc == nil {
			continue
		}
		chunk := buffer[:min(chunkSize, remaining)]
		osc.Render(chunk)
		if err := sink.WriteAudio(chunk); err != nil {
			// no retry: a failed device stays muted for the process lifetime
			slog.Warn("audio write failed, playback muted", "error", err)
			if err := sink.Close(); err != nil {
				slog.Debug("cannot close failed audio sink", "error", err)
			}
			sink = nil
			osc, remaining = nil, 0
			p.setLevel(0)
			continue
		}
		vek32.Abs_Inplace(chunk)
		p.setLevel(vek32.Max(chunk))
		if remaining -= len(chunk); remaining <= 0 {
			osc = nil
			p.setLevel(0)
		}
	}
}

func (p *Player) setLevel(level float32) {
	p.level.Store(math.Float32bits(level))
}

// trySend sends a value to a channel if it is not full, never blocking.
// It returns whether the value was sent.
func trySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
