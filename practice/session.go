// Package practice wires the fretboard model to the outputs: a Session
// owns the selected key, scale and fret range, keeps the fretboard table
// current, and sounds the picked note through the tone player and an
// optional MIDI echo.
package practice

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkanerva/fretwave"
)

type (
	// TonePlayer is the audio side of a session, satisfied by
	// player.Player.
	TonePlayer interface {
		Play(frequencyHz float64)
		Stop()
		Level() float32
		Close()
	}

	// NoteEcho mirrors picked notes to an external destination, satisfied
	// by midi.Output. Implementations are best effort; PlayNote never
	// reports failure.
	NoteEcho interface {
		PlayNote(note fretwave.Note, velocity byte, duration time.Duration)
		Close() error
	}

	// Session is the control plane of a practice run. Except for Refresh,
	// which guards itself, the methods are meant to be called from a
	// single goroutine: the host serializes selection changes and fret
	// picks anyway, as they all originate from its event loop.
	Session struct {
		tuning fretwave.Tuning
		key    fretwave.PitchClass
		scale  fretwave.Scale
		frets  int
		table  [][]fretwave.FretCell

		player     TonePlayer
		echo       NoteEcho
		midiOn     bool
		refreshing atomic.Bool
		closeOnce  sync.Once
	}
)

const echoVelocity byte = 100

// DefaultFrets is the highest fret shown when nothing else is configured.
const DefaultFrets = 12

// NewSession returns a session with the standard tuning, C major and
// DefaultFrets, with its fretboard table already computed. echo may be
// nil when no MIDI destination exists.
func NewSession(player TonePlayer, echo NoteEcho) *Session {
	s := &Session{
		tuning: fretwave.StandardTuning(),
		key:    fretwave.C,
		scale:  fretwave.Major,
		frets:  DefaultFrets,
		player: player,
		echo:   echo,
		midiOn: echo != nil,
	}
	s.Refresh()
	return s
}

// Refresh recomputes the whole fretboard table from the current
// selection. Recomputation is single flight: a refresh triggered while
// another is still in progress is dropped rather than queued, since the
// one in flight already computes from the same selection. It reports
// whether the refresh ran.
func (s *Session) Refresh() bool {
	if !s.refreshing.CompareAndSwap(false, true) {
		slog.Debug("fretboard refresh already in flight, dropping")
		return false
	}
	defer s.refreshing.Store(false)
	s.table = s.tuning.Table(s.key, s.scale, s.frets+1)
	return true
}

// Table returns the cached fretboard grid: one row per string, with
// cells for frets 0 through Frets. The caller must not modify it.
func (s *Session) Table() [][]fretwave.FretCell { return s.table }

func (s *Session) Tuning() fretwave.Tuning  { return s.tuning }
func (s *Session) Key() fretwave.PitchClass { return s.key }
func (s *Session) Scale() fretwave.Scale    { return s.scale }
func (s *Session) Frets() int               { return s.frets }
func (s *Session) MIDIEnabled() bool        { return s.midiOn }

// Level reports the tone player's current output peak for a level meter.
func (s *Session) Level() float32 { return s.player.Level() }

// SetKey selects the root of the scale, recomputing the table. Setting
// the key it already has is a no-op; it reports whether anything changed.
func (s *Session) SetKey(key fretwave.PitchClass) bool {
	if key == s.key {
		return false
	}
	s.key = key
	s.Refresh()
	return true
}

// CycleKey moves the key delta semitones up or down the circle of
// pitch classes.
func (s *Session) CycleKey(delta int) {
	s.SetKey(fretwave.PitchClassFromInt(int(s.key) + delta))
}

// SetScale selects the scale type, recomputing the table. It reports
// whether anything changed.
func (s *Session) SetScale(scale fretwave.Scale) bool {
	if scale == s.scale {
		return false
	}
	s.scale = scale
	s.Refresh()
	return true
}

// CycleScale moves the scale selection delta steps through the supported
// scales, wrapping around.
func (s *Session) CycleScale(delta int) {
	for i, scale := range fretwave.Scales {
		if scale == s.scale {
			next := fretwave.Scales[mod(i+delta, len(fretwave.Scales))]
			s.SetScale(next)
			return
		}
	}
	s.SetScale(fretwave.Major)
}

// SetFrets sets the highest fret shown, recomputing the table. The count
// must be positive; it reports whether anything changed.
func (s *Session) SetFrets(frets int) bool {
	if frets <= 0 {
		panic("practice: fret count must be positive")
	}
	if frets == s.frets {
		return false
	}
	s.frets = frets
	s.Refresh()
	return true
}

// SetTuning replaces the open string notes, recomputing the table. The
// tuning is copied, so the caller may keep mutating its own slice.
func (s *Session) SetTuning(tuning fretwave.Tuning) {
	if len(tuning) == 0 {
		panic("practice: empty tuning")
	}
	s.tuning = tuning.Copy()
	s.Refresh()
}

// SetMIDIEnabled toggles the MIDI echo of picked notes. Enabling it does
// nothing when the session has no echo destination.
func (s *Session) SetMIDIEnabled(on bool) {
	s.midiOn = on && s.echo != nil
}

// PickFret sounds the note at the given string and fret and returns it
// for display. A new pick always silences the previous tone first. Audio
// and MIDI are best effort: a muted player or a missing MIDI port just
// means the pick stays silent.
func (s *Session) PickFret(stringIndex, fret int) fretwave.Note {
	note := s.tuning.NoteAt(stringIndex, fret)
	s.player.Play(note.Frequency())
	if s.midiOn && s.echo != nil {
		s.echo.PlayNote(note, echoVelocity, fretwave.ToneDuration)
	}
	return note
}

// Stop silences the current tone, if any.
func (s *Session) Stop() {
	s.player.Stop()
}

// Close releases the audio and MIDI outputs. Only the first call does
// the work, and the audio teardown lingers for the device release delay,
// so callers should expect Close to take tens of milliseconds.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.player.Close()
		if s.echo != nil {
			if err := s.echo.Close(); err != nil {
				slog.Warn("cannot close midi output", "error", err)
			}
		}
	})
}

func mod(a, b int) int {
	if a < 0 {
		return b - 1 - mod(-a-1, b)
	}
	return a % b
}
