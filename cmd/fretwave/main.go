package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pkanerva/fretwave"
	"github.com/pkanerva/fretwave/config"
	"github.com/pkanerva/fretwave/midi"
	"github.com/pkanerva/fretwave/oto"
	"github.com/pkanerva/fretwave/player"
	"github.com/pkanerva/fretwave/practice"
	"github.com/pkanerva/fretwave/tui"
	"github.com/pkanerva/fretwave/version"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging (adds source location)")
	midiPort := flag.String("midi-port", "", "connect the MIDI echo to the first output whose device name matches this prefix")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	initLogger(*debug)

	disableAudio := os.Getenv("DISABLE_AUDIO") != ""
	disableMIDI := os.Getenv("DISABLE_MIDI") != ""
	disableLayout := os.Getenv("DISABLE_LAYOUT") != ""

	cfg := config.Default()
	if !disableLayout {
		cfg = config.Load()
		if cfg.LoadError != nil {
			slog.Warn("config file ignored", "err", cfg.LoadError)
		}
	}

	var audioContext fretwave.AudioContext
	if disableAudio || cfg.Audio.Disabled {
		slog.Info("audio disabled")
	} else if ac, err := oto.NewContext(); err != nil {
		slog.Warn("audio unavailable, tones muted", "err", err)
	} else {
		audioContext = ac
	}
	tonePlayer := player.New(audioContext)

	var echo practice.NoteEcho
	portPrefix := cfg.MIDI.PortPrefix
	if isFlagPassed("midi-port") {
		portPrefix = *midiPort
	}
	if (cfg.MIDI.Enabled || isFlagPassed("midi-port")) && !disableMIDI {
		out, err := midi.Open(portPrefix)
		if err != nil {
			slog.Warn("MIDI echo unavailable", "err", err)
		} else {
			slog.Info("MIDI echo connected", "port", out.Port())
			echo = out
		}
	}

	session := practice.NewSession(tonePlayer, echo)
	session.SetTuning(cfg.TuningNotes())
	session.SetKey(cfg.KeyClass())
	session.SetScale(cfg.ScaleKind())
	session.SetFrets(cfg.FretCount())

	slog.Info("fretwave starting", "version", version.VersionOrHash,
		"key", session.Key(), "scale", session.Scale(), "frets", session.Frets(),
		"audio", audioContext != nil, "midi", session.MIDIEnabled())

	model := tui.NewModel(session, tui.DefaultTheme())
	if !disableLayout {
		model.Persist = func() {
			cfg.Key = session.Key().String()
			cfg.Scale = session.Scale().String()
			cfg.Frets = session.Frets()
			names := make([]string, len(session.Tuning()))
			for i, note := range session.Tuning() {
				names[i] = note.String()
			}
			cfg.Tuning = names
			if err := cfg.Save(); err != nil {
				slog.Warn("cannot save config", "err", err)
			}
		}
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	session.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "running the UI failed: %v\n", err)
		os.Exit(1)
	}
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	slog.SetDefault(slog.New(h))
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
