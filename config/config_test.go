package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkanerva/fretwave"
	"github.com/pkanerva/fretwave/config"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	if c.Key != "C" || c.Scale != "Major" || c.Frets != 12 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if got := c.KeyClass(); got != fretwave.C {
		t.Errorf("default key class: got %v, expected C", got)
	}
	if got := c.ScaleKind(); got != fretwave.Major {
		t.Errorf("default scale: got %v, expected Major", got)
	}
	if got := c.FretCount(); got != 12 {
		t.Errorf("default fret count: got %v, expected 12", got)
	}
	if got := c.TuningNotes(); !reflect.DeepEqual(got, fretwave.StandardTuning()) {
		t.Errorf("default tuning: got %v, expected standard", got)
	}
	if c.Audio.Disabled || c.MIDI.Enabled {
		t.Errorf("unexpected default feature flags: %+v", c)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	c := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if c.LoadError != nil {
		t.Fatalf("missing file should not be an error, got %v", c.LoadError)
	}
	if !reflect.DeepEqual(c, config.Default()) {
		t.Fatalf("missing file should load defaults, got %+v", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fretwave", "config.json")
	saved := config.Default()
	saved.Key = "F#"
	saved.Scale = "Minor Pentatonic"
	saved.Frets = 24
	saved.Tuning = []string{"D2", "A2", "D3", "G3", "B3", "E4"}
	saved.MIDI.Enabled = true
	saved.MIDI.PortPrefix = "Synth"
	if err := saved.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	loaded := config.LoadFrom(path)
	if loaded.LoadError != nil {
		t.Fatalf("LoadFrom failed: %v", loaded.LoadError)
	}
	if !reflect.DeepEqual(loaded, saved) {
		t.Fatalf("round trip: got %+v, expected %+v", loaded, saved)
	}
	if got := loaded.KeyClass(); got != fretwave.FSharp {
		t.Errorf("loaded key class: got %v, expected F#", got)
	}
	if got := loaded.ScaleKind(); got != fretwave.MinorPentatonic {
		t.Errorf("loaded scale: got %v, expected Minor Pentatonic", got)
	}
	expectedTuning := fretwave.Tuning{
		{Class: fretwave.D, Octave: 2},
		{Class: fretwave.A, Octave: 2},
		{Class: fretwave.D, Octave: 3},
		{Class: fretwave.G, Octave: 3},
		{Class: fretwave.B, Octave: 3},
		{Class: fretwave.E, Octave: 4},
	}
	if got := loaded.TuningNotes(); !reflect.DeepEqual(got, expectedTuning) {
		t.Errorf("loaded tuning: got %v, expected %v", got, expectedTuning)
	}
}

func TestLoadFromYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	contents := "key: A\nscale: Natural Minor\nfrets: 24\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	c := config.LoadFrom(path)
	if c.LoadError != nil {
		t.Fatalf("LoadFrom failed: %v", c.LoadError)
	}
	if c.KeyClass() != fretwave.A || c.ScaleKind() != fretwave.NaturalMinor || c.Frets != 24 {
		t.Fatalf("unexpected yaml config: %+v", c)
	}
}

func TestLoadFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{{{ not a config"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	c := config.LoadFrom(path)
	if c.LoadError == nil {
		t.Fatalf("corrupt file should set LoadError")
	}
	c.LoadError = nil
	if !reflect.DeepEqual(c, config.Default()) {
		t.Fatalf("corrupt file should fall back to defaults, got %+v", c)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"frets": 24}`), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	c := config.LoadFrom(path)
	if c.LoadError != nil {
		t.Fatalf("LoadFrom failed: %v", c.LoadError)
	}
	if c.Frets != 24 {
		t.Errorf("frets: got %v, expected 24", c.Frets)
	}
	if c.Key != "C" || c.Scale != "Major" {
		t.Errorf("missing fields should keep defaults, got %+v", c)
	}
}

func TestScaleKindAcceptsTags(t *testing.T) {
	tests := []struct {
		field    string
		expected fretwave.Scale
	}{
		{"3", fretwave.MajorPentatonic},
		{"6", fretwave.MinorBlues},
		{"0", fretwave.Major},
		{"99", fretwave.Major},
		{"nonsense", fretwave.Major},
		{"", fretwave.Major},
	}
	for _, test := range tests {
		c := config.Config{Scale: test.field}
		if got := c.ScaleKind(); got != test.expected {
			t.Errorf("ScaleKind of %q: got %v, expected %v", test.field, got, test.expected)
		}
	}
}

func TestTuningNotesFallback(t *testing.T) {
	c := config.Config{Tuning: []string{"E2", "bogus", "D3"}}
	if got := c.TuningNotes(); !reflect.DeepEqual(got, fretwave.StandardTuning()) {
		t.Fatalf("invalid tuning should fall back to standard, got %v", got)
	}
}

func TestFretCountClamps(t *testing.T) {
	if got := (config.Config{Frets: -3}).FretCount(); got != 12 {
		t.Errorf("negative frets: got %v, expected 12", got)
	}
	if got := (config.Config{Frets: 24}).FretCount(); got != 24 {
		t.Errorf("frets 24: got %v, expected 24", got)
	}
}
