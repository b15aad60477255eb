// Package config persists the practice screen state between runs, in a
// single file under the user config directory. Saving always writes
// JSON, but hand-maintained files can be YAML too; both parse.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkanerva/fretwave"
)

type (
	// Config is the persisted state of the practice screen. Key, Scale
	// and Tuning are stored as names rather than numbers so the file
	// stays hand-editable; the typed accessors parse them with forgiving
	// fallbacks, because a stale or mistyped field should never block
	// startup.
	Config struct {
		Key    string      `yaml:"key" json:"key"`
		Scale  string      `yaml:"scale" json:"scale"`
		Frets  int         `yaml:"frets" json:"frets"`
		Tuning []string    `yaml:"tuning,omitempty" json:"tuning,omitempty"`
		Audio  AudioConfig `yaml:"audio" json:"audio"`
		MIDI   MIDIConfig  `yaml:"midi" json:"midi"`

		// LoadError carries the reason the saved file was ignored, for
		// the caller to report; the Config itself is usable regardless.
		LoadError error `yaml:"-" json:"-"`
	}

	AudioConfig struct {
		Disabled bool `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	}

	MIDIConfig struct {
		Enabled    bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
		PortPrefix string `yaml:"portprefix,omitempty" json:"portprefix,omitempty"`
	}
)

//go:embed defaults.yml
var defaultConfigYaml []byte

// Default returns the built-in configuration.
func Default() Config {
	var config Config
	decoder := yaml.NewDecoder(bytes.NewReader(defaultConfigYaml))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		panic(fmt.Errorf("failed to unmarshal the default config: %w", err))
	}
	return config
}

// Path returns the location of the config file, typically
// ~/.config/fretwave/config.json.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the user config dir: %w", err)
	}
	return filepath.Join(configDir, "fretwave", "config.json"), nil
}

// Load reads the saved configuration, falling back to the defaults when
// there is no file yet. A file that exists but does not parse also falls
// back, with the reason in LoadError.
func Load() Config {
	path, err := Path()
	if err != nil {
		config := Default()
		config.LoadError = err
		return config
	}
	return LoadFrom(path)
}

// LoadFrom is Load from an explicit file path. Fields missing from the
// file keep their default values.
func LoadFrom(path string) Config {
	config := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			config.LoadError = err
		}
		return config
	}
	if errJSON := json.Unmarshal(b, &config); errJSON != nil {
		if errYaml := yaml.Unmarshal(b, &config); errYaml != nil {
			config = Default()
			config.LoadError = fmt.Errorf("cannot unmarshal config file %v: %v / %v", path, errYaml, errJSON)
		}
	}
	return config
}

// Save writes the configuration as indented JSON to the default Path,
// creating the directory on first save.
func (c Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo is Save to an explicit file path.
func (c Config) SaveTo(path string) error {
	contents, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// KeyClass parses the key name, falling back to C.
func (c Config) KeyClass() fretwave.PitchClass {
	key, err := fretwave.ParsePitchClass(c.Key)
	if err != nil {
		return fretwave.C
	}
	return key
}

// ScaleKind parses the scale field, accepting both names ("Natural
// Minor") and the numeric tags of older files. Anything unknown falls
// back to Major.
func (c Config) ScaleKind() fretwave.Scale {
	if s, err := fretwave.ParseScale(c.Scale); err == nil {
		return s
	}
	if tag, err := strconv.Atoi(strings.TrimSpace(c.Scale)); err == nil {
		return fretwave.ScaleFromInt(tag)
	}
	return fretwave.Major
}

// TuningNotes parses the tuning, low string first. An empty or invalid
// tuning falls back to standard tuning.
func (c Config) TuningNotes() fretwave.Tuning {
	if len(c.Tuning) == 0 {
		return fretwave.StandardTuning()
	}
	tuning := make(fretwave.Tuning, len(c.Tuning))
	for i, name := range c.Tuning {
		note, err := fretwave.ParseNote(name)
		if err != nil {
			return fretwave.StandardTuning()
		}
		tuning[i] = note
	}
	return tuning
}

// FretCount clamps the fret field to something usable.
func (c Config) FretCount() int {
	if c.Frets <= 0 {
		return Default().Frets
	}
	return c.Frets
}
