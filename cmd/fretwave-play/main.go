package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkanerva/fretwave"
	"github.com/pkanerva/fretwave/oto"
	"github.com/pkanerva/fretwave/player"
	"github.com/pkanerva/fretwave/version"
)

func main() {
	help := flag.Bool("h", false, "Show help.")
	directory := flag.String("o", "", "Directory where to output files. The directory and its parents are created if needed. By default, the working directory.")
	play := flag.Bool("p", false, "Play the tone (default behaviour when no other output is defined).")
	rawOut := flag.Bool("r", false, "Output the tone as a .raw file. By default, saves a mono float32 buffer.")
	wavOut := flag.Bool("w", false, "Output the tone as a .wav file. By default, saves a mono float32 buffer.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	stringIndex := flag.Int("string", -1, "Pick the note by string index, 0 being the lowest string of a standard tuning; use together with -fret.")
	fret := flag.Int("fret", 0, "Pick the note by fret number; use together with -string.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if *help {
		flag.Usage()
		os.Exit(0)
	}

	var note fretwave.Note
	switch {
	case *stringIndex >= 0:
		tuning := fretwave.StandardTuning()
		if *stringIndex >= len(tuning) || *fret < 0 {
			fmt.Fprintf(os.Stderr, "there is no string %d fret %d on a %d-string fretboard\n", *stringIndex, *fret, len(tuning))
			os.Exit(1)
		}
		note = tuning.NoteAt(*stringIndex, *fret)
	case flag.NArg() == 1:
		var err error
		note, err = fretwave.ParseNote(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(0)
	}

	if !*rawOut && !*wavOut {
		*play = true // if the user gives nothing to output, then the default behaviour is just to play the tone
	}

	output := func(extension string, contents []byte) error {
		name := strings.ReplaceAll(note.String(), "#", "s") + extension
		dir := *directory
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
			}
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %v", dir, err)
		}
		f := filepath.Join(dir, name)
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", f, err)
		}
		return nil
	}

	oscillator := fretwave.NewOscillator(note.Frequency())
	buffer := make([]float32, fretwave.DurationSamples(fretwave.ToneDuration, fretwave.SampleRate))
	oscillator.Render(buffer)

	retval := 0
	if *rawOut {
		raw, err := fretwave.Raw(buffer, *pcm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not generate .raw file: %v\n", err)
			retval = 1
		} else if err := output(".raw", raw); err != nil {
			fmt.Fprintf(os.Stderr, "error outputting .raw file: %v\n", err)
			retval = 1
		}
	}
	if *wavOut {
		wav, err := fretwave.Wav(buffer, *pcm)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not generate .wav file: %v\n", err)
			retval = 1
		} else if err := output(".wav", wav); err != nil {
			fmt.Fprintf(os.Stderr, "error outputting .wav file: %v\n", err)
			retval = 1
		}
	}
	if *play {
		audioContext, err := oto.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
		tonePlayer := player.New(audioContext)
		tonePlayer.Play(note.Frequency())
		time.Sleep(fretwave.ToneDuration)
		for start := time.Now(); tonePlayer.Level() > 0 && time.Since(start) < time.Second; {
			time.Sleep(10 * time.Millisecond)
		}
		// the device buffer still holds the tail of the tone
		time.Sleep(100 * time.Millisecond)
		tonePlayer.Close()
	}
	os.Exit(retval)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Command line utility for playing a single practice tone.\nUsage: %s [flags] [note]\nNotes are named in scientific pitch notation, e.g. A4, E2 or Db3.\n", os.Args[0])
	flag.PrintDefaults()
}
