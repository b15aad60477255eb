// Package oto wraps the github.com/hajimehoshi/oto audio backend as the
// context and sink used for tone playback.
package oto

import (
	"fmt"

	"github.com/hajimehoshi/oto"
	"github.com/pkanerva/fretwave"
)

type OtoContext oto.Context

type OtoOutput struct {
	player    *oto.Player
	tmpBuffer []byte
}

// The device buffer is kept small so that when a new tone pre-empts one
// still sounding, the already queued tail of the old tone stays short.
const otoBufferSize = 4096

// NewContext opens the default audio device for single-channel 16-bit
// output at the fretwave sample rate.
func NewContext() (*OtoContext, error) {
	context, err := oto.NewContext(fretwave.SampleRate, 1, 2, otoBufferSize)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	return (*OtoContext)(context), nil
}

func (c *OtoContext) Output() fretwave.AudioSink {
	return &OtoOutput{player: (*oto.Context)(c).NewPlayer(), tmpBuffer: make([]byte, 0)}
}

func (c *OtoContext) Close() error {
	if err := (*oto.Context)(c).Close(); err != nil {
		return fmt.Errorf("cannot close oto context: %w", err)
	}
	return nil
}

// WriteAudio implements fretwave.AudioSink, blocking until the device has
// taken the whole buffer.
func (o *OtoOutput) WriteAudio(floatBuffer []float32) (err error) {
	// we reuse the old capacity of tmpBuffer by setting its length to zero.
	// then, we save the tmpBuffer so we can reuse it next time
	o.tmpBuffer = FloatBufferTo16BitLE(floatBuffer, o.tmpBuffer[:0])
	if _, err := o.player.Write(o.tmpBuffer); err != nil {
		return fmt.Errorf("cannot write to player: %w", err)
	}
	return nil
}

// Close disposes of resources
func (o *OtoOutput) Close() error {
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
