package fretwave

// AudioSink consumes single-channel float32 samples at SampleRate. A
// WriteAudio call may block until the sink has room for the buffer; that
// backpressure is what paces real-time playback.
type AudioSink interface {
	WriteAudio(buffer []float32) error
	Close() error
}

// AudioContext is a handle to an audio backend from which output sinks
// are obtained.
type AudioContext interface {
	Output() AudioSink
	Close() error
}
