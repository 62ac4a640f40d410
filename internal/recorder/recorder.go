// Package recorder captures microphone audio through PortAudio.
package recorder

import (
	"errors"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// DefaultSampleRate matches what the speech models expect.
	DefaultSampleRate = 16000
	framesPerBuffer   = 1024
	pollInterval      = 10 * time.Millisecond
)

// ErrTooLong is returned by Stop when the take hit the length limit.
var ErrTooLong = errors.New("recording reached the maximum length")

// Recorder records mono float32 audio from the default input device.
type Recorder struct {
	mu         sync.Mutex
	sampleRate int
	maxSamples int
	stream     *portaudio.Stream
	buffer     []float32
	samples    []float32
	running    bool
	truncated  bool
	done       chan struct{}
}

// New initializes PortAudio. maxSeconds <= 0 means no limit.
func New(sampleRate int, maxSeconds float64) (*Recorder, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	r := &Recorder{
		sampleRate: sampleRate,
		buffer:     make([]float32, framesPerBuffer),
	}
	if maxSeconds > 0 {
		r.maxSamples = int(maxSeconds * float64(sampleRate))
	}
	return r, nil
}

// SampleRate returns the capture rate in Hz.
func (r *Recorder) SampleRate() int {
	return r.sampleRate
}

// Start opens the input stream and begins buffering samples.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(r.sampleRate), framesPerBuffer, r.buffer)
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return err
	}
	r.stream = stream
	r.samples = make([]float32, 0, r.sampleRate*10)
	r.truncated = false
	r.done = make(chan struct{})
	r.running = true

	go r.readLoop(stream, r.done)
	return nil
}

func (r *Recorder) readLoop(stream *portaudio.Stream, done chan struct{}) {
	defer close(done)
	for {
		if !r.isRunning() {
			return
		}
		available, err := stream.AvailableToRead()
		if err != nil || available == 0 {
			time.Sleep(pollInterval)
			continue
		}
		if err := stream.Read(); err != nil {
			time.Sleep(pollInterval)
			continue
		}

		r.mu.Lock()
		if r.running {
			r.samples = append(r.samples, r.buffer...)
			if r.maxSamples > 0 && len(r.samples) >= r.maxSamples {
				r.samples = r.samples[:r.maxSamples]
				r.truncated = true
				r.running = false
			}
		}
		r.mu.Unlock()
	}
}

func (r *Recorder) isRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// IsRecording reports whether a take is in progress.
func (r *Recorder) IsRecording() bool {
	return r.isRunning()
}

// Stop ends the take and returns its samples. When the take was cut at the
// length limit the samples are returned together with ErrTooLong.
func (r *Recorder) Stop() ([]float32, error) {
	r.mu.Lock()
	stream := r.stream
	done := r.done
	r.running = false
	r.stream = nil
	samples := r.samples
	truncated := r.truncated
	r.samples = nil
	r.mu.Unlock()

	if stream == nil {
		return nil, nil
	}
	if done != nil {
		select {
		case <-done:
		case <-time.After(10 * pollInterval):
		}
	}
	if err := stream.Stop(); err != nil {
		_ = stream.Close()
		return samples, err
	}
	if err := stream.Close(); err != nil {
		return samples, err
	}
	if truncated {
		return samples, ErrTooLong
	}
	return samples, nil
}

// Close stops any take in progress and releases PortAudio.
func (r *Recorder) Close() error {
	if _, err := r.Stop(); err != nil && !errors.Is(err, ErrTooLong) {
		_ = portaudio.Terminate()
		return err
	}
	return portaudio.Terminate()
}
