package audio

import (
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"
	"github.com/guidoenr/goscope/internal/scope"
)

// Capture wraps a PortAudio input stream and feeds one channel of the
// interleaved int16 frames into a scope.Ring. The stream callback runs on
// PortAudio's delivery thread, so the per-frame work is kept to a
// deinterleave and a short-lived push into the ring.
type Capture struct {
	stream     *portaudio.Stream
	sampleRate float64
	channels   int
	device     *portaudio.DeviceInfo

	ring    *scope.Ring
	scratch []int16
}

// Config controls how a Capture instance is created.
type Config struct {
	DeviceName string
	Channels   int
	SampleRate float64
	Ring       *scope.Ring
}

const defaultFramesPerBuffer = 2048

// NewCapture opens a PortAudio int16 input stream using the provided
// configuration and starts delivering samples into cfg.Ring.
func NewCapture(cfg Config) (*Capture, error) {
	if cfg.Ring == nil {
		return nil, fmt.Errorf("capture requires a ring buffer")
	}
	if cfg.Channels <= 0 {
		// Hardware typically requires stereo.
		cfg.Channels = 2
	}

	device, err := findDevice(cfg.DeviceName)
	if err != nil {
		return nil, err
	}
	if cfg.Channels > device.MaxInputChannels {
		cfg.Channels = device.MaxInputChannels
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = device.DefaultSampleRate
	}
	if sampleRate <= 0 {
		sampleRate = scope.DefaultSampleRate
	}

	capture := &Capture{
		sampleRate: sampleRate,
		channels:   cfg.Channels,
		device:     device,
		ring:       cfg.Ring,
		scratch:    make([]int16, defaultFramesPerBuffer),
	}

	inParams := portaudio.StreamDeviceParameters{
		Device:   device,
		Channels: cfg.Channels,
		Latency:  device.DefaultLowInputLatency,
	}

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input:           inParams,
		Output:          portaudio.StreamDeviceParameters{},
		SampleRate:      sampleRate,
		FramesPerBuffer: defaultFramesPerBuffer,
	}, capture.process)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}

	capture.stream = stream

	if err := capture.stream.Start(); err != nil {
		_ = capture.stream.Close()
		return nil, fmt.Errorf("start stream: %w", err)
	}

	return capture, nil
}

// Close stops and closes the underlying PortAudio stream.
func (c *Capture) Close() error {
	if c.stream == nil {
		return nil
	}
	if err := c.stream.Stop(); err != nil && !errorsIsInvalidStreamState(err) {
		return err
	}
	return c.stream.Close()
}

// SampleRate returns the stream sample rate.
func (c *Capture) SampleRate() float64 {
	return c.sampleRate
}

// Device returns the PortAudio device associated with the capture stream.
func (c *Capture) Device() *portaudio.DeviceInfo {
	return c.device
}

// process runs on the PortAudio callback thread. It extracts channel 0 of
// the interleaved frame and appends it to the ring; malformed trailing
// samples that do not complete a frame are dropped.
func (c *Capture) process(in []int16) {
	if len(in) == 0 {
		return
	}

	if c.channels <= 1 {
		c.ring.Push(in)
		return
	}

	frames := len(in) / c.channels
	if frames == 0 {
		return
	}

	if cap(c.scratch) < frames {
		c.scratch = make([]int16, frames)
	}
	mono := c.scratch[:frames]
	for i := 0; i < frames; i++ {
		mono[i] = in[i*c.channels]
	}
	c.ring.Push(mono)
}

// errorsIsInvalidStreamState checks if the provided error stems from stopping an already stopped stream.
func errorsIsInvalidStreamState(err error) bool {
	if err == nil {
		return false
	}
	const invalidStateMsg = "PaErrorCode -9986"
	return strings.Contains(err.Error(), invalidStateMsg)
}
