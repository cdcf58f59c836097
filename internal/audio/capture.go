// Package audio captures microphone input with malgo and buffers it for the
// recording controller.
package audio

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"unsafe"

	"github.com/gen2brain/malgo"
)

// CaptureConfig selects the input stream parameters.
type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
	// Device is a case-insensitive substring of a capture device name.
	// Empty selects the system default input.
	Device string
}

// Enqueuer receives the samples of every captured buffer. Push must not block.
type Enqueuer interface {
	Push(samples []float32)
}

// DeviceInfo describes a capture device.
type DeviceInfo struct {
	Name    string
	Default bool
}

// DeviceError reports a failure opening, starting or stopping the input stream.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audio: %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// stream is the part of *malgo.Device that Capture drives.
type stream interface {
	Start() error
	Stop() error
	Uninit()
}

type openFunc func(cfg malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) (stream, error)

// Capture owns the microphone input stream. Every buffer delivered by the
// driver is copied, downmixed to mono and pushed into the queue.
type Capture struct {
	ctx      *malgo.AllocatedContext
	open     openFunc
	queue    Enqueuer
	cfg      CaptureConfig
	deviceID unsafe.Pointer

	mu     sync.Mutex
	device stream
	active bool
}

// NewCapture initializes the audio context and resolves cfg.Device.
// Call Close() when done.
func NewCapture(q Enqueuer, cfg CaptureConfig) (*Capture, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, &DeviceError{Op: "initialize audio context", Err: err}
	}

	c := newCapture(q, cfg, func(dc malgo.DeviceConfig, cb malgo.DeviceCallbacks) (stream, error) {
		dev, err := malgo.InitDevice(ctx.Context, dc, cb)
		if err != nil {
			return nil, err
		}
		return dev, nil
	})
	c.ctx = ctx

	if cfg.Device != "" {
		infos, err := ctx.Devices(malgo.Capture)
		if err != nil {
			c.Close()
			return nil, &DeviceError{Op: "enumerate capture devices", Err: err}
		}
		names := make([]string, len(infos))
		for i := range infos {
			names[i] = infos[i].Name()
		}
		idx, err := matchDevice(names, cfg.Device)
		if err != nil {
			c.Close()
			return nil, &DeviceError{Op: "select capture device", Err: err}
		}
		c.deviceID = infos[idx].ID.Pointer()
		slog.Info("[audio] using capture device", "name", names[idx])
	}

	return c, nil
}

func newCapture(q Enqueuer, cfg CaptureConfig, open openFunc) *Capture {
	if cfg.Channels == 0 {
		cfg.Channels = 1
	}
	return &Capture{
		open:  open,
		queue: q,
		cfg:   cfg,
	}
}

// Start opens the input stream and begins delivering buffers to the queue.
// Starting an active capture is a no-op.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		return nil
	}

	deviceCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceCfg.Capture.Format = malgo.FormatF32
	deviceCfg.Capture.Channels = c.cfg.Channels
	deviceCfg.Capture.DeviceID = c.deviceID
	deviceCfg.SampleRate = c.cfg.SampleRate

	dev, err := c.open(deviceCfg, malgo.DeviceCallbacks{Data: c.onData})
	if err != nil {
		return &DeviceError{Op: "open capture device", Err: err}
	}

	if err := dev.Start(); err != nil {
		dev.Uninit()
		return &DeviceError{Op: "start capture device", Err: err}
	}

	c.device = dev
	c.active = true
	return nil
}

// Stop halts and releases the input stream. No buffer is delivered after
// Stop returns. Stopping an inactive capture is a no-op.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return nil
	}

	dev := c.device
	c.device = nil
	c.active = false

	err := dev.Stop()
	dev.Uninit()
	if err != nil {
		return &DeviceError{Op: "stop capture device", Err: err}
	}
	return nil
}

// Active reports whether the input stream is open.
func (c *Capture) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Devices lists the capture devices known to the audio backend.
func (c *Capture) Devices() ([]DeviceInfo, error) {
	if c.ctx == nil {
		return nil, nil
	}
	infos, err := c.ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, &DeviceError{Op: "enumerate capture devices", Err: err}
	}
	out := make([]DeviceInfo, len(infos))
	for i := range infos {
		out[i] = DeviceInfo{Name: infos[i].Name(), Default: infos[i].IsDefault != 0}
	}
	return out, nil
}

// Close stops any active stream and releases the audio context.
func (c *Capture) Close() error {
	if err := c.Stop(); err != nil {
		slog.Warn("[audio] stop on close failed", "error", err)
	}

	if c.ctx != nil {
		if err := c.ctx.Uninit(); err != nil {
			return fmt.Errorf("audio: uninitialize context: %w", err)
		}
		c.ctx.Free()
		c.ctx = nil
	}
	return nil
}

// onData runs on the driver's real-time thread. It must not block and must
// not panic back into the driver.
func (c *Capture) onData(_, pSample []byte, frameCount uint32) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[audio] dropped captured buffer", "panic", r)
		}
	}()

	samples := bytesToFloat32(pSample, frameCount*c.cfg.Channels)
	if c.cfg.Channels > 1 {
		samples = downmix(samples, c.cfg.Channels)
	}
	c.queue.Push(samples)
}

// bytesToFloat32 converts raw bytes (little-endian float32) to a float32 slice.
func bytesToFloat32(data []byte, sampleCount uint32) []float32 {
	samples := make([]float32, 0, sampleCount)
	for i := uint32(0); i < sampleCount; i++ {
		offset := i * 4
		if offset+4 > uint32(len(data)) {
			break
		}
		bits := binary.LittleEndian.Uint32(data[offset : offset+4])
		samples = append(samples, math.Float32frombits(bits))
	}
	return samples
}

// downmix averages interleaved frames into a mono signal.
func downmix(samples []float32, channels uint32) []float32 {
	ch := int(channels)
	frames := len(samples) / ch
	mono := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for j := 0; j < ch; j++ {
			sum += samples[i*ch+j]
		}
		mono[i] = sum / float32(ch)
	}
	return mono
}

// matchDevice returns the index of the first name containing selector,
// ignoring case.
func matchDevice(names []string, selector string) (int, error) {
	want := strings.ToLower(strings.TrimSpace(selector))
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no capture device matches %q", selector)
}
