package audio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gordonklaus/portaudio"
)

// Device describes a PortAudio device in a Go-friendly way.
type Device struct {
	Name            string
	MaxInput        int
	MaxOutput       int
	DefaultSampleHz float64
	HostAPI         string
	IsDefaultInput  bool
}

// ListDevices returns all available devices across host APIs sorted by host and name.
func ListDevices() ([]Device, error) {
	hosts, err := portaudio.HostApis()
	if err != nil {
		return nil, fmt.Errorf("host apis: %w", err)
	}

	var defaultInputIndex = -1
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultInputIndex = def.Index
	}

	devices := make([]Device, 0, len(hosts)*4)
	for _, host := range hosts {
		for _, d := range host.Devices {
			devices = append(devices, Device{
				Name:            d.Name,
				MaxInput:        d.MaxInputChannels,
				MaxOutput:       d.MaxOutputChannels,
				DefaultSampleHz: d.DefaultSampleRate,
				HostAPI:         host.Name,
				IsDefaultInput:  d.Index == defaultInputIndex,
			})
		}
	}

	sort.Slice(devices, func(i, j int) bool {
		if devices[i].HostAPI == devices[j].HostAPI {
			return devices[i].Name < devices[j].Name
		}
		return devices[i].HostAPI < devices[j].HostAPI
	})

	return devices, nil
}

// AutoDetectDevice returns the best available input device PortAudio can find.
func AutoDetectDevice() (*portaudio.DeviceInfo, error) {
	return findDevice("")
}

func findDevice(name string) (*portaudio.DeviceInfo, error) {
	if name != "" {
		return findDeviceByName(name)
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list audio devices: %w", err)
	}

	// Direct hardware access first; microphones on Linux usually show up as
	// hw:0,0 and skip the resampling layers.
	for _, d := range devices {
		if d != nil && d.MaxInputChannels > 0 && strings.Contains(strings.ToLower(d.Name), "hw:0,0") {
			return d, nil
		}
	}

	if dev, err := portaudio.DefaultInputDevice(); err == nil && dev != nil && dev.MaxInputChannels > 0 {
		return dev, nil
	}

	if host, err := portaudio.DefaultHostApi(); err == nil {
		if host != nil && host.DefaultInputDevice != nil && host.DefaultInputDevice.MaxInputChannels > 0 {
			return host.DefaultInputDevice, nil
		}
	}

	if candidate := pickBestDevice(devices); candidate != nil {
		return candidate, nil
	}

	return nil, fmt.Errorf("no suitable audio input device found")
}

func findDeviceByName(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list audio devices: %w", err)
	}

	name = strings.ToLower(name)
	for _, device := range devices {
		if device.MaxInputChannels == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(device.Name), name) {
			return device, nil
		}
	}

	return nil, fmt.Errorf("audio device %q not found", name)
}

func pickBestDevice(devices []*portaudio.DeviceInfo) *portaudio.DeviceInfo {
	type scored struct {
		dev   *portaudio.DeviceInfo
		score int
	}

	var defaultInputIndex = -1
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultInputIndex = def.Index
	}

	var results []scored
	for _, d := range devices {
		if d == nil || d.MaxInputChannels <= 0 {
			continue
		}

		score := d.MaxInputChannels
		if d.Index == defaultInputIndex {
			score += 50
		}

		lower := strings.ToLower(d.Name)
		if strings.Contains(lower, "hw:") {
			score += 30
		}
		if strings.Contains(lower, "default") {
			score += 10
		}

		results = append(results, scored{dev: d, score: score})
	}

	if len(results) == 0 {
		return nil
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return strings.ToLower(results[i].dev.Name) < strings.ToLower(results[j].dev.Name)
		}
		return results[i].score > results[j].score
	})

	return results[0].dev
}
