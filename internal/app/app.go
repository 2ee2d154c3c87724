// Package app wires capture, analysis, rendering and input into the
// interactive instrument.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/guidoenr/goscope/internal/audio"
	"github.com/guidoenr/goscope/internal/instrument"
	"github.com/guidoenr/goscope/internal/render"
	"github.com/guidoenr/goscope/internal/scope"
	"github.com/guidoenr/goscope/internal/wavdump"
	"github.com/guidoenr/goscope/internal/web"
	"golang.org/x/term"
)

// Config configures the application runtime.
type Config struct {
	DeviceName   string
	TargetFPS    float64
	DisableAudio bool
	SynthFreq    float64
	UseSDL       bool
	UseANSI      bool
	Width        int
	Height       int
	WebPort      int
	DumpDir      string
	Log          *log.Logger
}

type inputEvent int

const (
	eventWidenWindow inputEvent = iota
	eventNarrowWindow
	eventZoomIn
	eventZoomOut
	eventToggleTrigger
	eventDumpWAV
	eventQuit
)

// App owns the producer (capture or synth) and the consumer (tick loop).
type App struct {
	cfg   Config
	log   *log.Logger
	ring  *scope.Ring
	state *instrument.State
	cycle *instrument.Cycle

	capture *audio.Capture
	synth   *synth
	plotter *render.Plotter

	sampleRate   float64
	deviceLabel  string
	width        int
	height       int
	renderHeight int
	inputEvents  chan inputEvent
}

// New constructs the application using the provided configuration.
func New(cfg Config) (*App, error) {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 30
	}
	if cfg.Log == nil {
		cfg.Log = log.New(os.Stdout, "", log.LstdFlags)
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	if cfg.Height <= 0 {
		cfg.Height = 24
	}
	renderHeight := cfg.Height
	if renderHeight > 1 {
		renderHeight-- // one row for the status line
	}

	plotter, err := render.New(cfg.Width, renderHeight, cfg.UseANSI)
	if err != nil {
		return nil, err
	}
	if cfg.UseSDL {
		if err := plotter.EnableSDL(); err != nil {
			return nil, fmt.Errorf("sdl display: %w", err)
		}
	}

	app := &App{
		cfg:          cfg,
		log:          cfg.Log,
		state:        instrument.NewState(),
		plotter:      plotter,
		width:        cfg.Width,
		height:       cfg.Height,
		renderHeight: renderHeight,
	}

	if cfg.DisableAudio {
		app.sampleRate = scope.DefaultSampleRate
		app.ring = scope.NewRing(int(app.sampleRate) * scope.RetentionSeconds)
		freq := cfg.SynthFreq
		if freq <= 0 {
			freq = 220
		}
		app.synth = newSynth(app.ring, app.sampleRate, freq)
		app.deviceLabel = fmt.Sprintf("synth %.0f Hz", freq)
		app.log.Printf("audio disabled, using synthetic %.0f Hz source", freq)
	} else {
		// The ring is sized before the stream opens; if the device reports a
		// different rate the retention just shifts slightly from 10 s.
		ring := scope.NewRing(scope.DefaultSampleRate * scope.RetentionSeconds)
		capture, err := audio.NewCapture(audio.Config{
			DeviceName: cfg.DeviceName,
			Channels:   2,
			Ring:       ring,
		})
		if err != nil {
			return nil, fmt.Errorf("audio capture: %w", err)
		}
		app.ring = ring
		app.capture = capture
		app.sampleRate = capture.SampleRate()
		if info := capture.Device(); info != nil {
			app.deviceLabel = info.Name
			app.log.Printf("audio capture started on %q @ %.0f Hz", info.Name, app.sampleRate)
		} else {
			app.log.Printf("audio capture started @ %.0f Hz", app.sampleRate)
		}
	}

	app.cycle = instrument.NewCycle(app.ring, app.sampleRate, app.state)
	return app, nil
}

// Run drives the analysis/render loop until context cancellation or quit.
func (a *App) Run(ctx context.Context) error {
	frameDuration := time.Duration(float64(time.Second) / a.cfg.TargetFPS)
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	if a.synth != nil {
		synthCtx, cancelSynth := context.WithCancel(ctx)
		defer cancelSynth()
		go a.synth.run(synthCtx)
	}

	if a.cfg.WebPort > 0 {
		server := web.NewServer(a, a.log)
		go func() {
			if err := server.Start(a.cfg.WebPort); err != nil {
				a.log.Printf("status server stopped: %v", err)
			}
		}()
	}

	terminalOutput := !a.cfg.UseSDL
	if terminalOutput {
		enterAltScreen()
		clearScreen()
		hideCursor()
		defer func() {
			showCursor()
			exitAltScreen()
		}()
	}

	inputCtx, cancelInput := context.WithCancel(ctx)
	defer cancelInput()
	a.startInputListener(inputCtx)
	a.ensureDimensions()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-a.inputEvents:
			if !ok {
				a.inputEvents = nil
				continue
			}
			if quit := a.handleInput(evt); quit {
				return nil
			}
		case <-ticker.C:
			if err := a.step(); err != nil {
				if errors.Is(err, render.ErrDisplayClosed) {
					return nil
				}
				return err
			}
		}
	}
}

// Close releases held resources.
func (a *App) Close() error {
	var captureErr error
	if a.capture != nil {
		captureErr = a.capture.Close()
	}
	if err := a.plotter.Close(); err != nil && captureErr == nil {
		captureErr = err
	}
	return captureErr
}

// step runs one render tick. Panics are contained: the tick is skipped and
// the previous display persists.
func (a *App) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Printf("render tick skipped: %v", r)
			err = nil
		}
	}()

	a.ensureDimensions()

	frame := a.cycle.Tick()
	status := render.FormatStatus(frame.Freq, frame.HasFreq,
		a.state.TimeWindow, a.state.YLimit, a.state.TriggerOn)
	if a.deviceLabel != "" {
		status = status + " | " + a.deviceLabel
	}

	rendered := a.plotter.Render(frame.Samples, a.state.YLimit, status)
	if rendered.Present != nil {
		return rendered.Present(rendered.Status)
	}

	moveCursorHome()
	for _, line := range rendered.Lines {
		fmt.Println(line)
	}
	fmt.Print(statusBar(rendered.Status, a.width))
	return nil
}

// handleInput applies one input event; reports whether the app should quit.
func (a *App) handleInput(evt inputEvent) bool {
	switch evt {
	case eventWidenWindow:
		a.state.WidenWindow()
	case eventNarrowWindow:
		a.state.NarrowWindow()
	case eventZoomIn:
		a.state.ZoomIn()
	case eventZoomOut:
		a.state.ZoomOut()
	case eventToggleTrigger:
		a.state.ToggleTrigger()
	case eventDumpWAV:
		a.dumpAnalysisWindow()
	case eventQuit:
		return true
	}
	return false
}

func (a *App) dumpAnalysisWindow() {
	window := a.cycle.AnalysisWindow()
	if len(window) == 0 {
		a.log.Print("nothing buffered yet, dump skipped")
		return
	}
	dir := a.cfg.DumpDir
	if dir == "" {
		dir = "."
	}
	path := fmt.Sprintf("%s/goscope-%s.wav", dir, time.Now().Format("20060102-150405"))
	if err := wavdump.Write(path, window, int(a.sampleRate)); err != nil {
		a.log.Printf("wav dump failed: %v", err)
		return
	}
	a.log.Printf("wrote %d samples to %s", len(window), path)
}

// ScopeStatus implements web.StatusSource.
func (a *App) ScopeStatus() web.Status {
	status := web.Status{
		WindowMS:     a.state.TimeWindow * 1000,
		YLimit:       a.state.YLimit,
		TriggerOn:    a.state.TriggerOn,
		SampleRateHz: a.sampleRate,
		Buffered:     a.ring.Len(),
		Device:       a.deviceLabel,
	}
	if a.state.HasFreq {
		freq := a.state.Freq
		status.FrequencyHz = &freq
	}
	return status
}

func (a *App) ensureDimensions() {
	if a.cfg.UseSDL {
		return
	}
	fd := int(os.Stdout.Fd())
	if fd < 0 {
		return
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return
	}

	renderHeight := h
	if renderHeight > 1 {
		renderHeight--
	}

	if w == a.width && h == a.height && renderHeight == a.renderHeight {
		return
	}

	a.width = w
	a.height = h
	a.renderHeight = renderHeight
	a.plotter.Resize(w, renderHeight)
}

func (a *App) startInputListener(ctx context.Context) {
	if err := keyboard.Open(); err != nil {
		a.log.Printf("keyboard input disabled: %v", err)
		a.inputEvents = nil
		return
	}

	events := make(chan inputEvent, 16)
	a.inputEvents = events

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}()

	go func() {
		defer close(events)
		defer closeOnce.Do(func() {
			_ = keyboard.Close()
		})
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}

			var evt inputEvent
			switch {
			case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC:
				events <- eventQuit
				return
			case char == 'q' || char == 'Q':
				events <- eventQuit
				return
			case key == keyboard.KeyArrowRight:
				evt = eventWidenWindow
			case key == keyboard.KeyArrowLeft:
				evt = eventNarrowWindow
			case key == keyboard.KeyArrowUp:
				evt = eventZoomIn
			case key == keyboard.KeyArrowDown:
				evt = eventZoomOut
			case char == 't' || char == 'T':
				evt = eventToggleTrigger
			case char == 'w' || char == 'W':
				evt = eventDumpWAV
			default:
				continue
			}
			select {
			case events <- evt:
			default:
			}
		}
	}()
}

func statusBar(text string, width int) string {
	if width <= 0 {
		return text
	}
	if len(text) >= width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}

func clearScreen() {
	fmt.Print("\x1b[2J")
	moveCursorHome()
}

func moveCursorHome() {
	fmt.Print("\x1b[H")
}

func hideCursor() {
	fmt.Print("\x1b[?25l")
}

func showCursor() {
	fmt.Print("\x1b[?25h")
}

func enterAltScreen() {
	fmt.Print("\x1b[?1049h")
}

func exitAltScreen() {
	fmt.Print("\x1b[?1049l\x1b[0m")
}
