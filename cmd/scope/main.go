package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guidoenr/goscope/internal/app"
	"github.com/guidoenr/goscope/internal/audio"
	"github.com/guidoenr/goscope/internal/render"
	"golang.org/x/term"
)

func main() {
	var (
		deviceName = flag.String("audio-device", "", "Optional PortAudio device name (substring match)")
		targetFPS  = flag.Float64("fps", 30, "Target display refresh rate")
		noAudio    = flag.Bool("no-audio", false, "Run with a synthetic sine source (for testing)")
		synthFreq  = flag.Float64("synth-freq", 220, "Synthetic source frequency in Hz (with -no-audio)")
		useSDL     = flag.Bool("sdl", false, "Render to an SDL window instead of the terminal")
		webPort    = flag.Int("web-port", 0, "Serve instrument status on this port (0 disables)")
		dumpDir    = flag.String("dump-dir", ".", "Directory for WAV dumps triggered with the W key")
		debug      = flag.Bool("debug", false, "Enable verbose logging")
		noColor    = flag.Bool("no-color", false, "Disable ANSI color output")
		listDevs   = flag.Bool("list-audio-devices", false, "List available audio input devices and exit")
	)

	flag.Parse()

	if *targetFPS <= 0 {
		log.Fatalf("fps must be positive (got %.2f)", *targetFPS)
	}
	if *useSDL && !render.SupportsSDL() {
		log.Fatal("this binary was built without the SDL backend; rebuild with -tags sdl")
	}

	width, height := 80, 24
	if fd := int(os.Stdout.Fd()); fd >= 0 {
		if w, h, err := term.GetSize(fd); err == nil {
			if w > 0 {
				width = w
			}
			if h > 0 {
				height = h
			}
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stderr, "[goscope] ", log.LstdFlags)
	if !*debug {
		logger.SetFlags(0)
	}

	needAudio := !*noAudio || *listDevs
	if needAudio {
		if err := audio.Initialize(); err != nil {
			logger.Fatalf("failed to initialize PortAudio: %v", err)
		}
		defer audio.Terminate()
	}

	if *listDevs {
		devices, err := audio.ListDevices()
		if err != nil {
			logger.Fatalf("list devices: %v", err)
		}
		fmt.Printf("\n=== Audio Input Devices ===\n\n")
		for _, dev := range devices {
			if dev.MaxInput == 0 {
				continue
			}
			markers := ""
			if dev.IsDefaultInput {
				markers += " (default)"
			}
			fmt.Printf("- %s [%s]%s\n    inputs:%d sample:%.0f Hz\n",
				dev.Name, dev.HostAPI, markers, dev.MaxInput, dev.DefaultSampleHz)
		}
		if dev, err := audio.AutoDetectDevice(); err == nil && dev != nil {
			fmt.Printf("\nAuto-detected input: %s (%.0f Hz, %d channels)\n",
				dev.Name, dev.DefaultSampleRate, dev.MaxInputChannels)
		}
		return
	}

	appConfig := app.Config{
		DeviceName:   *deviceName,
		TargetFPS:    *targetFPS,
		DisableAudio: *noAudio,
		SynthFreq:    *synthFreq,
		UseSDL:       *useSDL,
		UseANSI:      !*noColor,
		Width:        width,
		Height:       height,
		WebPort:      *webPort,
		DumpDir:      *dumpDir,
		Log:          logger,
	}

	a, err := app.New(appConfig)
	if err != nil {
		logger.Fatalf("failed to create app: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "cleanup error: %v\n", err)
		}
	}()

	if err := a.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nExiting...")
			return
		}
		logger.Fatalf("runtime error: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
}
