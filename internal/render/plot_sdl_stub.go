//go:build !sdl

package render

import "errors"

type sdlState struct{}

func (p *Plotter) initSDL() error {
	return errors.New("SDL backend not enabled; rebuild with -tags sdl")
}

func (p *Plotter) renderSDL(samples []int16, yLimit float64, status string) Frame {
	return Frame{
		Status: "SDL backend unavailable (build without -tags sdl)",
		Present: func(string) error {
			return ErrDisplayClosed
		},
	}
}

func (p *Plotter) resizeSDL() {}

func (p *Plotter) closeSDL() error { return nil }

// SupportsSDL reports whether this binary carries the SDL backend.
func SupportsSDL() bool { return false }
