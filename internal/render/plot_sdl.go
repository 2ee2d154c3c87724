//go:build sdl

package render

import (
	"github.com/veandco/go-sdl2/sdl"
)

const (
	sdlWindowWidth  = 1200
	sdlWindowHeight = 600
)

type sdlState struct {
	initialized bool
	window      *sdl.Window
	renderer    *sdl.Renderer
	points      []sdl.Point
	windowTitle string
}

func (p *Plotter) initSDL() error {
	if p.sdl != nil {
		return nil
	}
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return err
	}
	p.sdl = &sdlState{initialized: true}
	p.useANSI = false
	return nil
}

func (p *Plotter) ensureSDLResources() error {
	state := p.sdl
	if state.window == nil {
		window, err := sdl.CreateWindow(
			"goscope",
			sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
			sdlWindowWidth, sdlWindowHeight,
			sdl.WINDOW_SHOWN,
		)
		if err != nil {
			return err
		}
		state.window = window
	}
	if state.renderer == nil {
		renderer, err := sdl.CreateRenderer(state.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
		if err != nil {
			return err
		}
		state.renderer = renderer
	}
	return nil
}

func (p *Plotter) renderSDL(samples []int16, yLimit float64, status string) Frame {
	if err := p.ensureSDLResources(); err != nil {
		return Frame{
			Status: status,
			Present: func(string) error {
				return err
			},
		}
	}
	if yLimit <= 0 {
		yLimit = 1
	}

	state := p.sdl
	w, h := state.window.GetSize()

	n := int(w)
	if len(samples) > 0 && len(samples) < n {
		n = len(samples)
	}
	if cap(state.points) < n {
		state.points = make([]sdl.Point, n)
	}
	points := state.points[:0]
	for x := 0; len(samples) > 0 && x < n; x++ {
		idx := x * len(samples) / n
		v := float64(samples[idx]) / yLimit
		y := int32((1 - v) / 2 * float64(h-1))
		if y < 0 {
			y = 0
		}
		if y >= h {
			y = h - 1
		}
		px := int32(x)
		if n < int(w) {
			px = int32(x) * w / int32(n)
		}
		points = append(points, sdl.Point{X: px, Y: y})
	}

	return Frame{
		Status: status,
		Present: func(status string) error {
			if status != "" && status != state.windowTitle {
				_ = state.window.SetTitle("goscope — " + status)
				state.windowTitle = status
			}
			if err := state.renderer.SetDrawColor(0, 0, 0, 255); err != nil {
				return err
			}
			if err := state.renderer.Clear(); err != nil {
				return err
			}
			_ = state.renderer.SetDrawColor(0, 60, 0, 255)
			_ = state.renderer.DrawLine(0, h/2, w-1, h/2)
			_ = state.renderer.SetDrawColor(0, 255, 0, 255)
			if len(points) > 1 {
				if err := state.renderer.DrawLines(points); err != nil {
					return err
				}
			}
			state.renderer.Present()
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch event.(type) {
				case *sdl.QuitEvent:
					return ErrDisplayClosed
				}
			}
			return nil
		},
	}
}

func (p *Plotter) resizeSDL() {}

func (p *Plotter) closeSDL() error {
	if p.sdl == nil {
		return nil
	}
	if p.sdl.renderer != nil {
		p.sdl.renderer.Destroy()
		p.sdl.renderer = nil
	}
	if p.sdl.window != nil {
		p.sdl.window.Destroy()
		p.sdl.window = nil
	}
	if p.sdl.initialized {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		p.sdl.initialized = false
	}
	p.sdl = nil
	return nil
}

// SupportsSDL reports whether this binary carries the SDL backend.
func SupportsSDL() bool { return true }
