// Package render draws the captured waveform, either as a braille trace in
// the terminal or as a polyline in an SDL window when built with -tags sdl.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDisplayClosed is returned by a frame's Present hook when the user closes
// the display window.
var ErrDisplayClosed = errors.New("display closed")

// Braille cells pack 2x4 dots each.
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
)

// brailleBits maps a dot position within a cell to its bit in the braille
// rune block (U+2800).
var brailleBits = [dotsPerCellY][dotsPerCellX]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const (
	traceANSI = "\x1b[38;5;46m" // scope-green trace
	resetANSI = "\x1b[0m"
)

// Plotter converts a sample window into terminal lines. It owns a dot canvas
// sized to the current terminal and reuses it between frames.
type Plotter struct {
	width   int // cells
	height  int // cells
	useANSI bool

	canvas []rune // braille accumulation, width*height cells
	sdl    *sdlState
}

// Frame is one rendered display frame. Terminal frames carry Lines; SDL
// frames instead carry a Present hook that pushes the frame to the window.
type Frame struct {
	Lines   []string
	Status  string
	Present func(status string) error
}

// New creates a Plotter with the given cell dimensions.
func New(width, height int, useANSI bool) (*Plotter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: width=%d height=%d", width, height)
	}
	return &Plotter{
		width:   width,
		height:  height,
		useANSI: useANSI,
	}, nil
}

// Resize updates the cell dimensions.
func (p *Plotter) Resize(width, height int) {
	if width > 0 && width != p.width {
		p.width = width
		p.canvas = nil
	}
	if height > 0 && height != p.height {
		p.height = height
		p.canvas = nil
	}
	if p.sdl != nil {
		p.resizeSDL()
	}
}

// Width returns the current cell width.
func (p *Plotter) Width() int { return p.width }

// Height returns the current cell height.
func (p *Plotter) Height() int { return p.height }

// EnableSDL switches rendering to an SDL window. Only available when built
// with -tags sdl.
func (p *Plotter) EnableSDL() error {
	return p.initSDL()
}

// Close releases display resources.
func (p *Plotter) Close() error {
	if p.sdl != nil {
		return p.closeSDL()
	}
	return nil
}

// Render draws the sample window scaled to ±yLimit. The status string is
// passed through for the caller to place.
func (p *Plotter) Render(samples []int16, yLimit float64, status string) Frame {
	if p.sdl != nil {
		return p.renderSDL(samples, yLimit, status)
	}
	return p.renderTerminal(samples, yLimit, status)
}

func (p *Plotter) renderTerminal(samples []int16, yLimit float64, status string) Frame {
	if p.width <= 0 || p.height <= 0 {
		return Frame{Status: status}
	}
	if yLimit <= 0 {
		yLimit = 1
	}

	cells := p.width * p.height
	if len(p.canvas) != cells {
		p.canvas = make([]rune, cells)
	}
	for i := range p.canvas {
		p.canvas[i] = 0
	}

	dotsW := p.width * dotsPerCellX
	dotsH := p.height * dotsPerCellY

	// Zero axis, dotted.
	axis := (dotsH - 1) / 2
	for x := 0; x < dotsW; x += 4 {
		p.setDot(x, axis)
	}

	if len(samples) > 0 {
		prevY := p.sampleDotY(samples, 0, dotsW, dotsH, yLimit)
		for x := 0; x < dotsW; x++ {
			y := p.sampleDotY(samples, x, dotsW, dotsH, yLimit)
			// Connect consecutive columns so steep edges stay visible.
			lo, hi := y, prevY
			if lo > hi {
				lo, hi = hi, lo
			}
			for yy := lo; yy <= hi; yy++ {
				p.setDot(x, yy)
			}
			prevY = y
		}
	}

	lines := make([]string, p.height)
	var builder strings.Builder
	for row := 0; row < p.height; row++ {
		builder.Reset()
		builder.Grow(p.width*3 + 16)
		if p.useANSI {
			builder.WriteString(traceANSI)
		}
		for col := 0; col < p.width; col++ {
			bits := p.canvas[row*p.width+col]
			builder.WriteRune(0x2800 + bits)
		}
		if p.useANSI {
			builder.WriteString(resetANSI)
		}
		lines[row] = builder.String()
	}

	return Frame{Lines: lines, Status: status}
}

// sampleDotY maps dot column x onto a sample index and returns the dot row
// for its amplitude.
func (p *Plotter) sampleDotY(samples []int16, x, dotsW, dotsH int, yLimit float64) int {
	idx := x * len(samples) / dotsW
	if idx >= len(samples) {
		idx = len(samples) - 1
	}
	v := float64(samples[idx]) / yLimit // -1..1 at full scale
	y := int((1 - v) / 2 * float64(dotsH-1))
	if y < 0 {
		y = 0
	}
	if y >= dotsH {
		y = dotsH - 1
	}
	return y
}

func (p *Plotter) setDot(x, y int) {
	col := x / dotsPerCellX
	row := y / dotsPerCellY
	if col < 0 || col >= p.width || row < 0 || row >= p.height {
		return
	}
	p.canvas[row*p.width+col] |= brailleBits[y%dotsPerCellY][x%dotsPerCellX]
}

// FormatStatus renders the standard status line: frequency readout plus the
// current display settings.
func FormatStatus(freq float64, hasFreq bool, windowSeconds, yLimit float64, triggerOn bool) string {
	var b strings.Builder
	b.Grow(96)
	if hasFreq {
		b.WriteString("Frequency: ")
		b.Write(strconv.AppendFloat(nil, freq, 'f', 3, 64))
		b.WriteString(" Hz")
	} else {
		b.WriteString("Frequency: Syncing...")
	}
	b.WriteString(" | Window: ")
	b.Write(strconv.AppendFloat(nil, windowSeconds*1000, 'f', 0, 64))
	b.WriteString("ms | Scale: ")
	b.Write(strconv.AppendFloat(nil, yLimit, 'f', 0, 64))
	b.WriteString(" | Trigger: ")
	if triggerOn {
		b.WriteString("ON")
	} else {
		b.WriteString("OFF")
	}
	b.WriteString(" [T]")
	return b.String()
}
