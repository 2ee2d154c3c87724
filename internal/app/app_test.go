package app

import (
	"log"
	"os"
	"strings"
	"testing"

	"github.com/guidoenr/goscope/internal/scope"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{
		DisableAudio: true,
		Log:          log.New(os.Stderr, "", 0),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewWithSyntheticSource(t *testing.T) {
	a := newTestApp(t)
	defer a.Close()

	if a.sampleRate != scope.DefaultSampleRate {
		t.Fatalf("sample rate=%f want=%d", a.sampleRate, scope.DefaultSampleRate)
	}
	if a.ring.Cap() != scope.DefaultSampleRate*scope.RetentionSeconds {
		t.Fatalf("ring capacity=%d want=%d", a.ring.Cap(), scope.DefaultSampleRate*scope.RetentionSeconds)
	}
	if a.synth == nil {
		t.Fatal("expected a synthetic source when audio is disabled")
	}
}

func TestHandleInputAdjustsState(t *testing.T) {
	a := newTestApp(t)
	defer a.Close()

	before := a.state.TimeWindow
	a.handleInput(eventWidenWindow)
	if a.state.TimeWindow <= before {
		t.Fatalf("TimeWindow=%f want wider than %f", a.state.TimeWindow, before)
	}
	a.handleInput(eventNarrowWindow)
	a.handleInput(eventNarrowWindow)
	if a.state.TimeWindow >= before {
		t.Fatalf("TimeWindow=%f want narrower than %f", a.state.TimeWindow, before)
	}

	a.handleInput(eventToggleTrigger)
	if a.state.TriggerOn {
		t.Fatal("trigger should be off after toggle")
	}

	if quit := a.handleInput(eventQuit); !quit {
		t.Fatal("quit event should report quit")
	}
	if quit := a.handleInput(eventZoomIn); quit {
		t.Fatal("zoom event should not report quit")
	}
}

func TestScopeStatusReflectsState(t *testing.T) {
	a := newTestApp(t)
	defer a.Close()

	status := a.ScopeStatus()
	if status.FrequencyHz != nil {
		t.Fatal("no frequency should be reported before the first estimate")
	}
	if status.WindowMS != 1000 {
		t.Fatalf("WindowMS=%f want=1000", status.WindowMS)
	}
	if !strings.Contains(status.Device, "synth") {
		t.Fatalf("device label=%q want synthetic source", status.Device)
	}

	a.state.SetFrequency(123.4, true, a.state.LastCalc)
	status = a.ScopeStatus()
	if status.FrequencyHz == nil || *status.FrequencyHz != 123.4 {
		t.Fatalf("FrequencyHz=%v want=123.4", status.FrequencyHz)
	}
}

func TestStatusBar(t *testing.T) {
	if got := statusBar("abc", 6); got != "abc   " {
		t.Fatalf("padded status=%q", got)
	}
	if got := statusBar("abcdef", 3); got != "abc" {
		t.Fatalf("truncated status=%q", got)
	}
	if got := statusBar("abc", 0); got != "abc" {
		t.Fatalf("zero width status=%q", got)
	}
}
