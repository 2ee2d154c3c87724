package instrument

import (
	"testing"
	"time"
)

func TestStateDefaults(t *testing.T) {
	s := NewState()
	if s.TimeWindow != 1.0 {
		t.Fatalf("TimeWindow=%f want=1.0", s.TimeWindow)
	}
	if s.YLimit != 32768 {
		t.Fatalf("YLimit=%f want=32768", s.YLimit)
	}
	if !s.TriggerOn {
		t.Fatal("trigger should start enabled")
	}
	if s.HasFreq {
		t.Fatal("no frequency reading should exist at startup")
	}
}

func TestNarrowWindowClampsAtFloor(t *testing.T) {
	s := NewState()
	for i := 0; i < 50; i++ {
		s.NarrowWindow()
	}
	if s.TimeWindow != minTimeWindow {
		t.Fatalf("TimeWindow=%f want floor %f", s.TimeWindow, minTimeWindow)
	}
}

func TestZoomClamps(t *testing.T) {
	s := NewState()
	for i := 0; i < 50; i++ {
		s.ZoomIn()
	}
	if s.YLimit != minYLimit {
		t.Fatalf("YLimit=%f want floor %d", s.YLimit, minYLimit)
	}
	for i := 0; i < 50; i++ {
		s.ZoomOut()
	}
	if s.YLimit != maxYLimit {
		t.Fatalf("YLimit=%f want cap %d", s.YLimit, maxYLimit)
	}
}

func TestToggleTrigger(t *testing.T) {
	s := NewState()
	s.ToggleTrigger()
	if s.TriggerOn {
		t.Fatal("trigger should be off after toggle")
	}
	s.ToggleTrigger()
	if !s.TriggerOn {
		t.Fatal("trigger should be on after second toggle")
	}
}

func TestSetFrequency(t *testing.T) {
	s := NewState()
	at := time.Now()
	s.SetFrequency(440.5, true, at)
	if !s.HasFreq || s.Freq != 440.5 || !s.LastCalc.Equal(at) {
		t.Fatalf("unexpected state after SetFrequency: %+v", s)
	}
	s.SetFrequency(0, false, at.Add(time.Second))
	if s.HasFreq {
		t.Fatal("HasFreq should clear when no estimate is available")
	}
}
