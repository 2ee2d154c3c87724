package wavdump

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.wav")

	samples := make([]int16, 4800)
	for i := range samples {
		samples[i] = int16(12000 * math.Sin(2*math.Pi*200*float64(i)/48000))
	}

	if err := Write(path, samples, 48000); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("written file is not a valid WAV")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode written file: %v", err)
	}
	if got := buf.Format.SampleRate; got != 48000 {
		t.Fatalf("sample rate=%d want=48000", got)
	}
	if got := buf.Format.NumChannels; got != 1 {
		t.Fatalf("channels=%d want=1", got)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples want=%d", len(buf.Data), len(samples))
	}
	for i := 0; i < len(samples); i += 777 {
		if buf.Data[i] != int(samples[i]) {
			t.Fatalf("sample %d=%d want=%d", i, buf.Data[i], samples[i])
		}
	}
}

func TestWriteEmptyWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := Write(path, nil, 48000); err != nil {
		t.Fatalf("Write empty: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat written file: %v", err)
	}
}

func TestWriteRejectsInvalidRate(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "x.wav"), nil, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
