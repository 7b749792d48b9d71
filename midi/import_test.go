package midi

import (
	"bytes"
	"math"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func buildTestSMF(t *testing.T) []byte {
	t.Helper()
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(960)

	var track0 smf.Track
	track0.Add(0, smf.MetaTempo(140))
	track0.Close(0)
	if err := sm.Add(track0); err != nil {
		t.Fatalf("adding tempo track: %v", err)
	}

	// two quarter notes: C4 at beat 1, E4 at beat 2.5
	var track smf.Track
	track.Add(960, midi.NoteOn(0, 60, 100))
	track.Add(960, midi.NoteOff(0, 60))
	track.Add(480, midi.NoteOn(0, 64, 80))
	track.Add(960, midi.NoteOff(0, 64))
	track.Close(0)
	if err := sm.Add(track); err != nil {
		t.Fatalf("adding note track: %v", err)
	}

	var buf bytes.Buffer
	if _, err := sm.WriteTo(&buf); err != nil {
		t.Fatalf("writing smf: %v", err)
	}
	return buf.Bytes()
}

func TestImport(t *testing.T) {
	tracks, bpm, err := Import(bytes.NewReader(buildTestSMF(t)))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if bpm != 140 {
		t.Fatalf("bpm = %v, expected 140", bpm)
	}
	if len(tracks) != 1 {
		t.Fatalf("got %d tracks, expected 1 (tempo-only track must be dropped)", len(tracks))
	}
	if len(tracks[0].Blocks) != 1 {
		t.Fatalf("got %d blocks, expected 1", len(tracks[0].Blocks))
	}
	b := tracks[0].Blocks[0]
	if b.Start != 1 {
		t.Fatalf("block start = %v, expected 1 (first note floored to whole beat)", b.Start)
	}
	if len(b.Notes) != 2 {
		t.Fatalf("got %d notes, expected 2", len(b.Notes))
	}
	// note starts are relative to the block
	checks := []struct {
		start, duration float64
		pitch, velocity int
	}{
		{0, 1, 60, 100},
		{1.5, 1, 64, 80},
	}
	for i, want := range checks {
		n := b.Notes[i]
		if math.Abs(n.Start-want.start) > 1e-9 || math.Abs(n.Duration-want.duration) > 1e-9 {
			t.Errorf("note %d at %v for %v beats, expected %v for %v", i, n.Start, n.Duration, want.start, want.duration)
		}
		if n.Pitch != want.pitch || n.Velocity != want.velocity {
			t.Errorf("note %d pitch %d velocity %d, expected %d and %d", i, n.Pitch, n.Velocity, want.pitch, want.velocity)
		}
	}
	if b.End() < b.Start+b.Duration || b.Duration != 3 {
		t.Errorf("block duration = %v, expected 3 (span ceiled to whole beats)", b.Duration)
	}
}

func TestImportRejectsEmptyFile(t *testing.T) {
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(960)
	var track smf.Track
	track.Close(0)
	if err := sm.Add(track); err != nil {
		t.Fatalf("adding track: %v", err)
	}
	var buf bytes.Buffer
	if _, err := sm.WriteTo(&buf); err != nil {
		t.Fatalf("writing smf: %v", err)
	}
	if _, _, err := Import(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatalf("expected an error for a file with no notes")
	}
}
