// Package midi imports standard MIDI files as claviature tracks. The
// editor consumes the result as ordinary entities; entity ids are assigned
// by the model when the tracks are adopted into a song.
package midi

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ajankelo/claviature"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ImportFile reads a standard MIDI file and returns one track per SMF
// track containing notes, plus the file's initial tempo in BPM.
func ImportFile(path string) ([]claviature.Track, float64, error) {
	data, err := smf.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("could not read midi file: %w", err)
	}
	return importSMF(data)
}

// Import is ImportFile for an io.Reader.
func Import(r io.Reader) ([]claviature.Track, float64, error) {
	data, err := smf.ReadFrom(r)
	if err != nil {
		return nil, 0, fmt.Errorf("could not read midi data: %w", err)
	}
	return importSMF(data)
}

func importSMF(data *smf.SMF) ([]claviature.Track, float64, error) {
	ticks, ok := data.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, 0, errors.New("only metric time format is supported")
	}
	tpq := float64(ticks.Resolution())
	if tpq <= 0 {
		return nil, 0, errors.New("midi file has zero ticks per quarter")
	}
	bpm := 120.0
	if tc := data.TempoChanges(); len(tc) > 0 {
		bpm = tc[0].BPM
	}
	var tracks []claviature.Track
	for ti, tr := range data.Tracks {
		track, ok := importTrack(tr, tpq)
		if !ok {
			continue
		}
		if track.Name == "" {
			track.Name = fmt.Sprintf("MIDI %d", ti+1)
		}
		tracks = append(tracks, track)
	}
	if len(tracks) == 0 {
		return nil, 0, errors.New("the midi file contains no notes")
	}
	return tracks, bpm, nil
}

type pendingKey struct {
	channel uint8
	key     uint8
}

// importTrack converts one SMF track into a claviature track holding a
// single block that spans its notes. Note starts are stored relative to
// the block, which starts on the whole beat at or before the first note.
func importTrack(tr smf.Track, tpq float64) (claviature.Track, bool) {
	var (
		name     string
		notes    []claviature.Note
		pending  = make(map[pendingKey]claviature.Note)
		absTicks uint32
	)
	for _, ev := range tr {
		absTicks += ev.Delta
		beat := float64(absTicks) / tpq
		var channel, key, velocity uint8
		switch {
		case ev.Message.GetNoteStart(&channel, &key, &velocity):
			pending[pendingKey{channel, key}] = claviature.Note{
				Start:    beat,
				Pitch:    int(key),
				Velocity: int(velocity),
			}
		case ev.Message.GetNoteEnd(&channel, &key):
			k := pendingKey{channel, key}
			if n, ok := pending[k]; ok {
				n.Duration = max(beat-n.Start, claviature.MinDuration)
				notes = append(notes, n)
				delete(pending, k)
			}
		default:
			ev.Message.GetMetaTrackName(&name)
		}
	}
	// a note-on without a matching note-off gets a one-beat duration
	for _, n := range pending {
		n.Duration = 1
		notes = append(notes, n)
	}
	if len(notes) == 0 {
		return claviature.Track{}, false
	}
	blockStart := math.Inf(1)
	blockEnd := 0.0
	for _, n := range notes {
		blockStart = min(blockStart, n.Start)
		blockEnd = max(blockEnd, n.End())
	}
	blockStart = math.Floor(blockStart)
	for i := range notes {
		notes[i].Start -= blockStart
	}
	block := claviature.Block{
		Name:     name,
		Start:    blockStart,
		Duration: math.Ceil(blockEnd) - blockStart,
		Notes:    notes,
	}
	return claviature.Track{Name: name, Blocks: []claviature.Block{block}}, true
}
