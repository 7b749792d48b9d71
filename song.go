package claviature

import (
	"errors"
	"math"
	"sort"
)

const (
	// GridDefault is the snap resolution new songs start with, in beats.
	GridDefault = 0.25

	// MinDuration is the shortest note or block the editor will produce, in
	// beats. Resizes and creations clamp to it so entities never collapse to
	// zero width.
	MinDuration = 1.0 / 16

	// MaxPitch is the highest MIDI note number; pitches are clamped to
	// 0..MaxPitch everywhere.
	MaxPitch = 127
)

type (
	// Song is the root document: a tempo, a list of tracks and a length in
	// beats. BPM is a float so imported MIDI tempos survive without rounding.
	// The Length only tells the desired length of the arrangement; blocks may
	// extend past it and playback simply stops at the last sounding note.
	Song struct {
		BPM    float64
		Length float64
		Tracks []Track
	}

	// Track holds the blocks of one timeline lane. Blocks within a track may
	// overlap; the editor does not forbid it and playback just triggers both.
	Track struct {
		Name   string  `yaml:",omitempty"`
		Blocks []Block `yaml:",flow"`
	}

	// Block is a clip of notes placed on the timeline. Start and Duration are
	// in beats, relative to song start. Note starts are relative to the block
	// start, so moving a block never rewrites its notes.
	Block struct {
		ID       int     `yaml:"id"`
		Name     string  `yaml:",omitempty"`
		Start    float64 `yaml:"start"`
		Duration float64 `yaml:"duration"`
		Notes    []Note  `yaml:",flow"`
	}

	// Note is a single pitched event inside a block. Start is in beats from
	// the block start. IDs are assigned by the host model, unique within the
	// song, and stable for the life of the note; they are persisted so that
	// references survive a save/load cycle.
	Note struct {
		ID       int     `yaml:"id"`
		Start    float64 `yaml:"start"`
		Duration float64 `yaml:"duration"`
		Pitch    int     `yaml:"pitch"`
		Velocity int     `yaml:"velocity,omitempty"`
	}
)

var ErrEmptySong = errors.New("the song is empty")

// Copy makes a deep copy of the song.
func (s Song) Copy() Song {
	tracks := make([]Track, len(s.Tracks))
	for i, t := range s.Tracks {
		tracks[i] = t.Copy()
	}
	return Song{BPM: s.BPM, Length: s.Length, Tracks: tracks}
}

// Copy makes a deep copy of a track.
func (t Track) Copy() Track {
	blocks := make([]Block, len(t.Blocks))
	for i, b := range t.Blocks {
		blocks[i] = b.Copy()
	}
	return Track{Name: t.Name, Blocks: blocks}
}

// Copy makes a deep copy of a block.
func (b Block) Copy() Block {
	notes := make([]Note, len(b.Notes))
	copy(notes, b.Notes)
	return Block{ID: b.ID, Name: b.Name, Start: b.Start, Duration: b.Duration, Notes: notes}
}

// End returns the end of the block in beats from song start.
func (b Block) End() float64 { return b.Start + b.Duration }

// End returns the end of the note in beats from block start.
func (n Note) End() float64 { return n.Start + n.Duration }

// Validate checks that the song is playable: it has at least one track and a
// positive BPM. Structural defects like negative starts are not errors; the
// editor clamps them away on the next edit instead.
func (s Song) Validate() error {
	if len(s.Tracks) == 0 {
		return ErrEmptySong
	}
	if s.BPM <= 0 || math.IsNaN(s.BPM) || math.IsInf(s.BPM, 0) {
		return errors.New("BPM should be positive and finite")
	}
	return nil
}

// MaxID returns the largest entity ID appearing anywhere in the song, 0 for
// an empty song. The host model assigns new IDs starting from MaxID+1.
func (s Song) MaxID() int {
	ret := 0
	for _, t := range s.Tracks {
		for _, b := range t.Blocks {
			ret = max(ret, b.ID)
			for _, n := range b.Notes {
				ret = max(ret, n.ID)
			}
		}
	}
	return ret
}

// TotalLength returns the end of the last block in beats, or Length if that
// is larger. Used by playback to know when to stop and by the timeline to
// size its scrollable content.
func (s Song) TotalLength() float64 {
	ret := s.Length
	for _, t := range s.Tracks {
		for _, b := range t.Blocks {
			ret = max(ret, b.End())
		}
	}
	return ret
}

// SortBlocks orders the blocks of every track by start time, keeping IDs
// attached. Called after edits so playback can scan tracks linearly.
func (s *Song) SortBlocks() {
	for i := range s.Tracks {
		blocks := s.Tracks[i].Blocks
		sort.SliceStable(blocks, func(a, b int) bool { return blocks[a].Start < blocks[b].Start })
	}
}
