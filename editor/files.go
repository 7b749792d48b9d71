package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajankelo/claviature"
	"gopkg.in/yaml.v3"
)

// Songs are saved as YAML by default; a .json extension switches to JSON so
// the files stay usable from other tooling.

// ReadSong parses a song from r; format is decided by the path extension.
func ReadSong(r io.Reader, path string) (claviature.Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return claviature.Song{}, fmt.Errorf("could not read song: %w", err)
	}
	var song claviature.Song
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &song)
	} else {
		err = yaml.Unmarshal(data, &song)
	}
	if err != nil {
		return claviature.Song{}, fmt.Errorf("could not parse song: %w", err)
	}
	if err := song.Validate(); err != nil {
		return claviature.Song{}, err
	}
	return song, nil
}

// WriteSong writes the song to w in the format the path extension names.
func WriteSong(w io.Writer, path string, song claviature.Song) error {
	var data []byte
	var err error
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err = json.Marshal(song)
	} else {
		data, err = yaml.Marshal(song)
	}
	if err != nil {
		return fmt.Errorf("could not marshal song: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("could not write song: %w", err)
	}
	return nil
}

// LoadSong replaces the model's song with the one in the file.
func (m *Model) LoadSong(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open song: %w", err)
	}
	defer f.Close()
	song, err := ReadSong(f, path)
	if err != nil {
		return err
	}
	m.SetSong(song)
	m.d.FilePath = path
	m.d.ChangedSinceSave = false
	return nil
}

// SaveSong writes the model's song to the file and remembers the path.
func (m *Model) SaveSong(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create song file: %w", err)
	}
	defer f.Close()
	if err := WriteSong(f, path, m.d.Song); err != nil {
		return err
	}
	m.d.FilePath = path
	m.d.ChangedSinceSave = false
	return nil
}

// SetSong replaces the whole song as one undoable change.
func (m *Model) SetSong(song claviature.Song) {
	defer m.change("SetSong", MajorChange)()
	m.d.Song = song
	m.d.ActiveBlock = -1
	m.d.ActiveTrack = 0
	m.d.Playhead = 0
	m.d.MaxID = max(m.d.MaxID, song.MaxID())
}

// ImportTracks appends externally materialized tracks (typically from a
// MIDI file) to the song, assigning fresh ids throughout, and adopts the
// tempo when the current song is still empty.
func (m *Model) ImportTracks(tracks []claviature.Track, bpm float64) {
	if len(tracks) == 0 {
		return
	}
	defer m.change("ImportTracks", MajorChange)()
	empty := true
	for _, t := range m.d.Song.Tracks {
		if len(t.Blocks) > 0 {
			empty = false
			break
		}
	}
	if empty && bpm > 0 {
		m.d.Song.BPM = bpm
	}
	for _, t := range tracks {
		t = t.Copy()
		for bi := range t.Blocks {
			t.Blocks[bi].ID = m.nextID()
			for ni := range t.Blocks[bi].Notes {
				t.Blocks[bi].Notes[ni].ID = m.nextID()
			}
		}
		m.d.Song.Tracks = append(m.d.Song.Tracks, t)
		m.d.Song.Length = max(m.d.Song.Length, claviature.Song{Tracks: []claviature.Track{t}}.TotalLength())
	}
}

// Recovery: the whole model data is serialized to a hidden file on exit (or
// periodically) so a crash loses nothing.

// MarshalRecovery returns the recovery data and removes the recovery file,
// for saving the state through other means on clean exit.
func (m *Model) MarshalRecovery() []byte {
	out, err := json.Marshal(m.d)
	if err != nil {
		return nil
	}
	if m.d.RecoveryFilePath != "" {
		os.Remove(m.d.RecoveryFilePath)
	}
	m.d.ChangedSinceRecovery = false
	return out
}

// SaveRecovery writes the recovery file if anything changed since the last
// time.
func (m *Model) SaveRecovery() error {
	if !m.d.ChangedSinceRecovery {
		return nil
	}
	if m.d.RecoveryFilePath == "" {
		return errors.New("no recovery file path")
	}
	out, err := json.Marshal(m.d)
	if err != nil {
		return fmt.Errorf("could not marshal recovery data: %w", err)
	}
	dir := filepath.Dir(m.d.RecoveryFilePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		os.MkdirAll(dir, os.ModePerm)
	}
	if err := os.WriteFile(m.d.RecoveryFilePath, out, 0644); err != nil {
		return fmt.Errorf("could not write recovery file: %w", err)
	}
	m.d.ChangedSinceRecovery = false
	return nil
}

// UnmarshalRecovery restores the model state from recovery data.
func (m *Model) UnmarshalRecovery(data []byte) {
	if err := json.Unmarshal(data, &m.d); err != nil {
		return
	}
	m.d.ChangedSinceRecovery = false
	m.sendToPlayer()
}
