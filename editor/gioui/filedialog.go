package gioui

import (
	"bytes"
	"io"

	"gioui.org/x/explorer"

	"github.com/ajankelo/claviature/editor"
	"github.com/ajankelo/claviature/midi"
)

// File dialogs run on their own goroutines; results are marshalled back to
// the GUI goroutine through the broker as closures.

func (e *Editor) OpenSongFile() {
	e.explorerChooseFile(func(rc io.ReadCloser) {
		defer rc.Close()
		song, err := editor.ReadSong(rc, "")
		if err != nil {
			e.Alertf(editor.Error, "%v", err)
			return
		}
		e.SetSong(song)
	}, ".yml", ".yaml", ".json")
}

func (e *Editor) SaveSongFile() {
	if p := e.FilePath(); p != "" {
		e.WarnError(e.SaveSong(p), "SaveSong")
		return
	}
	e.SaveSongAsFile()
}

func (e *Editor) SaveSongAsFile() {
	e.explorerCreateFile(func(wc io.WriteCloser) {
		defer wc.Close()
		if err := editor.WriteSong(wc, "song.yml", *e.Song()); err != nil {
			e.WarnError(err, "SaveSong")
			return
		}
		e.SetChangedSinceSave(false)
	}, "song.yml")
}

func (e *Editor) ImportMIDIFile() {
	e.explorerChooseFile(func(rc io.ReadCloser) {
		defer rc.Close()
		tracks, bpm, err := midi.Import(rc)
		if err != nil {
			e.Alertf(editor.Error, "MIDI import: %v", err)
			return
		}
		e.ImportTracks(tracks, bpm)
		e.Alertf(editor.Info, "imported %d MIDI tracks", len(tracks))
	}, ".mid", ".midi")
}

func (e *Editor) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	e.Exploring = true
	go func() {
		file, err := e.Explorer.ChooseFile(extensions...)
		e.Broker().ToModel <- editor.MsgToModel{Data: func() {
			e.Exploring = false
			if err != nil {
				if err != explorer.ErrUserDecline {
					e.Alertf(editor.Error, "%v", err)
				}
				return
			}
			success(file)
		}}
	}()
}

func (e *Editor) explorerCreateFile(success func(io.WriteCloser), filename string) {
	e.Exploring = true
	go func() {
		file, err := e.Explorer.CreateFile(filename)
		e.Broker().ToModel <- editor.MsgToModel{Data: func() {
			e.Exploring = false
			if err != nil {
				if err != explorer.ErrUserDecline {
					e.Alertf(editor.Error, "%v", err)
				}
				return
			}
			success(file)
		}}
	}()
}

func mimeReader(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}
