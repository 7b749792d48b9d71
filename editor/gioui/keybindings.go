package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"gioui.org/io/clipboard"
	"gioui.org/io/key"
	"gopkg.in/yaml.v3"
)

type (
	KeyAction string

	KeyBinding struct {
		Key                                        string
		Shortcut, Ctrl, Command, Shift, Alt, Super bool
		Action                                     string
	}
)

var keyBindingMap = map[key.Event]string{}
var keyActionMap = map[KeyAction]string{} // holds an informative string of the first key bound to an action

//go:embed keybindings.yml
var defaultKeyBindings []byte

func init() {
	var keyBindings, userKeybindings []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(defaultKeyBindings))
	dec.KnownFields(true)
	if err := dec.Decode(&keyBindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	if exists, err := ReadCustomConfigYml("keybindings.yml", &userKeybindings); exists && err == nil {
		keyBindings = append(keyBindings, userKeybindings...)
	}

	for _, kb := range keyBindings {
		var mods key.Modifiers
		if kb.Shortcut {
			mods |= key.ModShortcut
		}
		if kb.Ctrl {
			mods |= key.ModCtrl
		}
		if kb.Command {
			mods |= key.ModCommand
		}
		if kb.Shift {
			mods |= key.ModShift
		}
		if kb.Alt {
			mods |= key.ModAlt
		}
		if kb.Super {
			mods |= key.ModSuper
		}

		keyEvent := key.Event{Name: key.Name(kb.Key), Modifiers: mods, State: key.Press}
		action, ok := keyBindingMap[keyEvent] // if this key has been previously bound, remove it from the hint map
		if ok {
			delete(keyActionMap, KeyAction(action))
		}
		if kb.Action == "" { // unbind
			delete(keyBindingMap, keyEvent)
		} else { // bind
			keyBindingMap[keyEvent] = kb.Action
			modString := strings.Replace(mods.String(), "-", "+", -1)
			text := kb.Key
			if modString != "" {
				text = modString + "+" + text
			}
			keyActionMap[KeyAction(kb.Action)] = text
		}
	}
}

func makeHint(hint, format, action string) string {
	if keyActionMap[KeyAction(action)] != "" {
		return hint + fmt.Sprintf(format, keyActionMap[KeyAction(action)])
	}
	return hint
}

// KeyEvent dispatches a bound key press to the model.
func (e *Editor) KeyEvent(ev key.Event, gtx C) {
	if ev.State == key.Release {
		return
	}
	action, ok := keyBindingMap[ev]
	if !ok {
		return
	}
	switch action {
	case "Undo":
		e.Undo().Do()
	case "Redo":
		e.Redo().Do()
	case "NewSong":
		e.NewSong().Do()
	case "OpenSong":
		e.OpenSongFile()
	case "SaveSong":
		e.SaveSongFile()
	case "SaveSongAs":
		e.SaveSongAsFile()
	case "ImportMIDI":
		e.ImportMIDIFile()
	case "AddTrack":
		e.AddTrack().Do()
	case "DeleteTrack":
		e.DeleteTrack().Do()
	case "Rewind":
		e.Rewind().Do()
	case "CloseBlock":
		e.CloseBlockAction().Do()
	case "Copy":
		if data, ok := e.activeCopy(); ok {
			gtx.Execute(clipboard.WriteCmd{Type: "application/text", Data: mimeReader(data)})
		}
	case "Cut":
		if data, ok := e.activeCopy(); ok {
			gtx.Execute(clipboard.WriteCmd{Type: "application/text", Data: mimeReader(data)})
			e.activeDelete()
		}
	case "Paste":
		gtx.Execute(clipboard.ReadCmd{Tag: e})
	case "Delete":
		e.activeDelete()
	case "Escape":
		e.activeEscape()
	case "SelectAll":
		e.activeSelectAll()
	// Booleans
	case "PlayingToggle":
		e.Playing().Toggle()
	case "LoopToggle":
		e.Loop().Toggle()
	// Values
	case "BPMAdd":
		e.BPM().Add(1)
	case "BPMSubtract":
		e.BPM().Add(-1)
	case "GridHalve":
		e.Grid().SetValue(e.Grid().Value() / 2)
	case "GridDouble":
		e.Grid().SetValue(e.Grid().Value() * 2)
	}
}
