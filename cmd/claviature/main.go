package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"gioui.org/app"

	"github.com/ajankelo/claviature/audio"
	"github.com/ajankelo/claviature/editor"
	"github.com/ajankelo/claviature/editor/gioui"
	"github.com/ajankelo/claviature/midi"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

func main() {
	flag.Parse()
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	audioContext, err := audio.NewContext()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	recoveryFile := ""
	if configDir, err := os.UserConfigDir(); err == nil {
		recoveryFile = filepath.Join(configDir, "claviature", "claviature-recovery")
	}
	broker := editor.NewBroker()
	model := editor.NewModel(broker, recoveryFile)
	player := editor.NewPlayer(broker, audio.NewSynth(audio.SampleRate), audio.SampleRate)

	if a := flag.Args(); len(a) > 0 {
		openFile(model, a[0])
	}

	ui := gioui.NewEditor(model)
	sink := audioContext.Output()
	go player.Run(sink)

	go func() {
		ui.Main()
		editor.TrySend(broker.ClosePlayer, struct{}{})
		editor.TimeoutReceive(broker.FinishedPlayer, time.Second)
		sink.Close()
		audioContext.Close()
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		if *memprofile != "" {
			f, err := os.Create(*memprofile)
			if err != nil {
				log.Fatal("could not create memory profile: ", err)
			}
			defer f.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatal("could not write memory profile: ", err)
			}
		}
		os.Exit(0)
	}()
	app.Main()
}

// openFile loads a song or imports a MIDI file, depending on the extension.
func openFile(model *editor.Model, path string) {
	switch filepath.Ext(path) {
	case ".mid", ".midi":
		tracks, bpm, err := midi.ImportFile(path)
		if err != nil {
			log.Printf("could not import %s: %v", path, err)
			return
		}
		model.ImportTracks(tracks, bpm)
	default:
		if err := model.LoadSong(path); err != nil {
			log.Printf("could not load %s: %v", path, err)
		}
	}
}
