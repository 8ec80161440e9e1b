// miditest is a MIDI controller bring-up tool: point it at a port
// substring and it prints every decoded control.Event as it arrives, so
// an operator can learn a new controller's note/CC numbering before
// writing control.Table entries for it.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"tunnelcore/lib/control"
)

func main() {
	defer midi.CloseDriver()

	portSub := flag.String("port", "", "substring to match against an available MIDI input port name")
	surface := flag.String("surface", "test", "surface name to tag decoded events with")
	flag.Parse()

	if *portSub == "" {
		fmt.Println("Available MIDI input ports:")
		for _, p := range midi.GetInPorts() {
			fmt.Printf("  %s\n", p)
		}
		fmt.Fprintln(os.Stderr, "\nusage: miditest -port <substring>")
		os.Exit(1)
	}

	port, err := control.FindInPort(*portSub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dec := control.MIDIDecoder{Surface: control.SurfaceID(*surface)}
	listener, err := control.ListenMIDI(dec, port)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer listener.Close()

	fmt.Printf("Listening on: %s\n", port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-listener.Events():
			fmt.Printf("surface=%s control=%s value=%.3f\n", ev.Surface, ev.Control, ev.Value)
		case <-sig:
			fmt.Println()
			return
		}
	}
}
