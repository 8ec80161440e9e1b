// decktest is a bring-up tool for wiring a physical Stream Deck into the
// control plane: each key binds to a mixer layer's bump, and pressing a
// key lights it via the ControlMapper's echo path
// (control.StreamDeckSurface), exercising the same binding/echo
// round-trip a production show uses.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tunnelcore/lib/control"
	"tunnelcore/lib/mixer"
	"tunnelcore/lib/scene"
	"tunnelcore/lib/streamdeck"
)

func main() {
	dev, err := streamdeck.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()

	fmt.Printf("Connected to: %s (serial: %s)\n", dev.Product(), dev.SerialNumber())
	dev.SetBrightness(80)
	dev.ClearAllKeys()

	m := mixer.New(dev.Model().Keys)
	for i := range m.Layers {
		m.SetLayer(i, scene.NewTunnelBeam())
	}

	table := control.NewTable()
	surface := control.SurfaceID("decktest")
	for i := 0; i < dev.Model().Keys; i++ {
		table.Bind(surface, control.ControlID(fmt.Sprintf("key%d", i)), control.Binding{
			Target: control.TargetPath{Kind: control.TargetLayerBump, Layer: i},
		})
	}
	mapper := control.NewMapper(m, table)
	deck := control.NewStreamDeckSurface(surface, dev)
	mapper.RegisterSink(surface, deck)

	fmt.Println("Press keys to bump layers; ctrl-c to exit.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-deck.Events():
			mapper.Handle(ev)
			fmt.Printf("%s %s = %.2f\n", ev.Surface, ev.Control, ev.Value)
		case <-sig:
			fmt.Println()
			return
		}
	}
}
