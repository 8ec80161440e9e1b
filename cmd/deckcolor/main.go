// deckcolor drives a Stream Deck Plus's three left-hand encoders as a
// live hue/saturation/value tuner for a Line beam's Color, rendering the
// current color as a solid swatch on the device's LCD strip — a
// hardware-feedback bring-up tool for the same Color type scene.Line
// renders from.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tunnelcore/lib/scene"
	"tunnelcore/lib/streamdeck"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func main() {
	dev, err := streamdeck.OpenModel(&streamdeck.ModelPlus)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer dev.Close()

	dev.SetBrightness(80)

	col := scene.Color{Hue: scene.NewPhase(0), Sat: scene.NewUnipolar(1), Val: scene.NewUnipolar(1)}
	m := dev.Model()

	updateLCD := func() {
		rgb := hsvToRGB(float64(col.Hue), float64(col.Sat), float64(col.Val))
		dev.SetLCDColor(0, 0, m.LCDWidth, m.LCDHeight, rgb)
		fmt.Printf("hue=%.3f sat=%.3f val=%.3f\n", float64(col.Hue), float64(col.Sat), float64(col.Val))
	}
	updateLCD()

	for i := 0; i < m.Keys; i++ {
		dev.ClearKey(i)
	}

	input := make(chan streamdeck.InputEvent, 64)
	go func() {
		if err := dev.ReadInput(input); err != nil {
			fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-input:
			if ev.Encoder == nil || ev.Encoder.Delta == 0 || ev.Encoder.Encoder >= 3 {
				continue
			}
			step := float64(ev.Encoder.Delta) / 127.0
			switch ev.Encoder.Encoder {
			case 0:
				col.Hue = scene.NewPhase(float64(col.Hue) + step)
			case 1:
				col.Sat = scene.NewUnipolar(clamp01(float64(col.Sat) + step))
			case 2:
				col.Val = scene.NewUnipolar(clamp01(float64(col.Val) + step))
			}
			updateLCD()
		case <-sig:
			fmt.Println()
			return
		}
	}
}
