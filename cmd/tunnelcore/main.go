// tunnelcore is the show engine's entrypoint: it loads config.yaml,
// builds a Show wired to whatever control surfaces the config names, and
// runs the fixed-rate tick loop until interrupted, in the teacher's
// flag-plus-config-override style (see ledcube's cmd/ledcube/main.go).
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"tunnelcore/internal/config"
	"tunnelcore/lib/control"
	"tunnelcore/lib/publish"
	"tunnelcore/lib/show"
	"tunnelcore/lib/streamdeck"
)

func main() {
	defer midi.CloseDriver()

	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	publishAddr := flag.String("addr", "", "publisher bind address (overrides config)")
	tickHz := flag.Int("tick-hz", 0, "tick rate in Hz (overrides config)")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("tunnelcore: config load failed; using defaults")
		cfg = config.Defaults()
	}
	if *publishAddr != "" {
		cfg.PublishAddr = *publishAddr
	}
	if *tickHz > 0 {
		cfg.TickHz = *tickHz
	}

	pub, err := publish.Listen(cfg.PublishAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.PublishAddr).Msg("tunnelcore: cannot bind publisher")
	}
	defer pub.Close()

	table := control.NewTable()
	s := show.New(cfg.NumLayers, table, pub)
	s.SetTickRate(cfg.TickHz)
	if cfg.AutosavePath != "" {
		s.SetAutosave(cfg.AutosavePath, time.Duration(cfg.AutosaveSec)*time.Second)
		if err := s.Load(cfg.AutosavePath); err != nil {
			log.Info().Str("path", cfg.AutosavePath).Msg("tunnelcore: no prior snapshot, starting fresh")
		}
	}

	for _, ms := range cfg.MIDISurfaces {
		wireMIDISurface(s, ms)
	}
	for _, oscSurf := range cfg.OSCSurfaces {
		wireOSCSurface(s, oscSurf)
	}
	for _, sd := range cfg.StreamDeckSurfaces {
		wireStreamDeckSurface(s, sd)
	}

	log.Info().Str("publish_addr", cfg.PublishAddr).Int("tick_hz", cfg.TickHz).Msg("tunnelcore: starting show")

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("tunnelcore: shutdown requested")
		cancel()
	}()

	if err := s.Run(ctx, cfg.NumChannels); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("tunnelcore: show loop exited with error")
	}

	if cfg.AutosavePath != "" {
		if err := s.Save(cfg.AutosavePath); err != nil {
			log.Warn().Err(err).Msg("tunnelcore: final snapshot export failed")
		}
	}
}

func wireMIDISurface(s *show.Show, ms config.MIDISurface) {
	port, err := control.FindInPort(ms.PortSub)
	if err != nil {
		log.Warn().Err(err).Str("surface", ms.Name).Msg("tunnelcore: midi surface not found, skipping")
		return
	}
	dec := control.MIDIDecoder{Surface: control.SurfaceID(ms.Name)}
	listener, err := control.ListenMIDI(dec, port)
	if err != nil {
		log.Warn().Err(err).Str("surface", ms.Name).Msg("tunnelcore: midi listen failed, skipping")
		return
	}
	s.AddSource(listener)

	if outPort, err := control.FindOutPort(ms.PortSub); err == nil {
		if out, err := control.NewMIDIOutput(control.SurfaceID(ms.Name), outPort); err == nil {
			s.Mapper.RegisterSink(control.SurfaceID(ms.Name), out)
		}
	}
	log.Info().Str("surface", ms.Name).Msg("tunnelcore: midi surface online")
}

func wireOSCSurface(s *show.Show, oscSurf config.OSCSurface) {
	listener, err := control.ListenOSC(control.SurfaceID(oscSurf.Name), oscSurf.ListenAddr)
	if err != nil {
		log.Warn().Err(err).Str("surface", oscSurf.Name).Msg("tunnelcore: osc listen failed, skipping")
		return
	}
	s.AddSource(listener)

	if oscSurf.EchoAddr != "" {
		if out, err := control.NewOSCOutput(oscSurf.EchoAddr); err == nil {
			s.Mapper.RegisterSink(control.SurfaceID(oscSurf.Name), out)
		}
	}
	log.Info().Str("surface", oscSurf.Name).Str("listen", oscSurf.ListenAddr).Msg("tunnelcore: osc surface online")
}

func wireStreamDeckSurface(s *show.Show, sd config.StreamDeckSurface) {
	model := &streamdeck.ModelXL
	if sd.Model == "plus" {
		model = &streamdeck.ModelPlus
	}
	dev, err := streamdeck.OpenModel(model)
	if err != nil {
		log.Warn().Err(err).Str("surface", sd.Name).Msg("tunnelcore: stream deck not found, skipping")
		return
	}
	surface := control.NewStreamDeckSurface(control.SurfaceID(sd.Name), dev)
	s.AddSource(surface)
	s.Mapper.RegisterSink(control.SurfaceID(sd.Name), surface)
	log.Info().Str("surface", sd.Name).Msg("tunnelcore: stream deck surface online")
}
