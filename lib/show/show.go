// Package show ties the tick-driven subsystems — MasterClock, Mixer,
// ControlMapper and Publisher — into one owned aggregate and runs the
// fixed-rate tick loop described in §5. There is no process-wide
// singleton: callers construct a Show and call Run against it, the same
// explicit-ownership shape the design notes call for (§9).
package show

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tunnelcore/lib/clock"
	"tunnelcore/lib/control"
	"tunnelcore/lib/mixer"
	"tunnelcore/lib/publish"
	"tunnelcore/lib/scene"
	"tunnelcore/lib/wire"
)

// EventSource is anything the tick loop drains controller events from —
// MIDI decoders' channels, control.OSCListener, control.StreamDeckSurface
// — so Run doesn't need to know the concrete surface types in play.
type EventSource interface {
	Events() <-chan control.Event
}

// Show is the running aggregate: one MasterClock, one Mixer, one
// ControlMapper and one FramePublisher, plus whatever control surfaces
// feed it events.
type Show struct {
	Clock     *clock.MasterClock
	Mixer     *mixer.Mixer
	Mapper    *control.Mapper
	Publisher *publish.Publisher
	Palette   *scene.Palette

	sources []EventSource

	tickInterval time.Duration
	frameNumber  uint32

	autosavePath string
	autosaveEvery time.Duration
}

// New builds a Show with n mixer layers, a fresh MasterClock, and a
// Mapper bound to that mixer and the given binding table.
func New(numLayers int, table *control.Table, pub *publish.Publisher) *Show {
	m := mixer.New(numLayers)
	mc := clock.NewMasterClock()
	mapper := control.NewMapper(m, table)
	mapper.OnClockTap(func(idx int) {
		if idx == 0 {
			mc.Primary.Tap(time.Now())
			return
		}
		if ci, err := clock.ParseClockIdx(idx - 1); err == nil {
			mc.Aux(ci).Tap(time.Now())
		}
	})
	mapper.OnClockNudge(func(idx int) {
		if idx == 0 {
			mc.Primary.Nudge()
			return
		}
		if ci, err := clock.ParseClockIdx(idx - 1); err == nil {
			mc.Aux(ci).Nudge()
		}
	})
	return &Show{
		Clock:         mc,
		Mixer:         m,
		Mapper:        mapper,
		Publisher:     pub,
		Palette:       scene.NewPalette(),
		tickInterval:  time.Second / 60,
		autosaveEvery: 60 * time.Second,
	}
}

// AddSource registers a controller event source the tick loop drains
// every tick, before advancing beams or rendering.
func (s *Show) AddSource(src EventSource) {
	s.sources = append(s.sources, src)
}

// SetTickRate overrides the default 60Hz tick interval.
func (s *Show) SetTickRate(hz int) {
	if hz > 0 {
		s.tickInterval = time.Second / time.Duration(hz)
	}
}

// SetAutosave configures periodic snapshot export to path, or disables it
// when path is empty.
func (s *Show) SetAutosave(path string, every time.Duration) {
	s.autosavePath = path
	if every > 0 {
		s.autosaveEvery = every
	}
}

// Run drives the fixed-rate tick loop until ctx is cancelled, per §5:
// each tick drains pending control events within a time budget, advances
// the clocks and beam animation state, renders every channel, and
// publishes the resulting wire frames. Shutdown is checked at the top of
// every tick, matching the original's cooperative-cancellation shape.
func (s *Show) Run(ctx context.Context, numChannels int) error {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	lastAutosave := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tickTime := <-ticker.C:
			s.tick(tickTime, numChannels)

			if s.autosavePath != "" && time.Since(lastAutosave) >= s.autosaveEvery {
				if err := s.Save(s.autosavePath); err != nil {
					log.Warn().Err(err).Str("path", s.autosavePath).Msg("show: autosave failed, continuing")
				}
				lastAutosave = tickTime
			}
		}
	}
}

// tick performs one fixed-rate step: drain control events within 80% of
// the tick budget (leaving headroom for render+publish, per §5's
// time-budgeted drain), advance clocks and beams, then render and
// publish every channel.
func (s *Show) tick(now time.Time, numChannels int) {
	budget := time.Duration(float64(s.tickInterval) * 0.8)
	deadline := now.Add(budget)
	s.drainEvents(deadline)

	s.Clock.Advance(s.tickInterval)
	s.Mixer.Advance(s.tickInterval)
	s.Mixer.AdvanceBeams(s.tickInterval.Seconds()*s.Clock.Primary.BPM()/60.0, s.Clock.Primary.BeatTime())

	frameNum := s.frameNumber
	for ch := 0; ch < numChannels; ch++ {
		frame := s.Mixer.Render(ch, s.Clock.Primary.BeatTime())
		wf := wire.FromMixerFrame(frameNum, now.UnixMilli(), frame)
		data, err := wf.Marshal()
		if err != nil {
			log.Warn().Err(err).Msg("show: frame marshal failed, dropping")
			continue
		}
		s.Publisher.Publish(ch, data)
	}
	s.frameNumber++
}

// drainEvents pulls pending events from every registered source until
// none remain ready or deadline passes, whichever comes first — a
// lagging surface never stalls the tick past its time budget.
func (s *Show) drainEvents(deadline time.Time) {
	for time.Now().Before(deadline) {
		drained := false
		for _, src := range s.sources {
			select {
			case ev, ok := <-src.Events():
				if !ok {
					continue
				}
				s.Mapper.Handle(ev)
				drained = true
			default:
			}
		}
		if !drained {
			return
		}
	}
}
