// Package config loads tunnelcore's YAML configuration, in the same
// load/override-flags shape the ledcube example uses for its own
// config.yaml.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type MIDISurface struct {
	Name    string `yaml:"name"`
	PortSub string `yaml:"port_sub"` // substring match against available MIDI port names
}

type OSCSurface struct {
	Name      string `yaml:"name"`
	ListenAddr string `yaml:"listen_addr"`
	EchoAddr  string `yaml:"echo_addr"`
}

type StreamDeckSurface struct {
	Name  string `yaml:"name"`
	Model string `yaml:"model"` // "xl" | "plus"
}

type Config struct {
	TickHz       int    `yaml:"tick_hz"`
	PublishAddr  string `yaml:"publish_addr"`
	NumLayers    int    `yaml:"num_layers"`
	NumChannels  int    `yaml:"num_channels"`
	AutosavePath string `yaml:"autosave_path"`
	AutosaveSec  int    `yaml:"autosave_sec"`

	MIDISurfaces       []MIDISurface       `yaml:"midi_surfaces"`
	OSCSurfaces        []OSCSurface        `yaml:"osc_surfaces"`
	StreamDeckSurfaces []StreamDeckSurface `yaml:"streamdeck_surfaces"`
}

// Defaults returns the configuration tunnelcore runs with when no
// config.yaml is found, mirroring §4/§5's nominal tick rate and layer
// count.
func Defaults() *Config {
	return &Config{
		TickHz:      60,
		PublishAddr: ":6000",
		NumLayers:   16,
		NumChannels: 1,
		AutosaveSec: 60,
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Defaults()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
