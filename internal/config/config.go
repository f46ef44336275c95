// Package config loads and validates the application configuration: MPD
// connection settings, behavior knobs, and the tab/layout tree that drives
// the UI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"cadenza/internal/layout"
	"cadenza/internal/panes"
)

// Config is the complete application configuration.
type Config struct {
	Address        string        `mapstructure:"address"`
	Password       string        `mapstructure:"password"`
	UpdateInterval time.Duration `mapstructure:"update_interval"`
	LogFile        string        `mapstructure:"log_file"`
	OnSongChange   string        `mapstructure:"on_song_change"`
	Artwork        ArtworkConfig `mapstructure:"artwork"`

	// Tabs is decoded separately; the recursive pane/split union does not
	// map cleanly through mapstructure.
	Tabs []Tab `mapstructure:"-"`
}

// ArtworkConfig selects how cover art is rendered.
type ArtworkConfig struct {
	Method string `mapstructure:"method"` // "halfblock" or "none"
}

// Tab is one named screen: a border policy and a layout tree whose leaves
// name pane types.
type Tab struct {
	Name   string
	Border layout.Border
	Root   layout.Node
}

// Load reads the configuration, applying defaults, the YAML file (explicit
// path, else the user config dir), and CADENZA_* environment overrides, then
// validates the result. Validation failures are startup-fatal and name the
// offending tab or node.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("cadenza")
	v.AutomaticEnv()

	v.SetDefault("address", "127.0.0.1:6600")
	v.SetDefault("update_interval", "1s")
	v.SetDefault("artwork.method", "halfblock")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "cadenza"))
		}
		if err := v.ReadInConfig(); err != nil {
			// no config file is fine, defaults apply
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	tabs, err := decodeTabs(v.Get("tabs"))
	if err != nil {
		return nil, err
	}
	if len(tabs) == 0 {
		tabs = DefaultTabs()
	}
	cfg.Tabs = tabs

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.UpdateInterval <= 0 {
		return fmt.Errorf("update_interval must be positive, got %s", c.UpdateInterval)
	}
	seen := make(map[string]bool, len(c.Tabs))
	for _, t := range c.Tabs {
		if t.Name == "" {
			return fmt.Errorf("tab with empty name")
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate tab name %q", t.Name)
		}
		seen[t.Name] = true
		if err := layout.Validate(t.Root, panes.Known); err != nil {
			return fmt.Errorf("tab %q: %w", t.Name, err)
		}
	}
	return nil
}

// DefaultTabs is the out-of-the-box screen set, mirroring a typical player
// arrangement: queue with cover art, library browsers, search, and logs.
func DefaultTabs() []Tab {
	return []Tab{
		{
			Name:   "Queue",
			Border: layout.BorderFull,
			Root: layout.SplitNode(layout.Horizontal,
				layout.Child{Weight: 30, Node: layout.PaneNode(string(panes.TypeAlbumArt))},
				layout.Child{Weight: 70, Node: layout.PaneNode(string(panes.TypeQueue))},
			),
		},
		{
			Name:   "Library",
			Border: layout.BorderSingle,
			Root: layout.SplitNode(layout.Horizontal,
				layout.Child{Weight: 50, Node: layout.PaneNode(string(panes.TypeArtists))},
				layout.Child{Weight: 50, Node: layout.PaneNode(string(panes.TypeAlbums))},
			),
		},
		{
			Name:   "Directories",
			Border: layout.BorderNone,
			Root:   layout.PaneNode(string(panes.TypeDirectories)),
		},
		{
			Name:   "Playlists",
			Border: layout.BorderNone,
			Root:   layout.PaneNode(string(panes.TypePlaylists)),
		},
		{
			Name:   "Search",
			Border: layout.BorderNone,
			Root:   layout.PaneNode(string(panes.TypeSearch)),
		},
		{
			Name:   "Logs",
			Border: layout.BorderNone,
			Root:   layout.PaneNode(string(panes.TypeLogs)),
		},
	}
}
