package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"

	"github.com/llehouerou/scrobblr/internal/scrobble"
)

const appName = "scrobblr"

// Player names accepted in players.monitored.
const (
	PlayerMPV   = "mpv"
	PlayerVLC   = "vlc"
	PlayerMPRIS = "mpris"
)

var knownPlayers = []string{PlayerMPV, PlayerVLC, PlayerMPRIS}

type Config struct {
	Players PlayersConfig `koanf:"players"`

	// Media identification
	Resolver ResolverConfig `koanf:"resolver"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Notifications NotificationsConfig `koanf:"notifications"`

	Log LogConfig `koanf:"log"`
}

// PlayersConfig selects and configures the monitored players.
type PlayersConfig struct {
	Monitored    []string    `koanf:"monitored"`     // default: ["mpv", "vlc"]
	SkipInterval *float64    `koanf:"skip_interval"` // progress jump in percent reported as a seek (default: 5)
	MPV          MPVConfig   `koanf:"mpv"`
	VLC          VLCConfig   `koanf:"vlc"`
	MPRIS        MPRISConfig `koanf:"mpris"`
}

// MPVConfig holds the mpv JSON IPC settings.
type MPVConfig struct {
	IPCPath      string `koanf:"ipc_path"`      // --input-ipc-server socket (default: /tmp/mpvsocket)
	PollInterval int    `koanf:"poll_interval"` // seconds (default: 10)
}

// VLCConfig holds the VLC web interface settings.
type VLCConfig struct {
	URL          string `koanf:"url"`      // e.g., "http://localhost:8080"
	Password     string `koanf:"password"` // web interface password
	PollInterval int    `koanf:"poll_interval"`
}

// MPRISConfig lists the MPRIS players to watch (Linux only).
type MPRISConfig struct {
	Names        []string `koanf:"names"` // bus name suffixes, e.g. "celluloid"
	PollInterval int      `koanf:"poll_interval"`
}

// ResolverConfig controls how files are identified.
type ResolverConfig struct {
	Whitelist    []string `koanf:"whitelist"`      // only files under these folders are scrobbled (empty: all)
	UseTags      *bool    `koanf:"use_tags"`       // read container tags before parsing file names (default: true)
	Cache        *bool    `koanf:"cache"`          // remember resolutions in the database (default: true)
	CacheTTLDays int      `koanf:"cache_ttl_days"` // default: 30
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey      string  `koanf:"api_key"`
	APISecret   string  `koanf:"api_secret"`
	MinProgress float64 `koanf:"min_progress"` // percent watched for a stop to count as a scrobble (default: 80)
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `koanf:"level"` // trace, debug, info, warn, error (default: info)
	File  string `koanf:"file"`  // log to this file instead of stderr
	JSON  bool   `koanf:"json"`
}

// Load reads the config files in order of priority (last wins). extra
// files, typically from --config, come last and must exist.
func Load(extra ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	for _, path := range lo.Compact(extra) {
		path = expandPath(path)
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if len(cfg.Players.Monitored) == 0 {
		cfg.Players.Monitored = []string{PlayerMPV, PlayerVLC}
	}
	cfg.Players.Monitored = lo.Uniq(lo.Map(cfg.Players.Monitored, func(name string, _ int) string {
		return strings.ToLower(strings.TrimSpace(name))
	}))
	if unknown := lo.Without(cfg.Players.Monitored, knownPlayers...); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown players in players.monitored: %s", strings.Join(unknown, ", "))
	}

	// Expand ~ in paths
	cfg.Players.MPV.IPCPath = expandPath(cfg.Players.MPV.IPCPath)
	cfg.Resolver.Whitelist = lo.Map(cfg.Resolver.Whitelist, func(dir string, _ int) string {
		return expandPath(dir)
	})
	cfg.Log.File = expandPath(cfg.Log.File)

	// Normalize VLC URL (remove trailing slash)
	cfg.Players.VLC.URL = strings.TrimSuffix(cfg.Players.VLC.URL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/scrobblr/config.toml
	xdgPath := DefaultPath()
	paths = append(paths, xdgPath)

	// 2. ~/.config/scrobblr/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		if p := filepath.Join(home, ".config", appName, "config.toml"); p != xdgPath {
			paths = append(paths, p)
		}
	}

	// 3. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// DefaultPath returns the preferred location of the config file.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// SearchPaths returns every file Load reads, in order, with extra last.
func SearchPaths(extra ...string) []string {
	return append(getConfigPaths(), lo.Map(lo.Compact(extra), func(p string, _ int) string {
		return expandPath(p)
	})...)
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// IsMonitored returns true if the named player is in players.monitored.
func (c *Config) IsMonitored(name string) bool {
	return lo.Contains(c.Players.Monitored, name)
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// SkipInterval returns the seek detection threshold in percent.
func (c *Config) SkipInterval() float64 {
	if c.Players.SkipInterval == nil || *c.Players.SkipInterval < 0 {
		return scrobble.DefaultSkipInterval
	}
	return *c.Players.SkipInterval
}

// GetMPVConfig returns the mpv configuration with defaults applied.
func (c *Config) GetMPVConfig() MPVConfig {
	cfg := c.Players.MPV
	if cfg.IPCPath == "" {
		cfg.IPCPath = "/tmp/mpvsocket"
	}
	cfg.PollInterval = pollIntervalOrDefault(cfg.PollInterval)
	return cfg
}

// GetVLCConfig returns the VLC configuration with defaults applied.
func (c *Config) GetVLCConfig() VLCConfig {
	cfg := c.Players.VLC
	if cfg.URL == "" {
		cfg.URL = "http://localhost:8080"
	}
	cfg.PollInterval = pollIntervalOrDefault(cfg.PollInterval)
	return cfg
}

// GetMPRISConfig returns the MPRIS configuration with defaults applied.
func (c *Config) GetMPRISConfig() MPRISConfig {
	cfg := c.Players.MPRIS
	cfg.Names = lo.Uniq(lo.Compact(cfg.Names))
	if len(cfg.Names) == 0 {
		cfg.Names = []string{"celluloid", "haruna", "smplayer"}
	}
	cfg.PollInterval = pollIntervalOrDefault(cfg.PollInterval)
	return cfg
}

// GetResolverConfig returns the resolver configuration with defaults applied.
func (c *Config) GetResolverConfig() ResolverConfig {
	cfg := c.Resolver
	if cfg.UseTags == nil {
		cfg.UseTags = lo.ToPtr(true)
	}
	if cfg.Cache == nil {
		cfg.Cache = lo.ToPtr(true)
	}
	if cfg.CacheTTLDays <= 0 {
		cfg.CacheTTLDays = 30
	}
	return cfg
}

// GetLastfmConfig returns the Last.fm configuration with defaults applied.
func (c *Config) GetLastfmConfig() LastfmConfig {
	cfg := c.Lastfm
	if cfg.MinProgress <= 0 || cfg.MinProgress > 100 {
		cfg.MinProgress = 80
	}
	return cfg
}

// NotificationsEnabled returns true unless notifications are disabled.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications.Enabled == nil || *c.Notifications.Enabled
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

func pollIntervalOrDefault(seconds int) int {
	if seconds <= 0 {
		return 10
	}
	return seconds
}
