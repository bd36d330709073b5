package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the contents of config.toml. Command-line flags override it.
//
//	[tree]
//	category = "word"
//	style = "outlined"
//
//	[layout]
//	width = 1024
//	height = 768
//
//	[server]
//	addr = ":9000"
//	session_ttl = "1h"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
type Config struct {
	Tree   TreeConfig   `toml:"tree"`
	Layout LayoutConfig `toml:"layout"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// TreeConfig holds defaults for building and drawing trees.
type TreeConfig struct {
	Category string `toml:"category"`
	Style    string `toml:"style"`
}

// LayoutConfig holds the default drawing frame.
type LayoutConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Radius float64 `toml:"radius"`
	Gap    float64 `toml:"gap"`
	Margin float64 `toml:"margin"`
}

// ServerConfig configures `bstviz serve`.
type ServerConfig struct {
	Addr        string        `toml:"addr"`
	SessionTTL  time.Duration `toml:"session_ttl"`
	MaxSessions int           `toml:"max_sessions"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	TTL           time.Duration `toml:"ttl"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	RedisPrefix   string        `toml:"redis_prefix"`
}

func defaultConfig() Config {
	return Config{
		Tree: TreeConfig{
			Category: pipeline.DefaultCategory,
			Style:    pipeline.DefaultStyle,
		},
		Layout: LayoutConfig{
			Width:  pipeline.DefaultWidth,
			Height: pipeline.DefaultHeight,
			Radius: pipeline.DefaultRadius,
		},
		Server: ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend:     backendFile,
			RedisPrefix: appName + ":",
		},
	}
}

// loadConfig reads the config file at path. With an empty path the default
// location is tried and a missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	switch cfg.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return cfg, fmt.Errorf("load config %s: unknown cache backend %q (must be file, redis or none)", path, cfg.Cache.Backend)
	}
	return cfg, nil
}

// apply fills options the user left unset from the config.
func (cfg Config) apply(opts *pipeline.Options) {
	if opts.Category == "" {
		opts.Category = cfg.Tree.Category
	}
	if opts.Style == "" {
		opts.Style = cfg.Tree.Style
	}
	if opts.Width == 0 {
		opts.Width = cfg.Layout.Width
	}
	if opts.Height == 0 {
		opts.Height = cfg.Layout.Height
	}
	if opts.Radius == 0 {
		opts.Radius = cfg.Layout.Radius
	}
	if opts.Gap == 0 {
		opts.Gap = cfg.Layout.Gap
	}
	if opts.MarginX == 0 {
		opts.MarginX = cfg.Layout.Margin
	}
}

// configPath returns the config file location using the XDG standard
// (~/.config/bstviz/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory using the XDG standard (~/.cache/bstviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
