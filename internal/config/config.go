package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type PlayerConfig struct {
	Name string `toml:"name"`
	X    int    `toml:"x"`
	Y    int    `toml:"y"`
	Z    int    `toml:"z"`
}

type Config struct {
	WorldName    string         `toml:"world_name"`
	Seed         int64          `toml:"seed"`
	WorldHeight  int            `toml:"world_height"`
	GroundY      int            `toml:"ground_y"`
	Catalog      string         `toml:"catalog"`
	Database     string         `toml:"database"`
	AssetsDir    string         `toml:"assets_dir"`
	LogLevel     string         `toml:"log_level"`
	Admins       []string       `toml:"admins"`
	Players      []PlayerConfig `toml:"players"`
	ForestSize   int            `toml:"forest_size"`
	ForestRadius int            `toml:"forest_radius"`
}

func Default() Config {
	return Config{
		WorldName:    "overworld",
		Seed:         1337,
		WorldHeight:  128,
		GroundY:      64,
		Database:     defaultDatabasePath(),
		AssetsDir:    "assets",
		LogLevel:     "info",
		ForestSize:   16,
		ForestRadius: 16,
	}
}

// Load overlays the keys present in the TOML file at path onto Default().
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("world_name") {
		if name := strings.TrimSpace(raw.WorldName); name != "" {
			cfg.WorldName = name
		}
	}
	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}
	if meta.IsDefined("world_height") {
		cfg.WorldHeight = raw.WorldHeight
	}
	if meta.IsDefined("ground_y") {
		cfg.GroundY = raw.GroundY
	}
	if meta.IsDefined("catalog") {
		cfg.Catalog = resolveRelative(path, raw.Catalog)
	}
	if meta.IsDefined("database") {
		cfg.Database = resolveRelative(path, raw.Database)
	}
	if meta.IsDefined("assets_dir") {
		cfg.AssetsDir = resolveRelative(path, raw.AssetsDir)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}
	if meta.IsDefined("admins") {
		cfg.Admins = normalizeNames(raw.Admins)
	}
	if meta.IsDefined("players") {
		cfg.Players = raw.Players
	}
	if meta.IsDefined("forest_size") {
		cfg.ForestSize = raw.ForestSize
	}
	if meta.IsDefined("forest_radius") {
		cfg.ForestRadius = raw.ForestRadius
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.WorldHeight < 8 || c.WorldHeight > 1024 {
		return fmt.Errorf("world_height must be between 8 and 1024, got %d", c.WorldHeight)
	}
	if c.GroundY < 1 || c.GroundY >= c.WorldHeight {
		return fmt.Errorf("ground_y must be between 1 and world_height-1, got %d", c.GroundY)
	}
	if c.ForestSize < 1 {
		return fmt.Errorf("forest_size must be positive, got %d", c.ForestSize)
	}
	if c.ForestRadius < 1 {
		return fmt.Errorf("forest_radius must be positive, got %d", c.ForestRadius)
	}
	for _, p := range c.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("player with empty name")
		}
	}
	return nil
}

// IsAdmin reports whether name is listed in admins, ignoring case.
func (c Config) IsAdmin(name string) bool {
	for _, a := range c.Admins {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

// Save writes cfg to path atomically.
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	cleanup = false
	return nil
}

func resolveRelative(configPath, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
