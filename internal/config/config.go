// Package config loads runtime settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/geocoin/geocoin/internal/game"
	"github.com/geocoin/geocoin/internal/storage"
	"github.com/geocoin/geocoin/internal/world"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FileEnv names the variable pointing at an optional YAML config file.
const FileEnv = "GEOCOIN_CONFIG"

// ErrInvalid marks a configuration that fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable. YAML keys and env vars set the same fields;
// env wins over the file, the file wins over Default.
type Config struct {
	TileSize        float64 `yaml:"tile_size" env:"GEOCOIN_TILE_SIZE"`
	Radius          int     `yaml:"radius" env:"GEOCOIN_RADIUS"`
	SpawnChance     float64 `yaml:"spawn_chance" env:"GEOCOIN_SPAWN_CHANCE"`
	MaxInitialCoins int     `yaml:"max_initial_coins" env:"GEOCOIN_MAX_INITIAL_COINS"`
	HomeLat         float64 `yaml:"home_lat" env:"GEOCOIN_HOME_LAT"`
	HomeLng         float64 `yaml:"home_lng" env:"GEOCOIN_HOME_LNG"`

	Storage  string `yaml:"storage" env:"GEOCOIN_STORAGE"`
	SavePath string `yaml:"save_path" env:"GEOCOIN_SAVE_PATH"`
	SaveKey  string `yaml:"save_key" env:"GEOCOIN_SAVE_KEY"`

	// Locale picks number formatting in the HUD (BCP 47).
	Locale string `yaml:"locale" env:"GEOCOIN_LOCALE"`

	// DeviceLocation ("lat,lng") stands in for geolocation on platforms
	// without it.
	DeviceLocation string `yaml:"device_location" env:"GEOCOIN_DEVICE_LOCATION"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		TileSize:        1e-4,
		Radius:          8,
		SpawnChance:     0.1,
		MaxInitialCoins: 100,
		HomeLat:         36.98949379578401,
		HomeLng:         -122.06277128548504,
		SavePath:        "geocoin-save.json",
		SaveKey:         "geocoin.save",
		Locale:          "en",
	}
}

// Load builds the config: defaults, then the YAML file named by
// GEOCOIN_CONFIG if set, then environment overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := strings.TrimSpace(os.Getenv(FileEnv)); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays environment variables onto cfg. Unset variables leave
// fields untouched.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"tile size":    c.TileSize,
		"spawn chance": c.SpawnChance,
		"home lat":     c.HomeLat,
		"home lng":     c.HomeLng,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalid, name, v)
		}
	}
	switch {
	case !(c.TileSize > 0):
		return fmt.Errorf("%w: tile size must be positive, got %v", ErrInvalid, c.TileSize)
	case c.Radius < 0:
		return fmt.Errorf("%w: radius must not be negative, got %d", ErrInvalid, c.Radius)
	case c.SpawnChance < 0 || c.SpawnChance > 1:
		return fmt.Errorf("%w: spawn chance must be within [0,1], got %v", ErrInvalid, c.SpawnChance)
	case c.MaxInitialCoins < 0:
		return fmt.Errorf("%w: max initial coins must not be negative, got %d", ErrInvalid, c.MaxInitialCoins)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("%w: locale %q: %v", ErrInvalid, c.Locale, err)
	}
	if _, _, err := c.Device(); err != nil {
		return err
	}
	return nil
}

// Rules converts the config into game rules.
func (c Config) Rules() game.Rules {
	return game.Rules{
		TileSize:        c.TileSize,
		Radius:          c.Radius,
		SpawnChance:     c.SpawnChance,
		MaxInitialCoins: c.MaxInitialCoins,
		Home:            world.LatLng{Lat: c.HomeLat, Lng: c.HomeLng},
	}
}

// StorageOptions selects the save backend.
func (c Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend: storage.Backend(c.Storage),
		Path:    c.SavePath,
		Key:     c.SaveKey,
	}
}

// Language returns the parsed locale, falling back to English.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Device parses DeviceLocation. ok is false when it is unset.
func (c Config) Device() (at world.LatLng, ok bool, err error) {
	raw := strings.TrimSpace(c.DeviceLocation)
	if raw == "" {
		return world.LatLng{}, false, nil
	}
	lat, lng, found := strings.Cut(raw, ",")
	if !found {
		return world.LatLng{}, false, fmt.Errorf("%w: device location %q is not lat,lng", ErrInvalid, raw)
	}
	at.Lat, err = strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err == nil {
		at.Lng, err = strconv.ParseFloat(strings.TrimSpace(lng), 64)
	}
	if err != nil {
		return world.LatLng{}, false, fmt.Errorf("%w: device location %q: %v", ErrInvalid, raw, err)
	}
	return at, true, nil
}
