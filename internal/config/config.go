package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"fotos/internal/models"
)

const (
	// DefaultLogLevel is used when no level is configured anywhere.
	DefaultLogLevel = "info"

	// JPEG encode quality tiers. Targets below DefaultSmallMaxWidth tolerate
	// more compression; quality must not decrease as target size increases.
	DefaultQualitySmall  = 80
	DefaultQualityLarge  = 90
	DefaultSmallMaxWidth = 500

	configFileName = ".fotos.toml"

	configDirEnvKey = "FOTOS_CONFIG_DIR"
	dataDirEnvKey   = "FOTOS_DATA_DIR"
)

// VariantConfig defines the derivative-generation policy.
type VariantConfig struct {
	Widths        []int `toml:"widths"`
	QualitySmall  int   `toml:"quality_small"`
	QualityLarge  int   `toml:"quality_large"`
	SmallMaxWidth int   `toml:"small_max_width"`
}

// Config defines runtime configuration for fotos.
type Config struct {
	DataDir  string        `toml:"data_dir"`
	LogLevel string        `toml:"log_level"`
	Variants VariantConfig `toml:"variants"`
}

// Default returns default configuration values. DataDir is left empty and
// resolved lazily so tests and env overrides can redirect it.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Variants: VariantConfig{
			Widths:        append([]int(nil), models.DefaultVariantWidths...),
			QualitySmall:  DefaultQualitySmall,
			QualityLarge:  DefaultQualityLarge,
			SmallMaxWidth: DefaultSmallMaxWidth,
		},
	}
}

// Load reads the config file (if present), applies env overrides, and
// validates the result.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	if err := loadFileIfExists(path, &cfg); err != nil {
		return nil, err
	}

	if dir := strings.TrimSpace(os.Getenv(dataDirEnvKey)); dir != "" {
		cfg.DataDir = dir
	}
	if cfg.DataDir == "" {
		cfg.DataDir, err = defaultDataDir()
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configured values for consistency.
func (c *Config) Validate() error {
	if len(c.Variants.Widths) == 0 {
		return fmt.Errorf("variants.widths must not be empty")
	}
	for _, w := range c.Variants.Widths {
		if w <= 0 {
			return fmt.Errorf("variants.widths entries must be positive, got %d", w)
		}
	}
	if c.Variants.QualitySmall < 1 || c.Variants.QualitySmall > 100 {
		return fmt.Errorf("variants.quality_small must be in 1..100")
	}
	if c.Variants.QualityLarge < 1 || c.Variants.QualityLarge > 100 {
		return fmt.Errorf("variants.quality_large must be in 1..100")
	}
	if c.Variants.QualitySmall > c.Variants.QualityLarge {
		return fmt.Errorf("variants.quality_small must not exceed quality_large")
	}
	if c.Variants.SmallMaxWidth <= 0 {
		return fmt.Errorf("variants.small_max_width must be positive")
	}
	return nil
}

// DBPath returns the SQLite database path under the data dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "fotos.db")
}

// BlobDir returns the blob store root under the data dir.
func (c *Config) BlobDir() string {
	return filepath.Join(c.DataDir, "blobs")
}

// Path returns the config file path, honoring the FOTOS_CONFIG_DIR override.
func Path() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

func defaultDataDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "fotos"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "fotos"), nil
}

func loadFileIfExists(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}
