package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Cloudsky01/gh-timeline/internal/paths"
)

const (
	TransportCLI  = "cli"
	TransportREST = "rest"

	DefaultWidth     = 120
	DefaultLimit     = 10
	DefaultTimeout   = 30 * time.Second
	DefaultTransport = TransportCLI

	EnvPrefix = "TIMELINE"
)

var transports = []string{TransportCLI, TransportREST}

type Config struct {
	Repository string `yaml:"repository,omitempty" mapstructure:"repository"`
	Width      int    `yaml:"width" mapstructure:"width"`
	Limit      int    `yaml:"limit" mapstructure:"limit"`
	// Timeout bounds each API request, e.g. "30s"
	Timeout   string `yaml:"timeout" mapstructure:"timeout"`
	Transport string `yaml:"transport" mapstructure:"transport"`

	sources []string
}

// Default returns the configuration used when no file or environment
// variable sets a value.
func Default() *Config {
	return &Config{
		Width:     DefaultWidth,
		Limit:     DefaultLimit,
		Timeout:   DefaultTimeout.String(),
		Transport: DefaultTransport,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	d := Default()
	v.SetDefault("repository", "")
	v.SetDefault("width", d.Width)
	v.SetDefault("limit", d.Limit)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("transport", d.Transport)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	return v
}

// Load merges, lowest priority first, the defaults, every existing config
// file p knows about, the file at explicitPath and TIMELINE_* environment
// variables. explicitPath must exist when given; p may be nil.
func Load(p *paths.Paths, explicitPath string) (*Config, error) {
	v := newViper()

	var sources []string
	if p != nil {
		for _, path := range p.GetConfigPaths() {
			if err := mergeFile(v, path); err != nil {
				return nil, err
			}
			sources = append(sources, path)
		}
	}

	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := mergeFile(v, explicitPath); err != nil {
			return nil, err
		}
		sources = append(sources, explicitPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.sources = sources

	return &cfg, nil
}

// LoadFromPath reads a single config file on top of the defaults.
func LoadFromPath(path string) (*Config, error) {
	return Load(nil, path)
}

func mergeFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Sources lists the files that contributed to the config, lowest priority
// first.
func (c *Config) Sources() []string {
	return c.sources
}

func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

func (c *Config) Validate() error {
	if c.Width < 40 {
		return fmt.Errorf("width must be at least 40, got %d", c.Width)
	}
	if c.Limit < 1 || c.Limit > 100 {
		return fmt.Errorf("limit must be between 1 and 100, got %d", c.Limit)
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if !slices.Contains(transports, c.Transport) {
		return fmt.Errorf("unknown transport %q (expected one of %s)", c.Transport, strings.Join(transports, ", "))
	}
	return nil
}

// Save writes the config as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# Timeline Configuration
#
# - repository: GitHub repository in owner/repo format (detected from git when empty)
# - width: width of report rules in characters
# - limit: number of runs fetched for --list and --history
# - timeout: per-request timeout, e.g. 30s
# - transport: "cli" to call through gh, "rest" to use the REST API directly
#
# Every key can be overridden with a TIMELINE_<KEY> environment variable.

`
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(header+string(data)), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
