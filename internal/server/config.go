package server

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/financing-simulator/internal/config"
	"github.com/iwvelando/financing-simulator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the simulator's HTTP server.
type Config struct {
	Address       string               `yaml:"address"`
	MaxUploadSize ByteSize             `yaml:"maxUploadSize"`
	Timeouts      Timeouts             `yaml:"timeouts"`
	Logging       config.LoggingConfig `yaml:"logging"`
}

// Timeouts are the http.Server limits. Zero values take the defaults.
type Timeouts struct {
	Read     time.Duration `yaml:"read"`
	Write    time.Duration `yaml:"write"`
	Idle     time.Duration `yaml:"idle"`
	Shutdown time.Duration `yaml:"shutdown"`
}

// ByteSize is an upload limit written as "256K", "10MB" or a plain number.
type ByteSize int64

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	size, err := ParseSize(node.Value)
	if err != nil {
		return err
	}
	*b = ByteSize(size)
	return nil
}

// Bytes returns the size as an int64.
func (b ByteSize) Bytes() int64 {
	return int64(b)
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:       constants.DefaultServerAddress,
		MaxUploadSize: ByteSize(constants.DefaultMaxUploadSizeBytes),
		Timeouts: Timeouts{
			Read:     constants.DefaultServerReadTimeout,
			Write:    constants.DefaultServerWriteTimeout,
			Idle:     constants.DefaultServerIdleTimeout,
			Shutdown: constants.DefaultServerShutdownTimeout,
		},
	}
}

// LoadConfig reads the server configuration from YAML. A missing file
// yields DefaultConfig without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	defaults := DefaultConfig()

	if strings.TrimSpace(c.Address) == "" {
		c.Address = defaults.Address
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = defaults.MaxUploadSize
	}

	limits := []struct {
		name     string
		value    *time.Duration
		fallback time.Duration
	}{
		{"read", &c.Timeouts.Read, defaults.Timeouts.Read},
		{"write", &c.Timeouts.Write, defaults.Timeouts.Write},
		{"idle", &c.Timeouts.Idle, defaults.Timeouts.Idle},
		{"shutdown", &c.Timeouts.Shutdown, defaults.Timeouts.Shutdown},
	}
	for _, limit := range limits {
		if *limit.value < 0 {
			return fmt.Errorf("%s timeout must not be negative, got %s", limit.name, *limit.value)
		}
		if *limit.value == 0 {
			*limit.value = limit.fallback
		}
	}
	return nil
}

// HTTPServer wraps handler in an http.Server using the configured address
// and timeouts.
func (c *Config) HTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              c.Address,
		Handler:           handler,
		ReadHeaderTimeout: c.Timeouts.Read,
		ReadTimeout:       c.Timeouts.Read,
		WriteTimeout:      c.Timeouts.Write,
		IdleTimeout:       c.Timeouts.Idle,
	}
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into
// bytes. An empty string is the default upload limit.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	split := strings.IndexFunc(trimmed, func(r rune) bool { return r < '0' || r > '9' })
	if split == -1 {
		split = len(trimmed)
	}
	digits, unit := trimmed[:split], strings.TrimSpace(trimmed[split:])
	if digits == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", unit)
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return n * multiplier, nil
}
