package shared

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	CatalogBackend = "backend"
	CatalogSpotify = "spotify"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Backend     BackendConfig     `toml:"backend"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Credentials CredentialsConfig `toml:"credentials"`
	Preview     PreviewConfig     `toml:"preview"`
	UI          UIConfig          `toml:"ui"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
}

// BackendConfig locates the search/classification service.
type BackendConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// CatalogConfig selects where search results come from.
type CatalogConfig struct {
	Source      string `toml:"source"`
	Market      string `toml:"market"`
	SearchLimit int    `toml:"search_limit"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify client credentials (no user authorization is needed).
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// PreviewConfig drives preview URL lookup and local playback.
type PreviewConfig struct {
	LookupURL              string   `toml:"lookup_url"`
	RequestsPerMinute      float64  `toml:"requests_per_minute"`
	DefaultDurationSeconds int      `toml:"default_duration_seconds"`
	Player                 string   `toml:"player"`
	PlayerArgs             []string `toml:"player_args"`
	ProbeMaxBytes          int64    `toml:"probe_max_bytes"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	FrameIntervalMS int  `toml:"frame_interval_ms"`
	AlbumArtOffset  int  `toml:"album_art_offset"`
	OpenBrowser     bool `toml:"open_browser"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the local result page server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoggingConfig contains log level and the TUI log file.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads a TOML file from path over the embedded defaults and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting, wrapped with [ErrInvalidConfig].
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case CatalogBackend:
		if c.Backend.BaseURL == "" {
			return fmt.Errorf("%w: backend.base_url is required for the backend catalog", ErrInvalidConfig)
		}
	case CatalogSpotify:
	default:
		return fmt.Errorf("%w: unknown catalog source %q", ErrInvalidConfig, c.Catalog.Source)
	}

	if c.UI.FrameIntervalMS <= 0 {
		return fmt.Errorf("%w: ui.frame_interval_ms must be positive", ErrInvalidConfig)
	}
	if c.UI.AlbumArtOffset < 0 {
		return fmt.Errorf("%w: ui.album_art_offset cannot be negative", ErrInvalidConfig)
	}
	if c.Preview.DefaultDurationSeconds <= 0 {
		return fmt.Errorf("%w: preview.default_duration_seconds must be positive", ErrInvalidConfig)
	}
	if c.Preview.RequestsPerMinute < 0 {
		return fmt.Errorf("%w: preview.requests_per_minute cannot be negative", ErrInvalidConfig)
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: backend.timeout_seconds cannot be negative", ErrInvalidConfig)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: invalid log level %q (must be debug, info, warn, or error)", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

// FrameInterval is the tick cadence of the progress animation.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.UI.FrameIntervalMS) * time.Millisecond
}

// DefaultPreviewDuration is the duration assumed before preview metadata arrives.
func (c *Config) DefaultPreviewDuration() time.Duration {
	return time.Duration(c.Preview.DefaultDurationSeconds) * time.Second
}

// BackendTimeout is the HTTP client timeout for backend calls; zero means none.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// ServerAddr returns host:port for the result page server.
func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
