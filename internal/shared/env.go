package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment keys read on top of the TOML configuration.
const (
	EnvSpotifyClientID     = "SPOTIPY_CLIENT_ID"
	EnvSpotifyClientSecret = "SPOTIPY_CLIENT_SECRET"
	EnvBackendURL          = "TUNETYPE_BACKEND_URL"
)

// LoadEnv loads dotenv files into the process environment without overriding variables that are already set.
//
// Missing files are skipped; with no paths, ".env" in the working directory is tried.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides credentials and the backend URL from environment variables when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSpotifyClientID); v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v := os.Getenv(EnvSpotifyClientSecret); v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.Backend.BaseURL = v
	}
}
