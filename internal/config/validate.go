package config

import (
	"fmt"
	"net/url"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Jellyfin validation
	if c.Jellyfin != nil {
		if c.Jellyfin.URL == "" {
			errs = append(errs, "jellyfin.url: required when jellyfin is configured")
		} else if _, err := url.ParseRequestURI(c.Jellyfin.URL); err != nil {
			errs = append(errs, fmt.Sprintf("jellyfin.url: invalid URL %q", c.Jellyfin.URL))
		}
		if c.Jellyfin.APIKey == "" {
			errs = append(errs, "jellyfin.api_key: required when jellyfin is configured")
		}
	}

	// Pushover validation
	if c.Pushover.APIURL != "" {
		if _, err := url.ParseRequestURI(c.Pushover.APIURL); err != nil {
			errs = append(errs, fmt.Sprintf("pushover.api_url: invalid URL %q", c.Pushover.APIURL))
		}
	}

	return errs
}
