package config

import (
	"fmt"
	"strings"
	"time"
)

// NATSConfig configures the optional JetStream event publisher.
// When Enabled is false the service runs without a broker and catalog
// events are not emitted.
type NATSConfig struct {
	Enabled bool          `koanf:"enabled"`
	Url     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the NATS configuration.
func (c *NATSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- NATS ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  url: %s\n", c.Url))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *NATSConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Url == "" {
		return fmt.Errorf("NATS is enabled but URL is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("NATS is enabled but dial timeout is not configured")
	}
	return nil
}
