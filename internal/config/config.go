// Package config loads the site-wide build configuration. The configuration
// is read once at startup and passed by value into every component that
// needs it; there is no process-wide mutable state.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	siteerrors "github.com/axvr/axvr.uk/internal/errors"
)

// Config is the immutable build configuration.
type Config struct {
	// Site holds the arbitrary key/value settings (site name, author, ...)
	// merged into every page's placeholder lookup.
	Site map[string]any `yaml:"site"`

	// Source is the root of the page descriptor tree.
	Source string `yaml:"source"`
	// Output is the destination directory; its contents are wiped per build.
	Output string `yaml:"output"`
	// Template is the path to the master template file.
	Template string `yaml:"template"`
	// Workers caps how many pages build in parallel. Values <1 default to 4.
	Workers int `yaml:"workers,omitempty"`
}

// Load reads configuration from the specified file, expanding ${VAR}
// references from the environment (with .env/.env.local honoured first).
func Load(configPath string) (*Config, error) {
	// Load .env files if present; absence is not an error.
	_ = godotenv.Load(".env", ".env.local")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, siteerrors.ConfigLoadFailure(configPath, err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, siteerrors.ConfigLoadFailure(configPath, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = "pages"
	}
	if c.Output == "" {
		c.Output = "dist"
	}
	if c.Template == "" {
		c.Template = "template.html"
	}
	if c.Workers < 1 {
		c.Workers = 4
	}
	if c.Site == nil {
		c.Site = map[string]any{}
	}
}

// SiteName returns the configured site name, or an empty string.
func (c *Config) SiteName() string {
	if v, ok := c.Site["name"]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := `# Site generator configuration.
site:
  name: Example Site
  author: A. Author

# Directory of page descriptors (.edn documents).
source: pages

# Output directory; contents are wiped before every build.
output: dist

# Master template containing {{ placeholder }} markers.
template: template.html

# Pages rendered in parallel.
workers: 4
`
	if err := os.WriteFile(configPath, []byte(example), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
