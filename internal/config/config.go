package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/christopherklint97/billr/internal/catalog"
	"github.com/christopherklint97/billr/internal/invoice"
	"github.com/christopherklint97/billr/internal/teamwork"
	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the optional config file read from the working directory.
const DefaultPath = "billr.toml"

type Config struct {
	Teamwork      TeamworkConfig `toml:"teamwork"`
	Fetch         FetchConfig    `toml:"fetch"`
	Paths         PathsConfig    `toml:"paths"`
	Report        ReportConfig   `toml:"report"`
	Notifications NotifyConfig   `toml:"notifications"`
}

type TeamworkConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

type FetchConfig struct {
	PageSize      int `toml:"page_size"`
	MaxPageOffset int `toml:"max_page_offset"`
	MaxCalls      int `toml:"max_calls"`
	PauseSeconds  int `toml:"pause_seconds"`
}

type PathsConfig struct {
	Clients string `toml:"clients"`
	Output  string `toml:"output"`
}

type ReportConfig struct {
	Workbook bool `toml:"xlsx"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

func DefaultConfig() Config {
	limits := teamwork.DefaultLimits()
	return Config{
		Fetch: FetchConfig{
			PageSize:      limits.PageSize,
			MaxPageOffset: limits.MaxPageOffset,
			MaxCalls:      limits.MaxCalls,
			PauseSeconds:  int(limits.Pause / time.Second),
		},
		Paths: PathsConfig{
			Clients: catalog.DefaultPath,
			Output:  invoice.DefaultDir,
		},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides. Only the implicit DefaultPath may be missing; a path
// the user named must exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !(os.IsNotExist(err) && path == DefaultPath) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TEAMWORK_API_KEY"); v != "" {
		cfg.Teamwork.APIKey = v
	}
	if v := os.Getenv("TEAMWORK_BASE_URL"); v != "" {
		cfg.Teamwork.BaseURL = v
	}
	if v := os.Getenv("BILLR_CLIENTS_FILE"); v != "" {
		cfg.Paths.Clients = v
	}
	if v := os.Getenv("BILLR_OUTPUT_DIR"); v != "" {
		cfg.Paths.Output = v
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Teamwork.APIKey == "" {
		problems = append(problems, "TEAMWORK_API_KEY must be set")
	}
	if c.Fetch.PageSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid page_size %d: must be positive", c.Fetch.PageSize))
	}
	if c.Fetch.MaxPageOffset < 2 {
		problems = append(problems, fmt.Sprintf("invalid max_page_offset %d: must be at least 2", c.Fetch.MaxPageOffset))
	}
	if c.Fetch.MaxCalls < 1 {
		problems = append(problems, fmt.Sprintf("invalid max_calls %d: must be positive", c.Fetch.MaxCalls))
	}
	if c.Fetch.PauseSeconds < 1 {
		problems = append(problems, fmt.Sprintf("invalid pause_seconds %d: must be positive", c.Fetch.PauseSeconds))
	}
	if c.Paths.Clients == "" {
		problems = append(problems, "paths.clients must not be empty")
	}
	if c.Paths.Output == "" {
		problems = append(problems, "paths.output must not be empty")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Limits converts the fetch settings for the Teamwork client.
func (c *Config) Limits() teamwork.Limits {
	return teamwork.Limits{
		PageSize:      c.Fetch.PageSize,
		MaxPageOffset: c.Fetch.MaxPageOffset,
		MaxCalls:      c.Fetch.MaxCalls,
		Pause:         time.Duration(c.Fetch.PauseSeconds) * time.Second,
	}
}
