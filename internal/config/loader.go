package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if WISHFORGE_CONFIG is set
//  3. env (prefix WISHFORGE_)
//
// Credentials and tier policy are validated here, before any processing
// starts; a failure aborts the run with no partial output.
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("WISHFORGE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: WISHFORGE_BUNGIE_API_KEY, WISHFORGE_OUTPUT_PATH, ...
	// Map env keys like WISHFORGE_OUTPUT_PATH -> output_path (flat keys).
	envProvider := env.Provider("WISHFORGE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "wishforge_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BungieAPIKey == "" {
		return fmt.Errorf("%w: bungie_api_key", ErrMissingCredential)
	}
	if c.WorkbookPath == "" {
		if c.SheetsAPIKey == "" {
			return fmt.Errorf("%w: sheets_api_key", ErrMissingCredential)
		}
		if c.SpreadsheetID == "" {
			return wrapInvalid(fmt.Errorf("spreadsheet_id must not be empty"))
		}
	}
	if c.OutputPath == "" {
		return wrapInvalid(fmt.Errorf("output_path must not be empty"))
	}
	if c.RequestsPerSecond <= 0 {
		return wrapInvalid(fmt.Errorf("requests_per_second must be positive"))
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}
