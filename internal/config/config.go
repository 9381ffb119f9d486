// Package config defines run configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/carver/wishforge/internal/domain/model"
)

// Config contains process configuration for one wishlist run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// BungieAPIKey authenticates catalog (manifest) requests. Required.
	BungieAPIKey string `koanf:"bungie_api_key"`

	// SheetsAPIKey authenticates Google Sheets reads. Required unless a
	// local workbook is used instead.
	SheetsAPIKey string `koanf:"sheets_api_key"`

	// SpreadsheetID identifies the curated spreadsheet.
	SpreadsheetID string `koanf:"spreadsheet_id"`

	// SheetGIDs lists the tab GIDs holding curated weapon tables.
	SheetGIDs []string `koanf:"sheet_gids"`

	// WorkbookPath, when set, reads entries from a local XLSX workbook
	// instead of the Sheets API.
	WorkbookPath string `koanf:"workbook_path"`

	// OutputPath is where the wishlist file is written.
	OutputPath string `koanf:"output_path"`

	// CachePath is the sqlite file holding the catalog snapshot.
	CachePath string `koanf:"cache_path"`

	// WorkerCount bounds concurrent weapon matching.
	WorkerCount int `koanf:"worker_count"`

	// RequestsPerSecond caps outbound catalog requests.
	RequestsPerSecond int `koanf:"requests_per_second"`

	// WeaponThreshold and PerkThreshold tune candidate similarity cutoffs.
	WeaponThreshold float64 `koanf:"weapon_threshold"`
	PerkThreshold   float64 `koanf:"perk_threshold"`

	// Tiers maps tier labels to perk modes: "both", "any" or "bare".
	// Weapons with tiers not listed here are excluded from the wishlist.
	Tiers map[string]string `koanf:"tiers"`
}

// New creates a Config with defaults. The spreadsheet defaults point at the
// community tier list the tool was built around.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		SpreadsheetID: "1JM-0SlxVDAi-C6rGVlLxa-J1WGewEeL8Qvq4htWZHhY",
		SheetGIDs: []string{
			"1595979957", "1090554564", "1318165198", "657764751",
			"1239299765", "288998351", "550485113", "1919916707",
			"439751986", "473850359", "981030684", "29008106",
			"1890042119", "324500912", "1315046624", "1712537582",
			"946843299", "1594008157", "1405969509",
		},
		OutputPath:        "dim_wishlist.txt",
		CachePath:         "catalog_cache.db",
		WorkerCount:       4,
		RequestsPerSecond: 25,
		WeaponThreshold:   0.8,
		PerkThreshold:     0.9,
		Tiers: map[string]string{
			"S": "both",
			"A": "both",
		},
	}
}

// Policy converts the configured tier map into a TierPolicy.
func (c *Config) Policy() (model.TierPolicy, error) {
	policy, err := model.ParseTierPolicy(c.Tiers)
	if err != nil {
		return nil, wrapInvalid(err)
	}
	return policy, nil
}
