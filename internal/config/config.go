package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultPath is where the CLI looks for a config file
const DefaultPath = "blackjack.hcl"

// Config represents the complete table configuration. Every block is
// optional.
type Config struct {
	Game *GameSettings `hcl:"game,block"`
	UI   *UISettings   `hcl:"ui,block"`
	Log  *LogSettings  `hcl:"log,block"`
}

// GameSettings contains the table rules that can be changed
type GameSettings struct {
	Decks           int   `hcl:"decks,optional"`
	StartingBalance int   `hcl:"starting_balance,optional"`
	WinThreshold    int   `hcl:"win_threshold,optional"`
	Seed            int64 `hcl:"seed,optional"`
}

// UISettings contains presentation settings
type UISettings struct {
	Mode  string `hcl:"mode,optional"`
	Cards string `hcl:"cards,optional"`
	Color *bool  `hcl:"color,optional"`
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default configuration
func Default() *Config {
	color := true
	return &Config{
		Game: &GameSettings{
			Decks:           3,
			StartingBalance: 1000,
			WinThreshold:    20000,
		},
		UI: &UISettings{
			Mode:  "text",
			Cards: "ascii",
			Color: &color,
		},
		Log: &LogSettings{
			Level: "info",
			File:  "blackjack.log",
		},
	}
}

// LoadConfig loads configuration from an HCL file. A missing file yields
// the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source. filename is only used in diagnostics.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.Decks == 0 {
		c.Game.Decks = defaults.Game.Decks
	}
	if c.Game.StartingBalance == 0 {
		c.Game.StartingBalance = defaults.Game.StartingBalance
	}
	if c.Game.WinThreshold == 0 {
		c.Game.WinThreshold = defaults.Game.WinThreshold
	}

	if c.UI == nil {
		c.UI = defaults.UI
	}
	if c.UI.Mode == "" {
		c.UI.Mode = defaults.UI.Mode
	}
	if c.UI.Cards == "" {
		c.UI.Cards = defaults.UI.Cards
	}
	if c.UI.Color == nil {
		c.UI.Color = defaults.UI.Color
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Game.Decks)
	}

	if c.Game.StartingBalance <= 0 {
		return fmt.Errorf("starting balance must be positive")
	}

	if c.Game.WinThreshold <= c.Game.StartingBalance {
		return fmt.Errorf("win threshold %d must be above the starting balance %d",
			c.Game.WinThreshold, c.Game.StartingBalance)
	}

	if c.Game.Seed < 0 {
		return fmt.Errorf("seed cannot be negative")
	}

	validModes := map[string]bool{
		"text": true,
		"tui":  true,
	}
	if !validModes[c.UI.Mode] {
		return fmt.Errorf("invalid ui mode: %s", c.UI.Mode)
	}

	validCards := map[string]bool{
		"ascii": true,
		"text":  true,
	}
	if !validCards[c.UI.Cards] {
		return fmt.Errorf("invalid card format: %s", c.UI.Cards)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// ColorEnabled reports whether styled output is wanted
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}
