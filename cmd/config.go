package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/etnz/fundnav/date"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the configuration of fnav.
type Config struct {
	Input     InputConfig     `toml:"input"`
	Fund      FundConfig      `toml:"fund"`
	Output    OutputConfig    `toml:"output"`
	Hedge     HedgeConfig     `toml:"hedge"`
	Logging   LoggingConfig   `toml:"logging"`
	Assistant AssistantConfig `toml:"assistant"`
}

// InputConfig locates the cashflow ledger.
type InputConfig struct {
	File     string `toml:"file"`
	Sheet    string `toml:"sheet"`     // workbook sheet, first one when empty
	JSONPath string `toml:"json_path"` // rows selector of JSON ledgers
}

// FundConfig selects the fund to analyse.
type FundConfig struct {
	Name string `toml:"name"`
}

// OutputConfig holds where and what to write.
type OutputConfig struct {
	Dir     string   `toml:"dir"`
	Formats []string `toml:"formats"` // csv, jsonl, markdown, html
}

// HedgeConfig restricts the proposed trades to a window of dates.
type HedgeConfig struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Window returns the hedge window, zero when unset.
func (c HedgeConfig) Window() (date.Range, error) {
	if c.From == "" && c.To == "" {
		return date.Range{}, nil
	}
	return date.ParseRange(c.From, c.To)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
	Output string `toml:"output"` // stdout, stderr, or file path
}

// AssistantConfig holds the Gemini analyst configuration.
type AssistantConfig struct {
	Model string `toml:"model"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{File: "CST_Case_Study_data.xlsx"},
		Fund:   FundConfig{Name: "Fund I"},
		Output: OutputConfig{Dir: "outputs", Formats: []string{"csv", "jsonl", "markdown", "html"}},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
		Assistant: AssistantConfig{Model: "gemini-2.5-pro"},
	}
}

// LoadConfig loads configuration from files with environment overrides.
//
// Later files override earlier ones, missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("FUNDNAV_FILE"); v != "" {
		config.Input.File = v
	}
	if v := os.Getenv("FUNDNAV_FUND"); v != "" {
		config.Fund.Name = v
	}
	if v := os.Getenv("FUNDNAV_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}
	if v := os.Getenv("FUNDNAV_LOG_LEVEL"); v != "" {
		config.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("FUNDNAV_MODEL"); v != "" {
		config.Assistant.Model = v
	}
}
