// Package config loads the on-disk configuration (spec §6): a
// read-only struct controlling line length, blank-line policy,
// indentation, delimited-list layout, and per-rule enablement.
package config

import (
	"fmt"
	"os"

	"github.com/stylish-lang/stylish/builder"
	"github.com/stylish-lang/stylish/printer"
	"gopkg.in/yaml.v3"
)

// Indentation is the on-disk shape of printer.Indentation: either
// spaces(n) or tabs.
type Indentation struct {
	Kind  string `yaml:"kind"`  // "spaces" or "tabs"
	Width int    `yaml:"width"` // column width per level
}

// Config is the full on-disk configuration (spec §6, "Configuration.
// Read-only struct with at least: lineLength..., per-rule enabled
// flags, and line-ending style").
type Config struct {
	LineLength                  int             `yaml:"lineLength"`
	MaximumBlankLines           int             `yaml:"maximumBlankLines"`
	Indentation                 Indentation     `yaml:"indentation"`
	LineBreakBeforeEachArgument bool            `yaml:"lineBreakBeforeEachArgument"`
	RespectsExistingLineBreaks  bool            `yaml:"respectsExistingLineBreaks"`
	LineEnding                  string          `yaml:"lineEnding"` // "lf" or "crlf"
	Rules                       map[string]bool `yaml:"rules"`
}

// Default returns the configuration spec §6 names as defaults.
func Default() Config {
	return Config{
		LineLength:        100,
		MaximumBlankLines: 1,
		Indentation:       Indentation{Kind: "spaces", Width: 2},
		LineEnding:        "lf",
	}
}

// Load reads and validates a YAML configuration file at path, merging
// it over Default(). An unknown top-level key produces a warning
// (returned alongside the config, never failing the load); a
// type-mismatched value is an error (spec §6: "Unknown keys → warning;
// type mismatches → error").
func Load(path string) (Config, []string, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return cfg, nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	var warnings []string
	for key := range raw {
		if !knownKeys[key] {
			warnings = append(warnings, fmt.Sprintf("config: unknown key %q", key))
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, warnings, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, warnings, nil
}

var knownKeys = map[string]bool{
	"lineLength":                  true,
	"maximumBlankLines":           true,
	"indentation":                 true,
	"lineBreakBeforeEachArgument": true,
	"respectsExistingLineBreaks":  true,
	"lineEnding":                  true,
	"rules":                       true,
}

// BuilderConfig projects the subset of Config the token-stream builder
// consumes.
func (c Config) BuilderConfig() builder.Config {
	return builder.Config{
		MaximumBlankLines:           c.MaximumBlankLines,
		LineBreakBeforeEachArgument: c.LineBreakBeforeEachArgument,
		RespectsExistingLineBreaks:  c.RespectsExistingLineBreaks,
	}
}

// PrinterOptions projects the subset of Config the pretty printer
// consumes.
func (c Config) PrinterOptions() printer.Options {
	kind := printer.Spaces
	if c.Indentation.Kind == "tabs" {
		kind = printer.Tabs
	}
	ending := printer.LF
	if c.LineEnding == "crlf" {
		ending = printer.CRLF
	}
	return printer.Options{
		MaxWidth: c.LineLength,
		Indentation: printer.Indentation{
			Kind:  kind,
			Width: c.Indentation.Width,
		},
		LineEnding: ending,
	}
}

// RuleEnabled reports whether tag is enabled, defaulting to true for
// any rule not mentioned in the config's rules map.
func (c Config) RuleEnabled(tag string) bool {
	v, ok := c.Rules[tag]
	return !ok || v
}
