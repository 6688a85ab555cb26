package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mcncl/jsonnorm/internal/errors"
	"github.com/mcncl/jsonnorm/internal/formatter"
	"github.com/mcncl/jsonnorm/internal/normalizer"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is the collation locale used for string attributes.
const DefaultLocale = "en"

// Config represents the complete configuration for jsonnorm
type Config struct {
	SortKeys      bool          `yaml:"sort_keys"`
	SortArrays    AttributeList `yaml:"sort_arrays"`
	RemoveNulls   bool          `yaml:"remove_nulls"`
	Locale        string        `yaml:"locale"`
	StrictCompare bool          `yaml:"strict_compare"`
	Output        OutputConfig  `yaml:"output"`
	Dev           DevConfig     `yaml:"dev"`
}

// OutputConfig controls how the result is written
type OutputConfig struct {
	Indent  string `yaml:"indent"`
	Compact bool   `yaml:"compact"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// AttributeList is an ordered list of object attribute names. In YAML it may
// be written as a sequence or as a comma separated string.
type AttributeList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (a *AttributeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*a = ParseAttributeList(value.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		list := make(AttributeList, len(items))
		for i, item := range items {
			list[i] = strings.TrimSpace(item)
		}
		*a = list
		return nil
	default:
		return fmt.Errorf("line %d: sort_arrays must be a list or a comma separated string", value.Line)
	}
}

// ParseAttributeList splits a comma separated attribute list and trims each
// entry. An empty string yields nil.
func ParseAttributeList(s string) AttributeList {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	list := make(AttributeList, len(parts))
	for i, p := range parts {
		list[i] = strings.TrimSpace(p)
	}
	return list
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		SortKeys:      false,
		SortArrays:    nil,
		RemoveNulls:   false,
		Locale:        DefaultLocale,
		StrictCompare: false,
		Output: OutputConfig{
			Indent:  formatter.DefaultIndent,
			Compact: false,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonnorm.yml", ".jsonnorm.yaml", "jsonnorm.yml", "jsonnorm.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks values that cannot be rejected while decoding
func (c *Config) Validate() error {
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	for _, r := range c.Output.Indent {
		if r != ' ' && r != '\t' {
			return errors.NewConfigError(fmt.Sprintf("invalid indent %q", c.Output.Indent), errors.ErrInvalidIndent)
		}
	}
	return nil
}

// Warnings lists settings that are valid but have no effect or probably
// do not do what was meant.
func (c *Config) Warnings() []string {
	var warnings []string
	if slices.Contains(c.SortArrays, "") {
		warnings = append(warnings, "sort_arrays contains an empty attribute name, which only matches the key \"\"")
	}
	if c.StrictCompare && len(c.SortArrays) == 0 {
		warnings = append(warnings, "strict_compare has no effect without sort_arrays")
	}
	if c.Output.Compact && c.Output.Indent != formatter.DefaultIndent {
		warnings = append(warnings, "output.indent is ignored because compact output is enabled")
	}
	return warnings
}

// LocaleTag parses the configured locale as a BCP 47 tag
func (c *Config) LocaleTag() (language.Tag, error) {
	if c.Locale == "" {
		return language.Parse(DefaultLocale)
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, errors.NewConfigError(fmt.Sprintf("invalid locale %q", c.Locale), errors.ErrInvalidLocale)
	}
	return tag, nil
}

// NormalizerOptions returns the options for the normalizer
func (c *Config) NormalizerOptions() (normalizer.Options, error) {
	tag, err := c.LocaleTag()
	if err != nil {
		return normalizer.Options{}, err
	}
	return normalizer.Options{
		SortKeys:      c.SortKeys,
		SortArraysBy:  c.SortArrays,
		Locale:        tag,
		StrictCompare: c.StrictCompare,
	}, nil
}

// FormatterOptions returns the options for the formatter
func (c *Config) FormatterOptions() formatter.Options {
	indent := c.Output.Indent
	if c.Output.Compact {
		indent = ""
	}
	return formatter.Options{
		Indent:      indent,
		RemoveNulls: c.RemoveNulls,
	}
}

// Overrides holds values given on the command line. Boolean flags can only
// switch a feature on; empty strings leave the configured value alone.
type Overrides struct {
	SortKeys      bool
	SortArrays    string
	RemoveNulls   bool
	Locale        string
	StrictCompare bool
	Indent        string
	Compact       bool
	Debug         bool
}

// ApplyOverrides returns a copy of base with CLI overrides applied
func ApplyOverrides(base *Config, o Overrides) *Config {
	merged := *base

	if o.SortKeys {
		merged.SortKeys = true
	}
	if o.SortArrays != "" {
		merged.SortArrays = ParseAttributeList(o.SortArrays)
	}
	if o.RemoveNulls {
		merged.RemoveNulls = true
	}
	if o.Locale != "" {
		merged.Locale = o.Locale
	}
	if o.StrictCompare {
		merged.StrictCompare = true
	}
	if o.Indent != "" {
		merged.Output.Indent = o.Indent
	}
	if o.Compact {
		merged.Output.Compact = true
	}
	if o.Debug {
		merged.Dev.Debug = true
	}

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// defaults, then the config file (if any), then the command line.
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load '%s'", configPath), err)
		}
		cfg = fileConfig
	}

	cfg = ApplyOverrides(cfg, o)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
