// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"issue-wordmap/internal/keywords"
	"issue-wordmap/internal/paths"
)

// EnvPrefix prefixes every environment override, e.g. WORDMAP_TOP=25
const EnvPrefix = "WORDMAP_"

// Settings are the tunable values of a run
type Settings struct {
	Input       string `yaml:"input" env:"INPUT"`
	OutputDir   string `yaml:"output_dir" env:"OUTPUT_DIR"`
	ImageFile   string `yaml:"image_file" env:"IMAGE_FILE"`
	CSVFile     string `yaml:"csv_file" env:"CSV_FILE"`
	PDFFile     string `yaml:"pdf_file" env:"PDF_FILE"`
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`

	Format  string `yaml:"format" env:"FORMAT"`
	Top     int    `yaml:"top" env:"TOP"`
	Heading string `yaml:"heading" env:"HEADING"`
	Stemmer string `yaml:"stemmer" env:"STEMMER"`
	Workers int    `yaml:"workers" env:"WORKERS"`

	Width           int     `yaml:"width" env:"WIDTH"`
	Height          int     `yaml:"height" env:"HEIGHT"`
	MaxWords        int     `yaml:"max_words" env:"MAX_WORDS"`
	MinFontSize     int     `yaml:"min_font_size" env:"MIN_FONT_SIZE"`
	RelativeScaling float64 `yaml:"relative_scaling" env:"RELATIVE_SCALING"`
	Background      string  `yaml:"background" env:"BACKGROUND"`
	Title           string  `yaml:"title" env:"TITLE"`

	RepairJSON bool `yaml:"repair_json" env:"REPAIR_JSON"`
	Verbose    bool `yaml:"verbose" env:"VERBOSE"`
	Debug      bool `yaml:"debug" env:"DEBUG"`
	NoColor    bool `yaml:"no_color" env:"NO_COLOR"`
}

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults Settings `yaml:"defaults"`

	// Profiles for different reporting scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile is a named set of overrides. Zero values leave the defaults in
// place; booleans can only switch an option on.
type Profile struct {
	Description string `yaml:"description"`
	Settings    `yaml:",inline"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		Input:           "all_issues.json",
		OutputDir:       ".",
		ImageFile:       "keyword_wordmap.png",
		CSVFile:         "keyword_frequencies.csv",
		Format:          "text",
		Top:             50,
		Heading:         "Description",
		Stemmer:         keywords.StemmerNone,
		Workers:         1,
		Width:           1600,
		Height:          900,
		MaxWords:        200,
		MinFontSize:     10,
		RelativeScaling: 0.5,
		Background:      "white",
		Title:           "Keyword Word Map",
	}
}

// defaultProfiles are available even without a config file
func defaultProfiles() map[string]Profile {
	return map[string]Profile{
		"report": {
			Description: "Word map, CSV, PDF and metrics under ./report",
			Settings: Settings{
				OutputDir:   "report",
				PDFFile:     "keyword_wordmap.pdf",
				MetricsFile: "wordmap.prom",
			},
		},
		"stemmed": {
			Description: "Merge inflected forms with the Snowball stemmer",
			Settings: Settings{
				Stemmer: keywords.StemmerSnowball,
			},
		},
		"ci": {
			Description: "Plain JSON listing for pipelines",
			Settings: Settings{
				Format:  "json",
				NoColor: true,
			},
		},
	}
}

// LoadConfig loads configuration from the specified file path. An empty path
// returns the built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Defaults: DefaultSettings(),
		Profiles: defaultProfiles(),
	}

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Keys present in the file replace the defaults; absent keys keep them.
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if config.Profiles == nil {
		config.Profiles = defaultProfiles()
	}

	ApplyPlatformDefaults(config)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// configCandidates are checked in the working directory, in order
var configCandidates = []string{"wordmap.yaml", "wordmap.yml", ".wordmap.yaml", ".wordmap.yml"}

// FindConfigFile looks for a configuration file in the working directory and
// then in the user configuration directory
func FindConfigFile() string {
	for _, name := range configCandidates {
		if fileExists(name) {
			return name
		}
	}

	if standardConfig := paths.GetConfigFile(); fileExists(standardConfig) {
		return standardConfig
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names, sorted
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// Resolve returns the defaults with the named profile applied. An unknown
// profile is an error; an empty name applies none.
func (c *Config) Resolve(profileName string) (Settings, error) {
	settings := c.Defaults
	if profileName == "" {
		return settings, nil
	}

	profile := c.GetProfile(profileName)
	if profile == nil {
		return settings, fmt.Errorf("profile '%s' not found (available: %s)", profileName, strings.Join(c.ListProfiles(), ", "))
	}
	settings.Overlay(profile.Settings)
	return settings, nil
}

// Overlay copies every non-zero field of o onto s
func (s *Settings) Overlay(o Settings) {
	overlayString(&s.Input, o.Input)
	overlayString(&s.OutputDir, o.OutputDir)
	overlayString(&s.ImageFile, o.ImageFile)
	overlayString(&s.CSVFile, o.CSVFile)
	overlayString(&s.PDFFile, o.PDFFile)
	overlayString(&s.MetricsFile, o.MetricsFile)
	overlayString(&s.Format, o.Format)
	overlayString(&s.Heading, o.Heading)
	overlayString(&s.Stemmer, o.Stemmer)
	overlayString(&s.Background, o.Background)
	overlayString(&s.Title, o.Title)

	overlayInt(&s.Top, o.Top)
	overlayInt(&s.Width, o.Width)
	overlayInt(&s.Height, o.Height)
	overlayInt(&s.MaxWords, o.MaxWords)
	overlayInt(&s.MinFontSize, o.MinFontSize)
	overlayInt(&s.Workers, o.Workers)
	if o.RelativeScaling != 0 {
		s.RelativeScaling = o.RelativeScaling
	}

	s.RepairJSON = s.RepairJSON || o.RepairJSON
	s.Verbose = s.Verbose || o.Verbose
	s.Debug = s.Debug || o.Debug
	s.NoColor = s.NoColor || o.NoColor
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func overlayInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// ApplyEnv overlays WORDMAP_* variables onto s. Variables from dotenvPath are
// used when the process environment does not set them; a missing dotenv file
// is not an error.
func ApplyEnv(s *Settings, dotenvPath string) error {
	environment := make(map[string]string)

	if dotenvPath != "" {
		values, err := godotenv.Read(dotenvPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error reading %s: %w", dotenvPath, err)
		}
		for k, v := range values {
			environment[k] = v
		}
	}

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environment[k] = v
		}
	}

	return ApplyEnvMap(s, environment)
}

// ApplyEnvMap overlays WORDMAP_* entries of environment onto s
func ApplyEnvMap(s *Settings, environment map[string]string) error {
	if err := env.Parse(s, env.Options{Prefix: EnvPrefix, Environment: environment}); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// ValidateConfig validates the defaults and every profile
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	var result *multierror.Error
	if err := config.Defaults.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("defaults: %w", err))
	}

	for _, name := range config.ListProfiles() {
		settings, _ := config.Resolve(name)
		if err := settings.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("profile '%s': %w", name, err))
		}
	}

	return result.ErrorOrNil()
}

// Validate reports every invalid setting at once
func (s Settings) Validate() error {
	var result *multierror.Error

	if s.Top < 0 {
		result = multierror.Append(result, fmt.Errorf("top must not be negative, got %d", s.Top))
	}
	if s.Workers < 0 {
		result = multierror.Append(result, fmt.Errorf("workers must not be negative, got %d", s.Workers))
	}
	if s.Width <= 0 || s.Height <= 0 {
		result = multierror.Append(result, fmt.Errorf("width and height must be positive, got %dx%d", s.Width, s.Height))
	}
	if s.MaxWords <= 0 {
		result = multierror.Append(result, fmt.Errorf("max_words must be positive, got %d", s.MaxWords))
	}
	if s.MinFontSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("min_font_size must be positive, got %d", s.MinFontSize))
	}
	if s.RelativeScaling < 0 || s.RelativeScaling > 1 {
		result = multierror.Append(result, fmt.Errorf("relative_scaling must be within [0, 1], got %g", s.RelativeScaling))
	}
	if _, err := keywords.NewStemmer(s.Stemmer); err != nil {
		result = multierror.Append(result, err)
	}

	for field, path := range map[string]string{
		"input":        s.Input,
		"output_dir":   s.OutputDir,
		"image_file":   s.ImageFile,
		"csv_file":     s.CSVFile,
		"pdf_file":     s.PDFFile,
		"metrics_file": s.MetricsFile,
	} {
		if err := paths.ValidatePath(path); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", field, err))
		}
	}

	if result != nil {
		// Map iteration above is unordered; keep messages stable.
		sort.Slice(result.Errors, func(i, j int) bool {
			return result.Errors[i].Error() < result.Errors[j].Error()
		})
	}
	return result.ErrorOrNil()
}

// ApplyPlatformDefaults normalizes the path settings of the defaults and profiles
func ApplyPlatformDefaults(config *Config) {
	if config == nil {
		return
	}

	normalizeSettingsPaths(&config.Defaults)
	for name, profile := range config.Profiles {
		normalizeSettingsPaths(&profile.Settings)
		config.Profiles[name] = profile
	}
}

func normalizeSettingsPaths(s *Settings) {
	s.Input = paths.NormalizePath(s.Input)
	s.OutputDir = paths.NormalizePath(s.OutputDir)
}
