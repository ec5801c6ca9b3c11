// Package config assembles the run configuration from defaults, the
// optional .jsonloc.yaml project file, an optional .env file and the
// process environment, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"
)

// EnvFileName is the optional dotenv file in the root.
const EnvFileName = ".env"

// Config is the validated configuration of one run.
type Config struct {
	// Root is the directory that is scanned for JSON files.
	Root string

	ProjectID string
	APIKey    string

	// SourceLang is the language of every input file.
	SourceLang string
	// Languages are the target languages in processing order, without
	// duplicates.
	Languages []string

	// Exclude lists directory names skipped during discovery. Nil means
	// the discovery default.
	Exclude []string
	// KeepGoing skips files that fail to parse.
	KeepGoing bool

	Endpoint string
	Location string
	Proxy    string
	Timeout  time.Duration

	// ProjectFile and EnvFile are the paths of the files that were loaded,
	// empty when absent.
	ProjectFile string
	EnvFile     string
}

// ConfigurationError lists every problem found in the configuration.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid configuration: " + e.Problems[0]
	}
	return "invalid configuration:\n  - " + strings.Join(e.Problems, "\n  - ")
}

// env holds the variables decoded by envconfig. Pointers distinguish unset
// from zero so that the project file is only overridden when a variable is
// present.
type env struct {
	ProjectID  string         `envconfig:"GOOGLE_PROJECT_ID"`
	APIKey     string         `envconfig:"GOOGLE_API_KEY"`
	SourceLang string         `envconfig:"SOURCE_LANGUAGE"`
	Languages  *string        `envconfig:"TARGET_LANGUAGES"`
	Endpoint   string         `envconfig:"JSONLOC_ENDPOINT"`
	Location   string         `envconfig:"JSONLOC_LOCATION"`
	Timeout    *time.Duration `envconfig:"JSONLOC_TIMEOUT"`
	Proxy      string         `envconfig:"JSONLOC_PROXY"`
	Exclude    *string        `envconfig:"JSONLOC_EXCLUDE"`
	KeepGoing  *bool          `envconfig:"JSONLOC_KEEP_GOING"`
}

// Load builds the configuration for root. Credentials are not checked;
// call RequireCredentials before translating.
//
// All problems are collected and returned together as a
// *ConfigurationError. Errors reading the project file or .env file are
// returned as is.
func Load(root string) (*Config, error) {
	if root == "" {
		root = "."
	}
	cfg := &Config{Root: root}

	pf, err := LoadProjectFile(root)
	if err != nil {
		return nil, err
	}
	if pf != nil {
		cfg.ProjectFile = filepath.Join(root, ProjectFileName)
	}

	envPath := filepath.Join(root, EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		// Variables already present in the environment take precedence.
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envPath, err)
		}
		cfg.EnvFile = envPath
	}

	var problems []string

	var e env
	if err := envconfig.Process("", &e); err != nil {
		problems = append(problems, err.Error())
	}

	if pf != nil {
		cfg.ProjectID = pf.ProjectID
		cfg.SourceLang = pf.SourceLang
		cfg.Languages = pf.Languages
		cfg.Exclude = pf.Exclude
		cfg.KeepGoing = pf.KeepGoing
		cfg.Endpoint = pf.Endpoint
		cfg.Location = pf.Location
		if pf.Timeout != "" {
			d, err := time.ParseDuration(pf.Timeout)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid timeout %q", ProjectFileName, pf.Timeout))
			}
			cfg.Timeout = d
		}
	}

	if e.ProjectID != "" {
		cfg.ProjectID = e.ProjectID
	}
	cfg.APIKey = e.APIKey
	if e.SourceLang != "" {
		cfg.SourceLang = e.SourceLang
	}
	if e.Languages != nil {
		cfg.Languages = SplitList(*e.Languages)
	}
	if e.Endpoint != "" {
		cfg.Endpoint = e.Endpoint
	}
	if e.Location != "" {
		cfg.Location = e.Location
	}
	if e.Timeout != nil {
		cfg.Timeout = *e.Timeout
	}
	cfg.Proxy = e.Proxy
	if e.Exclude != nil {
		cfg.Exclude = SplitList(*e.Exclude)
		if cfg.Exclude == nil {
			cfg.Exclude = []string{}
		}
	}
	if e.KeepGoing != nil {
		cfg.KeepGoing = *e.KeepGoing
	}

	cfg.SourceLang = strings.TrimSpace(cfg.SourceLang)
	cfg.Languages = dedupe(cfg.Languages)

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return nil, &ConfigurationError{Problems: problems}
	}
	return cfg, nil
}

func (c *Config) validate() []string {
	var problems []string

	var source language.Tag
	sourceOK := false
	if c.SourceLang == "" {
		problems = append(problems, "SOURCE_LANGUAGE is not set")
	} else if tag, err := language.Parse(c.SourceLang); err != nil {
		problems = append(problems, fmt.Sprintf("SOURCE_LANGUAGE: invalid language code %q", c.SourceLang))
	} else {
		source, sourceOK = tag, true
	}

	if len(c.Languages) == 0 {
		problems = append(problems, "TARGET_LANGUAGES is not set or empty")
	}
	for _, lang := range c.Languages {
		tag, err := language.Parse(lang)
		if err != nil {
			problems = append(problems, fmt.Sprintf("TARGET_LANGUAGES: invalid language code %q", lang))
			continue
		}
		if sourceOK && tag == source {
			problems = append(problems, fmt.Sprintf("TARGET_LANGUAGES: %q is the source language", lang))
		}
	}

	if c.Timeout < 0 {
		problems = append(problems, fmt.Sprintf("JSONLOC_TIMEOUT: negative duration %s", c.Timeout))
	}
	return problems
}

// RequireCredentials reports a *ConfigurationError unless both the project
// ID and the API key are set.
func (c *Config) RequireCredentials() error {
	var problems []string
	if c.ProjectID == "" {
		problems = append(problems, "GOOGLE_PROJECT_ID is not set")
	}
	if c.APIKey == "" {
		problems = append(problems, "GOOGLE_API_KEY is not set")
	}
	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}
	return nil
}

// SplitList splits a comma-separated list, trimming items and dropping
// empty ones.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// dedupe trims items and removes empty and repeated ones, keeping the
// first occurrence.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
