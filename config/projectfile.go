package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the optional per-project settings file in the root.
const ProjectFileName = ".jsonloc.yaml"

// ProjectFile is the .jsonloc.yaml structure. Every field is optional and
// is overridden by the matching environment variable.
type ProjectFile struct {
	// ProjectID is the Google Cloud project. The API key is never read
	// from this file.
	ProjectID string `yaml:"project_id,omitempty"`
	// SourceLang is the language of the input files.
	SourceLang string `yaml:"source_lang,omitempty"`
	// Languages are the target languages, in processing order.
	Languages []string `yaml:"languages,omitempty"`
	// Exclude replaces the default list of skipped directory names.
	Exclude []string `yaml:"exclude,omitempty"`
	// KeepGoing skips unparsable files instead of stopping.
	KeepGoing bool `yaml:"keep_going,omitempty"`
	// Endpoint overrides the Cloud Translation API host.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Location overrides the API location (default "global").
	Location string `yaml:"location,omitempty"`
	// Timeout is a Go duration string bounding each API request.
	Timeout string `yaml:"timeout,omitempty"`
}

// LoadProjectFile loads .jsonloc.yaml from rootDir.
// Returns nil if the file does not exist.
func LoadProjectFile(rootDir string) (*ProjectFile, error) {
	path := filepath.Join(rootDir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &pf, nil
}

// Save writes pf to rootDir/.jsonloc.yaml.
func (pf *ProjectFile) Save(rootDir string) error {
	data, err := yaml.Marshal(pf)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ProjectFileName, err)
	}
	path := filepath.Join(rootDir, ProjectFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
