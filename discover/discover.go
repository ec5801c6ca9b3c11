// Package discover enumerates the JSON localization files below a project
// root.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultExclude lists directory names that are never descended into.
var DefaultExclude = []string{"node_modules", "vendor", "bower_components"}

// Options controls which files Find returns.
type Options struct {
	// Exclude lists directory names skipped at any depth. Nil means
	// DefaultExclude; an empty non-nil slice excludes nothing.
	Exclude []string
	// OutputLangs are the configured target languages. Files named
	// <base>.<lang>.json for one of them are generated outputs and are
	// not returned.
	OutputLangs []string
	// OnSkip, if set, is called for every generated output that is skipped.
	OnSkip func(path string)
}

// Find walks root in lexical order and returns every *.json file, joined
// with root. Dot-files and dot-directories are skipped.
func Find(root string, opts Options) ([]string, error) {
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()

		if d.IsDir() {
			if path == root {
				return nil
			}
			if excluded[name] || isHidden(name) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || isHidden(name) || !strings.HasSuffix(name, ".json") {
			return nil
		}
		if IsOutput(name, opts.OutputLangs) {
			if opts.OnSkip != nil {
				opts.OnSkip(path)
			}
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return files, nil
}

// IsOutput reports whether the file name has the form <base>.<lang>.json
// for one of langs.
func IsOutput(name string, langs []string) bool {
	stem := strings.TrimSuffix(name, ".json")
	for _, lang := range langs {
		if lang == "" {
			continue
		}
		suffix := "." + lang
		if strings.HasSuffix(stem, suffix) && len(stem) > len(suffix) {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
