// Package pipeline drives translation of JSON localization files: every
// discovered file is parsed once and written once per target language.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/minios-linux/jsonloc/jsontree"
	"github.com/minios-linux/jsonloc/translate"
)

// WriteError reports an output file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// OutputPath returns the path of the lang translation of path: the same
// directory, with .lang inserted before a trailing .json.
//
//	OutputPath("locales/messages.json", "fr") == "locales/messages.fr.json"
func OutputPath(path, lang string) string {
	dir, base := filepath.Split(path)
	base = strings.TrimSuffix(base, ".json")
	return filepath.Join(dir, base+"."+lang+".json")
}

// Options configures a Processor.
type Options struct {
	// Languages are the target languages, processed in order.
	Languages []string
	// KeepGoing skips files that fail to parse instead of aborting the run.
	KeepGoing bool

	// OnFile is called before a file is processed.
	OnFile func(path string)
	// OnLanguage is called before a file is translated into lang.
	OnLanguage func(path, lang string, count int)
	// OnSaved is called after an output file has been written.
	OnSaved func(outPath string)
	// OnSkip is called for a file skipped under KeepGoing.
	OnSkip func(path string, err error)
}

// Processor translates files with an Adapter.
type Processor struct {
	adapter *translate.Adapter
	opts    Options
}

// New returns a Processor translating through a.
func New(a *translate.Adapter, opts Options) *Processor {
	return &Processor{adapter: a, opts: opts}
}

// ProcessFile parses path and writes one translated sibling per target
// language. A parse failure is returned as *jsontree.ParseError and a
// failed write as *WriteError. The input file is never modified.
func (p *Processor) ProcessFile(ctx context.Context, path string) error {
	doc, err := jsontree.ParseFile(path)
	if err != nil {
		return err
	}

	n := translate.CountStrings(doc)
	for _, lang := range p.opts.Languages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.opts.OnLanguage != nil {
			p.opts.OnLanguage(path, lang, n)
		}

		translated, err := translate.Tree(ctx, p.adapter, doc, lang)
		if err != nil {
			return err
		}

		outPath := OutputPath(path, lang)
		if err := jsontree.WriteFile(outPath, translated); err != nil {
			return &WriteError{Path: outPath, Err: err}
		}
		if p.opts.OnSaved != nil {
			p.opts.OnSaved(outPath)
		}
	}
	return nil
}

// Run processes files in order, one at a time.
//
// The first error stops the run. With KeepGoing, files that fail to parse
// are reported through OnSkip and the run continues; their errors are
// combined and returned once every file has been processed.
func (p *Processor) Run(ctx context.Context, files []string) error {
	var skipped error
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.opts.OnFile != nil {
			p.opts.OnFile(path)
		}

		err := p.ProcessFile(ctx, path)
		if err == nil {
			continue
		}

		var pe *jsontree.ParseError
		if p.opts.KeepGoing && errors.As(err, &pe) {
			if p.opts.OnSkip != nil {
				p.opts.OnSkip(path, err)
			}
			skipped = multierr.Append(skipped, err)
			continue
		}
		return err
	}
	return skipped
}
