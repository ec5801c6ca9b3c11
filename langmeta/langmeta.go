// Package langmeta provides language display metadata (native names and
// emoji flags) for CLI output.
package langmeta

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes language display metadata.
type Meta struct {
	Name string
	Flag string
}

// canonicalize normalizes a user-supplied code such as "pt_br" or " EN-us "
// to its BCP-47 form. Unparsable input is returned trimmed.
func canonicalize(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	return tag.String()
}

// Resolve returns the native name and flag for lang. Unknown codes get the
// code itself as name and no flag.
func Resolve(lang string) Meta {
	code := canonicalize(lang)
	tag, err := language.Parse(code)
	if err != nil || code == "" {
		return Meta{Name: code}
	}

	name := display.Self.Name(tag)
	if name == "" {
		name = code
	}
	return Meta{Name: name, Flag: flag(tag)}
}

// Label formats lang for log lines, e.g. "fr (français)".
func Label(lang string) string {
	m := Resolve(lang)
	if m.Name == "" || m.Name == lang {
		return lang
	}
	return lang + " (" + m.Name + ")"
}

// flag returns the regional-indicator emoji for the tag's region, guessing
// the region from the language when none is given.
func flag(tag language.Tag) string {
	region, conf := tag.Region()
	if conf == language.No {
		return ""
	}
	code := region.String()
	if len(code) != 2 || code[0] < 'A' || code[0] > 'Z' || code[1] < 'A' || code[1] > 'Z' {
		return ""
	}
	const base = 0x1F1E6
	return string([]rune{base + rune(code[0]-'A'), base + rune(code[1]-'A')})
}
