package translate

import (
	"context"

	"github.com/minios-linux/jsonloc/jsontree"
)

// Adapter turns a Service into a translator that never fails: when the
// service returns an error, the error is reported and the original text is
// kept.
type Adapter struct {
	// Service performs the actual translation.
	Service Service
	// Verbose enables a log line for every translated string.
	Verbose bool
	// OnLog emits informational messages.
	OnLog func(format string, args ...any)
	// OnError emits translation failures.
	OnError func(format string, args ...any)
}

func (a *Adapter) log(format string, args ...any) {
	if a.OnLog != nil {
		a.OnLog(format, args...)
	}
}

func (a *Adapter) logError(format string, args ...any) {
	if a.OnError != nil {
		a.OnError(format, args...)
	} else if a.OnLog != nil {
		a.OnLog(format, args...)
	}
}

// Text translates text into targetLang. Empty text is returned without a
// service call. On failure the original text is returned.
func (a *Adapter) Text(ctx context.Context, text, targetLang string) string {
	if text == "" {
		return text
	}

	out, err := a.Service.Translate(ctx, text, targetLang)
	if err != nil {
		a.logError("Error translating text: %s: %v", text, err)
		return text
	}

	if a.Verbose {
		a.log("  [%s] %q -> %q", targetLang, truncate(text, 60), truncate(out, 60))
	}
	return out
}

// Tree returns a copy of node with every string leaf translated into lang.
//
// Objects are walked key by key in insertion order, one service call at a
// time. Numbers, booleans, nulls and arrays are returned unchanged; array
// elements are never translated. The only error is cancellation of ctx.
func Tree(ctx context.Context, a *Adapter, node jsontree.Value, lang string) (jsontree.Value, error) {
	switch node.Kind() {
	case jsontree.KindObject:
		src := node.Object()
		out := jsontree.NewObject()
		for _, key := range src.Keys() {
			child, _ := src.Get(key)
			tv, err := Tree(ctx, a, child, lang)
			if err != nil {
				return jsontree.Value{}, err
			}
			out.Set(key, tv)
		}
		return jsontree.ObjectValue(out), nil

	case jsontree.KindString:
		if err := ctx.Err(); err != nil {
			return jsontree.Value{}, err
		}
		return jsontree.String(a.Text(ctx, node.Str(), lang)), nil

	case jsontree.KindNull, jsontree.KindBool, jsontree.KindNumber, jsontree.KindArray:
		return node, nil
	}
	return node, nil
}

// CountStrings returns the number of string leaves Tree would translate.
func CountStrings(node jsontree.Value) int {
	if node.Kind() == jsontree.KindString {
		return 1
	}
	if node.Kind() != jsontree.KindObject {
		return 0
	}
	n := 0
	obj := node.Object()
	for _, key := range obj.Keys() {
		child, _ := obj.Get(key)
		n += CountStrings(child)
	}
	return n
}
