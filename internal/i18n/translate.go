// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Translator resolves UI strings from per-locale dictionaries. Dictionaries
// are loaded once at construction and never mutated, so the Translator is
// safe for concurrent readers without locking.
type Translator struct {
	dicts map[string]map[string]string // locale → flattened dotted-key → value
}

// NewTranslator loads every supported locale's dictionary from dir, where
// each file is named <locale>.yaml and holds arbitrarily nested string
// maps. A missing or unreadable dictionary is logged and treated as empty;
// lookups for that locale fall back to the default locale's dictionary.
func NewTranslator(dir string) *Translator {
	t := &Translator{dicts: make(map[string]map[string]string)}

	for _, locale := range Supported() {
		path := filepath.Join(dir, locale+".yaml")
		raw, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("translation dictionary missing", "locale", locale, "path", path, "error", err)
			t.dicts[locale] = map[string]string{}
			continue
		}

		var nested map[string]any
		if err := yaml.Unmarshal(raw, &nested); err != nil {
			slog.Warn("translation dictionary malformed", "locale", locale, "path", path, "error", err)
			t.dicts[locale] = map[string]string{}
			continue
		}

		flat := make(map[string]string)
		flatten("", nested, flat)
		t.dicts[locale] = flat
	}

	return t
}

// T looks up key (dotted path, e.g. "nav.blog") for locale, substituting
// {{name}} placeholders from params. Resolution order: requested locale →
// default locale → the key itself. The key-itself fallback keeps templates
// rendering even when a string was never translated.
func (t *Translator) T(locale, key string, params map[string]string) string {
	val, ok := t.dicts[locale][key]
	if !ok {
		val, ok = t.dicts[DefaultLocale][key]
	}
	if !ok {
		return key
	}

	for name, pv := range params {
		val = strings.ReplaceAll(val, "{{"+name+"}}", pv)
	}
	return val
}

// Func returns a closure suitable for installation in a template FuncMap,
// bound to a single locale.
func (t *Translator) Func(locale string) func(key string) string {
	return func(key string) string {
		return t.T(locale, key, nil)
	}
}

// flatten converts a nested map into dotted-key form:
// {"nav": {"blog": "Blog"}} → {"nav.blog": "Blog"}.
// Non-string leaves are stringified so a stray number in a dictionary does
// not drop the key.
func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch vv := v.(type) {
		case map[string]any:
			flatten(key, vv, out)
		case string:
			out[key] = vv
		default:
			out[key] = fmt.Sprintf("%v", vv)
		}
	}
}
