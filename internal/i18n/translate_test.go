// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDict(t *testing.T, dir, locale, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, locale+".yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTranslatorLookup(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en", `
nav:
  blog: Blog
  portfolio: Portfolio
home:
  greeting: "Hello, {{name}}!"
  count: 42
`)
	writeDict(t, dir, "ko", `
nav:
  blog: 블로그
`)

	tr := NewTranslator(dir)

	tests := []struct {
		name   string
		locale string
		key    string
		params map[string]string
		want   string
	}{
		{name: "exact locale", locale: "ko", key: "nav.blog", want: "블로그"},
		{name: "nested dotted key", locale: "en", key: "nav.portfolio", want: "Portfolio"},
		{name: "fallback to default locale", locale: "ko", key: "nav.portfolio", want: "Portfolio"},
		{name: "missing dictionary falls back", locale: "ja", key: "nav.blog", want: "Blog"},
		{name: "unknown key returns key", locale: "en", key: "nav.missing", want: "nav.missing"},
		{
			name:   "param substitution",
			locale: "en",
			key:    "home.greeting",
			params: map[string]string{"name": "June"},
			want:   "Hello, June!",
		},
		{name: "non-string leaf stringified", locale: "en", key: "home.count", want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tr.T(tt.locale, tt.key, tt.params); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
			}
		})
	}
}

func TestTranslatorFunc(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "ja", "nav:\n  blog: ブログ\n")

	f := NewTranslator(dir).Func("ja")
	if got := f("nav.blog"); got != "ブログ" {
		t.Errorf("Func(\"ja\")(\"nav.blog\") = %q, want %q", got, "ブログ")
	}
}

func TestTranslatorEmptyDir(t *testing.T) {
	tr := NewTranslator(t.TempDir())
	if got := tr.T("en", "nav.blog", nil); got != "nav.blog" {
		t.Errorf("T with no dictionaries = %q, want key itself", got)
	}
}
