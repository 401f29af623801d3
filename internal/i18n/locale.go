// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n provides the supported-locale registry, request locale
// negotiation, and translation-string lookup for the public site.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// supportedLocales is the fixed, process-wide list of locale codes the site
// serves content in. Order matters only for display purposes.
var supportedLocales = []string{"en", "ko", "zh", "ja"}

// DefaultLocale is the fallback used when negotiation finds no match and
// when a localized content file is absent.
const DefaultLocale = "en"

// LocaleNames maps locale codes to their native display names, used by the
// language selector in templates.
var LocaleNames = map[string]string{
	"en": "English",
	"ko": "한국어",
	"zh": "中文",
	"ja": "日本語",
}

// Supported returns a copy of the supported locale codes.
func Supported() []string {
	out := make([]string, len(supportedLocales))
	copy(out, supportedLocales)
	return out
}

// IsSupported reports whether code is one of the supported locales.
func IsSupported(code string) bool {
	for _, l := range supportedLocales {
		if l == code {
			return true
		}
	}
	return false
}

// Negotiate picks one supported locale for a request.
//
// A cookie value that names a supported locale always wins. Otherwise the
// Accept-Language header is scanned in header order (first match wins, not
// a q-weight negotiation): each entry's primary language subtag is matched
// against the supported set. If nothing matches, DefaultLocale is returned.
func Negotiate(cookieValue, acceptLanguage string) string {
	if IsSupported(cookieValue) {
		return cookieValue
	}

	for _, entry := range strings.Split(acceptLanguage, ",") {
		tag := entry
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}

		parsed, err := language.Parse(tag)
		if err != nil {
			// Malformed entries are skipped, not fatal.
			continue
		}
		base, _ := parsed.Base()
		if code := strings.ToLower(base.String()); IsSupported(code) {
			return code
		}
	}

	return DefaultLocale
}
