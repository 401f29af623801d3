// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"path"
	"strings"

	"polyblog/internal/i18n"
)

// LocaleCookieName is the cookie recording a visitor's chosen locale.
const LocaleCookieName = "locale"

// localeCookieMaxAge keeps the preference for about a year.
const localeCookieMaxAge = 365 * 24 * 60 * 60

// LocaleRedirect rewrites requests without a locale prefix to
// /{locale}/... using cookie-then-Accept-Language negotiation, and records
// the choice in a persistent cookie so later requests short-circuit on the
// cookie branch.
//
// Static assets (any path whose last segment contains a dot), API routes,
// the health check, and paths already carrying a supported locale prefix
// pass through untouched. When secureCookies is true the cookie is marked
// Secure (HTTPS-only).
func LocaleRedirect(secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path

			if skipNegotiation(p) {
				next.ServeHTTP(w, r)
				return
			}

			var cookieValue string
			if c, err := r.Cookie(LocaleCookieName); err == nil {
				cookieValue = c.Value
			}
			locale := i18n.Negotiate(cookieValue, r.Header.Get("Accept-Language"))

			target := "/" + locale
			if p != "/" {
				target += p
			}
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}

			http.SetCookie(w, &http.Cookie{
				Name:     LocaleCookieName,
				Value:    locale,
				Path:     "/",
				MaxAge:   localeCookieMaxAge,
				HttpOnly: false, // the language selector reads it client-side
				Secure:   secureCookies,
				SameSite: http.SameSiteLaxMode,
			})
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}

// skipNegotiation reports whether a path is exempt from locale rewriting.
func skipNegotiation(p string) bool {
	if strings.HasPrefix(p, "/api/") || p == "/api" || p == "/health" {
		return true
	}
	if strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/images/") {
		return true
	}
	// Public files: favicon.ico, robots.txt, fonts, etc.
	if strings.Contains(path.Base(p), ".") {
		return true
	}

	// Already locale-prefixed?
	seg := strings.TrimPrefix(p, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	return i18n.IsSupported(seg)
}
