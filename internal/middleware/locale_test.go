// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func localeTestHandler() http.Handler {
	mw := LocaleRedirect(false)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestLocaleRedirect(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		cookie       string
		acceptLang   string
		wantStatus   int
		wantLocation string
		wantCookie   string
	}{
		{
			name:         "header negotiation",
			path:         "/blog/my-post",
			acceptLang:   "ko-KR,en;q=0.8",
			wantStatus:   http.StatusFound,
			wantLocation: "/ko/blog/my-post",
			wantCookie:   "ko",
		},
		{
			name:         "cookie beats header",
			path:         "/blog",
			cookie:       "ja",
			acceptLang:   "ko-KR",
			wantStatus:   http.StatusFound,
			wantLocation: "/ja/blog",
			wantCookie:   "ja",
		},
		{
			name:         "no signals falls to default",
			path:         "/portfolio",
			wantStatus:   http.StatusFound,
			wantLocation: "/en/portfolio",
			wantCookie:   "en",
		},
		{
			name:         "root path",
			path:         "/",
			acceptLang:   "zh",
			wantStatus:   http.StatusFound,
			wantLocation: "/zh",
			wantCookie:   "zh",
		},
		{
			name:       "locale-prefixed passes through",
			path:       "/en/blog/my-post",
			wantStatus: http.StatusOK,
		},
		{
			name:       "health passes through",
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "api passes through",
			path:       "/api/posts",
			wantStatus: http.StatusOK,
		},
		{
			name:       "static passes through",
			path:       "/static/site.css",
			wantStatus: http.StatusOK,
		},
		{
			name:       "images pass through",
			path:       "/images/cover.png",
			wantStatus: http.StatusOK,
		},
		{
			name:       "dotted file passes through",
			path:       "/favicon.ico",
			wantStatus: http.StatusOK,
		},
	}

	h := localeTestHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LocaleCookieName, Value: tt.cookie})
			}
			if tt.acceptLang != "" {
				req.Header.Set("Accept-Language", tt.acceptLang)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantLocation != "" {
				if got := rec.Header().Get("Location"); got != tt.wantLocation {
					t.Errorf("Location = %q, want %q", got, tt.wantLocation)
				}
			}
			if tt.wantCookie != "" {
				cookie := findCookie(rec, LocaleCookieName)
				if cookie == nil {
					t.Fatal("locale cookie not set")
				}
				if cookie.Value != tt.wantCookie {
					t.Errorf("cookie = %q, want %q", cookie.Value, tt.wantCookie)
				}
				if cookie.HttpOnly {
					t.Error("locale cookie must be readable client-side")
				}
			}
		})
	}
}

func TestLocaleRedirectKeepsQuery(t *testing.T) {
	h := localeTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/blog?q=go&page=2", nil)
	req.Header.Set("Accept-Language", "ja")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Location"); got != "/ja/blog?q=go&page=2" {
		t.Errorf("Location = %q", got)
	}
}

func TestLocaleRedirectSecureCookie(t *testing.T) {
	mw := LocaleRedirect(true)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/blog", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookie := findCookie(rec, LocaleCookieName)
	if cookie == nil {
		t.Fatal("locale cookie not set")
	}
	if !cookie.Secure {
		t.Error("cookie must be Secure when secureCookies is on")
	}
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
