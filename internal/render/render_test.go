package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"polyblog/internal/i18n"
)

// testTranslator loads a minimal English dictionary into a temp dir.
func testTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	dir := t.TempDir()
	dict := `
nav:
  blog: Blog
  portfolio: Portfolio
  career: Career
  contact: Contact
blog:
  empty: No posts yet.
`
	if err := os.WriteFile(filepath.Join(dir, "en.yaml"), []byte(dict), 0o644); err != nil {
		t.Fatal(err)
	}
	return i18n.NewTranslator(dir)
}

func TestNew(t *testing.T) {
	r, err := New("polyblog", testTranslator(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r == nil {
		t.Fatal("New returned nil renderer")
	}
}

func TestPageUnknownTemplate(t *testing.T) {
	r, err := New("polyblog", testTranslator(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Page("nope", "en", "", "", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}

func TestPageHome(t *testing.T) {
	r, err := New("polyblog", testTranslator(t))
	if err != nil {
		t.Fatal(err)
	}

	data := map[string]any{
		"RecentPosts": []map[string]string{
			{"Slug": "first-post", "Title": "First Post", "Date": "2024-06-01"},
		},
		"FeaturedProjects": nil,
	}
	out, err := r.Page("home", "en", "", "", data)
	if err != nil {
		t.Fatalf("Page(home): %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<html lang="en">`,
		"polyblog",
		">Blog</a>", // translated nav entry
		`/en/blog/first-post`,
		"First Post",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("home output missing %q", want)
		}
	}
}

func TestPageTitle(t *testing.T) {
	r, err := New("polyblog", testTranslator(t))
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Page("career", "en", "/career", "Career", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<title>Career · polyblog</title>") {
		t.Error("page title missing")
	}
}

func TestPageLocaleSwitcherKeepsPath(t *testing.T) {
	r, err := New("polyblog", testTranslator(t))
	if err != nil {
		t.Fatal(err)
	}

	out, err := r.Page("career", "en", "/career", "Career", nil)
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)

	// The switcher links the same page in every locale.
	for _, code := range i18n.Supported() {
		want := `href="/` + code + `/career"`
		if !strings.Contains(html, want) {
			t.Errorf("locale switcher missing %q", want)
		}
	}
}

func TestPageBlogPagination(t *testing.T) {
	r, err := New("polyblog", testTranslator(t))
	if err != nil {
		t.Fatal(err)
	}

	data := map[string]any{
		"Posts":           nil,
		"Categories":      nil,
		"PageQuerySuffix": "&category=ai",
		"Pagination": map[string]any{
			"CurrentPage": 2, "TotalPages": 3,
			"PrevPage": 1, "NextPage": 3,
			"HasPrev": true, "HasNext": true,
		},
	}
	out, err := r.Page("blog", "en", "/blog", "Blog", data)
	if err != nil {
		t.Fatalf("Page(blog): %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"2 / 3",
		`?page=1&amp;category=ai`,
		`?page=3&amp;category=ai`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("blog output missing %q", want)
		}
	}
}

// Error pages render with no data at all; a regression here would turn
// every 404 into a 500.
func TestStatusPagesRenderWithNilData(t *testing.T) {
	r, err := New("polyblog", testTranslator(t))
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"notfound", "error"} {
		t.Run(name, func(t *testing.T) {
			if _, err := r.Page(name, "en", "", "", nil); err != nil {
				t.Errorf("Page(%s) with nil data: %v", name, err)
			}
		})
	}
}

func TestPageDataTranslatorFallback(t *testing.T) {
	d := &PageData{Locale: "en"}
	if got := d.T("nav.blog"); got != "nav.blog" {
		t.Errorf("T without translator = %q, want the key", got)
	}
}
