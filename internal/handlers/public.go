// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the public site: home, blog listing and posts,
// portfolio, career, and contact pages, all scoped under a locale prefix.
// Rendered pages are checked against and stored in the optional Valkey
// page cache.
package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"polyblog/internal/cache"
	"polyblog/internal/content"
	"polyblog/internal/markdown"
	"polyblog/internal/paginate"
	"polyblog/internal/rank"
	"polyblog/internal/render"
	"polyblog/internal/taxonomy"
)

// postsPerPage is the blog listing page size.
const postsPerPage = 9

// relatedLimit caps the "see also" list under a post.
const relatedLimit = 3

// Public groups the public-site handlers and their dependencies.
type Public struct {
	renderer  *render.Renderer
	posts     *content.PostRepository
	portfolio *content.PortfolioRepository
	taxonomy  *taxonomy.Store
	pageCache *cache.PageCache
}

// NewPublic creates the public handler group. pageCache may be a disabled
// cache when Valkey is not configured.
func NewPublic(renderer *render.Renderer, posts *content.PostRepository, portfolio *content.PortfolioRepository, tax *taxonomy.Store, pageCache *cache.PageCache) *Public {
	return &Public{
		renderer:  renderer,
		posts:     posts,
		portfolio: portfolio,
		taxonomy:  tax,
		pageCache: pageCache,
	}
}

// CategoryLink is a localized category reference for templates.
type CategoryLink struct {
	ID     string
	Name   string
	Active bool
}

// PostCard is the listing-page projection of a post.
type PostCard struct {
	Slug       string
	Title      string
	Date       string
	Excerpt    string
	ReadTime   int
	Categories []CategoryLink
}

// PostView is the full post as rendered on its own page.
type PostView struct {
	Title    string
	Date     string
	Author   string
	ReadTime int
	Tags     []string
	Crumbs   []taxonomy.Crumb
	Body     template.HTML
}

// ProjectCard is the listing-page projection of a portfolio item.
type ProjectCard struct {
	Slug        string
	Title       string
	Description string
	Tech        []string
}

// ProjectView is the full portfolio item as rendered on its own page.
type ProjectView struct {
	Title       string
	Description string
	Tech        []string
	ProjectURL  string
	GithubURL   string
	Body        template.HTML
}

// pageControl is the pagination view model for listing templates.
type pageControl struct {
	CurrentPage int
	TotalPages  int
	PrevPage    int
	NextPage    int
	HasPrev     bool
	HasNext     bool
}

// Home renders the locale's landing page with recent posts and featured
// projects.
func (h *Public) Home(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")

	if h.serveCached(w, r, locale) {
		return
	}

	recent := h.posts.Metadata(locale)
	if len(recent) > 5 {
		recent = recent[:5]
	}

	data := map[string]any{
		"RecentPosts":      h.postCards(recent, locale, ""),
		"FeaturedProjects": h.projectCards(h.portfolio.Featured(locale, 3)),
	}
	h.servePage(w, r, "home", locale, "", "", data)
}

// BlogList renders the paginated blog listing with optional free-text
// search (?q=) and category filter (?category=). Changing the filter
// resets to page 1 because the filter links carry no page parameter.
func (h *Public) BlogList(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")

	if h.serveCached(w, r, locale) {
		return
	}

	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	var posts []content.Post
	switch {
	case query != "":
		posts = h.posts.Search(query, locale)
	case category != "":
		posts = h.posts.ByCategory(category, locale)
	default:
		posts = h.posts.Metadata(locale)
	}

	pg := paginate.Page(posts, postsPerPage, page)

	suffix := ""
	if category != "" {
		suffix = "&category=" + category
	}
	if query != "" {
		suffix = "&q=" + query
	}

	data := map[string]any{
		"Posts":           h.postCards(pg.Items, locale, category),
		"Categories":      h.categoryLinks(locale, category),
		"ActiveCategory":  category,
		"Query":           query,
		"PageQuerySuffix": suffix,
		"Pagination": pageControl{
			CurrentPage: pg.CurrentPage,
			TotalPages:  pg.TotalPages,
			PrevPage:    pg.CurrentPage - 1,
			NextPage:    pg.CurrentPage + 1,
			HasPrev:     pg.HasPrev,
			HasNext:     pg.HasNext,
		},
	}
	h.servePage(w, r, "blog", locale, "/blog", "Blog", data)
}

// BlogPost renders a single post with its related list and prev/next
// navigation. A slug missing in every locale yields the 404 page; a
// markdown failure yields the 500 page.
func (h *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	slug := chi.URLParam(r, "slug")

	if h.serveCached(w, r, locale) {
		return
	}

	post, err := h.posts.BySlug(slug, locale)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		slog.Error("load post failed", "slug", slug, "locale", locale, "error", err)
		h.serverError(w, r, locale)
		return
	}

	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		slog.Error("render post body failed", "slug", slug, "error", err)
		h.serverError(w, r, locale)
		return
	}

	var crumbs []taxonomy.Crumb
	if len(post.Categories) > 0 {
		crumbs = h.taxonomy.Path(post.Categories[0], locale)
	}

	pool := h.posts.Metadata(locale)
	related := rank.Related(post, pool, relatedLimit)

	data := map[string]any{
		"Post": PostView{
			Title:    post.Title,
			Date:     displayDate(post.Date),
			Author:   post.Author,
			ReadTime: post.ReadTime,
			Tags:     post.Tags,
			Crumbs:   crumbs,
			Body:     template.HTML(body),
		},
		"Related": h.postCards(related, locale, ""),
	}
	if prev, next, ok := h.posts.PrevNext(post.Slug, locale); ok {
		if prev.Slug != "" {
			data["Prev"] = PostCard{Slug: prev.Slug, Title: prev.Title}
		}
		if next.Slug != "" {
			data["Next"] = PostCard{Slug: next.Slug, Title: next.Title}
		}
	}

	h.servePage(w, r, "post", locale, "/blog/"+post.Slug, post.Title, data)
}

// PortfolioList renders the portfolio grid with an optional ?tech= filter.
func (h *Public) PortfolioList(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")

	if h.serveCached(w, r, locale) {
		return
	}

	tech := r.URL.Query().Get("tech")
	var items []content.Portfolio
	if tech != "" {
		items = h.portfolio.ByTech(tech, locale)
	} else {
		items = h.portfolio.Metadata(locale)
	}

	data := map[string]any{
		"Projects":     h.projectCards(items),
		"Technologies": h.portfolio.Technologies(locale),
	}
	h.servePage(w, r, "portfolio", locale, "/portfolio", "Portfolio", data)
}

// PortfolioDetail renders a single portfolio item.
func (h *Public) PortfolioDetail(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	slug := chi.URLParam(r, "slug")

	if h.serveCached(w, r, locale) {
		return
	}

	item, err := h.portfolio.BySlug(slug, locale)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			h.NotFound(w, r)
			return
		}
		slog.Error("load portfolio item failed", "slug", slug, "locale", locale, "error", err)
		h.serverError(w, r, locale)
		return
	}

	body, err := markdown.ToHTML(item.Content)
	if err != nil {
		slog.Error("render portfolio body failed", "slug", slug, "error", err)
		h.serverError(w, r, locale)
		return
	}

	data := map[string]any{
		"Project": ProjectView{
			Title:       item.Title,
			Description: item.Description,
			Tech:        item.Tech,
			ProjectURL:  item.ProjectURL,
			GithubURL:   item.GithubURL,
			Body:        template.HTML(body),
		},
	}
	h.servePage(w, r, "portfolio_item", locale, "/portfolio/"+item.Slug, item.Title, data)
}

// Career renders the static career page.
func (h *Public) Career(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	h.servePage(w, r, "career", locale, "/career", "Career", nil)
}

// Contact renders the static contact page.
func (h *Public) Contact(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	h.servePage(w, r, "contact", locale, "/contact", "Contact", nil)
}

// NotFound renders the localized 404 page. Mounted as the router's
// fallback handler, so the locale param may be absent.
func (h *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	locale := chi.URLParam(r, "locale")
	h.renderStatus(w, r, http.StatusNotFound, "notfound", locale)
}

// serverError renders the localized 500 page.
func (h *Public) serverError(w http.ResponseWriter, r *http.Request, locale string) {
	h.renderStatus(w, r, http.StatusInternalServerError, "error", locale)
}

func (h *Public) renderStatus(w http.ResponseWriter, r *http.Request, status int, tmpl, locale string) {
	if locale == "" {
		locale = "en"
	}
	page, err := h.renderer.Page(tmpl, locale, "", "", nil)
	if err != nil {
		// Last resort when even the error template fails.
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(page)
}

// serveCached writes a cached copy of the page when one exists. Only GET
// responses are cached; the key covers path and query so filtered and
// paginated listings cache independently.
func (h *Public) serveCached(w http.ResponseWriter, r *http.Request, locale string) bool {
	if !h.pageCache.Enabled() || r.Method != http.MethodGet {
		return false
	}
	cached, ok := h.pageCache.Get(r.Context(), cache.Key(locale, r.URL.RequestURI()))
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// servePage renders a page template, stores it in the page cache, and
// writes it out. Render failures fall through to the 500 page.
func (h *Public) servePage(w http.ResponseWriter, r *http.Request, tmpl, locale, path, title string, data map[string]any) {
	page, err := h.renderer.Page(tmpl, locale, path, title, data)
	if err != nil {
		slog.Error("render page failed", "template", tmpl, "locale", locale, "error", err)
		h.serverError(w, r, locale)
		return
	}

	if h.pageCache.Enabled() && r.Method == http.MethodGet {
		h.pageCache.Set(r.Context(), cache.Key(locale, r.URL.RequestURI()), page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// postCards converts posts to their card view models with localized
// category names.
func (h *Public) postCards(posts []content.Post, locale, activeCategory string) []PostCard {
	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		card := PostCard{
			Slug:     p.Slug,
			Title:    p.Title,
			Date:     displayDate(p.Date),
			Excerpt:  p.Excerpt,
			ReadTime: p.ReadTime,
		}
		for _, id := range p.Categories {
			card.Categories = append(card.Categories, CategoryLink{
				ID:     id,
				Name:   h.taxonomy.Name(id, locale),
				Active: strings.EqualFold(id, activeCategory),
			})
		}
		cards = append(cards, card)
	}
	return cards
}

// categoryLinks lists every leaf category with its localized name for the
// filter bar.
func (h *Public) categoryLinks(locale, active string) []CategoryLink {
	cats := h.taxonomy.Categories()
	links := make([]CategoryLink, 0, len(cats))
	for _, c := range cats {
		links = append(links, CategoryLink{
			ID:     c.ID,
			Name:   h.taxonomy.Name(c.ID, locale),
			Active: strings.EqualFold(c.ID, active),
		})
	}
	return links
}

func (h *Public) projectCards(items []content.Portfolio) []ProjectCard {
	cards := make([]ProjectCard, 0, len(items))
	for _, p := range items {
		cards = append(cards, ProjectCard{
			Slug:        p.Slug,
			Title:       p.Title,
			Description: p.Description,
			Tech:        p.Tech,
		})
	}
	return cards
}

// displayDate trims an ISO timestamp to its date part for listings.
func displayDate(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
