// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// embed.go implements the goldmark extension behind the two custom image
// rules: an inline parser for the wiki-style ![[name|width]] syntax, and a
// node renderer that emits lazy-loading <img> tags for both embeds and
// regular markdown images that point at the local /images/ tree.
package markdown

import (
	"regexp"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// localImagePrefix marks image URLs served from the site's own static
// tree. Only these get the hand-built lazy <img> treatment; external
// images render as plain tags.
const localImagePrefix = "/images/"

// imageStyleFull is the inline style applied to full-width content images.
const imageStyleFull = "width: 100%; height: auto; border-radius: 8px; margin: 1rem 0;"

// embedImage is the inline AST node produced for ![[name|width]].
type embedImage struct {
	ast.BaseInline
	Name  string
	Width int // pixels; 0 means full width
}

var kindEmbedImage = ast.NewNodeKind("EmbedImage")

func (n *embedImage) Kind() ast.NodeKind { return kindEmbedImage }

func (n *embedImage) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":  n.Name,
		"Width": strconv.Itoa(n.Width),
	}, nil)
}

// embedPattern matches ![[name]] and ![[name|123]] at the reader position.
var embedPattern = regexp.MustCompile(`^!\[\[([^|\]\n]+)(?:\|(\d+))?\]\]`)

// embedParser parses the wiki embed syntax. It runs before the standard
// link/image parser so that ![[ is not consumed as a bracketed image.
type embedParser struct{}

func (p *embedParser) Trigger() []byte { return []byte{'!'} }

func (p *embedParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	m := embedPattern.FindSubmatch(line)
	if m == nil {
		return nil
	}

	width := 0
	if len(m[2]) > 0 {
		width, _ = strconv.Atoi(string(m[2]))
	}

	block.Advance(len(m[0]))
	return &embedImage{Name: string(m[1]), Width: width}
}

// imageRenderer renders embedImage nodes and overrides the default
// rendering of ast.Image for local images.
type imageRenderer struct{}

func (r *imageRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindEmbedImage, r.renderEmbed)
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *imageRenderer) renderEmbed(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*embedImage)

	style := imageStyleFull
	if n.Width > 0 {
		style = "width: " + strconv.Itoa(n.Width) + "px; max-width: 100%; height: auto; border-radius: 8px; margin: 1rem 0;"
	}
	writeLazyImg(w, localImagePrefix+n.Name, n.Name, style)
	return ast.WalkContinue, nil
}

func (r *imageRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	dest := string(n.Destination)
	alt := string(childText(n, source))

	if len(dest) >= len(localImagePrefix) && dest[:len(localImagePrefix)] == localImagePrefix {
		writeLazyImg(w, dest, alt, imageStyleFull)
		return ast.WalkSkipChildren, nil
	}

	// Non-local image: plain tag, same escaping as goldmark's default.
	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	if len(n.Title) > 0 {
		_, _ = w.WriteString(`" title="`)
		_, _ = w.Write(util.EscapeHTML(n.Title))
	}
	_, _ = w.WriteString(`">`)
	return ast.WalkSkipChildren, nil
}

// writeLazyImg emits the hand-built lazy-loading image tag used for all
// local content images.
func writeLazyImg(w util.BufWriter, src, alt, style string) {
	_, _ = w.WriteString(`<img src="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(src), true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_, _ = w.WriteString(`" loading="lazy" style="`)
	_, _ = w.WriteString(style)
	_, _ = w.WriteString(`" class="blog-image">`)
}

// childText collects the raw text of a node's direct Text children, used
// for image alt attributes.
func childText(n ast.Node, source []byte) []byte {
	var out []byte
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			out = append(out, t.Segment.Value(source)...)
		}
	}
	return out
}

// imageEmbeds wires the parser and renderer into a goldmark instance.
type imageEmbeds struct{}

func (e *imageEmbeds) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		// Must outrank the standard link parser (priority 200) so ![[
		// is seen first.
		parser.WithInlineParsers(util.Prioritized(&embedParser{}, 150)),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(util.Prioritized(&imageRenderer{}, 500)),
	)
}
