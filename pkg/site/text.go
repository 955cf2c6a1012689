package site

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
)

// blockTags maps text block styles to elements. Unknown styles render as
// paragraphs.
var blockTags = map[string]atom.Atom{
	"normal":     atom.P,
	"h2":         atom.H2,
	"h3":         atom.H3,
	"blockquote": atom.Blockquote,
}

// decorators maps span decorator marks to inline elements.
var decorators = map[string]atom.Atom{
	"strong":    atom.Strong,
	"em":        atom.Em,
	"code":      atom.Code,
	"underline": atom.U,
}

var markdown = goldmark.New()

// RenderText renders a run of text and markdown blocks to HTML.
func RenderText(blocks []content.Block) (template.HTML, error) {
	var buf bytes.Buffer
	for _, b := range blocks {
		switch b.Type {
		case content.BlockMarkdown:
			if err := markdown.Convert([]byte(b.Markdown), &buf); err != nil {
				return "", errors.Wrap(errors.ErrCodeInternal, err, "render markdown")
			}
		case content.BlockText:
			if err := html.Render(&buf, textBlock(b)); err != nil {
				return "", errors.Wrap(errors.ErrCodeInternal, err, "render block")
			}
		}
	}
	return template.HTML(buf.String()), nil
}

func textBlock(b content.Block) *html.Node {
	tag, ok := blockTags[b.Style]
	if !ok {
		tag = atom.P
	}
	n := element(tag)
	n.Attr = []html.Attribute{{Key: "class", Val: "pt-" + styleClass(b.Style)}}

	links := make(map[string]string, len(b.MarkDefs))
	for _, def := range b.MarkDefs {
		if def.Type == "link" && safeHref(def.Href) {
			links[def.Key] = def.Href
		}
	}

	for _, s := range b.Spans {
		n.AppendChild(span(s, links))
	}
	return n
}

// span wraps the text in one element per mark, outermost first.
func span(s content.Span, links map[string]string) *html.Node {
	var root, leaf *html.Node
	wrap := func(n *html.Node) {
		if leaf == nil {
			root = n
		} else {
			leaf.AppendChild(n)
		}
		leaf = n
	}

	for _, m := range s.Marks {
		if href, ok := links[m]; ok {
			a := element(atom.A)
			a.Attr = []html.Attribute{
				{Key: "href", Val: href},
				{Key: "target", Val: "_blank"},
				{Key: "rel", Val: "noreferrer"},
			}
			wrap(a)
		} else if tag, ok := decorators[m]; ok {
			wrap(element(tag))
		}
	}

	text := &html.Node{Type: html.TextNode, Data: s.Text}
	if leaf == nil {
		return text
	}
	leaf.AppendChild(text)
	return root
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func styleClass(style string) string {
	if _, ok := blockTags[style]; ok {
		return style
	}
	return "normal"
}

// safeHref reports whether href may be linked from content.
func safeHref(href string) bool {
	return errors.ValidateURL(href) == nil || strings.HasPrefix(href, "mailto:")
}
