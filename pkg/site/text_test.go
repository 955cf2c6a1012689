package site

import (
	"strings"
	"testing"

	"github.com/scaduxx/folio/pkg/content"
)

func TestRenderText(t *testing.T) {
	tests := []struct {
		name   string
		blocks []content.Block
		want   string
	}{
		{
			name:   "normal",
			blocks: []content.Block{content.Paragraph("normal", "Hello")},
			want:   `<p class="pt-normal">Hello</p>`,
		},
		{
			name:   "heading",
			blocks: []content.Block{content.Paragraph("h2", "Process")},
			want:   `<h2 class="pt-h2">Process</h2>`,
		},
		{
			name:   "unknown style",
			blocks: []content.Block{content.Paragraph("h6", "Small")},
			want:   `<p class="pt-normal">Small</p>`,
		},
		{
			name:   "blockquote escapes",
			blocks: []content.Block{content.Paragraph("blockquote", "<b>&")},
			want:   `<blockquote class="pt-blockquote">&lt;b&gt;&amp;</blockquote>`,
		},
		{
			name: "link and decorator",
			blocks: []content.Block{{
				Type:     content.BlockText,
				Style:    "normal",
				Spans:    []content.Span{{Text: "see "}, {Text: "site", Marks: []string{"strong", "l1"}}},
				MarkDefs: []content.MarkDef{{Key: "l1", Type: "link", Href: "https://example.com"}},
			}},
			want: `<p class="pt-normal">see <strong><a href="https://example.com" target="_blank" rel="noreferrer">site</a></strong></p>`,
		},
		{
			name: "unsafe link dropped",
			blocks: []content.Block{{
				Type:     content.BlockText,
				Spans:    []content.Span{{Text: "x", Marks: []string{"l1"}}},
				MarkDefs: []content.MarkDef{{Key: "l1", Type: "link", Href: "javascript:alert(1)"}},
			}},
			want: `<p class="pt-normal">x</p>`,
		},
		{
			name:   "markdown",
			blocks: []content.Block{{Type: content.BlockMarkdown, Markdown: "**bold**"}},
			want:   "<p><strong>bold</strong></p>\n",
		},
		{
			name:   "images skipped",
			blocks: []content.Block{{Type: content.BlockImage, Image: &content.Image{URL: "x"}}},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderText(tt.blocks)
			if err != nil {
				t.Fatalf("RenderText: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("RenderText() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderTextMarkdownRawHTML(t *testing.T) {
	got, err := RenderText([]content.Block{{Type: content.BlockMarkdown, Markdown: "<script>x</script>"}})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "<script>") {
		t.Errorf("raw html should be omitted, got %s", got)
	}
}
