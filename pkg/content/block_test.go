package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func img(url string) Block { return Block{Type: BlockImage, Image: &Image{URL: url}} }

func TestGroupBlocks(t *testing.T) {
	p1 := Paragraph("normal", "one")
	p2 := Paragraph("h2", "two")
	p3 := Block{Type: BlockMarkdown, Markdown: "**three**"}
	i1, i2, i3, i4 := img("1.jpg"), img("2.jpg"), img("3.jpg"), img("4.jpg")

	tests := []struct {
		name   string
		blocks []Block
		want   []Group
	}{
		{
			name:   "empty",
			blocks: nil,
			want:   nil,
		},
		{
			name:   "text only",
			blocks: []Block{p1, p2, p3},
			want:   []Group{{Kind: GroupText, Blocks: []Block{p1, p2, p3}}},
		},
		{
			name:   "mixed",
			blocks: []Block{p1, p2, i1, i2, i3, p3, i4},
			want: []Group{
				{Kind: GroupText, Blocks: []Block{p1, p2}},
				{Kind: GroupImagePair, Blocks: []Block{i1, i2}},
				{Kind: GroupImage, Blocks: []Block{i3}},
				{Kind: GroupText, Blocks: []Block{p3}},
				{Kind: GroupImage, Blocks: []Block{i4}},
			},
		},
		{
			name:   "four images make two pairs",
			blocks: []Block{i1, i2, i3, i4},
			want: []Group{
				{Kind: GroupImagePair, Blocks: []Block{i1, i2}},
				{Kind: GroupImagePair, Blocks: []Block{i3, i4}},
			},
		},
		{
			name:   "text between single images",
			blocks: []Block{i1, p1, i2, p2},
			want: []Group{
				{Kind: GroupImage, Blocks: []Block{i1}},
				{Kind: GroupText, Blocks: []Block{p1}},
				{Kind: GroupImage, Blocks: []Block{i2}},
				{Kind: GroupText, Blocks: []Block{p2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GroupBlocks(tt.blocks)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GroupBlocks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupBlocksCoversEveryBlock(t *testing.T) {
	blocks := []Block{img("a"), Paragraph("", "x"), img("b"), img("c"), img("d"), Paragraph("", "y"), Paragraph("", "z")}
	var n int
	for _, g := range GroupBlocks(blocks) {
		n += len(g.Blocks)
	}
	if n != len(blocks) {
		t.Errorf("groups cover %d blocks, want %d", n, len(blocks))
	}
}
