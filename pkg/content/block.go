package content

// Block types.
const (
	BlockText     = "block"
	BlockImage    = "image"
	BlockMarkdown = "markdown"
)

// Block is one element of a project body. Text blocks carry styled spans,
// image blocks an Image, and markdown blocks raw markdown source.
type Block struct {
	Type     string    `json:"type" yaml:"type" toml:"type"`
	Style    string    `json:"style,omitempty" yaml:"style" toml:"style"`
	Spans    []Span    `json:"spans,omitempty" yaml:"spans" toml:"spans"`
	MarkDefs []MarkDef `json:"markDefs,omitempty" yaml:"mark_defs" toml:"mark_defs"`
	Image    *Image    `json:"image,omitempty" yaml:"image" toml:"image"`
	Markdown string    `json:"markdown,omitempty" yaml:"markdown" toml:"markdown"`
}

// IsImage reports whether b is an image block.
func (b Block) IsImage() bool { return b.Type == BlockImage }

// Span is a run of text with zero or more marks. A mark is either a
// decorator such as "strong" or the key of a [MarkDef].
type Span struct {
	Text  string   `json:"text" yaml:"text" toml:"text"`
	Marks []string `json:"marks,omitempty" yaml:"marks" toml:"marks"`
}

// MarkDef is an annotation referenced from span marks by Key.
type MarkDef struct {
	Key  string `json:"key" yaml:"key" toml:"key"`
	Type string `json:"type" yaml:"type" toml:"type"`
	Href string `json:"href,omitempty" yaml:"href" toml:"href"`
}

// Paragraph returns a plain text block with a single unmarked span.
func Paragraph(style, text string) Block {
	return Block{Type: BlockText, Style: style, Spans: []Span{{Text: text}}}
}

// GroupKind classifies a [Group].
type GroupKind string

const (
	GroupText      GroupKind = "text"
	GroupImage     GroupKind = "image"
	GroupImagePair GroupKind = "image-pair"
)

// Group is a run of body blocks rendered together.
type Group struct {
	Kind   GroupKind
	Blocks []Block
}

// GroupBlocks partitions a project body for rendering. Consecutive non-image
// blocks form one text group. Consecutive images are paired two at a time
// and a leftover image stands alone.
func GroupBlocks(blocks []Block) []Group {
	var groups []Group
	for i := 0; i < len(blocks); {
		if blocks[i].IsImage() {
			if i+1 < len(blocks) && blocks[i+1].IsImage() {
				groups = append(groups, Group{Kind: GroupImagePair, Blocks: blocks[i : i+2]})
				i += 2
			} else {
				groups = append(groups, Group{Kind: GroupImage, Blocks: blocks[i : i+1]})
				i++
			}
			continue
		}

		start := i
		for i < len(blocks) && !blocks[i].IsImage() {
			i++
		}
		groups = append(groups, Group{Kind: GroupText, Blocks: blocks[start:i]})
	}
	return groups
}
