package mdconverter

import (
	"fmt"
	"strings"

	"github.com/rgonek/delta-md-converter/converter"
)

// BlockKind identifies a parsed Markdown block.
type BlockKind string

const (
	BlockParagraph  BlockKind = "paragraph"
	BlockHeading    BlockKind = "heading"
	BlockListItem   BlockKind = "list_item"
	BlockCodeBlock  BlockKind = "code_block"
	BlockBlockquote BlockKind = "blockquote"
)

// Block is one structural unit of a Markdown document.
//
// Level is set for headings (1-6), Ordered and Indent for list items, Language for
// code blocks. A code block carries its body as a single PlainText run.
type Block struct {
	Kind     BlockKind `json:"kind"`
	Level    int       `json:"level,omitempty"`
	Ordered  bool      `json:"ordered,omitempty"`
	Indent   int       `json:"indent,omitempty"`
	Language string    `json:"language,omitempty"`
	Runs     []Run     `json:"runs,omitempty"`
}

// Text returns the concatenated run text of the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, run := range b.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

// Parse converts Markdown into blocks using the default config. It never fails:
// malformed Markdown degrades to literal text.
func Parse(markdown string) []Block {
	p := newParser(Config{}.applyDefaults(), markdown)
	return p.parse()
}

type parser struct {
	config    Config
	lines     []string
	blocks    []Block
	paragraph []string
	warnings  []converter.Warning
}

func newParser(config Config, markdown string) *parser {
	markdown = strings.ToValidUTF8(markdown, "\uFFFD")
	markdown = strings.ReplaceAll(markdown, "\r\n", "\n")
	markdown = strings.ReplaceAll(markdown, "\r", "\n")

	return &parser{
		config: config,
		lines:  strings.Split(markdown, "\n"),
	}
}

// parse makes a single forward pass over the lines; only a code fence looks
// ahead, for its closing line.
func (p *parser) parse() []Block {
	for index := 0; index < len(p.lines); index++ {
		line := p.lines[index]

		if fence, indent, language, ok := matchFenceOpen(line); ok {
			p.flushParagraph()
			index = p.parseCodeBlock(index, fence, indent, language)
			continue
		}

		if strings.TrimSpace(line) == "" {
			p.flushParagraph()
			continue
		}

		if level, content, ok := matchHeading(line); ok {
			p.flushParagraph()
			p.blocks = append(p.blocks, Block{
				Kind:  BlockHeading,
				Level: level,
				Runs:  parseInline(content),
			})
			continue
		}

		if m := blockquoteRe.FindStringSubmatch(line); m != nil {
			p.flushParagraph()
			p.blocks = append(p.blocks, Block{
				Kind: BlockBlockquote,
				Runs: parseInline(strings.TrimSpace(m[1])),
			})
			continue
		}

		if lead, ordered, content, ok := matchListItem(line); ok {
			p.flushParagraph()
			p.blocks = append(p.blocks, Block{
				Kind:    BlockListItem,
				Ordered: ordered,
				Indent:  p.listIndent(lead, index),
				Runs:    parseInline(strings.TrimSpace(content)),
			})
			continue
		}

		p.paragraph = append(p.paragraph, strings.TrimSpace(line))
	}

	p.flushParagraph()
	return p.blocks
}

// flushParagraph closes the pending paragraph; soft-wrapped lines join with a space.
func (p *parser) flushParagraph() {
	if len(p.paragraph) == 0 {
		return
	}
	p.blocks = append(p.blocks, Block{
		Kind: BlockParagraph,
		Runs: parseInline(strings.Join(p.paragraph, " ")),
	})
	p.paragraph = nil
}

// parseCodeBlock consumes a fenced block verbatim and returns the index of its last
// line. Up to the opening fence's indentation is removed from each body line.
func (p *parser) parseCodeBlock(start int, fence, indent, language string) int {
	var body []string
	index := start + 1
	closed := false
	for ; index < len(p.lines); index++ {
		line := p.lines[index]
		if isFenceClose(line, fence) {
			closed = true
			break
		}
		body = append(body, trimIndent(line, len(indent)))
	}

	if !closed {
		p.addWarning(converter.WarningUnclosedFence, "code-block",
			fmt.Sprintf("code fence opened on line %d is never closed", start+1))
		index = len(p.lines) - 1
		// A trailing newline in the source leaves one empty line that is not content.
		if len(body) > 0 && body[len(body)-1] == "" {
			body = body[:len(body)-1]
		}
	}

	block := Block{Kind: BlockCodeBlock, Language: language}
	if text := strings.Join(body, "\n"); text != "" {
		block.Runs = []Run{{Kind: RunPlain, Text: text}}
	}
	p.blocks = append(p.blocks, block)

	return index
}

func trimIndent(line string, width int) string {
	for i := 0; i < width && strings.HasPrefix(line, " "); i++ {
		line = line[1:]
	}
	return line
}

func (p *parser) addWarning(warnType converter.WarningType, element, message string) {
	p.warnings = append(p.warnings, converter.Warning{
		Type:    warnType,
		Element: element,
		Message: message,
	})
}
