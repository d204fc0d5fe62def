package mdconverter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// RunKind identifies the formatting of an inline run.
type RunKind string

const (
	RunPlain  RunKind = "text"
	RunBold   RunKind = "bold"
	RunItalic RunKind = "italic"
	RunCode   RunKind = "code"
	RunLink   RunKind = "link"
)

// Run is a span of text carrying a single formatting treatment.
type Run struct {
	Kind RunKind `json:"kind"`
	Text string  `json:"text"`
	Href string  `json:"href,omitempty"`
}

// parseInline splits block text into runs. Markers must open and close within the
// text; anything unmatched stays literal.
//
// Emphasis does not nest: the first marker that matches wins and any other markers
// inside it are kept as literal characters of that run. "***x***" therefore reads as
// bold "*x" followed by a literal "*".
func parseInline(text string) []Run {
	var (
		runs  []Run
		plain strings.Builder
	)

	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, Run{Kind: RunPlain, Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		var (
			run  Run
			next int
			ok   bool
		)

		switch text[i] {
		case '\\':
			if i+1 < len(text) && isEscapable(text[i+1]) {
				plain.WriteByte(text[i+1])
				i += 2
				continue
			}
		case '`':
			run, next, ok = matchCodeSpan(text, i)
		case '*':
			if strings.HasPrefix(text[i:], "**") {
				run, next, ok = matchBold(text, i)
				if !ok {
					plain.WriteString("**")
					i += 2
					continue
				}
			} else {
				run, next, ok = matchStarItalic(text, i)
			}
		case '_':
			run, next, ok = matchUnderscoreItalic(text, i)
		case '[':
			run, next, ok = matchLink(text, i)
		}

		if !ok {
			if text[i] == '`' {
				// an unmatched backtick run stays literal as a whole
				n := countRun(text, i, '`')
				plain.WriteString(text[i : i+n])
				i += n
				continue
			}
			plain.WriteByte(text[i])
			i++
			continue
		}

		flush()
		runs = append(runs, run)
		i = next
	}

	flush()
	return runs
}

// matchCodeSpan matches a backtick string closed by a run of the same length.
// One space is stripped from both ends when both are present.
func matchCodeSpan(text string, start int) (Run, int, bool) {
	n := countRun(text, start, '`')
	for i := start + n; i < len(text); {
		if text[i] != '`' {
			i++
			continue
		}
		m := countRun(text, i, '`')
		if m != n {
			i += m
			continue
		}

		content := text[start+n : i]
		if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && strings.TrimSpace(content) != "" {
			content = content[1 : len(content)-1]
		}
		if content == "" {
			return Run{}, 0, false
		}
		return Run{Kind: RunCode, Text: content}, i + m, true
	}
	return Run{}, 0, false
}

func matchBold(text string, start int) (Run, int, bool) {
	end := strings.Index(text[start+2:], "**")
	if end < 0 {
		return Run{}, 0, false
	}
	content := text[start+2 : start+2+end]
	if !validEmphasis(content) {
		return Run{}, 0, false
	}
	return Run{Kind: RunBold, Text: content}, start + 2 + end + 2, true
}

// matchStarItalic closes on the first lone '*'; doubled stars inside are literal.
func matchStarItalic(text string, start int) (Run, int, bool) {
	for i := start + 1; i < len(text); {
		if text[i] != '*' {
			i++
			continue
		}
		if n := countRun(text, i, '*'); n > 1 {
			i += n
			continue
		}

		content := text[start+1 : i]
		if !validEmphasis(content) {
			return Run{}, 0, false
		}
		return Run{Kind: RunItalic, Text: content}, i + 1, true
	}
	return Run{}, 0, false
}

// matchUnderscoreItalic only opens and closes on word boundaries, so intraword
// underscores such as snake_case stay literal.
func matchUnderscoreItalic(text string, start int) (Run, int, bool) {
	if before, _ := utf8.DecodeLastRuneInString(text[:start]); start > 0 && isWordRune(before) {
		return Run{}, 0, false
	}

	for i := start + 1; i < len(text); i++ {
		if text[i] != '_' {
			continue
		}
		if after, _ := utf8.DecodeRuneInString(text[i+1:]); i+1 < len(text) && isWordRune(after) {
			continue
		}

		content := text[start+1 : i]
		if !validEmphasis(content) {
			return Run{}, 0, false
		}
		return Run{Kind: RunItalic, Text: content}, i + 1, true
	}
	return Run{}, 0, false
}

// matchLink matches [text](href) with non-empty text and href.
func matchLink(text string, start int) (Run, int, bool) {
	closeBracket := strings.IndexByte(text[start+1:], ']')
	if closeBracket <= 0 {
		return Run{}, 0, false
	}
	closeBracket += start + 1

	if closeBracket+1 >= len(text) || text[closeBracket+1] != '(' {
		return Run{}, 0, false
	}

	closeParen := strings.IndexByte(text[closeBracket+2:], ')')
	if closeParen < 0 {
		return Run{}, 0, false
	}
	closeParen += closeBracket + 2

	label := text[start+1 : closeBracket]
	href := strings.TrimSpace(text[closeBracket+2 : closeParen])
	if strings.TrimSpace(label) == "" || href == "" || strings.ContainsAny(href, " \t") {
		return Run{}, 0, false
	}

	return Run{Kind: RunLink, Text: label, Href: href}, closeParen + 1, true
}

// validEmphasis rejects empty content and content that starts or ends with space.
func validEmphasis(content string) bool {
	if content == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(content)
	last, _ := utf8.DecodeLastRuneInString(content)
	return !unicode.IsSpace(first) && !unicode.IsSpace(last)
}

func countRun(text string, start int, ch byte) int {
	n := 0
	for start+n < len(text) && text[start+n] == ch {
		n++
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isEscapable(ch byte) bool {
	return strings.IndexByte("\\`*_[]()#>-.!", ch) >= 0
}
