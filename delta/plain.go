package delta

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractPlain reduces stored note content to flat text for previews and search.
// It never fails: a payload that is not a {"ops": [...]} object is treated as
// HTML or plain text and has its tags stripped. Only string inserts contribute;
// embeds, retains, deletes and attributes are dropped. The result is trimmed.
func ExtractPlain(input string) string {
	ops, ok := looseOps(input)
	if !ok {
		return strings.TrimSpace(stripMarkup(input))
	}

	var sb strings.Builder
	for _, item := range ops {
		object, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := object["insert"].(string); ok {
			sb.WriteString(text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// PlainText extracts the text of an already decoded document.
func (d Document) PlainText() string {
	var sb strings.Builder
	for _, op := range d.Ops {
		if op.IsText() {
			sb.WriteString(op.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// looseOps pulls the ops array out of a payload without validating individual ops.
func looseOps(input string) ([]any, bool) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(input), &root); err != nil {
		return nil, false
	}
	raw, ok := root["ops"]
	if !ok {
		return nil, false
	}
	var ops []any
	if err := json.Unmarshal(raw, &ops); err != nil || ops == nil {
		return nil, false
	}
	return ops, true
}

func stripMarkup(input string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(input))
	var sb strings.Builder
	skipping := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			if skipping == 0 {
				sb.Write(tokenizer.Text())
			}
		case html.StartTagToken:
			if isRawTextElement(tokenizer.Token().DataAtom) {
				skipping++
			}
		case html.EndTagToken:
			if isRawTextElement(tokenizer.Token().DataAtom) && skipping > 0 {
				skipping--
			}
		}
	}
}

func isRawTextElement(a atom.Atom) bool {
	return a == atom.Script || a == atom.Style
}
