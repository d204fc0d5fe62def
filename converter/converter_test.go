package converter

import (
	"testing"

	"github.com/rgonek/delta-md-converter/delta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConverter(t testing.TB, cfg Config) *Converter {
	t.Helper()

	conv, err := New(cfg)
	require.NoError(t, err)

	return conv
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty document",
			input: `{"ops":[]}`,
			want:  "",
		},
		{
			name:  "heading and paragraph",
			input: `{"ops":[{"insert":"Hello"},{"insert":"\n","attributes":{"header":1}},{"insert":"Some "},{"insert":"bold","attributes":{"bold":true}},{"insert":" text\n"}]}`,
			want:  "# Hello\n\nSome **bold** text\n",
		},
		{
			name:  "paragraph lines become separate paragraphs",
			input: `{"ops":[{"insert":"one\ntwo\n\nthree\n"}]}`,
			want:  "one\n\ntwo\n\nthree\n",
		},
		{
			name: "lists with nesting",
			input: `{"ops":[
				{"insert":"One"},{"insert":"\n","attributes":{"list":"ordered"}},
				{"insert":"Two"},{"insert":"\n","attributes":{"list":"ordered"}},
				{"insert":"Nested"},{"insert":"\n","attributes":{"list":"bullet","indent":1}},
				{"insert":"Three"},{"insert":"\n","attributes":{"list":"ordered"}}
			]}`,
			want: "1. One\n2. Two\n  - Nested\n3. Three\n",
		},
		{
			name: "numbering restarts after a paragraph",
			input: `{"ops":[
				{"insert":"a"},{"insert":"\n","attributes":{"list":"ordered"}},
				{"insert":"break\n"},
				{"insert":"b"},{"insert":"\n","attributes":{"list":"ordered"}}
			]}`,
			want: "1. a\n\nbreak\n\n1. b\n",
		},
		{
			name:  "checklist",
			input: `{"ops":[{"insert":"done"},{"insert":"\n","attributes":{"list":"checked"}},{"insert":"todo"},{"insert":"\n","attributes":{"list":"unchecked"}}]}`,
			want:  "- [x] done\n- [ ] todo\n",
		},
		{
			name:  "code block written as one insert",
			input: `{"ops":[{"insert":"x := 1\n**not bold**"},{"insert":"\n","attributes":{"code-block":true}}]}`,
			want:  "```\nx := 1\n**not bold**\n```\n",
		},
		{
			name:  "code block lines with language",
			input: `{"ops":[{"insert":"intro\n"},{"insert":"a"},{"insert":"\n","attributes":{"code-block":"go"}},{"insert":"b"},{"insert":"\n","attributes":{"code-block":"go"}}]}`,
			want:  "intro\n\n```go\na\nb\n```\n",
		},
		{
			name:  "code containing a fence gets a longer fence",
			input: `{"ops":[{"insert":"` + "```" + `"},{"insert":"\n","attributes":{"code-block":true}}]}`,
			want:  "````\n```\n````\n",
		},
		{
			name:  "blockquote lines",
			input: `{"ops":[{"insert":"Quote"},{"insert":"\n","attributes":{"blockquote":true}},{"insert":"More"},{"insert":"\n","attributes":{"blockquote":true}}]}`,
			want:  "> Quote\n> More\n",
		},
		{
			name:  "inline marks",
			input: `{"ops":[{"insert":"site","attributes":{"link":"https://x.io","bold":true}},{"insert":" and "},{"insert":"a","attributes":{"code":true}},{"insert":" "},{"insert":" spaced ","attributes":{"italic":true}},{"insert":"gone","attributes":{"strike":true}},{"insert":"\n"}]}`,
			want:  "[**site**](https://x.io) and `a`  *spaced* ~~gone~~\n",
		},
		{
			name:  "adjacent runs with equal formatting merge",
			input: `{"ops":[{"insert":"bo","attributes":{"bold":true}},{"insert":"ld","attributes":{"bold":true}},{"insert":"\n"}]}`,
			want:  "**bold**\n",
		},
		{
			name:  "image embed",
			input: `{"ops":[{"insert":"see "},{"insert":{"image":"https://example.com/a.png"},"attributes":{"alt":"chart"}},{"insert":"\n"}]}`,
			want:  "see ![chart](https://example.com/a.png)\n",
		},
		{
			name:  "text without trailing newline",
			input: `{"ops":[{"insert":"tail"}]}`,
			want:  "tail\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := newTestConverter(t, Config{})
			result, err := conv.Convert([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Markdown)
		})
	}
}

func TestConvertRejectsInvalidDelta(t *testing.T) {
	conv := newTestConverter(t, Config{})

	_, err := conv.Convert([]byte(`{"ops":"nope"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, delta.ErrInvalid)
}

func TestConvertRejectsUncomposedDocument(t *testing.T) {
	conv := newTestConverter(t, Config{})

	_, err := conv.ConvertDocument(delta.Document{Ops: []delta.Op{delta.Retain(2, nil), delta.Insert("a", nil)}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedOp)
	assert.Contains(t, err.Error(), "retain at op 0")
}

func TestConvertUnknownAttributes(t *testing.T) {
	input := []byte(`{"ops":[{"insert":"a","attributes":{"font":"serif"}},{"insert":"b","attributes":{"font":"mono"}},{"insert":"\n","attributes":{"lineHeight":2}}]}`)

	t.Run("skip", func(t *testing.T) {
		result, err := newTestConverter(t, Config{}).Convert(input)
		require.NoError(t, err)
		assert.Equal(t, "ab\n", result.Markdown)
		assert.Equal(t, []Warning{
			{Type: WarningUnknownAttribute, Element: "lineHeight", Message: "unknown attribute skipped: lineHeight"},
			{Type: WarningUnknownAttribute, Element: "font", Message: "unknown attribute skipped: font"},
		}, result.Warnings)
	})

	t.Run("error", func(t *testing.T) {
		_, err := newTestConverter(t, Config{UnknownAttributes: UnknownError}).Convert(input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown attribute: lineHeight")
	})
}

func TestConvertUnknownEmbeds(t *testing.T) {
	input := []byte(`{"ops":[{"insert":"x = "},{"insert":{"formula":"e=mc^2"}},{"insert":"\n"}]}`)

	t.Run("placeholder", func(t *testing.T) {
		result, err := newTestConverter(t, Config{}).Convert(input)
		require.NoError(t, err)
		assert.Equal(t, "x = [Unknown embed: formula]\n", result.Markdown)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningUnknownEmbed, result.Warnings[0].Type)
		assert.Equal(t, "formula", result.Warnings[0].Element)
	})

	t.Run("skip", func(t *testing.T) {
		result, err := newTestConverter(t, Config{UnknownEmbeds: UnknownSkip}).Convert(input)
		require.NoError(t, err)
		assert.Equal(t, "x = \n", result.Markdown)
		require.Len(t, result.Warnings, 1)
	})

	t.Run("error", func(t *testing.T) {
		_, err := newTestConverter(t, Config{UnknownEmbeds: UnknownError}).Convert(input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown embed: formula")
	})
}

func TestConvertStyles(t *testing.T) {
	input := []byte(`{"ops":[
		{"insert":"Title"},{"insert":"\n","attributes":{"header":2,"align":"center"}},
		{"insert":"u","attributes":{"underline":true}},
		{"insert":"2","attributes":{"script":"super"}},
		{"insert":"red","attributes":{"color":"#f00"}},
		{"insert":"\n"},
		{"insert":"print()"},{"insert":"\n","attributes":{"code-block":"cpp"}}
	]}`)

	t.Run("defaults", func(t *testing.T) {
		result, err := newTestConverter(t, Config{}).Convert(input)
		require.NoError(t, err)
		assert.Equal(t, "## Title\n\nu<sup>2</sup>red\n\n```cpp\nprint()\n```\n", result.Markdown)
		assert.Empty(t, result.Warnings)
	})

	t.Run("html and offsets", func(t *testing.T) {
		result, err := newTestConverter(t, Config{
			UnderlineStyle: UnderlineHTML,
			SubSupStyle:    SubSupLaTeX,
			TextColorStyle: ColorHTML,
			AlignmentStyle: AlignHTML,
			HeadingOffset:  1,
			LanguageMap:    map[string]string{"cpp": "c++"},
		}).Convert(input)
		require.NoError(t, err)
		assert.Equal(t, `<h3 align="center">Title</h3>`+"\n\n"+`<u>u</u>$^{2}$<span style="color: #f00">red</span>`+"\n\n```c++\nprint()\n```\n", result.Markdown)
	})

	t.Run("star bullets and wide indent", func(t *testing.T) {
		result, err := newTestConverter(t, Config{BulletStyle: BulletStar, IndentWidth: 4}).Convert(
			[]byte(`{"ops":[{"insert":"a"},{"insert":"\n","attributes":{"list":"bullet","indent":1}}]}`))
		require.NoError(t, err)
		assert.Equal(t, "    * a\n", result.Markdown)
	})
}

func TestConvertDropsEmptyHeading(t *testing.T) {
	result, err := newTestConverter(t, Config{}).Convert([]byte(`{"ops":[{"insert":"\n","attributes":{"header":1}},{"insert":"body\n"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "body\n", result.Markdown)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningDroppedFeature, result.Warnings[0].Type)
}
