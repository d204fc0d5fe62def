package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunMarkdownFileToDelta(t *testing.T) {
	path := writeFile(t, "note.md", "# Hello\n")

	code, stdout, stderr := runCLI(t, "", "-to", "delta", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"ops":[{"insert":"Hello"},{"insert":"\n","attributes":{"header":1}}]}`+"\n", stdout)
}

func TestRunDeltaStdinToMarkdown(t *testing.T) {
	input := `{"ops":[{"insert":"Hi","attributes":{"bold":true}},{"insert":"\n"}]}`

	code, stdout, stderr := runCLI(t, input, "-from", "delta", "-")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "**Hi**\n", stdout)
}

func TestRunTextToText(t *testing.T) {
	code, stdout, stderr := runCLI(t, "hello world\n", "-from", "text", "-to", "text", "-")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "hello world\n", stdout)
}

func TestRunFormatFromExtension(t *testing.T) {
	path := writeFile(t, "note.txt", "# not a heading\n")

	code, stdout, stderr := runCLI(t, "", "-to", "delta", path)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, `{"ops":[{"insert":"# not a heading\n"}]}`+"\n", stdout)
}

func TestRunMarkdownToHTML(t *testing.T) {
	code, stdout, stderr := runCLI(t, "**x** and <script>bad()</script>\n", "-to", "html", "-")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "<strong>x</strong>")
	assert.NotContains(t, stdout, "<script")
}

func TestRunPrettyDelta(t *testing.T) {
	code, stdout, stderr := runCLI(t, "hi\n", "-to", "delta", "-pretty", "-")
	require.Equal(t, 0, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "{\n  \"ops\": ["), stdout)
}

func TestRunConfigFile(t *testing.T) {
	cfgPath := writeFile(t, "dmc.yaml", "markdown:\n  bulletStyle: \"*\"\nlog:\n  level: error\n")
	input := `{"ops":[{"insert":"a"},{"insert":"\n","attributes":{"list":"bullet"}}]}`

	code, stdout, stderr := runCLI(t, input, "-config", cfgPath, "-from", "delta", "-")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "* a\n", stdout)
}

func TestRunLogsConversionWarnings(t *testing.T) {
	code, stdout, stderr := runCLI(t, "```go\nfmt.Println()\n", "-to", "delta", "-")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `"code-block":true`)
	assert.Contains(t, stderr, "conversion warning")
	assert.Contains(t, stderr, "unclosed_fence")
}

func TestRunVerboseLogsDebug(t *testing.T) {
	code, _, stderr := runCLI(t, "x\n", "-v", "-")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "converting")
}

func TestRunStrictFailsOnUnknownEmbed(t *testing.T) {
	input := `{"ops":[{"insert":{"formula":"e=mc^2"}},{"insert":"\n"}]}`

	code, stdout, _ := runCLI(t, input, "-from", "delta", "-")
	require.Equal(t, 0, code)
	assert.Equal(t, "[Unknown embed: formula]\n", stdout)

	code, _, stderr := runCLI(t, input, "-strict", "-from", "delta", "-")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "conversion failed")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"no input", "", nil, 2, "Usage: dmc"},
		{"unknown flag", "", []string{"-nope", "-"}, 2, "flag provided but not defined"},
		{"unknown preset", "", []string{"-preset", "fancy", "-"}, 1, "unknown preset"},
		{"missing config", "", []string{"-config", "/does/not/exist.yaml", "-"}, 1, "failed to read config"},
		{"missing input", "", []string{"/does/not/exist.md"}, 1, "failed to read input"},
		{"invalid delta", `{"ops":"not-an-array"}`, []string{"-from", "delta", "-"}, 1, "conversion failed"},
		{"unknown input format", "x", []string{"-from", "rtf", "-"}, 1, "conversion failed"},
		{"unknown output format", "x", []string{"-to", "pdf", "-"}, 1, "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestRunInvalidLogLevel(t *testing.T) {
	cfgPath := writeFile(t, "dmc.yaml", "log:\n  level: loud\n")

	code, _, stderr := runCLI(t, "x", "-config", cfgPath, "-")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Invalid log level")
}
