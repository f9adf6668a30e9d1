package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/scan-io-git/ruffrules/pkg/shared/errors"
)

func TestExecute(t *testing.T) {
	t.Setenv("RULESPROC_LOG_LEVEL", "error")
	t.Setenv("RULESPROC_CONFIG", "")

	tests := []struct {
		name       string
		args       []string
		stdin      string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "bare invocation transforms stdin",
			stdin:      `[{"message_formats":{}, "summary":"s", "linter":"l", "preview":true, "fix":"Fix is sometimes available.", "id":"R1"}]`,
			wantCode:   0,
			wantStdout: "[\n  {\n    \"preview\": true,\n    \"id\": \"R1\",\n    \"fix\": 1\n  }\n]\n",
		},
		{
			name:       "unfixable rules are dropped",
			stdin:      `[{"message_formats":{}, "summary":"s", "linter":"l", "preview":false, "fix":"Fix is not available.", "id":"R2"}]`,
			wantCode:   0,
			wantStdout: "[]\n",
		},
		{
			name:       "unexpected fix aborts",
			stdin:      `[{"message_formats":{}, "summary":"s", "linter":"l", "preview":false, "fix":"Something else"}]`,
			wantCode:   sharederrors.ExitCodeFailed,
			wantStderr: `unexpected fix: "Something else"`,
		},
		{
			name:       "malformed input aborts",
			stdin:      `[1, 2]`,
			wantCode:   sharederrors.ExitCodeFailed,
			wantStderr: "element is not an object",
		},
		{
			name:       "unknown command",
			args:       []string{"frobnicate"},
			wantCode:   sharederrors.ExitCodeInvalidArgs,
			wantStderr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := execute(tt.args, strings.NewReader(tt.stdin), &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestExecuteInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("logger:\n  level: chatty\n"), 0o644))
	t.Setenv("RULESPROC_CONFIG", path)
	t.Setenv("RULESPROC_LOG_LEVEL", "")

	var stdout, stderr bytes.Buffer
	code := execute([]string{"version"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, sharederrors.ExitCodeInvalidArgs, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "logger directive is invalid")
}

func TestExecutePrintsFailedLaunch(t *testing.T) {
	t.Setenv("RULESPROC_LOG_LEVEL", "error")
	t.Setenv("RULESPROC_CONFIG", "")

	var stdout, stderr bytes.Buffer
	code := execute([]string{"process"}, strings.NewReader(`[{"message_formats":{}, "summary":"s", "linter":"l", "preview":false, "fix":"Something else"}]`), &stdout, &stderr)

	assert.Equal(t, sharederrors.ExitCodeFailed, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `"status": "FAILED"`)
	assert.Contains(t, stderr.String(), `"total": 1`)
}

func TestExecuteReport(t *testing.T) {
	t.Setenv("RULESPROC_LOG_LEVEL", "error")
	t.Setenv("RULESPROC_CONFIG", "")

	diagnostics := `[
  {"code":"F401","filename":"/src/app/pkg/mod.py","fix":{"applicability":"safe","edits":[],"message":"Remove import"},"location":{"row":1,"column":1},"end_location":{"row":1,"column":10},"message":"unused","noqa_row":1,"url":"u","cell":null},
  {"code":"E501","filename":"/src/app/main.py","fix":null,"location":{"row":3,"column":89},"end_location":{"row":3,"column":120},"message":"long","noqa_row":3,"url":"u","cell":null}
]`

	var stdout, stderr bytes.Buffer
	code := execute([]string{"report", "-i", "-", "--format", "text"}, strings.NewReader(diagnostics), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Diagnostics: 2\n")
	assert.Contains(t, stdout.String(), "\nModule Name (2)\n")
	assert.Contains(t, stdout.String(), "       1  pkg.mod\n")
}

func TestRootHelpIsNotIndented(t *testing.T) {
	for _, line := range strings.Split(rootCmd.Long, "\n") {
		assert.False(t, strings.HasPrefix(line, "\t"), "line %q", line)
	}
}
