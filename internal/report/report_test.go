package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diagnosticsJSON = `[
  {"cell":null,"code":"F401","end_location":{"column":10,"row":1},"filename":"/src/app/pkg/a.py","fix":{"applicability":"safe","edits":[{"content":"","end_location":{"column":1,"row":2},"location":{"column":1,"row":1}}],"message":"Remove unused import"},"location":{"column":8,"row":1},"message":"os imported but unused","noqa_row":1,"url":"https://docs.astral.sh/ruff/rules/unused-import"},
  {"cell":null,"code":"E501","end_location":{"column":120,"row":4},"filename":"/src/app/pkg/__init__.py","fix":null,"location":{"column":89,"row":4},"message":"Line too long","noqa_row":4,"url":"https://docs.astral.sh/ruff/rules/line-too-long"},
  {"cell":null,"code":"F841","end_location":{"column":6,"row":9},"filename":"/src/app/main.py","fix":{"applicability":"unsafe","edits":[],"message":null},"location":{"column":5,"row":9},"message":"Local variable x is assigned to but never used","noqa_row":9,"url":"https://docs.astral.sh/ruff/rules/unused-variable"},
  {"cell":null,"code":"F401","end_location":{"column":12,"row":2},"filename":"/src/app/main.py","fix":{"applicability":"safe","edits":[],"message":"Remove unused import"},"location":{"column":8,"row":2},"message":"sys imported but unused","noqa_row":2,"url":"https://docs.astral.sh/ruff/rules/unused-import"}
]`

func decodeDiagnostics(t *testing.T) []Diagnostic {
	t.Helper()
	diagnostics, err := DecodeDiagnostics(strings.NewReader(diagnosticsJSON))
	require.NoError(t, err)
	return diagnostics
}

func TestDecodeDiagnostics(t *testing.T) {
	diagnostics := decodeDiagnostics(t)
	require.Len(t, diagnostics, 4)
	assert.Equal(t, Location{Row: 1, Column: 8}, diagnostics[0].Location)
	require.NotNil(t, diagnostics[0].Fix)
	assert.Equal(t, "safe", diagnostics[0].Fix.Applicability)
	assert.Nil(t, diagnostics[1].Fix)
	assert.Nil(t, diagnostics[2].Fix.Message)

	empty, err := DecodeDiagnostics(strings.NewReader(" [] "))
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}

func TestDecodeDiagnosticsErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "must be a JSON array"},
		{"object", `{"code":"F401"}`, "must be a JSON array"},
		{"invalid json", `[{"code":}]`, "failed to parse diagnostics"},
		{"wrong element type", `[1]`, "failed to parse diagnostics"},
		{"invalid utf-8", "[{\"message\":\"\xff\"}]", "not valid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDiagnostics(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExtend(t *testing.T) {
	extended := Extend(decodeDiagnostics(t))
	require.Len(t, extended, 4)

	tests := []struct {
		shortFilename string
		codeClass     string
		fixable       string
		moduleName    string
		packageName   string
	}{
		{"pkg/a.py", "F", Fixable, "pkg.a", "pkg"},
		{"pkg/__init__.py", "E", NotFixable, "pkg.__init__", "pkg"},
		{"main.py", "F", Fixable, "main", "main"},
		{"main.py", "F", Fixable, "main", "main"},
	}
	for i, tt := range tests {
		d := extended[i]
		assert.Equal(t, tt.shortFilename, d.ShortFilename, "diagnostic %d", i)
		assert.Equal(t, tt.codeClass, d.CodeClass, "diagnostic %d", i)
		assert.Equal(t, tt.fixable, d.Fixable, "diagnostic %d", i)
		assert.Equal(t, tt.moduleName, d.ModuleName, "diagnostic %d", i)
		assert.Equal(t, tt.packageName, d.PackageName, "diagnostic %d", i)
	}
	assert.Equal(t, "/src/app/main.py", extended[2].Filename, "original file name is kept")
}

func TestExtendSingleFileKeepsFileName(t *testing.T) {
	extended := Extend([]Diagnostic{{Code: "F401", Filename: "/src/app/main.py"}})
	require.Len(t, extended, 1)
	assert.Equal(t, "main.py", extended[0].ShortFilename)
	assert.Equal(t, "main", extended[0].ModuleName)
}

func TestCountAndSort(t *testing.T) {
	extended := Extend(decodeDiagnostics(t))

	tests := []struct {
		key  Key
		want []ValueCount
	}{
		{KeyCode, []ValueCount{{"F401", 2}, {"E501", 1}, {"F841", 1}}},
		{KeyCodeClass, []ValueCount{{"F", 3}, {"E", 1}}},
		{KeyFixable, []ValueCount{{Fixable, 3}, {NotFixable, 1}}},
		{KeyPackageName, []ValueCount{{"pkg", 2}, {"main", 2}}},
		{KeyModuleName, []ValueCount{{"main", 2}, {"pkg.a", 1}, {"pkg.__init__", 1}}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, CountAndSort(extended, tt.key))
		})
	}
}

func TestGroupAndSort(t *testing.T) {
	groups := GroupAndSort(Extend(decodeDiagnostics(t)), KeyCode)
	require.Len(t, groups, 3)

	assert.Equal(t, "F401", groups[0].Value)
	require.Len(t, groups[0].Diagnostics, 2)
	assert.Equal(t, "os imported but unused", groups[0].Diagnostics[0].Message)
	assert.Equal(t, "sys imported but unused", groups[0].Diagnostics[1].Message)
	assert.Equal(t, "E501", groups[1].Value)
	assert.Equal(t, "F841", groups[2].Value)
}

func TestValueCountMarshalJSON(t *testing.T) {
	data, err := json.Marshal([]ValueCount{{"F401", 2}})
	require.NoError(t, err)
	assert.Equal(t, `[["F401",2]]`, string(data))
}

func TestProcess(t *testing.T) {
	catalog := RuleMap{
		"F401": {Code: "F401", Name: "unused-import", Explanation: "e", Fix: 1},
		"E999": {Code: "E999", Name: "unused"},
	}

	t.Run("with catalog", func(t *testing.T) {
		processed := NewProcessor(nil, catalog).Process(decodeDiagnostics(t))

		assert.Len(t, processed.Messages, 4)
		assert.Len(t, processed.Values, len(FilterableKeys))
		assert.Equal(t, map[string]Rule{"F401": catalog["F401"]}, processed.Rules)
	})

	t.Run("without catalog", func(t *testing.T) {
		processed := NewProcessor(nil, nil).Process(decodeDiagnostics(t))
		assert.Nil(t, processed.Rules)

		data, err := json.Marshal(processed)
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"rules"`)
		assert.Contains(t, string(data), `"code":[["F401",2],["E501",1],["F841",1]]`)
		assert.Contains(t, string(data), `"shortFilename":"pkg/a.py"`)
		assert.Contains(t, string(data), `"fixable":"Not fixable"`)
	})

	t.Run("empty input", func(t *testing.T) {
		processed := NewProcessor(nil, catalog).Process([]Diagnostic{})

		data, err := json.Marshal(processed)
		require.NoError(t, err)
		assert.JSONEq(t, `{"messages":[],"values":{"code":[],"codeClass":[],"fixable":[],"packageName":[],"moduleName":[]}}`, string(data))
	})
}

func TestWriteSummary(t *testing.T) {
	catalog := RuleMap{"F401": {Code: "F401", Name: "unused-import"}}
	processed := NewProcessor(nil, catalog).Process(decodeDiagnostics(t))

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, processed, 1))

	want := `Diagnostics: 4

Code (3)
       2  F401 (unused-import)

Code Class (2)
       3  F

Fixability (2)
       3  Fixable

Package Name (2)
       2  pkg

Module Name (3)
       2  main
`
	assert.Equal(t, want, buf.String())
}
