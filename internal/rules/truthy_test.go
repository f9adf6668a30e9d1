package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	var tests = []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`null`, false},
		{`0`, false},
		{`0.0`, false},
		{`-0`, false},
		{`0e10`, false},
		{`1`, true},
		{`-2.5`, true},
		{`1e400`, true},
		{`-1e400`, true},
		{`1e-400`, false},
		{`100000000000000000000000000000000000000000000000000`, true},
		{`""`, false},
		{`"false"`, true},
		{`[]`, false},
		{`[false]`, true},
		{`{}`, false},
		{`{"a":null}`, true},
		{`not json`, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy(json.RawMessage(tt.raw)), "Truthy(%s)", tt.raw)
		})
	}
}
