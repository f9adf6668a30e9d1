package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/ruffrules/pkg/shared"
	sharederrors "github.com/scan-io-git/ruffrules/pkg/shared/errors"
)

func runValidate(t *testing.T, options RunOptionsValidate, stdin string) (string, error) {
	t.Helper()
	Init(hclog.NewNullLogger())
	validateOptions = options
	defer func() { validateOptions = RunOptionsValidate{} }()

	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(stdin))
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := runValidateCommand(cmd, nil)
	return out.String(), err
}

func TestRunValidateCommand(t *testing.T) {
	input := `[
  {"code":"A","message_formats":[],"summary":"s","linter":"l","preview":true,"fix":"Fix is always available."},
  {"code":"B","message_formats":[],"summary":"s","linter":"l","preview":false,"fix":"Fix is not available."}
]`

	t.Run("silent by default", func(t *testing.T) {
		out, err := runValidate(t, RunOptionsValidate{}, input)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("json summary", func(t *testing.T) {
		out, err := runValidate(t, RunOptionsValidate{JSON: true}, input)
		require.NoError(t, err)
		assert.JSONEq(t, `{"launches":[{"args":{"json":true},"result":{"total":2,"kept":1,"dropped":1,"preview_kept":1},"status":"OK","message":""}]}`, out)
	})

	t.Run("invalid input", func(t *testing.T) {
		out, err := runValidate(t, RunOptionsValidate{}, `[{"code":"A"}]`)
		require.Error(t, err)
		assert.Empty(t, out)

		var cmdErr *sharederrors.CommandError
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, sharederrors.ExitCodeFailed, cmdErr.ExitCode)
	})

	t.Run("invalid input with json prints the failed launch", func(t *testing.T) {
		out, err := runValidate(t, RunOptionsValidate{JSON: true}, `[{"code":"A"}]`)
		require.Error(t, err)

		var result shared.GenericLaunchesResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Len(t, result.Launches, 1)
		assert.Equal(t, shared.StatusFailed, result.Launches[0].Status)
		assert.Contains(t, result.Launches[0].Message, `missing required key "message_formats"`)
		assert.Equal(t, map[string]interface{}{"total": float64(1), "kept": float64(0), "dropped": float64(0), "preview_kept": float64(0)}, result.Launches[0].Result)
	})
}
