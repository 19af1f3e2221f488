package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	require.Equal(t, 0, a.ExitCodeFor(nil))
	require.Equal(t, 1, a.ExitCodeFor(stderrors.New("plain")))
	require.Equal(t, 2, a.ExitCodeFor(ValidationError("bad").Build()))
	require.Equal(t, 7, a.ExitCodeFor(ConfigError("bad").Build()))
	require.Equal(t, 8, a.ExitCodeFor(fmt.Errorf("wrapped: %w", SourceError("down").Build())))
	require.Equal(t, 11, a.ExitCodeFor(ExportError("disk").Build()))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	a := NewCLIErrorAdapter(false, nil)
	a.out = &out

	code := a.HandleError(NotFoundError("state file missing").Build())
	require.Equal(t, 3, code)
	require.Equal(t, "Error: state file missing\n", out.String())
}
