package main_test

import (
	"bytes"
	"context"
	"testing"

	main "github.com/ShawnKyzer/docsearch/cmd/docsearch"
	"github.com/ShawnKyzer/docsearch/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("fails without an index", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.ServeCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.ErrorIs(t, err, mcp.ErrMissingIndex)
		assert.Contains(t, stderr.String(), "error:")
	})
}
