package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lavigneer/gdscript-lsp/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndSymbols(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "player.gd"), []byte("class_name Player\nvar speed = 1;\nfunc run():\n\tpass\n"), 0o600))
	e := New(root, config.Default())

	report, err := e.Validate(context.Background(), "player.gd")
	require.NoError(t, err)
	assert.Contains(t, report, "Statement contains a semicolon")
	assert.Contains(t, report, "1 problems (0 errors, 1 warnings)")

	syms, err := e.Symbols(context.Background(), "player.gd")
	require.NoError(t, err)
	assert.Contains(t, syms, "class_name: Player")
	assert.Contains(t, syms, "speed:")
	assert.Contains(t, syms, "run:")

	_, err = e.Validate(context.Background(), "missing.gd")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
