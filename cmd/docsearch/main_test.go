package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	main "github.com/ShawnKyzer/docsearch/cmd/docsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMain_DefaultDBPath(t *testing.T) {
	m := main.NewMain()
	assert.NotEmpty(t, m.DBPath)
}

func TestNewMain_DBPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.db")
	t.Setenv("DOCSEARCH_DB", path)

	m := main.NewMain()
	assert.Equal(t, path, m.DBPath)
}

func TestMain_Run_NoArguments(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
	// Help is printed so the user sees what is available
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"frobnicate"}, stdout, stderr)

	require.Error(t, err)
}

func TestMain_Run_SectionsBeforeCrawl(t *testing.T) {
	t.Parallel()

	// A fresh database has no index schema, so sections must fail rather
	// than report an empty index.
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"sections"}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stderr.String(), "error:")
}
