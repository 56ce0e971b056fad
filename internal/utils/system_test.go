package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "workflow.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	exists, err := FileExists(file)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = FileExists(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = FileExists(dir)
	require.NoError(t, err)
	assert.False(t, exists, "directories are not files")
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(filepath.Join(dir, "nope")))
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantEOF bool
	}{
		{"TrimsNewline", "yes\n", "yes", false},
		{"TrimsWhitespace", "  y  \r\n", "y", false},
		{"NoTrailingNewline", "n", "n", false},
		{"OnlyFirstLine", "y\nn\n", "y", false},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLine(strings.NewReader(tt.input))
			if tt.wantEOF {
				assert.ErrorIs(t, err, io.EOF)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetUsername(t *testing.T) {
	name, err := GetUsername()
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}
