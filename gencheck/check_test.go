package gencheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tscr/crystal"
)

func TestCompare(t *testing.T) {
	header := crystal.HeaderComment + "\n"

	tests := []struct {
		name      string
		generated string
		existing  string
		upToDate  bool
		firstDiff int
	}{
		{"identical", header + "a\nb\n", header + "a\nb\n", true, 0},
		{"header ignored", header + "a\n", "a\n", true, 0},
		{"trailing blank lines", "a\n", "a\n\n\n", true, 0},
		{"crlf line endings", "a\nb\n", "a\r\nb\r\n", true, 0},
		{"changed line", "a\nb\nc\n", "a\nx\nc\n", false, 2},
		{"existing shorter", "a\nb\n", "a\n", false, 2},
		{"existing longer", "a\n", "a\nb\n", false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compare([]byte(tt.generated), []byte(tt.existing))
			require.NoError(t, err)
			assert.Equal(t, tt.upToDate, res.UpToDate)
			assert.Equal(t, tt.firstDiff, res.FirstDiff)
		})
	}
}

func TestCompare_ReportsLines(t *testing.T) {
	res, err := Compare([]byte("x = 1\ny = 2\n"), []byte("x = 1\ny = 3\n"))
	require.NoError(t, err)
	assert.Equal(t, "y = 2", res.Want)
	assert.Equal(t, "y = 3", res.Got)
}

func TestCompareFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.cr")
	require.NoError(t, os.WriteFile(path, []byte(crystal.HeaderComment+"\nputs(1)\n"), 0o644))

	res, err := CompareFile("puts(1)", path)
	require.NoError(t, err)
	assert.True(t, res.UpToDate)
	assert.Equal(t, path, res.Path)

	_, err = CompareFile("puts(1)", filepath.Join(t.TempDir(), "missing.cr"))
	require.Error(t, err)
}

func TestIsGenerated(t *testing.T) {
	assert.True(t, IsGenerated([]byte(crystal.HeaderComment+"\n")))
	assert.False(t, IsGenerated([]byte("puts 1\n")))
}
