package world

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMap(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}
	return path
}

func TestParseMapFormats(t *testing.T) {
	src := `
# comment line
1,1,1,1
1 0 + 1
1111
`
	data, err := ParseMap(strings.NewReader(src), 32)
	require.NoError(t, err)

	g := data.Grid
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, 32.0, g.TileSize())
	assert.Equal(t, 0, g.CellAt(2, 1), "start marker is an empty cell")

	require.True(t, data.HasStart)
	assert.Equal(t, 2, data.StartCol)
	assert.Equal(t, 1, data.StartRow)
}

func TestParseMapSingleColumn(t *testing.T) {
	data, err := ParseMap(strings.NewReader("12,\n0,\n3,\n"), 64)
	require.NoError(t, err)
	assert.Equal(t, 1, data.Grid.Width())
	assert.Equal(t, 3, data.Grid.Height())
	assert.Equal(t, 12, data.Grid.CellAt(0, 0))
	assert.Equal(t, 3, data.Grid.CellAt(0, 2))

	// Without a separator the row is compact.
	data, err = ParseMap(strings.NewReader("12\n30\n"), 64)
	require.NoError(t, err)
	assert.Equal(t, 2, data.Grid.Width())
	assert.Equal(t, 2, data.Grid.CellAt(1, 0))
}

func TestParseMapErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"inconsistent width", "1,1,1\n1,1\n", "row 2 has inconsistent width: expected 3, got 2"},
		{"bad token", "1,x,1\n", `invalid cell "x"`},
		{"two starts", "+,0\n0,+\n", "second start marker"},
		{"only comments", "# nothing\n\n", "no cells"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap(strings.NewReader(tt.src), 64)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedMap))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMapLoaderTextFile(t *testing.T) {
	path := writeMap(t, "arena.map", string(ReferenceArenaSource()))

	ml := NewMapLoader(64)
	data, err := ml.LoadMap(path)
	require.NoError(t, err)
	assert.Equal(t, 10, data.Grid.Width())
	assert.False(t, data.HasStart)
}

func TestMapLoaderYAMLFile(t *testing.T) {
	path := writeMap(t, "arena.yaml", `
tile_size: 48
rows:
  - [1, 1, 1]
  - [1, 0, 1]
  - [1, 1, 1]
start:
  col: 1
  row: 1
  angle: 1.5
`)
	data, err := NewMapLoader(64).LoadMap(path)
	require.NoError(t, err)
	assert.Equal(t, 48.0, data.Grid.TileSize())
	assert.True(t, data.HasStart)
	assert.Equal(t, 1.5, data.StartAngle)

	bad := writeMap(t, "bad.yml", "rows:\n  - [1, 1]\n  - [1]\n")
	_, err = NewMapLoader(64).LoadMap(bad)
	assert.True(t, errors.Is(err, ErrMalformedMap))

	walled := writeMap(t, "walled.yaml", "rows:\n  - [1]\nstart: {col: 0, row: 0}\n")
	_, err = NewMapLoader(64).LoadMap(walled)
	assert.True(t, errors.Is(err, ErrMalformedMap))
}

func TestMapLoaderLoadDefaultsToReferenceArena(t *testing.T) {
	data, err := NewMapLoader(64).Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, data.Grid.CellAt(4, 4))

	_, err = NewMapLoader(64).Load(filepath.Join(t.TempDir(), "missing.map"))
	assert.Error(t, err)
}
