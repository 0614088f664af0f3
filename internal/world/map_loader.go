package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// StartMarker in a text map marks an empty cell where the player spawns.
const StartMarker = "+"

// MapData contains the loaded map information
type MapData struct {
	Grid *Grid
	// HasStart is set when the map itself names a spawn cell.
	HasStart   bool
	StartCol   int
	StartRow   int
	StartAngle float64
}

// arenaFile is the YAML arena format.
type arenaFile struct {
	TileSize float64 `yaml:"tile_size"`
	Rows     [][]int `yaml:"rows"`
	Start    *struct {
		Col   int     `yaml:"col"`
		Row   int     `yaml:"row"`
		Angle float64 `yaml:"angle"`
	} `yaml:"start"`
}

// MapLoader handles loading arena maps from files
type MapLoader struct {
	tileSize float64
}

// NewMapLoader creates a loader whose grids use tileSize unless a YAML arena
// overrides it.
func NewMapLoader(tileSize float64) *MapLoader {
	return &MapLoader{tileSize: tileSize}
}

// LoadMap loads a map from the specified file path. Files ending in .yaml or
// .yml use the YAML arena format; anything else is read as a text map.
func (ml *MapLoader) LoadMap(mapPath string) (*MapData, error) {
	file, err := os.Open(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", mapPath, err)
	}
	defer file.Close()

	var data *MapData
	switch strings.ToLower(filepath.Ext(mapPath)) {
	case ".yaml", ".yml":
		data, err = ml.parseYAML(file)
	default:
		data, err = ParseMap(file, ml.tileSize)
	}
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", mapPath, err)
	}
	return data, nil
}

// Load returns the arena at path, or the embedded reference arena when path
// is empty.
func (ml *MapLoader) Load(path string) (*MapData, error) {
	if path == "" {
		grid, err := ReferenceArena(ml.tileSize)
		if err != nil {
			return nil, err
		}
		return &MapData{Grid: grid}, nil
	}
	return ml.LoadMap(path)
}

func (ml *MapLoader) parseYAML(r io.Reader) (*MapData, error) {
	var af arenaFile
	if err := yaml.NewDecoder(r).Decode(&af); err != nil {
		return nil, fmt.Errorf("failed to parse arena: %w", err)
	}
	tileSize := af.TileSize
	if tileSize == 0 {
		tileSize = ml.tileSize
	}
	grid, err := NewGrid(af.Rows, tileSize)
	if err != nil {
		return nil, err
	}
	data := &MapData{Grid: grid}
	if af.Start != nil {
		if grid.IsSolid(af.Start.Col, af.Start.Row) {
			return nil, fmt.Errorf("%w: start cell (%d, %d) is not walkable", ErrMalformedMap, af.Start.Col, af.Start.Row)
		}
		data.HasStart = true
		data.StartCol, data.StartRow, data.StartAngle = af.Start.Col, af.Start.Row, af.Start.Angle
	}
	return data, nil
}

// ParseMap reads a text map: one row per line, cells separated by commas or
// whitespace. A row written without separators is read one digit per cell.
// Blank lines and lines starting with # are skipped.
func ParseMap(r io.Reader, tileSize float64) (*MapData, error) {
	data := &MapData{}
	var rows [][]int

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := splitCells(line)
		row := make([]int, len(tokens))
		for x, tok := range tokens {
			if tok == StartMarker {
				if data.HasStart {
					return nil, fmt.Errorf("%w: line %d: second start marker", ErrMalformedMap, lineNo)
				}
				data.HasStart = true
				data.StartCol, data.StartRow = x, len(rows)
				continue
			}
			code, err := strconv.Atoi(tok)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid cell %q", ErrMalformedMap, lineNo, tok)
			}
			row[x] = code
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}

	grid, err := NewGrid(rows, tileSize)
	if err != nil {
		return nil, err
	}
	data.Grid = grid
	return data, nil
}

// splitCells splits a row on commas and whitespace. A row with no separator
// at all is compact: one cell per character, so "1021" is four cells. A
// one-column map holding a multi-digit code needs a separator, as in "12,".
func splitCells(line string) []string {
	isSep := func(r rune) bool { return r == ',' || unicode.IsSpace(r) }
	tokens := strings.FieldsFunc(line, isSep)
	if len(tokens) == 1 && len(tokens[0]) > 1 && !strings.ContainsFunc(line, isSep) {
		compact := tokens[0]
		tokens = make([]string, 0, len(compact))
		for _, r := range compact {
			tokens = append(tokens, string(r))
		}
	}
	return tokens
}
