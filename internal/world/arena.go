package world

import (
	"bytes"
	_ "embed"
)

//go:embed arenas/reference.map
var referenceArena []byte

// ReferenceArena parses the embedded 10x10 arena: a ring of code 1, pillars
// of code 2 at (2,2), (6,2), (2,7), (6,7) and a 2x2 block of code 3 at the
// center.
func ReferenceArena(tileSize float64) (*Grid, error) {
	data, err := ParseMap(bytes.NewReader(referenceArena), tileSize)
	if err != nil {
		return nil, err
	}
	return data.Grid, nil
}

// ReferenceArenaSource returns the embedded map text.
func ReferenceArenaSource() []byte {
	return referenceArena
}
