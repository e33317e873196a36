package maps

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-bomber/internal/games/arena/sim"
)

// FormatExtensions returns the supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".yaml", ".yml"}
}

func isMapFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// Parse routes data to the parser for the file extension of name.
func Parse(name string, data []byte, size Size) (Map, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return ParseText(name, data, size)
	case ".yaml", ".yml":
		return ParseYAML(name, data, size)
	default:
		return Map{}, &ParseError{Map: name, Message: "unsupported extension"}
	}
}

// ParseText parses a grid of whitespace-separated tile codes, one row per
// line. Blank lines and lines starting with '#' are ignored. The map ID is
// the file name without extension. Players spawn on the inner arena corners,
// which must be open, and the classic roster fills in the monsters.
func ParseText(name string, data []byte, size Size) (Map, error) {
	id := mapID(name)
	tiles, err := parseTiles(id, string(data), 0)
	if err != nil {
		return Map{}, err
	}
	m := Map{Layout: sim.Layout{
		ID:     id,
		Name:   id,
		Tiles:  tiles,
		Spawns: sim.DefaultSpawns(len(tiles[0]), len(tiles)),
	}}
	if err := validate(&m, size); err != nil {
		return Map{}, err
	}
	m.Monsters = rosterFor(tiles)
	return m, nil
}

// yamlMap is the YAML structure of a map file.
type yamlMap struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Tiles    string        `yaml:"tiles"`
	Spawns   []yamlTile    `yaml:"spawns,omitempty"`
	Monsters []yamlMonster `yaml:"monsters,omitempty"`
}

type yamlTile struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

type yamlMonster struct {
	Species string `yaml:"species"`
	Col     int    `yaml:"col"`
	Row     int    `yaml:"row"`
}

// ParseYAML parses a YAML map document.
func ParseYAML(name string, data []byte, size Size) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Map{}, &ParseError{Map: name, Message: err.Error()}
	}
	var ym yamlMap
	if err := doc.Decode(&ym); err != nil {
		return Map{}, &ParseError{Map: name, Message: err.Error()}
	}

	id := ym.ID
	if id == "" {
		id = mapID(name)
	}
	displayName := ym.Name
	if displayName == "" {
		displayName = id
	}

	tiles, err := parseTiles(id, ym.Tiles, tilesLineOffset(&doc))
	if err != nil {
		return Map{}, err
	}

	m := Map{Layout: sim.Layout{ID: id, Name: displayName, Tiles: tiles}}
	for _, s := range ym.Spawns {
		m.Spawns = append(m.Spawns, sim.Tile{Col: s.Col, Row: s.Row})
	}
	for _, mon := range ym.Monsters {
		species, err := sim.ParseSpecies(mon.Species)
		if err != nil {
			return Map{}, &ParseError{Map: id, Code: mon.Species, Message: "unknown monster species"}
		}
		m.Monsters = append(m.Monsters, sim.MonsterSpawn{Species: species, Tile: sim.Tile{Col: mon.Col, Row: mon.Row}})
	}
	if err := validate(&m, size); err != nil {
		return Map{}, err
	}
	if ym.Monsters == nil {
		m.Monsters = rosterFor(tiles)
	}
	return m, nil
}

// tilesLineOffset returns the number of document lines before the first row
// of the tiles block, so that errors point at the file line.
func tilesLineOffset(doc *yaml.Node) int {
	if len(doc.Content) == 0 {
		return 0
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "tiles" {
			continue
		}
		v := root.Content[i+1]
		if v.Style == yaml.LiteralStyle || v.Style == yaml.FoldedStyle {
			return v.Line
		}
		return v.Line - 1
	}
	return 0
}

// parseTiles reads rows of tile codes. lineOffset shifts reported line numbers.
func parseTiles(id, text string, lineOffset int) ([][]sim.TileKind, error) {
	var tiles [][]sim.TileKind
	sc := bufio.NewScanner(bytes.NewReader([]byte(text)))
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		var row []sim.TileKind
		for col, tok := range strings.Fields(raw) {
			code, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &ParseError{Map: id, Line: line + lineOffset, Column: col + 1, Code: tok, Message: "malformed number"}
			}
			kind, ok := sim.TileKindFromCode(code)
			if !ok {
				return nil, &ParseError{Map: id, Line: line + lineOffset, Column: col + 1, Code: tok, Message: "unknown tile code"}
			}
			row = append(row, kind)
		}
		if len(tiles) > 0 && len(row) != len(tiles[0]) {
			return nil, &ParseError{
				Map:     id,
				Line:    line + lineOffset,
				Message: fmt.Sprintf("wrong dimensions: row has %d columns, expected %d", len(row), len(tiles[0])),
			}
		}
		tiles = append(tiles, row)
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Map: id, Message: err.Error()}
	}
	if len(tiles) == 0 {
		return nil, &ParseError{Map: id, Message: "no tiles"}
	}
	return tiles, nil
}

// validate checks the grid size and that every spawn stands on an open tile.
func validate(m *Map, size Size) error {
	rows, cols := len(m.Tiles), len(m.Tiles[0])
	if size.Cols > 0 && size.Rows > 0 && (cols != size.Cols || rows != size.Rows) {
		return &ParseError{
			Map:     m.ID,
			Message: fmt.Sprintf("wrong dimensions: %dx%d, expected %dx%d", cols, rows, size.Cols, size.Rows),
		}
	}
	open := func(t sim.Tile) bool {
		return t.Col >= 0 && t.Row >= 0 && t.Col < cols && t.Row < rows && m.Tiles[t.Row][t.Col] == sim.Open
	}
	for i, s := range m.Spawns {
		if !open(s) {
			return &ParseError{Map: m.ID, Message: fmt.Sprintf("spawn %d at (%d,%d) is not an open tile", i+1, s.Col, s.Row)}
		}
	}
	for _, ms := range m.Monsters {
		if !open(ms.Tile) {
			return &ParseError{Map: m.ID, Message: fmt.Sprintf("%s at (%d,%d) is not on an open tile", ms.Species, ms.Tile.Col, ms.Tile.Row)}
		}
	}
	return nil
}

// rosterFor keeps the classic monsters whose spawn tile is open on this grid.
func rosterFor(tiles [][]sim.TileKind) []sim.MonsterSpawn {
	var out []sim.MonsterSpawn
	for _, ms := range classicRoster {
		t := ms.Tile
		if t.Row < len(tiles) && t.Col < len(tiles[t.Row]) && tiles[t.Row][t.Col] == sim.Open {
			out = append(out, ms)
		}
	}
	return out
}

func mapID(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
