package leveldata

import (
	"strings"
	"testing"
	"testing/fstest"
)

const testTileset = ` <tileset firstgid="1" name="maze" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="maze.png" width="16" height="16"/>
 </tileset>
`

func tmx(props, csv, objects string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="6" height="4" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="3">
`)
	b.WriteString(props)
	b.WriteString(testTileset)
	b.WriteString(` <layer id="1" name="walls" width="6" height="4">
  <data encoding="csv">
`)
	b.WriteString(csv)
	b.WriteString(`</data>
 </layer>
`)
	b.WriteString(objects)
	b.WriteString("</map>\n")
	return b.String()
}

const testWalls = `1,1,1,1,1,1,
0,0,0,0,0,0,
1,0,1,1,0,1,
1,1,1,1,1,1
`

const testSpawns = ` <objectgroup id="2" name="PlayerSpawn">
  <object id="1" x="72" y="40" width="16" height="16">
   <properties>
    <property name="spawnIndex" type="int" value="1"/>
   </properties>
  </object>
  <object id="2" x="24" y="40" width="16" height="16">
   <properties>
    <property name="spawnIndex" type="int" value="0"/>
   </properties>
  </object>
 </objectgroup>
`

func TestLoadMazeDetectsWrapRows(t *testing.T) {
	fsys := fstest.MapFS{
		"mazes/tiny.tmx": {Data: []byte(tmx("", testWalls, testSpawns))},
	}

	m, err := LoadMaze(fsys, "mazes/tiny.tmx")
	if err != nil {
		t.Fatalf("LoadMaze: %v", err)
	}
	if m.Name != "tiny" || m.Rows != 4 || m.Cols != 6 || m.TileSize != 16 {
		t.Fatalf("got %s %dx%d tile %d, want tiny 4x6 tile 16", m.Name, m.Rows, m.Cols, m.TileSize)
	}
	if !m.IsWall(0, 0) || m.IsWall(1, 0) || m.IsWall(2, 1) || !m.IsWall(2, 2) {
		t.Fatal("wall layer decoded wrong")
	}
	if !m.IsWall(-1, 0) || !m.IsWall(0, 6) {
		t.Fatal("out of range cells must be solid")
	}
	if len(m.WrapRows) != 1 || m.WrapRows[0] != 1 {
		t.Fatalf("WrapRows = %v, want [1]", m.WrapRows)
	}
	if len(m.Spawns) != 2 {
		t.Fatalf("spawns = %d, want 2", len(m.Spawns))
	}
	if got := m.Spawns[0]; got != (SpawnPoint{Row: 2, Col: 1, Index: 0}) {
		t.Fatalf("spawn 0 = %+v, want {2 1 0}", got)
	}
	if got := m.Spawns[1]; got != (SpawnPoint{Row: 2, Col: 4, Index: 1}) {
		t.Fatalf("spawn 1 = %+v, want {2 4 1}", got)
	}
	if n := len(m.OpenCells()); n != 8 {
		t.Fatalf("open cells = %d, want 8", n)
	}
}

func TestLoadMazeWrapRowsProperty(t *testing.T) {
	props := ` <properties>
  <property name="wrapRows" value="2, 1"/>
 </properties>
`
	fsys := fstest.MapFS{
		"mazes/prop.tmx": {Data: []byte(tmx(props, testWalls, ""))},
	}

	m, err := LoadMaze(fsys, "mazes/prop.tmx")
	if err != nil {
		t.Fatalf("LoadMaze: %v", err)
	}
	if len(m.WrapRows) != 2 || m.WrapRows[0] != 1 || m.WrapRows[1] != 2 {
		t.Fatalf("WrapRows = %v, want [1 2]", m.WrapRows)
	}
	topo, err := m.Topology(10)
	if err != nil {
		t.Fatalf("Topology: %v", err)
	}
	if !topo.HasWrap(2) {
		t.Fatal("row 2 should wrap")
	}
}

func TestLoadMazeRejectsOutOfRangeWrapRow(t *testing.T) {
	props := ` <properties>
  <property name="wrapRows" value="9"/>
 </properties>
`
	fsys := fstest.MapFS{
		"mazes/bad.tmx": {Data: []byte(tmx(props, testWalls, ""))},
	}
	if _, err := LoadMaze(fsys, "mazes/bad.tmx"); err == nil {
		t.Fatal("expected error for wrap row outside the grid")
	}
}

func TestLoadMazeRejectsSpawnInWall(t *testing.T) {
	objects := ` <objectgroup id="2" name="PlayerSpawn">
  <object id="1" x="0" y="0" width="16" height="16"/>
 </objectgroup>
`
	fsys := fstest.MapFS{
		"mazes/wall.tmx": {Data: []byte(tmx("", testWalls, objects))},
	}
	if _, err := LoadMaze(fsys, "mazes/wall.tmx"); err == nil {
		t.Fatal("expected error for spawn inside a wall")
	}
}

func TestParseWrapRows(t *testing.T) {
	rows, err := ParseWrapRows(" 14, 5,,9 ")
	if err != nil {
		t.Fatalf("ParseWrapRows: %v", err)
	}
	if len(rows) != 3 || rows[0] != 5 || rows[1] != 9 || rows[2] != 14 {
		t.Fatalf("rows = %v, want [5 9 14]", rows)
	}
	if _, err := ParseWrapRows("5,x"); err == nil {
		t.Fatal("expected error for non-numeric row")
	}
}

func TestLoadAllMazes(t *testing.T) {
	fsys := fstest.MapFS{
		"mazes/b.tmx": {Data: []byte(tmx("", testWalls, ""))},
		"mazes/a.tmx": {Data: []byte(tmx("", testWalls, ""))},
	}
	mazes, names, err := LoadAllMazes(fsys, "mazes")
	if err != nil {
		t.Fatalf("LoadAllMazes: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names = %v, want [a b]", names)
	}
	if mazes["a"] == nil || mazes["b"] == nil {
		t.Fatal("missing maze entries")
	}
	if _, _, err := LoadAllMazes(fstest.MapFS{}, "mazes"); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
