package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	wallLayerName  = "walls"
	spawnGroupName = "PlayerSpawn"
	wrapRowsProp   = "wrapRows"
)

// LoadMaze parses a TMX file into maze data. It takes an fs.FS so callers can
// pass embed.FS (client) or os.DirFS (tools).
//
// Wrap rows come from the map's "wrapRows" property (comma separated). When
// the property is absent every row whose first and last cells are both open
// is treated as a tunnel row.
func LoadMaze(fsys fs.FS, tmxPath string) (*MazeData, error) {
	mazeMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if mazeMap.Width <= 0 || mazeMap.Height <= 0 {
		return nil, fmt.Errorf("TMX %s: empty map", tmxPath)
	}

	data := &MazeData{
		Name:     strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Rows:     mazeMap.Height,
		Cols:     mazeMap.Width,
		TileSize: mazeMap.TileWidth,
		Walls:    make([]bool, mazeMap.Width*mazeMap.Height),
	}

	foundWalls := false
	for _, layer := range mazeMap.Layers {
		if layer.Name != wallLayerName {
			continue
		}
		foundWalls = true
		for i, tile := range layer.Tiles {
			if i >= len(data.Walls) {
				break
			}
			data.Walls[i] = !tile.IsNil()
		}
		break
	}
	if !foundWalls {
		return nil, fmt.Errorf("TMX %s: no %q layer", tmxPath, wallLayerName)
	}

	tileW := float64(mazeMap.TileWidth)
	tileH := float64(mazeMap.TileHeight)
	for _, og := range mazeMap.ObjectGroups {
		if og.Name != spawnGroupName {
			continue
		}
		for _, o := range og.Objects {
			sp := SpawnPoint{
				Row: int(o.Y / tileH),
				Col: int(o.X / tileW),
			}
			if o.Properties != nil {
				sp.Index = o.Properties.GetInt("spawnIndex")
			}
			if data.IsWall(sp.Row, sp.Col) {
				return nil, fmt.Errorf("TMX %s: spawn %d at (%d,%d) is inside a wall", tmxPath, sp.Index, sp.Row, sp.Col)
			}
			data.Spawns = append(data.Spawns, sp)
		}
	}
	sort.Slice(data.Spawns, func(i, j int) bool {
		return data.Spawns[i].Index < data.Spawns[j].Index
	})

	var wrapSpec string
	if mazeMap.Properties != nil {
		wrapSpec = mazeMap.Properties.GetString(wrapRowsProp)
	}
	if wrapSpec != "" {
		rows, err := ParseWrapRows(wrapSpec)
		if err != nil {
			return nil, fmt.Errorf("TMX %s: %w", tmxPath, err)
		}
		data.WrapRows = rows
	} else {
		data.WrapRows = DetectWrapRows(data)
	}

	// Validates wrap rows against the grid.
	if _, err := data.Topology(float64(data.TileSize)); err != nil {
		return nil, fmt.Errorf("TMX %s: %w", tmxPath, err)
	}

	return data, nil
}

// ParseWrapRows parses a comma separated list of row indices.
func ParseWrapRows(spec string) ([]int, error) {
	var rows []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("wrap row %q: %w", part, err)
		}
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows, nil
}

// DetectWrapRows returns rows whose leftmost and rightmost cells are both open.
func DetectWrapRows(m *MazeData) []int {
	var rows []int
	for r := 0; r < m.Rows; r++ {
		if !m.IsWall(r, 0) && !m.IsWall(r, m.Cols-1) {
			rows = append(rows, r)
		}
	}
	return rows
}

// LoadAllMazes discovers all .tmx files in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAllMazes(fsys fs.FS, dir string) (map[string]*MazeData, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	mazes := make(map[string]*MazeData, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		data, err := LoadMaze(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		mazes[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return mazes, names, nil
}
