// Package assets embeds the maze maps shipped with the client.
package assets

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/automoto/mazerun-mp/shared/leveldata"
)

const mazeDir = "mazes"

//go:embed mazes/*.tmx
var mazeFS embed.FS

var (
	loadOnce sync.Once
	mazes    map[string]*leveldata.MazeData
	names    []string
	loadErr  error
)

func load() {
	mazes, names, loadErr = leveldata.LoadAllMazes(mazeFS, mazeDir)
}

// MazeNames lists the embedded mazes in sorted order.
func MazeNames() ([]string, error) {
	loadOnce.Do(load)
	return names, loadErr
}

// LoadMaze returns the embedded maze called name. Matching ignores case.
func LoadMaze(name string) (*leveldata.MazeData, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	for n, m := range mazes {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("maze %q not found (have %v)", name, names)
}
