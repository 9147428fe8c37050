package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

var ErrNoSpawn = errors.New("level has no player spawn")

// LoadLevel parses a TMX file. It takes an fs.FS so callers can pass the
// embedded levels or os.DirFS.
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	level := &Level{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:  levelMap.Width * levelMap.TileWidth,
		Height: levelMap.Height * levelMap.TileHeight,
	}

	spawned := false
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Player":
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				level.Spawn = Point{X: o.X, Y: o.Y}
				spawned = true
			}
		case "Platforms":
			for _, o := range og.Objects {
				level.Platforms = append(level.Platforms, Platform{
					Rect:   Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height},
					ID:     o.Name,
					OneWay: o.Properties.GetBool("oneWay"),
				})
			}
		case "Boxes":
			for _, o := range og.Objects {
				level.Boxes = append(level.Boxes, Box{
					ID:       o.Name,
					X:        o.X,
					Y:        o.Y,
					Size:     o.Width,
					Mass:     o.Properties.GetFloat("mass"),
					Friction: o.Properties.GetFloat("friction"),
				})
			}
		case "JumpPads":
			for _, o := range og.Objects {
				level.JumpPads = append(level.JumpPads, JumpPad{
					Rect:        Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height},
					ID:          o.Name,
					LaunchSpeed: o.Properties.GetFloat("launchSpeed"),
				})
			}
		case "Goal":
			for _, o := range og.Objects {
				level.Goals = append(level.Goals, Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height})
			}
		case "Abilities":
			for _, o := range og.Objects {
				if o.Name == "" {
					continue
				}
				level.Abilities = append(level.Abilities, AbilityGrant{
					Name: o.Name,
					Uses: o.Properties.GetInt("uses"),
					N:    o.Properties.GetInt("n"),
				})
			}
		}
	}

	if !spawned {
		return nil, fmt.Errorf("%s: %w", tmxPath, ErrNoSpawn)
	}

	// Boxes need stable ids for rewind matching
	for i := range level.Boxes {
		if level.Boxes[i].ID == "" {
			level.Boxes[i].ID = fmt.Sprintf("box-%d", i)
		}
	}

	return level, nil
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads
// each, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		level, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
