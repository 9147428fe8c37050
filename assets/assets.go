package assets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/automoto/timeslip/shared/leveldata"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

const levelsDir = "levels"

// LevelNames lists the embedded levels in sorted order.
func LevelNames() []string {
	_, names, err := leveldata.LoadAllLevels(assetFS, levelsDir)
	if err != nil {
		panic(err)
	}
	return names
}

// LoadLevel resolves name to a level. A name ending in .tmx is read from
// disk, anything else is looked up among the embedded levels. An empty
// name picks the first embedded level.
func LoadLevel(name string) (*leveldata.Level, error) {
	if strings.HasSuffix(name, ".tmx") {
		return leveldata.LoadLevel(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	levels, names, err := leveldata.LoadAllLevels(assetFS, levelsDir)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = names[0]
	}
	level, ok := levels[name]
	if !ok {
		return nil, fmt.Errorf("unknown level %q (have %s)", name, strings.Join(names, ", "))
	}
	return level, nil
}

// MustLoadLevel is LoadLevel for scene construction.
func MustLoadLevel(name string) *leveldata.Level {
	level, err := LoadLevel(name)
	if err != nil {
		panic(err)
	}
	return level
}
