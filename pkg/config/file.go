package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileName is the project configuration file §4.8's "walk the
// filesystem... reading the first project configuration found" looks
// for, the same one `withReflectionMode` callers would otherwise have
// to set by hand.
const fileName = "reflect.toml"

// ProjectFile is one project configuration file's relevant contents.
// Only the `reflection` key governs the probe; everything else a real
// project file might carry is out of this package's scope.
type ProjectFile struct {
	Reflection string `toml:"reflection"`

	// Dir is the directory the file was found in, set at load time.
	Dir string `toml:"-"`
}

// loadProjectFile parses fileName out of dir, mirroring
// manifest.Load's read-then-unmarshal shape.
func loadProjectFile(dir string) (*ProjectFile, error) {
	path := filepath.Join(dir, fileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	var f ProjectFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse error in %s: %w", path, err)
	}
	f.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve path %s: %w", dir, err)
	}
	return &f, nil
}

// findProjectFile walks up from startDir looking for fileName,
// mirroring manifest.FindAndLoad's ancestor walk. Returns nil, nil if
// no file is found anywhere up to the filesystem root.
func findProjectFile(startDir string) (*ProjectFile, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}
	for {
		path := filepath.Join(dir, fileName)
		if _, err := os.Stat(path); err == nil {
			return loadProjectFile(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}
