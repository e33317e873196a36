package maps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Loader reads map files from a file system tree.
type Loader struct {
	FS   fs.FS
	Root string // used in error messages and Map.Path
	Size Size
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(dir string, size Size) *Loader {
	return &Loader{FS: os.DirFS(dir), Root: dir, Size: size}
}

// LoadAll walks the tree and parses every map file. Maps are returned sorted
// by ID. Files that fail to parse are skipped and their errors joined in the
// returned error, so callers can choose between strict and lenient loading.
func (l *Loader) LoadAll() ([]Map, error) {
	var (
		out  []Map
		errs []error
	)
	err := fs.WalkDir(l.FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMapFile(path) {
			return nil
		}
		m, err := l.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("maps: walking %s: %w", l.Root, err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, errors.Join(errs...)
}

// LoadFile parses one map file relative to the loader root.
func (l *Loader) LoadFile(path string) (Map, error) {
	data, err := fs.ReadFile(l.FS, path)
	if err != nil {
		return Map{}, fmt.Errorf("maps: reading %s: %w", path, err)
	}
	m, err := Parse(path, data, l.Size)
	if err != nil {
		return Map{}, err
	}
	m.Path = filepath.Join(l.Root, filepath.FromSlash(path))
	return m, nil
}

// LoadByID loads the map with the given ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	all, _ := l.LoadAll()
	for _, m := range all {
		if m.ID == id {
			return m, nil
		}
	}
	return Map{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
