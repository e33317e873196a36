package maps

import (
	"embed"
	"io/fs"
)

//go:embed builtin/*.txt builtin/*.yaml
var builtinFS embed.FS

// Builtin loads the maps compiled into the binary.
func Builtin(size Size) ([]Map, error) {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, err
	}
	l := &Loader{FS: sub, Root: "builtin", Size: size}
	return l.LoadAll()
}
