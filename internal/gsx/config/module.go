package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kilianc/render/internal/gsx/errwrap"

	"golang.org/x/mod/modfile"
)

// Module is the Go module a .gsx file belongs to.
type Module struct {
	Root string // directory holding go.mod
	Path string // module path from go.mod
}

// FindModule walks up from start to the first directory holding a go.mod.
func FindModule(start string) (*Module, error) {
	d, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	for {
		gomod := filepath.Join(d, "go.mod")
		b, err := os.ReadFile(gomod)
		if err == nil {
			path := modfile.ModulePath(b)
			if path == "" {
				return nil, fmt.Errorf("%s has no module directive", gomod)
			}
			return &Module{Root: d, Path: path}, nil
		}
		if !os.IsNotExist(err) {
			return nil, errwrap.Wrapf(err, "can't read `%s`", gomod)
		}
		parent := filepath.Dir(d)
		if parent == d {
			return nil, fmt.Errorf("could not find go.mod above %s", start)
		}
		d = parent
	}
}
