package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianc/render/internal/gsx/errwrap"
)

// pathSet keeps .gsx paths in first-seen order without duplicates.
type pathSet struct {
	seen  map[string]bool
	paths []string
}

func (s *pathSet) add(p string) {
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	if !s.seen[p] {
		s.seen[p] = true
		s.paths = append(s.paths, p)
	}
}

// collectGSXPaths expands Go-style patterns relative to cwd: "dir/..." walks a tree,
// "dir" lists one directory and "file.gsx" names a file.
func collectGSXPaths(cwd string, patterns []string, skip func(name string) bool) ([]string, error) {
	var set pathSet
	for _, raw := range patterns {
		pat := strings.TrimSpace(raw)
		if pat == "" {
			continue
		}
		recursive := pat == "..." || strings.HasSuffix(pat, "/...")
		if recursive {
			pat = strings.TrimSuffix(strings.TrimSuffix(pat, "..."), "/")
			if pat == "" {
				pat = "."
			}
		}
		target := pat
		if !filepath.IsAbs(target) {
			target = filepath.Join(cwd, target)
		}
		target, err := filepath.Abs(target)
		if err != nil {
			return nil, err
		}

		if recursive {
			if err := walkGSX(target, skip, set.add); err != nil {
				return nil, errwrap.Wrapf(err, "can't walk `%s`", raw)
			}
			continue
		}
		st, err := os.Stat(target)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			if !isGSX(target) {
				return nil, fmt.Errorf("gsx: not a .gsx file: %s", target)
			}
			set.add(target)
			continue
		}
		entries, err := os.ReadDir(target)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && isGSX(e.Name()) {
				set.add(filepath.Join(target, e.Name()))
			}
		}
	}
	return set.paths, nil
}

func walkGSX(root string, skip func(name string) bool, add func(string)) error {
	return filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case de.IsDir() && path != root && skip(de.Name()):
			return filepath.SkipDir
		case !de.IsDir() && isGSX(path):
			add(path)
		}
		return nil
	})
}

func isGSX(name string) bool { return strings.HasSuffix(name, ".gsx") }
