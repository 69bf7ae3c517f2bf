package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/kilianc/render/internal/gsx/compile"
	"github.com/kilianc/render/internal/gsx/config"
	"github.com/kilianc/render/internal/gsx/errwrap"
	"github.com/kilianc/render/internal/gsx/outfile"

	"github.com/sanity-io/litter"
)

type generator struct {
	cfg     *config.Config
	opts    compile.Options
	dump    bool
	out     io.Writer
	onlyDir string
	logf    func(format string, v ...interface{})
}

func (g *generator) dir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && isGSX(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	for _, pth := range paths {
		if err := g.file(pth); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) file(pth string) error {
	b, err := os.ReadFile(pth)
	if err != nil {
		return errwrap.Wrapf(err, "can't read `%s`", pth)
	}
	if g.dump {
		return g.dumpFile(pth, b)
	}
	src, err := compile.CompileFile(pth, b, g.opts)
	if err != nil {
		return err
	}
	outPath := g.cfg.OutPath(pth)
	changed, err := outfile.WriteGeneratedFile(outPath, src)
	if err != nil {
		return err
	}
	if changed {
		g.logf("wrote %s", outPath)
	}
	return nil
}

var dumpOptions = litter.Options{
	HidePrivateFields: true,
	FieldExclusions:   regexp.MustCompile(`^(Pos|End|Start|OpenPos|ClosePos|OpenEnd)$`),
}

func (g *generator) dumpFile(pth string, b []byte) error {
	u, err := compile.Analyze(pth, b, g.cfg.Macro)
	if err != nil {
		return err
	}
	for _, blk := range u.Blocks {
		fmt.Fprintf(g.out, "# %s\n", u.Fset.Position(blk.Pos))
		fmt.Fprintf(g.out, "tokens: %s\n", dumpOptions.Sdump(blk.Tokens))
		fmt.Fprintf(g.out, "nodes: %s\n", dumpOptions.Sdump(blk.Nodes))
	}
	return nil
}
