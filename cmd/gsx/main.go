package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/kilianc/render/internal/gsx/compile"
	"github.com/kilianc/render/internal/gsx/config"
	"github.com/kilianc/render/internal/gsx/errwrap"
	"github.com/kilianc/render/internal/gsx/watch"

	"github.com/alexflint/go-arg"
)

// Args is the parsed command line.
type Args struct {
	Root    string   `arg:"--root" help:"module root (defaults to auto-detected go.mod parent from cwd)"`
	Dir     string   `arg:"--dir" help:"if set, only generate for this directory (non-recursive). Useful with go:generate."`
	Target  string   `arg:"--target" help:"override the gsx.yaml target: string or gomponents"`
	Verbose bool     `arg:"-v,--verbose" help:"log every compiled and written file"`
	Watch   bool     `arg:"--watch" help:"keep running and regenerate when .gsx files change"`
	Dump    bool     `arg:"--dump" help:"print the markup tokens and nodes of each block instead of writing files"`
	Paths   []string `arg:"positional" help:"./... (default), ./dir, ./dir/... or ./file.gsx"`
}

// Description is shown at the top of --help.
func (Args) Description() string {
	return "Generates one *.gsx.go file next to each *.gsx source.\n" +
		"Paths behave like Go patterns: ./... recurses, ./dir is one directory, ./file.gsx one file."
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		stop()
		fatal(err)
	}
}

func run(ctx context.Context, argv []string) error {
	args := Args{}
	parser, err := arg.NewParser(arg.Config{Program: "gsx"}, &args)
	if err != nil {
		return errwrap.Wrapf(err, "cli config error")
	}
	err = parser.Parse(argv)
	if err == arg.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, "gsx: ", 0)
	logf := func(format string, v ...interface{}) {}
	if args.Verbose {
		logf = logger.Printf
	}

	root := args.Root
	if root == "" {
		mod, err := config.FindModule(cwd)
		if err != nil {
			return err
		}
		logf("module %s at %s", mod.Path, mod.Root)
		root = mod.Root
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return err
	}

	cfg, err := config.ForModule(root)
	if err != nil {
		return err
	}
	if args.Target != "" {
		cfg.Target = config.Target(args.Target)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	g := &generator{
		cfg: cfg,
		opts: compile.Options{
			Target: cfg.Target,
			Macro:  cfg.Macro,
			Logf:   logf,
		},
		dump: args.Dump,
		out:  os.Stdout,
		logf: logf,
	}

	if strings.TrimSpace(args.Dir) != "" && len(args.Paths) != 0 {
		return fmt.Errorf("gsx: cannot use --dir with positional paths")
	}

	var watchRoots []string
	if strings.TrimSpace(args.Dir) != "" {
		dir := args.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		dir, err = filepath.Abs(dir)
		if err != nil {
			return err
		}
		if err := g.dir(dir); err != nil {
			return err
		}
		watchRoots = []string{dir}
		g.onlyDir = dir
	} else {
		patterns := args.Paths
		if len(patterns) == 0 {
			patterns = []string{"./..."}
		}
		paths, err := collectGSXPaths(cwd, patterns, cfg.Skip)
		if err != nil {
			return err
		}
		var allErr error
		for _, pth := range paths {
			allErr = errwrap.Append(allErr, g.file(pth))
		}
		if allErr != nil && !args.Watch {
			return allErr
		}
		if allErr != nil {
			logger.Print(allErr)
		}
		watchRoots = []string{root}
	}

	if !args.Watch {
		return nil
	}
	return g.watch(ctx, logger, watchRoots)
}

func (g *generator) watch(ctx context.Context, logger *log.Logger, roots []string) error {
	w, err := watch.New(g.cfg.Skip, roots...)
	if err != nil {
		return err
	}
	defer w.Close()
	w.Logf = logger.Printf

	logger.Printf("watching %s", strings.Join(roots, ", "))
	return w.Run(ctx, func(pth string) {
		if g.onlyDir != "" && filepath.Dir(pth) != g.onlyDir {
			return
		}
		if err := g.file(pth); err != nil {
			logger.Print(err)
		}
	})
}

func fatal(err error) {
	_, _ = fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
