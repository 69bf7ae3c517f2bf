package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kilianc/render/internal/gsx/compile"
	"github.com/kilianc/render/internal/gsx/config"
	"github.com/kilianc/render/internal/gsx/errwrap"
	"github.com/kilianc/render/internal/gsx/outfile"
	"github.com/kilianc/render/internal/gsx/watch"

	"github.com/alexflint/go-arg"
)

type args struct {
	Debounce time.Duration `arg:"--debounce" default:"300ms" help:"quiet period before regenerating"`
	Target   string        `arg:"--target" help:"override the gsx.yaml target: string or gomponents"`
}

func (args) Description() string {
	return "Watches ./playground/page.gsx and regenerates it on changes."
}

func main() {
	var a args
	arg.MustParse(&a)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watchAndGenerate(ctx, a); err != nil {
		stop()
		fatal(err)
	}
}

func watchAndGenerate(ctx context.Context, a args) error {
	mod, err := config.FindModule(".")
	if err != nil {
		return err
	}
	cfg, err := config.ForModule(mod.Root)
	if err != nil {
		return err
	}
	if a.Target != "" {
		cfg.Target = config.Target(a.Target)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	target := filepath.Join(mod.Root, "playground", "page.gsx")
	logger := log.New(os.Stderr, "playground: ", 0)
	opts := compile.Options{Target: cfg.Target, Macro: cfg.Macro, Logf: logger.Printf}

	generate := func() {
		if err := generateFile(cfg, opts, target); err != nil {
			logger.Printf("gsx generate failed: %v", err)
		}
	}
	generate()

	w, err := watch.New(cfg.Skip, filepath.Dir(target))
	if err != nil {
		return err
	}
	defer w.Close()
	w.Debounce = a.Debounce
	w.Logf = logger.Printf

	return w.Run(ctx, func(pth string) {
		if pth == target {
			generate()
		}
	})
}

func generateFile(cfg *config.Config, opts compile.Options, pth string) error {
	b, err := os.ReadFile(pth)
	if err != nil {
		return errwrap.Wrapf(err, "read error")
	}
	src, err := compile.CompileFile(pth, b, opts)
	if err != nil {
		return err
	}
	_, err = outfile.WriteGeneratedFile(cfg.OutPath(pth), src)
	return err
}

func fatal(err error) {
	_, _ = fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
