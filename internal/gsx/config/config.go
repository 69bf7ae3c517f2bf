// Package config loads the optional gsx.yaml file found at the module root.
package config

import (
	"bytes"
	"fmt"
	gotoken "go/token"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilianc/render/internal/gsx/errwrap"

	"gopkg.in/yaml.v3"
)

// Filename is the name of the config file, looked up at the module root.
const Filename = "gsx.yaml"

// Target selects what a markup block compiles to.
type Target string

const (
	// TargetString compiles blocks to string concatenations.
	TargetString Target = "string"
	// TargetGomponents compiles blocks to maragu.dev/gomponents nodes.
	TargetGomponents Target = "gomponents"
)

// Config is the decoded gsx.yaml.
type Config struct {
	// Target is the emitted expression kind, "string" or "gomponents".
	Target Target `yaml:"target"`

	// Macro is the name of the block macro, as in render!{ ... }.
	Macro string `yaml:"macro"`

	// Exclude lists directory names skipped when walking for .gsx files. Directories
	// starting with a dot are always skipped.
	Exclude []string `yaml:"exclude"`

	// Suffix is appended to the source path to name the generated file.
	Suffix string `yaml:"suffix"`
}

// Default returns the configuration used when no gsx.yaml exists.
func Default() *Config {
	return &Config{
		Target:  TargetString,
		Macro:   "render",
		Exclude: []string{"vendor", "node_modules"},
		Suffix:  ".go",
	}
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errwrap.Wrapf(err, "can't read config `%s`", path)
	}
	cfg, err := Parse(bytes.NewReader(b))
	if err != nil {
		return nil, errwrap.Wrapf(err, "invalid config `%s`", path)
	}
	return cfg, nil
}

// Parse decodes a config document over the defaults. Unknown fields are an error.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	switch c.Target {
	case TargetString, TargetGomponents:
	default:
		return fmt.Errorf("target: unknown target %q (want %q or %q)", c.Target, TargetString, TargetGomponents)
	}
	if !gotoken.IsIdentifier(c.Macro) {
		return fmt.Errorf("macro: %q is not a valid identifier", c.Macro)
	}
	if c.Suffix == "" || !strings.HasSuffix(c.Suffix, ".go") {
		return fmt.Errorf("suffix: %q must end in .go", c.Suffix)
	}
	return nil
}

// Skip reports whether a directory with this base name is not walked.
func (c *Config) Skip(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	for _, x := range c.Exclude {
		if x == name {
			return true
		}
	}
	return false
}

// OutPath returns the generated file path for a .gsx source.
func (c *Config) OutPath(src string) string {
	return src + c.Suffix
}

// ForModule loads the config of the module rooted at root.
func ForModule(root string) (*Config, error) {
	return Load(filepath.Join(root, Filename))
}
