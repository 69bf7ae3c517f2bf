package outfile

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/kilianc/render/internal/gsx/errwrap"
)

// WriteGeneratedFile writes src to outPath through a temporary file and a rename. It
// reports whether the file changed; an identical existing file is left untouched so
// that watchers are not retriggered.
func WriteGeneratedFile(outPath string, src []byte) (bool, error) {
	if old, err := os.ReadFile(outPath); err == nil && bytes.Equal(old, src) {
		return false, nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*")
	if err != nil {
		return false, errwrap.Wrapf(err, "can't create temp file for `%s`", outPath)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		return false, errwrap.Wrapf(err, "can't write `%s`", tmp.Name())
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return false, errwrap.Wrapf(err, "can't replace `%s`", outPath)
	}
	return true, nil
}
