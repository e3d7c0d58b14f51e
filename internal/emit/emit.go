// Package emit writes finished pages into the output tree and copies their
// declared side-files alongside them.
package emit

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	siteerrors "github.com/axvr/axvr.uk/internal/errors"
	"github.com/axvr/axvr.uk/internal/logfields"
	"github.com/axvr/axvr.uk/internal/page"
)

// Emit writes a fully rendered page to its output path, creating parent
// directories as needed, then copies each `requires` entry from the
// descriptor's directory to the output file's directory. A failed side-file
// copy is returned as a warning and does not fail the page; a failed write
// is fatal for the whole build.
func Emit(rec page.Record) (warnings []error, err error) {
	if err := os.MkdirAll(filepath.Dir(rec.OutputPath), 0o755); err != nil {
		return nil, siteerrors.OutputWriteFailure(rec.OutputPath, err)
	}
	if err := os.WriteFile(rec.OutputPath, []byte(rec.FinalPage), 0o644); err != nil {
		return nil, siteerrors.OutputWriteFailure(rec.OutputPath, err)
	}
	slog.Debug("Wrote page", logfields.Page(rec.RelPath), logfields.Path(rec.OutputPath))

	srcDir := filepath.Dir(rec.InputPath)
	dstDir := filepath.Dir(rec.OutputPath)
	for _, req := range rec.Desc.Requires {
		if err := copyPath(filepath.Join(srcDir, req), filepath.Join(dstDir, req)); err != nil {
			w := siteerrors.MissingRequiredFile(rec.RelPath, req, err)
			slog.Warn("Required side-file not copied", logfields.Page(rec.RelPath), logfields.Require(req), logfields.Error(err))
			warnings = append(warnings, w)
		}
	}
	return warnings, nil
}

// copyPath copies a file, or a directory recursively, preserving the
// relative layout under the destination.
func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return CopyDir(src, dst)
	}
	return copyFile(src, dst)
}

// CopyDir recursively copies a directory tree.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// WipeDir removes the contents of dir without removing dir itself. A missing
// directory is created instead.
func WipeDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
