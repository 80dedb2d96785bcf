package pybuild

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// copyPrebuilt implements the debug shortcut for one extension: the
// output directory is created if absent and the prebuilt tree is
// copied over it, overwriting existing files. No external process runs
// on this path.
func copyPrebuilt(cfg *Config, desc ExtensionDescriptor) error {
	outDir, err := filepath.Abs(filepath.Join(cfg.OutputDir, desc.packageDir()))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}
	if err := copyTree(cfg.PrebuiltDir, outDir); err != nil {
		return fmt.Errorf("copying prebuilt tree for %s: %w", desc.Name, err)
	}
	return nil
}

// copyTree recursively copies src into dst, creating directories as
// needed and truncating files that already exist.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
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
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(filepath.Dir(destPath), 0o755); mkErr != nil {
		return mkErr
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
