// Package scaffold provides the filesystem primitives used to turn a
// template folder into a new project: recursive copy, file discovery and
// literal token substitution.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrDestinationExists is returned by CopyTree when dst is already present
var ErrDestinationExists = errors.New("destination already exists")

// Stats counts what a copy operation wrote
type Stats struct {
	Files int
	Dirs  int
	Bytes int64
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Files += other.Files
	s.Dirs += other.Dirs
	s.Bytes += other.Bytes
}

// CopyTree recursively copies the directory src to dst. dst must not
// exist. Symlinks are followed: linked files are copied as regular files
// and linked directories have their contents copied. A link that points
// back into one of its own parents is an error.
func CopyTree(ctx context.Context, src, dst string) (Stats, error) {
	var stats Stats

	info, err := os.Stat(src)
	if err != nil {
		return stats, fmt.Errorf("stat template folder: %w", err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("template folder %s is not a directory", src)
	}
	if _, err := os.Lstat(dst); err == nil {
		return stats, fmt.Errorf("%s: %w", dst, ErrDestinationExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return stats, fmt.Errorf("stat destination: %w", err)
	}

	if err := copyDir(ctx, src, dst, &stats, make(map[string]bool)); err != nil {
		return stats, fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return stats, nil
}

// copyDir walks the resolved form of src; parents holds the resolved
// directories currently being copied
func copyDir(ctx context.Context, src, dst string, stats *Stats, parents map[string]bool) error {
	root, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	if parents[root] {
		return fmt.Errorf("symlink loop at %s", src)
	}
	parents[root] = true
	defer delete(parents, root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		fi, err := os.Stat(path)
		if err != nil {
			return err
		}

		if fi.IsDir() {
			// WalkDir does not descend into linked directories
			if d.Type()&fs.ModeSymlink != 0 {
				return copyDir(ctx, path, target, stats, parents)
			}
			if err := os.MkdirAll(target, fi.Mode().Perm()|0o700); err != nil {
				return err
			}
			stats.Dirs++
			return nil
		}

		n, err := CopyFile(path, target)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += n
		return nil
	})
}

// CopyFile copies the contents and permission bits of src to dst,
// replacing dst if it exists. It returns the number of bytes written.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s is a directory", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("copy %s: %w", src, err)
	}
	return n, nil
}

// CopyInto copies src into the directory dir, keeping its base name.
// It returns the path of the new file.
func CopyInto(src, dir string) (string, int64, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}
	dst := filepath.Join(dir, filepath.Base(src))
	n, err := CopyFile(src, dst)
	if err != nil {
		return "", n, err
	}
	return dst, n, nil
}

// Exists reports whether path exists. Errors other than "not found"
// are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
