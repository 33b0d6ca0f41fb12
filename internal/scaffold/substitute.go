package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/natefinch/atomic"
)

// Replacement maps one placeholder token to its value
type Replacement struct {
	Token string
	Value string
}

// Replacements is an ordered token list. Tokens are applied one after
// another over the whole content, so a later token also matches text
// produced by an earlier one.
type Replacements []Replacement

// Apply returns content with every token replaced in order
func (r Replacements) Apply(content string) string {
	for _, rep := range r {
		if rep.Token == "" {
			continue
		}
		content = strings.ReplaceAll(content, rep.Token, rep.Value)
	}
	return content
}

// EditFile applies r to the file at path in place. The file is only
// rewritten when its content changes; the write is atomic and keeps
// the original permission bits.
func EditFile(path string, r Replacements) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	edited := r.Apply(string(data))
	if edited == string(data) {
		return false, nil
	}

	if err := atomic.WriteFile(path, bytes.NewReader([]byte(edited))); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		return true, fmt.Errorf("chmod %s: %w", path, err)
	}
	return true, nil
}

// FindFiles returns every regular file under root whose name ends in
// one of exts, sorted by path
func FindFiles(root string, exts []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
