package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// StdinArg selects standard input on the command line.
const StdinArg = "-"

// StdinName is the display name of standard input.
const StdinName = "<stdin>"

// DefaultExtensions are collected when walking directories.
var DefaultExtensions = []string{".json", ".jsonc"}

// ErrNoInputs is returned when arguments expand to nothing.
var ErrNoInputs = errors.New("no input files")

// CollectInputs expands command-line arguments into an ordered list of
// inputs. Files are kept as given, directories are walked for files whose
// extension is in exts (hidden directories are skipped), "-" selects stdin.
// Duplicates are dropped, first occurrence wins.
func CollectInputs(args, exts []string) ([]string, error) {
	if len(args) == 0 {
		return []string{StdinArg}, nil
	}
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	seen := make(map[string]struct{}, len(args))
	out := make([]string, 0, len(args))
	add := func(p string) {
		key := p
		if p != StdinArg {
			key = filepath.Clean(p)
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}

	for _, arg := range args {
		if arg == StdinArg {
			add(arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := listFiles(arg, exts)
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
		for _, f := range files {
			add(f)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoInputs
	}
	return out, nil
}

// listFiles возвращает отсортированный список файлов с нужными расширениями
func listFiles(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExt(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
