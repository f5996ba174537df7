package source

import (
	"fmt"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// lineStart returns the byte offset where the given 0-based line begins.
func lineStart(lineIdx []uint32, line int) uint32 {
	if line <= 0 {
		return 0
	}
	return lineIdx[line-1] + 1
}

// toLineCol resolves a byte offset to a 1-based line and a 1-based column
// counted in code points. Offsets past the end of content are clamped.
func toLineCol(content []byte, lineIdx []uint32, off uint32) LineCol {
	lenContent, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if off > lenContent {
		off = lenContent
	}

	// бинпоиск: находим наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	line := lo // количество \n строго до off

	start := lineStart(lineIdx, line)
	col, err := safecast.Conv[uint32](utf8.RuneCount(content[start:off]))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	lineNum, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	return LineCol{Line: lineNum, Col: col + 1}
}

// Locate resolves a byte offset in a standalone document without registering
// it in a FileSet. Negative offsets resolve to the first column.
func Locate(content []byte, off int) LineCol {
	if off < 0 {
		off = 0
	}
	u, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return toLineCol(content, buildLineIndex(content), u)
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the cleaned absolute form of path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns path relative to baseDir. Paths that would escape
// baseDir fall back to their absolute form.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := AbsolutePath(path)
	if err != nil {
		return "", err
	}
	absBase, err := AbsolutePath(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return absPath, nil
	}
	rel = normalizePath(rel)
	if rel == ".." || len(rel) > 2 && rel[:3] == "../" {
		return absPath, nil
	}
	return rel, nil
}

// BaseName returns the last element of path.
func BaseName(path string) string {
	return filepath.Base(path)
}
