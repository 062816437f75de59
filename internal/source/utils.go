package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены.
func normalizeCRLF(content []byte) ([]byte, bool) {
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

// buildLineIndex records the offset of the last byte of every line
// terminator, so the next line always starts one byte later.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i := 0; i < len(content); {
		n := LineBreakLen(content, i)
		if n == 0 {
			i++
			continue
		}
		off, err := safecast.Conv[uint32](i + n - 1)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		out = append(out, off)
		i += n
	}
	return out
}

// LineBreakLen returns the byte length of the line terminator at content[i],
// or 0. Terminators are \n, \r\n, a lone \r, U+0085, U+2028 and U+2029.
func LineBreakLen(content []byte, i int) int {
	if i < 0 || i >= len(content) {
		return 0
	}
	switch content[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(content) && content[i+1] == '\n' {
			return 2
		}
		return 1
	case 0xC2:
		if i+1 < len(content) && content[i+1] == 0x85 {
			return 2
		}
	case 0xE2:
		if i+2 < len(content) && content[i+1] == 0x80 && (content[i+2] == 0xA8 || content[i+2] == 0xA9) {
			return 3
		}
	}
	return 0
}

// LineBreakBefore returns the byte length of the line terminator that ends
// right before content[end], or 0.
func LineBreakBefore(content []byte, end int) int {
	if end <= 0 || end > len(content) {
		return 0
	}
	switch c := content[end-1]; {
	case c == '\n':
		if end >= 2 && content[end-2] == '\r' {
			return 2
		}
		return 1
	case c == '\r':
		return 1
	case c == 0x85 && end >= 2 && content[end-2] == 0xC2:
		return 2
	case (c == 0xA8 || c == 0xA9) && end >= 3 && content[end-3] == 0xE2 && content[end-2] == 0x80:
		return 3
	}
	return 0
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим количество терминаторов строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}

	lineNum, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNum, Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the slash-normalised absolute form of path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return normalizePath(abs), nil
}

// RelativePath returns path relative to baseDir. Paths that would escape
// baseDir are returned in absolute form.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return normalizePath(absPath), nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return normalizePath(absPath), nil
	}
	return normalizePath(rel), nil
}

// BaseName returns the last element of path.
func BaseName(path string) string {
	return filepath.Base(path)
}
