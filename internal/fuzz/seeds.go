package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 4 << 10 // 4 KiB, ограничение для тестового корпуса
)

// builtinSeeds cover the repair passes, their known textual limitations and
// the parser's error paths.
var builtinSeeds = []string{
	``,
	` `,
	`{}`,
	`[]`,
	`{"a": }`,
	`{a: 1, b_2: [1, 2,], c: {d: true,},}`,
	"// comment\n{\"a\": 1}",
	"{\"a\": 1 /* inline */}",
	`{"url": "http://example.com"}`,
	`{"s": "/* not a comment */"}`,
	`{"s": "x,y:z"}`,
	`{123: "digits"}`,
	`[1, 2, 3,]`,
	`{"a": 1,, "b": 2}`,
	`"\ud800"`,
	`{"\udc00": "\ud83d\ude00\ud83d"}`,
	"\ufeff{a: 1}",
	`[1.0, -0, 1e3, 0.10, 1e21, 1e-7, 1e400, 123456789012345678901234567890]`,
	`"\uZZZZ"`,
	`"tab	inside"`,
	`-`,
	`1.`,
	`1e+`,
	`01`,
	`[1] x`,
	`tru`,
	`{"k": "v", "k": "w"}`,
	`{"b": 1, "a": {"d": 2, "c": 3}, "B": [{"z": 0, "y": 1}]}`,
	"[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[[]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]",
	"\"  \"",
	"{\"\xfe\": 1, \"\xf0\x90\x80\x80\": 2}",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s), uint8(0))
		f.Add([]byte(s), uint8(0xFF))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.json и *.jsonc файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".json" && ext != ".jsonc" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src), uint8(0x1F))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
