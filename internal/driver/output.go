package driver

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"

	"jsonfix/internal/log"
)

// Diff returns a unified diff between the input and the formatted text, or
// "" when nothing changed.
func Diff(r *FileResult) (string, error) {
	if !r.Changed {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.Input),
		B:        difflib.SplitLines(r.Output),
		FromFile: r.Path,
		ToFile:   r.Path + " (formatted)",
		Context:  3,
	})
}

// WriteBack rewrites changed files in place, keeping their permissions.
// Stdin and failed results are skipped. It returns the number of files
// written.
func WriteBack(b *Batch, sink ProgressSink) (int, error) {
	written := 0
	for i := range b.Results {
		r := &b.Results[i]
		if r.Failed() || !r.Changed || r.IsStdin() {
			continue
		}
		emit(sink, r.Path, StageWrite, StatusWorking)
		if err := writeFile(r.Path, r.Output); err != nil {
			emit(sink, r.Path, StageWrite, StatusError)
			return written, fmt.Errorf("write %s: %w", r.Path, err)
		}
		log.Infof("wrote %s", r.Path)
		emit(sink, r.Path, StageWrite, StatusDone)
		written++
	}
	return written, nil
}

func writeFile(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	// #nosec G306 -- keeps the permissions of the file being rewritten
	return os.WriteFile(path, []byte(content), mode)
}
