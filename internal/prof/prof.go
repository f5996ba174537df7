// Package prof wires runtime/pprof to the --cpuprofile and --memprofile
// flags.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Session is an active profiling run started by Start.
type Session struct {
	cpu     *os.File
	memPath string
}

// Start begins CPU profiling when cpuPath is set and remembers memPath for
// the heap profile written by Stop. Empty paths disable the profile.
func Start(cpuPath, memPath string) (*Session, error) {
	s := &Session{memPath: memPath}
	if cpuPath == "" {
		return s, nil
	}
	// #nosec G304 -- path is provided by the user via flag
	f, err := os.Create(cpuPath)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	s.cpu = f
	return s, nil
}

// Stop ends CPU profiling and writes the heap profile. Safe on nil and
// safe to call twice.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.cpu != nil {
		pprof.StopCPUProfile()
		if err := s.cpu.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cpu profile: %w", err))
		}
		s.cpu = nil
	}
	if s.memPath != "" {
		if err := writeMem(s.memPath); err != nil {
			errs = append(errs, fmt.Errorf("mem profile: %w", err))
		}
		s.memPath = ""
	}
	return errors.Join(errs...)
}

// writeMem captures a heap profile to the supplied file path.
func writeMem(path string) (err error) {
	// #nosec G304 -- path is provided by the user via flag
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
