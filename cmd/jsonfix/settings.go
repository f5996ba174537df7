package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jsonfix"
	"jsonfix/internal/driver"
	"jsonfix/internal/log"
	"jsonfix/internal/project"
)

// addEngineFlags registers the flags shared by fmt and check.
func addEngineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("indent", jsonfix.DefaultIndent, fmt.Sprintf("indentation width (0..%d)", jsonfix.MaxIndent))
	f.Bool("minify", false, "print compact single-line output")
	f.String("sort", "none", "sort object keys (none|asc|desc)")
	f.Bool("comments", false, "remove // line and /* block */ comments")
	f.Bool("trailing-commas", false, "remove commas before } and ]")
	f.Bool("no-quote-keys", false, "do not quote bare object keys")
	f.StringSlice("ext", nil, "file extensions collected from directories (default .json,.jsonc)")
	f.IntP("jobs", "j", 0, "number of files processed in parallel (default: number of CPUs)")
}

// settings is the engine configuration after layering defaults, the
// config file and explicitly set flags, in that order.
type settings struct {
	cfg     jsonfix.Config
	exts    []string
	jobs    int
	project *project.Config
}

func resolveSettings(cmd *cobra.Command) (settings, error) {
	var s settings

	pc, err := loadProjectConfig(cmd)
	if err != nil {
		return s, err
	}
	s.project = pc
	s.cfg = pc.Apply(jsonfix.DefaultConfig())
	s.exts = pc.Extensions(driver.DefaultExtensions)

	f := cmd.Flags()
	if f.Changed("indent") {
		indent, err := f.GetInt("indent")
		if err != nil {
			return s, err
		}
		if indent < 0 || indent > jsonfix.MaxIndent {
			log.Warnf("--indent %d is outside 0..%d and will be clamped", indent, jsonfix.MaxIndent)
		}
		s.cfg.IndentWidth = indent
	}
	if f.Changed("minify") {
		minify, err := f.GetBool("minify")
		if err != nil {
			return s, err
		}
		s.cfg.Beautify = !minify
	}
	if f.Changed("sort") {
		value, err := f.GetString("sort")
		if err != nil {
			return s, err
		}
		order, err := jsonfix.ParseSortOrder(value)
		if err != nil {
			return s, fmt.Errorf("--sort: %w", err)
		}
		s.cfg.SortKeys = order
	}
	if f.Changed("comments") {
		if s.cfg.RemoveComments, err = f.GetBool("comments"); err != nil {
			return s, err
		}
	}
	if f.Changed("trailing-commas") {
		if s.cfg.RemoveTrailingCommas, err = f.GetBool("trailing-commas"); err != nil {
			return s, err
		}
	}
	if f.Changed("no-quote-keys") {
		noQuote, err := f.GetBool("no-quote-keys")
		if err != nil {
			return s, err
		}
		s.cfg.AutoQuoteKeys = !noQuote
	}
	if f.Changed("ext") {
		exts, err := f.GetStringSlice("ext")
		if err != nil {
			return s, err
		}
		s.exts = normalizeExts(exts)
	}
	if s.jobs, err = f.GetInt("jobs"); err != nil {
		return s, err
	}

	if log.Enabled(log.LevelDebug) {
		log.Debugf("engine config: beautify=%t indent=%d sort=%s quote=%t comments=%t commas=%t exts=%s",
			s.cfg.Beautify, s.cfg.IndentWidth, s.cfg.SortKeys, s.cfg.AutoQuoteKeys, s.cfg.RemoveComments, s.cfg.RemoveTrailingCommas,
			strings.Join(s.exts, ","))
	}
	return s, nil
}

// loadProjectConfig honours --config, otherwise searches upward from the
// working directory. A missing file is not an error.
func loadProjectConfig(cmd *cobra.Command) (*project.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}

	var pc *project.Config
	if path != "" {
		if pc, err = project.LoadConfig(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		found, ok, err := project.Discover(wd)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if !ok {
			log.Debugf("no %s found above %s", project.ConfigName, wd)
			return nil, nil
		}
		pc = found
	}

	log.Debugf("using config %s", pc.Path)
	for _, key := range pc.Unknown {
		log.Warnf("%s: unknown key %s", pc.Path, key)
	}
	for _, w := range pc.Warnings {
		log.Warnf("%s: %s", pc.Path, w)
	}
	return pc, nil
}

func normalizeExts(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func displayNames(inputs []string) []string {
	out := make([]string, len(inputs))
	for i, in := range inputs {
		if in == driver.StdinArg {
			in = driver.StdinName
		}
		out[i] = in
	}
	return out
}
