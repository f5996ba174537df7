package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"jsonfix/internal/diag"
	"jsonfix/internal/diagfmt"
	"jsonfix/internal/driver"
)

type checkOptions struct {
	format   string
	context  int
	pathMode diagfmt.PathMode
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [path...]",
		Short: "Report the dialect and problems of JSON inputs without writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, args)
		},
	}
	addEngineFlags(cmd)
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Int("context", 0, "source lines shown before the offending line")
	cmd.Flags().String("path-mode", "relative", "how paths are shown (auto|absolute|relative|basename)")
	return cmd
}

func readCheckOptions(cmd *cobra.Command) (checkOptions, error) {
	var (
		opts checkOptions
		err  error
	)
	f := cmd.Flags()
	if opts.format, err = f.GetString("format"); err != nil {
		return opts, err
	}
	switch opts.format {
	case "pretty", "short", "json":
	default:
		return opts, fmt.Errorf("check: unsupported output format %q (expected pretty|short|json)", opts.format)
	}
	if opts.context, err = f.GetInt("context"); err != nil {
		return opts, err
	}
	mode, err := f.GetString("path-mode")
	if err != nil {
		return opts, err
	}
	if opts.pathMode, err = parsePathMode(mode); err != nil {
		return opts, err
	}
	return opts, nil
}

func parsePathMode(s string) (diagfmt.PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return diagfmt.PathModeAuto, nil
	case "absolute":
		return diagfmt.PathModeAbsolute, nil
	case "", "relative":
		return diagfmt.PathModeRelative, nil
	case "basename":
		return diagfmt.PathModeBasename, nil
	}
	return diagfmt.PathModeAuto, fmt.Errorf("check: invalid --path-mode %q (expected auto|absolute|relative|basename)", s)
}

func runCheck(cmd *cobra.Command, a *app, args []string) error {
	opts, err := readCheckOptions(cmd)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	inputs, err := driver.CollectInputs(args, s.exts)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	batch, err := driver.Run(cmd.Context(), inputs, driver.Options{
		Config:         s.cfg,
		Jobs:           s.jobs,
		MaxDiagnostics: a.maxDiag,
		Stdin:          a.stdin,
		Timings:        a.timings,
		Classify:       true,
	})
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	bag := batch.Diagnostics()
	bag.Dedup()
	if a.quiet {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevWarning })
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case "json":
		err = renderCheckJSON(out, batch, bag, opts, a.color)
	case "short":
		err = diagfmt.Short(out, bag, batch.Files, true)
	default:
		err = renderCheckPretty(out, batch, bag, opts, a)
	}
	if err != nil {
		return err
	}
	if a.timings && opts.format != "json" {
		printTimings(cmd.ErrOrStderr(), batch.Timer)
	}

	if batch.Failed() > 0 {
		return errReported
	}
	return nil
}

func renderCheckPretty(out io.Writer, batch *driver.Batch, bag *diag.Bag, opts checkOptions, a *app) error {
	if !a.quiet {
		for i := range batch.Results {
			if _, err := io.WriteString(out, summaryLine(&batch.Results[i])+"\n"); err != nil {
				return err
			}
		}
		if bag.Len() > 0 {
			if _, err := io.WriteString(out, "\n"); err != nil {
				return err
			}
		}
	}
	return diagfmt.Pretty(out, bag, batch.Files, diagfmt.PrettyOpts{
		Color:     a.color,
		Context:   opts.context,
		PathMode:  opts.pathMode,
		ShowNotes: true,
	})
}

// summaryLine: "<path>: <dialect>[ (steps)][, needs formatting | , error]".
func summaryLine(r *driver.FileResult) string {
	var b strings.Builder
	b.WriteString(r.Path)
	b.WriteString(": ")
	b.WriteString(r.Dialect.Kind.String())
	if len(r.Dialect.Steps) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(r.Dialect.Steps, ", "))
	}
	switch {
	case r.Failed():
		b.WriteString(", error")
	case r.Changed:
		b.WriteString(", needs formatting")
	}
	return b.String()
}

type checkFileJSON struct {
	Path       string   `json:"path"`
	Dialect    string   `json:"dialect"`
	Repairable bool     `json:"repairable"`
	Steps      []string `json:"steps,omitempty"`
	Changed    bool     `json:"changed"`
	Failed     bool     `json:"failed"`
}

type checkReportJSON struct {
	Files       []checkFileJSON           `json:"files"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func renderCheckJSON(out io.Writer, batch *driver.Batch, bag *diag.Bag, opts checkOptions, colored bool) error {
	report := checkReportJSON{
		Files: make([]checkFileJSON, 0, len(batch.Results)),
		Diagnostics: diagfmt.BuildDiagnosticsOutput(bag, batch.Files, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			PathMode:         opts.pathMode,
		}),
	}
	for i := range batch.Results {
		r := &batch.Results[i]
		report.Files = append(report.Files, checkFileJSON{
			Path:       r.Path,
			Dialect:    r.Dialect.Kind.String(),
			Repairable: r.Dialect.Repairable,
			Steps:      r.Dialect.Steps,
			Changed:    r.Changed,
			Failed:     r.Failed(),
		})
	}
	return diagfmt.WriteJSON(out, report, colored)
}
