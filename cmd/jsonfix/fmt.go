package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jsonfix"
	"jsonfix/internal/diag"
	"jsonfix/internal/diagfmt"
	"jsonfix/internal/driver"
	"jsonfix/internal/observ"
	"jsonfix/internal/ui"
)

type fmtOptions struct {
	check  bool
	stdout bool
	diff   bool
	format string
	ui     uiMode
}

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] [path...]",
		Short: "Repair and format JSON files (stdin when no path or -)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, a, args)
		},
	}
	addEngineFlags(cmd)
	cmd.Flags().Bool("check", false, "exit non-zero if any file would change; do not write")
	cmd.Flags().Bool("stdout", false, "print formatted output to stdout instead of rewriting files")
	cmd.Flags().Bool("diff", false, "print a unified diff instead of rewriting files")
	cmd.Flags().String("format", "text", "output format (text|json)")
	cmd.Flags().String("ui", "auto", "progress UI for multi-file runs (auto|on|off)")
	return cmd
}

func readFmtOptions(cmd *cobra.Command) (fmtOptions, error) {
	var (
		opts fmtOptions
		err  error
	)
	f := cmd.Flags()
	if opts.check, err = f.GetBool("check"); err != nil {
		return opts, err
	}
	if opts.stdout, err = f.GetBool("stdout"); err != nil {
		return opts, err
	}
	if opts.diff, err = f.GetBool("diff"); err != nil {
		return opts, err
	}
	if opts.format, err = f.GetString("format"); err != nil {
		return opts, err
	}
	uiValue, err := f.GetString("ui")
	if err != nil {
		return opts, err
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return opts, err
	}

	switch opts.format {
	case "text", "json":
	default:
		return opts, fmt.Errorf("fmt: unsupported output format %q (expected text|json)", opts.format)
	}
	if opts.stdout && opts.check {
		return opts, errors.New("fmt: --stdout cannot be used with --check")
	}
	if opts.diff && opts.stdout {
		return opts, errors.New("fmt: --diff cannot be used with --stdout")
	}
	if opts.diff && opts.format != "text" {
		return opts, errors.New("fmt: --diff is only supported with text output")
	}
	return opts, nil
}

// writes reports whether changed files are rewritten in place.
func (o fmtOptions) writes() bool {
	return !o.check && !o.stdout && !o.diff
}

func runFmt(cmd *cobra.Command, a *app, args []string) error {
	opts, err := readFmtOptions(cmd)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	inputs, err := driver.CollectInputs(args, s.exts)
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}

	task := func(ctx context.Context, sink driver.ProgressSink) (*driver.Batch, error) {
		b, err := driver.Run(ctx, inputs, driver.Options{
			Config:         s.cfg,
			Jobs:           s.jobs,
			MaxDiagnostics: a.maxDiag,
			Stdin:          a.stdin,
			Timings:        a.timings,
			Progress:       sink,
		})
		if err != nil || !opts.writes() {
			return b, err
		}
		_, err = driver.WriteBack(b, sink)
		return b, err
	}

	var batch *driver.Batch
	out := cmd.OutOrStdout()
	if len(inputs) > 1 && opts.format == "text" && opts.writes() && shouldUseTUI(opts.ui, out) {
		batch, err = ui.RunWithProgress(cmd.Context(), out, "jsonfix fmt", displayNames(inputs), task)
	} else {
		batch, err = task(cmd.Context(), nil)
	}
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}

	switch opts.format {
	case "json":
		if err := renderFmtJSON(out, batch, opts, a.color); err != nil {
			return err
		}
	default:
		if err := renderFmtText(out, batch, opts, a.quiet); err != nil {
			return err
		}
		if err := renderFmtErrors(cmd.ErrOrStderr(), batch, a.color); err != nil {
			return err
		}
	}
	if a.timings && opts.format == "text" {
		printTimings(cmd.ErrOrStderr(), batch.Timer)
	}

	if failed := batch.Failed(); failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "fmt: failed to format %d of %d inputs\n", failed, len(batch.Results))
		return errReported
	}
	if opts.check && batch.Changed() > 0 {
		if !a.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "fmt: %d of %d inputs need formatting\n", batch.Changed(), len(batch.Results))
		}
		return errReported
	}
	return nil
}

func renderFmtText(out io.Writer, batch *driver.Batch, opts fmtOptions, quiet bool) error {
	for i := range batch.Results {
		r := &batch.Results[i]
		if r.Failed() {
			continue
		}
		var err error
		switch {
		case opts.diff:
			var d string
			if d, err = driver.Diff(r); err == nil {
				_, err = io.WriteString(out, d)
			}
		case opts.check:
			if r.Changed && !quiet {
				_, err = fmt.Fprintln(out, r.Path)
			}
		case opts.stdout || r.IsStdin():
			_, err = io.WriteString(out, r.Output)
		default:
			if r.Changed && !quiet {
				_, err = fmt.Fprintf(out, "reformatted %s\n", r.Path)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// renderFmtErrors prints error diagnostics with source excerpts.
func renderFmtErrors(out io.Writer, batch *driver.Batch, colored bool) error {
	bag := batch.Diagnostics()
	bag.Filter(func(d diag.Diagnostic) bool { return d.Severity == diag.SevError })
	if bag.Len() == 0 {
		return nil
	}
	return diagfmt.Pretty(out, bag, batch.Files, diagfmt.PrettyOpts{
		Color:     colored,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
}

type fmtErrorJSON struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Offset  int    `json:"offset"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

type fmtFileJSON struct {
	Path      string        `json:"path"`
	Changed   bool          `json:"changed"`
	Repairs   []string      `json:"repairs,omitempty"`
	Formatted string        `json:"formatted,omitempty"`
	Error     *fmtErrorJSON `json:"error,omitempty"`
}

type fmtReportJSON struct {
	Check   bool           `json:"check"`
	Files   []fmtFileJSON  `json:"files"`
	Changed int            `json:"changed"`
	Failed  int            `json:"failed"`
	Timings *observ.Report `json:"timings,omitempty"`
}

func renderFmtJSON(out io.Writer, batch *driver.Batch, opts fmtOptions, colored bool) error {
	report := fmtReportJSON{
		Check:   opts.check,
		Files:   make([]fmtFileJSON, 0, len(batch.Results)),
		Changed: batch.Changed(),
		Failed:  batch.Failed(),
	}
	if batch.Timer != nil {
		r := batch.Timer.Report()
		report.Timings = &r
	}
	for i := range batch.Results {
		r := &batch.Results[i]
		entry := fmtFileJSON{
			Path:    r.Path,
			Changed: r.Changed,
			Repairs: r.Result.Notes,
		}
		if r.Err != nil {
			entry.Error = errorJSON(r.Err)
		} else if opts.stdout || r.IsStdin() {
			entry.Formatted = r.Output
		}
		report.Files = append(report.Files, entry)
	}
	return diagfmt.WriteJSON(out, report, colored)
}

func errorJSON(err error) *fmtErrorJSON {
	var fe *jsonfix.FormatError
	if !errors.As(err, &fe) {
		return &fmtErrorJSON{Message: err.Error(), Offset: -1}
	}
	e := &fmtErrorJSON{
		Message: fe.Message,
		Offset:  fe.Offset,
		Line:    fe.Line,
		Column:  fe.Column,
	}
	if fe.Code != 0 {
		e.Code = fe.Code.ID()
	}
	return e
}
