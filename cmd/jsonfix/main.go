package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jsonfix/internal/log"
	"jsonfix/internal/prof"
	"jsonfix/internal/project"
	"jsonfix/internal/version"
)

// errReported signals a failure whose details were already printed.
var errReported = errors.New("failures reported")

// app carries process-wide state resolved from the global flags.
type app struct {
	stdin   io.Reader
	color   bool
	quiet   bool
	timings bool
	maxDiag int
	prof    *prof.Session
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "jsonfix",
		Short:         "Repair and format lenient JSON",
		Long:          `jsonfix repairs relaxed JSON (comments, trailing commas, bare keys) and prints it in a canonical layout`,
		Version:       version.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.String("log-level", log.LevelWarn, "log level (debug|info|warn|error)")
	pf.String("cpuprofile", "", "write a CPU profile to file")
	pf.String("memprofile", "", "write a heap profile to file")
	pf.String("config", "", "path to "+project.ConfigName+" (default: search upward from the working directory)")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file")

	root.AddCommand(newFmtCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	level, err := pf.GetString("log-level")
	if err != nil {
		return err
	}
	if err := log.SetLevel(level); err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())

	mode, err := pf.GetString("color")
	if err != nil {
		return err
	}
	if a.color, err = resolveColor(mode, cmd.OutOrStdout()); err != nil {
		return err
	}
	color.NoColor = !a.color

	if a.quiet, err = pf.GetBool("quiet"); err != nil {
		return err
	}
	if a.timings, err = pf.GetBool("timings"); err != nil {
		return err
	}
	if a.maxDiag, err = pf.GetInt("max-diagnostics"); err != nil {
		return err
	}

	cpuProfile, err := pf.GetString("cpuprofile")
	if err != nil {
		return err
	}
	memProfile, err := pf.GetString("memprofile")
	if err != nil {
		return err
	}
	a.prof, err = prof.Start(cpuProfile, memProfile)
	return err
}

// resolveColor maps --color to a decision; auto colours terminals unless
// NO_COLOR is set.
func resolveColor(mode string, out io.Writer) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := out.(*os.File)
		return ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

// execute runs the command line and returns the process exit status.
func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if stopErr := a.prof.Stop(); stopErr != nil {
		fmt.Fprintf(stderr, "jsonfix: %v\n", stopErr)
	}
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "jsonfix: %v\n", err)
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, &app{stdin: os.Stdin}, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
