package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"jsonfix/internal/diagfmt"
	"jsonfix/internal/version"
)

const versionTagline = "lenient in, canonical out"

type versionPayload struct {
	Tool    string `json:"tool"`
	Tagline string `json:"tagline"`
	version.Info
}

func newVersionCmd(a *app) *cobra.Command {
	var (
		format string
		full   bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show jsonfix build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Current()
			switch strings.ToLower(format) {
			case "json":
				payload := versionPayload{Tool: "jsonfix", Tagline: versionTagline, Info: info}
				if !full {
					payload.GitCommit, payload.BuildDate = "", ""
				}
				return diagfmt.WriteJSON(cmd.OutOrStdout(), payload, a.color)
			case "pretty":
				return renderVersionPretty(cmd.OutOrStdout(), info, full, a.color)
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	cmd.Flags().BoolVar(&full, "full", false, "include commit hash and build date")
	return cmd
}

func renderVersionPretty(out io.Writer, info version.Info, full, colored bool) error {
	if _, err := fmt.Fprintf(out, "jsonfix %s - %s\n", info.Colored(colored), versionTagline); err != nil {
		return err
	}
	if !full {
		return nil
	}
	_, err := fmt.Fprintf(out, "commit: %s\nbuilt:  %s\n", valueOrUnknown(info.GitCommit), valueOrUnknown(info.BuildDate))
	return err
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
