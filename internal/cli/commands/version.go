package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	intconfig "github.com/leapstack-labs/leapddl/internal/config"
)

// BuildInfo is the version stamped into the binary at build time.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display the leapddl release, the commit and date it was built from, the Go
toolchain that built it and the MySQL server version scripts are analysed
against unless --server-version says otherwise.`,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "leapddl v%s\n", info.Version)
			_, _ = fmt.Fprintln(w, "Semantic analyser for MySQL DDL")
			_, _ = fmt.Fprintf(w, "  commit:          %s\n", orUnknown(info.GitCommit))
			_, _ = fmt.Fprintf(w, "  built:           %s\n", orUnknown(info.BuildDate))
			_, _ = fmt.Fprintf(w, "  go:              %s\n", runtime.Version())
			_, _ = fmt.Fprintf(w, "  default server:  MySQL %s\n", intconfig.DefaultServerVersion)
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
