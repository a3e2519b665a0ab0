package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
)

// ErrCheckFailed is returned by check when a script has problems.
var ErrCheckFailed = errors.New("check failed")

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Separate bool // One unit and catalog per file
	Strict   bool // Warnings fail the check too
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [files or directories...]",
		Short: "Report problems in DDL scripts",
		Long: `Analyse MySQL DDL scripts and report parse errors, diagnostics and
references that did not resolve.

The command exits with a non-zero status when any error is found, which
makes it suitable for CI. With --strict, warnings fail the check too.`,
		Example: `  # Check a schema directory
  leapddl check ./schema

  # Fail on warnings as well
  leapddl check ./schema --strict

  # Machine-readable report
  leapddl check ./schema -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Separate, "separate", false, "Analyse each file in its own unit and catalog")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Treat warnings as errors")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	files, err := CollectFiles(args)
	if err != nil {
		return err
	}
	sources, err := ReadSources(files, cmd.InOrStdin())
	if err != nil {
		return err
	}
	results, err := cmdCtx.Analyse(cmd.Context(), sources, opts.Separate)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		reports := make([]output.ReportOutput, 0, len(results))
		for _, res := range results {
			reports = append(reports, output.NewReportOutput(res.Source, res.Report))
		}
		if _, err := r.Structured(reports); err != nil {
			return err
		}
	default:
		for _, res := range results {
			if err := r.Report(res.Source, res.Report); err != nil {
				return err
			}
		}
	}

	failed := 0
	for _, res := range results {
		if checkFails(res.Report, opts.Strict) {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %s with problems", ErrCheckFailed, output.FormatCount(failed, "unit", "units"))
	}
	return nil
}

// checkFails reports whether rep fails the check.
func checkFails(rep *ddl.Report, strict bool) bool {
	if rep.HasErrors() {
		return true
	}
	if !strict {
		return false
	}
	for _, d := range rep.Diagnostics {
		if d.Severity >= ddl.SeverityWarning {
			return true
		}
	}
	return false
}
