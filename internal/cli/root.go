// Package cli provides the command-line interface for leapddl.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/commands"
	"github.com/leapstack-labs/leapddl/internal/cli/config"
	"github.com/leapstack-labs/leapddl/internal/cli/output"
	intconfig "github.com/leapstack-labs/leapddl/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leapddl",
		Short: "leapddl - Semantic analyser for MySQL DDL",
		Long: `leapddl reads MySQL DDL scripts and builds the catalog they describe:
schemas, tables, columns, indexes, foreign keys, views, routines, triggers,
events and server-level objects.

References between objects are resolved after the whole script has been
read, so a table may refer to another defined further down. Anything that
does not resolve, and any semantic anomaly found on the way, is reported.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			ctx := context.WithValue(cmd.Context(), config.LoggerKey(), logger)
			ctx = context.WithValue(ctx, configKey{}, cfg)

			mode, err := output.ParseMode(cfg.OutputFormat)
			if err != nil {
				return err
			}
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)
			ctx = context.WithValue(ctx, rendererKey{}, renderer)
			cmd.SetContext(ctx)

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					logger.Debug("using config file", "path", configFile)
				}
				if cfg.Profile != "" {
					logger.Debug("using profile", "profile", cfg.Profile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Semantic analyser for MySQL DDL
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./"+intconfig.ConfigFileName+")")
	flags.StringP("profile", "p", "", "Profile from the config file to apply")
	flags.String("server-version", "", "MySQL server version the scripts target (e.g. 5.7.44, 8.0.32)")
	flags.String("default-schema", "", "Schema unqualified names bind to before any USE")
	flags.String("default-charset", "", "Character set of new schemas and tables")
	flags.String("default-collation", "", "Collation of new schemas and tables")
	flags.Bool("case-sensitive", false, "Compare identifiers case-sensitively")
	flags.Bool("auto-fk-names", true, "Name unnamed foreign keys fk_<table>_<referenced table>")
	flags.Bool("stub-unresolved", false, "Create stub tables for missing foreign key targets")
	flags.Bool("parallel-resolve", false, "Resolve references concurrently")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("output", "o", "", "Output format (auto|text|markdown|json|yaml)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes(), cobra.ShellCompDirectiveNoFileComp
	})

	// Profiles come from the config file found for the working directory
	_ = rootCmd.RegisterFlagCompletionFunc("profile", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		if _, err := config.LoadConfig(cfgFile, nil); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return config.Profiles(), cobra.ShellCompDirectiveNoFileComp
	})

	_ = rootCmd.RegisterFlagCompletionFunc("server-version", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"5.6.51", "5.7.44", "8.0.32", "8.4.0"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(commands.BuildInfo{Version: Version, GitCommit: GitCommit, BuildDate: BuildDate}))
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewDepsCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger returns the logger of a command run. Diagnostics go to the
// report, so only warnings are logged unless verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	c := &config.Config{
		OutputFormat: config.DefaultOutput,
		ProjectRoot:  ".",
	}
	c.AutoFkNames = true
	intconfig.ApplyDefaults(&c.AnalysisConfig)
	return c
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	// Return default renderer if none in context
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leapddl.

To load completions:

Bash:
  $ source <(leapddl completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ leapddl completion bash > /etc/bash_completion.d/leapddl
  # macOS:
  $ leapddl completion bash > $(brew --prefix)/etc/bash_completion.d/leapddl

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ leapddl completion zsh > "${fpath[1]}/_leapddl"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ leapddl completion fish | source

  # To load completions for each session, execute once:
  $ leapddl completion fish > ~/.config/fish/completions/leapddl.fish

PowerShell:
  PS> leapddl completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> leapddl completion powershell > leapddl.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
