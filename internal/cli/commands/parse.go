package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Separate bool   // One unit and catalog per file
	Watch    bool   // Re-run when an input changes
	Table    string // Describe one table instead of the whole catalog
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [files or directories...]",
		Short: "Build the catalog described by DDL scripts",
		Long: `Parse MySQL DDL scripts and print the resulting catalog.

All scripts go into one parsing unit in argument order, so a table may
reference another defined in a later file. Directories are searched for
*.sql files. With no arguments the script is read from standard input.

Output adapts to environment:
  - Terminal: Styled tables
  - Piped/Scripted: Markdown format (agent-friendly)
  - JSON / YAML: the full catalog and the report`,
		Example: `  # Parse a schema directory
  leapddl parse ./schema

  # Describe one table as JSON
  leapddl parse ./schema --table shop.orders -o json

  # Analyse files independently, in parallel
  leapddl parse a.sql b.sql --separate

  # Re-run whenever a script changes
  leapddl parse ./schema --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Separate, "separate", false, "Analyse each file in its own unit and catalog")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch inputs and re-run on change")
	cmd.Flags().StringVar(&opts.Table, "table", "", "Describe only this table (schema.table or table)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	files, err := CollectFiles(args)
	if err != nil {
		return err
	}

	run := func() error {
		sources, err := ReadSources(files, cmd.InOrStdin())
		if err != nil {
			return err
		}
		results, err := cmdCtx.Analyse(cmd.Context(), sources, opts.Separate)
		if err != nil {
			return err
		}
		return renderParse(cmdCtx, results, opts.Table)
	}

	if err := run(); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	return watchInputs(cmd.Context(), cmdCtx, files, run)
}

func renderParse(c *CommandContext, results []Result, tableName string) error {
	r := c.Renderer

	if tableName != "" {
		for _, res := range results {
			t := findTable(res.Catalog, c.Cfg.DefaultSchema, tableName, c.Cfg.CaseSensitive)
			if t == nil {
				continue
			}
			return r.Table(t)
		}
		return fmt.Errorf("table %s not found", tableName)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON, output.ModeYAML:
		out := make([]ParseOutput, 0, len(results))
		for _, res := range results {
			out = append(out, ParseOutput{Catalog: res.Catalog, Report: output.NewReportOutput(res.Source, res.Report)})
		}
		if len(out) == 1 {
			_, err := r.Structured(out[0])
			return err
		}
		_, err := r.Structured(out)
		return err
	}

	for _, res := range results {
		if len(results) > 1 {
			r.Header(1, res.Source)
		}
		if err := r.Catalog(res.Catalog); err != nil {
			return err
		}
		if err := r.Report(res.Source, res.Report); err != nil {
			return err
		}
	}
	return nil
}

// findTable looks up "schema.table" or "table" in the default schema.
func findTable(cat *catalog.Catalog, defaultSchema, name string, caseSensitive bool) *catalog.Table {
	schema, table := defaultSchema, name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		schema, table = name[:i], name[i+1:]
	}
	return cat.FindTable(schema, table, caseSensitive)
}

// watchInputs re-runs run whenever one of files changes, until ctx ends.
func watchInputs(ctx context.Context, c *CommandContext, files []string, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		if f == stdinPath {
			return errors.New("--watch cannot be used with standard input")
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// editors replace files on save, so watch the directories
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	c.Renderer.Muted(fmt.Sprintf("Watching %s for changes. Press Ctrl+C to stop.", output.FormatCount(len(watched), "file", "files")))

	// Debounce timer
	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if abs, err := filepath.Abs(event.Name); err != nil || !watched[abs] {
				continue
			}
			c.Logger.Debug("change detected", "file", event.Name)
			debounce = time.After(100 * time.Millisecond)
		case <-debounce:
			debounce = nil
			if err := run(); err != nil {
				c.Renderer.Error(err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.Logger.Warn("watcher error", "error", err)
		}
	}
}
