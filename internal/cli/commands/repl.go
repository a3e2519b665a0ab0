package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapddl/internal/cli/output"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
	"github.com/leapstack-labs/leapddl/pkg/ddl"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

const (
	replPrompt         = "leapddl> "
	replContinuePrompt = "    ...> "
	historyFileName    = ".leapddl_history"
)

// REPLOptions holds options for the repl command.
type REPLOptions struct {
	HistoryFile string
	Init        []string // Scripts applied before the prompt opens
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	opts := &REPLOptions{}
	cmd := &cobra.Command{
		Use:   "repl [files or directories...]",
		Short: "Interactive DDL session",
		Long: `Start an interactive session over one parsing unit.

Statements accumulate in the same catalog, so later statements see earlier
ones. Diagnostics are shown as each statement is applied. Deferred
references are resolved by .resolve, or before .report, .catalog and
.describe. Scripts given as arguments are applied first.`,
		Example: `  # Start an empty session
  leapddl repl

  # Start from an existing schema
  leapddl repl ./schema`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Init = args
			return runREPL(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HistoryFile, "history-file", "", "History file (default: .leapddl_history in the project root)")

	return cmd
}

func runREPL(cmd *cobra.Command, opts *REPLOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	session := newREPLSession(cmdCtx)

	if len(opts.Init) > 0 {
		files, err := CollectFiles(opts.Init)
		if err != nil {
			return err
		}
		sources, err := ReadSources(files, cmd.InOrStdin())
		if err != nil {
			return err
		}
		for _, src := range sources {
			session.apply(src.SQL)
		}
	}

	historyFile := opts.HistoryFile
	if historyFile == "" {
		historyFile = filepath.Join(cmdCtx.Cfg.ProjectRoot, historyFileName)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    session.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	version := cmdCtx.Cfg.ServerVersion.String()
	if version == "" {
		version = "latest"
	}
	_, _ = fmt.Fprintf(out, "leapddl REPL (server %s, schema %s)\n", version, cmdCtx.Cfg.DefaultSchema)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(session.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if session.feed(line) {
			break
		}
		rl.SetPrompt(session.prompt())
	}
	return nil
}

// replSession is the state of one interactive session. It owns a single
// unit for its whole life.
type replSession struct {
	c         *CommandContext
	unit      *ddl.Unit
	buf       strings.Builder
	delimiter string
	// diagnostics already shown
	shownDiagnostics int
	shownUnresolved  int
}

func newREPLSession(c *CommandContext) *replSession {
	return &replSession{
		c:         c,
		unit:      c.NewUnit(),
		delimiter: ";",
	}
}

// prompt returns the primary prompt, or the continuation prompt while a
// statement is incomplete.
func (s *replSession) prompt() string {
	if s.buf.Len() > 0 {
		return replContinuePrompt
	}
	return replPrompt
}

// reset drops the statement being typed.
func (s *replSession) reset() {
	s.buf.Reset()
}

// feed handles one input line. It reports whether the session should end.
func (s *replSession) feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if s.buf.Len() == 0 {
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.dotCommand(trimmed)
		}
		if fields := strings.Fields(trimmed); len(fields) >= 2 && strings.EqualFold(fields[0], "DELIMITER") {
			s.delimiter = fields[1]
			return false
		}
	}

	s.buf.WriteString(line)
	s.buf.WriteString("\n")
	if !strings.HasSuffix(trimmed, s.delimiter) {
		return false
	}

	text := s.buf.String()
	s.buf.Reset()
	if s.delimiter != ";" {
		text = "DELIMITER " + s.delimiter + "\n" + text
	}
	s.apply(text)
	return false
}

// apply parses text, applies it to the unit and shows what it produced.
func (s *replSession) apply(text string) {
	r := s.c.Renderer
	root, errs := parser.Parse(text, parser.Options{ServerVersion: s.c.Cfg.ServerVersion.Number()})
	for _, err := range errs {
		r.Error(err.Error())
	}
	s.unit.Apply(root)
	s.showNewDiagnostics()
}

func (s *replSession) showNewDiagnostics() {
	diags := s.unit.Context().Diagnostics()
	if len(diags) > s.shownDiagnostics {
		s.c.Renderer.Diagnostics(diags[s.shownDiagnostics:])
		s.shownDiagnostics = len(diags)
	}
}

// resolve runs the resolution pass and shows the references that failed.
func (s *replSession) resolve() *ddl.Report {
	rep := s.unit.Finish()
	s.showNewDiagnostics()
	if len(rep.Unresolved) > s.shownUnresolved {
		s.c.Renderer.Unresolved(rep.Unresolved[s.shownUnresolved:])
		s.shownUnresolved = len(rep.Unresolved)
	}
	return rep
}

func (s *replSession) dotCommand(line string) bool {
	r := s.c.Renderer
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	var err error
	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".schemas":
		for _, schema := range s.unit.Catalog().Schemas {
			r.Println(schema.Name)
		}

	case ".tables":
		schema := s.unit.Context().CurrentSchema()
		if len(parts) > 1 {
			schema = s.unit.Catalog().FindSchema(parts[1], s.c.Cfg.CaseSensitive)
		}
		if schema == nil {
			r.Error(fmt.Sprintf("unknown schema %s", parts[1]))
			break
		}
		for _, t := range schema.Tables {
			r.Println(t.Name)
		}

	case ".describe":
		if len(parts) < 2 {
			r.Error("Usage: .describe <table>")
			break
		}
		s.resolve()
		t := findTable(s.unit.Catalog(), s.unit.Context().CurrentSchema().Name, parts[1], s.c.Cfg.CaseSensitive)
		if t == nil {
			r.Error(fmt.Sprintf("table %s not found", parts[1]))
			break
		}
		err = r.Table(t)

	case ".resolve":
		pending := s.unit.Context().Refs().Len()
		rep := s.resolve()
		r.Muted(fmt.Sprintf("resolved %s, %s failed overall",
			output.FormatCount(pending, "reference", "references"),
			output.FormatCount(len(rep.Unresolved), "reference", "references")))

	case ".report":
		err = r.Report("", s.unit.Finish())

	case ".catalog":
		s.resolve()
		err = r.Catalog(s.unit.Catalog())

	case ".use":
		if len(parts) < 2 {
			r.Error("Usage: .use <schema>")
			break
		}
		s.unit.Context().UseSchema(parts[1])

	case ".reset":
		s.unit = s.c.NewUnit()
		s.shownDiagnostics, s.shownUnresolved = 0, 0
		s.delimiter = ";"
		r.Muted("started a new unit")

	default:
		r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}

	if err != nil {
		r.Error(err.Error())
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help              Show this help message
  .schemas           List schemas
  .tables [schema]   List tables of a schema (default: current)
  .describe <table>  Show columns, indexes and foreign keys of a table
  .use <schema>      Change the current schema
  .resolve           Resolve pending references
  .report            Show every problem found so far
  .catalog           Show the whole catalog
  .reset             Discard the catalog and start again
  .quit / .exit      Exit the REPL

Tips:
  - Statements end with the current delimiter (; by default)
  - DELIMITER $$ changes it, for routine and trigger bodies
  - Tab completion works for dot-commands and table names
`
	_, _ = fmt.Fprintln(w, help)
}

// completer completes dot-commands, and table names after .describe.
func (s *replSession) completer() *readline.PrefixCompleter {
	tables := func(string) []string {
		var names []string
		for _, schema := range s.unit.Catalog().Schemas {
			for _, t := range schema.Tables {
				names = append(names, qualifiedName(schema, t))
			}
		}
		slices.Sort(names)
		return names
	}
	schemas := func(string) []string {
		var names []string
		for _, schema := range s.unit.Catalog().Schemas {
			names = append(names, schema.Name)
		}
		return names
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".schemas"),
		readline.PcItem(".tables", readline.PcItemDynamic(schemas)),
		readline.PcItem(".describe", readline.PcItemDynamic(tables)),
		readline.PcItem(".use", readline.PcItemDynamic(schemas)),
		readline.PcItem(".resolve"),
		readline.PcItem(".report"),
		readline.PcItem(".catalog"),
		readline.PcItem(".reset"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

func qualifiedName(s *catalog.Schema, t *catalog.Table) string {
	return s.Name + "." + t.Name
}
