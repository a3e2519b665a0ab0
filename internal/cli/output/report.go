package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapddl/pkg/ddl"
	"github.com/leapstack-labs/leapddl/pkg/parser"
)

// ReportOutput is the structured form of a unit report.
type ReportOutput struct {
	Source      string                 `json:"source,omitempty" yaml:"source,omitempty"`
	UnitID      string                 `json:"unit_id" yaml:"unit_id"`
	Statements  int                    `json:"statements" yaml:"statements"`
	ParseErrors []string               `json:"parse_errors,omitempty" yaml:"parse_errors,omitempty"`
	Diagnostics []*ddl.Diagnostic      `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Unresolved  []*ddl.ResolutionError `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Summary     ReportSummary          `json:"summary" yaml:"summary"`
}

// ReportSummary counts the problems of a report.
type ReportSummary struct {
	ParseErrors int  `json:"parse_errors" yaml:"parse_errors"`
	Errors      int  `json:"errors" yaml:"errors"`
	Warnings    int  `json:"warnings" yaml:"warnings"`
	Infos       int  `json:"infos" yaml:"infos"`
	Unresolved  int  `json:"unresolved" yaml:"unresolved"`
	OK          bool `json:"ok" yaml:"ok"`
}

// NewReportOutput converts rep for structured output.
func NewReportOutput(source string, rep *ddl.Report) ReportOutput {
	out := ReportOutput{
		Source:      source,
		UnitID:      rep.UnitID.String(),
		Statements:  rep.Statements,
		Diagnostics: rep.Diagnostics,
		Unresolved:  rep.Unresolved,
	}
	for _, err := range rep.ParseErrors {
		out.ParseErrors = append(out.ParseErrors, err.Error())
	}
	out.Summary = Summarize(rep)
	return out
}

// Summarize counts the problems of rep.
func Summarize(rep *ddl.Report) ReportSummary {
	s := ReportSummary{
		ParseErrors: len(rep.ParseErrors),
		Unresolved:  len(rep.Unresolved),
	}
	for _, d := range rep.Diagnostics {
		switch d.Severity {
		case ddl.SeverityError:
			s.Errors++
		case ddl.SeverityWarning:
			s.Warnings++
		default:
			s.Infos++
		}
	}
	s.OK = !rep.HasErrors()
	return s
}

// String renders the summary on one line.
func (s ReportSummary) String() string {
	parts := []string{
		FormatCount(s.ParseErrors, "parse error", "parse errors"),
		FormatCount(s.Errors, "error", "errors"),
		FormatCount(s.Warnings, "warning", "warnings"),
		FormatCount(s.Unresolved, "unresolved reference", "unresolved references"),
	}
	return strings.Join(parts, ", ")
}

// Report renders a unit report. source names the analysed input and may be
// empty.
func (r *Renderer) Report(source string, rep *ddl.Report) error {
	if ok, err := r.Structured(NewReportOutput(source, rep)); ok {
		return err
	}

	title := "Report"
	if source != "" {
		title += ": " + source
	}
	r.Header(1, title)

	summary := Summarize(rep)
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatKeyValue("Statements", fmt.Sprint(rep.Statements)))
		r.Println(FormatKeyValue("Summary", summary.String()))
		r.Println("")
	} else {
		r.Muted(fmt.Sprintf("%s analysed", FormatCount(rep.Statements, "statement", "statements")))
	}

	if len(rep.ParseErrors) > 0 {
		r.Header(2, "Parse errors")
		r.parseErrors(rep.ParseErrors)
	}
	if len(rep.Diagnostics) > 0 {
		r.Header(2, "Diagnostics")
		r.Diagnostics(rep.Diagnostics)
	}
	if len(rep.Unresolved) > 0 {
		r.Header(2, "Unresolved references")
		r.Unresolved(rep.Unresolved)
	}

	if r.EffectiveMode() != ModeMarkdown {
		if summary.OK {
			r.Success(summary.String())
		} else {
			r.Warning(summary.String())
		}
	}
	return nil
}

func (r *Renderer) parseErrors(errs []error) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Location", "Message"})
	for _, err := range errs {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			t.AppendRow(table.Row{fmt.Sprintf("%d:%d", pe.Pos.Line, pe.Pos.Column), pe.Message})
			continue
		}
		t.AppendRow(table.Row{"-", err.Error()})
	}
	r.renderTable(t)
}

// Diagnostics renders diagnostics as a table.
func (r *Renderer) Diagnostics(diags []*ddl.Diagnostic) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Severity", "Code", "Location", "Object", "Message"})
	for _, d := range diags {
		loc := "-"
		if d.Pos.IsValid() {
			loc = fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
		}
		sev := d.Severity.String()
		if r.EffectiveMode() == ModeText {
			sev = r.styles.Severity(d.Severity).Render(sev)
		}
		t.AppendRow(table.Row{sev, string(d.Code), loc, orDash(d.Object), d.Message})
	}
	r.renderTable(t)
}

// Unresolved renders resolution errors as a table.
func (r *Renderer) Unresolved(errs []*ddl.ResolutionError) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Reference", "Owner", "Object", "Target", "Names"})
	for _, e := range errs {
		t.AppendRow(table.Row{e.Kind.String(), e.Owner, orDash(e.Object), e.Target.String(), strings.Join(e.Names, ", ")})
	}
	r.renderTable(t)
}

// renderTable writes t in the effective mode.
func (r *Renderer) renderTable(t table.Writer) {
	t.SetOutputMirror(r.out)
	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		r.Println("")
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
