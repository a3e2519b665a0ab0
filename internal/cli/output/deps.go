package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// DependencyOutput is the structured form of the deps command.
type DependencyOutput struct {
	Order  []OrderRow `json:"order,omitempty" yaml:"order,omitempty"`
	Levels [][]string `json:"levels,omitempty" yaml:"levels,omitempty"`
	// Cycle is set instead of Order when foreign keys loop.
	Cycle           []string `json:"cycle,omitempty" yaml:"cycle,omitempty"`
	SelfReferencing []string `json:"self_referencing,omitempty" yaml:"self_referencing,omitempty"`
}

// OrderRow is one table of a creation order.
type OrderRow struct {
	Table      string   `json:"table" yaml:"table"`
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// Dependencies renders a creation order, its levels and any cycle.
func (r *Renderer) Dependencies(d DependencyOutput) error {
	if ok, err := r.Structured(d); ok {
		return err
	}

	r.Header(1, "Creation order")
	if len(d.Cycle) > 0 {
		r.Warning("foreign key cycle: " + strings.Join(d.Cycle, " -> "))
		r.Muted("no order exists; create the tables first and add the foreign keys with ALTER TABLE")
		return nil
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Table", "References"})
	for i, row := range d.Order {
		t.AppendRow(table.Row{i + 1, row.Table, orDash(strings.Join(row.References, ", "))})
	}
	r.renderTable(t)

	if len(d.Levels) > 1 {
		r.Header(2, "Levels")
		for i, level := range d.Levels {
			r.Println(fmt.Sprintf("%d. %s", i, strings.Join(level, ", ")))
		}
		r.Println("")
	}
	if len(d.SelfReferencing) > 0 {
		r.Muted("self-referencing: " + strings.Join(d.SelfReferencing, ", "))
	}
	return nil
}

// TableList renders a titled list of table names.
func (r *Renderer) TableList(title string, names []string) error {
	if ok, err := r.Structured(names); ok {
		return err
	}
	r.Header(1, title)
	if len(names) == 0 {
		r.Muted("(none)")
		return nil
	}
	for _, n := range names {
		if r.EffectiveMode() == ModeMarkdown {
			r.Println("- " + n)
		} else {
			r.Println(n)
		}
	}
	return nil
}
