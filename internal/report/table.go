package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dshills/cinder/internal/indent/cino"
)

// CinoTable writes every cinoptions entry of t as a table. Entries that
// differ from the defaults for shift width sw are marked.
func CinoTable(w io.Writer, t cino.Table, sw int) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})))
	table.Header("Letter", "Name", "Value", "Default")

	defaults := cino.Defaults(sw).Fields()
	data := make([][]string, 0, len(defaults))
	for i, f := range t.Fields() {
		def := ""
		if d := defaults[i]; d.Value != f.Value {
			def = fmt.Sprint(d.Value)
		}
		data = append(data, []string{string(f.Letter), f.Name, fmt.Sprint(f.Value), def})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("error formatting cinoptions: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("error rendering cinoptions: %w", err)
	}
	return nil
}

// CinoAssignments lists the entries named in spec, in spec order, as
// "name=value" pairs.
func CinoAssignments(spec string, t cino.Table) string {
	var parts []string
	seen := make(map[byte]bool)
	for _, entry := range strings.Split(spec, ",") {
		if entry == "" || seen[entry[0]] {
			continue
		}
		seen[entry[0]] = true
		if f, ok := t.Lookup(entry[:1]); ok {
			parts = append(parts, fmt.Sprintf("%s=%d", f.Name, f.Value))
		}
	}
	return strings.Join(parts, " ")
}
