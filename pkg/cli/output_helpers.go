package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable renders rows as an aligned table with the given column order.
func printTable(w io.Writer, columns []string, rows []map[string]interface{}) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatCell(row[col])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

// printResultRows renders query result rows, deriving a stable column order
// from the union of keys.
func printResultRows(w io.Writer, rows []map[string]interface{}) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	seen := map[string]struct{}{}
	for _, row := range rows {
		for col := range row {
			seen[col] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for col := range seen {
		columns = append(columns, col)
	}
	sort.Strings(columns)
	printTable(w, columns, rows)
}

func formatCell(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
