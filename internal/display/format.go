package display

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"archery/internal/core"
)

// PrettyPrintJSON prints formatted JSON
func PrettyPrintJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(w, Paint(Red, "Error formatting JSON: "+err.Error()))
		return
	}
	fmt.Fprintln(w, string(data))
}

// Table prints rows under a header with a dashed rule, columns aligned
func Table(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	rule := make([]string, len(header))
	for i, h := range header {
		rule[i] = strings.Repeat("-", max(len(h), 3))
	}
	fmt.Fprintln(tw, strings.Join(rule, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

// Error prints err in red, with the error code when it carries one
func Error(w io.Writer, err error) {
	var reqErr *core.RequestError
	if errors.As(err, &reqErr) {
		fmt.Fprintf(w, "%s %s\n", Paint(Red, "Error ["+reqErr.Code+"]:"), reqErr.Error())
		return
	}
	fmt.Fprintf(w, "%s %s\n", Paint(Red, "Error:"), err.Error())
}

// ShortID trims a uuid for display
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
