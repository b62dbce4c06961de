// Package render prints batches and history as a terminal table. The core
// never depends on this format; anything accepting an ordered result slice
// can replace it.
package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/joaoloboguerraneto/endpoint-monitor/internal/domain"
)

var (
	upColor    = color.New(color.FgGreen)
	downColor  = color.New(color.FgRed)
	errorColor = color.New(color.FgYellow)
)

type Table struct {
	Out io.Writer
}

func NewTable(out io.Writer) *Table {
	return &Table{Out: out}
}

func (t *Table) Render(results []domain.CheckResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(t.Out, "no results to display")
		return err
	}

	w := tabwriter.NewWriter(t.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENDPOINT\tSTATUS\tCODE\tLATENCY (MS)\tTIMESTAMP\tERROR")

	for _, r := range results {
		code := "-"
		if r.StatusCode != nil {
			code = strconv.Itoa(*r.StatusCode)
		}
		lat := "-"
		if r.LatencyMS != nil {
			lat = strconv.FormatFloat(*r.LatencyMS, 'f', 2, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.EndpointName,
			statusCell(r.Status),
			code,
			lat,
			r.CheckedAt.Format(time.RFC3339),
			r.Error,
		)
	}
	return w.Flush()
}

func statusCell(s domain.Status) string {
	switch s {
	case domain.StatusUp:
		return upColor.Sprint(string(s))
	case domain.StatusDown:
		return downColor.Sprint(string(s))
	default:
		return errorColor.Sprint(string(s))
	}
}
