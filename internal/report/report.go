// Package report renders one or more metrics.Report values as CSV or
// as an aligned terminal table for side-by-side comparison.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/yigitbektasgursoy/cache-simulator/internal/metrics"
)

// rows returns the metric-name/value pairs common to both renderers,
// four rows per level plus four hierarchy-wide totals.
func rows(r metrics.Report) [][2]string {
	out := make([][2]string, 0, len(r.Levels)*4+4)
	for _, lvl := range r.Levels {
		out = append(out,
			[2]string{lvl.Name + " hits", strconv.FormatUint(lvl.Hits, 10)},
			[2]string{lvl.Name + " misses", strconv.FormatUint(lvl.Misses, 10)},
			[2]string{lvl.Name + " hit rate", fmt.Sprintf("%.2f%%", lvl.HitRate*100)},
			[2]string{lvl.Name + " inclusion", lvl.InclusionPolicy},
		)
	}
	out = append(out,
		[2]string{"AMAT", fmt.Sprintf("%.4f", r.AMAT)},
		[2]string{"memory reads", strconv.FormatUint(r.MemoryReads, 10)},
		[2]string{"memory writes", strconv.FormatUint(r.MemoryWrites, 10)},
		[2]string{"wall clock", r.WallClock.String()},
	)
	return out
}

// CSV renders reports as "Metric,<name1>,<name2>,..." with one row per
// metric, per §6's comparison layout. encoding/csv is the standard
// library's writer; no ecosystem CSV package appears anywhere in the
// retrieved corpus, so there is nothing to ground a substitute on.
func CSV(reports []metrics.Report) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Metric"}
	for _, r := range reports {
		header = append(header, r.TestName)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	if len(reports) == 0 {
		w.Flush()
		return buf.String(), w.Error()
	}

	allRows := make([][][2]string, len(reports))
	for i, r := range reports {
		allRows[i] = rows(r)
	}

	for i, pair := range allRows[0] {
		record := []string{pair[0]}
		for _, rs := range allRows {
			if i < len(rs) {
				record = append(record, rs[i][1])
			} else {
				record = append(record, "")
			}
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

// Table renders the same metrics as an aligned terminal table for
// --compare, using go-pretty's table writer.
func Table(reports []metrics.Report) string {
	t := table.NewWriter()

	header := table.Row{"Metric"}
	for _, r := range reports {
		header = append(header, r.TestName)
	}
	t.AppendHeader(header)

	if len(reports) == 0 {
		return t.Render()
	}

	allRows := make([][][2]string, len(reports))
	for i, r := range reports {
		allRows[i] = rows(r)
	}

	for i, pair := range allRows[0] {
		row := table.Row{pair[0]}
		for _, rs := range allRows {
			if i < len(rs) {
				row = append(row, rs[i][1])
			} else {
				row = append(row, "")
			}
		}
		t.AppendRow(row)
	}

	return t.Render()
}
