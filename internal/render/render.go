// Package render prints the bucketed view for the terminal. It stands in
// for the dashboard's list components: one summary table, then one row per
// display group with a ×N badge where several records collapsed.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/kertal/git-vegas/internal/activity"
)

// Summary renders one table row per non-empty bucket with its record count
// and the most recently updated title.
func Summary(w io.Writer, sum activity.Summary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Category", "Count", "Latest"})
	for _, b := range activity.AllBuckets {
		records := sum[b]
		if len(records) == 0 {
			continue
		}
		rep := activity.Representative(records)
		tw.AppendRow(table.Row{string(b), len(records), clip(rep.Title, 60)})
	}
	tw.Render()
}

// Buckets prints every non-empty bucket as a grouped listing: each line is
// a group representative, newest first, with the group size when more than
// one record collapsed into it.
func Buckets(w io.Writer, sum activity.Summary) {
	for _, b := range activity.AllBuckets {
		records := sum[b]
		if len(records) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", b)

		groups := activity.GroupByURL(records)
		reps := make([]groupRow, 0, len(groups))
		for _, group := range groups {
			reps = append(reps, groupRow{rep: activity.Representative(group), size: len(group)})
		}
		sort.Slice(reps, func(i, j int) bool {
			it, _ := activity.ParseTime(reps[i].rep.UpdatedAt)
			jt, _ := activity.ParseTime(reps[j].rep.UpdatedAt)
			return it.After(jt)
		})

		for _, row := range reps {
			badge := ""
			if row.size > 1 {
				badge = fmt.Sprintf(" ×%d", row.size)
			}
			fmt.Fprintf(w, "  - %s%s\n", row.rep.Title, badge)
			if row.rep.URL != "" {
				fmt.Fprintf(w, "    %s\n", row.rep.URL)
			}
		}
	}
}

type groupRow struct {
	rep  activity.Record
	size int
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
