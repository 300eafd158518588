package experiment

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// WriteTable renders one row per result, in the order given.
func WriteTable(w io.Writer, results []Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Real-time", "Seeks", "Clock", "Completed", "Missed", "Avg wait", "p99 wait"})
	for _, r := range results {
		s := r.Summary
		table.Append([]string{
			s.Policy,
			s.RealtimePolicy,
			strconv.FormatInt(s.SeekCount, 10),
			strconv.FormatInt(s.FinalClock, 10),
			strconv.Itoa(s.Completed),
			strconv.Itoa(s.Missed),
			fmt.Sprintf("%.2f", s.AverageWaitingTime),
			fmt.Sprintf("%.2f", s.WaitingP99),
		})
	}
	table.Render()
}
