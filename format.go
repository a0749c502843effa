// ABOUTME: Table rendering for the compare summary
// ABOUTME: Marks the fewest steps with an asterisk and formats playback time compactly

package main

import (
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
)

// renderComparison writes rows as an aligned table. The row with the fewest
// steps is starred; ties star every tied row.
func renderComparison(w io.Writer, rows []comparison) {
	fewest := -1
	for _, r := range rows {
		if fewest < 0 || r.Steps < fewest {
			fewest = r.Steps
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Steps", "Comparisons", "Swaps", "Accesses", "Playback"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoFormatHeaders(false)

	for _, r := range rows {
		name := r.Name
		if r.Steps == fewest {
			name += " *"
		}

		table.Append([]string{
			name,
			strconv.Itoa(r.Steps),
			strconv.Itoa(r.Comparisons),
			strconv.Itoa(r.Swaps),
			strconv.Itoa(r.Accesses),
			FormatPlayback(r.Playback),
		})
	}

	table.Render()
}

// FormatPlayback shows d with one decimal of seconds below a minute and as
// minutes and seconds above
func FormatPlayback(d time.Duration) string {
	if d < time.Minute {
		return strconv.FormatFloat(d.Seconds(), 'f', 1, 64) + "s"
	}

	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)

	return strconv.Itoa(m) + "m" + pad2(s) + "s"
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}

	return strconv.Itoa(n)
}
