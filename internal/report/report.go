// Package report renders CLI tables for rankings and team leaderboards.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dugoutlab/dugout-data/internal/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRankings writes a ranking table for one statistic.
func PrintRankings(w io.Writer, statName string, entries []stats.Entry) {
	fmt.Fprintf(w, "\n--- %s ---\n\n", statName)
	table := newTable(w)
	table.Header("#", "PLAYER", "TEAM", "SEASON", "VALUE")
	for i, e := range entries {
		table.Append(
			strconv.Itoa(i+1),
			e.Player,
			e.Team,
			strconv.Itoa(e.Season),
			fmt.Sprintf("%.3f", e.Value),
		)
	}
	table.Render()
}

// PrintLeaderboard writes the per-statistic team leaderboard summary;
// skipped statistics print their reason instead of a table.
func PrintLeaderboard(w io.Writer, items []stats.LeaderboardItem) {
	for _, item := range items {
		if item.Skipped {
			fmt.Fprintf(w, "\n--- %s: skipped (%s) ---\n", item.Stat, item.Reason)
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n\n", item.Stat)
		table := newTable(w)
		table.Header("#", "TEAM", "VALUE")
		for i, e := range item.Entries {
			table.Append(
				strconv.Itoa(i+1),
				e.Team,
				fmt.Sprintf("%.3f", e.Value),
			)
		}
		table.Render()
	}
}
