package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sadopc/tomato/internal/store"
	"github.com/sadopc/tomato/internal/timer"
)

// sessionFilter builds a store filter from the shared --since and
// --preset flags.
func sessionFilter(since, preset string, limit int, now time.Time) (store.SessionFilter, error) {
	f := store.SessionFilter{Limit: limit}

	from, err := parseSince(since, now)
	if err != nil {
		return f, err
	}
	f.From = from

	if preset != "" {
		p, ok := timer.ParsePreset(preset)
		if !ok {
			return f, fmt.Errorf("unknown preset %q (want focus, short-break or long-break)", preset)
		}
		f.Preset = string(p)
	}
	return f, nil
}

func newHistoryCmd(rt *runtime) *cobra.Command {
	var (
		since  string
		preset string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List finished sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := sessionFilter(since, preset, limit, time.Now())
			if err != nil {
				return err
			}
			sessions, err := rt.store.ListSessions(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}

			var total int64
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				total += s.Duration
				rows = append(rows, []string{
					strconv.FormatInt(s.ID, 10),
					s.CompletedAt.Local().Format("2006-01-02 15:04"),
					timer.Preset(s.Preset).Label(),
					formatLength(s.Duration),
				})
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "COMPLETED", "PRESET", "LENGTH").
				Rows(rows...)
			fmt.Fprintln(out, t.Render())
			fmt.Fprintf(out, "%d sessions, %s total\n", len(sessions), formatLength(total))
			return nil
		},
	}
	cmd.Flags().StringVar(&since, "since", "", `only sessions after this time ("yesterday", "last monday", "2024-03-01")`)
	cmd.Flags().StringVar(&preset, "preset", "", "only sessions of this preset")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of sessions (0 for all)")
	return cmd
}

func formatLength(secs int64) string {
	d := time.Duration(secs) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
