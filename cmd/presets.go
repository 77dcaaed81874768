package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/tomato/internal/logging"
	"github.com/sadopc/tomato/internal/timer"
)

func newPresetsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Show the preset lengths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rt.durations()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, p := range timer.Presets {
				fmt.Fprintf(out, "%d  %-12s %-12s %3d min\n", i+1, p, p.Label(), int(d[p]/time.Minute))
			}
			return nil
		},
	}
	cmd.AddCommand(newPresetsSetCmd(rt))
	return cmd
}

func newPresetsSetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME MINUTES",
		Short: "Change a preset length",
		Example: `  tomato presets set focus 50
  tomato presets set short 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := timer.ParsePreset(args[0])
			if !ok {
				return fmt.Errorf("unknown preset %q (want focus, short-break or long-break)", args[0])
			}
			mins, err := strconv.Atoi(args[1])
			if err != nil || mins < 1 || mins > 24*60 {
				return fmt.Errorf("minutes must be a whole number between 1 and 1440, got %q", args[1])
			}

			if err := rt.store.SaveDurations(timer.Durations{p: time.Duration(mins) * time.Minute}); err != nil {
				return err
			}
			logging.Info("preset changed", logging.KeyPreset, string(p), "minutes", mins)
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %d min\n", p.Label(), mins)
			return nil
		},
	}
}
