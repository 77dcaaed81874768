// Package cmd provides the tomato command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sadopc/tomato/internal/config"
	"github.com/sadopc/tomato/internal/logging"
	"github.com/sadopc/tomato/internal/record"
	"github.com/sadopc/tomato/internal/store"
	"github.com/sadopc/tomato/internal/timer"
	"github.com/sadopc/tomato/internal/tui"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// runtime holds what commands share once flags are parsed.
type runtime struct {
	configPath string
	debug      bool

	cfg     config.Config
	store   *store.Store
	logFile *os.File
}

// setup loads the config, starts logging and opens the session database.
func (rt *runtime) setup() error {
	cfg, err := config.LoadOrDefault(rt.configPath)
	if err != nil {
		return err
	}
	rt.cfg = cfg

	f, err := logging.OpenFile(cfg.LogPath)
	if err != nil {
		return err
	}
	rt.logFile = f
	if rt.debug {
		logging.Init(logging.DebugConfig(f))
	} else {
		lc := logging.DefaultConfig()
		lc.Level, _ = cfg.Level()
		lc.Output = f
		logging.Init(lc)
	}

	s, err := store.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	rt.store = s
	logging.DebugLog("runtime ready", "config", rt.configPath, "db", cfg.DBPath)
	return nil
}

func (rt *runtime) close() error {
	var errs []error
	if rt.store != nil {
		errs = append(errs, rt.store.Close())
		rt.store = nil
	}
	if rt.logFile != nil {
		errs = append(errs, rt.logFile.Close())
		rt.logFile = nil
	}
	return errors.Join(errs...)
}

// durations are the preset lengths from config, overridden by any saved
// in the session store.
func (rt *runtime) durations() (timer.Durations, error) {
	return rt.store.Durations(rt.cfg.Durations())
}

func (rt *runtime) openRecord() (*record.Store, error) {
	return record.Open(rt.cfg.RecordPath)
}

func newRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "tomato",
		Short: "A pomodoro timer for the terminal",
		Long: `tomato is a pomodoro countdown timer with a terminal UI.

Run it without arguments to open the timer. Finished countdowns are kept
in a local history that the history and export commands read.

Examples:
  tomato
  tomato history --since "last monday"
  tomato export --format csv --output sessions.csv
  tomato presets set short-break 10
  tomato record put --id me --note "deep work"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return rt.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, rt)
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", config.DefaultPath(), "config file")
	root.PersistentFlags().BoolVar(&rt.debug, "debug", false, "debug logging (JSON with source positions)")

	root.AddCommand(
		newRecordCmd(rt),
		newHistoryCmd(rt),
		newExportCmd(rt),
		newPresetsCmd(rt),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	rt := &runtime{}
	defer rt.close()
	return newRootCmd(rt).Execute()
}

func runTUI(cmd *cobra.Command, rt *runtime) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return errors.New("tomato needs an interactive terminal; see `tomato --help` for other commands")
	}

	rs, err := rt.openRecord()
	if err != nil {
		return err
	}
	d, err := rt.durations()
	if err != nil {
		return err
	}

	app := tui.NewApp(rt.store, rs, timer.New(d), tui.Options{ExportDir: rt.cfg.ExportDir})
	logging.Info("starting tui")
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("tomato %s\n", Version)
			cmd.Printf("  commit: %s\n", Commit)
			cmd.Printf("  built: %s\n", BuildTime)
		},
	}
}
