package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breaker/internal/platform/tui"
	"github.com/vovakirdan/tui-breaker/internal/storage"
)

var (
	flagReplaysPlayer string
	flagReplaysLimit  int
	flagReplaysPlain  bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded runs",
	Long: `List journaled runs. Each run is replayed to show how it ended.

On a terminal this opens an interactive browser: press enter to watch
a run, x to delete it. Otherwise (or with --plain) a table is printed.

Examples:
  breaker replays
  breaker replays --player alice
  breaker replays --plain --limit 5`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

func init() {
	replaysCmd.Flags().StringVar(&flagReplaysPlayer, "player", "", "Only show runs by this player")
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Number of runs to print in plain mode")
	replaysCmd.Flags().BoolVar(&flagReplaysPlain, "plain", false, "Print a table instead of the interactive browser")
}

func runReplays(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	if flagReplaysPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printReplays(store)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	selected, err := tui.RunRuns(store, flagReplaysPlayer, width, height)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}
	return watchRun(store, selected.Run.ID)
}

func printReplays(store *storage.Store) error {
	summaries, err := store.Summaries(flagReplaysPlayer, flagReplaysLimit)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breaker play' to record one!")
		return nil
	}

	fmt.Printf("  %-6s  %-12s  %-8s  %-7s  %-8s  %s\n", "ID", "Player", "Outcome", "Score", "Ticks", "Date")
	fmt.Printf("  %-6s  %-12s  %-8s  %-7s  %-8s  %s\n", "--", "------", "-------", "-----", "-----", "----")
	for _, s := range summaries {
		row := tui.SummaryRow(s)
		fmt.Printf("  %-6s  %-12s  %-8s  %-7s  %-8s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}
	return nil
}
