package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breaker/internal/assets"
	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/games/breaker"
	"github.com/vovakirdan/tui-breaker/internal/platform/tui"
	"github.com/vovakirdan/tui-breaker/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded run",
	Long: `Replay a journaled run from its seed and recorded inputs and print
the final state and board. With --watch the run plays back on screen.

Examples:
  breaker replay 3
  breaker replay 3 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the run back in the terminal")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run journal: %w", err)
	}
	defer store.Close()

	if flagWatch {
		return watchRun(store, id)
	}

	run, session, err := store.ReplayRun(id)
	if err != nil {
		return err
	}

	snap := session.Snapshot()
	fmt.Printf("Run %d by %s (seed %d, %d frames)\n", run.ID, run.Player, run.Seed, run.Frames)
	fmt.Printf("  Outcome:  %s\n", snap.Outcome)
	fmt.Printf("  Score:    %d/%d\n", snap.Score, snap.Total)
	fmt.Printf("  Ticks:    %d\n", snap.Tick)
	fmt.Printf("  Ball:     (%.1f, %.1f) velocity (%.1f, %.1f)\n", snap.Ball.X, snap.Ball.Y, snap.BallDX, snap.BallDY)
	fmt.Printf("  Paddle:   (%.1f, %.1f)\n", snap.Paddle.X, snap.Paddle.Y)
	fmt.Printf("  Hash:     %016x\n", snap.Hash())

	return printBoard(run, snap)
}

// printBoard draws the final frame as plain text.
func printBoard(run *storage.Run, snap breaker.Snapshot) error {
	cfg, err := run.Config()
	if err != nil {
		return err
	}
	manifest, err := assets.LoadManifest(flagAssets)
	if err != nil {
		return err
	}
	bundle, err := assets.DecodeSprites(manifest)
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	screen := core.NewScreen(rt.ScreenW, rt.ScreenH-1)
	tui.DrawSession(screen, tui.NewLayout(rt.ScreenW, rt.ScreenH-1, cfg.Playfield), snap, bundle)
	fmt.Println()
	fmt.Println(screen.String())
	return nil
}

// watchRun plays a journaled run back in the TUI using the config it was
// recorded with.
func watchRun(store *storage.Store, id int64) error {
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	run, err := store.LoadRun(id)
	if err != nil {
		return err
	}
	cfg, err := run.Config()
	if err != nil {
		return err
	}
	manifest, err := assets.LoadManifest(flagAssets)
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	rec := run.Recording()
	_, err = tui.Run(tui.Options{
		Game:     cfg,
		Manifest: manifest,
		Runtime:  rt,
		Player:   run.Player,
		Logger:   logger,
		Playback: &rec,
	})
	return err
}
