package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breaker/internal/audio"
	"github.com/vovakirdan/tui-breaker/internal/core"
	"github.com/vovakirdan/tui-breaker/internal/platform/tui"
	"github.com/vovakirdan/tui-breaker/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of breaker.

Controls:
  Left/H/A   - Move paddle left
  Right/L/D  - Move paddle right
  Space      - Launch the ball
  R          - Restart (after game over)
  ?          - Toggle help
  Q/Ctrl+C   - Quit

The paddle stops shortly after you stop pressing keys.

Examples:
  breaker play
  breaker play --seed 42
  breaker play --config ./my-breaker.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, manifest, err := loadInputs()
	if err != nil {
		return err
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		// Continue without journaling
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var player audio.Player = audio.Nop{}
	if !flagMute && cfg.Audio.Enabled {
		engine := audio.NewEngine(logger)
		if err := engine.Start(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer func() {
				played, dropped := engine.Stats()
				logger.Debug("audio stopped", "silent", engine.Silent(), "played", played, "dropped", dropped)
				engine.Stop()
			}()
			player = engine
		}
	}

	session, err := tui.Run(tui.Options{
		Game:     cfg,
		Manifest: manifest,
		Runtime:  rt,
		Player:   playerName(),
		Store:    store,
		Audio:    player,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if session.Over() {
		fmt.Printf("%s  Score: %d/%d\n", session.Outcome().Message(), session.Score(), session.Total())
	}
	return nil
}
