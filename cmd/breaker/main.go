// breaker is a terminal block-breaker.
//
// Usage:
//
//	breaker play             - Play a game
//	breaker serve            - Start SSH server for remote play
//	breaker replays          - Browse recorded runs
//	breaker replay <id>      - Re-simulate a recorded run
//	breaker config           - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Game config YAML
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set run journal path (default: ~/.breaker/runs.db)
//	--log-level <lvl>  - debug, info, warn or error
//	--mute             - Disable sound
//	--assets <path>    - Asset manifest YAML
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breaker/internal/assets"
	"github.com/vovakirdan/tui-breaker/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagMute     bool
	flagAssets   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breaker",
	Short: "Breaker - break blocks in your terminal",
	Long: `Breaker is a terminal block-breaker. Bounce the ball off the paddle
and clear every block; let the ball fall past the paddle and you lose.

Every game is journaled as a seed plus the keys pressed on each frame,
so any run can be replayed exactly.

Available commands:
  play     - Play a game
  serve    - Start SSH server for remote play
  replays  - Browse recorded runs
  replay   - Re-simulate a recorded run
  config   - Print the effective configuration

Examples:
  breaker play
  breaker play --seed 42 --mute
  breaker serve --ssh :2222
  breaker replays
  breaker replay 3 --watch`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.breaker/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Path to asset manifest YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "breaker",
		Level:           level,
	}), nil
}

// fileLogger logs to ~/.breaker/breaker.log so the alt screen stays clean.
// It falls back to discarding logs when the file cannot be opened.
func fileLogger() (*log.Logger, func(), error) {
	home, err := os.UserHomeDir()
	if err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}
	dir := filepath.Join(home, ".breaker")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}
	f, err := os.OpenFile(filepath.Join(dir, "breaker.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //#nosec G304 -- fixed path under home
	if err != nil {
		logger, lerr := newLogger(io.Discard)
		return logger, func() {}, lerr
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadInputs resolves the game config and the asset manifest from flags.
func loadInputs() (config.GameConfig, assets.Manifest, error) {
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		return config.GameConfig{}, assets.Manifest{}, err
	}
	manifest, err := assets.LoadManifest(flagAssets)
	if err != nil {
		return config.GameConfig{}, assets.Manifest{}, err
	}
	return cfg, manifest, nil
}

// playerName names journaled local runs.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}
