// mahjong is a terminal mahjong solitaire: match pairs of free tiles until
// the table is clear or the clock runs out.
//
// Usage:
//
//	mahjong list              - List available variants
//	mahjong play [variant]    - Play a variant (default: mahjong)
//	mahjong menu              - Pick variant, difficulty and board interactively
//	mahjong serve             - Start SSH server for remote play
//	mahjong scores [variant]  - Show high scores and recent games
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible deals
//	--db <path>          - Set database path (default: ~/.mahjong/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: warn)
//	--log-file <path>    - Write logs to a file while the table is on screen
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mahjong/internal/core"

	// Import the game to register its variants
	_ "github.com/vovakirdan/tui-mahjong/internal/games/mahjong"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mahjong",
	Short: "Mahjong solitaire in your terminal",
	Long: `Mahjong solitaire for the terminal.

Pick two free tiles with the same face to take them off the table.
Quick matches build a combo multiplier; a hint or a wrong pair breaks it.
Clear the table before the clock runs out.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant, difficulty and board picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent games

Examples:
  mahjong play
  mahjong play mahjong_pyramid --difficulty easy
  mahjong menu
  mahjong serve --ssh :2222
  mahjong scores mahjong`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mahjong/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file used while a game is on screen (default: discard)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger on w with the --log-level flag.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "mahjong",
		Level:           level,
	}), nil
}

// screenLogger returns a logger that does not write over the alternate
// screen: the --log-file when given, otherwise a discarding one. The
// returned closer must be called when the program exits.
func screenLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		l, err := newLogger(io.Discard)
		return l, func() {}, err
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	l, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return l, func() { f.Close() }, nil
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
