package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mahjong/internal/config"
	"github.com/vovakirdan/tui-mahjong/internal/games/mahjong"
	"github.com/vovakirdan/tui-mahjong/internal/platform/tui"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWidth      int
	flagHeight     int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Deal a table of the given variant and start playing.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Enter/Space       - Pick the tile under the cursor (or click it)
  ?                 - Show a free pair (breaks the combo)
  P                 - Pause
  R                 - Play again (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Long clock, fewer faces, large reserve tray
  normal - Configured clock and faces, scoring window shrinks as you score
  hard   - Short clock, every face, no reserve, a stuck table ends the game
  fixed  - Configured values, no progression

Examples:
  mahjong play
  mahjong play mahjong_relaxed --difficulty easy
  mahjong play --width 10 --height 6
  mahjong play --config ./my-mahjong.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
	playCmd.Flags().IntVar(&flagWidth, "width", 0, "Board width in tiles (0 = from config)")
	playCmd.Flags().IntVar(&flagHeight, "height", 0, "Board height in tiles (0 = from config)")
}

// applyGameFlags hands the CLI settings to the game package.
func applyGameFlags() error {
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		return err
	}
	mahjong.SetConfigPath(flagConfig)
	mahjong.SetDifficultyPreset(flagDifficulty)
	mahjong.SetBoardSize(flagWidth, flagHeight)
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "mahjong"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'mahjong list' to see them)", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	logger, closeLog, err := screenLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	// Continue without storage: the game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, runtimeConfig(), tui.ModelOptions{Logger: logger}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	if g, ok := game.(*mahjong.Game); ok && g.Err() != nil {
		return g.Err()
	}
	return nil
}
