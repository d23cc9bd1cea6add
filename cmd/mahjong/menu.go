package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mahjong/internal/platform/tui"
	"github.com/vovakirdan/tui-mahjong/internal/registry"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant, difficulty and board interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a variant, then choose difficulty and board
size. After a game, Esc brings you back to the menu.

Controls:
  Up/Down/j/k   - Navigate
  Left/Right    - Change a setting
  Enter/Space   - Select
  Tab           - Scores and recent games
  Q             - Quit

Examples:
  mahjong menu
  mahjong menu --fps 20
  mahjong menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog, err := screenLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return nil
		}

		game, err := registry.Create(gameID)
		if err != nil {
			logger.Error("cannot create game", "game", gameID, "err", err)
			continue
		}

		selection, updatedCfg, err := tui.RunSetup(game.Title(), cfg)
		if err != nil {
			return err
		}
		cfg = updatedCfg
		if selection == nil {
			continue
		}
		selection.Apply(game)

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, cfg, tui.ModelOptions{Logger: logger, AllowBack: true})
		if err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}
