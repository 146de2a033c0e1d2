package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameDailyCmd())
	cmd.AddCommand(newGameRandomCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameRevealCmd())

	return cmd
}

func newGameDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Start today's daily game",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startGame("/api/v1/games/daily")
		},
	}
}

func newGameRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Start an unlimited game against a random player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startGame("/api/v1/games/random")
		},
	}
}

func startGame(path string) error {
	var result StartGameResult

	if err := client.Post(path, nil, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)

	// Remember the session for subsequent guess/reveal commands
	if err := cfg.SaveSession(result.SessionID); err != nil {
		out.PrintError(fmt.Errorf("could not save session: %w", err))
	}

	return nil
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <name>",
		Short: "Guess the mystery player by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.SessionID == "" {
				return fmt.Errorf("no active session: start a game first or pass --session")
			}

			name := strings.Join(args, " ")

			body := map[string]string{
				"session_id": cfg.SessionID,
				"guess":      name,
			}

			var result GuessResult
			if err := client.Post("/api/v1/games/guess", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRevealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the answer for the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.SessionID == "" {
				return fmt.Errorf("no active session: start a game first or pass --session")
			}

			body := map[string]string{
				"session_id": cfg.SessionID,
			}

			var result RevealResult
			if err := client.Post("/api/v1/games/reveal", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Player commands",
	}

	cmd.AddCommand(newPlayersAutocompleteCmd())

	return cmd
}

func newPlayersAutocompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "autocomplete <prefix>",
		Short: "Search eligible player names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			var result AutocompleteResult
			path := "/api/v1/players/autocomplete?q=" + url.QueryEscape(query)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
