package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session and gameplay commands",
	}

	cmd.AddCommand(newSessionNewCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionClickCmd())
	cmd.AddCommand(newSessionResetCmd())
	cmd.AddCommand(newSessionErrorCmd())
	cmd.AddCommand(newSessionMovesCmd())
	cmd.AddCommand(newSessionBotCmd())
	cmd.AddCommand(newSessionDeleteCmd())

	return cmd
}

func sessionPath(id, suffix string) string {
	return "/api/v1/sessions/" + id + suffix
}

func printSession(path string, body any) error {
	var result Session
	if err := client.Post(path, body, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output).Print(result)
	return nil
}

func newSessionNewCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{}
			if size > 0 {
				req["grid_size"] = size
			}
			return printSession("/api/v1/sessions", req)
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "Grid size (server default if unset)")
	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current session state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session
			if err := client.Get(sessionPath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSessionClickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "click <id> <x> <y>",
		Short: "Click a grid node",
		Long: `Click a grid node. The first click of a turn selects the start node, the
second completes the line.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			return printSession(sessionPath(args[0], "/clicks"), map[string]int{"x": x, "y": y})
		},
	}
}

func newSessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Start a new game in the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSession(sessionPath(args[0], "/reset"), nil)
		},
	}
}

func newSessionErrorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "error <id> <message>",
		Short: "Report a client failure, ending the game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSession(sessionPath(args[0], "/error"), map[string]string{"error": args[1]})
		},
	}
}

func newSessionMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <id>",
		Short: "List legal moves for the current player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MoveSet
			if err := client.Get(sessionPath(args[0], "/moves"), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSessionBotCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "bot <id>",
		Short: "Play one turn for the current player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if strategy != "" {
				req["strategy"] = strategy
			}
			return printSession(sessionPath(args[0], "/bot"), req)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Bot strategy: random, greedy")
	return cmd
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(sessionPath(args[0], "")); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Session deleted")
			return nil
		},
	}
}
