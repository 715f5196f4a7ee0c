package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/coup-go/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameMoveCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the game in a room (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameView

			if err := client.Post(roomPath(args[0])+"/game", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get the game as you can see it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameView

			if err := client.Get(roomPath(args[0])+"/game", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameMoveCmd() *cobra.Command {
	var opts MoveOptions

	cmd := &cobra.Command{
		Use:   "move <code> <kind>",
		Short: "Make a move",
		Long: `Make a move as your own seat.

Kinds: income, foreign_aid, tax, exchange, steal, assassinate, coup,
challenge, pass, block, surrender, show.

Challenge, pass, block and show automatically reference the move the game
is currently waiting on.

Examples:
  coupctl game move ABCDEFGH income
  coupctl game move ABCDEFGH steal --victim bob
  coupctl game move ABCDEFGH surrender --role GENERAL
  coupctl game move ABCDEFGH exchange --change DIPLOMAT:SNIPER`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := roomPath(args[0]) + "/game"

			var view response.GameView
			if err := client.Get(path, &view); err != nil {
				return err
			}

			move, err := BuildMove(view, args[1], opts)
			if err != nil {
				return err
			}

			var result response.GameView
			if err := client.Post(path+"/moves", move, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Victim, "victim", "", "Target player name (steal, assassinate, coup)")
	cmd.Flags().StringVar(&opts.Role, "role", "", "Role to surrender or show")
	cmd.Flags().StringArrayVar(&opts.Changes, "change", nil, "Role change OLD:NEW (exchange, repeatable)")

	return cmd
}
