package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var validSuits = map[string]bool{
	"hearts": true, "diamonds": true, "clubs": true, "spades": true,
}

var validSetTypes = map[string]bool{
	"lower": true, "upper": true,
}

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameRequestCmd())
	cmd.AddCommand(newGameDeclareCmd())
	cmd.AddCommand(newGameClaimCmd())
	cmd.AddCommand(newGameGrantCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <room>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/start", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <room> <player-id> <rank> <suit>",
		Short: "Ask an opponent for a card",
		Long: `Ask an opponent for a specific card. You must already hold a card
from the same set. Example:

  litctl game request friday-night p_abc123 king hearts`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			room := args[0]
			target := args[1]
			rank := strings.ToLower(args[2])
			suit := strings.ToLower(args[3])

			if !validSuits[suit] {
				return fmt.Errorf("suit must be one of hearts, diamonds, clubs, spades")
			}

			setType, err := setTypeForRank(rank)
			if err != nil {
				return err
			}

			req := map[string]string{
				"target_player_id": target,
				"suit":             suit,
				"rank":             rank,
				"set_type":         setType,
			}
			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/request-card", room), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeclareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "declare <room> <lower|upper> <suit>",
		Short: "Declare that your team holds a complete set",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			room := args[0]
			setType := strings.ToLower(args[1])
			suit := strings.ToLower(args[2])

			if !validSetTypes[setType] {
				return fmt.Errorf("set type must be lower or upper")
			}
			if !validSuits[suit] {
				return fmt.Errorf("suit must be one of hearts, diamonds, clubs, spades")
			}

			req := map[string]string{"suit": suit, "set_type": setType}
			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/declare-set", room), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameClaimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <room>",
		Short: "Claim the turn after a host grant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/claim-turn", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <room> <player-id>",
		Short: "Grant a player the right to claim the turn (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": args[1]}
			var result Room

			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/grant-claim", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func setTypeForRank(rank string) (string, error) {
	switch rank {
	case "ace", "2", "3", "4", "5", "6":
		return "lower", nil
	case "8", "9", "10", "jack", "queen", "king":
		return "upper", nil
	default:
		return "", fmt.Errorf("rank must be one of ace, 2-6, 8-10, jack, queen, king")
	}
}
