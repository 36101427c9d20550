package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomReadyCmd())
	cmd.AddCommand(newRoomHeartbeatCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var (
		maxPlayers  int
		minPlayers  int
		seconds     int
		questions   int
		category    string
		difficulty  string
		idleTimeout int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if maxPlayers > 0 {
				req["max_players"] = maxPlayers
			}
			if minPlayers > 0 {
				req["min_players_to_start"] = minPlayers
			}
			if seconds > 0 {
				req["seconds_per_question"] = seconds
			}
			if questions > 0 {
				req["question_count"] = questions
			}
			if category != "" {
				req["category"] = category
			}
			if difficulty != "" {
				req["difficulty"] = difficulty
			}
			if idleTimeout > 0 {
				req["idle_timeout_sec"] = idleTimeout
			}

			var result RoomResult
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}
			return NewOutput(cfg.Output).Print(&result)
		},
	}

	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Maximum players (default from server)")
	cmd.Flags().IntVar(&minPlayers, "min-players", 0, "Minimum players to start")
	cmd.Flags().IntVar(&seconds, "seconds", 0, "Seconds per question")
	cmd.Flags().IntVar(&questions, "questions", 0, "Number of questions")
	cmd.Flags().StringVar(&category, "category", "", "Restrict questions to a category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Restrict questions to a difficulty")
	cmd.Flags().IntVar(&idleTimeout, "idle-timeout", 0, "Idle timeout in seconds (0 disables sweeping)")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show room state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomResult
			if err := client.Get(roomPath(args[0], ""), &result); err != nil {
				return err
			}
			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomResult
			if err := client.Post(roomPath(args[0], "join"), nil, &result); err != nil {
				return err
			}
			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(roomPath(args[0], "leave"), nil, nil); err != nil {
				return err
			}
			fmt.Println("Left room.")
			return nil
		},
	}
}

func newRoomReadyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ready <code>",
		Short: "Mark yourself ready (starts the match when everyone is)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomResult
			if err := client.Post(roomPath(args[0], "ready"), nil, &result); err != nil {
				return err
			}
			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newRoomHeartbeatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat <code>",
		Short: "Refresh your presence in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(roomPath(args[0], "heartbeat"), nil, nil); err != nil {
				return err
			}
			fmt.Println("Presence refreshed.")
			return nil
		},
	}
}

func roomPath(code, suffix string) string {
	path := "/api/v1/rooms/" + strings.ToUpper(code)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}
