package cli

import (
	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Live match commands",
	}

	cmd.AddCommand(newMatchAnswerCmd())
	cmd.AddCommand(newMatchPowerUpCmd())
	cmd.AddCommand(newMatchSnapshotCmd())
	cmd.AddCommand(newMatchResultsCmd())

	return cmd
}

func newMatchAnswerCmd() *cobra.Command {
	var (
		questionID string
		value      string
		elapsedMs  int64
	)

	cmd := &cobra.Command{
		Use:   "answer <code>",
		Short: "Submit an answer for the current question",
		Long: `Submit an answer for the current question.

The value format depends on the question type: an option index for
multiple choice and true/false ("1"), comma-separated indexes for
multi-select ("0,2"), or the answer text for free text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"question_id": questionID,
				"value":       value,
				"elapsed_ms":  elapsedMs,
			}

			var result AnswerResult
			if err := client.Post(roomPath(args[0], "answer"), req, &result); err != nil {
				return err
			}
			return NewOutput(cfg.Output).Print(&result)
		},
	}

	cmd.Flags().StringVar(&questionID, "question", "", "Question ID from the snapshot (required)")
	cmd.Flags().StringVar(&value, "value", "", "Answer value (required)")
	cmd.Flags().Int64Var(&elapsedMs, "elapsed-ms", 0, "Client-measured thinking time in milliseconds")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newMatchPowerUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "powerup <code> <kind>",
		Short: "Activate a power-up for the current question",
		Long: `Activate a power-up for the current question.

Kinds: double_points, fifty_fifty, time_extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"kind": args[1]}

			var result ActivationResult
			if err := client.Post(roomPath(args[0], "powerup"), req, &result); err != nil {
				return err
			}
			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newMatchSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot <code>",
		Short: "Show your view of the match for reconnecting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SnapshotResult
			if err := client.Get(roomPath(args[0], "snapshot"), &result); err != nil {
				return err
			}
			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newMatchResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <code>",
		Short: "Show final results for a finished match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []ResultRow
			if err := client.Get(roomPath(args[0], "results"), &result); err != nil {
				return err
			}
			return NewOutput(cfg.Output).Print(result)
		},
	}
}
