package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ksuda/kioku/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all review progress",
	Long:  "Reset clears confidence and scheduling for every card. The cards themselves are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Print("This clears review progress for every card. Continue? [y/N] ")
			var answer string
			fmt.Scanln(&answer)
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
			default:
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.CardRepo().ResetReviewState(context.Background()); err != nil {
			return fmt.Errorf("reset review state: %w", err)
		}

		fmt.Println("Review state reset. Every card is new again.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
