package cmd

import (
	"github.com/ksuda/kioku/internal/screens/study"
	"github.com/ksuda/kioku/internal/srs"
	"github.com/spf13/cobra"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Start a study session",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeStr, _ := cmd.Flags().GetString("mode")
		mode, err := srs.ParseMode(modeStr)
		if err != nil {
			return err
		}
		size, _ := cmd.Flags().GetInt("size")
		subject, _ := cmd.Flags().GetString("subject")
		chapter, _ := cmd.Flags().GetString("chapter")

		return runApp(cmd, &study.Options{
			Mode:    mode,
			Size:    size,
			Subject: subject,
			Chapter: chapter,
		})
	},
}

func init() {
	studyCmd.Flags().StringP("mode", "m", "normal", "Deck mode: normal, weak, quick, or new")
	studyCmd.Flags().IntP("size", "n", srs.DefaultDeckSize, "Number of cards in the deck")
	studyCmd.Flags().StringP("subject", "s", "", "Limit the deck to one subject")
	studyCmd.Flags().StringP("chapter", "c", "", "Limit the deck to one chapter")
}
