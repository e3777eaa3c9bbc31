package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/cardgen"
	"github.com/ksuda/kioku/internal/llm"
	"github.com/ksuda/kioku/internal/store"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <source.txt>",
	Short: "Generate flashcards from source text with an LLM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		subject, _ := cmd.Flags().GetString("subject")
		chapter, _ := cmd.Flags().GetString("chapter")
		page, _ := cmd.Flags().GetInt("page")

		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
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

		provider, err := llm.NewProviderFromEnv(ctx, s.EventRepo())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		// Questions already in the chapter keep the model from repeating itself.
		existing, err := s.CardRepo().Filter(ctx, subject, chapter)
		if err != nil {
			return fmt.Errorf("load existing cards: %w", err)
		}
		prior := make([]string, 0, len(existing))
		for _, c := range existing {
			prior = append(prior, c.Question)
		}

		gen := cardgen.New(provider, cardgen.DefaultConfig())
		cards, err := gen.Generate(ctx, cardgen.GenerateInput{
			Subject:        card.Subject(subject),
			Chapter:        chapter,
			SourceText:     string(source),
			Page:           page,
			PriorQuestions: prior,
		})
		if err != nil {
			return fmt.Errorf("generate cards: %w", err)
		}
		if len(cards) == 0 {
			fmt.Println("The model produced no usable cards from this source.")
			return nil
		}

		n, err := s.CardRepo().Insert(ctx, cards)
		if err != nil {
			return fmt.Errorf("insert cards: %w", err)
		}

		fmt.Printf("Generated %d cards into %s/%s.\n", n, subject, chapter)
		for _, c := range cards {
			fmt.Printf("  [%s] %s\n", c.Type, c.Question)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("subject", "s", string(card.SubjectChemistry), "Subject for the generated cards")
	generateCmd.Flags().StringP("chapter", "c", "", "Chapter for the generated cards (required)")
	generateCmd.Flags().IntP("page", "p", 0, "Source page number, recorded on each card")
	generateCmd.MarkFlagRequired("chapter")
}
