package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/ksuda/kioku/internal/card"
	"github.com/ksuda/kioku/internal/cardgen"
	"github.com/ksuda/kioku/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import flashcards from a JSON file",
	Long:  `Import reads a JSON file of the form {"cards": [...]} and upserts every card by ID. Re-importing never touches review progress.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		var file struct {
			Cards []*card.Card `json:"cards"`
		}
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		if len(file.Cards) == 0 {
			return fmt.Errorf("%s contains no cards", args[0])
		}

		for _, c := range file.Cards {
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
			if c.Type == "" {
				c.Type = card.TypeQuick
			}
			cardgen.Cleanse(c)
		}
		cards := cardgen.Dedupe(file.Cards)

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		n, err := s.CardRepo().Insert(context.Background(), cards)
		if err != nil {
			return fmt.Errorf("insert cards: %w", err)
		}

		if dropped := len(file.Cards) - len(cards); dropped > 0 {
			fmt.Printf("Skipped %d duplicate cards.\n", dropped)
		}
		fmt.Printf("Imported %d cards.\n", n)
		return nil
	},
}
