package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ksuda/kioku/internal/srs"
	"github.com/ksuda/kioku/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pool and session statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		pool, err := s.CardRepo().All(ctx)
		if err != nil {
			return fmt.Errorf("load cards: %w", err)
		}
		if len(pool) == 0 {
			fmt.Println("No cards yet. Import or generate some first.")
			return nil
		}

		now := time.Now()
		due := 0
		for _, c := range pool {
			if c.IsDue(now) {
				due++
			}
		}
		poolStats := srs.Stats(pool)

		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		reviewsToday, err := s.EventRepo().ReviewsSince(ctx, midnight)
		if err != nil {
			return fmt.Errorf("count reviews: %w", err)
		}

		fmt.Println("Card Pool")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-18s %d\n", "Total cards", len(pool))
		fmt.Printf("%-18s %d\n", "Due now", due)
		fmt.Printf("%-18s %d\n", "Mastered", poolStats.Mastered)
		fmt.Printf("%-18s %d\n", "Learning", poolStats.Learning)
		fmt.Printf("%-18s %d\n", "New", poolStats.New)
		fmt.Printf("%-18s %.0f\n", "Avg confidence", poolStats.AverageConfidence)
		fmt.Printf("%-18s %d\n", "Reviews today", reviewsToday)

		if len(poolStats.WeakestTopics) > 0 {
			fmt.Println()
			fmt.Println("Weakest Topics")
			fmt.Println(strings.Repeat("─", 48))
			for _, t := range poolStats.WeakestTopics {
				fmt.Printf("%-24s %3.0f%% weak  (%d cards)\n", t.Tag, t.WeakFraction*100, t.CardCount)
			}
		}

		sessions, err := s.EventRepo().RecentSessions(ctx, 5)
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		if len(sessions) > 0 {
			fmt.Println()
			fmt.Println("Recent Sessions")
			fmt.Println(strings.Repeat("─", 48))
			for _, sess := range sessions {
				var accuracy float64
				if sess.CardsStudied > 0 {
					accuracy = float64(sess.CorrectCount) / float64(sess.CardsStudied) * 100
				}
				fmt.Printf("%s  %-7s %2d cards  %3.0f%%  %d:%02d\n",
					sess.Timestamp.Local().Format("Jan 02 15:04"),
					sess.Mode,
					sess.CardsStudied,
					accuracy,
					sess.DurationSecs/60, sess.DurationSecs%60,
				)
			}
		}

		return nil
	},
}
