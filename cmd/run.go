package cmd

import (
	"fmt"

	"github.com/ksuda/kioku/internal/app"
	"github.com/ksuda/kioku/internal/screens/study"
	"github.com/ksuda/kioku/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store and launches the TUI. A non-nil studyOpts skips
// the home menu and opens a session immediately.
func runApp(cmd *cobra.Command, studyOpts *study.Options) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Cards:  st.CardRepo(),
		Events: st.EventRepo(),
		Study:  studyOpts,
	})
}
