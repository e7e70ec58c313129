package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/caseguide/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent step transitions from the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.JournalRepo().Recent(cmd.Context(), store.QueryOpts{
			Limit:     limit,
			SessionID: session,
		})
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No transitions recorded. Run caseguide with --journal to record them.")
			return nil
		}

		fmt.Printf("%-19s  %-8s  %-10s  %-12s  %-12s  %4s  %s\n",
			"Time", "Session", "Op", "From", "To", "%", "Result")
		fmt.Println(strings.Repeat("─", 90))
		for _, e := range entries {
			result := "ok"
			if e.Rejected() {
				result = "locked " + e.Locked
			}
			fmt.Printf("%-19s  %-8s  %-10s  %-12s  %-12s  %4d  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				shortID(e.SessionID), e.Op, e.From, e.To, e.Percent, result)
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count arrivals at each step across all sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		visits, err := st.JournalRepo().StepVisits(cmd.Context())
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}
		if len(visits) == 0 {
			fmt.Println("No transitions recorded.")
			return nil
		}

		fmt.Printf("%-12s  %s\n", "Step", "Visits")
		fmt.Println(strings.Repeat("─", 20))
		for _, v := range visits {
			fmt.Printf("%-12s  %6d\n", v.Step, v.Count)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of transitions to show (0 for all)")
	historyCmd.Flags().String("session", "", "Only show transitions from this session id")

	historyCmd.AddCommand(historyStatsCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
