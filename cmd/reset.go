package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every transition recorded in the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			form := newForm(huh.NewGroup(
				huh.NewConfirm().
					Title("Delete the whole transition journal?").
					Description("Guide progress is not affected; it is never restored from the journal.").
					Value(&yes).
					Affirmative("Yes, delete").
					Negative("Cancel"),
			))
			if err := form.Run(); err != nil {
				return fmt.Errorf("confirm reset: %w", err)
			}
			if !yes {
				fmt.Println("Nothing deleted.")
				return nil
			}
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.JournalRepo().Clear(cmd.Context())
		if err != nil {
			return fmt.Errorf("clear journal: %w", err)
		}
		fmt.Printf("Deleted %d transitions.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
