package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/notify"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "Print the step graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		g, err := loadContent(cfg)
		if err != nil {
			return err
		}

		fmt.Printf("%-7s  %-34s  %-20s  %s\n", "Marker", "Title", "Variants", "Unlocks when")
		fmt.Println(strings.Repeat("─", 110))

		for _, m := range guide.MainSteps() {
			title := ""
			if st, ok := g.Step(m.Step()); ok {
				title = st.Title
			}
			if len(title) > 34 {
				title = title[:31] + "..."
			}

			var variants []string
			for _, v := range guide.Variants(m) {
				variants = append(variants, v.String())
			}

			rule := "always"
			if m > guide.MainStep1 {
				rule = notify.LockedMessage(m)
			}
			fmt.Printf("%-7s  %-34s  %-20s  %s\n", m.Label(), title, strings.Join(variants, " "), rule)
		}
		return nil
	},
}
