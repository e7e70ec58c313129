package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/caseguide/internal/export"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Save the merchant interview questions to a text file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir := cfg.DownloadDir
		if cmd.Flags().Changed("dir") {
			dir, _ = cmd.Flags().GetString("dir")
		}

		path, err := export.WriteInterviewQuestions(dir)
		if err != nil {
			return err
		}
		fmt.Println("Saved", path)
		return nil
	},
}

func init() {
	questionsCmd.Flags().String("dir", ".", "Directory to write the file to (overrides CASEGUIDE_DOWNLOAD_DIR)")
}
