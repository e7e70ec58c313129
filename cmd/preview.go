package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/caseguide/internal/guide"
	"github.com/abhisek/caseguide/internal/ui/markdown"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render one step's content to stdout",
	Long: `Render a step the way the guide shows it, without starting the TUI.

Useful when editing a content file: combine with --content to check a draft.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("step", "", "Step id, e.g. step2a or completion (required)")
	previewCmd.Flags().Bool("raw", false, "Print the markdown source instead of rendering it")
	_ = previewCmd.MarkFlagRequired("step")
}

func runPreview(cmd *cobra.Command, args []string) error {
	stepVal, _ := cmd.Flags().GetString("step")
	raw, _ := cmd.Flags().GetBool("raw")

	id, err := guide.ParseStepID(stepVal)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	g, err := loadContent(cfg)
	if err != nil {
		return err
	}

	st, ok := g.Step(id)
	if !ok {
		return fmt.Errorf("no content for step %s", id)
	}

	doc := st.Markdown()
	if raw {
		fmt.Print(doc)
		return nil
	}

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	fmt.Println(markdown.New(cfg.MarkdownStyle).Render(doc, width))
	return nil
}
