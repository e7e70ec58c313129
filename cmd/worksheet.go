package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/caseguide/internal/clip"
	"github.com/abhisek/caseguide/internal/worksheet"
)

var worksheetCmd = &cobra.Command{
	Use:   "worksheet",
	Short: "Fill in the case study worksheet and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		copyOut, _ := cmd.Flags().GetBool("copy")

		fields := worksheet.Fields()
		values := make([]string, len(fields))
		inputs := make([]huh.Field, len(fields))
		for i, f := range fields {
			title := f.Label
			if f.Required {
				title += " *"
			}
			text := huh.NewText().
				Title(title).
				Description(f.Prompt).
				Value(&values[i])
			if f.Required {
				text = text.Validate(requireText)
			}
			inputs[i] = text
		}

		if err := newForm(huh.NewGroup(inputs...)).Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("worksheet form: %w", err)
		}

		answers := make(worksheet.Answers, len(fields))
		for i, f := range fields {
			answers[f.Key] = values[i]
		}
		out, err := worksheet.Format(answers)
		if err != nil {
			return err
		}
		fmt.Print(out)

		if copyOut {
			if err := (clip.System{}).Copy(out); err != nil {
				fmt.Fprintln(os.Stderr, "Copy failed:", err)
				return nil
			}
			fmt.Fprintln(os.Stderr, "Copied!")
		}
		return nil
	},
}

func init() {
	worksheetCmd.Flags().Bool("copy", false, "Copy the result to the clipboard")
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("this question is required")
	}
	return nil
}

// newForm falls back to accessible prompts when stdin is not a terminal.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}
