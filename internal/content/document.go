package content

import (
	"fmt"
	"strings"
)

// Markdown renders the whole step as one markdown document: body, sidebar,
// sections, prompts as code blocks, then the available actions.
func (s *Step) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	if body := strings.TrimSpace(s.Body); body != "" {
		b.WriteString(body)
		b.WriteString("\n\n")
	}

	if s.Sidebar != nil {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Sidebar.Title, strings.TrimSpace(s.Sidebar.Body))
	}
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", sec.Title, strings.TrimSpace(sec.Body))
	}
	for _, p := range s.Prompts {
		fmt.Fprintf(&b, "## %s\n\n```\n%s\n```\n\n", p.Title, strings.TrimSpace(p.Text))
	}

	if len(s.Actions) > 0 {
		b.WriteString("---\n\n")
		for _, a := range s.Actions {
			label := a.Label
			if a.Primary {
				label = "**" + label + "**"
			}
			if a.Target != "" {
				fmt.Fprintf(&b, "- %s → `%s`\n", label, a.Target)
			} else {
				fmt.Fprintf(&b, "- %s\n", label)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
