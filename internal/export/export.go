// Package export writes the guide's downloadable documents to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/caseguide/internal/content"
)

// InterviewQuestionsFile is the file name used for the interview guide.
const InterviewQuestionsFile = "Shopify_Interview_Questions.txt"

// WriteInterviewQuestions writes the interview questions into dir, creating
// it if needed, and returns the path written.
func WriteInterviewQuestions(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	p := filepath.Join(dir, InterviewQuestionsFile)
	if err := os.WriteFile(p, []byte(content.InterviewQuestions()), 0o644); err != nil {
		return "", fmt.Errorf("write interview questions: %w", err)
	}
	return p, nil
}
