package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInterviewQuestions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")

	p, err := WriteInterviewQuestions(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, InterviewQuestionsFile), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "SHOPIFY PARTNER CASE STUDY - INTERVIEW QUESTIONS"))
	assert.Contains(t, string(data), "WHAT'S NEXT & FUN QUESTIONS")
}

func TestWriteInterviewQuestions_Overwrites(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, InterviewQuestionsFile)
	require.NoError(t, os.WriteFile(p, []byte("old"), 0o644))

	_, err := WriteInterviewQuestions(dir)
	require.NoError(t, err)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(data))
}
