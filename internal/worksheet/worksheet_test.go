package worksheet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requiredAnswers() Answers {
	return Answers{
		"overall-story":     "A furniture brand replatformed in six weeks.",
		"describe-client":   "Oak & Pine sells handmade tables.",
		"describe-partner":  "We are a three-person agency.",
		"client-challenges": "Slow checkout.",
		"solution-value":    "Faster store, fewer plugins.",
		"results":           "Checkout went from 9s to 2s.",
		"success-metrics":   "+18% conversion",
	}
}

func TestValidate_ListsMissingRequired(t *testing.T) {
	a := requiredAnswers()
	a["results"] = "   "
	delete(a, "success-metrics")

	err := Validate(a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequired))

	var missing *MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"results", "success-metrics"}, missing.Keys)
}

func TestValidate_OptionalFieldsMayBeBlank(t *testing.T) {
	assert.NoError(t, Validate(requiredAnswers()))
}

func TestFormat_SkipsBlankOptionalFields(t *testing.T) {
	a := requiredAnswers()
	a["solution-quote"] = "  \"We finally sleep at night.\"  "

	out, err := Format(a)
	require.NoError(t, err)

	want := "CASE STUDY INFORMATION\n\n" +
		"OVERALL STORY:\nA furniture brand replatformed in six weeks.\n\n" +
		"ABOUT THE CLIENT:\nOak & Pine sells handmade tables.\n\n" +
		"ABOUT THE PARTNER:\nWe are a three-person agency.\n\n" +
		"CLIENT'S CHALLENGES:\nSlow checkout.\n\n" +
		"VALUE OF THE NEW SOLUTION:\nFaster store, fewer plugins.\n\n" +
		"QUOTE ABOUT SOLUTION:\n\"We finally sleep at night.\"\n\n" +
		"RESULTS OF THE NEW SOLUTION:\nCheckout went from 9s to 2s.\n\n" +
		"SUCCESS METRICS:\n+18% conversion\n\n"
	assert.Equal(t, want, out)
}

func TestFormat_RejectsIncompleteAnswers(t *testing.T) {
	out, err := Format(Answers{"overall-story": "only this"})
	assert.ErrorIs(t, err, ErrMissingRequired)
	assert.Empty(t, out)
}

func TestFields_RequiredCount(t *testing.T) {
	var required int
	for _, f := range Fields() {
		if f.Required {
			required++
		}
	}
	assert.Equal(t, 7, required)
	assert.Len(t, Fields(), 11)
}
