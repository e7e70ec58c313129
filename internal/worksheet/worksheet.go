// Package worksheet turns the case study worksheet answers into the text
// block the user pastes into their AI tool.
package worksheet

import (
	"errors"
	"fmt"
	"strings"
)

// Field is one question on the worksheet.
type Field struct {
	Key      string
	Heading  string
	Label    string
	Prompt   string
	Required bool
}

// fields is the worksheet in output order.
var fields = []Field{
	{Key: "overall-story", Heading: "OVERALL STORY", Label: "Overall story", Required: true,
		Prompt: "In two or three sentences, what is the story of this project?"},
	{Key: "describe-client", Heading: "ABOUT THE CLIENT", Label: "About the client", Required: true,
		Prompt: "Who is the merchant? What do they sell and who are their customers?"},
	{Key: "describe-partner", Heading: "ABOUT THE PARTNER", Label: "About the partner", Required: true,
		Prompt: "Who are you as a partner and what did your team own on this project?"},
	{Key: "client-challenges", Heading: "CLIENT'S CHALLENGES", Label: "Client's challenges", Required: true,
		Prompt: "What was not working before? Why did they decide to change?"},
	{Key: "challenges-quote", Heading: "QUOTE ABOUT CHALLENGES", Label: "Quote about challenges",
		Prompt: "Optional: a merchant quote about the problems they faced."},
	{Key: "solution-value", Heading: "VALUE OF THE NEW SOLUTION", Label: "Value of the new solution", Required: true,
		Prompt: "What did you build or migrate, and why did it matter to the merchant?"},
	{Key: "solution-quote", Heading: "QUOTE ABOUT SOLUTION", Label: "Quote about solution",
		Prompt: "Optional: a merchant quote about the solution."},
	{Key: "results", Heading: "RESULTS OF THE NEW SOLUTION", Label: "Results", Required: true,
		Prompt: "What changed after launch?"},
	{Key: "partnership-outcomes", Heading: "PARTNERSHIP OUTCOMES", Label: "Partnership outcomes",
		Prompt: "Optional: what came out of the relationship itself (retainers, new projects)?"},
	{Key: "results-quote", Heading: "QUOTE ABOUT RESULTS", Label: "Quote about results",
		Prompt: "Optional: a merchant quote about the results."},
	{Key: "success-metrics", Heading: "SUCCESS METRICS", Label: "Success metrics", Required: true,
		Prompt: "Numbers: conversion lift, AOV, savings, site speed, revenue from new channels."},
}

// Fields returns the worksheet questions in output order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Answers maps field keys to the user's text.
type Answers map[string]string

// ErrMissingRequired matches any *MissingFieldsError.
var ErrMissingRequired = errors.New("required worksheet fields are empty")

// MissingFieldsError lists the required fields left blank.
type MissingFieldsError struct {
	Keys []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("please fill out all the main questions before generating the output (missing: %s)",
		strings.Join(e.Keys, ", "))
}

func (e *MissingFieldsError) Is(target error) bool { return target == ErrMissingRequired }

// Validate reports every required field whose answer is blank.
func Validate(a Answers) error {
	var missing []string
	for _, f := range fields {
		if f.Required && strings.TrimSpace(a[f.Key]) == "" {
			missing = append(missing, f.Key)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Keys: missing}
	}
	return nil
}

// Format validates a and renders every non-blank answer under its heading.
func Format(a Answers) (string, error) {
	if err := Validate(a); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("CASE STUDY INFORMATION\n\n")
	for _, f := range fields {
		v := strings.TrimSpace(a[f.Key])
		if v == "" {
			continue
		}
		b.WriteString(f.Heading)
		b.WriteString(":\n")
		b.WriteString(v)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}
