// Package content loads the guide's step text, prompts and buttons.
//
// The built-in guide is embedded in the binary. A guide file on disk can
// replace it; it is validated against the same JSON schema and the same
// semantic checks before it is used.
package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/caseguide/internal/guide"
)

var (
	//go:embed guide.yaml
	defaultGuide []byte

	//go:embed guide.schema.json
	schemaJSON []byte

	//go:embed interview_questions.txt
	interviewQuestions string
)

// InterviewQuestions returns the downloadable merchant interview guide.
func InterviewQuestions() string {
	return interviewQuestions
}

// ActionKind says what pressing a button does.
type ActionKind string

const (
	ActionNext      ActionKind = "next"
	ActionBack      ActionKind = "back"
	ActionBranch    ActionKind = "branch"
	ActionAdventure ActionKind = "adventure"
	ActionFinish    ActionKind = "finish"
	ActionReset     ActionKind = "reset"
	ActionWorksheet ActionKind = "worksheet"
	ActionDownload  ActionKind = "download"
)

// Action is a button on a step.
type Action struct {
	Label   string     `yaml:"label"`
	Kind    ActionKind `yaml:"kind"`
	Target  string     `yaml:"target,omitempty"`
	Primary bool       `yaml:"primary,omitempty"`

	// Step is Target parsed. StepNone for kinds without a target.
	Step guide.StepID `yaml:"-"`
}

// Text is a titled block of markdown.
type Text struct {
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Prompt is text meant to be copied into the user's AI tool.
type Prompt struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Step is the content shown while a step is current.
type Step struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Body     string   `yaml:"body"`
	Sidebar  *Text    `yaml:"sidebar,omitempty"`
	Sections []Text   `yaml:"sections,omitempty"`
	Prompts  []Prompt `yaml:"prompts,omitempty"`
	Actions  []Action `yaml:"actions,omitempty"`

	StepID guide.StepID `yaml:"-"`
}

// Primary returns the step's primary action, if it has one.
func (s *Step) Primary() (Action, bool) {
	for _, a := range s.Actions {
		if a.Primary {
			return a, true
		}
	}
	return Action{}, false
}

// Guide is a complete, validated set of step content.
type Guide struct {
	Version int    `yaml:"version"`
	Title   string `yaml:"title"`
	Steps   []Step `yaml:"steps"`

	byID map[guide.StepID]*Step
}

// Step returns the content for id. Variants without content of their own
// fall back to their main step's content.
func (g *Guide) Step(id guide.StepID) (*Step, bool) {
	if s, ok := g.byID[id]; ok {
		return s, true
	}
	if owner, ok := guide.Owner(id); ok && id.IsVariant() {
		s, ok := g.byID[owner.Step()]
		return s, ok
	}
	return nil, false
}

// ErrInvalidContent is matched by every validation failure.
var ErrInvalidContent = errors.New("invalid guide content")

// InvalidContentError reports why a guide document was rejected.
type InvalidContentError struct {
	Source string
	Err    error
}

func (e *InvalidContentError) Error() string {
	return fmt.Sprintf("invalid guide content in %s: %v", e.Source, e.Err)
}

func (e *InvalidContentError) Unwrap() error { return e.Err }

func (e *InvalidContentError) Is(target error) bool { return target == ErrInvalidContent }

// Default returns the embedded guide. It panics if the embedded document is
// invalid, which is a build defect.
func Default() *Guide {
	g, err := Parse("built-in guide", defaultGuide)
	if err != nil {
		panic(err)
	}
	return g
}

// Load reads and validates the guide at path.
func Load(path string) (*Guide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read guide content: %w", err)
	}
	return Parse(path, data)
}

// Parse validates data against the guide schema, decodes it and checks
// that its step ids and button targets are consistent.
func Parse(source string, data []byte) (*Guide, error) {
	invalid := func(err error) error {
		return &InvalidContentError{Source: source, Err: err}
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalid(fmt.Errorf("parse yaml: %w", err))
	}

	// The validator wants plain JSON values, so round-trip the YAML tree.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, invalid(fmt.Errorf("convert to json: %w", err))
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, invalid(fmt.Errorf("convert to json: %w", err))
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile guide schema: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, invalid(err)
	}

	var g Guide
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, invalid(fmt.Errorf("decode guide: %w", err))
	}
	if err := g.index(); err != nil {
		return nil, invalid(err)
	}
	return &g, nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		const url = "schema://caseguide/guide.json"
		c := jsonschema.NewCompiler()
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schema, schemaErr = c.Compile(url)
	})
	return schema, schemaErr
}

// required lists the steps that must carry their own content. Step 3
// variants only exist as recorded choices and borrow step 3's text.
var required = []guide.StepID{
	guide.StepIntro,
	guide.Step1,
	guide.Step2, guide.Step2A, guide.Step2B,
	guide.Step3,
	guide.Step4, guide.Step4A, guide.Step4B, guide.Step4C,
	guide.Step5,
	guide.Step6,
	guide.StepCompletion,
}

func (g *Guide) index() error {
	g.byID = make(map[guide.StepID]*Step, len(g.Steps))

	for i := range g.Steps {
		s := &g.Steps[i]
		id, err := guide.ParseStepID(s.ID)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if _, dup := g.byID[id]; dup {
			return fmt.Errorf("step %q defined twice", s.ID)
		}
		s.StepID = id
		g.byID[id] = s

		primaries := 0
		for j := range s.Actions {
			a := &s.Actions[j]
			if a.Primary {
				primaries++
			}
			if err := checkAction(a); err != nil {
				return fmt.Errorf("step %q action %q: %w", s.ID, a.Label, err)
			}
		}
		if primaries > 1 {
			return fmt.Errorf("step %q has %d primary actions", s.ID, primaries)
		}
	}

	for _, id := range required {
		if _, ok := g.byID[id]; !ok {
			return fmt.Errorf("step %q is missing", id)
		}
	}
	return nil
}

func checkAction(a *Action) error {
	if a.Target != "" {
		id, err := guide.ParseStepID(a.Target)
		if err != nil {
			return err
		}
		a.Step = id
	}

	switch a.Kind {
	case ActionNext:
		if a.Step == guide.StepNone {
			return errors.New("next needs a target")
		}
	case ActionBranch:
		owner, ok := guide.Owner(a.Step)
		if !ok || !a.Step.IsVariant() || !owner.IsDecisionPoint() {
			return fmt.Errorf("branch target %q is not a decision variant", a.Target)
		}
	case ActionAdventure:
		if guide.AdventureChoice(a.Step) == guide.StepNone {
			return fmt.Errorf("adventure target %q is not a step 4 variant", a.Target)
		}
	case ActionBack, ActionFinish, ActionReset, ActionWorksheet, ActionDownload:
		if a.Target != "" {
			return fmt.Errorf("%s takes no target", a.Kind)
		}
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}
