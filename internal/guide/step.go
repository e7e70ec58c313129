package guide

import (
	"fmt"
	"math/bits"
	"strings"
)

// MainStep is one of the canonical stages of the guide. The integer value is
// the step's position in the flow.
type MainStep int

const (
	MainIntro MainStep = iota
	MainStep1
	MainStep2
	MainStep3
	MainStep4
	MainStep5
	MainStep6

	numMainSteps = int(MainStep6) + 1
)

// MainSteps returns all main steps in display order.
func MainSteps() []MainStep {
	return []MainStep{
		MainIntro,
		MainStep1,
		MainStep2,
		MainStep3,
		MainStep4,
		MainStep5,
		MainStep6,
	}
}

// NumMainSteps is the number of canonical steps.
func NumMainSteps() int { return numMainSteps }

// Step returns the StepID naming this main step.
func (m MainStep) Step() StepID {
	switch m {
	case MainIntro:
		return StepIntro
	case MainStep1:
		return Step1
	case MainStep2:
		return Step2
	case MainStep3:
		return Step3
	case MainStep4:
		return Step4
	case MainStep5:
		return Step5
	case MainStep6:
		return Step6
	default:
		return StepNone
	}
}

func (m MainStep) String() string {
	if s := m.Step(); s != StepNone {
		return s.String()
	}
	return fmt.Sprintf("MainStep(%d)", int(m))
}

// Label returns the short marker label ("Intro", "1" .. "6").
func (m MainStep) Label() string {
	if m == MainIntro {
		return "Intro"
	}
	return fmt.Sprintf("%d", int(m))
}

// IsDecisionPoint reports whether the user picks a branch at this step.
func (m MainStep) IsDecisionPoint() bool {
	return m == MainStep2 || m == MainStep3 || m == MainStep4
}

// StepID identifies a concrete, displayable step. The zero value StepNone
// means "unset" and is used for unrecorded branch choices.
type StepID int

const (
	StepNone StepID = iota
	StepIntro
	Step1
	Step2
	Step2A
	Step2B
	Step3
	Step3A
	Step3B
	Step3C
	Step3D
	Step4
	Step4A
	Step4B
	Step4C
	Step5
	Step6
	StepCompletion
)

var stepNames = map[StepID]string{
	StepIntro:      "intro",
	Step1:          "step1",
	Step2:          "step2",
	Step2A:         "step2a",
	Step2B:         "step2b",
	Step3:          "step3",
	Step3A:         "step3a",
	Step3B:         "step3b",
	Step3C:         "step3c",
	Step3D:         "step3d",
	Step4:          "step4",
	Step4A:         "step4a",
	Step4B:         "step4b",
	Step4C:         "step4c",
	Step5:          "step5",
	Step6:          "step6",
	StepCompletion: "completion",
}

var stepsByName = func() map[string]StepID {
	m := make(map[string]StepID, len(stepNames))
	for id, name := range stepNames {
		m[name] = id
	}
	return m
}()

// variantOwner maps each branch variant to its decision point.
var variantOwner = map[StepID]MainStep{
	Step2A: MainStep2,
	Step2B: MainStep2,
	Step3A: MainStep3,
	Step3B: MainStep3,
	Step3C: MainStep3,
	Step3D: MainStep3,
	Step4A: MainStep4,
	Step4B: MainStep4,
	Step4C: MainStep4,
}

// adventureChoices maps a step-4 variant to the step-3 choice it implies.
// step3d (a rough draft) shares step4c with step3c.
var adventureChoices = map[StepID]StepID{
	Step4A: Step3A,
	Step4B: Step3B,
	Step4C: Step3C,
}

func (s StepID) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	if s == StepNone {
		return "unset"
	}
	return fmt.Sprintf("StepID(%d)", int(s))
}

// ParseStepID resolves a canonical step id such as "step2a".
func ParseStepID(s string) (StepID, error) {
	id, ok := stepsByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return StepNone, fmt.Errorf("%w: %q", ErrUnknownStep, s)
	}
	return id, nil
}

// AllSteps returns every step in the universe in flow order.
func AllSteps() []StepID {
	steps := make([]StepID, 0, len(stepNames))
	for id := StepIntro; id <= StepCompletion; id++ {
		steps = append(steps, id)
	}
	return steps
}

// Valid reports whether s is part of the step universe.
func (s StepID) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// IsVariant reports whether s is a branch variant of some decision point.
func (s StepID) IsVariant() bool {
	_, ok := variantOwner[s]
	return ok
}

// IsMain reports whether s names one of the canonical main steps.
func (s StepID) IsMain() bool {
	switch s {
	case StepIntro, Step1, Step2, Step3, Step4, Step5, Step6:
		return true
	}
	return false
}

// Owner returns the main step that s belongs to. Main steps own themselves;
// StepCompletion and StepNone have no owner and report false.
func Owner(s StepID) (MainStep, bool) {
	if m, ok := variantOwner[s]; ok {
		return m, true
	}
	switch s {
	case StepIntro:
		return MainIntro, true
	case Step1:
		return MainStep1, true
	case Step2:
		return MainStep2, true
	case Step3:
		return MainStep3, true
	case Step4:
		return MainStep4, true
	case Step5:
		return MainStep5, true
	case Step6:
		return MainStep6, true
	}
	return 0, false
}

// order places s on the progress axis. Steps without an owner, the
// completion pseudo-step included, are off the axis and report -1.
func order(s StepID) int {
	if m, ok := Owner(s); ok {
		return int(m)
	}
	return -1
}

// Variants returns the branch variants recorded at a decision point.
func Variants(m MainStep) []StepID {
	var out []StepID
	for _, s := range AllSteps() {
		if owner, ok := variantOwner[s]; ok && owner == m {
			out = append(out, s)
		}
	}
	return out
}

// AdventureChoice returns the step-3 choice implied by a step-4 variant, or
// StepNone if v is not one.
func AdventureChoice(v StepID) StepID {
	return adventureChoices[v]
}

// Predecessor returns the step that back-navigation from s lands on. Step 5
// returns to whichever step-4 variant the user chose.
func Predecessor(s StepID, path Path) StepID {
	switch s {
	case Step1:
		return StepIntro
	case Step2:
		return Step1
	case Step2A, Step2B, Step3, Step3A, Step3B, Step3C, Step3D:
		return Step2
	case Step4, Step4A, Step4B, Step4C:
		return Step3
	case Step5:
		if path.Step4 != StepNone {
			return path.Step4
		}
		return Step4
	case Step6:
		return Step5
	default:
		return StepIntro
	}
}

// StepSet is a set of main steps.
type StepSet uint16

// NewStepSet returns a set holding the given steps.
func NewStepSet(steps ...MainStep) StepSet {
	var s StepSet
	for _, m := range steps {
		s = s.Add(m)
	}
	return s
}

// Add returns s with m included.
func (s StepSet) Add(m MainStep) StepSet {
	if m < 0 || int(m) >= numMainSteps {
		return s
	}
	return s | 1<<uint(m)
}

// Has reports whether m is in the set.
func (s StepSet) Has(m MainStep) bool {
	if m < 0 || int(m) >= numMainSteps {
		return false
	}
	return s&(1<<uint(m)) != 0
}

// Union returns the steps in either set.
func (s StepSet) Union(o StepSet) StepSet { return s | o }

// Contains reports whether every step of o is also in s.
func (s StepSet) Contains(o StepSet) bool { return s&o == o }

// Len returns the number of steps in the set.
func (s StepSet) Len() int { return bits.OnesCount16(uint16(s)) }

// Steps returns the members in flow order.
func (s StepSet) Steps() []MainStep {
	var out []MainStep
	for _, m := range MainSteps() {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (s StepSet) String() string {
	names := make([]string, 0, s.Len())
	for _, m := range s.Steps() {
		names = append(names, m.String())
	}
	return "{" + strings.Join(names, ", ") + "}"
}
