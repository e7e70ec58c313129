package guide

// Path holds the branch chosen at each decision point. StepNone means the
// user has not chosen yet.
type Path struct {
	Step2 StepID
	Step3 StepID
	Step4 StepID
}

// Choice returns the variant recorded for a decision point.
func (p Path) Choice(m MainStep) StepID {
	switch m {
	case MainStep2:
		return p.Step2
	case MainStep3:
		return p.Step3
	case MainStep4:
		return p.Step4
	default:
		return StepNone
	}
}

// record stores v at its decision point. Landing on a step-4 variant also
// fills in the implied step-3 choice when none was made.
func (p *Path) record(v StepID) {
	owner, ok := variantOwner[v]
	if !ok {
		return
	}
	switch owner {
	case MainStep2:
		p.Step2 = v
	case MainStep3:
		p.Step3 = v
	case MainStep4:
		p.Step4 = v
		if p.Step3 == StepNone {
			p.Step3 = AdventureChoice(v)
		}
	}
}

// Progress is the mutable record of where the user is in the guide.
// Only the Navigator mutates it.
type Progress struct {
	// Current is the step being displayed.
	Current StepID

	// Completed holds main steps the user has passed through. It only grows
	// until Reset.
	Completed StepSet

	// Unlocked holds main steps the user may move forward to. It only grows
	// until Reset.
	Unlocked StepSet

	// Path holds the branch chosen at each decision point.
	Path Path
}

// initialUnlocked is the unlocked set of a fresh guide.
var initialUnlocked = NewStepSet(MainIntro, MainStep1)

// NewProgress returns progress positioned at the intro with only the intro
// and step 1 unlocked.
func NewProgress() *Progress {
	p := &Progress{}
	p.reset()
	return p
}

func (p *Progress) reset() {
	*p = Progress{
		Current:  StepIntro,
		Unlocked: initialUnlocked,
	}
}

// CurrentMain returns the main step owning Current. At the completion
// pseudo-step it reports false.
func (p Progress) CurrentMain() (MainStep, bool) {
	return Owner(p.Current)
}

// RecomputeUnlocked returns p.Unlocked plus every main step whose unlock
// condition holds in p. It never drops a step and is idempotent.
func RecomputeUnlocked(p Progress) StepSet {
	unlocked := p.Unlocked.Union(initialUnlocked)
	currentMain, hasMain := p.CurrentMain()

	if p.Completed.Has(MainStep1) || (hasMain && currentMain == MainStep1) {
		unlocked = unlocked.Add(MainStep2)
	}
	if p.Path.Step2 != StepNone {
		unlocked = unlocked.Add(MainStep3)
	}
	if p.Path.Step3 != StepNone {
		unlocked = unlocked.Add(MainStep4)
	}
	if p.Path.Step4 != StepNone {
		unlocked = unlocked.Add(MainStep5)
	}
	if p.Completed.Has(MainStep5) || (hasMain && currentMain == MainStep5) {
		unlocked = unlocked.Add(MainStep6)
	}
	return unlocked
}
