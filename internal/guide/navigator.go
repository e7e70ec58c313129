package guide

import (
	"errors"
	"fmt"
	"log/slog"
)

// Op names the navigator operation that produced an event.
type Op string

const (
	OpNavigate  Op = "navigate"
	OpPrevious  Op = "previous"
	OpBranch    Op = "branch"
	OpAdventure Op = "adventure"
	OpReset     Op = "reset"
	OpFinish    Op = "finish"
)

// Event describes the outcome of one navigator call.
type Event struct {
	Op   Op
	From StepID
	To   StepID

	// Rejected and Locked are set when the call failed with a
	// *LockedStepError.
	Rejected bool
	Locked   MainStep

	Projection Projection
}

// Observer is notified after every navigator call that reached the
// transition stage. Observers must not call back into the Navigator; such
// calls fail with ErrNestedTransition.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// Result is returned by a successful navigator call.
type Result struct {
	Current    StepID
	Unlocked   StepSet
	Projection Projection
}

// Navigator validates and performs transitions on a Progress record.
type Navigator struct {
	progress  *Progress
	observers []Observer
	logger    *slog.Logger
	busy      bool
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(n *Navigator) {
		if o != nil {
			n.observers = append(n.observers, o)
		}
	}
}

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewNavigator returns a Navigator driving p. A nil p starts a fresh guide.
func NewNavigator(p *Progress, opts ...Option) *Navigator {
	if p == nil {
		p = NewProgress()
	}
	n := &Navigator{
		progress: p,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.progress.Unlocked = RecomputeUnlocked(*n.progress)
	return n
}

// Progress returns a copy of the current progress.
func (n *Navigator) Progress() Progress {
	return *n.progress
}

// Projection returns the progress indicator for the current state.
func (n *Navigator) Projection() Projection {
	return Project(*n.progress)
}

// Navigate moves to target the way a step marker does: a decision point the
// user already answered resolves to the chosen variant.
func (n *Navigator) Navigate(target StepID) (Result, error) {
	if !target.Valid() {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownStep, target)
	}
	return n.run(OpNavigate, func() error {
		return n.transition(n.resolve(target))
	})
}

// JumpTo is the step-marker form of Navigate. A marker for a locked main
// step is refused even when it lies behind the current step, which Navigate
// would allow as a backward move.
func (n *Navigator) JumpTo(m MainStep) (Result, error) {
	target := m.Step()
	if target == StepNone {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownStep, m)
	}
	return n.run(OpNavigate, func() error {
		if !n.progress.Unlocked.Has(m) {
			return &LockedStepError{Step: m}
		}
		return n.transition(n.resolve(target))
	})
}

// Previous moves back one step. Backward moves are never lock-checked, so
// this only fails on a nested call.
func (n *Navigator) Previous() (Result, error) {
	return n.run(OpPrevious, func() error {
		return n.transition(Predecessor(n.progress.Current, n.progress.Path))
	})
}

// SelectBranch records variant as the choice at a decision point and moves
// to it. The choice is recorded and unlocks recomputed before the lock
// check, so a *LockedStepError leaves the new path and unlocks in place.
// Unlike Navigate, a refused call is not free of side effects.
func (n *Navigator) SelectBranch(point MainStep, variant StepID) (Result, error) {
	owner, ok := variantOwner[variant]
	if !ok || owner != point {
		return Result{}, fmt.Errorf("%w: %s is not a branch of %s", ErrUnknownStep, variant, point)
	}
	return n.run(OpBranch, func() error {
		n.progress.Path.record(variant)
		n.progress.Unlocked = RecomputeUnlocked(*n.progress)
		return n.transition(variant)
	})
}

// SelectAdventure answers the step-3 and step-4 decision points at once and
// moves straight to the step-4 variant.
func (n *Navigator) SelectAdventure(variant StepID) (Result, error) {
	implied := AdventureChoice(variant)
	if implied == StepNone {
		return Result{}, fmt.Errorf("%w: %s is not a step 4 variant", ErrUnknownStep, variant)
	}
	return n.run(OpAdventure, func() error {
		n.progress.Path.Step3 = implied
		n.progress.Path.Step4 = variant
		n.progress.Unlocked = RecomputeUnlocked(*n.progress)
		return n.transition(variant)
	})
}

// Reset restores the initial progress and returns to the intro.
func (n *Navigator) Reset() (Result, error) {
	return n.run(OpReset, func() error {
		n.progress.reset()
		return n.transition(StepIntro)
	})
}

// Finish marks step 6 completed and moves to the completion pseudo-step.
func (n *Navigator) Finish() (Result, error) {
	return n.run(OpFinish, func() error {
		n.progress.Completed = n.progress.Completed.Add(MainStep6)
		return n.transition(StepCompletion)
	})
}

// resolve maps a bare decision point to the variant already chosen there.
// Step 3 has no screens of its own per choice, so it is never resolved.
func (n *Navigator) resolve(target StepID) StepID {
	switch target {
	case Step2:
		if v := n.progress.Path.Step2; v != StepNone {
			return v
		}
	case Step4:
		if v := n.progress.Path.Step4; v != StepNone {
			return v
		}
	}
	return target
}

// transition applies the lock check and, on success, moves to target.
func (n *Navigator) transition(target StepID) error {
	p := n.progress

	// Completion is only entered through Finish and never lock-checked.
	// Leaving it is always a forward move, so every exit is checked.
	if target != StepCompletion {
		targetMain, _ := Owner(target)
		currentMain, hasCurrent := Owner(p.Current)
		isBackward := hasCurrent && targetMain < currentMain
		sameStep := hasCurrent && targetMain == currentMain
		if !isBackward && !sameStep && !p.Unlocked.Has(targetMain) {
			return &LockedStepError{Step: targetMain}
		}
	}

	// The step being left is marked completed even on a backward move.
	if p.Current != StepIntro {
		if m, ok := Owner(p.Current); ok {
			p.Completed = p.Completed.Add(m)
		}
	}
	p.Current = target
	p.Path.record(target)
	p.Unlocked = RecomputeUnlocked(*p)
	return nil
}

// run serialises navigator calls and notifies observers once fn finishes.
func (n *Navigator) run(op Op, fn func() error) (Result, error) {
	if n.busy {
		return Result{}, ErrNestedTransition
	}
	n.busy = true
	defer func() { n.busy = false }()

	from := n.progress.Current
	err := fn()

	ev := Event{
		Op:         op,
		From:       from,
		To:         n.progress.Current,
		Projection: Project(*n.progress),
	}
	var locked *LockedStepError
	if errors.As(err, &locked) {
		ev.Rejected = true
		ev.Locked = locked.Step
		n.logger.Info("Step locked.", "op", op, "from", from, "locked", locked.Step)
	} else if err == nil {
		n.logger.Debug("Step changed.", "op", op, "from", from, "to", ev.To, "unlocked", n.progress.Unlocked)
	}
	for _, o := range n.observers {
		o.Observe(ev)
	}

	if err != nil {
		return Result{}, err
	}
	return Result{
		Current:    n.progress.Current,
		Unlocked:   n.progress.Unlocked,
		Projection: ev.Projection,
	}, nil
}
