package guide

import "math"

// Status is the marker state of a main step in the progress indicator.
type Status int

const (
	StatusAvailable Status = iota // Unlocked, not visited
	StatusActive                  // The step currently displayed
	StatusCompleted               // Passed through or behind the current step
	StatusLocked                  // Not yet unlocked
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Marker is the projection of one main step.
type Marker struct {
	Step   MainStep
	Status Status

	// Locked is kept apart from Status: a step can be painted completed and
	// still be locked for forward navigation.
	Locked bool
}

// Projection is the read-only view of Progress the renderer paints from.
type Projection struct {
	Current StepID
	Markers []Marker

	// Percent is the position of the current main step, 0-100. It is 0
	// when the current step is off the axis (completion).
	Percent int
}

// Project derives marker states and the progress percentage from p. On the
// completion step no marker is active and only steps in p.Completed are
// painted completed.
func Project(p Progress) Projection {
	cur := order(p.Current)

	markers := make([]Marker, 0, numMainSteps)
	for _, m := range MainSteps() {
		mk := Marker{Step: m, Locked: !p.Unlocked.Has(m)}
		switch {
		case int(m) == cur:
			mk.Status = StatusActive
		case p.Completed.Has(m) || int(m) < cur:
			mk.Status = StatusCompleted
		case mk.Locked:
			mk.Status = StatusLocked
		default:
			mk.Status = StatusAvailable
		}
		markers = append(markers, mk)
	}

	percent := 0
	if cur >= 0 {
		percent = int(math.Round(float64(cur+1) / float64(numMainSteps) * 100))
	}

	return Projection{
		Current: p.Current,
		Markers: markers,
		Percent: percent,
	}
}

// Marker returns the projected marker for m.
func (pr Projection) Marker(m MainStep) Marker {
	for _, mk := range pr.Markers {
		if mk.Step == m {
			return mk
		}
	}
	return Marker{Step: m, Status: StatusLocked, Locked: true}
}
