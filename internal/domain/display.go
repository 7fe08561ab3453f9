package domain

// DisplaySource says which state drives the visible value
type DisplaySource int

const (
	FromClock DisplaySource = iota
	FromBuffer
)

func (s DisplaySource) String() string {
	switch s {
	case FromClock:
		return "clock"
	case FromBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// Display is a render snapshot of the countdown
type Display struct {
	Source    DisplaySource
	Remaining int64
	Buffer    EditText
	Running   bool
	// Progress is the elapsed fraction of the current span, in [0, 1]
	Progress float64
}

// Text returns the string to render for the current source
func (d Display) Text() string {
	if d.Source == FromBuffer {
		return FormatWithUnitLabels(d.Buffer)
	}
	return FormatSeconds(d.Remaining, false)
}

// Overdue reports whether the countdown has run past zero
func (d Display) Overdue() bool {
	return d.Source == FromClock && d.Remaining < 0
}

// Progress returns the elapsed fraction of span, clamped to [0, 1]
func Progress(remaining, span int64) float64 {
	if span <= 0 {
		return 0
	}
	p := float64(span-remaining) / float64(span)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
