package domain

import "time"

type EventKind string

const (
	EventStarted       EventKind = "started"
	EventStopped       EventKind = "stopped"
	EventReset         EventKind = "reset"
	EventEditBegun     EventKind = "edit_begun"
	EventEditCommitted EventKind = "edit_committed"
	EventExpired       EventKind = "expired"
)

// Event is one journal record of a countdown transition
type Event struct {
	ID               int64
	SessionID        string
	Kind             EventKind
	RemainingSeconds int64
	Packed           *PackedTime // set for edit commits
	OccurredAt       time.Time
}

// NewEvent creates an event stamped with the current time
func NewEvent(sessionID string, kind EventKind, remaining int64) *Event {
	return &Event{
		SessionID:        sessionID,
		Kind:             kind,
		RemainingSeconds: remaining,
		OccurredAt:       time.Now(),
	}
}

// ShortSessionLen is how many characters of a session id are shown in lists
const ShortSessionLen = 8

// ShortSession returns the leading part of the session id
func (e *Event) ShortSession() string {
	if len(e.SessionID) <= ShortSessionLen {
		return e.SessionID
	}
	return e.SessionID[:ShortSessionLen]
}
