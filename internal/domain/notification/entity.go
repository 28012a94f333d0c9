package notification

import (
	"time"
)

// EventType represents a domain event the core emits
type EventType string

const (
	EventLeaveDecided      EventType = "leave_decided"
	EventTimesheetApproved EventType = "timesheet_approved"
	EventPayStubGenerated  EventType = "pay_stub_generated"
)

// Event records a domain event for external subscribers. Delivery is
// best-effort; the originating operation never waits on it.
type Event struct {
	ID         string
	Type       EventType
	EmployeeID string
	ActorID    *string
	SubjectID  string // id of the request/timesheet/stub the event is about
	Payload    map[string]interface{}
	CreatedAt  time.Time
}
