package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "NEW"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Display returns the human-readable status text surfaced in views and emails.
func (s TicketStatus) Display() string {
	switch s {
	case TicketStatusNew:
		return "New"
	case TicketStatusInProgress:
		return "In Progress"
	case TicketStatusResolved:
		return "Resolved"
	case TicketStatusClosed:
		return "Closed"
	default:
		return string(s)
	}
}

// SupportTicket is the unit of customer support intake.
// SubmittedOn is server-assigned, never trusted from the caller. ResolvedOn is
// set only on transition into a terminal state; no operation here performs one.
type SupportTicket struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Message       string
	Status        TicketStatus
	SubmittedOn   time.Time
	ResolvedOn    *time.Time
}
