package events

import (
	"time"

	"github.com/az-solve/shop-support/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries the persisted ticket snapshot so subscribers
// never re-read the store.
type TicketCreatedPayload struct {
	Ticket domain.SupportTicket `json:"ticket"`
}
