package dto

import (
	"time"

	"github.com/az-solve/shop-support/internal/domain"
)

// SubmitTicketRequest payload. Validation mirrors the storefront form rules;
// the service layer re-checks only that fields are non-blank.
type SubmitTicketRequest struct {
	CustomerName  string `json:"customerName" validate:"required,max=100"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	Message       string `json:"message" validate:"required,min=10,max=2000"`
}

// ServiceResult is the uniform write-operation response shape.
type ServiceResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TicketView is the outward ticket projection.
type TicketView struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customerName"`
	CustomerEmail string     `json:"customerEmail"`
	Message       string     `json:"message"`
	Status        string     `json:"status"`
	SubmittedOn   time.Time  `json:"submittedOn"`
	ResolvedOn    *time.Time `json:"resolvedOn,omitempty"`
}

// NewTicketView projects a domain ticket outward. Status is display text; no
// raw persistence fields beyond the projection are exposed.
func NewTicketView(ticket *domain.SupportTicket) TicketView {
	return TicketView{
		ID:            ticket.ID,
		CustomerName:  ticket.CustomerName,
		CustomerEmail: ticket.CustomerEmail,
		Message:       ticket.Message,
		Status:        ticket.Status.Display(),
		SubmittedOn:   ticket.SubmittedOn,
		ResolvedOn:    ticket.ResolvedOn,
	}
}
