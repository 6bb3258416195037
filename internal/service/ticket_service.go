package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/az-solve/shop-support/internal/domain"
	"github.com/az-solve/shop-support/internal/events"
	"github.com/az-solve/shop-support/internal/repository"
)

// Result is the uniform outcome shape returned to the boundary for write
// operations: a success flag and a user-facing message, nothing else.
type Result struct {
	Success bool
	Message string
}

const (
	msgAllFieldsRequired = "All fields are required."
	msgSubmitFailed      = "Failed to submit ticket."
	msgSubmitSuccess     = "Your ticket has been submitted successfully. We'll get back to you soon!"
	msgSubmitError       = "An error occurred while submitting your ticket."
)

// SubmitTicketInput describes a ticket submission payload.
type SubmitTicketInput struct {
	CustomerName  string
	CustomerEmail string
	Message       string
}

// TicketService coordinates the support intake pipeline: validate, persist,
// then publish the created event that fans out into notifications. It also
// serves the administrative read path.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher, logger: logger}
}

// Submit validates input, persists a new ticket and schedules notifications.
// The returned result never carries internal causes; those go to the logs.
// Notification outcome is not part of the contract and is never awaited.
func (s *TicketService) Submit(ctx context.Context, input SubmitTicketInput) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while submitting ticket", zap.Any("panic", r))
			result = Result{Success: false, Message: msgSubmitError}
		}
	}()

	name := strings.TrimSpace(input.CustomerName)
	email := strings.TrimSpace(input.CustomerEmail)
	message := strings.TrimSpace(input.Message)

	// Expected user input, not an error condition: no logging, no side effects.
	if name == "" || email == "" || message == "" {
		return Result{Success: false, Message: msgAllFieldsRequired}
	}

	ticket := &domain.SupportTicket{
		ID:            uuid.NewString(),
		CustomerName:  name,
		CustomerEmail: email,
		Message:       message,
		Status:        domain.TicketStatusNew,
		SubmittedOn:   time.Now().UTC(),
	}

	rows, err := s.tickets.Create(ctx, ticket)
	if err != nil {
		s.logger.Error("error creating support ticket", zap.Error(err))
		return Result{Success: false, Message: msgSubmitError}
	}
	if rows <= 0 {
		s.logger.Error("support ticket insert wrote no rows", zap.String("ticket_id", ticket.ID))
		return Result{Success: false, Message: msgSubmitFailed}
	}

	s.logger.Info("support ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("customer_email", ticket.CustomerEmail))

	// Notifications are scheduled only after the write durably succeeded.
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload:  events.TicketCreatedPayload{Ticket: *ticket},
	})

	return Result{Success: true, Message: msgSubmitSuccess}
}

// ListAll returns every ticket, newest submission first.
func (s *TicketService) ListAll(ctx context.Context) ([]domain.SupportTicket, error) {
	return s.tickets.GetAll(ctx)
}

// GetByID fetches one ticket. An unknown id is reported as absence, not an error.
func (s *TicketService) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
