package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/az-solve/shop-support/internal/config"
	"github.com/az-solve/shop-support/internal/domain"
	"github.com/az-solve/shop-support/internal/events"
	"github.com/az-solve/shop-support/internal/worker"
)

type capturingQueue struct {
	jobs []worker.MailJob
}

func (q *capturingQueue) Enqueue(job worker.MailJob) {
	q.jobs = append(q.jobs, job)
}

func supportCfg() config.SupportConfig {
	return config.SupportConfig{
		TeamInbox:    "support@az-solve.com",
		StoreName:    "AzSolve Shop",
		AdminBaseURL: "https://shop.example.com",
	}
}

func TestTicketCreatedSchedulesBothNotifications(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	queue := &capturingQueue{}
	svc := NewNotificationService(dispatcher, queue, zap.NewNop(), supportCfg())
	svc.RegisterHandlers()

	ticket := domain.SupportTicket{
		ID:            "6f1d9f4e-0000-0000-0000-000000000001",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Message:       "My order never arrived, please help.",
		Status:        domain.TicketStatusNew,
		SubmittedOn:   time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC),
	}
	err := dispatcher.Publish(context.Background(), events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload:  events.TicketCreatedPayload{Ticket: ticket},
	})
	require.NoError(t, err)

	require.Len(t, queue.jobs, 2)

	customer := queue.jobs[0]
	assert.Equal(t, "jane@example.com", customer.Recipient)
	assert.Equal(t, "Support Ticket Received - AzSolve Shop", customer.Subject)
	assert.Contains(t, customer.Body, ticket.ID)
	assert.Contains(t, customer.Body, "Jane Doe")

	team := queue.jobs[1]
	assert.Equal(t, "support@az-solve.com", team.Recipient)
	assert.Equal(t, "New Support Ticket #"+ticket.ID, team.Subject)
	assert.Contains(t, team.Body, "jane@example.com")
	assert.Contains(t, team.Body, "https://shop.example.com/admin/tickets/"+ticket.ID)
}

func TestTicketCreatedIgnoresForeignPayloads(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	queue := &capturingQueue{}
	svc := NewNotificationService(dispatcher, queue, zap.NewNop(), supportCfg())
	svc.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:    events.EventTicketCreated,
		Payload: "not a ticket",
	})
	require.NoError(t, err)
	assert.Empty(t, queue.jobs)
}

func TestRenderCustomerConfirmation(t *testing.T) {
	ticket := domain.SupportTicket{
		ID:            "abc-123",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Message:       "My order never arrived, please help.",
		Status:        domain.TicketStatusNew,
		SubmittedOn:   time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC),
	}

	body := RenderCustomerConfirmation(ticket, "AzSolve Shop", "support@az-solve.com")

	assert.Contains(t, body, "#abc-123")
	assert.Contains(t, body, "Dear Jane Doe")
	assert.Contains(t, body, "Mar 14, 2026 09:26 UTC")
	assert.Contains(t, body, "My order never arrived, please help.")
	assert.Contains(t, body, "support@az-solve.com")
}

func TestRenderSupportAlert(t *testing.T) {
	ticket := domain.SupportTicket{
		ID:            "abc-123",
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		Message:       "My order never arrived, please help.",
		Status:        domain.TicketStatusNew,
		SubmittedOn:   time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC),
	}

	body := RenderSupportAlert(ticket, "AzSolve Shop", "https://shop.example.com")

	assert.Contains(t, body, "#abc-123")
	assert.Contains(t, body, "<strong>Status:</strong> New")
	assert.Contains(t, body, "mailto:jane@example.com")
	assert.Contains(t, body, "https://shop.example.com/admin/tickets/abc-123")
}

func TestRenderEscapesCustomerInput(t *testing.T) {
	ticket := domain.SupportTicket{
		ID:            "abc-123",
		CustomerName:  "<script>alert(1)</script>",
		CustomerEmail: "jane@example.com",
		Message:       "contains <b>markup</b>",
		Status:        domain.TicketStatusNew,
		SubmittedOn:   time.Now().UTC(),
	}

	body := RenderCustomerConfirmation(ticket, "AzSolve Shop", "support@az-solve.com")
	assert.False(t, strings.Contains(body, "<script>"))
	assert.Contains(t, body, "&lt;script&gt;")
}
