package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/az-solve/shop-support/internal/config"
	"github.com/az-solve/shop-support/internal/events"
	"github.com/az-solve/shop-support/internal/worker"
)

// NotificationService turns ticket events into queued email deliveries: one
// confirmation to the customer, one alert to the support inbox. The two jobs
// are independent of each other and of the request that created the ticket.
type NotificationService struct {
	dispatcher events.Dispatcher
	queue      worker.Queue
	logger     *zap.Logger
	cfg        config.SupportConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, queue worker.Queue, logger *zap.Logger, cfg config.SupportConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		queue:      queue,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected ticket_created payload", zap.String("event_id", event.ID))
		return nil
	}
	ticket := payload.Ticket

	n.queue.Enqueue(worker.MailJob{
		Recipient: ticket.CustomerEmail,
		Subject:   fmt.Sprintf("Support Ticket Received - %s", n.cfg.StoreName),
		Body:      RenderCustomerConfirmation(ticket, n.cfg.StoreName, n.cfg.TeamInbox),
	})
	n.queue.Enqueue(worker.MailJob{
		Recipient: n.cfg.TeamInbox,
		Subject:   fmt.Sprintf("New Support Ticket #%s", ticket.ID),
		Body:      RenderSupportAlert(ticket, n.cfg.StoreName, n.cfg.AdminBaseURL),
	})

	n.logger.Info("ticket notifications scheduled",
		zap.String("ticket_id", ticket.ID),
		zap.String("customer_email", ticket.CustomerEmail),
		zap.String("team_inbox", n.cfg.TeamInbox))
	return nil
}
