package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/az-solve/shop-support/internal/domain"
)

const ticketListKey = "support_tickets:all"

// cachedTicketRepository fronts the admin listing with a short-lived Redis
// cache. Any cache error falls through to the underlying store; the cache is
// never load-bearing.
type cachedTicketRepository struct {
	inner  TicketRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTicketRepository decorates a repository with Redis list caching.
func NewCachedTicketRepository(inner TicketRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) TicketRepository {
	if client == nil || ttl <= 0 {
		return inner
	}
	return &cachedTicketRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (r *cachedTicketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) (int64, error) {
	rows, err := r.inner.Create(ctx, ticket)
	if err == nil && rows > 0 {
		if delErr := r.client.Del(ctx, ticketListKey).Err(); delErr != nil {
			r.logger.Debug("ticket list cache invalidation failed", zap.Error(delErr))
		}
	}
	return rows, err
}

func (r *cachedTicketRepository) GetAll(ctx context.Context) ([]domain.SupportTicket, error) {
	if payload, err := r.client.Get(ctx, ticketListKey).Bytes(); err == nil {
		var tickets []domain.SupportTicket
		if err := json.Unmarshal(payload, &tickets); err == nil {
			return tickets, nil
		}
		r.logger.Debug("discarding undecodable ticket list cache entry")
	}

	tickets, err := r.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tickets); err == nil {
		if setErr := r.client.Set(ctx, ticketListKey, payload, r.ttl).Err(); setErr != nil {
			r.logger.Debug("ticket list cache write failed", zap.Error(setErr))
		}
	}
	return tickets, nil
}

func (r *cachedTicketRepository) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	return r.inner.GetByID(ctx, id)
}
