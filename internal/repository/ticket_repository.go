package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/az-solve/shop-support/internal/domain"
)

// TicketRepository encapsulates support ticket persistence.
// Create reports the number of rows written so callers can detect a silent
// no-op insert; GetByID returns pgx.ErrNoRows for unknown identifiers.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.SupportTicket) (int64, error)
	GetAll(ctx context.Context) ([]domain.SupportTicket, error)
	GetByID(ctx context.Context, id string) (*domain.SupportTicket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the Postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) (int64, error) {
	const query = `
        INSERT INTO support_tickets (id, customer_name, customer_email, message, status, submitted_on, resolved_on)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.CustomerName,
		ticket.CustomerEmail,
		ticket.Message,
		ticket.Status,
		ticket.SubmittedOn,
		ticket.ResolvedOn,
	)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *ticketRepository) GetAll(ctx context.Context) ([]domain.SupportTicket, error) {
	const query = `
        SELECT id, customer_name, customer_email, message, status, submitted_on, resolved_on
        FROM support_tickets
        ORDER BY submitted_on DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	const query = `
        SELECT id, customer_name, customer_email, message, status, submitted_on, resolved_on
        FROM support_tickets WHERE id=$1`
	var ticket domain.SupportTicket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.CustomerName,
		&ticket.CustomerEmail,
		&ticket.Message,
		&ticket.Status,
		&ticket.SubmittedOn,
		&ticket.ResolvedOn,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.SupportTicket, error) {
	var result []domain.SupportTicket
	for rows.Next() {
		var ticket domain.SupportTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.CustomerName,
			&ticket.CustomerEmail,
			&ticket.Message,
			&ticket.Status,
			&ticket.SubmittedOn,
			&ticket.ResolvedOn,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
