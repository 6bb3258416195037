package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/az-solve/shop-support/internal/domain"
	"github.com/az-solve/shop-support/internal/events"
)

// --- Mocks ---

// MockTicketRepository is a mock implementation of repository.TicketRepository.
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.SupportTicket) (int64, error) {
	args := m.Called(ctx, ticket)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) GetAll(ctx context.Context) ([]domain.SupportTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupportTicket), args.Error(1)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*domain.SupportTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

// panickingRepository simulates an unexpected fault below the service boundary.
type panickingRepository struct{}

func (panickingRepository) Create(context.Context, *domain.SupportTicket) (int64, error) {
	panic("store exploded")
}
func (panickingRepository) GetAll(context.Context) ([]domain.SupportTicket, error) { return nil, nil }
func (panickingRepository) GetByID(context.Context, string) (*domain.SupportTicket, error) {
	return nil, nil
}

func newCapturingDispatcher() (events.Dispatcher, *[]events.Event) {
	dispatcher := events.NewInMemoryDispatcher()
	captured := &[]events.Event{}
	dispatcher.Subscribe(events.EventTicketCreated, func(ctx context.Context, event events.Event) error {
		*captured = append(*captured, event)
		return nil
	})
	return dispatcher, captured
}

// --- Tests ---

func TestSubmit_BlankFieldsRejectedWithoutSideEffects(t *testing.T) {
	tests := []struct {
		name  string
		input SubmitTicketInput
	}{
		{"empty name", SubmitTicketInput{CustomerName: "", CustomerEmail: "a@b.com", Message: "help me please"}},
		{"whitespace name", SubmitTicketInput{CustomerName: "   ", CustomerEmail: "a@b.com", Message: "help me please"}},
		{"empty email", SubmitTicketInput{CustomerName: "Jane", CustomerEmail: "", Message: "help me please"}},
		{"whitespace email", SubmitTicketInput{CustomerName: "Jane", CustomerEmail: "\t ", Message: "help me please"}},
		{"empty message", SubmitTicketInput{CustomerName: "Jane", CustomerEmail: "a@b.com", Message: ""}},
		{"whitespace message", SubmitTicketInput{CustomerName: "Jane", CustomerEmail: "a@b.com", Message: "  \n "}},
		{"all blank", SubmitTicketInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTicketRepository)
			dispatcher, captured := newCapturingDispatcher()
			svc := NewTicketService(repo, dispatcher, zap.NewNop())

			result := svc.Submit(context.Background(), tt.input)

			assert.False(t, result.Success)
			assert.Equal(t, "All fields are required.", result.Message)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			assert.Empty(t, *captured)
		})
	}
}

func TestSubmit_PersistsNewTicketAndPublishes(t *testing.T) {
	repo := new(MockTicketRepository)
	dispatcher, captured := newCapturingDispatcher()
	svc := NewTicketService(repo, dispatcher, zap.NewNop())

	var created *domain.SupportTicket
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.SupportTicket")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.SupportTicket)
		}).
		Return(int64(1), nil)

	before := time.Now().UTC()
	result := svc.Submit(context.Background(), SubmitTicketInput{
		CustomerName:  "  Jane Doe  ",
		CustomerEmail: " jane@example.com ",
		Message:       " My order never arrived, please help. ",
	})
	after := time.Now().UTC()

	assert.True(t, result.Success)
	assert.Equal(t, "Your ticket has been submitted successfully. We'll get back to you soon!", result.Message)

	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Jane Doe", created.CustomerName)
	assert.Equal(t, "jane@example.com", created.CustomerEmail)
	assert.Equal(t, "My order never arrived, please help.", created.Message)
	assert.Equal(t, domain.TicketStatusNew, created.Status)
	assert.Nil(t, created.ResolvedOn)
	assert.False(t, created.SubmittedOn.Before(before))
	assert.False(t, created.SubmittedOn.After(after))

	require.Len(t, *captured, 1)
	event := (*captured)[0]
	assert.Equal(t, events.EventTicketCreated, event.Type)
	assert.Equal(t, created.ID, event.TicketID)
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	require.True(t, ok)
	assert.Equal(t, *created, payload.Ticket)
}

func TestSubmit_NoRowsWritten(t *testing.T) {
	repo := new(MockTicketRepository)
	dispatcher, captured := newCapturingDispatcher()
	svc := NewTicketService(repo, dispatcher, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), nil)

	result := svc.Submit(context.Background(), SubmitTicketInput{
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		Message:       "still waiting on my refund",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "Failed to submit ticket.", result.Message)
	assert.Empty(t, *captured, "no notification may be scheduled without a durable write")
}

func TestSubmit_StoreErrorBecomesGenericFailure(t *testing.T) {
	repo := new(MockTicketRepository)
	dispatcher, captured := newCapturingDispatcher()
	svc := NewTicketService(repo, dispatcher, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	result := svc.Submit(context.Background(), SubmitTicketInput{
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		Message:       "still waiting on my refund",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "An error occurred while submitting your ticket.", result.Message)
	assert.Empty(t, *captured)
}

func TestSubmit_PanicBecomesGenericFailure(t *testing.T) {
	svc := NewTicketService(panickingRepository{}, nil, zap.NewNop())

	result := svc.Submit(context.Background(), SubmitTicketInput{
		CustomerName:  "Jane",
		CustomerEmail: "jane@example.com",
		Message:       "still waiting on my refund",
	})

	assert.False(t, result.Success)
	assert.Equal(t, "An error occurred while submitting your ticket.", result.Message)
}

func TestListAll_ReturnsNewestFirst(t *testing.T) {
	repo := new(MockTicketRepository)
	svc := NewTicketService(repo, nil, zap.NewNop())

	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	// The repository orders by submitted_on descending.
	repo.On("GetAll", mock.Anything).Return([]domain.SupportTicket{
		{ID: "c", SubmittedOn: t3},
		{ID: "b", SubmittedOn: t2},
		{ID: "a", SubmittedOn: t1},
	}, nil)

	tickets, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{tickets[0].ID, tickets[1].ID, tickets[2].ID})
	assert.True(t, tickets[0].SubmittedOn.After(tickets[1].SubmittedOn))
	assert.True(t, tickets[1].SubmittedOn.After(tickets[2].SubmittedOn))
}

func TestGetByID_UnknownIsAbsenceNotError(t *testing.T) {
	repo := new(MockTicketRepository)
	svc := NewTicketService(repo, nil, zap.NewNop())

	repo.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)

	ticket, err := svc.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, ticket)
}

func TestGetByID_Found(t *testing.T) {
	repo := new(MockTicketRepository)
	svc := NewTicketService(repo, nil, zap.NewNop())

	want := &domain.SupportTicket{ID: "t-1", CustomerName: "Jane", Status: domain.TicketStatusNew}
	repo.On("GetByID", mock.Anything, "t-1").Return(want, nil)

	ticket, err := svc.GetByID(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, want, ticket)
}
