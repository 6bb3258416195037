package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/az-solve/shop-support/internal/mailer"
	"github.com/az-solve/shop-support/internal/observability"
)

// MailJob describes one outbound email delivery attempt.
type MailJob struct {
	Recipient string
	Subject   string
	Body      string
}

// Queue accepts mail jobs for asynchronous delivery.
type Queue interface {
	Enqueue(job MailJob)
}

// NotificationWorker delivers mail jobs from a bounded queue. Each job runs
// independently: a failed or slow delivery never blocks, delays, or alters
// another job, and no outcome propagates back to the producer.
type NotificationWorker struct {
	mailer  mailer.Mailer
	jobs    chan MailJob
	workers int
	logger  *zap.Logger
	metrics *observability.Metrics
	wg      sync.WaitGroup
}

// NewNotificationWorker constructs the worker pool.
func NewNotificationWorker(m mailer.Mailer, workers, queueSize int, logger *zap.Logger, metrics *observability.Metrics) *NotificationWorker {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &NotificationWorker{
		mailer:  m,
		jobs:    make(chan MailJob, queueSize),
		workers: workers,
		logger:  logger,
		metrics: metrics,
	}
}

// Start launches the delivery goroutines.
func (w *NotificationWorker) Start() {
	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.run()
	}
}

// Enqueue schedules a delivery attempt without blocking the caller. Delivery
// is best-effort; when the queue is full the job is dropped with an error log.
func (w *NotificationWorker) Enqueue(job MailJob) {
	select {
	case w.jobs <- job:
	default:
		w.logger.Error("notification queue full, dropping job",
			zap.String("recipient", job.Recipient),
			zap.String("subject", job.Subject))
		w.metrics.RecordEmail(false)
	}
}

// Stop closes the queue and waits for in-flight deliveries to drain.
func (w *NotificationWorker) Stop() {
	close(w.jobs)
	w.wg.Wait()
}

func (w *NotificationWorker) run() {
	defer w.wg.Done()
	for job := range w.jobs {
		w.deliver(job)
	}
}

// deliver uses a background context: a request that has already returned must
// not cancel its notifications. The mailer enforces its own hard timeout.
func (w *NotificationWorker) deliver(job MailJob) {
	if err := w.mailer.Send(context.Background(), job.Recipient, job.Subject, job.Body); err != nil {
		w.logger.Error("notification delivery failed",
			zap.String("recipient", job.Recipient),
			zap.Error(err))
		w.metrics.RecordEmail(false)
		return
	}
	w.metrics.RecordEmail(true)
}
