package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"recipe_fetcher/internal/domain"
)

// Handler processes one extraction task. A returned error means the task was
// not handled and should be redelivered; terminal outcomes are the handler's
// own business.
type Handler interface {
	HandleExtraction(ctx context.Context, task domain.ExtractionTask) error
}

// Consumer yields deliveries from the task queue.
type Consumer interface {
	Consume(ctx context.Context) (<-chan amqp.Delivery, error)
}

type Config struct {
	Concurrency    int
	TaskTimeout    time.Duration
	RequeueBackoff time.Duration
}

// Worker drains the extraction queue with a fixed pool of goroutines.
// Messages are acked once handled; handler errors nack with requeue so
// another worker instance can pick the task up.
type Worker struct {
	consumer Consumer
	handler  Handler
	logger   *slog.Logger
	config   Config
}

func New(consumer Consumer, handler Handler, logger *slog.Logger, cfg Config) *Worker {
	return &Worker{
		consumer: consumer,
		handler:  handler,
		logger:   logger.With("component", "worker"),
		config:   cfg,
	}
}

// Run blocks until ctx is cancelled or the delivery channel closes.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	w.logger.Info("worker started", "concurrency", w.config.Concurrency)

	var wg sync.WaitGroup
	for i := 0; i < w.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range deliveries {
				w.process(ctx, msg)
			}
		}()
	}
	wg.Wait()

	if ctx.Err() != nil {
		w.logger.Info("worker stopped")
		return ctx.Err()
	}
	return errors.New("delivery channel closed")
}

func (w *Worker) process(ctx context.Context, msg amqp.Delivery) {
	logger := w.logger.With("message_id", msg.MessageId)

	if msg.Type != domain.TaskExtractRecipe {
		logger.Warn("unknown task type, dropping", "type", msg.Type)
		_ = msg.Ack(false)
		return
	}

	var task domain.ExtractionTask
	if err := json.Unmarshal(msg.Body, &task); err != nil {
		// Requeueing an undecodable message would loop it forever.
		logger.Error("undecodable task, dropping", "error", err)
		_ = msg.Ack(false)
		return
	}

	if err := w.handle(ctx, task); err != nil {
		logger.Error("task failed, requeueing",
			"task_id", task.ID,
			"recipe_id", task.RecipeID,
			"error", err,
		)
		_ = msg.Nack(false, true)

		// Hold back before touching the next delivery so a dead store does
		// not spin the queue at full speed.
		select {
		case <-ctx.Done():
		case <-time.After(w.config.RequeueBackoff):
		}
		return
	}

	_ = msg.Ack(false)
}

func (w *Worker) handle(ctx context.Context, task domain.ExtractionTask) (err error) {
	taskCtx, cancel := context.WithTimeout(ctx, w.config.TaskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	return w.handler.HandleExtraction(taskCtx, task)
}
