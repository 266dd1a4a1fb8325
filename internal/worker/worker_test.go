package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"

	"recipe_fetcher/internal/domain"
)

type fakeAcknowledger struct {
	mu      sync.Mutex
	acks    int
	nacks   int
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks++
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks++
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

type fakeConsumer struct {
	deliveries chan amqp.Delivery
	err        error
}

func (c *fakeConsumer) Consume(ctx context.Context) (<-chan amqp.Delivery, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.deliveries, nil
}

type recordingHandler struct {
	mu    sync.Mutex
	tasks []domain.ExtractionTask
	fn    func(ctx context.Context, task domain.ExtractionTask) error
}

func (h *recordingHandler) HandleExtraction(ctx context.Context, task domain.ExtractionTask) error {
	h.mu.Lock()
	h.tasks = append(h.tasks, task)
	h.mu.Unlock()
	if h.fn != nil {
		return h.fn(ctx, task)
	}
	return nil
}

func (h *recordingHandler) handled() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tasks)
}

type WorkerTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *WorkerTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWorkerTestSuite(t *testing.T) {
	suite.Run(t, new(WorkerTestSuite))
}

// drain feeds msgs through a worker pool and returns once every message has
// been processed and the pool has shut down.
func (s *WorkerTestSuite) drain(handler Handler, msgs ...amqp.Delivery) {
	deliveries := make(chan amqp.Delivery, len(msgs))
	for _, m := range msgs {
		deliveries <- m
	}
	close(deliveries)

	w := New(&fakeConsumer{deliveries: deliveries}, handler, s.logger, Config{
		Concurrency:    2,
		TaskTimeout:    time.Second,
		RequeueBackoff: time.Millisecond,
	})

	err := w.Run(context.Background())
	s.EqualError(err, "delivery channel closed")
}

func (s *WorkerTestSuite) delivery(ack *fakeAcknowledger, task domain.ExtractionTask) amqp.Delivery {
	body, err := json.Marshal(task)
	s.Require().NoError(err)
	return amqp.Delivery{
		Acknowledger: ack,
		Type:         domain.TaskExtractRecipe,
		MessageId:    task.ID.String(),
		Body:         body,
	}
}

func (s *WorkerTestSuite) TestProcessesTask() {
	ack := &fakeAcknowledger{}
	handler := &recordingHandler{}
	task := domain.NewExtractionTask(42, 7, domain.Source{Kind: domain.SourceURL, URL: "https://example.com"}, 3)

	s.drain(handler, s.delivery(ack, task))

	s.Require().Equal(1, handler.handled())
	s.Equal(task.ID, handler.tasks[0].ID)
	s.Equal(int64(42), handler.tasks[0].RecipeID)
	s.Equal(1, ack.acks)
	s.Equal(0, ack.nacks)
}

func (s *WorkerTestSuite) TestHandlerErrorNacksWithRequeue() {
	ack := &fakeAcknowledger{}
	handler := &recordingHandler{
		fn: func(context.Context, domain.ExtractionTask) error {
			return errors.New("store down")
		},
	}
	task := domain.NewExtractionTask(42, 7, domain.Source{Kind: domain.SourceURL, URL: "https://example.com"}, 3)

	s.drain(handler, s.delivery(ack, task))

	s.Equal(0, ack.acks)
	s.Equal(1, ack.nacks)
	s.True(ack.requeue)
}

func (s *WorkerTestSuite) TestPoisonMessageDropped() {
	ack := &fakeAcknowledger{}
	handler := &recordingHandler{}

	s.drain(handler, amqp.Delivery{
		Acknowledger: ack,
		Type:         domain.TaskExtractRecipe,
		Body:         []byte("not json"),
	})

	s.Equal(0, handler.handled())
	s.Equal(1, ack.acks)
	s.Equal(0, ack.nacks)
}

func (s *WorkerTestSuite) TestUnknownTypeDropped() {
	ack := &fakeAcknowledger{}
	handler := &recordingHandler{}

	s.drain(handler, amqp.Delivery{
		Acknowledger: ack,
		Type:         "something.else",
		Body:         []byte("{}"),
	})

	s.Equal(0, handler.handled())
	s.Equal(1, ack.acks)
}

func (s *WorkerTestSuite) TestPanicIsContained() {
	panicAck := &fakeAcknowledger{}
	okAck := &fakeAcknowledger{}
	handler := &recordingHandler{
		fn: func(_ context.Context, task domain.ExtractionTask) error {
			if task.RecipeID == 1 {
				panic("boom")
			}
			return nil
		},
	}

	bad := domain.NewExtractionTask(1, 7, domain.Source{Kind: domain.SourceURL, URL: "https://example.com"}, 3)
	good := domain.NewExtractionTask(2, 7, domain.Source{Kind: domain.SourceURL, URL: "https://example.com"}, 3)

	s.drain(handler, s.delivery(panicAck, bad), s.delivery(okAck, good))

	s.Equal(1, panicAck.nacks)
	s.True(panicAck.requeue)
	s.Equal(1, okAck.acks)
}

func (s *WorkerTestSuite) TestTaskContextHasDeadline() {
	ack := &fakeAcknowledger{}
	handler := &recordingHandler{
		fn: func(ctx context.Context, _ domain.ExtractionTask) error {
			_, ok := ctx.Deadline()
			s.True(ok)
			return nil
		},
	}
	task := domain.NewExtractionTask(42, 7, domain.Source{Kind: domain.SourceURL, URL: "https://example.com"}, 3)

	s.drain(handler, s.delivery(ack, task))

	s.Equal(1, handler.handled())
}

func (s *WorkerTestSuite) TestConsumeErrorSurfaces() {
	w := New(&fakeConsumer{err: errors.New("channel gone")}, &recordingHandler{}, s.logger, Config{
		Concurrency: 1,
		TaskTimeout: time.Second,
	})

	err := w.Run(context.Background())

	s.Error(err)
	s.Contains(err.Error(), "start consuming")
}

func (s *WorkerTestSuite) TestCancelledContextReturnsCtxErr() {
	deliveries := make(chan amqp.Delivery)
	close(deliveries)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := New(&fakeConsumer{deliveries: deliveries}, &recordingHandler{}, s.logger, Config{
		Concurrency: 1,
		TaskTimeout: time.Second,
	})

	err := w.Run(ctx)
	s.ErrorIs(err, context.Canceled)
}
