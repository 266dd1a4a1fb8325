package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"recipe_fetcher/internal/domain"
)

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
	Prefetch   int
}

// RabbitMQ carries extraction tasks. Declaration is idempotent, so producers
// and consumers can start in any order. Delayed retries go through a second
// queue that dead-letters expired messages back to the main one.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	queueName  string
	retryQueue string
	logger     *slog.Logger
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if cfg.Prefetch > 0 {
		if err := ch.Qos(cfg.Prefetch, 0, false); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("set prefetch: %w", err)
		}
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	err = ch.QueueBind(
		q.Name,
		cfg.RoutingKey,
		cfg.Exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	retryQueue := cfg.QueueName + ".retry"
	_, err = ch.QueueDeclare(
		retryQueue,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    cfg.Exchange,
			"x-dead-letter-routing-key": cfg.RoutingKey,
		},
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare retry queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		queueName:  cfg.QueueName,
		retryQueue: retryQueue,
		logger:     logger,
	}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, task domain.ExtractionTask) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         domain.TaskExtractRecipe,
			MessageId:    task.ID.String(),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish task: %w", err)
	}

	r.logger.Debug("published extraction task",
		"task_id", task.ID,
		"recipe_id", task.RecipeID,
		"attempt", task.Attempt,
	)

	return nil
}

// PublishRetry parks the task in the retry queue with a per-message TTL; on
// expiry the broker dead-letters it back to the main queue. TTLs expire in
// queue order, so a longer delay parked ahead of a shorter one holds the
// shorter one back.
func (r *RabbitMQ) PublishRetry(ctx context.Context, task domain.ExtractionTask, delay time.Duration) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		"",
		r.retryQueue,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         domain.TaskExtractRecipe,
			MessageId:    task.ID.String(),
			Expiration:   strconv.FormatInt(delay.Milliseconds(), 10),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish retry: %w", err)
	}

	r.logger.Debug("parked extraction task for retry",
		"task_id", task.ID,
		"recipe_id", task.RecipeID,
		"attempt", task.Attempt,
		"delay", delay,
	)

	return nil
}

// Consume returns manually-acked deliveries from the main queue. The channel
// closes when ctx is cancelled or the connection drops.
func (r *RabbitMQ) Consume(ctx context.Context) (<-chan amqp.Delivery, error) {
	deliveries, err := r.channel.ConsumeWithContext(
		ctx,
		r.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("consume: %w", err)
	}
	return deliveries, nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
