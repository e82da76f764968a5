package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dokanlab/pos-terminal-api/internal/domain/repository"
)

// Publisher pushes completed sales onto the broker queue for downstream
// consumers such as stock sync and reporting.
type Publisher struct {
	pool      *ChannelPool
	queueName string
}

// NewPublisher creates a new publisher
func NewPublisher(pool *ChannelPool, queueName string) *Publisher {
	return &Publisher{
		pool:      pool,
		queueName: queueName,
	}
}

// PublishSaleCompleted publishes a completed sale event. Callers treat a
// failure here as non-fatal: the sale is already acknowledged upstream.
func (p *Publisher) PublishSaleCompleted(event repository.SaleCompletedEvent) error {
	ch, err := p.pool.GetChannel()
	if err != nil {
		return fmt.Errorf("failed to get channel from pool: %w", err)
	}
	defer p.pool.ReturnChannel(ch)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal sale event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		"",          // exchange
		p.queueName, // routing key (queue name)
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})

	if err != nil {
		return fmt.Errorf("failed to publish sale event: %w", err)
	}

	log.Printf("Published sale %s to %s queue", event.OrderNumber, p.queueName)
	return nil
}
