// Package rabbitmq implements the event publisher on a RabbitMQ topic
// exchange. Order events are routed by audience: "ops" reaches staff
// consumers, "owner.<uuid>" reaches the customer who placed the order.
// Publishing sits outside the database transaction; callers publish only
// after commit and treat failures as non-fatal.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"canteen/internal/core/domain/model/order"
	"canteen/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all order events go through.
const ExchangeName = "canteen.orders"

// Publisher implements ports.EventPublisher over one AMQP channel.
// Publishes are serialized because an amqp channel is not safe for
// concurrent use.
type Publisher struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	directory ports.UserDirectory
	mu        sync.Mutex
}

// Dial connects to the broker, opens a channel, and declares the order
// events exchange. directory resolves owner profiles for event payloads
// and may be nil; events then go out without name and email.
func Dial(url string, directory ports.UserDirectory) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, directory: directory}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// PublishOrderPlaced announces a new order to ops and to its owner.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, aggregate *order.Order) error {
	return p.publishToAudiences(ctx, aggregate, p.orderEvent(ctx, "order_placed", aggregate))
}

// PublishOrderStatusChanged announces a status transition to ops and to
// the order's owner.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, aggregate *order.Order) error {
	return p.publishToAudiences(ctx, aggregate, p.orderEvent(ctx, "order_status", aggregate))
}

// PublishKioskSnapshot pushes the pickup board to ops.
func (p *Publisher) PublishKioskSnapshot(ctx context.Context, snapshot ports.KioskSnapshot) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return p.publish(ctx, ports.AudienceOps, body)
}

func (p *Publisher) orderEvent(ctx context.Context, eventType string, aggregate *order.Order) ports.OrderEvent {
	return ports.OrderEvent{
		Type:       eventType,
		OrderID:    aggregate.ID().String(),
		Token:      aggregate.Token().String(),
		Status:     aggregate.Status().String(),
		Message:    fmt.Sprintf("%s is now %s", aggregate.Token(), aggregate.Status()),
		Order:      p.orderPayload(ctx, aggregate),
		OccurredAt: aggregate.UpdatedAt(),
	}
}

// orderPayload snapshots the aggregate for the wire, resolving the owner's
// name and email. A missing profile or directory failure is non-fatal; the
// payload then carries the raw customer id only.
func (p *Publisher) orderPayload(ctx context.Context, aggregate *order.Order) ports.OrderPayload {
	lines := make([]ports.OrderLinePayload, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, ports.OrderLinePayload{
			ItemID:    line.ItemID().String(),
			Name:      line.Name(),
			UnitPrice: line.UnitPrice(),
			Quantity:  line.Quantity(),
			Subtotal:  line.Subtotal(),
		})
	}

	payload := ports.OrderPayload{
		ID:          aggregate.ID().String(),
		CustomerID:  aggregate.CustomerID().String(),
		Token:       aggregate.Token().String(),
		Status:      aggregate.Status().String(),
		PaymentMode: aggregate.PaymentMode().String(),
		TotalAmount: aggregate.TotalAmount(),
		Lines:       lines,
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}

	if p.directory != nil {
		if profile, err := p.directory.Get(ctx, aggregate.CustomerID()); err == nil {
			payload.CustomerName = profile.Name
			payload.CustomerEmail = profile.Email
		}
	}

	return payload
}

func (p *Publisher) publishToAudiences(ctx context.Context, aggregate *order.Order, event ports.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err = p.publish(ctx, ports.AudienceOps, body); err != nil {
		return err
	}
	return p.publish(ctx, ports.OwnerAudience(aggregate.CustomerID().String()), body)
}

func (p *Publisher) publish(ctx context.Context, key string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(ctx, ExchangeName, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
