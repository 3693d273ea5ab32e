package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tonpor888/planthubb-sub001/internal/domain"
)

// OrderCreatedEvent is the wire shape published for every new order.
type OrderCreatedEvent struct {
	OrderID       string    `json:"order_id"`
	BuyerID       string    `json:"buyer_id"`
	SellerIDs     []string  `json:"seller_ids"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// KafkaPublisher writes order lifecycle events to Kafka for the seller
// dashboard and other downstream consumers.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "storefront-orders",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *domain.Order) error {
	event := OrderCreatedEvent{
		OrderID:       order.ID,
		BuyerID:       order.BuyerID,
		SellerIDs:     order.SellerIDs,
		Total:         order.Total,
		PaymentMethod: string(order.PaymentMethod),
		Status:        order.Status.String(),
		CreatedAt:     order.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID), // order id for partition ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order.created")},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
