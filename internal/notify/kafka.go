// Package notify delivers order confirmations and receipts after an order is
// committed. Both are fire-and-forget from the order's point of view.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"time"
)

const (
	DefaultTopic = "order-confirmations"
	eventType    = "order.confirmed"

	// failureThreshold consecutive publish failures open the breaker.
	failureThreshold = 5

	writeAttempts = 2
	writeTimeout  = 2 * time.Second
)

// ErrUnavailable is returned while the breaker is open and publishing is skipped.
var ErrUnavailable = errors.New("confirmation publisher unavailable")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaNotifier struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *zap.Logger
}

// NewKafkaWriter returns a synchronous writer tuned to give up quickly, since
// publishing happens while the order response is pending.
func NewKafkaWriter(topic string, brokers ...string) *kafka.Writer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		MaxAttempts:            writeAttempts,
		WriteBackoffMax:        100 * time.Millisecond,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           writeTimeout,
	}
}

func NewKafkaNotifier(writer messageWriter, logger *zap.Logger) port.Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "order-confirmations",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &KafkaNotifier{
		writer:  writer,
		breaker: breaker,
		logger:  logger,
	}
}

type confirmationPayload struct {
	OrderID       string    `json:"order_id"`
	StoreID       string    `json:"store_id"`
	OrderNumber   int64     `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Channel       string    `json:"channel"`
	Status        string    `json:"status"`
	Total         string    `json:"total"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	IsDelivery    bool      `json:"is_delivery"`
	ScheduledDate string    `json:"scheduled_date"`
	Message       string    `json:"message"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

func (n *KafkaNotifier) NotifyOrderConfirmed(ctx context.Context, c domain.OrderConfirmation) error {
	if c.Message == "" {
		c.Message = ComposeMessage(c)
	}

	payload, err := json.Marshal(confirmationPayload{
		OrderID:       c.OrderID.String(),
		StoreID:       c.StoreID.String(),
		OrderNumber:   c.OrderNumber,
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		Channel:       string(c.Channel),
		Status:        string(c.Status),
		Total:         c.Total.Amount.StringFixed(2),
		Currency:      c.Total.Currency.String(),
		PaymentMethod: c.PaymentMethod,
		IsDelivery:    c.IsDelivery,
		ScheduledDate: c.ScheduledDate.Format(time.DateOnly),
		Message:       c.Message,
		ConfirmedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal confirmation failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(c.StoreID.String()), // store id keeps per-store ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	_, err = n.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, n.writer.WriteMessages(ctx, msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}

	n.logger.Debug("order confirmation published",
		zap.String("order_id", c.OrderID.String()),
		zap.Int64("order_number", c.OrderNumber),
	)
	return nil
}
