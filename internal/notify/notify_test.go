package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func brl(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), currency.BRL)
}

type fakeWriter struct {
	mu    sync.Mutex
	calls int
	msgs  []kafka.Message
	err   error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func confirmation() domain.OrderConfirmation {
	return domain.OrderConfirmation{
		OrderID:       uuid.New(),
		StoreID:       uuid.New(),
		OrderNumber:   42,
		CustomerName:  "Maria Souza",
		CustomerPhone: "11988887777",
		Channel:       domain.ChannelChat,
		Status:        domain.OrderStatusPending,
		Total:         brl("45.00"),
		PaymentMethod: "Pix",
		IsDelivery:    true,
		ScheduledDate: time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC),
	}
}

func TestNotifyOrderConfirmed(t *testing.T) {
	w := &fakeWriter{}
	n := NewKafkaNotifier(w, zap.NewNop())

	c := confirmation()
	require.NoError(t, n.NotifyOrderConfirmed(t.Context(), c))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, c.StoreID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "order.confirmed", string(msg.Headers[0].Value))

	var payload confirmationPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, c.OrderID.String(), payload.OrderID)
	assert.Equal(t, int64(42), payload.OrderNumber)
	assert.Equal(t, "45.00", payload.Total)
	assert.Equal(t, "BRL", payload.Currency)
	assert.Equal(t, "2026-03-13", payload.ScheduledDate)
	assert.Contains(t, payload.Message, "#42")
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	n := NewKafkaNotifier(w, zap.NewNop())
	ctx := t.Context()

	for range failureThreshold {
		err := n.NotifyOrderConfirmed(ctx, confirmation())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}

	err := n.NotifyOrderConfirmed(ctx, confirmation())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, failureThreshold, w.calls)
}

type stalledWriter struct{}

func (stalledWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestNotifyHonoursDeadline(t *testing.T) {
	n := NewKafkaNotifier(stalledWriter{}, zap.NewNop())

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := n.NotifyOrderConfirmed(ctx, confirmation())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter("", "localhost:9092")

	assert.Equal(t, DefaultTopic, w.Topic)
	assert.Equal(t, writeAttempts, w.MaxAttempts)
	assert.Equal(t, writeTimeout, w.WriteTimeout)
	assert.LessOrEqual(t, w.BatchTimeout, 10*time.Millisecond)
	require.NoError(t, w.Close())
}

func TestComposeMessage(t *testing.T) {
	c := confirmation()
	assert.Equal(t,
		"Olá, Maria! Seu pedido #42 foi confirmado.\nTotal: R$ 45,00\nPagamento: Pix\nEntrega em 13/03/2026.",
		ComposeMessage(c))

	c.CustomerName = ""
	c.IsDelivery = false
	c.PaymentMethod = ""
	assert.Equal(t,
		"Olá! Seu pedido #42 foi confirmado.\nTotal: R$ 45,00\nRetirada em 13/03/2026.",
		ComposeMessage(c))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 1234,50", FormatMoney(brl("1234.5")))
	assert.Equal(t, "USD 3,00", FormatMoney(domain.NewMoney(decimal.NewFromInt(3), currency.USD)))
}

func TestPrintReceipt(t *testing.T) {
	var buf bytes.Buffer
	p := NewReceiptPrinter(&buf, "Pizzaria Bella")

	change := brl("50.00")
	order := domain.Order{
		Number:        7,
		CustomerName:  "João",
		Subtotal:      brl("42.00"),
		Discount:      brl("2.00"),
		DeliveryFee:   brl("0"),
		Total:         brl("40.00"),
		PointsUsed:    5,
		PaymentMethod: "Fidelidade + Dinheiro",
		ChangeFor:     &change,
		ScheduledDate: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		Lines: []domain.OrderLine{
			{ProductName: "Pizza Margherita", VariationName: "Grande", Quantity: 1, Subtotal: brl("42.00")},
			{ProductName: "Brownie", Quantity: 1, Subtotal: brl("0"), RedeemedWithPoints: true, PointsCost: 5},
		},
	}

	require.NoError(t, p.PrintReceipt(t.Context(), order))
	out := buf.String()

	assert.Contains(t, out, "PEDIDO #7")
	assert.Contains(t, out, "1x Pizza Margherita (Grande)")
	assert.Contains(t, out, "5 pts")
	assert.Contains(t, out, "-R$ 2,00")
	assert.Contains(t, out, "Pagamento: Fidelidade + Dinheiro")
	assert.NotContains(t, out, "Taxa de entrega")

	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), receiptWidth, line)
	}

	lines := strings.Split(out, "\n")
	var troco string
	for _, l := range lines {
		if strings.HasPrefix(l, "Troco ") && !strings.HasPrefix(l, "Troco para") {
			troco = l
		}
	}
	assert.True(t, strings.HasSuffix(troco, "R$ 10,00"), troco)
}

func TestColumnsTruncatesLongNames(t *testing.T) {
	line := columns(strings.Repeat("x", 60), "R$ 1,00")
	assert.Len(t, []rune(line), receiptWidth)
	assert.True(t, strings.HasSuffix(line, "R$ 1,00"))
}
