package notify

import (
	"context"
	"fmt"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

const receiptWidth = 40

// ReceiptPrinter writes plain-text receipts sized for 40 column thermal printers.
type ReceiptPrinter struct {
	mu        sync.Mutex
	w         io.Writer
	storeName string
}

func NewReceiptPrinter(w io.Writer, storeName string) port.Printer {
	return &ReceiptPrinter{w: w, storeName: storeName}
}

func (p *ReceiptPrinter) PrintReceipt(_ context.Context, order domain.Order) error {
	text := FormatReceipt(p.storeName, order)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.w, text); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	return nil
}

func FormatReceipt(storeName string, order domain.Order) string {
	var b strings.Builder
	rule := strings.Repeat("-", receiptWidth) + "\n"

	if storeName != "" {
		b.WriteString(center(storeName) + "\n")
	}
	b.WriteString(center(fmt.Sprintf("PEDIDO #%d", order.Number)) + "\n")
	b.WriteString(rule)

	if order.CustomerName != "" {
		b.WriteString("Cliente: " + order.CustomerName + "\n")
	}
	if order.IsDelivery && order.DeliveryAddress != nil {
		b.WriteString("Entrega: " + order.DeliveryAddress.String() + "\n")
	}
	when := order.ScheduledDate.Format("02/01/2006")
	if order.ScheduledTime != nil {
		when += " " + order.ScheduledTime.String()
	}
	b.WriteString("Data: " + when + "\n")
	b.WriteString(rule)

	for _, line := range order.Lines {
		name := line.ProductName
		if line.VariationName != "" {
			name += " (" + line.VariationName + ")"
		}
		left := fmt.Sprintf("%dx %s", line.Quantity, name)
		right := FormatMoney(line.Subtotal)
		if line.RedeemedWithPoints {
			right = fmt.Sprintf("%d pts", line.PointsCost*int64(line.Quantity))
		}
		b.WriteString(columns(left, right) + "\n")
	}
	b.WriteString(rule)

	b.WriteString(columns("Subtotal", FormatMoney(order.Subtotal)) + "\n")
	if order.Discount.IsPositive() {
		b.WriteString(columns("Desconto", "-"+FormatMoney(order.Discount)) + "\n")
	}
	if order.IsDelivery {
		b.WriteString(columns("Taxa de entrega", FormatMoney(order.DeliveryFee)) + "\n")
	}
	if order.PointsUsed > 0 {
		b.WriteString(columns("Pontos usados", fmt.Sprintf("%d", order.PointsUsed)) + "\n")
	}
	b.WriteString(columns("TOTAL", FormatMoney(order.Total)) + "\n")
	b.WriteString(rule)

	b.WriteString("Pagamento: " + order.PaymentMethod + "\n")
	if order.ChangeFor != nil {
		b.WriteString(columns("Troco para", FormatMoney(*order.ChangeFor)) + "\n")
		b.WriteString(columns("Troco", FormatMoney(order.ChangeFor.Sub(order.Total))) + "\n")
	}
	if order.Notes != "" {
		b.WriteString("Obs: " + order.Notes + "\n")
	}
	b.WriteString("\n")

	return b.String()
}

// columns left-aligns left and right-aligns right on one receipt line, cutting left if needed.
func columns(left, right string) string {
	space := receiptWidth - utf8.RuneCountInString(right) - 1
	if space < 1 {
		return left + " " + right
	}
	runes := []rune(left)
	if len(runes) > space {
		runes = runes[:space]
	}
	left = string(runes)
	return left + strings.Repeat(" ", receiptWidth-utf8.RuneCountInString(left)-utf8.RuneCountInString(right)) + right
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= receiptWidth {
		return s
	}
	return strings.Repeat(" ", (receiptWidth-n)/2) + s
}
