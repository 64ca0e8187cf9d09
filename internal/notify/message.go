package notify

import (
	"fmt"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"golang.org/x/text/currency"
	"strings"
)

// ComposeMessage renders the confirmation text sent to the customer.
func ComposeMessage(c domain.OrderConfirmation) string {
	var b strings.Builder

	name := strings.TrimSpace(c.CustomerName)
	if name == "" {
		b.WriteString("Olá!")
	} else {
		fmt.Fprintf(&b, "Olá, %s!", firstName(name))
	}
	fmt.Fprintf(&b, " Seu pedido #%d foi confirmado.", c.OrderNumber)
	fmt.Fprintf(&b, "\nTotal: %s", FormatMoney(c.Total))
	if c.PaymentMethod != "" {
		fmt.Fprintf(&b, "\nPagamento: %s", c.PaymentMethod)
	}

	date := c.ScheduledDate.Format("02/01/2006")
	if c.IsDelivery {
		fmt.Fprintf(&b, "\nEntrega em %s.", date)
	} else {
		fmt.Fprintf(&b, "\nRetirada em %s.", date)
	}

	return b.String()
}

// FormatMoney prints amounts the way receipts show them, "R$ 1234,50".
func FormatMoney(m domain.Money) string {
	symbol := m.Currency.String()
	if m.Currency == currency.BRL {
		symbol = "R$"
	}
	return symbol + " " + strings.Replace(m.Amount.StringFixed(2), ".", ",", 1)
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}
