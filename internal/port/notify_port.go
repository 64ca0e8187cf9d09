package port

import (
	"context"
	"github.com/nikolayk812/pdv-core/internal/domain"
)

type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, confirmation domain.OrderConfirmation) error
}

type Printer interface {
	PrintReceipt(ctx context.Context, order domain.Order) error
}
