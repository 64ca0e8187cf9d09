// Package orders moves committed orders through the kitchen and delivery flow.
package orders

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/loyalty"
	"github.com/nikolayk812/pdv-core/internal/port"
	"go.uber.org/zap"
	"slices"
)

type Service struct {
	orders port.OrderRepository
	flow   port.OrderFlowSettings
	ledger *loyalty.Ledger
	logger *zap.Logger
}

func NewService(orders port.OrderRepository, flow port.OrderFlowSettings, ledger *loyalty.Ledger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orders: orders,
		flow:   flow,
		ledger: ledger,
		logger: logger,
	}
}

// Advance moves the order to the given status. The update only applies while the
// order is still in the status it was read in. Reaching delivered credits the
// loyalty earn; a failed credit is logged and does not undo the transition.
func (s *Service) Advance(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	from := order.Status
	if !from.CanTransitionTo(to) {
		return domain.Order{}, fmt.Errorf("%w: %s to %s", domain.ErrIllegalTransition, from, to)
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, from, to)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateStatus: %w", err)
	}
	if !updated {
		return domain.Order{}, fmt.Errorf("%w: order is no longer %s", domain.ErrIllegalTransition, from)
	}
	order.Status = to

	log := s.logger.With(
		zap.String("order_id", order.ID.String()),
		zap.Int64("order_number", order.Number),
	)
	log.Info("order status changed", zap.String("from", string(from)), zap.String("to", string(to)))

	if to.CountsTowardSales() && s.ledger != nil {
		tx, credited, err := s.ledger.CreditOrder(ctx, order)
		switch {
		case errors.Is(err, domain.ErrAlreadyRecorded):
		case err != nil:
			log.Warn("loyalty earn failed", zap.Error(err))
		case credited:
			log.Info("loyalty earn credited", zap.Int64("points", tx.Delta))
		}
	}

	return order, nil
}

// AdvanceNext moves the order one step along its store's active flow.
func (s *Service) AdvanceNext(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	flow, err := s.ActiveFlow(ctx, order.StoreID)
	if err != nil {
		return domain.Order{}, err
	}

	i := slices.Index(flow, order.Status)
	if i < 0 || i == len(flow)-1 {
		return domain.Order{}, fmt.Errorf("%w: no status after %s", domain.ErrIllegalTransition, order.Status)
	}

	return s.Advance(ctx, orderID, flow[i+1])
}

func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return s.Advance(ctx, orderID, domain.OrderStatusCancelled)
}

func (s *Service) ActiveFlow(ctx context.Context, storeID uuid.UUID) ([]domain.OrderStatus, error) {
	flow, err := s.flow.ActiveFlow(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("flow.ActiveFlow: %w", err)
	}
	return flow, nil
}
