// Package checkout turns a cart into a committed order.
//
// PlaceOrder validates everything it can before writing. Once the order row
// exists the remaining steps run one after another, each guarded on its own:
// a failing step is logged and reported in the result, never rolled back.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/cashsession"
	"github.com/nikolayk812/pdv-core/internal/coupon"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/loyalty"
	"github.com/nikolayk812/pdv-core/internal/payment"
	"github.com/nikolayk812/pdv-core/internal/port"
	"github.com/nikolayk812/pdv-core/internal/pricing"
	"github.com/nikolayk812/pdv-core/internal/schedule"
	"go.uber.org/zap"
	"time"
)

type CustomerInput struct {
	Name  string
	Phone string
}

type DeliveryInput struct {
	Address     domain.Address
	Fee         domain.Money
	SaveAddress bool
}

type PaymentInput struct {
	Mode         domain.PaymentMode
	Single       *payment.LegInput
	Splits       []payment.LegInput
	CashReceived *domain.Money
}

type Request struct {
	StoreID uuid.UUID
	Channel domain.Channel
	// SessionID identifies the stored cart to clear after the order is inserted.
	SessionID string

	Cart     domain.Cart
	Customer CustomerInput
	Delivery *DeliveryInput

	// ScheduledDate defaults to today in the store location.
	ScheduledDate time.Time
	ScheduledTime *domain.TimeOfDay

	CouponCode     string
	ManualDiscount domain.Money
	Payment        PaymentInput
	Notes          string
}

type Result struct {
	Order   domain.Order
	Totals  pricing.Totals
	Payment domain.PaymentSelection
	Steps   []StepOutcome
}

// Degraded returns the steps that did not complete cleanly.
func (r Result) Degraded() []StepOutcome {
	var out []StepOutcome
	for _, s := range r.Steps {
		if s.Status == StepFailed || s.Status == StepWarning {
			out = append(out, s)
		}
	}
	return out
}

func (r Result) Step(name string) (StepOutcome, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepOutcome{}, false
}

const DefaultNotifyTimeout = 3 * time.Second

type Deps struct {
	Customers port.CustomerRepository
	Addresses port.AddressRepository
	Catalog   port.CatalogRepository
	Orders    port.OrderRepository
	Flow      port.OrderFlowSettings
	Coupons   port.CouponRepository

	Evaluator *coupon.Evaluator
	Ledger    *loyalty.Ledger
	Binder    *cashsession.Binder
	Gate      *schedule.Gate

	// Carts, Notifier and Printer are optional; their steps are skipped when nil.
	Carts    port.CartStore
	Notifier port.Notifier
	Printer  port.Printer

	// NotifyTimeout bounds the confirmation publish; defaults to DefaultNotifyTimeout.
	NotifyTimeout time.Duration

	Logger *zap.Logger
}

type Service struct {
	Deps
}

func New(deps Deps) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.NotifyTimeout <= 0 {
		deps.NotifyTimeout = DefaultNotifyTimeout
	}
	return &Service{Deps: deps}
}

// plan is everything decided before the first write.
type plan struct {
	req       Request
	date      time.Time
	coupon    *domain.CouponApplication
	totals    pricing.Totals
	selection domain.PaymentSelection
	sessionID *uuid.UUID
	status    domain.OrderStatus
}

// PlaceOrder validates the request and commits the order. Validation and
// precondition errors leave nothing behind. When the order insert fails the
// error is returned and no later step runs.
func (s *Service) PlaceOrder(ctx context.Context, req Request) (Result, error) {
	p, err := s.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}

	var customer *domain.Customer
	if phone := domain.NormalizePhone(req.Customer.Phone); phone != "" {
		c, err := s.Customers.UpsertCustomer(ctx, req.StoreID, req.Customer.Name, phone)
		if err != nil {
			return Result{}, fmt.Errorf("customers.UpsertCustomer: %w", err)
		}
		customer = &c
	}

	order, err := s.Orders.InsertOrder(ctx, newOrder(p, customer))
	if err != nil {
		return Result{}, fmt.Errorf("orders.InsertOrder: %w", err)
	}
	order.Lines = orderLines(order.ID, req.Cart)

	log := s.Logger.With(
		zap.String("order_id", order.ID.String()),
		zap.Int64("order_number", order.Number),
		zap.String("store_id", order.StoreID.String()),
	)

	steps := []struct {
		name string
		run  func(context.Context) StepOutcome
	}{
		{StepOrderLines, func(ctx context.Context) StepOutcome { return s.insertLines(ctx, order) }},
		{StepStock, func(ctx context.Context) StepOutcome { return s.decrementStock(ctx, order.Lines) }},
		{StepLoyalty, func(ctx context.Context) StepOutcome { return s.redeemPoints(ctx, order) }},
		{StepCouponUsage, func(ctx context.Context) StepOutcome { return s.registerCoupon(ctx, order, p.coupon) }},
		{StepAddress, func(ctx context.Context) StepOutcome { return s.saveAddress(ctx, req, customer) }},
		{StepCartCleanup, func(ctx context.Context) StepOutcome { return s.clearCart(ctx, req) }},
		{StepNotify, func(ctx context.Context) StepOutcome { return s.notify(ctx, order) }},
		{StepPrint, func(ctx context.Context) StepOutcome { return s.print(ctx, order) }},
	}

	res := Result{
		Order:   order,
		Totals:  p.totals,
		Payment: p.selection,
		Steps:   make([]StepOutcome, 0, len(steps)),
	}
	for _, step := range steps {
		outcome := step.run(ctx)
		outcome.Name = step.name
		res.Steps = append(res.Steps, outcome)

		switch outcome.Status {
		case StepFailed:
			log.Warn("order step failed", zap.String("step", step.name), zap.Error(outcome.Err))
		case StepWarning:
			log.Warn("order step degraded", zap.String("step", step.name), zap.Error(outcome.Err))
		}
	}

	log.Info("order placed",
		zap.String("channel", string(order.Channel)),
		zap.String("status", string(order.Status)),
		zap.String("total", order.Total.Amount.StringFixed(2)),
		zap.Int("degraded_steps", len(res.Degraded())),
	)

	return res, nil
}

func (s *Service) prepare(ctx context.Context, req Request) (plan, error) {
	if req.StoreID == uuid.Nil {
		return plan{}, fmt.Errorf("storeID is empty")
	}
	if !req.Channel.Valid() {
		return plan{}, fmt.Errorf("%w: unknown channel %q", domain.ErrValidation, req.Channel)
	}
	if err := req.Cart.Validate(); err != nil {
		return plan{}, err
	}

	phone := domain.NormalizePhone(req.Customer.Phone)
	if phone == "" && (req.Cart.PointsRequired() > 0 || (req.Delivery != nil && req.Delivery.SaveAddress)) {
		return plan{}, domain.ErrCustomerRequired
	}

	if req.Delivery != nil && !req.Delivery.Address.IsComplete() {
		return plan{}, domain.ErrAddressIncomplete
	}

	today := s.Gate.Today()
	p := plan{req: req, date: today}
	if !req.ScheduledDate.IsZero() {
		y, m, d := req.ScheduledDate.Date()
		if time.Date(y, m, d, 0, 0, 0, 0, today.Location()).Before(today) {
			return plan{}, domain.ErrDateInPast
		}
		p.date = domain.DateOnly(req.ScheduledDate)
	}

	if req.Channel == domain.ChannelStore {
		if err := s.Gate.Check(ctx, req.StoreID, p.date, req.ScheduledTime); err != nil {
			return plan{}, err
		}
	}

	if req.CouponCode != "" {
		app, err := s.Evaluator.Evaluate(ctx, coupon.Request{
			Code:          req.CouponCode,
			StoreID:       req.StoreID,
			CustomerPhone: phone,
			Cart:          req.Cart,
		})
		if err != nil {
			return plan{}, err
		}
		p.coupon = &app
	}

	in := pricing.Input{
		Cart:           req.Cart,
		ManualDiscount: req.ManualDiscount,
		Coupon:         p.coupon,
	}
	if req.Delivery != nil {
		in.Delivery = true
		in.DeliveryFee = req.Delivery.Fee
	}
	p.totals = pricing.Calculate(in)

	sel, err := payment.Allocate(payment.Request{
		Channel:        req.Channel,
		Mode:           req.Payment.Mode,
		PayableTotal:   p.totals.PayableTotal,
		PointsRequired: p.totals.PointsRequired,
		Single:         req.Payment.Single,
		Splits:         req.Payment.Splits,
		CashReceived:   req.Payment.CashReceived,
	})
	if err != nil {
		return plan{}, err
	}
	p.selection = sel

	if p.totals.PointsRequired > 0 {
		c, err := s.Customers.GetCustomerByPhone(ctx, req.StoreID, phone)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return plan{}, domain.ErrInsufficientPoints
		case err != nil:
			return plan{}, fmt.Errorf("customers.GetCustomerByPhone: %w", err)
		case c.Points < p.totals.PointsRequired:
			return plan{}, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientPoints, p.totals.PointsRequired, c.Points)
		}
	}

	p.sessionID, err = s.Binder.Bind(ctx, req.StoreID, p.date, req.Delivery != nil)
	if err != nil {
		return plan{}, err
	}

	p.status, err = s.Flow.InitialStatus(ctx, req.StoreID)
	if err != nil {
		return plan{}, fmt.Errorf("flow.InitialStatus: %w", err)
	}

	return p, nil
}

func newOrder(p plan, customer *domain.Customer) domain.Order {
	req := p.req
	order := domain.Order{
		ID:            uuid.New(),
		StoreID:       req.StoreID,
		Channel:       req.Channel,
		CustomerName:  req.Customer.Name,
		CustomerPhone: domain.NormalizePhone(req.Customer.Phone),
		Status:        p.status,

		Subtotal:    p.totals.MonetarySubtotal,
		Discount:    p.totals.DiscountApplied,
		DeliveryFee: p.totals.DeliveryFeeApplied,
		Total:       p.totals.PayableTotal,
		PointsUsed:  p.totals.PointsRequired,

		PaymentMethod: payment.Describe(p.selection, p.totals.PointsRequired),
		PaymentMode:   p.selection.Mode,
		ChangeFor:     p.selection.CashReceived,

		ScheduledDate:  p.date,
		ScheduledTime:  req.ScheduledTime,
		CashRegisterID: p.sessionID,
		Notes:          req.Notes,
	}

	if customer != nil {
		id := customer.ID
		order.CustomerID = &id
		if order.CustomerName == "" {
			order.CustomerName = customer.Name
		}
	}

	if req.Delivery != nil {
		addr := req.Delivery.Address
		order.IsDelivery = true
		order.DeliveryAddress = &addr
	}

	if p.coupon != nil {
		id := p.coupon.CouponID
		order.CouponID = &id
	}

	for _, leg := range p.selection.Legs {
		op := domain.OrderPayment{
			MethodName:    leg.Method.MethodName(),
			Amount:        leg.Amount,
			CardMachineID: leg.CardMachineID,
		}
		if m, ok := leg.Method.(domain.CustomMethod); ok {
			id := m.ID
			op.MethodID = &id
		}
		order.Payments = append(order.Payments, op)
	}

	return order
}

// orderLines snapshots the cart. Redeemed lines keep their points cost but record
// a zero price so the order shows the real cash impact.
func orderLines(orderID uuid.UUID, cart domain.Cart) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		unit := l.UnitPrice
		if l.RedeemedWithPoints {
			unit = domain.Zero(cart.Currency)
		}
		lines = append(lines, domain.OrderLine{
			ID:                 uuid.New(),
			OrderID:            orderID,
			ProductID:          l.ProductID,
			VariationID:        l.VariationID,
			ProductName:        l.ProductName,
			VariationName:      l.VariationName,
			UnitPrice:          unit,
			Quantity:           l.Quantity,
			Subtotal:           l.LineTotal().Round(),
			RedeemedWithPoints: l.RedeemedWithPoints,
			PointsCost:         l.PointsCost,
		})
	}
	return lines
}
