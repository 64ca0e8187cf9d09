package checkout_test

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/cashsession"
	"github.com/nikolayk812/pdv-core/internal/checkout"
	"github.com/nikolayk812/pdv-core/internal/coupon"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/loyalty"
	"github.com/nikolayk812/pdv-core/internal/memstore"
	"github.com/nikolayk812/pdv-core/internal/payment"
	"github.com/nikolayk812/pdv-core/internal/schedule"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/text/currency"
	"sync"
	"time"
)

var (
	brt = time.FixedZone("BRT", -3*60*60)
	// Tuesday 2026-03-10 12:00 local.
	now = time.Date(2026, time.March, 10, 12, 0, 0, 0, brt)
)

func brl(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), currency.BRL)
}

// fixture wires a checkout service over one in-memory store.
type fixture struct {
	store    *memstore.Store
	storeID  uuid.UUID
	ledger   *loyalty.Ledger
	binder   *cashsession.Binder
	notifier *recordingNotifier
	printer  *recordingPrinter
	logs     *observer.ObservedLogs
	svc      *checkout.Service
}

func newFixture(skipPending bool) (*fixture, error) {
	ctx := context.Background()
	f := &fixture{
		store:    memstore.New(),
		storeID:  uuid.New(),
		notifier: &recordingNotifier{},
		printer:  &recordingPrinter{},
	}

	err := f.store.CreateStore(ctx, domain.Store{
		ID:          f.storeID,
		Name:        "Pizzaria Bella",
		Currency:    currency.BRL,
		SkipPending: skipPending,
	})
	if err != nil {
		return nil, err
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		err := f.store.SetWeeklyHours(ctx, f.storeID, domain.WeeklyHours{
			Weekday: wd,
			OpeningWindow: domain.OpeningWindow{
				IsOpen: true,
				Opens:  domain.NewTimeOfDay(8, 0),
				Closes: domain.NewTimeOfDay(23, 0),
			},
		})
		if err != nil {
			return nil, err
		}
	}

	clock := func() time.Time { return now }
	f.ledger = loyalty.NewLedger(f.store, f.store, f.store)
	f.binder = cashsession.NewBinder(f.store, brt, clock)

	core, logs := observer.New(zapcore.InfoLevel)
	f.logs = logs

	f.svc = checkout.New(checkout.Deps{
		Customers: f.store,
		Addresses: f.store,
		Catalog:   f.store,
		Orders:    f.store,
		Flow:      f.store,
		Coupons:   f.store,
		Evaluator: coupon.NewEvaluator(f.store, clock),
		Ledger:    f.ledger,
		Binder:    f.binder,
		Gate:      schedule.NewGate(f.store, brt, clock),
		Carts:     f.store,
		Notifier:  f.notifier,
		Printer:   f.printer,
		Logger:    zap.New(core),
	})

	return f, nil
}

func (f *fixture) openRegister() error {
	_, err := f.binder.Open(context.Background(), f.storeID, brl("100.00"))
	return err
}

func (f *fixture) product(name, price string, stock *int) (domain.Product, error) {
	p := domain.Product{
		ID:            uuid.New(),
		StoreID:       f.storeID,
		Name:          name,
		Price:         brl(price),
		Stock:         stock,
		PointsCost:    5,
		PointsPerUnit: decimal.NewFromInt(1),
		Active:        true,
	}
	return p, f.store.CreateProduct(context.Background(), p)
}

// customerWithPoints creates a customer and seeds the balance through the ledger.
func (f *fixture) customerWithPoints(phone string, points int64) (domain.Customer, error) {
	ctx := context.Background()
	c, err := f.store.UpsertCustomer(ctx, f.storeID, "Maria Souza", phone)
	if err != nil {
		return domain.Customer{}, err
	}
	if points > 0 {
		if _, _, err := f.ledger.Earn(ctx, c.ID, nil, points, "bônus de cadastro"); err != nil {
			return domain.Customer{}, err
		}
	}
	return f.store.GetCustomer(ctx, c.ID)
}

func (f *fixture) cart(lines ...domain.CartLine) domain.Cart {
	return domain.Cart{StoreID: f.storeID, Currency: currency.BRL, Lines: lines}
}

func paid(p domain.Product, qty int) domain.CartLine {
	return domain.LineFromCatalog(p, nil, qty, false)
}

func redeemed(p domain.Product, qty int) domain.CartLine {
	return domain.LineFromCatalog(p, nil, qty, true)
}

func cashRequest(f *fixture, cart domain.Cart) checkout.Request {
	return checkout.Request{
		StoreID:  f.storeID,
		Channel:  domain.ChannelCashier,
		Cart:     cart,
		Customer: checkout.CustomerInput{Name: "Maria Souza", Phone: "(11) 98888-7777"},
		Payment: checkout.PaymentInput{
			Single: &payment.LegInput{Method: domain.MethodCash},
		},
	}
}

func deliveryTo() *checkout.DeliveryInput {
	return &checkout.DeliveryInput{
		Address: domain.Address{Street: "Rua das Flores", Number: "120", Neighborhood: "Centro", City: "Campinas"},
		Fee:     brl("8.00"),
	}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.OrderConfirmation
	err  error
	// stall blocks each call until its context is done.
	stall bool
}

func (n *recordingNotifier) NotifyOrderConfirmed(ctx context.Context, c domain.OrderConfirmation) error {
	if n.stall {
		<-ctx.Done()
		return ctx.Err()
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, c)
	return nil
}

type recordingPrinter struct {
	mu      sync.Mutex
	printed []domain.Order
	err     error
}

func (p *recordingPrinter) PrintReceipt(_ context.Context, o domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.printed = append(p.printed, o)
	return nil
}

var errPrinterOffline = errors.New("printer offline")
