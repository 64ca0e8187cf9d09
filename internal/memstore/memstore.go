// Package memstore keeps every store record in process memory. It backs the
// service tests and the binary when it runs without a database.
package memstore

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	_ port.StoreRepository         = (*Store)(nil)
	_ port.CustomerRepository      = (*Store)(nil)
	_ port.AddressRepository       = (*Store)(nil)
	_ port.CatalogRepository       = (*Store)(nil)
	_ port.PaymentMethodRepository = (*Store)(nil)
	_ port.OrderRepository         = (*Store)(nil)
	_ port.LoyaltyRepository       = (*Store)(nil)
	_ port.CouponRepository        = (*Store)(nil)
	_ port.CashRegisterRepository  = (*Store)(nil)
	_ port.ScheduleRepository      = (*Store)(nil)
	_ port.CartStore               = (*Store)(nil)
)

type Store struct {
	mu sync.RWMutex

	stores       map[uuid.UUID]domain.Store
	customers    map[uuid.UUID]domain.Customer
	addresses    map[uuid.UUID][]domain.Address
	products     map[uuid.UUID]domain.Product
	variations   map[uuid.UUID]domain.Variation
	methods      map[uuid.UUID]domain.CustomMethod
	orders       map[uuid.UUID]domain.Order
	counters     map[uuid.UUID]int64
	ledger       []domain.LoyaltyTransaction
	coupons      map[uuid.UUID]domain.Coupon
	usages       []domain.CouponUsage
	sessions     map[uuid.UUID]domain.CashRegisterSession
	weeklyHours  map[uuid.UUID]map[time.Weekday]domain.WeeklyHours
	dateOverride map[uuid.UUID]map[string]domain.DateOverride
	carts        map[string]domain.Cart

	failures map[string]error
}

func New() *Store {
	return &Store{
		stores:       make(map[uuid.UUID]domain.Store),
		customers:    make(map[uuid.UUID]domain.Customer),
		addresses:    make(map[uuid.UUID][]domain.Address),
		products:     make(map[uuid.UUID]domain.Product),
		variations:   make(map[uuid.UUID]domain.Variation),
		methods:      make(map[uuid.UUID]domain.CustomMethod),
		orders:       make(map[uuid.UUID]domain.Order),
		counters:     make(map[uuid.UUID]int64),
		coupons:      make(map[uuid.UUID]domain.Coupon),
		sessions:     make(map[uuid.UUID]domain.CashRegisterSession),
		weeklyHours:  make(map[uuid.UUID]map[time.Weekday]domain.WeeklyHours),
		dateOverride: make(map[uuid.UUID]map[string]domain.DateOverride),
		carts:        make(map[string]domain.Cart),
		failures:     make(map[string]error),
	}
}

// FailOn makes every call of the named method return err until cleared with a nil err.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

func (s *Store) failure(method string) error {
	return s.failures[method]
}

// stores

func (s *Store) CreateStore(_ context.Context, store domain.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("CreateStore"); err != nil {
		return err
	}
	if store.CreatedAt.IsZero() {
		store.CreatedAt = time.Now()
	}
	s.stores[store.ID] = store
	return nil
}

func (s *Store) GetStore(_ context.Context, id uuid.UUID) (domain.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	store, ok := s.stores[id]
	if !ok {
		return domain.Store{}, domain.ErrNotFound
	}
	return store, nil
}

func (s *Store) InitialStatus(ctx context.Context, storeID uuid.UUID) (domain.OrderStatus, error) {
	store, err := s.GetStore(ctx, storeID)
	if err != nil {
		return "", err
	}
	return store.InitialStatus(), nil
}

func (s *Store) ActiveFlow(ctx context.Context, storeID uuid.UUID) ([]domain.OrderStatus, error) {
	store, err := s.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return store.ActiveFlow(), nil
}

// customers

func (s *Store) GetCustomer(_ context.Context, id uuid.UUID) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *Store) GetCustomerByPhone(_ context.Context, storeID uuid.UUID, phone string) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customerByPhone(storeID, domain.NormalizePhone(phone))
	if !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *Store) customerByPhone(storeID uuid.UUID, phone string) (domain.Customer, bool) {
	for _, c := range s.customers {
		if c.StoreID == storeID && c.Phone == phone {
			return c, true
		}
	}
	return domain.Customer{}, false
}

func (s *Store) UpsertCustomer(_ context.Context, storeID uuid.UUID, name, phone string) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("UpsertCustomer"); err != nil {
		return domain.Customer{}, err
	}
	phone = domain.NormalizePhone(phone)
	if c, ok := s.customerByPhone(storeID, phone); ok {
		return c, nil
	}
	c := domain.Customer{
		ID:        uuid.New(),
		StoreID:   storeID,
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	s.customers[c.ID] = c
	return c, nil
}

func (s *Store) SaveAddress(_ context.Context, customerID uuid.UUID, address domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("SaveAddress"); err != nil {
		return err
	}
	if !address.IsComplete() {
		return domain.ErrAddressIncomplete
	}
	s.addresses[customerID] = append(s.addresses[customerID], address)
	return nil
}

func (s *Store) Addresses(customerID uuid.UUID) []domain.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.addresses[customerID])
}

// catalog

func (s *Store) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *Store) GetVariation(_ context.Context, id uuid.UUID) (domain.Variation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.variations[id]
	if !ok {
		return domain.Variation{}, domain.ErrNotFound
	}
	return v, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
	return nil
}

func (s *Store) CreateVariation(_ context.Context, variation domain.Variation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variations[variation.ID] = variation
	return nil
}

func (s *Store) DecrementProductStock(_ context.Context, id uuid.UUID, quantity int) (domain.StockDecrement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("DecrementProductStock"); err != nil {
		return domain.StockDecrement{}, err
	}
	p, ok := s.products[id]
	if !ok || p.Stock == nil {
		return domain.StockDecrement{}, domain.ErrNotFound
	}
	dec, after := floorDecrement(*p.Stock, quantity)
	p.Stock = &after
	s.products[id] = p
	return dec, nil
}

func (s *Store) DecrementVariationStock(_ context.Context, id uuid.UUID, quantity int) (domain.StockDecrement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("DecrementVariationStock"); err != nil {
		return domain.StockDecrement{}, err
	}
	v, ok := s.variations[id]
	if !ok || v.Stock == nil {
		return domain.StockDecrement{}, domain.ErrNotFound
	}
	dec, after := floorDecrement(*v.Stock, quantity)
	v.Stock = &after
	s.variations[id] = v
	return dec, nil
}

func floorDecrement(before, quantity int) (domain.StockDecrement, int) {
	after := max(before-quantity, 0)
	return domain.StockDecrement{Before: before, After: after, Requested: quantity}, after
}

func (s *Store) GetPaymentMethod(_ context.Context, id uuid.UUID) (domain.CustomMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.methods[id]
	if !ok {
		return domain.CustomMethod{}, domain.ErrNotFound
	}
	return m, nil
}

func (s *Store) ListPaymentMethods(_ context.Context, storeID uuid.UUID) ([]domain.CustomMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CustomMethod
	for _, m := range s.methods {
		if m.StoreID == storeID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreatePaymentMethod(_ context.Context, method domain.CustomMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[method.ID] = method
	return nil
}

// orders

func (s *Store) InsertOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("InsertOrder"); err != nil {
		return domain.Order{}, err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.counters[order.StoreID]++
	order.Number = s.counters[order.StoreID]
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	s.orders[order.ID] = order
	return order, nil
}

func (s *Store) InsertOrderLines(_ context.Context, orderID uuid.UUID, lines []domain.OrderLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("InsertOrderLines"); err != nil {
		return err
	}
	o, ok := s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, l := range lines {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		l.OrderID = orderID
		o.Lines = append(o.Lines, l)
	}
	s.orders[orderID] = o
	return nil
}

func (s *Store) GetOrder(_ context.Context, id uuid.UUID) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrNotFound
	}
	return o, nil
}

func (s *Store) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	s.orders[id] = o
	return true, nil
}

func (s *Store) Orders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// loyalty

func (s *Store) AppendTransaction(_ context.Context, tx domain.LoyaltyTransaction) (domain.LoyaltyTransaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("AppendTransaction"); err != nil {
		return domain.LoyaltyTransaction{}, 0, err
	}
	c, ok := s.customers[tx.CustomerID]
	if !ok {
		return domain.LoyaltyTransaction{}, 0, domain.ErrNotFound
	}
	if tx.OrderID != nil {
		for _, existing := range s.ledger {
			if existing.OrderID != nil && *existing.OrderID == *tx.OrderID && existing.Type == tx.Type {
				return domain.LoyaltyTransaction{}, 0, domain.ErrAlreadyRecorded
			}
		}
	}
	if c.Points+tx.Delta < 0 {
		return domain.LoyaltyTransaction{}, 0, domain.ErrInsufficientPoints
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.CreatedAt = time.Now()
	c.Points += tx.Delta
	s.customers[c.ID] = c
	s.ledger = append(s.ledger, tx)
	return tx, c.Points, nil
}

func (s *Store) ListTransactions(_ context.Context, customerID uuid.UUID) ([]domain.LoyaltyTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.LoyaltyTransaction
	for _, tx := range s.ledger {
		if tx.CustomerID == customerID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Store) SumDeltas(ctx context.Context, customerID uuid.UUID) (int64, error) {
	txs, _ := s.ListTransactions(ctx, customerID)
	var sum int64
	for _, tx := range txs {
		sum += tx.Delta
	}
	return sum, nil
}

// coupons

func (s *Store) GetCouponByCode(_ context.Context, storeID uuid.UUID, code string) (domain.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.coupons {
		if c.StoreID == storeID && strings.EqualFold(c.Code, strings.TrimSpace(code)) {
			return c, nil
		}
	}
	return domain.Coupon{}, domain.ErrNotFound
}

func (s *Store) CountCustomerUsages(_ context.Context, couponID uuid.UUID, phone string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	phone = domain.NormalizePhone(phone)
	count := 0
	for _, u := range s.usages {
		if u.CouponID == couponID && u.CustomerPhone == phone {
			count++
		}
	}
	return count, nil
}

func (s *Store) RegisterUsage(_ context.Context, usage domain.CouponUsage) (domain.CouponUseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("RegisterUsage"); err != nil {
		return domain.CouponUseResult{}, err
	}
	c, ok := s.coupons[usage.CouponID]
	if !ok {
		return domain.CouponUseResult{}, domain.ErrNotFound
	}
	for _, u := range s.usages {
		if u.CouponID == usage.CouponID && u.OrderID == usage.OrderID {
			return domain.CouponUseResult{}, domain.ErrAlreadyRecorded
		}
	}
	if usage.ID == uuid.Nil {
		usage.ID = uuid.New()
	}
	usage.CustomerPhone = domain.NormalizePhone(usage.CustomerPhone)
	usage.CreatedAt = time.Now()
	s.usages = append(s.usages, usage)
	c.Uses++
	s.coupons[c.ID] = c
	return domain.CouponUseResult{Uses: c.Uses, MaxUses: c.MaxUses}, nil
}

func (s *Store) CreateCoupon(_ context.Context, coupon domain.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[coupon.ID] = coupon
	return nil
}

// cash register

func (s *Store) GetOpenSession(_ context.Context, storeID uuid.UUID) (domain.CashRegisterSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.openSession(storeID); ok {
		return sess, nil
	}
	return domain.CashRegisterSession{}, domain.ErrNotFound
}

func (s *Store) openSession(storeID uuid.UUID) (domain.CashRegisterSession, bool) {
	for _, sess := range s.sessions {
		if sess.StoreID == storeID && sess.IsOpen() {
			return sess, true
		}
	}
	return domain.CashRegisterSession{}, false
}

func (s *Store) OpenSession(_ context.Context, session domain.CashRegisterSession) (domain.CashRegisterSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.openSession(session.StoreID); ok {
		return domain.CashRegisterSession{}, domain.ErrRegisterAlreadyOpen
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.ClosedAt = nil
	session.ClosingAmount = nil
	s.sessions[session.ID] = session
	return session, nil
}

func (s *Store) CloseSession(_ context.Context, storeID uuid.UUID, closedAt time.Time, closingAmount domain.Money) (domain.CashRegisterSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.openSession(storeID)
	if !ok {
		return domain.CashRegisterSession{}, domain.ErrNotFound
	}
	sess.ClosedAt = &closedAt
	sess.ClosingAmount = &closingAmount
	s.sessions[sess.ID] = sess
	return sess, nil
}

// schedule

func (s *Store) WeeklyHours(_ context.Context, storeID uuid.UUID) ([]domain.WeeklyHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.WeeklyHours
	for _, h := range s.weeklyHours[storeID] {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (s *Store) DateOverrides(_ context.Context, storeID uuid.UUID, from, to time.Time) ([]domain.DateOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fromKey, toKey := dateKey(from), dateKey(to)
	var out []domain.DateOverride
	for key, o := range s.dateOverride[storeID] {
		if key >= fromKey && key <= toKey {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return dateKey(out[i].Date) < dateKey(out[j].Date) })
	return out, nil
}

func (s *Store) SetWeeklyHours(_ context.Context, storeID uuid.UUID, hours domain.WeeklyHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.weeklyHours[storeID] == nil {
		s.weeklyHours[storeID] = make(map[time.Weekday]domain.WeeklyHours)
	}
	s.weeklyHours[storeID][hours.Weekday] = hours
	return nil
}

func (s *Store) SetDateOverride(_ context.Context, storeID uuid.UUID, override domain.DateOverride) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dateOverride[storeID] == nil {
		s.dateOverride[storeID] = make(map[string]domain.DateOverride)
	}
	s.dateOverride[storeID][dateKey(override.Date)] = override
	return nil
}

func dateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// carts

func (s *Store) GetCart(_ context.Context, storeID uuid.UUID, sessionID string) (domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[cartKey(storeID, sessionID)]
	if !ok {
		return domain.Cart{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *Store) SaveCart(_ context.Context, storeID uuid.UUID, sessionID string, cart domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartKey(storeID, sessionID)] = cart
	return nil
}

func (s *Store) ClearCart(_ context.Context, storeID uuid.UUID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("ClearCart"); err != nil {
		return err
	}
	delete(s.carts, cartKey(storeID, sessionID))
	return nil
}

func cartKey(storeID uuid.UUID, sessionID string) string {
	return storeID.String() + ":" + sessionID
}
