package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/pdv-core/internal/db"
	"github.com/nikolayk812/pdv-core/internal/domain"
	"github.com/nikolayk812/pdv-core/internal/port"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q       *db.Queries
	starter txStarter
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:       db.New(pool),
		starter: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:       db.New(tx),
		starter: tx,
	}
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.StoreID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("storeID is empty")
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	params, err := mapOrderToInsertParams(order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToInsertParams: %w", err)
	}

	return withTx(ctx, r.starter, func(q *db.Queries) (domain.Order, error) {
		number, err := q.NextOrderNumber(ctx, order.StoreID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.NextOrderNumber: %w", err)
		}
		params.OrderNumber = number

		row, err := q.InsertOrder(ctx, params)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.InsertOrder: %w", err)
		}

		for i, p := range order.Payments {
			err := q.InsertOrderPayment(ctx, db.InsertOrderPaymentParams{
				ID:            uuid.New(),
				OrderID:       order.ID,
				Position:      int32(i),
				MethodName:    p.MethodName,
				MethodID:      p.MethodID,
				Amount:        p.Amount.Amount,
				CardMachineID: p.CardMachineID,
			})
			if err != nil {
				return domain.Order{}, fmt.Errorf("q.InsertOrderPayment: %w", err)
			}
		}

		stored := order
		stored.Number = number
		stored.CreatedAt = row.CreatedAt
		stored.UpdatedAt = row.UpdatedAt
		return stored, nil
	})
}

func (r *orderRepository) InsertOrderLines(ctx context.Context, orderID uuid.UUID, lines []domain.OrderLine) error {
	if orderID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}
	if len(lines) == 0 {
		return nil
	}

	_, err := withTx(ctx, r.starter, func(q *db.Queries) (struct{}, error) {
		for i, line := range lines {
			id := line.ID
			if id == uuid.Nil {
				id = uuid.New()
			}

			err := q.InsertOrderLine(ctx, db.InsertOrderLineParams{
				ID:                 id,
				OrderID:            orderID,
				Position:           int32(i),
				ProductID:          line.ProductID,
				VariationID:        line.VariationID,
				ProductName:        line.ProductName,
				VariationName:      line.VariationName,
				UnitPriceAmount:    line.UnitPrice.Amount,
				Quantity:           int32(line.Quantity),
				SubtotalAmount:     line.Subtotal.Amount,
				RedeemedWithPoints: line.RedeemedWithPoints,
				PointsCost:         line.PointsCost,
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.InsertOrderLine[%d]: %w", i, err)
			}
		}
		return struct{}{}, nil
	})

	return err
}

func (r *orderRepository) GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	if id == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}

	row, err := r.q.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", notFound(err))
	}

	order, err := mapOrderToDomain(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	lineRows, err := r.q.ListOrderLines(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.ListOrderLines: %w", err)
	}
	for _, l := range lineRows {
		order.Lines = append(order.Lines, mapOrderLineToDomain(l, order.Total.Currency))
	}

	paymentRows, err := r.q.ListOrderPayments(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.ListOrderPayments: %w", err)
	}
	for _, p := range paymentRows {
		order.Payments = append(order.Payments, domain.OrderPayment{
			MethodName:    p.MethodName,
			MethodID:      p.MethodID,
			Amount:        domain.NewMoney(p.Amount, order.Total.Currency),
			CardMachineID: p.CardMachineID,
		})
	}

	return order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	if id == uuid.Nil {
		return false, fmt.Errorf("orderID is empty")
	}

	rowsAffected, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		ToStatus:   string(to),
		ID:         id,
		FromStatus: string(from),
	})
	if err != nil {
		return false, fmt.Errorf("q.UpdateOrderStatus: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapOrderToInsertParams(order domain.Order) (db.InsertOrderParams, error) {
	var address []byte
	if order.DeliveryAddress != nil {
		var err error
		address, err = json.Marshal(order.DeliveryAddress)
		if err != nil {
			return db.InsertOrderParams{}, fmt.Errorf("json.Marshal: %w", err)
		}
	}

	var scheduledMinute *int32
	if order.ScheduledTime != nil {
		m := int32(*order.ScheduledTime)
		scheduledMinute = &m
	}

	params := db.InsertOrderParams{
		ID:                  order.ID,
		StoreID:             order.StoreID,
		Channel:             string(order.Channel),
		CustomerID:          order.CustomerID,
		CustomerName:        order.CustomerName,
		CustomerPhone:       order.CustomerPhone,
		Status:              string(order.Status),
		Currency:            order.Total.Currency.String(),
		SubtotalAmount:      order.Subtotal.Amount,
		DiscountAmount:      order.Discount.Amount,
		DeliveryFeeAmount:   order.DeliveryFee.Amount,
		TotalAmount:         order.Total.Amount,
		PointsUsed:          order.PointsUsed,
		PaymentMethod:       order.PaymentMethod,
		PaymentMode:         string(order.PaymentMode),
		IsDelivery:          order.IsDelivery,
		DeliveryAddress:     address,
		ScheduledDate:       domain.DateOnly(order.ScheduledDate),
		ScheduledTimeMinute: scheduledMinute,
		CouponID:            order.CouponID,
		CashRegisterID:      order.CashRegisterID,
		Notes:               order.Notes,
	}
	if order.ChangeFor != nil {
		params.ChangeForAmount = &order.ChangeFor.Amount
	}

	return params, nil
}

func mapOrderToDomain(row db.Order) (domain.Order, error) {
	unit, err := parseCurrency(row.Currency)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:             row.ID,
		StoreID:        row.StoreID,
		Number:         row.OrderNumber,
		Channel:        domain.Channel(row.Channel),
		CustomerID:     row.CustomerID,
		CustomerName:   row.CustomerName,
		CustomerPhone:  row.CustomerPhone,
		Status:         domain.OrderStatus(row.Status),
		Subtotal:       domain.NewMoney(row.SubtotalAmount, unit),
		Discount:       domain.NewMoney(row.DiscountAmount, unit),
		DeliveryFee:    domain.NewMoney(row.DeliveryFeeAmount, unit),
		Total:          domain.NewMoney(row.TotalAmount, unit),
		PointsUsed:     row.PointsUsed,
		PaymentMethod:  row.PaymentMethod,
		PaymentMode:    domain.PaymentMode(row.PaymentMode),
		IsDelivery:     row.IsDelivery,
		ScheduledDate:  row.ScheduledDate,
		CouponID:       row.CouponID,
		CashRegisterID: row.CashRegisterID,
		Notes:          row.Notes,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if row.ChangeForAmount != nil {
		change := domain.NewMoney(*row.ChangeForAmount, unit)
		order.ChangeFor = &change
	}
	if row.ScheduledTimeMinute != nil {
		t := domain.TimeOfDay(*row.ScheduledTimeMinute)
		order.ScheduledTime = &t
	}
	if len(row.DeliveryAddress) > 0 {
		var address domain.Address
		if err := json.Unmarshal(row.DeliveryAddress, &address); err != nil {
			return domain.Order{}, fmt.Errorf("json.Unmarshal: %w", err)
		}
		order.DeliveryAddress = &address
	}

	return order, nil
}

func mapOrderLineToDomain(row db.OrderLine, unit currency.Unit) domain.OrderLine {
	return domain.OrderLine{
		ID:                 row.ID,
		OrderID:            row.OrderID,
		ProductID:          row.ProductID,
		VariationID:        row.VariationID,
		ProductName:        row.ProductName,
		VariationName:      row.VariationName,
		UnitPrice:          domain.NewMoney(row.UnitPriceAmount, unit),
		Quantity:           int(row.Quantity),
		Subtotal:           domain.NewMoney(row.SubtotalAmount, unit),
		RedeemedWithPoints: row.RedeemedWithPoints,
		PointsCost:         row.PointsCost,
	}
}
