package domain

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Cart struct {
	StoreID  uuid.UUID
	Currency currency.Unit
	Lines    []CartLine
}

type CartLine struct {
	ProductID     uuid.UUID
	VariationID   *uuid.UUID
	ProductName   string
	VariationName string

	// UnitPrice is the product base price plus the variation adjustment.
	UnitPrice Money
	Quantity  int

	RedeemedWithPoints bool
	PointsCost         int64

	// PointsPerUnit is the loyalty earn rate per currency unit spent on this product.
	PointsPerUnit decimal.Decimal
}

// LineTotal is the monetary contribution of the line; redeemed lines contribute zero.
func (l CartLine) LineTotal() Money {
	if l.RedeemedWithPoints {
		return Zero(l.UnitPrice.Currency)
	}
	return l.UnitPrice.Mul(l.Quantity)
}

// PointsTotal is the points contribution of the line; paid lines contribute zero.
func (l CartLine) PointsTotal() int64 {
	if !l.RedeemedWithPoints {
		return 0
	}
	return l.PointsCost * int64(l.Quantity)
}

func (l CartLine) Validate() error {
	if l.ProductID == uuid.Nil {
		return fmt.Errorf("%w: product id is empty", ErrInvalidCart)
	}
	if l.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidCart)
	}
	if l.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price is negative", ErrInvalidCart)
	}
	if l.RedeemedWithPoints && l.PointsCost <= 0 {
		return fmt.Errorf("%w: redeemed line without points cost", ErrInvalidCart)
	}
	return nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c Cart) MonetarySubtotal() Money {
	total := Zero(c.Currency)
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func (c Cart) PointsRequired() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.PointsTotal()
	}
	return total
}

func (c Cart) HasRedeemedLines() bool {
	for _, l := range c.Lines {
		if l.RedeemedWithPoints {
			return true
		}
	}
	return false
}

func (c Cart) Validate() error {
	if c.IsEmpty() {
		return ErrEmptyCart
	}
	for i, l := range c.Lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("line[%d]: %w", i, err)
		}
		if l.UnitPrice.Currency != c.Currency {
			return fmt.Errorf("line[%d]: %w: currency %s differs from cart currency %s",
				i, ErrInvalidCart, l.UnitPrice.Currency, c.Currency)
		}
	}
	return nil
}
