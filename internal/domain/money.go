package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// minorUnit is the rounding tolerance for monetary comparisons.
var minorUnit = decimal.New(1, -2)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, unit currency.Unit) Money {
	return Money{Amount: amount, Currency: unit}
}

func Zero(unit currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: unit}
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}
}

func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount.Sub(o.Amount), Currency: m.Currency}
}

func (m Money) Mul(qty int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(qty))), Currency: m.Currency}
}

// Round rounds half away from zero to cents.
func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(2), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

func (m Money) ClampZero() Money {
	if m.Amount.IsNegative() {
		return Money{Amount: decimal.Zero, Currency: m.Currency}
	}
	return m
}

func (m Money) Min(o Money) Money {
	if o.Amount.LessThan(m.Amount) {
		return Money{Amount: o.Amount, Currency: m.Currency}
	}
	return m
}

func (m Money) LessThan(o Money) bool {
	return m.Amount.LessThan(o.Amount)
}

func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.Amount.Equal(o.Amount)
}

// WithinTolerance reports whether m and o differ by at most one minor currency unit.
func (m Money) WithinTolerance(o Money) bool {
	return m.Amount.Sub(o.Amount).Abs().LessThanOrEqual(minorUnit)
}

func (m Money) String() string {
	return m.Currency.String() + " " + m.Amount.StringFixed(2)
}
