package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID      uuid.UUID
	StoreID uuid.UUID
	Name    string
	Price   Money
	// Stock is nil when the product does not track inventory.
	Stock         *int
	PointsCost    int64
	PointsPerUnit decimal.Decimal
	Active        bool
}

type Variation struct {
	ID              uuid.UUID
	ProductID       uuid.UUID
	Name            string
	PriceAdjustment Money
	Stock           *int
}

// StockDecrement reports the outcome of a floor-at-zero stock decrement.
type StockDecrement struct {
	Before    int
	After     int
	Requested int
}

// Shortfall is the part of the requested quantity that could not be covered by stock.
func (d StockDecrement) Shortfall() int {
	if d.Requested <= d.Before {
		return 0
	}
	return d.Requested - d.Before
}

// LineFromCatalog builds a cart line priced from the live product and optional variation.
func LineFromCatalog(p Product, v *Variation, qty int, redeem bool) CartLine {
	line := CartLine{
		ProductID:          p.ID,
		ProductName:        p.Name,
		UnitPrice:          p.Price,
		Quantity:           qty,
		RedeemedWithPoints: redeem,
		PointsCost:         p.PointsCost,
		PointsPerUnit:      p.PointsPerUnit,
	}
	if v != nil {
		id := v.ID
		line.VariationID = &id
		line.VariationName = v.Name
		line.UnitPrice = p.Price.Add(v.PriceAdjustment)
	}
	return line
}
