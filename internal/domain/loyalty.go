package domain

import (
	"github.com/google/uuid"
	"time"
)

type LoyaltyType string

const (
	LoyaltyEarn   LoyaltyType = "earn"
	LoyaltyRedeem LoyaltyType = "redeem"
)

// LoyaltyTransaction is an append-only ledger row; Delta is positive for earn and negative for redeem.
type LoyaltyTransaction struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	OrderID     *uuid.UUID
	Delta       int64
	Type        LoyaltyType
	Description string
	CreatedAt   time.Time
}
