package domain

import (
	"github.com/google/uuid"
	"time"
)

type CashRegisterSession struct {
	ID            uuid.UUID
	StoreID       uuid.UUID
	OpenedAt      time.Time
	ClosedAt      *time.Time
	OpeningAmount Money
	ClosingAmount *Money
}

func (s CashRegisterSession) IsOpen() bool {
	return s.ClosedAt == nil
}
