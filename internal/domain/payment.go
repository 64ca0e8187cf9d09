package domain

import (
	"github.com/google/uuid"
	"slices"
)

type PaymentMode string

const (
	PaymentSingle  PaymentMode = "single"
	PaymentReserve PaymentMode = "reserve"
	PaymentSplit   PaymentMode = "split"
)

// LoyaltyMethodName prefixes the payment description of orders that redeemed points.
const LoyaltyMethodName = "Fidelidade"

// PaymentMethod is either a FixedMethod or a store-configured CustomMethod.
type PaymentMethod interface {
	MethodName() string
	AllowedOn(ch Channel) bool
}

type FixedMethod string

const (
	MethodPix     FixedMethod = "pix"
	MethodCredit  FixedMethod = "credit"
	MethodDebit   FixedMethod = "debit"
	MethodCash    FixedMethod = "cash"
	MethodReserve FixedMethod = "reserve"
)

var fixedMethodNames = map[FixedMethod]string{
	MethodPix:     "Pix",
	MethodCredit:  "Cartão de Crédito",
	MethodDebit:   "Cartão de Débito",
	MethodCash:    "Dinheiro",
	MethodReserve: "Pagar na Retirada",
}

func ParseFixedMethod(s string) (FixedMethod, bool) {
	m := FixedMethod(s)
	_, ok := fixedMethodNames[m]
	return m, ok
}

func (m FixedMethod) MethodName() string {
	return fixedMethodNames[m]
}

func (m FixedMethod) AllowedOn(Channel) bool {
	_, ok := fixedMethodNames[m]
	return ok
}

type CustomMethod struct {
	ID              uuid.UUID
	StoreID         uuid.UUID
	Name            string
	AllowedChannels []Channel
}

func (m CustomMethod) MethodName() string {
	return m.Name
}

func (m CustomMethod) AllowedOn(ch Channel) bool {
	return slices.Contains(m.AllowedChannels, ch)
}

type PaymentLeg struct {
	Method        PaymentMethod
	Amount        Money
	CardMachineID *uuid.UUID
}

type PaymentSelection struct {
	Mode PaymentMode
	Legs []PaymentLeg

	CashReceived *Money
	ChangeDue    Money
}

func (s PaymentSelection) Total(zero Money) Money {
	total := zero
	for _, leg := range s.Legs {
		total = total.Add(leg.Amount)
	}
	return total
}
