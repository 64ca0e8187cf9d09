package domain

import (
	"github.com/google/uuid"
	"strings"
	"time"
)

type Customer struct {
	ID      uuid.UUID
	StoreID uuid.UUID
	Name    string
	Phone   string
	// Points is the cached loyalty balance, kept in sync by every ledger write.
	Points int64

	CreatedAt time.Time
}

type Address struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
	Complement   string
	Reference    string
}

func (a Address) IsComplete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.Number) != "" &&
		strings.TrimSpace(a.Neighborhood) != ""
}

func (a Address) String() string {
	parts := []string{a.Street + ", " + a.Number}
	if a.Complement != "" {
		parts = append(parts, a.Complement)
	}
	parts = append(parts, a.Neighborhood)
	if a.City != "" {
		parts = append(parts, a.City)
	}
	return strings.Join(parts, " - ")
}

// NormalizePhone keeps digits only so lookups do not depend on formatting.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
