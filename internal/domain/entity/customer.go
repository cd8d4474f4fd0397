package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la tienda. TotalPurchases y LoyaltyPoints
// son acumuladores: solo los incrementa el motor de ventas.
type Customer struct {
	ID             string
	Name           string
	Phone          string // único
	Email          string // opcional
	Address        string // opcional
	TotalPurchases decimal.Decimal
	LoyaltyPoints  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
