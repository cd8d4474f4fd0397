package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// AddPurchase incrementa los acumuladores de forma atómica en la fila
// (UPDATE ... SET total_purchases = total_purchases + $n); lo usa el motor
// de ventas dentro de su transacción.
// Contrato de fila ausente: los Get* retornan (nil, domain.ErrNotFound),
// nunca (nil, nil).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByPhone(phone string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	AddPurchase(customerID string, amount decimal.Decimal, loyaltyPoints int) error
	List(limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
}
