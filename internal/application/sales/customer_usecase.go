package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para la cuenta de cliente. Los acumuladores
// (TotalPurchases, LoyaltyPoints) no se tocan aquí: solo los escribe el motor
// de ventas dentro de su transacción.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	saleRepo repository.SaleRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, saleRepo repository.SaleRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, saleRepo: saleRepo}
}

// CreateCustomerInput entrada para crear un cliente.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Create crea un nuevo cliente. El teléfono es único.
func (uc *CustomerUseCase) Create(in CreateCustomerInput) (*entity.Customer, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByPhone(in.Phone)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          in.Email,
		Address:        in.Address,
		TotalPurchases: decimal.Zero,
		LoyaltyPoints:  0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// UpdateCustomerInput patch de campos de identidad del cliente.
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// Update actualiza los campos presentes del cliente. No permite modificar los
// acumuladores de compras ni los puntos.
func (uc *CustomerUseCase) Update(id string, in UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Phone != nil && *in.Phone != customer.Phone {
		existing, _ := uc.repo.GetByPhone(*in.Phone)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		customer.Phone = *in.Phone
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete elimina un cliente. Si existen ventas que lo referencian retorna
// ErrConflict: el historial de ventas no se rompe (misma protección que el
// borrado de productos).
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.saleRepo.CountByCustomer(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) ([]*entity.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(limit, offset)
}
