package sales_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/application/sales"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/infrastructure/memory"
)

func newCustomerUC() (*sales.CustomerUseCase, *memory.CustomerRepo, *memory.SaleRepo) {
	store := memory.NewStore()
	repo := memory.NewCustomerRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	return sales.NewCustomerUseCase(repo, saleRepo), repo, saleRepo
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCustomer(t *testing.T) {
	uc, repo, _ := newCustomerUC()

	c, err := uc.Create(sales.CreateCustomerInput{Name: "Rosa Martínez", Phone: "3015550101"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	assert.True(t, c.TotalPurchases.IsZero(), "los acumuladores nacen en cero")
	assert.Zero(t, c.LoyaltyPoints)

	got, err := repo.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "3015550101", got.Phone)
}

func TestCreateCustomer_TelefonoDuplicado(t *testing.T) {
	uc, _, _ := newCustomerUC()

	_, err := uc.Create(sales.CreateCustomerInput{Name: "Rosa Martínez", Phone: "3015550101"})
	require.NoError(t, err)

	_, err = uc.Create(sales.CreateCustomerInput{Name: "Otra Persona", Phone: "3015550101"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateCustomer_EntradaInvalida(t *testing.T) {
	uc, _, _ := newCustomerUC()

	_, err := uc.Create(sales.CreateCustomerInput{Name: "", Phone: "3015550101"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(sales.CreateCustomerInput{Name: "Rosa Martínez", Phone: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateCustomer_NoTocaAcumuladores(t *testing.T) {
	uc, repo, _ := newCustomerUC()

	c, err := uc.Create(sales.CreateCustomerInput{Name: "Rosa Martínez", Phone: "3015550101"})
	require.NoError(t, err)

	// Simula compras previas acumuladas por el motor de ventas
	require.NoError(t, repo.AddPurchase(c.ID, dec("350"), 3))

	updated, err := uc.Update(c.ID, sales.UpdateCustomerInput{
		Name:  strPtr("Rosa M. Martínez"),
		Email: strPtr("rosa@example.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Rosa M. Martínez", updated.Name)
	assert.Equal(t, "rosa@example.com", updated.Email)
	assert.True(t, updated.TotalPurchases.Equal(dec("350")), "el patch no toca las compras acumuladas")
	assert.Equal(t, 3, updated.LoyaltyPoints)
}

func TestUpdateCustomer_TelefonoOcupado(t *testing.T) {
	uc, _, _ := newCustomerUC()

	_, err := uc.Create(sales.CreateCustomerInput{Name: "Rosa Martínez", Phone: "3015550101"})
	require.NoError(t, err)
	c2, err := uc.Create(sales.CreateCustomerInput{Name: "Luis Pérez", Phone: "3015550102"})
	require.NoError(t, err)

	_, err = uc.Update(c2.ID, sales.UpdateCustomerInput{Phone: strPtr("3015550101")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Re-enviar el mismo teléfono propio no es conflicto
	_, err = uc.Update(c2.ID, sales.UpdateCustomerInput{Phone: strPtr("3015550102")})
	assert.NoError(t, err)
}

func TestUpdateCustomer_Inexistente(t *testing.T) {
	uc, _, _ := newCustomerUC()
	_, err := uc.Update("no-existe", sales.UpdateCustomerInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — misma protección referencial que el borrado de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteCustomer_SinVentas(t *testing.T) {
	uc, repo, _ := newCustomerUC()

	c, err := uc.Create(sales.CreateCustomerInput{Name: "Rosa Martínez", Phone: "3015550101"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(c.ID))

	_, err = repo.GetByID(c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCustomer_ProtegeHistorialDeVentas(t *testing.T) {
	uc, repo, saleRepo := newCustomerUC()

	c, err := uc.Create(sales.CreateCustomerInput{Name: "Rosa Martínez", Phone: "3015550101"})
	require.NoError(t, err)

	require.NoError(t, saleRepo.Create(&entity.Sale{
		ID: "s1", InvoiceNumber: "INV-1", CustomerID: c.ID, UserID: "u1",
		PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusPaid,
		CreatedAt: time.Now(),
	}))

	err = uc.Delete(c.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.GetByID(c.ID)
	assert.NoError(t, err, "el cliente referenciado por ventas sobrevive")
}

func TestDeleteCustomer_Inexistente(t *testing.T) {
	uc, _, _ := newCustomerUC()
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestListCustomers_Paginacion(t *testing.T) {
	uc, _, _ := newCustomerUC()
	for i, phone := range []string{"3015550101", "3015550102", "3015550103"} {
		_, err := uc.Create(sales.CreateCustomerInput{Name: "Cliente", Phone: phone})
		require.NoError(t, err, "cliente %d", i)
	}

	page, err := uc.List(2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := uc.List(2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
