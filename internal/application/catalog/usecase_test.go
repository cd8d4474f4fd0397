package catalog_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
	"github.com/jhoicas/retail-pos-api/internal/infrastructure/memory"
)

type catalogFixture struct {
	store       *memory.Store
	productRepo *memory.ProductRepo
	saleRepo    *memory.SaleRepo
	uc          *catalog.ProductUseCase
}

func newCatalogFixture() *catalogFixture {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	return &catalogFixture{
		store:       store,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		uc:          catalog.NewProductUseCase(productRepo, saleRepo),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string          { return &s }
func intPtr(n int) *int                { return &n }
func decPtr(s string) *decimal.Decimal { d := dec(s); return &d }

func validInput(code string) catalog.CreateProductInput {
	return catalog.CreateProductInput{
		Code:          code,
		Name:          "Cargador USB-C",
		Category:      "accesorios",
		Price:         dec("25.00"),
		CostPrice:     dec("14.00"),
		StockQuantity: 8,
		MinStockLevel: 3,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ProductoNuevo(t *testing.T) {
	f := newCatalogFixture()

	p, err := f.uc.Create(validInput("ACC-001"))
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.True(t, p.IsActive, "los productos nacen activos")
	assert.Equal(t, 8, p.StockQuantity)

	got, err := f.productRepo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACC-001", got.Code)
}

func TestCreate_CodigoDuplicado(t *testing.T) {
	f := newCatalogFixture()

	_, err := f.uc.Create(validInput("ACC-001"))
	require.NoError(t, err)

	_, err = f.uc.Create(validInput("ACC-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*catalog.CreateProductInput)
	}{
		{"sin código", func(in *catalog.CreateProductInput) { in.Code = "" }},
		{"sin nombre", func(in *catalog.CreateProductInput) { in.Name = "" }},
		{"precio negativo", func(in *catalog.CreateProductInput) { in.Price = dec("-1") }},
		{"costo negativo", func(in *catalog.CreateProductInput) { in.CostPrice = dec("-0.01") }},
		{"stock inicial negativo", func(in *catalog.CreateProductInput) { in.StockQuantity = -1 }},
		{"mínimo negativo", func(in *catalog.CreateProductInput) { in.MinStockLevel = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCatalogFixture()
			in := validInput("ACC-001")
			tc.mutate(&in)
			_, err := f.uc.Create(in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — semántica de patch
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_SoloCamposPresentes(t *testing.T) {
	f := newCatalogFixture()
	p, err := f.uc.Create(validInput("ACC-001"))
	require.NoError(t, err)

	updated, err := f.uc.Update(p.ID, catalog.UpdateProductInput{
		Price:    decPtr("29.90"),
		Category: strPtr("cables"),
	})
	require.NoError(t, err)

	assert.True(t, updated.Price.Equal(dec("29.90")))
	assert.Equal(t, "cables", updated.Category)
	assert.Equal(t, "Cargador USB-C", updated.Name, "los campos ausentes no se tocan")
	assert.True(t, updated.CostPrice.Equal(dec("14.00")))
	assert.Equal(t, 8, updated.StockQuantity, "el patch nunca toca el saldo")
}

func TestUpdate_RechazaValoresInvalidos(t *testing.T) {
	f := newCatalogFixture()
	p, err := f.uc.Create(validInput("ACC-001"))
	require.NoError(t, err)

	cases := []struct {
		name string
		in   catalog.UpdateProductInput
	}{
		{"nombre vacío", catalog.UpdateProductInput{Name: strPtr("")}},
		{"precio negativo", catalog.UpdateProductInput{Price: decPtr("-5")}},
		{"costo negativo", catalog.UpdateProductInput{CostPrice: decPtr("-5")}},
		{"mínimo negativo", catalog.UpdateProductInput{MinStockLevel: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Update(p.ID, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	got, err := f.productRepo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cargador USB-C", got.Name, "nada quedó a medio aplicar")
	assert.True(t, got.Price.Equal(dec("25.00")))
}

func TestUpdate_ProductoInexistente(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.uc.Update("no-existe", catalog.UpdateProductInput{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetActive y Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestSetActive_Desactiva(t *testing.T) {
	f := newCatalogFixture()
	p, err := f.uc.Create(validInput("ACC-001"))
	require.NoError(t, err)

	require.NoError(t, f.uc.SetActive(p.ID, false))

	got, err := f.productRepo.GetByID(p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, f.uc.SetActive("no-existe", false), domain.ErrNotFound)
}

func TestDelete_SinReferencias(t *testing.T) {
	f := newCatalogFixture()
	p, err := f.uc.Create(validInput("ACC-001"))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(p.ID))

	_, err = f.productRepo.GetByID(p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ProtegeHistorialDeVentas(t *testing.T) {
	f := newCatalogFixture()
	p, err := f.uc.Create(validInput("ACC-001"))
	require.NoError(t, err)

	require.NoError(t, f.saleRepo.Create(&entity.Sale{
		ID: "s1", InvoiceNumber: "INV-1", UserID: "u1",
		PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusPaid,
		CreatedAt: time.Now(),
	}))
	require.NoError(t, f.saleRepo.CreateItem(&entity.SaleItem{
		ID: "i1", SaleID: "s1", ProductID: p.ID, Quantity: 1, Price: dec("25.00"),
	}))

	err = f.uc.Delete(p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.productRepo.GetByID(p.ID)
	assert.NoError(t, err, "el producto referenciado sobrevive; desactivar es la salida")
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltroYPaginacion(t *testing.T) {
	f := newCatalogFixture()
	for _, code := range []string{"ACC-001", "ACC-002", "TEL-001"} {
		in := validInput(code)
		if code == "TEL-001" {
			in.Category = "telefonos"
			in.Name = "Teléfono básico"
		}
		_, err := f.uc.Create(in)
		require.NoError(t, err)
	}

	byCategory, err := f.uc.List(repository.ProductFilter{Category: "accesorios", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	bySearch, err := f.uc.List(repository.ProductFilter{Search: "teléfono", Limit: 10})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "TEL-001", bySearch[0].Code)

	paged, err := f.uc.List(repository.ProductFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestList_LimiteFueraDeRangoUsaDefault(t *testing.T) {
	f := newCatalogFixture()
	_, err := f.uc.Create(validInput("ACC-001"))
	require.NoError(t, err)

	// límite 0 y límite absurdo caen al default; no debe fallar
	for _, limit := range []int{0, 100000} {
		got, err := f.uc.List(repository.ProductFilter{Limit: limit})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Predicado de stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestIsLowStock_FronteraInclusiva(t *testing.T) {
	p := entity.Product{MinStockLevel: 5}

	p.StockQuantity = 6
	assert.False(t, p.IsLowStock())

	p.StockQuantity = 5
	assert.True(t, p.IsLowStock(), "stock igual al mínimo ya es stock bajo")

	p.StockQuantity = 0
	assert.True(t, p.IsLowStock())
}
