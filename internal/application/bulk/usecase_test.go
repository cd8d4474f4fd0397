package bulk_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/application/bulk"
	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

type bulkFixture struct {
	store       *memory.Store
	productRepo *memory.ProductRepo
	saleRepo    *memory.SaleRepo
	uc          *bulk.BulkCoordinatorUseCase
}

func newBulkFixture() *bulkFixture {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	adjustmentRepo := memory.NewStockAdjustmentRepository(store)
	ledgerUC := ledger.NewStockLedgerUseCase(memory.NewTxRunner(store), productRepo, adjustmentRepo)
	return &bulkFixture{
		store:       store,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		uc:          bulk.NewBulkCoordinatorUseCase(productRepo, saleRepo, ledgerUC),
	}
}

func (f *bulkFixture) seedProduct(t *testing.T, id string, price string, stock int) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, f.productRepo.Create(&entity.Product{
		ID:            id,
		Code:          "SKU-" + id,
		Name:          "Producto " + id,
		Category:      "general",
		Price:         decimal.RequireFromString(price),
		CostPrice:     decimal.RequireFromString(price),
		MRP:           decimal.RequireFromString(price),
		StockQuantity: stock,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// ApplyPriceOperation — la aritmética de precios
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyPriceOperation(t *testing.T) {
	cases := []struct {
		name      string
		old       string
		operation string
		value     string
		want      string
	}{
		{"increase suma", "100", bulk.PriceOpIncrease, "15", "115"},
		{"decrease resta", "100", bulk.PriceOpDecrease, "40", "60"},
		{"decrease acotada en cero", "30", bulk.PriceOpDecrease, "50", "0"},
		{"increasePercent 10% sobre 100", "100", bulk.PriceOpIncreasePercent, "10", "110"},
		{"increasePercent 10% sobre 200", "200", bulk.PriceOpIncreasePercent, "10", "220"},
		{"decreasePercent 25%", "80", bulk.PriceOpDecreasePercent, "25", "60"},
		{"set asigna", "100", bulk.PriceOpSet, "42.50", "42.50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := bulk.ApplyPriceOperation(dec(tc.old), tc.operation, dec(tc.value))
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tc.want)), "esperado %s, obtenido %s", tc.want, got)
		})
	}

	t.Run("operación desconocida", func(t *testing.T) {
		_, err := bulk.ApplyPriceOperation(dec("100"), "divide", dec("2"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestApplyPriceOperation_SetEsIdempotente(t *testing.T) {
	once, err := bulk.ApplyPriceOperation(dec("100"), bulk.PriceOpSet, dec("75"))
	require.NoError(t, err)
	twice, err := bulk.ApplyPriceOperation(once, bulk.PriceOpSet, dec("75"))
	require.NoError(t, err)
	assert.True(t, once.Equal(twice), "aplicar set dos veces deja el mismo valor")
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkUpdatePrices
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkUpdatePrices_IncreasePercent(t *testing.T) {
	f := newBulkFixture()
	f.seedProduct(t, "p1", "100", 0)
	f.seedProduct(t, "p2", "200", 0)

	result, err := f.uc.BulkUpdatePrices(context.Background(),
		[]string{"p1", "p2"}, bulk.PriceFieldPrice, bulk.PriceOpIncreasePercent, dec("10"))
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 2)
	assert.Empty(t, result.Failed)

	p1, _ := f.productRepo.GetByID("p1")
	p2, _ := f.productRepo.GetByID("p2")
	assert.True(t, p1.Price.Equal(dec("110")))
	assert.True(t, p2.Price.Equal(dec("220")))
}

func TestBulkUpdatePrices_SoloElCampoIndicado(t *testing.T) {
	f := newBulkFixture()
	f.seedProduct(t, "p1", "100", 0)

	_, err := f.uc.BulkUpdatePrices(context.Background(),
		[]string{"p1"}, bulk.PriceFieldCostPrice, bulk.PriceOpSet, dec("55"))
	require.NoError(t, err)

	p, _ := f.productRepo.GetByID("p1")
	assert.True(t, p.CostPrice.Equal(dec("55")), "costPrice cambia")
	assert.True(t, p.Price.Equal(dec("100")), "price queda intacto")
	assert.True(t, p.MRP.Equal(dec("100")), "mrp queda intacto")
}

func TestBulkUpdatePrices_ValidaAntesDeTocarNada(t *testing.T) {
	f := newBulkFixture()
	f.seedProduct(t, "p1", "100", 0)
	ctx := context.Background()

	_, err := f.uc.BulkUpdatePrices(ctx, []string{"p1"}, "peso", bulk.PriceOpSet, dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "campo desconocido rechaza el lote completo")

	_, err = f.uc.BulkUpdatePrices(ctx, []string{"p1"}, bulk.PriceFieldPrice, "divide", dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "operación desconocida rechaza el lote completo")

	_, err = f.uc.BulkUpdatePrices(ctx, []string{"p1"}, bulk.PriceFieldPrice, bulk.PriceOpSet, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor negativo rechaza el lote completo")

	p, _ := f.productRepo.GetByID("p1")
	assert.True(t, p.Price.Equal(dec("100")), "nada debe haber mutado")
}

func TestBulkUpdatePrices_ResultadoParcial(t *testing.T) {
	f := newBulkFixture()
	f.seedProduct(t, "p1", "100", 0)

	result, err := f.uc.BulkUpdatePrices(context.Background(),
		[]string{"p1", "fantasma"}, bulk.PriceFieldPrice, bulk.PriceOpIncrease, dec("5"))
	require.NoError(t, err)

	assert.Equal(t, []string{"p1"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "fantasma", result.Failed[0].ProductID)
	assert.ErrorIs(t, result.Failed[0].Err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkUpdateProducts
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkUpdateProducts_AplicaSoloCamposPresentes(t *testing.T) {
	f := newBulkFixture()
	f.seedProduct(t, "p1", "100", 7)
	f.seedProduct(t, "p2", "50", 3)

	category := "licores"
	minLevel := 12
	result, err := f.uc.BulkUpdateProducts(context.Background(),
		[]string{"p1", "p2"}, catalog.UpdateProductInput{
			Category:      &category,
			MinStockLevel: &minLevel,
		})
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 2)

	for _, id := range []string{"p1", "p2"} {
		p, err := f.productRepo.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, "licores", p.Category)
		assert.Equal(t, 12, p.MinStockLevel)
		assert.Equal(t, "Producto "+id, p.Name, "los campos ausentes no cambian")
	}
	p1, _ := f.productRepo.GetByID("p1")
	assert.Equal(t, 7, p1.StockQuantity, "el saldo de stock nunca se toca por esta vía")
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkDeleteProducts — protección del historial de ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkDeleteProducts_ProtegeReferenciados(t *testing.T) {
	f := newBulkFixture()
	f.seedProduct(t, "vendido", "10", 5)
	f.seedProduct(t, "libre", "10", 5)

	// "vendido" aparece en una línea de venta
	require.NoError(t, f.saleRepo.Create(&entity.Sale{
		ID: "s1", InvoiceNumber: "INV-1", UserID: testUserID,
		PaymentMethod: entity.PaymentMethodCash, PaymentStatus: entity.PaymentStatusPaid,
		CreatedAt: time.Now(),
	}))
	require.NoError(t, f.saleRepo.CreateItem(&entity.SaleItem{
		ID: "i1", SaleID: "s1", ProductID: "vendido", Quantity: 1, Price: dec("10"),
	}))

	result, err := f.uc.BulkDeleteProducts(context.Background(), []string{"vendido", "libre"})
	require.NoError(t, err)

	assert.Equal(t, []string{"libre"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "vendido", result.Failed[0].ProductID)
	assert.ErrorIs(t, result.Failed[0].Err, domain.ErrConflict)

	_, err = f.productRepo.GetByID("vendido")
	assert.NoError(t, err, "el producto referenciado sigue existiendo")
	_, err = f.productRepo.GetByID("libre")
	assert.ErrorIs(t, err, domain.ErrNotFound, "el no referenciado se eliminó")
}

// ──────────────────────────────────────────────────────────────────────────────
// PreviewBulkStockAdjust — calcular sin confirmar
// ──────────────────────────────────────────────────────────────────────────────

func TestPreviewBulkStockAdjust_NoMutaNada(t *testing.T) {
	f := newBulkFixture()
	f.seedProduct(t, "p1", "10", 3)
	f.seedProduct(t, "p2", "10", 25)

	rows, err := f.uc.PreviewBulkStockAdjust(context.Background(),
		[]string{"p1", "p2"}, entity.AdjustmentTypeSubtract, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 3, rows[0].CurrentStock)
	assert.Equal(t, 0, rows[0].NewStock, "subtract acotado en cero también en la vista previa")
	assert.Equal(t, -3, rows[0].Change)

	assert.Equal(t, 25, rows[1].CurrentStock)
	assert.Equal(t, 15, rows[1].NewStock)
	assert.Equal(t, -10, rows[1].Change)

	// La vista previa es pura: los saldos reales no cambian
	p1, _ := f.productRepo.GetByID("p1")
	p2, _ := f.productRepo.GetByID("p2")
	assert.Equal(t, 3, p1.StockQuantity)
	assert.Equal(t, 25, p2.StockQuantity)
}

func TestPreviewBulkStockAdjust_ProductoInexistente(t *testing.T) {
	f := newBulkFixture()
	f.seedProduct(t, "p1", "10", 3)

	_, err := f.uc.PreviewBulkStockAdjust(context.Background(),
		[]string{"p1", "fantasma"}, entity.AdjustmentTypeAdd, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound, "la vista previa exige que toda la selección exista")
}

func TestPreviewYConfirmarCoinciden(t *testing.T) {
	// El contrato calcular-y-confirmar: el saldo confirmado debe ser el que
	// anunció la vista previa.
	f := newBulkFixture()
	f.seedProduct(t, "p1", "10", 8)
	ctx := context.Background()

	rows, err := f.uc.PreviewBulkStockAdjust(ctx, []string{"p1"}, entity.AdjustmentTypeSet, 30)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	result, err := f.uc.BulkAdjustStock(ctx, []string{"p1"}, testUserID, entity.AdjustmentTypeSet, 30, "conteo", "")
	require.NoError(t, err)
	require.Len(t, result.Succeeded, 1)

	assert.Equal(t, rows[0].NewStock, result.Succeeded[0].StockQuantity)
}
