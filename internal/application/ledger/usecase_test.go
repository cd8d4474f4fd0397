package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "00000000-0000-0000-0000-000000000001"

type ledgerFixture struct {
	store          *memory.Store
	txRunner       *memory.TxRunner
	productRepo    *memory.ProductRepo
	adjustmentRepo *memory.StockAdjustmentRepo
	uc             *ledger.StockLedgerUseCase
}

func newLedgerFixture() *ledgerFixture {
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	productRepo := memory.NewProductRepository(store)
	adjustmentRepo := memory.NewStockAdjustmentRepository(store)
	return &ledgerFixture{
		store:          store,
		txRunner:       txRunner,
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
		uc:             ledger.NewStockLedgerUseCase(txRunner, productRepo, adjustmentRepo),
	}
}

func (f *ledgerFixture) seedProduct(t *testing.T, id string, stock int) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID:            id,
		Code:          "SKU-" + id,
		Name:          "Producto " + id,
		Price:         decimal.NewFromInt(100),
		CostPrice:     decimal.NewFromInt(80),
		StockQuantity: stock,
		MinStockLevel: 5,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, f.productRepo.Create(p))
	return p
}

func adjustInput(productID, adjType string, qty int) ledger.AdjustStockInput {
	return ledger.AdjustStockInput{
		ProductID: productID,
		UserID:    testUserID,
		Type:      adjType,
		Quantity:  qty,
		Reason:    "conteo físico",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyAdjustment — la aritmética de los tres tipos de ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyAdjustment(t *testing.T) {
	cases := []struct {
		name    string
		before  int
		adjType string
		qty     int
		want    int
	}{
		{"add suma al saldo", 3, entity.AdjustmentTypeAdd, 10, 13},
		{"subtract resta del saldo", 13, entity.AdjustmentTypeSubtract, 3, 10},
		{"subtract queda acotado en cero", 13, entity.AdjustmentTypeSubtract, 20, 0},
		{"set asigna la cantidad tal cual", 13, entity.AdjustmentTypeSet, 7, 7},
		{"set a cero vacía el saldo", 13, entity.AdjustmentTypeSet, 0, 0},
		{"add de cero no cambia nada", 13, entity.AdjustmentTypeAdd, 0, 13},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.ApplyAdjustment(tc.before, tc.adjType, tc.qty))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock — saldo, auditoría e invariantes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_AddActualizaSaldoYAuditoria(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "p1", 3)

	updated, err := f.uc.AdjustStock(context.Background(), adjustInput("p1", entity.AdjustmentTypeAdd, 10))
	require.NoError(t, err)
	assert.Equal(t, 13, updated.StockQuantity, "el saldo debe quedar en 3+10=13")

	adjustments, err := f.adjustmentRepo.ListByProduct("p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, adjustments, 1, "debe quedar exactamente un registro de auditoría")

	adj := adjustments[0]
	assert.Equal(t, 3, adj.QuantityBefore)
	assert.Equal(t, 13, adj.QuantityAfter)
	assert.Equal(t, 10, adj.QuantityChange)
	assert.Equal(t, testUserID, adj.UserID)
	assert.Equal(t, "conteo físico", adj.Reason)
}

func TestAdjustStock_SubtractAcotadoEnCero(t *testing.T) {
	// subtract 20 sobre saldo 13: el saldo queda en 0 y el registro de
	// auditoría refleja el cambio real (-13), no la cantidad pedida (-20).
	f := newLedgerFixture()
	f.seedProduct(t, "p1", 13)

	updated, err := f.uc.AdjustStock(context.Background(), adjustInput("p1", entity.AdjustmentTypeSubtract, 20))
	require.NoError(t, err)
	assert.Equal(t, 0, updated.StockQuantity)

	adjustments, err := f.adjustmentRepo.ListByProduct("p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, 13, adjustments[0].QuantityBefore)
	assert.Equal(t, 0, adjustments[0].QuantityAfter)
	assert.Equal(t, -13, adjustments[0].QuantityChange)
}

func TestAdjustStock_InvarianteDelRegistro(t *testing.T) {
	// Para cualquier ajuste: QuantityAfter - QuantityBefore == QuantityChange.
	f := newLedgerFixture()
	f.seedProduct(t, "p1", 8)

	ctx := context.Background()
	inputs := []ledger.AdjustStockInput{
		adjustInput("p1", entity.AdjustmentTypeAdd, 4),
		adjustInput("p1", entity.AdjustmentTypeSubtract, 30),
		adjustInput("p1", entity.AdjustmentTypeSet, 15),
	}
	for _, in := range inputs {
		_, err := f.uc.AdjustStock(ctx, in)
		require.NoError(t, err)
	}

	adjustments, err := f.adjustmentRepo.ListByProduct("p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, adjustments, 3)
	for _, adj := range adjustments {
		assert.Equal(t, adj.QuantityChange, adj.QuantityAfter-adj.QuantityBefore,
			"after - before debe ser igual a change en cada registro")
	}
}

func TestAdjustStock_EntradaInvalida(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "p1", 10)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ledger.AdjustStockInput
	}{
		{"cantidad negativa", adjustInput("p1", entity.AdjustmentTypeAdd, -5)},
		{"tipo desconocido", adjustInput("p1", "transfer", 5)},
		{"sin razón", ledger.AdjustStockInput{ProductID: "p1", UserID: testUserID, Type: entity.AdjustmentTypeAdd, Quantity: 5}},
		{"sin usuario", ledger.AdjustStockInput{ProductID: "p1", Type: entity.AdjustmentTypeAdd, Quantity: 5, Reason: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.AdjustStock(ctx, tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Nada de lo anterior debe haber mutado el saldo ni dejado auditoría
	p, err := f.productRepo.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity)
	adjustments, _ := f.adjustmentRepo.ListByProduct("p1", 10, 0)
	assert.Empty(t, adjustments)
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	f := newLedgerFixture()
	_, err := f.uc.AdjustStock(context.Background(), adjustInput("no-existe", entity.AdjustmentTypeAdd, 5))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_RollbackSiFallaLaAuditoria(t *testing.T) {
	// Si el INSERT del registro de auditoría falla, el UPDATE del saldo debe
	// revertirse: nunca un saldo modificado sin su registro.
	f := newLedgerFixture()
	f.seedProduct(t, "p1", 10)

	failing := memory.NewStockAdjustmentRepository(f.store)
	failing.FailCreate = errors.New("insert falló")
	f.txRunner.AdjustmentRepo = failing

	_, err := f.uc.AdjustStock(context.Background(), adjustInput("p1", entity.AdjustmentTypeAdd, 5))
	require.Error(t, err)

	p, err := f.productRepo.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQuantity, "el saldo debe quedar intacto tras el rollback")
	adjustments, _ := f.adjustmentRepo.ListByProduct("p1", 10, 0)
	assert.Empty(t, adjustments, "no debe quedar registro de auditoría")
}

// ──────────────────────────────────────────────────────────────────────────────
// BulkAdjustStock — resultado parcial explícito
// ──────────────────────────────────────────────────────────────────────────────

func TestBulkAdjustStock_ReportaExitosYFallas(t *testing.T) {
	f := newLedgerFixture()
	f.seedProduct(t, "p1", 3)
	f.seedProduct(t, "p2", 7)

	result, err := f.uc.BulkAdjustStock(context.Background(),
		[]string{"p1", "no-existe", "p2"}, testUserID, entity.AdjustmentTypeAdd, 10, "reposición", "")
	require.NoError(t, err, "el lote no debe fallar como un todo")

	require.Len(t, result.Succeeded, 2)
	assert.Equal(t, 13, result.Succeeded[0].StockQuantity)
	assert.Equal(t, 17, result.Succeeded[1].StockQuantity)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "no-existe", result.Failed[0].ProductID)
	assert.ErrorIs(t, result.Failed[0].Err, domain.ErrNotFound)
}

func TestBulkAdjustStock_LoteVacio(t *testing.T) {
	f := newLedgerFixture()
	_, err := f.uc.BulkAdjustStock(context.Background(), nil, testUserID, entity.AdjustmentTypeAdd, 1, "x", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBulkAdjustStock_AjustesPreviosQuedanConfirmados(t *testing.T) {
	// Cada ajuste del lote es atómico por sí solo: una falla a mitad del lote
	// no revierte los ajustes ya confirmados.
	f := newLedgerFixture()
	f.seedProduct(t, "p1", 5)

	result, err := f.uc.BulkAdjustStock(context.Background(),
		[]string{"p1", "fantasma"}, testUserID, entity.AdjustmentTypeSet, 50, "inventario", "")
	require.NoError(t, err)
	require.Len(t, result.Succeeded, 1)
	require.Len(t, result.Failed, 1)

	p, err := f.productRepo.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 50, p.StockQuantity, "el ajuste confirmado antes de la falla se conserva")
}
