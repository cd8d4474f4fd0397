// Package metrics expone los contadores Prometheus del núcleo de inventario.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores del motor de ventas y del libro de stock, registrados en el
// registry por defecto (expuesto en /metrics).
var (
	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_created_total",
		Help: "Ventas confirmadas (transacción completa).",
	})

	StockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_stock_adjustments_total",
		Help: "Ajustes manuales de stock aplicados, por tipo.",
	}, []string{"type"})

	BulkOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_bulk_operations_total",
		Help: "Operaciones masivas ejecutadas, por operación y resultado.",
	}, []string{"operation", "result"})
)
