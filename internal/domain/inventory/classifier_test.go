package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/inventory"
)

// lote construye un producto de prueba ya clasificado (Derive asume que
// Status y DaysRemaining vienen recalculados).
func lote(id string, status entity.Status, days, qty int, price, dailySales float64, minStock int) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		Lot:           "L-" + id,
		Status:        status,
		DaysRemaining: days,
		Quantity:      qty,
		UnitPrice:     decimal.NewFromFloat(price),
		AvgDailySales: decimal.NewFromFloat(dailySales),
		MinStockLevel: minStock,
		Location:      entity.Location{Aisle: "A1", Shelf: "P2"},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Valor en riesgo: solo critical|warning suman; safe queda fuera.
// ──────────────────────────────────────────────────────────────────────────────

func TestDerive_ValorEnRiesgoExcluyeSeguros(t *testing.T) {
	products := []*entity.Product{
		lote("a", entity.StatusCritical, 10, 100, 10.00, 0, 0), // 1000.00
		lote("b", entity.StatusWarning, 60, 50, 22.50, 0, 0),   // 1125.00
		lote("c", entity.StatusSafe, 200, 999, 99.99, 0, 0),    // fuera
	}
	views := inventory.Derive(products)

	assert.Equal(t, 1, views.StatusCounts.Critical)
	assert.Equal(t, 1, views.StatusCounts.Warning)
	assert.Equal(t, 1, views.StatusCounts.Safe)
	assert.True(t, views.TotalValueAtRisk.Equal(decimal.NewFromFloat(2125.00)),
		"valor en riesgo debe ser 1000 + 1125, obtuve %s", views.TotalValueAtRisk)
}

func TestDerive_AlmacenVacio(t *testing.T) {
	views := inventory.Derive(nil)
	assert.Equal(t, inventory.StatusCounts{}, views.StatusCounts)
	assert.True(t, views.TotalValueAtRisk.IsZero())
	assert.Empty(t, views.SmartAlerts)
	assert.Empty(t, views.UrgentReorder)
	assert.Empty(t, views.SmartReorder)
	assert.Empty(t, views.TopMovers)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas: un mismo lote puede disparar la de pérdida y la de retiro.
// ──────────────────────────────────────────────────────────────────────────────

func TestDerive_LoteDisparaAmbasAlertas(t *testing.T) {
	// 10 días, 80 unidades, crítico: pasa ambos chequeos.
	p := lote("x", entity.StatusCritical, 10, 80, 5.00, 0, 0)
	views := inventory.Derive([]*entity.Product{p})

	require.Len(t, views.SmartAlerts, 2, "debe producir alerta de pérdida y de retiro")
	assert.Equal(t, "alert-x", views.SmartAlerts[0].ID)
	assert.Equal(t, "Alto riesgo de pérdida", views.SmartAlerts[0].Title)
	assert.Equal(t, "crit-x", views.SmartAlerts[1].ID)
	assert.Equal(t, "Retiro inmediato", views.SmartAlerts[1].Title)
	assert.Equal(t, "x", views.SmartAlerts[1].RelatedProductID)
}

func TestDerive_AlertaDePerdidaEsProspectiva(t *testing.T) {
	// 45 días (warning) con 60 unidades: dispara la de pérdida pero no la de
	// retiro, que exige estado crítico.
	p := lote("y", entity.StatusWarning, 45, 60, 5.00, 0, 0)
	views := inventory.Derive([]*entity.Product{p})

	require.Len(t, views.SmartAlerts, 1)
	assert.Equal(t, "alert-y", views.SmartAlerts[0].ID)
}

func TestDerive_PocasUnidadesNoAlertan(t *testing.T) {
	// 50 unidades exactas no superan el umbral (es estrictamente mayor).
	p := lote("z", entity.StatusWarning, 45, 50, 5.00, 0, 0)
	views := inventory.Derive([]*entity.Product{p})
	assert.Empty(t, views.SmartAlerts, "50 unidades no deben disparar la alerta de pérdida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listas de reposición: urgente vs. oportunidad, y exclusión de lotes por vencer.
// ──────────────────────────────────────────────────────────────────────────────

func TestDerive_ReposicionUrgentePorStockMinimo(t *testing.T) {
	// 12 unidades ≤ mínimo 50: urgente aunque la cobertura (12/0.8 = 15) sea sana.
	p := lote("u1", entity.StatusSafe, 200, 12, 3.00, 0.8, 50)
	views := inventory.Derive([]*entity.Product{p})

	require.Len(t, views.UrgentReorder, 1)
	assert.Equal(t, "u1", views.UrgentReorder[0].Product.ID)
	assert.Empty(t, views.SmartReorder, "un lote urgente no aparece también en oportunidad")
}

func TestDerive_ReposicionUrgentePorCobertura(t *testing.T) {
	// 45/40 = 1.125 días de cobertura < 5: urgente aun con stock sobre el mínimo.
	p := lote("u2", entity.StatusSafe, 200, 45, 3.00, 40, 10)
	views := inventory.Derive([]*entity.Product{p})

	require.Len(t, views.UrgentReorder, 1)
	assert.True(t, views.UrgentReorder[0].CoverageDays.LessThan(decimal.NewFromInt(5)))
}

func TestDerive_CompraDeOportunidad(t *testing.T) {
	// 30/2 = 15 días de cobertura, dentro de [5, 20]: oportunidad.
	p := lote("s1", entity.StatusSafe, 200, 30, 3.00, 2, 10)
	views := inventory.Derive([]*entity.Product{p})

	assert.Empty(t, views.UrgentReorder)
	require.Len(t, views.SmartReorder, 1)
	assert.True(t, views.SmartReorder[0].CoverageDays.Equal(decimal.NewFromInt(15)))
}

func TestDerive_LotesPorVencerNoSeReponen(t *testing.T) {
	// Mismos números que el caso urgente, pero estado crítico: reponer un lote
	// que se va a perder duplicaría la pérdida.
	critico := lote("c1", entity.StatusCritical, 10, 12, 3.00, 0.8, 50)
	warning := lote("w1", entity.StatusWarning, 60, 30, 3.00, 2, 10)
	views := inventory.Derive([]*entity.Product{critico, warning})

	assert.Empty(t, views.UrgentReorder, "un lote crítico jamás entra a la lista urgente")
	assert.Empty(t, views.SmartReorder, "un lote en atención jamás entra a oportunidad")
}

func TestDerive_SinGiroNoEsUrgentePorCobertura(t *testing.T) {
	// Venta diaria 0 → cobertura centinela 999: solo el stock mínimo puede
	// hacerlo urgente.
	p := lote("n1", entity.StatusSafe, 200, 3, 3.00, 0, 0)
	views := inventory.Derive([]*entity.Product{p})

	assert.Empty(t, views.UrgentReorder, "3 unidades sobre mínimo 0 y sin giro: no hay urgencia")
	assert.Empty(t, views.SmartReorder, "cobertura 999 queda fuera de la ventana [5,20]")
}

// ──────────────────────────────────────────────────────────────────────────────
// Top movers: orden estable descendente, truncado a 5.
// ──────────────────────────────────────────────────────────────────────────────

func TestDerive_TopMoversOrdenYLimite(t *testing.T) {
	products := []*entity.Product{
		lote("m1", entity.StatusSafe, 200, 10, 1, 2.5, 0),
		lote("m2", entity.StatusSafe, 200, 10, 1, 15, 0),
		lote("m3", entity.StatusSafe, 200, 10, 1, 8, 0),
		lote("m4", entity.StatusSafe, 200, 10, 1, 10, 0),
		lote("m5", entity.StatusSafe, 200, 10, 1, 1, 0),
		lote("m6", entity.StatusSafe, 200, 10, 1, 0.5, 0),
	}
	views := inventory.Derive(products)

	require.Len(t, views.TopMovers, 5, "el ranking se trunca a 5")
	ids := []string{views.TopMovers[0].ID, views.TopMovers[1].ID, views.TopMovers[2].ID, views.TopMovers[3].ID}
	assert.Equal(t, []string{"m2", "m4", "m3", "m1"}, ids, "orden descendente por giro")
}

func TestDerive_TopMoversEmpateConservaOrdenDeEntrada(t *testing.T) {
	a := lote("a", entity.StatusSafe, 200, 10, 1, 5, 0)
	b := lote("b", entity.StatusSafe, 200, 10, 1, 5, 0)
	views := inventory.Derive([]*entity.Product{a, b})

	require.Len(t, views.TopMovers, 2)
	assert.Equal(t, "a", views.TopMovers[0].ID, "empate: el orden de entrada se conserva")
	assert.Equal(t, "b", views.TopMovers[1].ID)
}

func TestDerive_NoMutaLaEntrada(t *testing.T) {
	products := []*entity.Product{
		lote("p1", entity.StatusSafe, 200, 10, 1, 1, 0),
		lote("p2", entity.StatusSafe, 200, 10, 1, 9, 0),
	}
	_ = inventory.Derive(products)
	assert.Equal(t, "p1", products[0].ID, "Derive no debe reordenar la lista original")
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia del motor completo.
// ──────────────────────────────────────────────────────────────────────────────

func TestDerive_Idempotente(t *testing.T) {
	products := []*entity.Product{
		lote("a", entity.StatusCritical, 10, 80, 5.00, 3, 20),
		lote("b", entity.StatusSafe, 200, 12, 3.00, 0.8, 50),
		lote("c", entity.StatusSafe, 200, 30, 3.00, 2, 10),
	}
	first := inventory.Derive(products)
	second := inventory.Derive(products)
	assert.Equal(t, first, second, "misma entrada, mismas vistas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Filter: estado + término de búsqueda.
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_PorEstadoYTermino(t *testing.T) {
	dipirona := lote("1", entity.StatusCritical, 10, 5, 1, 0, 0)
	dipirona.Name = "Dipirona 500mg"
	dipirona.Lot = "L2024-001"
	amoxi := lote("2", entity.StatusSafe, 200, 5, 1, 0, 0)
	amoxi.Name = "Amoxicilina 875mg"
	amoxi.Location.Aisle = "B3"
	products := []*entity.Product{dipirona, amoxi}

	assert.Len(t, inventory.Filter(products, "all", ""), 2)
	assert.Len(t, inventory.Filter(products, "", ""), 2, "estado vacío equivale a all")
	assert.Len(t, inventory.Filter(products, "critical", ""), 1)

	// Término sin distinguir mayúsculas, sobre nombre, lote o corredor.
	assert.Len(t, inventory.Filter(products, "all", "DIPIRONA"), 1)
	assert.Len(t, inventory.Filter(products, "all", "l2024"), 1)
	assert.Len(t, inventory.Filter(products, "all", "b3"), 1)
	assert.Len(t, inventory.Filter(products, "all", "inexistente"), 0)

	// Combinado: el término correcto con el estado equivocado no coincide.
	assert.Len(t, inventory.Filter(products, "safe", "dipirona"), 0)
}
