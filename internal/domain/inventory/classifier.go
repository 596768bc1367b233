// Package inventory implementa el motor de clasificación de stock (servicio de
// dominio): KPIs de pérdida por vencimiento, alertas inteligentes y listas de
// reposición, derivados en una sola pasada sobre la lista completa de lotes.
package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
)

const (
	// WarningHorizonDays horizonte D-90 usado por la alerta prospectiva de pérdida.
	WarningHorizonDays = 90
	// lossRiskQtyThreshold unidades mínimas para que un lote por vencer
	// dispare la alerta de alto riesgo de pérdida.
	lossRiskQtyThreshold = 50
	// withdrawDays horizonte de retiro inmediato de góndola.
	withdrawDays = 15
	// urgentCoverageDays cobertura mínima antes de considerar ruptura.
	urgentCoverageDays = 5
	// smartCoverageMaxDays cobertura máxima para sugerir compra de oportunidad.
	smartCoverageMaxDays = 20
	// topMoversLimit tamaño del ranking de más vendidos.
	topMoversLimit = 5
)

// coverageSentinel cobertura "infinita" para lotes sin giro registrado: un lote
// con venta diaria 0 nunca entra a la lista urgente por la rama de cobertura.
var coverageSentinel = decimal.NewFromInt(999)

// StatusCounts conteo de lotes por estado de vencimiento.
type StatusCounts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Safe     int `json:"safe"`
}

// ReorderSuggestion lote sugerido para reposición, con su cobertura calculada.
type ReorderSuggestion struct {
	Product      *entity.Product
	CoverageDays decimal.Decimal // quantity / avgDailySales; 999 si no hay giro
}

// Views vistas derivadas del inventario. Se reconstruyen completas en cada
// llamada a Derive; nunca se parchean incrementalmente, así la salida es
// idéntica byte a byte para la misma entrada.
type Views struct {
	StatusCounts     StatusCounts
	TotalValueAtRisk decimal.Decimal // Σ cantidad × precio sobre critical|warning
	SmartAlerts      []entity.SmartAlert
	UrgentReorder    []ReorderSuggestion // riesgo de ruptura
	SmartReorder     []ReorderSuggestion // compra de oportunidad
	TopMovers        []*entity.Product   // top 5 por giro, orden estable
}

// Derive recorre la lista completa de lotes y produce todas las vistas en una
// sola pasada. Asume que Status y DaysRemaining de cada lote ya fueron
// recalculados desde ExpiryDate (ver expiry.Classify); los campos numéricos
// ausentes llegan como cero desde el almacén, nunca como valores basura.
func Derive(products []*entity.Product) Views {
	views := Views{
		TotalValueAtRisk: decimal.Zero,
		SmartAlerts:      []entity.SmartAlert{},
		UrgentReorder:    []ReorderSuggestion{},
		SmartReorder:     []ReorderSuggestion{},
	}

	for _, p := range products {
		switch p.Status {
		case entity.StatusCritical:
			views.StatusCounts.Critical++
		case entity.StatusWarning:
			views.StatusCounts.Warning++
		case entity.StatusSafe:
			views.StatusCounts.Safe++
		}

		// 1. Valor en riesgo: exposición monetaria de lotes por vencer.
		if p.Status == entity.StatusCritical || p.Status == entity.StatusWarning {
			qty := decimal.NewFromInt(int64(p.Quantity))
			views.TotalValueAtRisk = views.TotalValueAtRisk.Add(qty.Mul(p.UnitPrice))
		}

		// 2. Alertas de vencimiento. El chequeo de alto riesgo mira los días
		// crudos (prospectivo), no el estado ya clasificado; un mismo lote
		// puede producir hasta dos alertas.
		if p.DaysRemaining < WarningHorizonDays && p.Quantity > lossRiskQtyThreshold {
			views.SmartAlerts = append(views.SmartAlerts, entity.SmartAlert{
				ID:    "alert-" + p.ID,
				Type:  entity.AlertCritical,
				Title: "Alto riesgo de pérdida",
				Message: fmt.Sprintf("%s tiene %d un. venciendo en %d días. Sugerencia: acción promocional inmediata.",
					p.Name, p.Quantity, p.DaysRemaining),
				RelatedProductID: p.ID,
			})
		}
		if p.DaysRemaining < withdrawDays && p.Status == entity.StatusCritical {
			views.SmartAlerts = append(views.SmartAlerts, entity.SmartAlert{
				ID:    "crit-" + p.ID,
				Type:  entity.AlertCritical,
				Title: "Retiro inmediato",
				Message: fmt.Sprintf("%s vence en menos de %d días. Retirar de la góndola %s ahora.",
					p.Name, withdrawDays, aisleOrUnknown(p)),
				RelatedProductID: p.ID,
			})
		}

		// 3. Inteligencia de compras. Solo lotes seguros: un lote ya marcado
		// para retiro por vencimiento no debe aparecer a la vez en una lista
		// de reposición (pérdida doble).
		coverage := coverageDays(p)
		belowMin := p.Quantity <= p.MinStockLevel
		if belowMin || coverage.LessThan(decimal.NewFromInt(urgentCoverageDays)) {
			if p.Status == entity.StatusSafe {
				views.UrgentReorder = append(views.UrgentReorder, ReorderSuggestion{Product: p, CoverageDays: coverage})
			}
		} else if p.Status == entity.StatusSafe &&
			coverage.GreaterThanOrEqual(decimal.NewFromInt(urgentCoverageDays)) &&
			coverage.LessThanOrEqual(decimal.NewFromInt(smartCoverageMaxDays)) {
			views.SmartReorder = append(views.SmartReorder, ReorderSuggestion{Product: p, CoverageDays: coverage})
		}
	}

	// 4. Más vendidos: orden estable descendente por giro, truncado a 5.
	movers := make([]*entity.Product, len(products))
	copy(movers, products)
	sort.SliceStable(movers, func(i, j int) bool {
		return movers[i].AvgDailySales.GreaterThan(movers[j].AvgDailySales)
	})
	if len(movers) > topMoversLimit {
		movers = movers[:topMoversLimit]
	}
	views.TopMovers = movers

	return views
}

// coverageDays días de cobertura al ritmo de venta actual.
func coverageDays(p *entity.Product) decimal.Decimal {
	if p.AvgDailySales.LessThanOrEqual(decimal.Zero) {
		return coverageSentinel
	}
	return decimal.NewFromInt(int64(p.Quantity)).Div(p.AvgDailySales)
}

func aisleOrUnknown(p *entity.Product) string {
	if p.Location.Aisle == "" {
		return "?"
	}
	return p.Location.Aisle
}

// FilterAll valor de filtro que acepta cualquier estado.
const FilterAll = "all"

// Filter devuelve los lotes cuyo estado coincide con el filtro ("all" acepta
// todos) y cuyo nombre, lote o corredor contiene el término, sin distinguir
// mayúsculas. Término vacío coincide con todo. No muta la lista de entrada.
func Filter(products []*entity.Product, status, term string) []*entity.Product {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if status != FilterAll && status != "" && string(p.Status) != status {
			continue
		}
		if term != "" && !matchesTerm(p, term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTerm(p *entity.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Lot), term) ||
		strings.Contains(strings.ToLower(p.Location.Aisle), term)
}
