package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/inventory"
)

// ReorderSuggestionDTO lote sugerido para reposición.
type ReorderSuggestionDTO struct {
	Product      ProductResponse `json:"product"`
	CoverageDays decimal.Decimal `json:"coverage_days"` // 999 = sin giro registrado
}

// TopMoverDTO entrada del ranking de más vendidos.
type TopMoverDTO struct {
	Rank          int             `json:"rank"`
	ProductID     string          `json:"product_id"`
	Name          string          `json:"name"`
	AvgDailySales decimal.Decimal `json:"avg_daily_sales"`
}

// DashboardDTO todas las vistas derivadas del inventario, recalculadas desde
// cero en cada petición.
type DashboardDTO struct {
	StatusCounts     inventory.StatusCounts `json:"status_counts"`
	TotalValueAtRisk decimal.Decimal        `json:"total_value_at_risk"`
	SmartAlerts      []entity.SmartAlert    `json:"smart_alerts"`
	UrgentReorder    []ReorderSuggestionDTO `json:"urgent_reorder"`
	SmartReorder     []ReorderSuggestionDTO `json:"smart_reorder"`
	TopMovers        []TopMoverDTO          `json:"top_movers"`
}

// ToDashboardDTO mapea las vistas del motor al DTO de salida.
func ToDashboardDTO(v inventory.Views) DashboardDTO {
	out := DashboardDTO{
		StatusCounts:     v.StatusCounts,
		TotalValueAtRisk: v.TotalValueAtRisk.Round(2),
		SmartAlerts:      v.SmartAlerts,
		UrgentReorder:    make([]ReorderSuggestionDTO, 0, len(v.UrgentReorder)),
		SmartReorder:     make([]ReorderSuggestionDTO, 0, len(v.SmartReorder)),
		TopMovers:        make([]TopMoverDTO, 0, len(v.TopMovers)),
	}
	for _, s := range v.UrgentReorder {
		out.UrgentReorder = append(out.UrgentReorder, ReorderSuggestionDTO{
			Product:      ToProductResponse(s.Product),
			CoverageDays: s.CoverageDays.Round(1),
		})
	}
	for _, s := range v.SmartReorder {
		out.SmartReorder = append(out.SmartReorder, ReorderSuggestionDTO{
			Product:      ToProductResponse(s.Product),
			CoverageDays: s.CoverageDays.Round(1),
		})
	}
	for i, p := range v.TopMovers {
		out.TopMovers = append(out.TopMovers, TopMoverDTO{
			Rank:          i + 1,
			ProductID:     p.ID,
			Name:          p.Name,
			AvgDailySales: p.AvgDailySales,
		})
	}
	return out
}
