// Package reports arma el reporte D-90 de pérdidas proyectadas: todos los
// lotes en ventana crítica o de atención, con su valor en riesgo, listo para
// imprimir y llevar a la reunión de compras.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
)

// AtRiskLister entrega los lotes en riesgo ya reclasificados y su valor total.
type AtRiskLister interface {
	AtRisk(ctx context.Context) ([]*entity.Product, decimal.Decimal, error)
}

// ExpiryReportGenerator puerto de salida hacia el generador de documentos.
// Cualquier adaptador (Maroto, mock) implementa este contrato; la aplicación
// no conoce el formato concreto.
type ExpiryReportGenerator interface {
	GenerateExpiryReport(ctx context.Context, data *ExpiryReportData) ([]byte, error)
}

// ExpiryReportItem una línea del reporte.
type ExpiryReportItem struct {
	Name          string
	Lot           string
	InternalCode  string
	ExpiryDate    string
	DaysRemaining int
	Status        entity.Status
	Quantity      int
	UnitPrice     decimal.Decimal
	Value         decimal.Decimal
	Location      string
}

// ExpiryReportData insumo completo del documento.
type ExpiryReportData struct {
	GeneratedAt      time.Time
	TotalValueAtRisk decimal.Decimal
	Items            []ExpiryReportItem
}

// Clock inyectable para los tests.
type Clock func() time.Time

// UseCase genera el reporte de vencimientos.
type UseCase struct {
	lister AtRiskLister
	gen    ExpiryReportGenerator
	now    Clock
}

// NewUseCase construye el caso de uso. clock puede ser nil (time.Now).
func NewUseCase(lister AtRiskLister, gen ExpiryReportGenerator, clock Clock) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UseCase{lister: lister, gen: gen, now: clock}
}

// ExpiryReport devuelve el PDF del reporte D-90. Un almacén sin lotes en
// riesgo produce un reporte vacío válido, no un error.
func (uc *UseCase) ExpiryReport(ctx context.Context) ([]byte, error) {
	products, total, err := uc.lister.AtRisk(ctx)
	if err != nil {
		return nil, err
	}
	data := &ExpiryReportData{
		GeneratedAt:      uc.now(),
		TotalValueAtRisk: total,
		Items:            make([]ExpiryReportItem, 0, len(products)),
	}
	for _, p := range products {
		loc := p.Location.Aisle
		if p.Location.Shelf != "" {
			loc += "-" + p.Location.Shelf
		}
		if p.Location.Spot != "" {
			loc += "-" + p.Location.Spot
		}
		data.Items = append(data.Items, ExpiryReportItem{
			Name:          p.Name,
			Lot:           p.Lot,
			InternalCode:  p.InternalCode,
			ExpiryDate:    p.ExpiryDate,
			DaysRemaining: p.DaysRemaining,
			Status:        p.Status,
			Quantity:      p.Quantity,
			UnitPrice:     p.UnitPrice,
			Value:         decimal.NewFromInt(int64(p.Quantity)).Mul(p.UnitPrice),
			Location:      loc,
		})
	}
	// Los más urgentes arriba.
	sort.SliceStable(data.Items, func(i, j int) bool {
		return data.Items[i].DaysRemaining < data.Items[j].DaysRemaining
	})
	out, err := uc.gen.GenerateExpiryReport(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("generar reporte de vencimientos: %w", err)
	}
	return out, nil
}
