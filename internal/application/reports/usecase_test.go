package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/reports"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
)

var today = func() time.Time {
	return time.Date(2025, time.January, 15, 8, 0, 0, 0, time.UTC)
}

// listerMock responde AtRisk con una lista fija.
type listerMock struct {
	products []*entity.Product
	total    decimal.Decimal
	err      error
}

func (m *listerMock) AtRisk(_ context.Context) ([]*entity.Product, decimal.Decimal, error) {
	return m.products, m.total, m.err
}

// genMock captura el insumo del documento y devuelve bytes fijos.
type genMock struct {
	captured *reports.ExpiryReportData
	err      error
}

func (m *genMock) GenerateExpiryReport(_ context.Context, data *reports.ExpiryReportData) ([]byte, error) {
	m.captured = data
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-fake"), nil
}

func atRiskProduct(id string, days, qty int, price float64, status entity.Status) *entity.Product {
	return &entity.Product{
		ID:            id,
		Name:          "Producto " + id,
		Lot:           "L-" + id,
		DaysRemaining: days,
		Status:        status,
		Quantity:      qty,
		UnitPrice:     decimal.NewFromFloat(price),
		Location:      entity.Location{Aisle: "A1", Shelf: "P2", Spot: "3"},
	}
}

func TestExpiryReport_OrdenaPorUrgenciaYCalculaValores(t *testing.T) {
	lister := &listerMock{
		products: []*entity.Product{
			atRiskProduct("b", 60, 10, 5.00, entity.StatusWarning),
			atRiskProduct("a", 8, 100, 2.50, entity.StatusCritical),
		},
		total: decimal.NewFromInt(300),
	}
	gen := &genMock{}
	uc := reports.NewUseCase(lister, gen, today)

	pdf, err := uc.ExpiryReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)

	require.NotNil(t, gen.captured)
	require.Len(t, gen.captured.Items, 2)
	assert.Equal(t, "Producto a", gen.captured.Items[0].Name, "el más urgente va primero")
	assert.True(t, gen.captured.Items[0].Value.Equal(decimal.NewFromInt(250)), "100 × 2.50")
	assert.Equal(t, "A1-P2-3", gen.captured.Items[0].Location)
	assert.True(t, gen.captured.TotalValueAtRisk.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, today(), gen.captured.GeneratedAt)
}

func TestExpiryReport_AlmacenSanoProduceReporteVacio(t *testing.T) {
	gen := &genMock{}
	uc := reports.NewUseCase(&listerMock{total: decimal.Zero}, gen, today)

	pdf, err := uc.ExpiryReport(context.Background())
	require.NoError(t, err, "sin lotes en riesgo el reporte igual se emite")
	assert.NotEmpty(t, pdf)
	assert.Empty(t, gen.captured.Items)
}

func TestExpiryReport_ErroresSuben(t *testing.T) {
	uc := reports.NewUseCase(&listerMock{err: errors.New("almacén caído")}, &genMock{}, today)
	_, err := uc.ExpiryReport(context.Background())
	assert.Error(t, err)

	uc = reports.NewUseCase(&listerMock{total: decimal.Zero}, &genMock{err: errors.New("sin fuente")}, today)
	_, err = uc.ExpiryReport(context.Background())
	assert.ErrorContains(t, err, "generar reporte")
}
