// Package pdf genera el reporte D-90 de vencimientos con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: LOTE CERTO — Relatório D-90  │  Fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: lotes en riesgo + valor total proyectado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Lote | Venc. | Días | Cant | Valor       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de uso interno                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/reports"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
)

var _ reports.ExpiryReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 13, Green: 92, Blue: 99}
	colorCritical = &props.Color{Red: 190, Green: 30, Blue: 45}
	colorWarning  = &props.Color{Red: 190, Green: 125, Blue: 0}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa reports.ExpiryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador. Los montos salen en formato
// pt-BR (R$ 1.234,56), que es como los lee el equipo de compras.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}
}

// GenerateExpiryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateExpiryReport(_ context.Context, data *reports.ExpiryReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório D-90 de Vencimentos", true).
		WithAuthor("LOTE CERTO", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableRows(data.Items) {
		m.AddRows(r)
	}
	if len(data.Items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Nenhum lote em janela de risco. Estoque saudável.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento de uso interno. Os status são recalculados a partir da data "+
				"impressa no rótulo no momento da emissão; reimprima antes de cada reunião de compras.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(data *reports.ExpiryReportData) core.Row {
	fecha := data.GeneratedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("LOTE CERTO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Relatório D-90 — Perdas projetadas por vencimento", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Emitido em", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fecha, props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

func (g *MarotoReportGenerator) summaryRow(data *reports.ExpiryReportData) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("LOTES EM JANELA DE RISCO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d lotes (crítico + atenção)", len(data.Items)), props.Text{
				Size: 10, Top: 7,
			}),
		),
		col.New(6).Add(
			text.New("VALOR TOTAL PROJETADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorCritical, Top: 1,
			}),
			text.New(g.money(data.TotalValueAtRisk), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorCritical, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 3, align.Left),
		h("Lote", 2, align.Left),
		h("Local", 1, align.Center),
		h("Venc.", 2, align.Center),
		h("Dias", 1, align.Center),
		h("Cant.", 1, align.Center),
		h("Valor", 2, align.Right),
	)
}

func (g *MarotoReportGenerator) tableRows(items []reports.ExpiryReportItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		statusColor := colorWarning
		if it.Status == entity.StatusCritical {
			statusColor = colorCritical
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(it.Name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(it.Lot, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(1).Add(text.New(it.Location, props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(it.ExpiryDate, props.Text{
				Size: 8, Align: align.Center, Top: 1, Color: statusColor,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.DaysRemaining), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: statusColor,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(g.money(it.Value), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea un monto en pt-BR: R$ 1.234,56.
func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("R$ %.2f", f)
}
