package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
)

// CreateProductRequest alta manual de un lote (sustituye al pipeline de captura
// cuando no hay cámara). Los campos numéricos ausentes se tratan como 0.
type CreateProductRequest struct {
	Name            string   `json:"name"`
	Lot             string   `json:"lot"`
	ExpiryDate      string   `json:"expiry_date"` // DD/MM/YYYY o MM/YYYY
	ManufactureDate string   `json:"manufacture_date"`
	Quantity        int      `json:"quantity"`
	UnitPrice       string   `json:"unit_price"` // decimal como string, ej. "22.50"
	Aisle           string   `json:"aisle"`
	Shelf           string   `json:"shelf"`
	Spot            string   `json:"spot"`
	AvgDailySales   string   `json:"avg_daily_sales"`
	MinStockLevel   int      `json:"min_stock_level"`
	CodeType        string   `json:"code_type"`
	Images          []string `json:"images"`
}

// ProductResponse representación de un lote con sus derivados ya recalculados.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Lot             string          `json:"lot"`
	InternalCode    string          `json:"internal_code,omitempty"`
	ExpiryDate      string          `json:"expiry_date"`
	ManufactureDate string          `json:"manufacture_date,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Location        entity.Location `json:"location"`
	AvgDailySales   decimal.Decimal `json:"avg_daily_sales"`
	MinStockLevel   int             `json:"min_stock_level"`
	DaysRemaining   int             `json:"days_remaining"`
	Status          entity.Status   `json:"status"`
	CodeType        string          `json:"code_type,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToProductResponse mapea la entidad al DTO de salida (sin las imágenes, que
// solo viajan en el flujo de captura).
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Lot:             p.Lot,
		InternalCode:    p.InternalCode,
		ExpiryDate:      p.ExpiryDate,
		ManufactureDate: p.ManufactureDate,
		Quantity:        p.Quantity,
		UnitPrice:       p.UnitPrice,
		Location:        p.Location,
		AvgDailySales:   p.AvgDailySales,
		MinStockLevel:   p.MinStockLevel,
		DaysRemaining:   p.DaysRemaining,
		Status:          p.Status,
		CodeType:        p.CodeType,
		CreatedAt:       p.CreatedAt,
	}
}
