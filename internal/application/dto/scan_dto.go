package dto

import "github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"

// ScanRequest petición de extracción: 1 a 3 capturas JPEG en base64.
type ScanRequest struct {
	Images []string `json:"images"`
}

// LabelExtraction campos leídos de la etiqueta por el servicio de visión.
// Cualquier campo puede venir vacío; un fallo del pipeline llega como campos
// vacíos más Failed=true, nunca como error de transporte hacia el motor.
type LabelExtraction struct {
	Name            string  `json:"name"`
	Lot             string  `json:"lot"`
	ExpiryDate      string  `json:"expiry_date"`
	ManufactureDate string  `json:"manufacture_date"`
	Barcode         string  `json:"barcode"`
	CodeType        string  `json:"code_type"`
	Price           string  `json:"price"`
	Confidence      float64 `json:"confidence"` // 0–100
}

// ScanDraftDTO borrador de lote para validación del operador antes de guardar.
// Status y DaysRemaining ya vienen derivados de ExpiryDate; si el operador
// corrige la fecha debe reenviar el borrador para que se rederiven.
type ScanDraftDTO struct {
	Name            string        `json:"name"`
	Lot             string        `json:"lot"`
	InternalCode    string        `json:"internal_code"`
	ExpiryDate      string        `json:"expiry_date"`
	ManufactureDate string        `json:"manufacture_date"`
	Barcode         string        `json:"barcode"`
	CodeType        string        `json:"code_type"`
	Price           string        `json:"price"`
	Confidence      float64       `json:"confidence"`
	Status          entity.Status `json:"status"`
	DaysRemaining   int           `json:"days_remaining"`
	Failed          bool          `json:"failed"` // true si el pipeline de extracción falló
	Images          []string      `json:"images"`
}

// ConfirmScanRequest confirmación del borrador (posiblemente editado) más los
// datos de logística interna que el operador completa a mano.
type ConfirmScanRequest struct {
	Draft         ScanDraftDTO `json:"draft"`
	Quantity      int          `json:"quantity"`
	Aisle         string       `json:"aisle"`
	Shelf         string       `json:"shelf"`
	Spot          string       `json:"spot"`
	AvgDailySales string       `json:"avg_daily_sales"`
	MinStockLevel int          `json:"min_stock_level"`
}
