package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status clasifica un lote según su horizonte de vencimiento.
type Status string

const (
	StatusCritical Status = "critical" // vence en ≤ 30 días
	StatusWarning  Status = "warning"  // vence en 31–90 días
	StatusSafe     Status = "safe"     // vence en > 90 días
)

// Valid indica si el valor es uno de los tres estados conocidos.
func (s Status) Valid() bool {
	return s == StatusCritical || s == StatusWarning || s == StatusSafe
}

// Location endereçamiento físico de un lote dentro de la farmacia.
type Location struct {
	Aisle string `json:"aisle"`          // corredor
	Shelf string `json:"shelf"`          // estante
	Spot  string `json:"spot,omitempty"` // posición dentro del estante (opcional)
}

// Product representa un lote auditado de un producto farmacéutico u hospitalario.
//
// ExpiryDate guarda la fecha tal como fue leída de la etiqueta ("DD/MM/YYYY" o
// "MM/YYYY") y es la única fuente de verdad: Status y DaysRemaining se derivan
// siempre con expiry.Classify y nunca se persisten por separado.
type Product struct {
	ID              string
	Name            string
	Lot             string // código de lote del fabricante (puede quedar vacío si no se leyó)
	InternalCode    string // código interno de auditoría de 6 caracteres
	ExpiryDate      string
	ManufactureDate string // informativo, no participa en la clasificación

	Quantity      int             // unidades en mano de este lote
	UnitPrice     decimal.Decimal // precio de costo/venta para cálculo de pérdida
	Location      Location
	AvgDailySales decimal.Decimal // giro: venta media diaria estimada (0 = desconocido)
	MinStockLevel int             // punto de pedido (0 = desconocido)

	// Derivados de ExpiryDate; recalculados en cada lectura.
	DaysRemaining int
	Status        Status

	Images   []string // capturas (JPEG base64) del evento de auditoría que creó el registro
	CodeType string   // simbología del código leído (EAN-13, Datamatrix, ...) o "manual"

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AlertType severidad de una alerta derivada.
type AlertType string

const (
	AlertCritical AlertType = "critical"
	AlertWarning  AlertType = "warning"
	AlertInfo     AlertType = "info"
)

// SmartAlert alerta derivada del motor de clasificación. No se persiste:
// se reconstruye completa en cada pasada sobre la lista de registros, por lo
// que su ID ({tipoDeChequeo}-{productID}) es estable entre pasadas idénticas.
type SmartAlert struct {
	ID               string    `json:"id"`
	Type             AlertType `json:"type"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	RelatedProductID string    `json:"related_product_id,omitempty"`
}
