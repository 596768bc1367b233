package ports

import (
	"context"

	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/dto"
)

// VisionService define el puerto de salida hacia el modelo de visión que lee
// las etiquetas fotografiadas. Cualquier adaptador (Gemini, Anthropic, mock)
// debe implementar esta interfaz; la capa de aplicación solo conoce este
// contrato, no la implementación concreta.
type VisionService interface {
	// ExtractLabel analiza 1–3 capturas JPEG (base64, sin prefijo data:) y
	// devuelve los campos leídos de la etiqueta. Cualquier campo puede venir
	// vacío si no se pudo leer. El contexto debe llevar un timeout para no
	// bloquear goroutines del servidor en llamadas externas.
	ExtractLabel(ctx context.Context, images []string) (*dto.LabelExtraction, error)
}
