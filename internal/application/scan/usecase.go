// Package scan implementa el pipeline de captura: fotos de la etiqueta →
// extracción por visión → borrador validable → registro confirmado.
package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/dto"
	appinv "github.com/vasconcelosjoey-hue/lote-certo/internal/application/inventory"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/ports"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/expiry"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/repository"
)

const (
	maxImages = 3

	// visionTimeout tope por llamada al modelo de visión: con hasta 3 imágenes
	// la latencia supera con holgura la de una petición de texto.
	visionTimeout = 20 * time.Second
)

// Clock inyectable para los tests.
type Clock func() time.Time

// UseCase orquesta extracción y confirmación. Una sola llamada en vuelo por
// acción, sin reintentos: un fallo del pipeline vuelve como borrador marcado
// con Failed=true para corrección manual, nunca como error hacia el motor.
type UseCase struct {
	vision ports.VisionService
	repo   repository.ProductRepository
	now    Clock
}

// NewUseCase construye el caso de uso. clock puede ser nil (time.Now).
func NewUseCase(vision ports.VisionService, repo repository.ProductRepository, clock Clock) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UseCase{vision: vision, repo: repo, now: clock}
}

// ProcessCapture envía las capturas al servicio de visión y arma el borrador.
// Si el contexto de la petición muere (el operador salió de la pantalla), la
// llamada se cancela y el resultado en vuelo se descarta con él.
func (uc *UseCase) ProcessCapture(ctx context.Context, in dto.ScanRequest) (*dto.ScanDraftDTO, error) {
	if len(in.Images) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos una imagen", domain.ErrInvalidInput)
	}
	if len(in.Images) > maxImages {
		return nil, fmt.Errorf("%w: máximo %d imágenes por captura", domain.ErrInvalidInput, maxImages)
	}

	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	extraction, err := uc.vision.ExtractLabel(ctx, in.Images)
	if err != nil {
		// Fallo del pipeline: borrador vacío claramente marcado. Queda en
		// warning para que salga a revisión manual en lugar de leerse como
		// seguro.
		return &dto.ScanDraftDTO{
			InternalCode:  entity.NewInternalCode(),
			CodeType:      "manual",
			Status:        entity.StatusWarning,
			DaysRemaining: 0,
			Failed:        true,
			Images:        in.Images,
		}, nil
	}

	cls := expiry.Classify(extraction.ExpiryDate, uc.now())
	codeType := extraction.CodeType
	if codeType == "" {
		codeType = "manual"
	}

	return &dto.ScanDraftDTO{
		Name:            extraction.Name,
		Lot:             extraction.Lot,
		InternalCode:    entity.NewInternalCode(),
		ExpiryDate:      extraction.ExpiryDate,
		ManufactureDate: extraction.ManufactureDate,
		Barcode:         extraction.Barcode,
		CodeType:        codeType,
		Price:           strings.ReplaceAll(extraction.Price, ",", "."),
		Confidence:      clampConfidence(extraction.Confidence),
		Status:          cls.Status,
		DaysRemaining:   cls.DaysRemaining,
		Images:          in.Images,
	}, nil
}

// ConfirmCapture convierte el borrador (posiblemente editado por el operador)
// en un lote persistido. La fecha de vencimiento se rederiva SIEMPRE aquí:
// una edición del operador nunca deja status/daysRemaining desfasados.
func (uc *UseCase) ConfirmCapture(ctx context.Context, in dto.ConfirmScanRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Draft.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.MinStockLevel < 0 {
		return nil, fmt.Errorf("%w: cantidades negativas", domain.ErrInvalidInput)
	}

	now := uc.now()
	cls := expiry.Classify(in.Draft.ExpiryDate, now)
	codeType := in.Draft.CodeType
	if codeType == "" {
		codeType = "manual"
	}
	internalCode := in.Draft.InternalCode
	if internalCode == "" {
		internalCode = entity.NewInternalCode()
	}

	p := &entity.Product{
		ID:              uuid.New().String(),
		Name:            name,
		Lot:             strings.TrimSpace(in.Draft.Lot),
		InternalCode:    internalCode,
		ExpiryDate:      strings.TrimSpace(in.Draft.ExpiryDate),
		ManufactureDate: strings.TrimSpace(in.Draft.ManufactureDate),
		Quantity:        in.Quantity,
		UnitPrice:       appinv.ParseDecimal(in.Draft.Price),
		Location: entity.Location{
			Aisle: strings.ToUpper(strings.TrimSpace(in.Aisle)),
			Shelf: strings.ToUpper(strings.TrimSpace(in.Shelf)),
			Spot:  strings.ToUpper(strings.TrimSpace(in.Spot)),
		},
		AvgDailySales: appinv.ParseDecimal(in.AvgDailySales),
		MinStockLevel: in.MinStockLevel,
		DaysRemaining: cls.DaysRemaining,
		Status:        cls.Status,
		Images:        in.Draft.Images,
		CodeType:      codeType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("guardar lote auditado: %w", err)
	}
	resp := dto.ToProductResponse(p)
	return &resp, nil
}

// clampConfidence acota la confianza reportada por el modelo al rango 0–100.
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

