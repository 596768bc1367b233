// Package inventory contiene los casos de uso sobre el almacén de lotes:
// listado con recálculo de derivados, alta manual, baja y vistas del dashboard.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/dto"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/expiry"
	dominv "github.com/vasconcelosjoey-hue/lote-certo/internal/domain/inventory"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/repository"
)

// Clock inyectable para que los tests fijen el "hoy" del cálculo de vencimiento.
type Clock func() time.Time

// UseCase casos de uso de inventario. Cada operación relee la lista completa
// del almacén y recalcula Status/DaysRemaining de cada lote antes de derivar
// cualquier vista: los derivados nunca se leen de la persistencia.
type UseCase struct {
	repo repository.ProductRepository
	now  Clock
}

// NewUseCase construye el caso de uso. clock puede ser nil (time.Now).
func NewUseCase(repo repository.ProductRepository, clock Clock) *UseCase {
	if clock == nil {
		clock = time.Now
	}
	return &UseCase{repo: repo, now: clock}
}

// List devuelve todos los lotes con filtro de estado y búsqueda libre
// (subcadena sobre nombre, lote o corredor, sin distinguir mayúsculas).
// status vacío o "all" acepta cualquier estado.
func (uc *UseCase) List(ctx context.Context, status, term string) ([]dto.ProductResponse, error) {
	products, err := uc.listReclassified(ctx)
	if err != nil {
		return nil, err
	}
	filtered := dominv.Filter(products, status, term)
	out := make([]dto.ProductResponse, 0, len(filtered))
	for _, p := range filtered {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// Get devuelve un lote por ID con Status/DaysRemaining recalculados al "hoy"
// actual. domain.ErrNotFound si no existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cls := expiry.Classify(p.ExpiryDate, uc.now())
	p.Status = cls.Status
	p.DaysRemaining = cls.DaysRemaining
	resp := dto.ToProductResponse(p)
	return &resp, nil
}

// Dashboard deriva todas las vistas (conteos, valor en riesgo, alertas y
// listas de compra) desde cero sobre la lista actual.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	products, err := uc.listReclassified(ctx)
	if err != nil {
		return nil, err
	}
	views := dominv.Derive(products)
	out := dto.ToDashboardDTO(views)
	return &out, nil
}

// AtRisk devuelve los lotes critical|warning ya reclasificados, junto con el
// valor total en riesgo (insumo del reporte D-90).
func (uc *UseCase) AtRisk(ctx context.Context) ([]*entity.Product, decimal.Decimal, error) {
	products, err := uc.listReclassified(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	atRisk := make([]*entity.Product, 0, len(products))
	total := decimal.Zero
	for _, p := range products {
		if p.Status == entity.StatusCritical || p.Status == entity.StatusWarning {
			atRisk = append(atRisk, p)
			total = total.Add(decimal.NewFromInt(int64(p.Quantity)).Mul(p.UnitPrice))
		}
	}
	return atRisk, total, nil
}

// CreateManual alta manual de un lote (sin pipeline de captura).
func (uc *UseCase) CreateManual(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.MinStockLevel < 0 {
		return nil, fmt.Errorf("%w: cantidades negativas", domain.ErrInvalidInput)
	}

	now := uc.now()
	cls := expiry.Classify(in.ExpiryDate, now)
	codeType := in.CodeType
	if codeType == "" {
		codeType = "manual"
	}

	p := &entity.Product{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(in.Name),
		Lot:             strings.TrimSpace(in.Lot),
		InternalCode:    entity.NewInternalCode(),
		ExpiryDate:      strings.TrimSpace(in.ExpiryDate),
		ManufactureDate: strings.TrimSpace(in.ManufactureDate),
		Quantity:        in.Quantity,
		UnitPrice:       ParseDecimal(in.UnitPrice),
		Location: entity.Location{
			Aisle: strings.ToUpper(strings.TrimSpace(in.Aisle)),
			Shelf: strings.ToUpper(strings.TrimSpace(in.Shelf)),
			Spot:  strings.ToUpper(strings.TrimSpace(in.Spot)),
		},
		AvgDailySales: ParseDecimal(in.AvgDailySales),
		MinStockLevel: in.MinStockLevel,
		DaysRemaining: cls.DaysRemaining,
		Status:        cls.Status,
		Images:        in.Images,
		CodeType:      codeType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insertar lote: %w", err)
	}
	resp := dto.ToProductResponse(p)
	return &resp, nil
}

// Delete elimina un lote. No hay borrado optimista: si el almacén falla, el
// lote sigue visible y el error sube como notificación única al usuario. Las
// vistas derivadas lo pierden en la siguiente pasada de recálculo.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.repo.DeleteByID(ctx, id)
}

// listReclassified lee todo y rederiva Status/DaysRemaining de cada lote a
// partir de ExpiryDate con el "hoy" actual. Única puerta de entrada de los
// registros al motor: garantiza el invariante de que los derivados son siempre
// función pura de la fecha.
func (uc *UseCase) listReclassified(ctx context.Context) ([]*entity.Product, error) {
	products, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	today := uc.now()
	for _, p := range products {
		cls := expiry.Classify(p.ExpiryDate, today)
		p.Status = cls.Status
		p.DaysRemaining = cls.DaysRemaining
	}
	return products, nil
}

// ParseDecimal convierte un decimal en string a decimal.Decimal con coerción a
// cero: un campo ausente o ilegible jamás produce aritmética no numérica.
// Acepta coma decimal ("8,90") porque así llegan los precios de etiquetas.
func ParseDecimal(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
