// Package localstore persiste el almacén en un archivo JSON plano. Es el
// modo sin base de datos: toda la lista vive en memoria y cada mutación
// reescribe el archivo completo, igual que un documento único. Pensado para
// una farmacia chica o para demos; PostgreSQL es el modo de producción.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductStore)(nil)

// productRecord es la forma persistida de un lote. Status y DaysRemaining no
// aparecen: los derivados jamás se guardan.
type productRecord struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Lot             string          `json:"lot"`
	InternalCode    string          `json:"internal_code"`
	ExpiryDate      string          `json:"expiry_date"`
	ManufactureDate string          `json:"manufacture_date,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Aisle           string          `json:"aisle"`
	Shelf           string          `json:"shelf"`
	Spot            string          `json:"spot,omitempty"`
	AvgDailySales   decimal.Decimal `json:"avg_daily_sales"`
	MinStockLevel   int             `json:"min_stock_level"`
	Images          []string        `json:"images,omitempty"`
	CodeType        string          `json:"code_type"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductStore implementación de ProductRepository sobre un archivo JSON.
type ProductStore struct {
	mu      sync.RWMutex
	path    string
	records []productRecord
}

// NewProductStore carga (o crea) el archivo y deja la lista en memoria.
func NewProductStore(path string) (*ProductStore, error) {
	s := &ProductStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ProductStore) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.records = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: leer %s: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	if len(raw) == 0 {
		s.records = nil
		return nil
	}
	if err := json.Unmarshal(raw, &s.records); err != nil {
		return fmt.Errorf("%w: %s corrupto: %v", domain.ErrStoreUnavailable, s.path, err)
	}
	return nil
}

// flush reescribe el archivo completo. Escritura a tmp + rename para no dejar
// el archivo a medias si el proceso muere.
func (s *ProductStore) flush() error {
	raw, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar almacén: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: crear directorio: %v", domain.ErrStoreUnavailable, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("%w: escribir %s: %v", domain.ErrStoreUnavailable, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: renombrar %s: %v", domain.ErrStoreUnavailable, tmp, err)
	}
	return nil
}

// ListAll devuelve todos los lotes, los más recientes primero.
func (s *ProductStore) ListAll(_ context.Context) ([]*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(s.records))
	// records se guardan en orden de inserción; se devuelven invertidos.
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, toEntity(&s.records[i]))
	}
	return out, nil
}

// Insert agrega un lote y reescribe el archivo. El id ya debe venir asignado.
func (s *ProductStore) Insert(_ context.Context, p *entity.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: lote sin id", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == p.ID {
			return domain.ErrDuplicate
		}
	}
	s.records = append(s.records, toRecord(p))
	if err := s.flush(); err != nil {
		// Revertir: el lote no quedó persistido, no debe quedar en memoria.
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}

// GetByID busca un lote. Devuelve ErrNotFound si no existe.
func (s *ProductStore) GetByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ID == id {
			return toEntity(&s.records[i]), nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteByID elimina un lote y reescribe el archivo. ErrNotFound si no existía.
func (s *ProductStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.records {
		if s.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.ErrNotFound
	}
	removed := s.records[idx]
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	if err := s.flush(); err != nil {
		// Revertir: si el archivo no se pudo escribir, el lote sigue visible.
		s.records = append(s.records[:idx], append([]productRecord{removed}, s.records[idx:]...)...)
		return err
	}
	return nil
}

func toRecord(p *entity.Product) productRecord {
	return productRecord{
		ID:              p.ID,
		Name:            p.Name,
		Lot:             p.Lot,
		InternalCode:    p.InternalCode,
		ExpiryDate:      p.ExpiryDate,
		ManufactureDate: p.ManufactureDate,
		Quantity:        p.Quantity,
		UnitPrice:       p.UnitPrice,
		Aisle:           p.Location.Aisle,
		Shelf:           p.Location.Shelf,
		Spot:            p.Location.Spot,
		AvgDailySales:   p.AvgDailySales,
		MinStockLevel:   p.MinStockLevel,
		Images:          p.Images,
		CodeType:        p.CodeType,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toEntity(r *productRecord) *entity.Product {
	return &entity.Product{
		ID:              r.ID,
		Name:            r.Name,
		Lot:             r.Lot,
		InternalCode:    r.InternalCode,
		ExpiryDate:      r.ExpiryDate,
		ManufactureDate: r.ManufactureDate,
		Quantity:        r.Quantity,
		UnitPrice:       r.UnitPrice,
		Location: entity.Location{
			Aisle: r.Aisle,
			Shelf: r.Shelf,
			Spot:  r.Spot,
		},
		AvgDailySales: r.AvgDailySales,
		MinStockLevel: r.MinStockLevel,
		Images:        r.Images,
		CodeType:      r.CodeType,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
