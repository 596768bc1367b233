package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
//
// expiry_date y manufacture_date se guardan como TEXT con el string crudo de
// la etiqueta, NO como DATE: la fecha impresa es la fuente de verdad y
// status/days_remaining jamás se persisten, se recalculan en cada lectura.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para lotes.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// ListAll devuelve todos los lotes del almacén, los más recientes primero.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT id, name, lot, internal_code, expiry_date, manufacture_date,
		       quantity, unit_price, aisle, shelf, spot,
		       avg_daily_sales, min_stock_level, images, code_type,
		       created_at, updated_at
		FROM products ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Lot, &p.InternalCode, &p.ExpiryDate, &p.ManufactureDate,
			&p.Quantity, &p.UnitPrice, &p.Location.Aisle, &p.Location.Shelf, &p.Location.Spot,
			&p.AvgDailySales, &p.MinStockLevel, &p.Images, &p.CodeType,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}

// Insert persiste un nuevo lote. El id ya debe venir asignado.
func (r *ProductRepo) Insert(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: lote sin id", domain.ErrInvalidInput)
	}
	query := `
		INSERT INTO products (id, name, lot, internal_code, expiry_date, manufacture_date,
		                      quantity, unit_price, aisle, shelf, spot,
		                      avg_daily_sales, min_stock_level, images, code_type,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Lot, p.InternalCode, p.ExpiryDate, p.ManufactureDate,
		p.Quantity, p.UnitPrice, p.Location.Aisle, p.Location.Shelf, p.Location.Spot,
		p.AvgDailySales, p.MinStockLevel, p.Images, p.CodeType,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve ErrNotFound si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, lot, internal_code, expiry_date, manufacture_date,
		       quantity, unit_price, aisle, shelf, spot,
		       avg_daily_sales, min_stock_level, images, code_type,
		       created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Lot, &p.InternalCode, &p.ExpiryDate, &p.ManufactureDate,
		&p.Quantity, &p.UnitPrice, &p.Location.Aisle, &p.Location.Shelf, &p.Location.Spot,
		&p.AvgDailySales, &p.MinStockLevel, &p.Images, &p.CodeType,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// DeleteByID elimina un lote. Devuelve ErrNotFound si el ID no existía.
func (r *ProductRepo) DeleteByID(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
