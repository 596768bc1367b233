package repository

import (
	"context"

	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
)

// ProductRepository puerto de persistencia de lotes auditados.
//
// El contrato es deliberadamente mínimo (sin update parcial, sin consultas con
// pushdown, sin transacciones): el motor de clasificación siempre relee la
// lista completa después de cada mutación. Lo implementan el adaptador
// PostgreSQL y el store local de archivo JSON.
type ProductRepository interface {
	// ListAll devuelve todos los lotes. Un fallo de lectura se propaga sin
	// tocar el último estado conocido del caller.
	ListAll(ctx context.Context) ([]*entity.Product, error)
	// Insert persiste un lote nuevo. El ID ya viene asignado por la capa de
	// aplicación; un ID vacío es entrada inválida.
	Insert(ctx context.Context, p *entity.Product) error
	// GetByID devuelve un lote, o domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// DeleteByID elimina un lote. Borrar un ID inexistente devuelve
	// domain.ErrNotFound: el caller no debe retirar nada de la vista sin
	// confirmación.
	DeleteByID(ctx context.Context, id string) error
}
