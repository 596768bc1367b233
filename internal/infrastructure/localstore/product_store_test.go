package localstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/infrastructure/localstore"
)

func testProduct(id string) *entity.Product {
	now := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	return &entity.Product{
		ID:           id,
		Name:         "Dipirona 500mg",
		Lot:          "L2024-001",
		InternalCode: "AB23CD",
		ExpiryDate:   "14/02/2025",
		Quantity:     100,
		UnitPrice:    decimal.NewFromFloat(8.90),
		Location:     entity.Location{Aisle: "A1", Shelf: "P2"},
		CodeType:     "barcode",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestProductStore_ArchivoInexistenteArrancaVacio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	store, err := localstore.NewProductStore(path)
	require.NoError(t, err)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductStore_InsertPersisteYSobreviveReapertura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	store, err := localstore.NewProductStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Insert(context.Background(), testProduct("1")))
	require.NoError(t, store.Insert(context.Background(), testProduct("2")))

	// Reabrir desde el archivo: lo persistido debe volver completo.
	reopened, err := localstore.NewProductStore(path)
	require.NoError(t, err)
	all, err := reopened.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	// El más reciente primero.
	assert.Equal(t, "2", all[0].ID)
	assert.Equal(t, "1", all[1].ID)
	assert.Equal(t, "Dipirona 500mg", all[1].Name)
	assert.True(t, all[1].UnitPrice.Equal(decimal.NewFromFloat(8.90)))
	assert.Equal(t, "A1", all[1].Location.Aisle)
}

func TestProductStore_NoPersisteDerivados(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	store, err := localstore.NewProductStore(path)
	require.NoError(t, err)

	p := testProduct("1")
	p.Status = entity.StatusCritical
	p.DaysRemaining = 12
	require.NoError(t, store.Insert(context.Background(), p))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "days_remaining", "los derivados no se guardan")
	assert.NotContains(t, string(raw), `"status"`, "el estado se recalcula en cada lectura")

	// Y al releer vuelven en cero, listos para el recálculo.
	reopened, err := localstore.NewProductStore(path)
	require.NoError(t, err)
	all, err := reopened.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Empty(t, all[0].Status)
	assert.Zero(t, all[0].DaysRemaining)
}

func TestProductStore_InsertSinIDFalla(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	store, err := localstore.NewProductStore(path)
	require.NoError(t, err)

	err = store.Insert(context.Background(), &entity.Product{Name: "Sin ID"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada quedó en memoria ni en el archivo.
	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "el archivo no debe crearse por un insert rechazado")
}

func TestProductStore_InsertDuplicadoFalla(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	store, err := localstore.NewProductStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Insert(context.Background(), testProduct("1")))
	err = store.Insert(context.Background(), testProduct("1"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductStore_DeleteByID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	store, err := localstore.NewProductStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Insert(context.Background(), testProduct("1")))
	require.NoError(t, store.DeleteByID(context.Background(), "1"))

	_, err = store.GetByID(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.DeleteByID(context.Background(), "1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "borrar dos veces devuelve not found")

	// El archivo también quedó sin el registro.
	reopened, err := localstore.NewProductStore(path)
	require.NoError(t, err)
	all, err := reopened.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductStore_ArchivoCorruptoFallaAlAbrir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{esto no es json"), 0o644))

	_, err := localstore.NewProductStore(path)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestUserStore_CreateYBusqueda(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	store, err := localstore.NewUserStore(path)
	require.NoError(t, err)

	user := &entity.User{
		ID:           "u1",
		Email:        "farmacia@lotecerto.com.br",
		PasswordHash: "$2a$10$hash",
		Name:         "Joana",
		Role:         entity.RoleFarmaceutico,
		Status:       "active",
	}
	require.NoError(t, store.Create(context.Background(), user))

	// Email duplicado (sin distinguir mayúsculas) se rechaza.
	dup := *user
	dup.ID = "u2"
	dup.Email = "FARMACIA@lotecerto.com.br"
	assert.ErrorIs(t, store.Create(context.Background(), &dup), domain.ErrEmailAlreadyExists)

	found, err := store.FindByEmail(context.Background(), "FARMACIA@lotecerto.com.br")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u1", found.ID)

	missing, err := store.FindByEmail(context.Background(), "nadie@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing, "email inexistente devuelve nil sin error")

	_, err = store.GetByID(context.Background(), "u9")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
