package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/entity"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain/repository"
)

var _ repository.UserRepository = (*UserStore)(nil)

type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserStore implementación de UserRepository sobre un archivo JSON, hermano
// del archivo de lotes.
type UserStore struct {
	mu      sync.RWMutex
	path    string
	records []userRecord
}

// NewUserStore carga (o crea) el archivo de usuarios.
func NewUserStore(path string) (*UserStore, error) {
	s := &UserStore{path: path}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: leer %s: %v", domain.ErrStoreUnavailable, path, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.records); err != nil {
			return nil, fmt.Errorf("%w: %s corrupto: %v", domain.ErrStoreUnavailable, path, err)
		}
	}
	return s, nil
}

func (s *UserStore) flush() error {
	raw, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar usuarios: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: crear directorio: %v", domain.ErrStoreUnavailable, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("%w: escribir %s: %v", domain.ErrStoreUnavailable, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: renombrar %s: %v", domain.ErrStoreUnavailable, tmp, err)
	}
	return nil
}

// Create persiste un usuario. ErrEmailAlreadyExists si el email ya está registrado.
func (s *UserStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if strings.EqualFold(s.records[i].Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	s.records = append(s.records, userRecord{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Role:         user.Role,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err := s.flush(); err != nil {
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}

// FindByEmail devuelve (nil, nil) si el email no existe.
func (s *UserStore) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if strings.EqualFold(s.records[i].Email, email) {
			return userToEntity(&s.records[i]), nil
		}
	}
	return nil, nil
}

// GetByID devuelve ErrUserNotFound si el ID no existe.
func (s *UserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.records {
		if s.records[i].ID == id {
			return userToEntity(&s.records[i]), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func userToEntity(r *userRecord) *entity.User {
	return &entity.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Role:         r.Role,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
