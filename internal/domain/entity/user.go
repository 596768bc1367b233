package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin        = "admin"
	RoleFarmaceutico = "farmaceutico"
	RoleAuditor      = "auditor"
)

// User usuario del sistema (personal de la farmacia).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | farmaceutico | auditor
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
