package entity

import "time"

// Papéis de usuário dentro de um restaurante.
const (
	RoleDono   = "dono"
	RoleGarcom = "garcom"
)

// User representa um usuário (assento) de um restaurante.
type User struct {
	ID           string
	RestaurantID string
	Name         string
	Email        string
	PasswordHash string
	Role         string // ver constantes Role*
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
