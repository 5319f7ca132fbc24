package repository

import "github.com/jhoicas/comanda-api/internal/domain/entity"

// UserRepository define o porto de persistência para User.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	CountByRestaurant(restaurantID string) (int, error)
	ListByRestaurant(restaurantID string) ([]*entity.User, error)
}
