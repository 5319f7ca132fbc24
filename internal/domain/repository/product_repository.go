package repository

import "github.com/jhoicas/comanda-api/internal/domain/entity"

// ProductRepository define o porto de persistência para Product (DIP).
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	ListByRestaurant(restaurantID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}

// CategoryRepository define o porto de persistência para Category.
type CategoryRepository interface {
	Create(c *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	ListByRestaurant(restaurantID string) ([]*entity.Category, error)
	Delete(id string) error
}

// AddonRepository define o porto de persistência para Addon.
type AddonRepository interface {
	Create(a *entity.Addon) error
	GetByID(id string) (*entity.Addon, error)
	Update(a *entity.Addon) error
	ListByRestaurant(restaurantID string) ([]*entity.Addon, error)
	Delete(id string) error
}
