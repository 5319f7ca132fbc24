package repository

import "github.com/jhoicas/comanda-api/internal/domain/entity"

// DeliveryAreaRepository define o porto de persistência para DeliveryArea.
// ListByRestaurant devolve na ordem de cadastro: a resolução de taxa usa a
// primeira área que contém o CEP.
type DeliveryAreaRepository interface {
	Create(a *entity.DeliveryArea) error
	GetByID(id string) (*entity.DeliveryArea, error)
	ListByRestaurant(restaurantID string) ([]*entity.DeliveryArea, error)
	Delete(id string) error
}
