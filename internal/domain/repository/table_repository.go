package repository

import "github.com/jhoicas/comanda-api/internal/domain/entity"

// TableRepository define o porto de persistência para Table.
type TableRepository interface {
	Create(t *entity.Table) error
	GetByID(id string) (*entity.Table, error)
	// GetByIDForUpdate carrega a mesa com lock de linha (FOR UPDATE); usar
	// dentro de transação. É o que serializa pay/reset/open por mesa.
	GetByIDForUpdate(id string) (*entity.Table, error)
	GetByNumber(restaurantID string, number int) (*entity.Table, error)
	Update(t *entity.Table) error
	ListByRestaurant(restaurantID string) ([]*entity.Table, error)
	CountByRestaurant(restaurantID string) (int, error)
}
