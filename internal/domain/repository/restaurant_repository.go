package repository

import (
	"time"

	"github.com/jhoicas/comanda-api/internal/domain/entity"
)

// RestaurantRepository define o porto de persistência para Restaurant (DIP).
// A implementação vive em infrastructure.
type RestaurantRepository interface {
	Create(r *entity.Restaurant) error
	GetByID(id string) (*entity.Restaurant, error)
	GetBySlug(slug string) (*entity.Restaurant, error)
	// GetByIDForUpdate carrega a linha com lock (FOR UPDATE). Só faz sentido
	// dentro de uma transação; serializa a checagem de cota por restaurante.
	GetByIDForUpdate(id string) (*entity.Restaurant, error)
	Update(r *entity.Restaurant) error
	// IncrementMonthOrders soma delta ao contador mensal em um único UPDATE
	// condicional (sem read-modify-write em passos separados).
	IncrementMonthOrders(id string, delta int) error
	// ListExpiredPaid lista restaurantes com capacidade paga cujo plano venceu
	// antes de cutoff. Alimenta a varredura diária de downgrade.
	ListExpiredPaid(cutoff time.Time) ([]*entity.Restaurant, error)
}
