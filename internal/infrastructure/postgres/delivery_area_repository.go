package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

var _ repository.DeliveryAreaRepository = (*DeliveryAreaRepo)(nil)

// DeliveryAreaRepo implementação de DeliveryAreaRepository (usável com pool ou tx).
type DeliveryAreaRepo struct {
	q Querier
}

// NewDeliveryAreaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewDeliveryAreaRepository(q Querier) *DeliveryAreaRepo {
	return &DeliveryAreaRepo{q: q}
}

// Create persiste uma área de entrega.
func (r *DeliveryAreaRepo) Create(a *entity.DeliveryArea) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO delivery_areas (id, restaurant_id, name, cep_start, cep_end, fee, min_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.RestaurantID, a.Name, a.CEPStart, a.CEPEnd, a.Fee, a.MinOrder, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery area: %w", err)
	}
	return nil
}

// GetByID obtém uma área por ID.
func (r *DeliveryAreaRepo) GetByID(id string) (*entity.DeliveryArea, error) {
	var a entity.DeliveryArea
	err := r.q.QueryRow(context.Background(), `
		SELECT id, restaurant_id, name, cep_start, cep_end, fee, min_order, created_at
		FROM delivery_areas WHERE id = $1`, id,
	).Scan(&a.ID, &a.RestaurantID, &a.Name, &a.CEPStart, &a.CEPEnd, &a.Fee, &a.MinOrder, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery area: %w", err)
	}
	return &a, nil
}

// ListByRestaurant lista as áreas na ordem de cadastro. A ordem importa: a
// resolução de taxa usa a primeira área que contém o CEP.
func (r *DeliveryAreaRepo) ListByRestaurant(restaurantID string) ([]*entity.DeliveryArea, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, name, cep_start, cep_end, fee, min_order, created_at
		FROM delivery_areas WHERE restaurant_id = $1 ORDER BY created_at, id`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list delivery areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeliveryArea
	for rows.Next() {
		var a entity.DeliveryArea
		if err := rows.Scan(&a.ID, &a.RestaurantID, &a.Name, &a.CEPStart, &a.CEPEnd, &a.Fee, &a.MinOrder, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete remove uma área de entrega.
func (r *DeliveryAreaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM delivery_areas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete delivery area: %w", err)
	}
	return nil
}
