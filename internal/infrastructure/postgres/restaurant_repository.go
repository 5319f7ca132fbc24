package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

const restaurantColumns = `id, name, slug, plan_tier, delivery_pro, salao_pro, legacy, beta_tester,
       current_month_orders, user_limit, table_limit, plan_expires_at,
       phone, created_at, updated_at`

// RestaurantRepo implementação de RestaurantRepository (usável com pool ou tx).
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

// Create persiste um restaurante.
func (r *RestaurantRepo) Create(restaurant *entity.Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = uuid.New().String()
	}
	query := `
		INSERT INTO restaurants (id, name, slug, plan_tier, delivery_pro, salao_pro, legacy, beta_tester, current_month_orders, user_limit, table_limit, plan_expires_at, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		restaurant.ID, restaurant.Name, restaurant.Slug, restaurant.PlanTier,
		restaurant.DeliveryPro, restaurant.SalaoPro, restaurant.Legacy, restaurant.BetaTester,
		restaurant.CurrentMonthOrders, restaurant.UserLimit, restaurant.TableLimit,
		restaurant.PlanExpiresAt, nullIfEmpty(restaurant.Phone),
		restaurant.CreatedAt, restaurant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// GetByID obtém um restaurante por ID. Devolve nil sem erro quando não existe.
func (r *RestaurantRepo) GetByID(id string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetBySlug obtém um restaurante pelo slug público.
func (r *RestaurantRepo) GetBySlug(slug string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE slug = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, slug))
}

// GetByIDForUpdate carrega a linha com lock de escrita. Usar dentro de tx.
func (r *RestaurantRepo) GetByIDForUpdate(id string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update grava os campos mutáveis do restaurante.
func (r *RestaurantRepo) Update(restaurant *entity.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, slug = $3, plan_tier = $4, delivery_pro = $5, salao_pro = $6,
		    legacy = $7, beta_tester = $8, current_month_orders = $9,
		    user_limit = $10, table_limit = $11, plan_expires_at = $12,
		    phone = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		restaurant.ID, restaurant.Name, restaurant.Slug, restaurant.PlanTier,
		restaurant.DeliveryPro, restaurant.SalaoPro, restaurant.Legacy, restaurant.BetaTester,
		restaurant.CurrentMonthOrders, restaurant.UserLimit, restaurant.TableLimit,
		restaurant.PlanExpiresAt, nullIfEmpty(restaurant.Phone), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	return nil
}

// IncrementMonthOrders soma delta ao contador mensal em um único UPDATE.
// O contador pode ficar negativo (compra de pacote extra antecipada).
func (r *RestaurantRepo) IncrementMonthOrders(id string, delta int) error {
	query := `
		UPDATE restaurants
		SET current_month_orders = current_month_orders + $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, delta, time.Now())
	if err != nil {
		return fmt.Errorf("increment month orders: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListExpiredPaid lista restaurantes com capacidade paga e plano vencido antes
// de cutoff (entrada da varredura de downgrade).
func (r *RestaurantRepo) ListExpiredPaid(cutoff time.Time) ([]*entity.Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE (delivery_pro OR salao_pro)
		  AND plan_expires_at IS NOT NULL
		  AND plan_expires_at < $1
		ORDER BY plan_expires_at`
	rows, err := r.q.Query(context.Background(), query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list expired restaurants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Restaurant
	for rows.Next() {
		restaurant, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, restaurant)
	}
	return list, rows.Err()
}

func (r *RestaurantRepo) scanOne(row pgx.Row) (*entity.Restaurant, error) {
	restaurant, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return restaurant, nil
}

func (r *RestaurantRepo) scanRow(row pgx.Row) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	var phone *string
	err := row.Scan(
		&rest.ID, &rest.Name, &rest.Slug, &rest.PlanTier,
		&rest.DeliveryPro, &rest.SalaoPro, &rest.Legacy, &rest.BetaTester,
		&rest.CurrentMonthOrders, &rest.UserLimit, &rest.TableLimit, &rest.PlanExpiresAt,
		&phone, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan restaurant: %w", err)
	}
	rest.Phone = derefStr(phone)
	return &rest, nil
}
