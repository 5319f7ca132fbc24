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

var _ repository.TableRepository = (*TableRepo)(nil)

const tableColumns = `id, restaurant_id, number, status, customer_name, total, opened_at, created_at, updated_at`

// TableRepo implementação de TableRepository (usável com pool ou tx).
// A tabela física chama-se restaurant_tables.
type TableRepo struct {
	q Querier
}

// NewTableRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

// Create persiste uma mesa. A constraint única (restaurant_id, number) vira
// domain.ErrDuplicate.
func (r *TableRepo) Create(t *entity.Table) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO restaurant_tables (id, restaurant_id, number, status, customer_name, total, opened_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.RestaurantID, t.Number, t.Status, nullIfEmpty(t.CustomerName),
		t.Total, t.OpenedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert table: %w", err)
	}
	return nil
}

// GetByID obtém uma mesa por ID. Devolve nil sem erro quando não existe.
func (r *TableRepo) GetByID(id string) (*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate carrega a mesa com lock de linha. Usar dentro de tx.
func (r *TableRepo) GetByIDForUpdate(id string) (*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByNumber obtém a mesa pelo número dentro do restaurante.
func (r *TableRepo) GetByNumber(restaurantID string, number int) (*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE restaurant_id = $1 AND number = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, restaurantID, number))
}

// Update grava os campos mutáveis da mesa.
func (r *TableRepo) Update(t *entity.Table) error {
	query := `
		UPDATE restaurant_tables
		SET number = $2, status = $3, customer_name = $4, total = $5, opened_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Number, t.Status, nullIfEmpty(t.CustomerName), t.Total, t.OpenedAt, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update table: %w", err)
	}
	return nil
}

// ListByRestaurant lista as mesas do restaurante ordenadas por número.
func (r *TableRepo) ListByRestaurant(restaurantID string) ([]*entity.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM restaurant_tables WHERE restaurant_id = $1 ORDER BY number`
	rows, err := r.q.Query(context.Background(), query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Table
	for rows.Next() {
		t, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// CountByRestaurant conta as mesas do restaurante (checagem de limite do plano).
func (r *TableRepo) CountByRestaurant(restaurantID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM restaurant_tables WHERE restaurant_id = $1`, restaurantID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tables: %w", err)
	}
	return count, nil
}

func (r *TableRepo) scanOne(row pgx.Row) (*entity.Table, error) {
	t, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *TableRepo) scanRow(row pgx.Row) (*entity.Table, error) {
	var t entity.Table
	var customerName *string
	err := row.Scan(
		&t.ID, &t.RestaurantID, &t.Number, &t.Status, &customerName,
		&t.Total, &t.OpenedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan table: %w", err)
	}
	t.CustomerName = derefStr(customerName)
	return &t, nil
}
