package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/comanda-api/internal/application/orders"
	"github.com/jhoicas/comanda-api/internal/application/plans"
	"github.com/jhoicas/comanda-api/internal/application/tables"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

var _ orders.TxRunner = (*TxRunner)(nil)
var _ tables.TxRunner = (*TxRunner)(nil)
var _ plans.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrder abre uma transação com os repos da criação de pedido (cota do
// restaurante + mesa + pedido) e faz Commit ou Rollback.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	restaurantRepo repository.RestaurantRepository,
	tableRepo repository.TableRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	restaurantRepo := NewRestaurantRepository(tx)
	tableRepo := NewTableRepository(tx)
	orderRepo := NewOrderRepository(tx)

	if err := fn(restaurantRepo, tableRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRestaurant abre uma transação com o repo do restaurante (upgrade e
// downgrade de plano, que mutam a linha do tenant sob lock).
func (r *TxRunner) RunRestaurant(ctx context.Context, fn func(
	restaurantRepo repository.RestaurantRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRestaurantRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTable abre uma transação com os repos do ciclo da mesa (pay/reset).
func (r *TxRunner) RunTable(ctx context.Context, fn func(
	tableRepo repository.TableRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tableRepo := NewTableRepository(tx)
	orderRepo := NewOrderRepository(tx)

	if err := fn(tableRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
