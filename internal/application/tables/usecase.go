// Package tables implementa o ciclo de vida das mesas:
// FREE -> OCCUPIED (primeiro pedido) -> PAID (fechamento) -> FREE (reset).
package tables

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/plan"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// UseCase casos de uso do ciclo de vida de mesas.
type UseCase struct {
	txRunner       TxRunner
	tableRepo      repository.TableRepository
	restaurantRepo repository.RestaurantRepository
	orderRepo      repository.OrderRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	txRunner TxRunner,
	tableRepo repository.TableRepository,
	restaurantRepo repository.RestaurantRepository,
	orderRepo repository.OrderRepository,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		orderRepo:      orderRepo,
	}
}

// Create cria uma mesa nova no estado FREE. Falha com DuplicateTableNumberError
// se o número já existir no restaurante e respeita o teto de mesas do plano.
func (uc *UseCase) Create(restaurantID string, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	if in.Number <= 0 {
		return nil, domain.ErrInvalidInput
	}
	restaurant, err := uc.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.tableRepo.CountByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	if err := plan.CheckTableLimit(restaurant, count); err != nil {
		return nil, err
	}
	existing, err := uc.tableRepo.GetByNumber(restaurantID, in.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.DuplicateTableNumberError{Number: in.Number}
	}
	now := time.Now()
	table := &entity.Table{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Number:       in.Number,
		Status:       entity.TableStatusFree,
		Total:        decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.tableRepo.Create(table); err != nil {
		if err == domain.ErrDuplicate {
			// corrida entre o GetByNumber e o INSERT; a constraint decide
			return nil, &domain.DuplicateTableNumberError{Number: in.Number}
		}
		return nil, err
	}
	return toTableResponse(table), nil
}

// Renumber troca o número da mesa. No-op quando o número não muda; falha com
// DuplicateTableNumberError se outra mesa do restaurante já usa o número alvo.
//
// Roda com a linha da mesa sob lock: o Update grava a linha inteira, então a
// leitura precisa ser serializada com pay/reset para não reverter um status
// mudado no meio do caminho.
func (uc *UseCase) Renumber(ctx context.Context, restaurantID, tableID string, in dto.RenumberTableRequest) (*dto.TableResponse, error) {
	if in.Number <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.TableResponse
	err := uc.txRunner.RunTable(ctx, func(tableRepo repository.TableRepository, _ repository.OrderRepository) error {
		table, err := tableRepo.GetByIDForUpdate(tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.ErrNotFound
		}
		if table.RestaurantID != restaurantID {
			return domain.ErrForbidden
		}
		if table.Number == in.Number {
			out = toTableResponse(table)
			return nil
		}
		existing, err := tableRepo.GetByNumber(restaurantID, in.Number)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.DuplicateTableNumberError{Number: in.Number}
		}
		table.Number = in.Number
		table.UpdatedAt = time.Now()
		if err := tableRepo.Update(table); err != nil {
			return err
		}
		out = toTableResponse(table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RenameCustomer atualiza o nome do cliente; permitido em qualquer estado.
// Mesma disciplina de lock do Renumber.
func (uc *UseCase) RenameCustomer(ctx context.Context, restaurantID, tableID string, in dto.RenameTableCustomerRequest) (*dto.TableResponse, error) {
	var out *dto.TableResponse
	err := uc.txRunner.RunTable(ctx, func(tableRepo repository.TableRepository, _ repository.OrderRepository) error {
		table, err := tableRepo.GetByIDForUpdate(tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.ErrNotFound
		}
		if table.RestaurantID != restaurantID {
			return domain.ErrForbidden
		}
		table.CustomerName = in.CustomerName
		table.UpdatedAt = time.Now()
		if err := tableRepo.Update(table); err != nil {
			return err
		}
		out = toTableResponse(table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Pay fecha a mesa: grava o método de pagamento em todos os pedidos vinculados
// (um único método por passagem) e transiciona OCCUPIED -> PAID.
//
// A mesa é carregada com lock de linha dentro da transação: de duas tentativas
// concorrentes, a perdedora enxerga a mesa já PAID e falha com ErrInvalidState.
func (uc *UseCase) Pay(ctx context.Context, restaurantID, tableID string, in dto.PayTableRequest) (*dto.TableResponse, error) {
	if in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.TableResponse
	err := uc.txRunner.RunTable(ctx, func(tableRepo repository.TableRepository, orderRepo repository.OrderRepository) error {
		table, err := tableRepo.GetByIDForUpdate(tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.ErrNotFound
		}
		if table.RestaurantID != restaurantID {
			return domain.ErrForbidden
		}
		if table.Status != entity.TableStatusOccupied {
			return domain.ErrInvalidState
		}
		if err := orderRepo.SetPaymentMethodByTable(table.ID, in.PaymentMethod); err != nil {
			return err
		}
		table.Status = entity.TableStatusPaid
		table.UpdatedAt = time.Now()
		if err := tableRepo.Update(table); err != nil {
			return err
		}
		out = toTableResponse(table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Reset libera a mesa a partir de qualquer estado: desvincula (não apaga) os
// pedidos, zera o total, limpa o nome do cliente e o horário de abertura.
func (uc *UseCase) Reset(ctx context.Context, restaurantID, tableID string) (*dto.TableResponse, error) {
	var out *dto.TableResponse
	err := uc.txRunner.RunTable(ctx, func(tableRepo repository.TableRepository, orderRepo repository.OrderRepository) error {
		table, err := tableRepo.GetByIDForUpdate(tableID)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.ErrNotFound
		}
		if table.RestaurantID != restaurantID {
			return domain.ErrForbidden
		}
		if err := orderRepo.DetachFromTable(table.ID); err != nil {
			return err
		}
		table.Status = entity.TableStatusFree
		table.Total = decimal.Zero
		table.CustomerName = ""
		table.OpenedAt = nil
		table.UpdatedAt = time.Now()
		if err := tableRepo.Update(table); err != nil {
			return err
		}
		out = toTableResponse(table)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista as mesas do restaurante.
func (uc *UseCase) List(restaurantID string) ([]dto.TableResponse, error) {
	list, err := uc.tableRepo.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TableResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTableResponse(t))
	}
	return items, nil
}

// ListOrders lista os pedidos vinculados à mesa (tela de conferência).
func (uc *UseCase) ListOrders(restaurantID, tableID string) ([]dto.OrderResponse, error) {
	if _, err := uc.loadOwnedTable(restaurantID, tableID); err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.ListByTable(tableID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *dto.NewOrderResponse(o))
	}
	return items, nil
}

func (uc *UseCase) loadOwnedTable(restaurantID, tableID string) (*entity.Table, error) {
	table, err := uc.tableRepo.GetByID(tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrNotFound
	}
	if table.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}
	return table, nil
}

func toTableResponse(t *entity.Table) *dto.TableResponse {
	return &dto.TableResponse{
		ID:           t.ID,
		Number:       t.Number,
		Status:       t.Status,
		CustomerName: t.CustomerName,
		Total:        t.Total,
		OpenedAt:     t.OpenedAt,
	}
}
