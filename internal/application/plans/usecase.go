// Package plans aplica as decisões do guardião de planos (domain/plan) sobre
// a persistência: consulta de cota, upgrade, pacote extra e a varredura
// diária de downgrade.
package plans

import (
	"context"
	"time"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/plan"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
	"github.com/jhoicas/comanda-api/pkg/logger"
)

// UseCase casos de uso de plano/cota.
type UseCase struct {
	txRunner       TxRunner
	restaurantRepo repository.RestaurantRepository
	graceDays      int
	log            *logger.Logger
}

// NewUseCase constrói o caso de uso. graceDays é a tolerância da varredura.
func NewUseCase(txRunner TxRunner, restaurantRepo repository.RestaurantRepository, graceDays int, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, restaurantRepo: restaurantRepo, graceDays: graceDays, log: log}
}

// GetPlan devolve o estado do plano do restaurante.
func (uc *UseCase) GetPlan(restaurantID string) (*dto.PlanResponse, error) {
	r, err := uc.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.PlanResponse{
		Tier:               r.PlanTier,
		DeliveryPro:        r.DeliveryPro,
		SalaoPro:           r.SalaoPro,
		CurrentMonthOrders: r.CurrentMonthOrders,
		UserLimit:          r.UserLimit,
		TableLimit:         r.TableLimit,
		PlanExpiresAt:      r.PlanExpiresAt,
	}, nil
}

// CheckQuota devolve a situação da cota mensal sem mutar nada.
func (uc *UseCase) CheckQuota(restaurantID string) (*dto.QuotaStatusResponse, error) {
	r, err := uc.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	limits := plan.LimitsFor(r.PlanTier)
	unlimited := limits.UnlimitedOrders || r.QuotaExempt()
	return &dto.QuotaStatusResponse{
		Current:   r.CurrentMonthOrders,
		Limit:     limits.MonthlyOrders,
		Unlimited: unlimited,
		Allowed:   plan.CheckOrderQuota(r) == nil,
	}, nil
}

// Upgrade move o restaurante para um tier superior. Falha com ErrAlreadyOnPlan
// se o tier atual já for igual ou superior ao alvo.
//
// A linha do restaurante é carregada com lock dentro da transação: um pedido
// sendo criado ao mesmo tempo segura o mesmo lock antes de incrementar o
// contador, então o Update daqui nunca grava um contador defasado.
func (uc *UseCase) Upgrade(ctx context.Context, restaurantID string, in dto.UpgradePlanRequest) (*dto.PlanResponse, error) {
	months := in.Months
	if months <= 0 {
		months = 1
	}
	expiresAt := time.Now().AddDate(0, months, 0)
	err := uc.txRunner.RunRestaurant(ctx, func(restaurantRepo repository.RestaurantRepository) error {
		r, err := restaurantRepo.GetByIDForUpdate(restaurantID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if err := plan.ApplyUpgrade(r, in.Tier, expiresAt); err != nil {
			return err
		}
		r.UpdatedAt = time.Now()
		return restaurantRepo.Update(r)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("restaurant_id", restaurantID).Str("tier", in.Tier).Msg("plano atualizado")
	return uc.GetPlan(restaurantID)
}

// BuyExtraPackage abate um bloco fixo do contador mensal. O contador pode
// ficar negativo; só surte efeito prático quando volta para baixo do limite.
func (uc *UseCase) BuyExtraPackage(restaurantID string) (*dto.QuotaStatusResponse, error) {
	r, err := uc.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.restaurantRepo.IncrementMonthOrders(restaurantID, -plan.ExtraPackageOrders); err != nil {
		return nil, err
	}
	return uc.CheckQuota(restaurantID)
}

// RunDowngradeSweep rebaixa para FREE todo restaurante com capacidade paga
// cujo plano venceu há mais que a tolerância. Idempotente (restaurantes já
// rebaixados saem do conjunto candidato) e com isolamento por tenant: a falha
// de um registro é logada e não interrompe o restante da frota.
// Devolve quantos restaurantes foram rebaixados nesta execução.
func (uc *UseCase) RunDowngradeSweep(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-time.Duration(uc.graceDays) * 24 * time.Hour)
	candidates, err := uc.restaurantRepo.ListExpiredPaid(cutoff)
	if err != nil {
		return 0, err
	}
	downgraded := 0
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return downgraded, ctx.Err()
		}
		applied := false
		// a listagem é sem lock; dentro da transação a linha é relida com
		// FOR UPDATE e a elegibilidade reavaliada, para que um upgrade ou
		// pedido concorrente nunca seja sobrescrito por dados defasados
		err := uc.txRunner.RunRestaurant(ctx, func(restaurantRepo repository.RestaurantRepository) error {
			r, err := restaurantRepo.GetByIDForUpdate(candidate.ID)
			if err != nil {
				return err
			}
			if r == nil || !plan.ShouldDowngrade(r, now, uc.graceDays) {
				return nil
			}
			plan.ApplyDowngrade(r)
			r.UpdatedAt = now
			if err := restaurantRepo.Update(r); err != nil {
				return err
			}
			applied = true
			return nil
		})
		if err != nil {
			uc.log.Error().Err(err).Str("restaurant_id", candidate.ID).Msg("falha ao rebaixar plano; seguindo para o próximo")
			continue
		}
		if applied {
			downgraded++
			uc.log.Info().Str("restaurant_id", candidate.ID).Msg("plano vencido rebaixado para FREE")
		}
	}
	return downgraded, nil
}
