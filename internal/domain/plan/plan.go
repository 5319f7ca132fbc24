// Package plan concentra as regras de plano/cota do sistema. É o único ponto
// que conhece os limites de cada tier e as transições de upgrade/downgrade;
// os casos de uso aplicam estas decisões dentro das suas transações.
package plan

import (
	"time"

	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
)

// Tiers de plano, do mais básico ao mais completo.
const (
	TierFree        = "FREE"
	TierDeliveryPro = "DELIVERY_PRO"
	TierSalaoPro    = "SALAO_PRO"
	TierPremium     = "PREMIUM"
)

// ExtraPackageOrders tamanho do bloco abatido do contador mensal ao comprar
// um pacote extra. O contador pode ficar negativo: a cota só compara com >=,
// então um valor negativo apenas amplia a folga.
const ExtraPackageOrders = 10

// Limits limites e capacidades de um tier.
type Limits struct {
	MonthlyOrders   int // ignorado quando UnlimitedOrders
	Users           int // ignorado quando UnlimitedUsers
	Tables          int
	UnlimitedOrders bool
	UnlimitedUsers  bool
	DeliveryPro     bool
	SalaoPro        bool
}

var tierLimits = map[string]Limits{
	TierFree: {
		MonthlyOrders: 100,
		Users:         2,
		Tables:        10,
	},
	TierDeliveryPro: {
		UnlimitedOrders: true,
		Users:           5,
		Tables:          10,
		DeliveryPro:     true,
	},
	TierSalaoPro: {
		UnlimitedOrders: true,
		Users:           5,
		Tables:          30,
		SalaoPro:        true,
	},
	TierPremium: {
		UnlimitedOrders: true,
		UnlimitedUsers:  true,
		Tables:          100,
		DeliveryPro:     true,
		SalaoPro:        true,
	},
}

var tierRank = map[string]int{
	TierFree:        0,
	TierDeliveryPro: 1,
	TierSalaoPro:    1,
	TierPremium:     2,
}

// LimitsFor devolve os limites do tier; tiers desconhecidos caem no FREE.
func LimitsFor(tier string) Limits {
	if l, ok := tierLimits[tier]; ok {
		return l
	}
	return tierLimits[TierFree]
}

// CheckOrderQuota decide se o restaurante pode criar mais um pedido no mês.
// Nega apenas no tier base, sem isenção legacy/beta, com o contador já no
// limite. Retorna *domain.QuotaExceededError com os números para o cliente.
func CheckOrderQuota(r *entity.Restaurant) error {
	limits := LimitsFor(r.PlanTier)
	if limits.UnlimitedOrders || r.QuotaExempt() {
		return nil
	}
	if r.CurrentMonthOrders >= limits.MonthlyOrders {
		return &domain.QuotaExceededError{Current: r.CurrentMonthOrders, Limit: limits.MonthlyOrders}
	}
	return nil
}

// CheckSeatLimit decide se o restaurante pode cadastrar mais um usuário.
// currentUsers é a contagem persistida no momento da checagem.
func CheckSeatLimit(r *entity.Restaurant, currentUsers int) error {
	limits := LimitsFor(r.PlanTier)
	if limits.UnlimitedUsers {
		return nil
	}
	limit := r.UserLimit
	if limit <= 0 {
		limit = limits.Users
	}
	if currentUsers >= limit {
		return domain.ErrSeatLimitReached
	}
	return nil
}

// CheckTableLimit decide se o restaurante pode criar mais uma mesa.
func CheckTableLimit(r *entity.Restaurant, currentTables int) error {
	limit := r.TableLimit
	if limit <= 0 {
		limit = LimitsFor(r.PlanTier).Tables
	}
	if currentTables >= limit {
		return domain.ErrTableLimitReached
	}
	return nil
}

// ApplyUpgrade move o restaurante para um tier superior: zera o contador
// mensal, eleva os tetos de mesas/usuários ao teto do tier, sincroniza os
// flags de capacidade e grava o novo vencimento.
// Falha com ErrAlreadyOnPlan se o tier atual já for igual ou superior.
func ApplyUpgrade(r *entity.Restaurant, target string, expiresAt time.Time) error {
	targetLimits, ok := tierLimits[target]
	if !ok || target == TierFree {
		return domain.ErrInvalidInput
	}
	if tierRank[r.PlanTier] >= tierRank[target] {
		return domain.ErrAlreadyOnPlan
	}
	r.PlanTier = target
	r.DeliveryPro = targetLimits.DeliveryPro
	r.SalaoPro = targetLimits.SalaoPro
	r.CurrentMonthOrders = 0
	r.TableLimit = targetLimits.Tables
	r.UserLimit = targetLimits.Users
	r.PlanExpiresAt = &expiresAt
	return nil
}

// ShouldDowngrade informa se a varredura deve rebaixar o restaurante: há
// capacidade paga, o vencimento está definido e já passou da tolerância.
func ShouldDowngrade(r *entity.Restaurant, now time.Time, graceDays int) bool {
	if !r.HasPaidCapability() || r.PlanExpiresAt == nil {
		return false
	}
	deadline := r.PlanExpiresAt.Add(time.Duration(graceDays) * 24 * time.Hour)
	return now.After(deadline)
}

// ApplyDowngrade rebaixa para o tier base. Limpa os flags de capacidade e o
// vencimento junto com o tier, mantendo a invariante tier/flags consistente.
// Aplicar duas vezes produz o mesmo estado (a varredura é idempotente).
func ApplyDowngrade(r *entity.Restaurant) {
	free := tierLimits[TierFree]
	r.PlanTier = TierFree
	r.DeliveryPro = false
	r.SalaoPro = false
	r.PlanExpiresAt = nil
	r.TableLimit = free.Tables
	r.UserLimit = free.Users
}
