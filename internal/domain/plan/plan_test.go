package plan_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/plan"
)

func restauranteFree(orders int) *entity.Restaurant {
	return &entity.Restaurant{
		ID:                 "r1",
		PlanTier:           plan.TierFree,
		CurrentMonthOrders: orders,
		UserLimit:          2,
		TableLimit:         10,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cota mensal de pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckOrderQuota_AbaixoDoLimitePermite(t *testing.T) {
	limite := plan.LimitsFor(plan.TierFree).MonthlyOrders
	r := restauranteFree(limite - 1)

	assert.NoError(t, plan.CheckOrderQuota(r))
}

func TestCheckOrderQuota_NoLimiteNegaComNumeros(t *testing.T) {
	limite := plan.LimitsFor(plan.TierFree).MonthlyOrders
	r := restauranteFree(limite)

	err := plan.CheckOrderQuota(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	var qe *domain.QuotaExceededError
	require.True(t, errors.As(err, &qe), "o erro deve carregar contador e limite")
	assert.Equal(t, limite, qe.Current)
	assert.Equal(t, limite, qe.Limit)
}

func TestCheckOrderQuota_IsencaoLegacyEBeta(t *testing.T) {
	limite := plan.LimitsFor(plan.TierFree).MonthlyOrders

	legacy := restauranteFree(limite + 50)
	legacy.Legacy = true
	assert.NoError(t, plan.CheckOrderQuota(legacy))

	beta := restauranteFree(limite + 50)
	beta.BetaTester = true
	assert.NoError(t, plan.CheckOrderQuota(beta))
}

func TestCheckOrderQuota_TierPagoNaoTemCota(t *testing.T) {
	r := restauranteFree(10_000)
	r.PlanTier = plan.TierDeliveryPro

	assert.NoError(t, plan.CheckOrderQuota(r))
}

func TestCheckOrderQuota_ContadorNegativoAposPacoteExtra(t *testing.T) {
	// O pacote extra subtrai um bloco fixo; o contador pode ficar negativo e
	// isso apenas amplia a folga (a comparação é >=).
	r := restauranteFree(plan.ExtraPackageOrders - 15)
	assert.Negative(t, r.CurrentMonthOrders)
	assert.NoError(t, plan.CheckOrderQuota(r))
}

// ──────────────────────────────────────────────────────────────────────────────
// Limite de assentos
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckSeatLimit(t *testing.T) {
	r := restauranteFree(0)

	assert.NoError(t, plan.CheckSeatLimit(r, 1))
	assert.ErrorIs(t, plan.CheckSeatLimit(r, 2), domain.ErrSeatLimitReached)

	premium := restauranteFree(0)
	premium.PlanTier = plan.TierPremium
	assert.NoError(t, plan.CheckSeatLimit(premium, 500), "PREMIUM tem assentos ilimitados")
}

// ──────────────────────────────────────────────────────────────────────────────
// Upgrade
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyUpgrade_FreeParaDeliveryPro(t *testing.T) {
	r := restauranteFree(42)
	vence := time.Now().AddDate(0, 1, 0)

	require.NoError(t, plan.ApplyUpgrade(r, plan.TierDeliveryPro, vence))

	assert.Equal(t, plan.TierDeliveryPro, r.PlanTier)
	assert.True(t, r.DeliveryPro)
	assert.False(t, r.SalaoPro)
	assert.Zero(t, r.CurrentMonthOrders, "o upgrade zera o contador mensal")
	assert.Equal(t, plan.LimitsFor(plan.TierDeliveryPro).Tables, r.TableLimit)
	require.NotNil(t, r.PlanExpiresAt)
	assert.True(t, r.PlanExpiresAt.Equal(vence))
}

func TestApplyUpgrade_MesmoTierOuInferiorFalha(t *testing.T) {
	r := restauranteFree(0)
	require.NoError(t, plan.ApplyUpgrade(r, plan.TierPremium, time.Now().AddDate(0, 1, 0)))

	err := plan.ApplyUpgrade(r, plan.TierDeliveryPro, time.Now().AddDate(0, 1, 0))
	assert.ErrorIs(t, err, domain.ErrAlreadyOnPlan)

	err = plan.ApplyUpgrade(r, plan.TierPremium, time.Now().AddDate(0, 1, 0))
	assert.ErrorIs(t, err, domain.ErrAlreadyOnPlan)
}

func TestApplyUpgrade_ParaFreeEhInvalido(t *testing.T) {
	r := restauranteFree(0)
	assert.ErrorIs(t, plan.ApplyUpgrade(r, plan.TierFree, time.Now()), domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Downgrade (cenário F: vencido há 6 dias rebaixa; há 3 dias não)
// ──────────────────────────────────────────────────────────────────────────────

func TestShouldDowngrade_ForaDaTolerancia(t *testing.T) {
	now := time.Now()
	vencidoHa6 := now.AddDate(0, 0, -6)

	r := restauranteFree(0)
	r.PlanTier = plan.TierSalaoPro
	r.SalaoPro = true
	r.PlanExpiresAt = &vencidoHa6

	assert.True(t, plan.ShouldDowngrade(r, now, 5))
}

func TestShouldDowngrade_DentroDaTolerancia(t *testing.T) {
	now := time.Now()
	vencidoHa3 := now.AddDate(0, 0, -3)

	r := restauranteFree(0)
	r.PlanTier = plan.TierSalaoPro
	r.SalaoPro = true
	r.PlanExpiresAt = &vencidoHa3

	assert.False(t, plan.ShouldDowngrade(r, now, 5))
}

func TestShouldDowngrade_SemCapacidadePagaOuSemVencimento(t *testing.T) {
	now := time.Now()

	free := restauranteFree(0)
	assert.False(t, plan.ShouldDowngrade(free, now, 5))

	semVencimento := restauranteFree(0)
	semVencimento.PlanTier = plan.TierPremium
	semVencimento.DeliveryPro = true
	semVencimento.SalaoPro = true
	assert.False(t, plan.ShouldDowngrade(semVencimento, now, 5), "cortesia sem vencimento nunca rebaixa")
}

func TestApplyDowngrade_LimpaFlagsEVencimento(t *testing.T) {
	vencido := time.Now().AddDate(0, 0, -10)
	r := restauranteFree(0)
	r.PlanTier = plan.TierPremium
	r.DeliveryPro = true
	r.SalaoPro = true
	r.PlanExpiresAt = &vencido

	plan.ApplyDowngrade(r)

	assert.Equal(t, plan.TierFree, r.PlanTier)
	assert.False(t, r.DeliveryPro)
	assert.False(t, r.SalaoPro)
	assert.Nil(t, r.PlanExpiresAt)

	// Idempotência: aplicar de novo não muda nada
	antes := *r
	plan.ApplyDowngrade(r)
	assert.Equal(t, antes, *r)
}
