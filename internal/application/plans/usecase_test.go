package plans

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/plan"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
	"github.com/jhoicas/comanda-api/pkg/logger"
)

// fakeTxRunner entrega o próprio repositório ao callback; o comportamento
// transacional fica fora do escopo destes testes.
type fakeTxRunner struct {
	repo repository.RestaurantRepository
}

func (f *fakeTxRunner) RunRestaurant(ctx context.Context, fn func(restaurantRepo repository.RestaurantRepository) error) error {
	return fn(f.repo)
}

// fakeRestaurantRepo repositório em memória para os testes do use case.
type fakeRestaurantRepo struct {
	restaurants map[string]*entity.Restaurant
	failUpdate  map[string]bool
	updates     int
}

func newFakeRestaurantRepo(rs ...*entity.Restaurant) *fakeRestaurantRepo {
	repo := &fakeRestaurantRepo{
		restaurants: make(map[string]*entity.Restaurant),
		failUpdate:  make(map[string]bool),
	}
	for _, r := range rs {
		repo.restaurants[r.ID] = r
	}
	return repo
}

func (f *fakeRestaurantRepo) Create(r *entity.Restaurant) error {
	f.restaurants[r.ID] = r
	return nil
}

func (f *fakeRestaurantRepo) GetByID(id string) (*entity.Restaurant, error) {
	return f.restaurants[id], nil
}

func (f *fakeRestaurantRepo) GetBySlug(slug string) (*entity.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRestaurantRepo) GetByIDForUpdate(id string) (*entity.Restaurant, error) {
	return f.restaurants[id], nil
}

func (f *fakeRestaurantRepo) Update(r *entity.Restaurant) error {
	if f.failUpdate[r.ID] {
		return errors.New("update falhou")
	}
	f.restaurants[r.ID] = r
	f.updates++
	return nil
}

func (f *fakeRestaurantRepo) IncrementMonthOrders(id string, delta int) error {
	r, ok := f.restaurants[id]
	if !ok {
		return errors.New("não encontrado")
	}
	r.CurrentMonthOrders += delta
	return nil
}

func (f *fakeRestaurantRepo) ListExpiredPaid(cutoff time.Time) ([]*entity.Restaurant, error) {
	var out []*entity.Restaurant
	for _, r := range f.restaurants {
		if r.HasPaidCapability() && r.PlanExpiresAt != nil && r.PlanExpiresAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newTestUseCase(repo repository.RestaurantRepository, graceDays int) *UseCase {
	return NewUseCase(&fakeTxRunner{repo: repo}, repo, graceDays, testLogger())
}

func paidRestaurant(id string, expiredDaysAgo int, now time.Time) *entity.Restaurant {
	expires := now.AddDate(0, 0, -expiredDaysAgo)
	return &entity.Restaurant{
		ID:            id,
		PlanTier:      plan.TierDeliveryPro,
		DeliveryPro:   true,
		UserLimit:     5,
		TableLimit:    10,
		PlanExpiresAt: &expires,
	}
}

func TestRunDowngradeSweep_RebaixaVencidoAlemDaTolerancia(t *testing.T) {
	now := time.Now()
	repo := newFakeRestaurantRepo(
		paidRestaurant("vencido", 6, now), // 6 dias: além da tolerância de 5
		paidRestaurant("na-janela", 3, now),
	)
	uc := newTestUseCase(repo, 5)

	n, err := uc.RunDowngradeSweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	downgraded := repo.restaurants["vencido"]
	assert.Equal(t, plan.TierFree, downgraded.PlanTier)
	assert.False(t, downgraded.DeliveryPro)
	assert.Nil(t, downgraded.PlanExpiresAt)

	intact := repo.restaurants["na-janela"]
	assert.Equal(t, plan.TierDeliveryPro, intact.PlanTier, "dentro da janela de tolerância não rebaixa")
	assert.True(t, intact.DeliveryPro)
}

func TestRunDowngradeSweep_Idempotente(t *testing.T) {
	now := time.Now()
	repo := newFakeRestaurantRepo(paidRestaurant("vencido", 10, now))
	uc := newTestUseCase(repo, 5)

	n, err := uc.RunDowngradeSweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Segunda passada: o restaurante já sem capacidade paga sai do conjunto.
	n, err = uc.RunDowngradeSweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRunDowngradeSweep_FalhaDeUmTenantNaoInterrompe(t *testing.T) {
	now := time.Now()
	repo := newFakeRestaurantRepo(
		paidRestaurant("quebra", 10, now),
		paidRestaurant("ok", 10, now),
	)
	repo.failUpdate["quebra"] = true
	uc := newTestUseCase(repo, 5)

	n, err := uc.RunDowngradeSweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a falha de um registro não derruba a varredura")
	assert.Equal(t, plan.TierFree, repo.restaurants["ok"].PlanTier)
}

// racingRestaurantRepo simula um pedido commitado entre a listagem (sem lock)
// e a relida com lock: a listagem devolve cópias e o contador persistido sobe.
type racingRestaurantRepo struct {
	*fakeRestaurantRepo
}

func (f *racingRestaurantRepo) ListExpiredPaid(cutoff time.Time) ([]*entity.Restaurant, error) {
	list, err := f.fakeRestaurantRepo.ListExpiredPaid(cutoff)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Restaurant, 0, len(list))
	for _, r := range list {
		clone := *r
		out = append(out, &clone)
		r.CurrentMonthOrders++
	}
	return out, nil
}

func TestRunDowngradeSweep_NaoSobrescreveContadorConcorrente(t *testing.T) {
	now := time.Now()
	expired := paidRestaurant("vencido", 10, now)
	expired.CurrentMonthOrders = 5
	repo := &racingRestaurantRepo{fakeRestaurantRepo: newFakeRestaurantRepo(expired)}
	uc := newTestUseCase(repo, 5)

	n, err := uc.RunDowngradeSweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	r := repo.restaurants["vencido"]
	assert.Equal(t, plan.TierFree, r.PlanTier)
	assert.Equal(t, 6, r.CurrentMonthOrders, "o incremento do pedido concorrente sobrevive ao rebaixamento")
}

func TestUpgrade_TierInferiorOuIgualFalha(t *testing.T) {
	now := time.Now()
	repo := newFakeRestaurantRepo(paidRestaurant("r1", -30, now))
	uc := newTestUseCase(repo, 5)

	_, err := uc.Upgrade(context.Background(), "r1", dto.UpgradePlanRequest{Tier: plan.TierDeliveryPro, Months: 1})
	assert.Error(t, err, "upgrade lateral deve falhar")

	out, err := uc.Upgrade(context.Background(), "r1", dto.UpgradePlanRequest{Tier: plan.TierPremium, Months: 2})
	require.NoError(t, err)
	assert.Equal(t, plan.TierPremium, out.Tier)
	assert.True(t, out.DeliveryPro)
	assert.True(t, out.SalaoPro)
}

func TestBuyExtraPackage_ContadorPodeFicarNegativo(t *testing.T) {
	r := &entity.Restaurant{ID: "r1", PlanTier: plan.TierFree, CurrentMonthOrders: 3}
	repo := newFakeRestaurantRepo(r)
	uc := newTestUseCase(repo, 5)

	out, err := uc.BuyExtraPackage("r1")
	require.NoError(t, err)
	assert.Equal(t, -7, out.Current)
	assert.True(t, out.Allowed)
}
