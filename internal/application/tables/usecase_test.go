package tables

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/plan"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// Fakes em memória. O fakeTxRunner entrega os mesmos fakes ao callback:
// os testes cobrem a regra de negócio, não o comportamento transacional.

type fakeTableRepo struct {
	tables map[string]*entity.Table
}

func newFakeTableRepo(ts ...*entity.Table) *fakeTableRepo {
	repo := &fakeTableRepo{tables: make(map[string]*entity.Table)}
	for _, t := range ts {
		repo.tables[t.ID] = t
	}
	return repo
}

func (f *fakeTableRepo) Create(t *entity.Table) error {
	for _, existing := range f.tables {
		if existing.RestaurantID == t.RestaurantID && existing.Number == t.Number {
			return domain.ErrDuplicate
		}
	}
	f.tables[t.ID] = t
	return nil
}

func (f *fakeTableRepo) GetByID(id string) (*entity.Table, error)          { return f.tables[id], nil }
func (f *fakeTableRepo) GetByIDForUpdate(id string) (*entity.Table, error) { return f.tables[id], nil }

func (f *fakeTableRepo) GetByNumber(restaurantID string, number int) (*entity.Table, error) {
	for _, t := range f.tables {
		if t.RestaurantID == restaurantID && t.Number == number {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTableRepo) Update(t *entity.Table) error {
	f.tables[t.ID] = t
	return nil
}

func (f *fakeTableRepo) ListByRestaurant(restaurantID string) ([]*entity.Table, error) {
	var out []*entity.Table
	for _, t := range f.tables {
		if t.RestaurantID == restaurantID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTableRepo) CountByRestaurant(restaurantID string) (int, error) {
	list, _ := f.ListByRestaurant(restaurantID)
	return len(list), nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func newFakeOrderRepo(os ...*entity.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[string]*entity.Order)}
	for _, o := range os {
		repo.orders[o.ID] = o
	}
	return repo
}

func (f *fakeOrderRepo) Create(o *entity.Order) error {
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) CreateItem(item *entity.OrderItem) error { return nil }

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) { return f.orders[id], nil }

func (f *fakeOrderRepo) ListByTable(tableID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.TableID != nil && *o.TableID == tableID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByRestaurant(restaurantID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.RestaurantID == restaurantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) SetPaymentMethodByTable(tableID, method string) error {
	for _, o := range f.orders {
		if o.TableID != nil && *o.TableID == tableID {
			o.PaymentMethod = method
		}
	}
	return nil
}

func (f *fakeOrderRepo) DetachFromTable(tableID string) error {
	for _, o := range f.orders {
		if o.TableID != nil && *o.TableID == tableID {
			o.TableID = nil
		}
	}
	return nil
}

type fakeRestaurantRepo struct {
	restaurants map[string]*entity.Restaurant
}

func (f *fakeRestaurantRepo) Create(r *entity.Restaurant) error { f.restaurants[r.ID] = r; return nil }
func (f *fakeRestaurantRepo) GetByID(id string) (*entity.Restaurant, error) {
	return f.restaurants[id], nil
}
func (f *fakeRestaurantRepo) GetBySlug(slug string) (*entity.Restaurant, error) { return nil, nil }
func (f *fakeRestaurantRepo) GetByIDForUpdate(id string) (*entity.Restaurant, error) {
	return f.restaurants[id], nil
}
func (f *fakeRestaurantRepo) Update(r *entity.Restaurant) error { f.restaurants[r.ID] = r; return nil }
func (f *fakeRestaurantRepo) IncrementMonthOrders(id string, delta int) error {
	f.restaurants[id].CurrentMonthOrders += delta
	return nil
}
func (f *fakeRestaurantRepo) ListExpiredPaid(cutoff time.Time) ([]*entity.Restaurant, error) {
	return nil, nil
}

type fakeTxRunner struct {
	tableRepo repository.TableRepository
	orderRepo repository.OrderRepository
}

func (f *fakeTxRunner) RunTable(ctx context.Context, fn func(
	tableRepo repository.TableRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(f.tableRepo, f.orderRepo)
}

func buildUseCase(tableRepo *fakeTableRepo, orderRepo *fakeOrderRepo, r *entity.Restaurant) *UseCase {
	restaurantRepo := &fakeRestaurantRepo{restaurants: map[string]*entity.Restaurant{r.ID: r}}
	tx := &fakeTxRunner{tableRepo: tableRepo, orderRepo: orderRepo}
	return NewUseCase(tx, tableRepo, restaurantRepo, orderRepo)
}

func freeRestaurant(id string) *entity.Restaurant {
	limits := plan.LimitsFor(plan.TierFree)
	return &entity.Restaurant{
		ID:         id,
		PlanTier:   plan.TierFree,
		UserLimit:  limits.Users,
		TableLimit: limits.Tables,
	}
}

func occupiedTable(id, restaurantID string, number int) *entity.Table {
	opened := time.Now().Add(-time.Hour)
	return &entity.Table{
		ID:           id,
		RestaurantID: restaurantID,
		Number:       number,
		Status:       entity.TableStatusOccupied,
		CustomerName: "João",
		Total:        decimal.NewFromInt(80),
		OpenedAt:     &opened,
	}
}

func TestCreate_NumeroDuplicadoFalha(t *testing.T) {
	r := freeRestaurant("r1")
	tableRepo := newFakeTableRepo(&entity.Table{ID: "t1", RestaurantID: "r1", Number: 5, Status: entity.TableStatusFree})
	uc := buildUseCase(tableRepo, newFakeOrderRepo(), r)

	_, err := uc.Create("r1", dto.CreateTableRequest{Number: 5})
	var dup *domain.DuplicateTableNumberError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 5, dup.Number)
}

func TestCreate_RespeitaTetoDeMesasDoPlano(t *testing.T) {
	r := freeRestaurant("r1")
	r.TableLimit = 1
	tableRepo := newFakeTableRepo(&entity.Table{ID: "t1", RestaurantID: "r1", Number: 1, Status: entity.TableStatusFree})
	uc := buildUseCase(tableRepo, newFakeOrderRepo(), r)

	_, err := uc.Create("r1", dto.CreateTableRequest{Number: 2})
	assert.ErrorIs(t, err, domain.ErrTableLimitReached)
}

func TestCreate_MesaNasceLivre(t *testing.T) {
	uc := buildUseCase(newFakeTableRepo(), newFakeOrderRepo(), freeRestaurant("r1"))

	out, err := uc.Create("r1", dto.CreateTableRequest{Number: 7})
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusFree, out.Status)
	assert.True(t, out.Total.IsZero())
	assert.Nil(t, out.OpenedAt)
}

func TestPay_FechaMesaEGravaMetodoNosPedidos(t *testing.T) {
	table := occupiedTable("t1", "r1", 1)
	tableID := table.ID
	orderRepo := newFakeOrderRepo(
		&entity.Order{ID: "o1", RestaurantID: "r1", TableID: &tableID},
		&entity.Order{ID: "o2", RestaurantID: "r1", TableID: &tableID},
	)
	uc := buildUseCase(newFakeTableRepo(table), orderRepo, freeRestaurant("r1"))

	out, err := uc.Pay(context.Background(), "r1", "t1", dto.PayTableRequest{PaymentMethod: entity.PaymentPix})
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusPaid, out.Status)
	assert.Equal(t, entity.PaymentPix, orderRepo.orders["o1"].PaymentMethod)
	assert.Equal(t, entity.PaymentPix, orderRepo.orders["o2"].PaymentMethod)
}

func TestPay_MesaLivreFalhaComEstadoInvalido(t *testing.T) {
	table := &entity.Table{ID: "t1", RestaurantID: "r1", Number: 1, Status: entity.TableStatusFree}
	uc := buildUseCase(newFakeTableRepo(table), newFakeOrderRepo(), freeRestaurant("r1"))

	_, err := uc.Pay(context.Background(), "r1", "t1", dto.PayTableRequest{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPay_MesaJaPagaFalhaComEstadoInvalido(t *testing.T) {
	table := occupiedTable("t1", "r1", 1)
	table.Status = entity.TableStatusPaid
	uc := buildUseCase(newFakeTableRepo(table), newFakeOrderRepo(), freeRestaurant("r1"))

	_, err := uc.Pay(context.Background(), "r1", "t1", dto.PayTableRequest{PaymentMethod: entity.PaymentCard})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPay_MesaDeOutroRestauranteFalha(t *testing.T) {
	table := occupiedTable("t1", "r2", 1)
	uc := buildUseCase(newFakeTableRepo(table), newFakeOrderRepo(), freeRestaurant("r1"))

	_, err := uc.Pay(context.Background(), "r1", "t1", dto.PayTableRequest{PaymentMethod: entity.PaymentPix})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestReset_DesvinculaPedidosSemApagar(t *testing.T) {
	table := occupiedTable("t1", "r1", 1)
	table.Status = entity.TableStatusPaid
	tableID := table.ID
	orderRepo := newFakeOrderRepo(&entity.Order{ID: "o1", RestaurantID: "r1", TableID: &tableID})
	uc := buildUseCase(newFakeTableRepo(table), orderRepo, freeRestaurant("r1"))

	out, err := uc.Reset(context.Background(), "r1", "t1")
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusFree, out.Status)
	assert.True(t, out.Total.IsZero())
	assert.Empty(t, out.CustomerName)
	assert.Nil(t, out.OpenedAt)

	// o pedido continua existindo, só perde o vínculo com a mesa
	require.Contains(t, orderRepo.orders, "o1")
	assert.Nil(t, orderRepo.orders["o1"].TableID)
}

func TestReset_PermitidoDeQualquerEstado(t *testing.T) {
	table := occupiedTable("t1", "r1", 1)
	uc := buildUseCase(newFakeTableRepo(table), newFakeOrderRepo(), freeRestaurant("r1"))

	out, err := uc.Reset(context.Background(), "r1", "t1")
	require.NoError(t, err)
	assert.Equal(t, entity.TableStatusFree, out.Status)
}

func TestRenumber_NumeroOcupadoPorOutraMesaFalha(t *testing.T) {
	tableRepo := newFakeTableRepo(
		&entity.Table{ID: "t1", RestaurantID: "r1", Number: 1, Status: entity.TableStatusFree},
		&entity.Table{ID: "t2", RestaurantID: "r1", Number: 2, Status: entity.TableStatusFree},
	)
	uc := buildUseCase(tableRepo, newFakeOrderRepo(), freeRestaurant("r1"))

	_, err := uc.Renumber(context.Background(), "r1", "t1", dto.RenumberTableRequest{Number: 2})
	var dup *domain.DuplicateTableNumberError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 2, dup.Number)

	// mesmo número é no-op
	out, err := uc.Renumber(context.Background(), "r1", "t1", dto.RenumberTableRequest{Number: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Number)
}

// staleReadTableRepo devolve uma cópia defasada na leitura sem lock e o
// registro vivo na leitura com lock, simulando um fechamento commitado entre
// as duas.
type staleReadTableRepo struct {
	*fakeTableRepo
	stale *entity.Table
}

func (f *staleReadTableRepo) GetByID(id string) (*entity.Table, error) {
	return f.stale, nil
}

func TestRenameCustomer_NaoReverteFechamentoConcorrente(t *testing.T) {
	live := occupiedTable("t1", "r1", 1)
	live.Status = entity.TableStatusPaid

	stale := *live
	stale.Status = entity.TableStatusOccupied

	tableRepo := &staleReadTableRepo{fakeTableRepo: newFakeTableRepo(live), stale: &stale}
	orderRepo := newFakeOrderRepo()
	restaurantRepo := &fakeRestaurantRepo{restaurants: map[string]*entity.Restaurant{"r1": freeRestaurant("r1")}}
	tx := &fakeTxRunner{tableRepo: tableRepo, orderRepo: orderRepo}
	uc := NewUseCase(tx, tableRepo, restaurantRepo, orderRepo)

	out, err := uc.RenameCustomer(context.Background(), "r1", "t1", dto.RenameTableCustomerRequest{CustomerName: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.CustomerName)
	assert.Equal(t, entity.TableStatusPaid, tableRepo.tables["t1"].Status, "a mudança de status vista sob lock prevalece")
}
