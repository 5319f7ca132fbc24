package orders

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
	"github.com/jhoicas/comanda-api/pkg/logger"
)

// Fakes em memória. O fakeTxRunner entrega os mesmos fakes ao callback; a
// cota falha antes de qualquer escrita, então o efeito observável (nenhum
// pedido gravado, contador intacto) é o mesmo do rollback real.

type fakeStore struct {
	restaurants map[string]*entity.Restaurant
	tables      map[string]*entity.Table
	orders      map[string]*entity.Order
	items       []*entity.OrderItem
	products    map[string]*entity.Product
	addons      map[string]*entity.Addon
	areas       []*entity.DeliveryArea
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		restaurants: make(map[string]*entity.Restaurant),
		tables:      make(map[string]*entity.Table),
		orders:      make(map[string]*entity.Order),
		products:    make(map[string]*entity.Product),
		addons:      make(map[string]*entity.Addon),
	}
}

type fakeRestaurantRepo struct{ s *fakeStore }

func (f *fakeRestaurantRepo) Create(r *entity.Restaurant) error { f.s.restaurants[r.ID] = r; return nil }
func (f *fakeRestaurantRepo) GetByID(id string) (*entity.Restaurant, error) {
	return f.s.restaurants[id], nil
}
func (f *fakeRestaurantRepo) GetBySlug(slug string) (*entity.Restaurant, error) { return nil, nil }
func (f *fakeRestaurantRepo) GetByIDForUpdate(id string) (*entity.Restaurant, error) {
	return f.s.restaurants[id], nil
}
func (f *fakeRestaurantRepo) Update(r *entity.Restaurant) error { f.s.restaurants[r.ID] = r; return nil }
func (f *fakeRestaurantRepo) IncrementMonthOrders(id string, delta int) error {
	f.s.restaurants[id].CurrentMonthOrders += delta
	return nil
}
func (f *fakeRestaurantRepo) ListExpiredPaid(cutoff time.Time) ([]*entity.Restaurant, error) {
	return nil, nil
}

type fakeTableRepo struct{ s *fakeStore }

func (f *fakeTableRepo) Create(t *entity.Table) error                      { f.s.tables[t.ID] = t; return nil }
func (f *fakeTableRepo) GetByID(id string) (*entity.Table, error)          { return f.s.tables[id], nil }
func (f *fakeTableRepo) GetByIDForUpdate(id string) (*entity.Table, error) { return f.s.tables[id], nil }
func (f *fakeTableRepo) GetByNumber(restaurantID string, number int) (*entity.Table, error) {
	for _, t := range f.s.tables {
		if t.RestaurantID == restaurantID && t.Number == number {
			return t, nil
		}
	}
	return nil, nil
}
func (f *fakeTableRepo) Update(t *entity.Table) error { f.s.tables[t.ID] = t; return nil }
func (f *fakeTableRepo) ListByRestaurant(restaurantID string) ([]*entity.Table, error) {
	return nil, nil
}
func (f *fakeTableRepo) CountByRestaurant(restaurantID string) (int, error) { return 0, nil }

type fakeOrderRepo struct{ s *fakeStore }

func (f *fakeOrderRepo) Create(o *entity.Order) error { f.s.orders[o.ID] = o; return nil }
func (f *fakeOrderRepo) CreateItem(item *entity.OrderItem) error {
	f.s.items = append(f.s.items, item)
	return nil
}
func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) { return f.s.orders[id], nil }
func (f *fakeOrderRepo) ListByTable(tableID string) ([]*entity.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByRestaurant(restaurantID string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.s.orders {
		if o.RestaurantID == restaurantID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (f *fakeOrderRepo) SetPaymentMethodByTable(tableID, method string) error { return nil }
func (f *fakeOrderRepo) DetachFromTable(tableID string) error                 { return nil }

type fakeProductRepo struct{ s *fakeStore }

func (f *fakeProductRepo) Create(p *entity.Product) error            { f.s.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.s.products[id], nil }
func (f *fakeProductRepo) Update(p *entity.Product) error            { f.s.products[p.ID] = p; return nil }
func (f *fakeProductRepo) ListByRestaurant(restaurantID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Delete(id string) error { delete(f.s.products, id); return nil }

type fakeAddonRepo struct{ s *fakeStore }

func (f *fakeAddonRepo) Create(a *entity.Addon) error             { f.s.addons[a.ID] = a; return nil }
func (f *fakeAddonRepo) GetByID(id string) (*entity.Addon, error) { return f.s.addons[id], nil }
func (f *fakeAddonRepo) Update(a *entity.Addon) error             { f.s.addons[a.ID] = a; return nil }
func (f *fakeAddonRepo) ListByRestaurant(restaurantID string) ([]*entity.Addon, error) {
	return nil, nil
}
func (f *fakeAddonRepo) Delete(id string) error { delete(f.s.addons, id); return nil }

type fakeAreaRepo struct{ s *fakeStore }

func (f *fakeAreaRepo) Create(a *entity.DeliveryArea) error { f.s.areas = append(f.s.areas, a); return nil }
func (f *fakeAreaRepo) GetByID(id string) (*entity.DeliveryArea, error) { return nil, nil }
func (f *fakeAreaRepo) ListByRestaurant(restaurantID string) ([]*entity.DeliveryArea, error) {
	return f.s.areas, nil
}
func (f *fakeAreaRepo) Delete(id string) error { return nil }

type fakeTxRunner struct{ s *fakeStore }

func (f *fakeTxRunner) RunOrder(ctx context.Context, fn func(
	restaurantRepo repository.RestaurantRepository,
	tableRepo repository.TableRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(&fakeRestaurantRepo{f.s}, &fakeTableRepo{f.s}, &fakeOrderRepo{f.s})
}

type fakeNotifier struct{ sent chan string }

func (f *fakeNotifier) NotifyOrderReceived(ctx context.Context, restaurant *entity.Restaurant, order *entity.Order) error {
	f.sent <- order.ID
	return nil
}

type fakeAddressLookup struct{}

func (f *fakeAddressLookup) Lookup(ctx context.Context, cep string) (*Address, error) {
	return &Address{Street: "Av. Paulista", District: "Bela Vista", City: "São Paulo", UF: "SP"}, nil
}

func buildUseCase(s *fakeStore, notifier Notifier) *CreateOrderUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewCreateOrderUseCase(
		&fakeTxRunner{s},
		&fakeProductRepo{s},
		&fakeAddonRepo{s},
		&fakeTableRepo{s},
		&fakeAreaRepo{s},
		&fakeOrderRepo{s},
		notifier,
		&fakeAddressLookup{},
		log,
	)
}

func seedStore() *fakeStore {
	s := newFakeStore()
	limits := plan.LimitsFor(plan.TierFree)
	s.restaurants["r1"] = &entity.Restaurant{
		ID:         "r1",
		Name:       "Cantina da Nona",
		PlanTier:   plan.TierFree,
		UserLimit:  limits.Users,
		TableLimit: limits.Tables,
	}
	s.tables["t1"] = &entity.Table{
		ID:           "t1",
		RestaurantID: "r1",
		Number:       4,
		Status:       entity.TableStatusFree,
		Total:        decimal.Zero,
	}
	s.products["p1"] = &entity.Product{
		ID:           "p1",
		RestaurantID: "r1",
		Name:         "Pizza Margherita",
		Price:        decimal.NewFromFloat(20.00),
		Active:       true,
	}
	s.addons["a1"] = &entity.Addon{
		ID:           "a1",
		RestaurantID: "r1",
		Name:         "Borda recheada",
		Price:        decimal.NewFromFloat(3.50),
		Active:       true,
	}
	return s
}

func tableOrderRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		TableID: "t1",
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 2, AddonIDs: []string{"a1"}},
		},
	}
}

func TestCreateTableOrder_CalculaTotalComSnapshotDePrecos(t *testing.T) {
	s := seedStore()
	uc := buildUseCase(s, nil)

	out, err := uc.CreateTableOrder(context.Background(), "r1", tableOrderRequest())
	require.NoError(t, err)

	// (20.00 + 3.50) * 2
	assert.True(t, out.Total.Equal(decimal.NewFromFloat(47.00)), "total %s", out.Total)
	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.Equal(t, "Pizza Margherita", item.ProductName)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(20.00)), "snapshot do preço sem adicionais")
	require.Len(t, item.Addons, 1)
	assert.Equal(t, "Borda recheada", item.Addons[0].Name)

	// mudança posterior no catálogo não afeta o pedido gravado
	s.products["p1"].Price = decimal.NewFromFloat(99.00)
	stored := s.orders[out.ID]
	assert.True(t, stored.Items[0].UnitPrice.Equal(decimal.NewFromFloat(20.00)))
}

func TestCreateTableOrder_AberturaImplicitaDaMesa(t *testing.T) {
	s := seedStore()
	uc := buildUseCase(s, nil)

	_, err := uc.CreateTableOrder(context.Background(), "r1", tableOrderRequest())
	require.NoError(t, err)

	table := s.tables["t1"]
	assert.Equal(t, entity.TableStatusOccupied, table.Status)
	require.NotNil(t, table.OpenedAt, "primeiro pedido registra a abertura")
	openedAt := *table.OpenedAt
	assert.True(t, table.Total.Equal(decimal.NewFromFloat(47.00)))

	// segundo pedido acumula no total e preserva a abertura original
	_, err = uc.CreateTableOrder(context.Background(), "r1", tableOrderRequest())
	require.NoError(t, err)
	assert.True(t, table.Total.Equal(decimal.NewFromFloat(94.00)))
	assert.Equal(t, openedAt, *table.OpenedAt)
	assert.Equal(t, 2, s.restaurants["r1"].CurrentMonthOrders)
}

func TestCreateTableOrder_CotaEstouradaNaoGravaNada(t *testing.T) {
	s := seedStore()
	s.restaurants["r1"].CurrentMonthOrders = 100
	uc := buildUseCase(s, nil)

	_, err := uc.CreateTableOrder(context.Background(), "r1", tableOrderRequest())
	var quota *domain.QuotaExceededError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, 100, quota.Current)
	assert.Equal(t, 100, quota.Limit)

	assert.Empty(t, s.orders, "nenhum pedido persiste quando a cota nega")
	assert.Equal(t, entity.TableStatusFree, s.tables["t1"].Status)
	assert.Equal(t, 100, s.restaurants["r1"].CurrentMonthOrders)
}

func TestCreateTableOrder_MesaPagaRecusaNovoPedido(t *testing.T) {
	s := seedStore()
	s.tables["t1"].Status = entity.TableStatusPaid
	uc := buildUseCase(s, nil)

	_, err := uc.CreateTableOrder(context.Background(), "r1", tableOrderRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, s.orders, "mesa fechada não acumula pedidos sem pagamento")
	assert.Equal(t, entity.TableStatusPaid, s.tables["t1"].Status)
	assert.Equal(t, 0, s.restaurants["r1"].CurrentMonthOrders)
}

func TestCreateTableOrder_IsencaoLegacyIgnoraCota(t *testing.T) {
	s := seedStore()
	s.restaurants["r1"].CurrentMonthOrders = 500
	s.restaurants["r1"].Legacy = true
	uc := buildUseCase(s, nil)

	_, err := uc.CreateTableOrder(context.Background(), "r1", tableOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, 501, s.restaurants["r1"].CurrentMonthOrders, "o contador segue subindo mesmo isento")
}

func TestCreateTableOrder_ProdutoInativoFalha(t *testing.T) {
	s := seedStore()
	s.products["p1"].Active = false
	uc := buildUseCase(s, nil)

	_, err := uc.CreateTableOrder(context.Background(), "r1", tableOrderRequest())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.orders)
}

func TestCreateTableOrder_ProdutoDeOutroRestauranteFalha(t *testing.T) {
	s := seedStore()
	s.products["p1"].RestaurantID = "r2"
	uc := buildUseCase(s, nil)

	_, err := uc.CreateTableOrder(context.Background(), "r1", tableOrderRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateSelfServiceOrder_LocalizaMesaPeloNumero(t *testing.T) {
	s := seedStore()
	uc := buildUseCase(s, nil)

	out, err := uc.CreateSelfServiceOrder(context.Background(), "r1", dto.CreateSelfServiceOrderRequest{
		TableNumber:  4,
		CustomerName: "Maria",
		Items:        []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, out.TableID)
	assert.Equal(t, "t1", *out.TableID)
	assert.Equal(t, "Maria", s.tables["t1"].CustomerName)
	assert.Equal(t, entity.TableStatusOccupied, s.tables["t1"].Status)

	_, err = uc.CreateSelfServiceOrder(context.Background(), "r1", dto.CreateSelfServiceOrderRequest{
		TableNumber: 99,
		Items:       []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func deliveryRequest(cep string) dto.CreateDeliveryOrderRequest {
	return dto.CreateDeliveryOrderRequest{
		CustomerName:  "Carlos",
		CustomerPhone: "+5511999990000",
		CEP:           cep,
		AddressNumber: "120",
		Items:         []dto.OrderItemRequest{{ProductID: "p1", Quantity: 2}},
	}
}

func seedDeliveryArea(s *fakeStore, minOrder float64) {
	s.areas = append(s.areas, &entity.DeliveryArea{
		ID:           "area1",
		RestaurantID: "r1",
		Name:         "Centro",
		CEPStart:     "01000000",
		CEPEnd:       "01999999",
		Fee:          decimal.NewFromFloat(8.00),
		MinOrder:     decimal.NewFromFloat(minOrder),
	})
}

func TestCreateDeliveryOrder_TaxaForaDoTotal(t *testing.T) {
	s := seedStore()
	seedDeliveryArea(s, 0)
	notifier := &fakeNotifier{sent: make(chan string, 1)}
	uc := buildUseCase(s, notifier)

	out, err := uc.CreateDeliveryOrder(context.Background(), s.restaurants["r1"], deliveryRequest("01310-100"))
	require.NoError(t, err)

	assert.Nil(t, out.TableID)
	assert.True(t, out.Total.Equal(decimal.NewFromFloat(40.00)), "a taxa não entra no total")
	assert.True(t, out.DeliveryFee.Equal(decimal.NewFromFloat(8.00)))
	assert.Contains(t, out.Address, "Av. Paulista, 120")
	assert.Contains(t, out.Address, "CEP 01310100")
	assert.Equal(t, 1, s.restaurants["r1"].CurrentMonthOrders)

	select {
	case orderID := <-notifier.sent:
		assert.Equal(t, out.ID, orderID)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmação não disparada")
	}
}

func TestCreateDeliveryOrder_CEPForaDeCoberturaFalha(t *testing.T) {
	s := seedStore()
	seedDeliveryArea(s, 0)
	uc := buildUseCase(s, nil)

	_, err := uc.CreateDeliveryOrder(context.Background(), s.restaurants["r1"], deliveryRequest("99999-000"))
	assert.ErrorIs(t, err, domain.ErrDeliveryUnavailable)
	assert.Empty(t, s.orders, "pedido fora de cobertura não é criado")
	assert.Equal(t, 0, s.restaurants["r1"].CurrentMonthOrders)
}

func TestCreateDeliveryOrder_CEPInvalidoFalha(t *testing.T) {
	s := seedStore()
	seedDeliveryArea(s, 0)
	uc := buildUseCase(s, nil)

	_, err := uc.CreateDeliveryOrder(context.Background(), s.restaurants["r1"], deliveryRequest("abc"))
	assert.ErrorIs(t, err, domain.ErrDeliveryUnavailable)
}

func TestCreateDeliveryOrder_PedidoMinimoDaArea(t *testing.T) {
	s := seedStore()
	seedDeliveryArea(s, 50.00) // total do pedido de teste é 40.00
	uc := buildUseCase(s, nil)

	_, err := uc.CreateDeliveryOrder(context.Background(), s.restaurants["r1"], deliveryRequest("01310-100"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.orders)
}
