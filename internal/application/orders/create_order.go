// Package orders implementa o motor de pedidos: montagem das linhas com
// snapshot de preços, acúmulo no total da mesa e enforcement da cota mensal,
// tudo em uma única transação.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/delivery"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/plan"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
	"github.com/jhoicas/comanda-api/pkg/logger"
)

const notifyTimeout = 15 * time.Second

// CreateOrderUseCase cria pedidos de mesa (equipe ou autoatendimento) e de
// entrega. O catálogo é lido fora da transação (somente leitura); tudo que
// muda estado roda dentro do TxRunner.
type CreateOrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	addonRepo   repository.AddonRepository
	tableRepo   repository.TableRepository
	areaRepo    repository.DeliveryAreaRepository
	orderRepo   repository.OrderRepository
	notifier    Notifier
	addresses   AddressLookup
	log         *logger.Logger
}

// NewCreateOrderUseCase constrói o caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	addonRepo repository.AddonRepository,
	tableRepo repository.TableRepository,
	areaRepo repository.DeliveryAreaRepository,
	orderRepo repository.OrderRepository,
	notifier Notifier,
	addresses AddressLookup,
	log *logger.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		addonRepo:   addonRepo,
		tableRepo:   tableRepo,
		areaRepo:    areaRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
		addresses:   addresses,
		log:         log,
	}
}

// CreateTableOrder cria um pedido vinculado a uma mesa (fluxo da equipe).
func (uc *CreateOrderUseCase) CreateTableOrder(ctx context.Context, restaurantID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.TableID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items, total, err := uc.buildItems(restaurantID, in.Items)
	if err != nil {
		return nil, err
	}
	return uc.persistTableOrder(ctx, restaurantID, in.TableID, "", items, total, false)
}

// CreateSelfServiceOrder cria um pedido de mesa iniciado pelo próprio cliente
// (QR code); a mesa é identificada pelo número.
func (uc *CreateOrderUseCase) CreateSelfServiceOrder(ctx context.Context, restaurantID string, in dto.CreateSelfServiceOrderRequest) (*dto.OrderResponse, error) {
	if in.TableNumber <= 0 || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	table, err := uc.tableRepo.GetByNumber(restaurantID, in.TableNumber)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrNotFound
	}
	items, total, err := uc.buildItems(restaurantID, in.Items)
	if err != nil {
		return nil, err
	}
	return uc.persistTableOrder(ctx, restaurantID, table.ID, in.CustomerName, items, total, true)
}

// CreateDeliveryOrder cria um pedido de entrega iniciado pelo cliente. Antes
// de aceitar, resolve a taxa de entrega: CEP inválido ou fora de cobertura
// falham com ErrDeliveryUnavailable (o pedido não é criado).
func (uc *CreateOrderUseCase) CreateDeliveryOrder(ctx context.Context, restaurant *entity.Restaurant, in dto.CreateDeliveryOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 || in.CustomerName == "" || in.CustomerPhone == "" {
		return nil, domain.ErrInvalidInput
	}
	items, total, err := uc.buildItems(restaurant.ID, in.Items)
	if err != nil {
		return nil, err
	}

	areas, err := uc.areaRepo.ListByRestaurant(restaurant.ID)
	if err != nil {
		return nil, err
	}
	quote, res := delivery.ResolveFee(areas, in.CEP)
	if res != delivery.ResolutionOK {
		return nil, domain.ErrDeliveryUnavailable
	}
	if quote.Fee.IsNegative() {
		return nil, domain.ErrDeliveryUnavailable
	}
	if total.LessThan(quote.Area.MinOrder) {
		return nil, fmt.Errorf("%w: pedido mínimo de %s para esta área", domain.ErrInvalidInput, quote.Area.MinOrder.StringFixed(2))
	}

	cep := delivery.NormalizeCEP(in.CEP)
	address := uc.resolveAddress(ctx, cep, in.AddressNumber, in.Complement)

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		RestaurantID:  restaurant.ID,
		SelfService:   true,
		Total:         total,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		DeliveryCEP:   cep,
		Address:       address,
		DeliveryFee:   quote.Fee,
		CreatedAt:     now,
	}
	attachItems(order, items)

	err = uc.txRunner.RunOrder(ctx, func(
		restaurantRepo repository.RestaurantRepository,
		_ repository.TableRepository,
		orderRepo repository.OrderRepository,
	) error {
		locked, err := restaurantRepo.GetByIDForUpdate(restaurant.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if err := plan.CheckOrderQuota(locked); err != nil {
			return err
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := orderRepo.CreateItem(&order.Items[i]); err != nil {
				return err
			}
		}
		return restaurantRepo.IncrementMonthOrders(restaurant.ID, 1)
	})
	if err != nil {
		return nil, err
	}

	uc.notifyAsync(restaurant, order)
	return dto.NewOrderResponse(order), nil
}

// GetByID devolve um pedido do restaurante, com itens.
func (uc *CreateOrderUseCase) GetByID(restaurantID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}
	return dto.NewOrderResponse(order), nil
}

// List lista os pedidos do restaurante, mais recentes primeiro.
func (uc *CreateOrderUseCase) List(restaurantID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByRestaurant(restaurantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *dto.NewOrderResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Limit: page.Limit, Offset: page.Offset}, nil
}

// persistTableOrder roda o pipeline transacional comum aos pedidos de mesa:
// cota -> pedido+itens -> total da mesa -> abertura implícita -> contador.
func (uc *CreateOrderUseCase) persistTableOrder(
	ctx context.Context,
	restaurantID, tableID, customerName string,
	items []entity.OrderItem,
	total decimal.Decimal,
	selfService bool,
) (*dto.OrderResponse, error) {
	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		TableID:      &tableID,
		Total:        total,
		SelfService:  selfService,
		CreatedAt:    now,
	}
	attachItems(order, items)

	err := uc.txRunner.RunOrder(ctx, func(
		restaurantRepo repository.RestaurantRepository,
		tableRepo repository.TableRepository,
		orderRepo repository.OrderRepository,
	) error {
		restaurant, err := restaurantRepo.GetByIDForUpdate(restaurantID)
		if err != nil {
			return err
		}
		if restaurant == nil {
			return domain.ErrNotFound
		}
		if err := plan.CheckOrderQuota(restaurant); err != nil {
			return err
		}
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
		if table.Status == entity.TableStatusPaid {
			// mesa fechada não recebe pedidos; o reset libera para nova rodada
			return domain.ErrInvalidState
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for i := range order.Items {
			if err := orderRepo.CreateItem(&order.Items[i]); err != nil {
				return err
			}
		}
		table.Total = table.Total.Add(total)
		if table.Status == entity.TableStatusFree {
			// abertura implícita: primeiro pedido ocupa a mesa
			table.Status = entity.TableStatusOccupied
			openedAt := now
			table.OpenedAt = &openedAt
		}
		if customerName != "" && table.CustomerName == "" {
			table.CustomerName = customerName
		}
		table.UpdatedAt = now
		if err := tableRepo.Update(table); err != nil {
			return err
		}
		return restaurantRepo.IncrementMonthOrders(restaurantID, 1)
	})
	if err != nil {
		return nil, err
	}
	return dto.NewOrderResponse(order), nil
}

// buildItems resolve produtos e adicionais e congela os preços vigentes.
// Subtotal da linha = (preço unitário + soma dos adicionais) * quantidade.
func (uc *CreateOrderUseCase) buildItems(restaurantID string, reqs []dto.OrderItemRequest) ([]entity.OrderItem, decimal.Decimal, error) {
	items := make([]entity.OrderItem, 0, len(reqs))
	total := decimal.Zero
	for _, req := range reqs {
		if req.Quantity < 1 {
			return nil, decimal.Zero, fmt.Errorf("%w: quantidade deve ser >= 1", domain.ErrInvalidInput)
		}
		product, err := uc.productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if product == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		if product.RestaurantID != restaurantID {
			return nil, decimal.Zero, domain.ErrForbidden
		}
		if !product.Active {
			return nil, decimal.Zero, fmt.Errorf("%w: produto indisponível", domain.ErrInvalidInput)
		}

		unit := product.Price
		addons := make([]entity.ItemAddon, 0, len(req.AddonIDs))
		for _, addonID := range req.AddonIDs {
			addon, err := uc.addonRepo.GetByID(addonID)
			if err != nil {
				return nil, decimal.Zero, err
			}
			if addon == nil {
				return nil, decimal.Zero, domain.ErrNotFound
			}
			if addon.RestaurantID != restaurantID {
				return nil, decimal.Zero, domain.ErrForbidden
			}
			if !addon.Active {
				return nil, decimal.Zero, fmt.Errorf("%w: adicional indisponível", domain.ErrInvalidInput)
			}
			addons = append(addons, entity.ItemAddon{
				AddonID: addon.ID,
				Name:    addon.Name,
				Price:   addon.Price,
			})
			unit = unit.Add(addon.Price)
		}

		qty := decimal.NewFromInt(int64(req.Quantity))
		subtotal := unit.Mul(qty)
		items = append(items, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.Price,
			Note:        req.Note,
			Subtotal:    subtotal,
			Addons:      addons,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

// attachItems gera IDs e amarra itens e adicionais ao pedido.
func attachItems(order *entity.Order, items []entity.OrderItem) {
	order.Items = items
	for i := range order.Items {
		item := &order.Items[i]
		item.ID = uuid.New().String()
		item.OrderID = order.ID
		for j := range item.Addons {
			item.Addons[j].ID = uuid.New().String()
			item.Addons[j].OrderItemID = item.ID
		}
	}
}

// resolveAddress monta o endereço de entrega. A consulta ViaCEP tem timeout
// próprio; falha vira endereço degradado (só CEP + número), nunca erro.
func (uc *CreateOrderUseCase) resolveAddress(ctx context.Context, cep, number, complement string) string {
	parts := []string{}
	if uc.addresses != nil {
		if addr, err := uc.addresses.Lookup(ctx, cep); err == nil && addr != nil {
			if addr.Street != "" {
				street := addr.Street
				if number != "" {
					street += ", " + number
				}
				parts = append(parts, street)
			}
			if addr.District != "" {
				parts = append(parts, addr.District)
			}
			if addr.City != "" {
				city := addr.City
				if addr.UF != "" {
					city += "/" + addr.UF
				}
				parts = append(parts, city)
			}
		} else if err != nil {
			uc.log.Debug().Err(err).Str("cep", cep).Msg("consulta ViaCEP falhou; endereço degradado")
		}
	}
	if len(parts) == 0 && number != "" {
		parts = append(parts, "nº "+number)
	}
	if complement != "" {
		parts = append(parts, complement)
	}
	parts = append(parts, "CEP "+cep)
	return strings.Join(parts, " - ")
}

// notifyAsync dispara a confirmação em background. Falha só gera log.
func (uc *CreateOrderUseCase) notifyAsync(restaurant *entity.Restaurant, order *entity.Order) {
	if uc.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := uc.notifier.NotifyOrderReceived(ctx, restaurant, order); err != nil {
			uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("falha ao notificar pedido")
		}
	}()
}
