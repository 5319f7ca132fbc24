package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comanda-api/internal/application/catalog"
	"github.com/jhoicas/comanda-api/internal/application/deliveryareas"
	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/application/orders"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// PublicHandler trata as rotas de autoatendimento, acessadas pelo cliente
// final sem token; o restaurante é identificado pelo slug na URL.
type PublicHandler struct {
	restaurantRepo repository.RestaurantRepository
	orderUC        *orders.CreateOrderUseCase
	areaUC         *deliveryareas.UseCase
	catalogUC      *catalog.UseCase
}

// NewPublicHandler constrói o handler.
func NewPublicHandler(
	restaurantRepo repository.RestaurantRepository,
	orderUC *orders.CreateOrderUseCase,
	areaUC *deliveryareas.UseCase,
	catalogUC *catalog.UseCase,
) *PublicHandler {
	return &PublicHandler{
		restaurantRepo: restaurantRepo,
		orderUC:        orderUC,
		areaUC:         areaUC,
		catalogUC:      catalogUC,
	}
}

// menuResponse cardápio público (categorias, produtos ativos e adicionais).
type menuResponse struct {
	RestaurantName string                `json:"restaurant_name"`
	Categories     []dto.CategoryResponse `json:"categories"`
	Products       []dto.ProductResponse  `json:"products"`
	Addons         []dto.AddonResponse    `json:"addons"`
}

// Menu devolve o cardápio público do restaurante.
// GET /public/:slug/menu
func (h *PublicHandler) Menu(c *fiber.Ctx) error {
	restaurant, err := h.bySlug(c)
	if err != nil {
		return respondError(c, err)
	}
	categories, err := h.catalogUC.ListCategories(restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	products, err := h.catalogUC.ListProducts(restaurant.ID, dto.PageRequest{Limit: 100})
	if err != nil {
		return respondError(c, err)
	}
	addons, err := h.catalogUC.ListAddons(restaurant.ID)
	if err != nil {
		return respondError(c, err)
	}
	out := menuResponse{
		RestaurantName: restaurant.Name,
		Categories:     categories,
		Addons:         onlyActiveAddons(addons),
	}
	for _, p := range products.Items {
		if p.Active {
			out.Products = append(out.Products, p)
		}
	}
	return c.JSON(out)
}

// QuoteDeliveryFee consulta a taxa de entrega para um CEP. Sem cobertura e CEP
// inválido são respostas 200 com covered=false.
// GET /public/:slug/delivery-fee?cep=
func (h *PublicHandler) QuoteDeliveryFee(c *fiber.Ctx) error {
	restaurant, err := h.bySlug(c)
	if err != nil {
		return respondError(c, err)
	}
	if !restaurant.DeliveryPro {
		return respondError(c, domain.ErrDeliveryUnavailable)
	}
	out, err := h.areaUC.QuoteFee(restaurant.ID, c.Query("cep"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateTableOrder cria um pedido de mesa feito pelo próprio cliente (QR code).
// Exige a capacidade de salão do plano.
// POST /public/:slug/orders/table
func (h *PublicHandler) CreateTableOrder(c *fiber.Ctx) error {
	restaurant, err := h.bySlug(c)
	if err != nil {
		return respondError(c, err)
	}
	if !restaurant.SalaoPro {
		return respondError(c, domain.ErrForbidden)
	}
	var in dto.CreateSelfServiceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orderUC.CreateSelfServiceOrder(c.Context(), restaurant.ID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateDeliveryOrder cria um pedido de entrega feito pelo cliente.
// Exige a capacidade de entrega do plano.
// POST /public/:slug/orders/delivery
func (h *PublicHandler) CreateDeliveryOrder(c *fiber.Ctx) error {
	restaurant, err := h.bySlug(c)
	if err != nil {
		return respondError(c, err)
	}
	if !restaurant.DeliveryPro {
		return respondError(c, domain.ErrDeliveryUnavailable)
	}
	var in dto.CreateDeliveryOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orderUC.CreateDeliveryOrder(c.Context(), restaurant, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *PublicHandler) bySlug(c *fiber.Ctx) (*entity.Restaurant, error) {
	slug := c.Params("slug")
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	restaurant, err := h.restaurantRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, domain.ErrNotFound
	}
	return restaurant, nil
}

func onlyActiveAddons(addons []dto.AddonResponse) []dto.AddonResponse {
	out := make([]dto.AddonResponse, 0, len(addons))
	for _, a := range addons {
		if a.Active {
			out = append(out, a)
		}
	}
	return out
}
