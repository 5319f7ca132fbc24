package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/application/orders"
)

// OrderHandler trata pedidos criados pela equipe (protegido).
type OrderHandler struct {
	uc *orders.CreateOrderUseCase
}

// NewOrderHandler constrói o handler.
func NewOrderHandler(uc *orders.CreateOrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create cria um pedido vinculado a uma mesa.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTableOrder(c.Context(), GetRestaurantID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID devolve um pedido com itens.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista os pedidos do restaurante, mais recentes primeiro.
// GET /api/orders?limit=&offset=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}
	out, err := h.uc.List(GetRestaurantID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
