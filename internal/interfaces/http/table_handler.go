package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/application/tables"
)

// TableHandler trata o ciclo de vida das mesas (protegido).
type TableHandler struct {
	uc *tables.UseCase
}

// NewTableHandler constrói o handler.
func NewTableHandler(uc *tables.UseCase) *TableHandler {
	return &TableHandler{uc: uc}
}

// Create cria uma mesa no estado FREE.
// POST /api/tables
func (h *TableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetRestaurantID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista as mesas do restaurante.
// GET /api/tables
func (h *TableHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetRestaurantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Renumber troca o número da mesa.
// PUT /api/tables/:id/number
func (h *TableHandler) Renumber(c *fiber.Ctx) error {
	var in dto.RenumberTableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Renumber(c.Context(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RenameCustomer atualiza o nome do cliente da mesa.
// PUT /api/tables/:id/customer
func (h *TableHandler) RenameCustomer(c *fiber.Ctx) error {
	var in dto.RenameTableCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RenameCustomer(c.Context(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pay fecha a mesa: aplica o método de pagamento e transiciona para PAID.
// POST /api/tables/:id/pay
func (h *TableHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayTableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Pay(c.Context(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reset libera a mesa e desvincula os pedidos.
// POST /api/tables/:id/reset
func (h *TableHandler) Reset(c *fiber.Ctx) error {
	out, err := h.uc.Reset(c.Context(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListOrders lista os pedidos vinculados à mesa.
// GET /api/tables/:id/orders
func (h *TableHandler) ListOrders(c *fiber.Ctx) error {
	out, err := h.uc.ListOrders(GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
