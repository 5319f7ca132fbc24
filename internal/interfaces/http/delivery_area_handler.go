package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comanda-api/internal/application/deliveryareas"
	"github.com/jhoicas/comanda-api/internal/application/dto"
)

// DeliveryAreaHandler trata o cadastro de áreas de entrega (protegido, só dono).
type DeliveryAreaHandler struct {
	uc *deliveryareas.UseCase
}

// NewDeliveryAreaHandler constrói o handler.
func NewDeliveryAreaHandler(uc *deliveryareas.UseCase) *DeliveryAreaHandler {
	return &DeliveryAreaHandler{uc: uc}
}

// Create cadastra uma área de entrega.
// POST /api/delivery-areas
func (h *DeliveryAreaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeliveryAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(GetRestaurantID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista as áreas na ordem de precedência.
// GET /api/delivery-areas
func (h *DeliveryAreaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetRestaurantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete remove uma área.
// DELETE /api/delivery-areas/:id
func (h *DeliveryAreaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetRestaurantID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
