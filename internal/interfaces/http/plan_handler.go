package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/application/plans"
)

// PlanHandler trata plano e cota do restaurante (protegido; mutações só dono).
type PlanHandler struct {
	uc *plans.UseCase
}

// NewPlanHandler constrói o handler.
func NewPlanHandler(uc *plans.UseCase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// GetPlan devolve o estado do plano.
// GET /api/plan
func (h *PlanHandler) GetPlan(c *fiber.Ctx) error {
	out, err := h.uc.GetPlan(GetRestaurantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckQuota devolve a situação da cota mensal.
// GET /api/plan/quota
func (h *PlanHandler) CheckQuota(c *fiber.Ctx) error {
	out, err := h.uc.CheckQuota(GetRestaurantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upgrade move o restaurante para um tier superior.
// POST /api/plan/upgrade
func (h *PlanHandler) Upgrade(c *fiber.Ctx) error {
	var in dto.UpgradePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Upgrade(c.Context(), GetRestaurantID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BuyExtraPackage abate o pacote extra do contador mensal.
// POST /api/plan/extra-package
func (h *PlanHandler) BuyExtraPackage(c *fiber.Ctx) error {
	out, err := h.uc.BuyExtraPackage(GetRestaurantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
