package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comanda-api/internal/application/reports"
)

// ReportHandler trata relatórios de vendas (protegido, só dono).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Daily devolve o relatório do dia em JSON.
// GET /api/reports/daily?date=YYYY-MM-DD
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	out, err := h.uc.GetDailyReport(GetRestaurantID(c), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailyPDF devolve o relatório do dia em PDF.
// GET /api/reports/daily/pdf?date=YYYY-MM-DD
func (h *ReportHandler) DailyPDF(c *fiber.Ctx) error {
	out, err := h.uc.GetDailyReportPDF(c.Context(), GetRestaurantID(c), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	date := c.Query("date", "hoje")
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="relatorio-%s.pdf"`, date))
	return c.Send(out)
}
