// Package reports projeta vendas a partir dos pedidos persistidos.
// Somente leitura: nunca muta o ciclo de vida de mesas/pedidos.
package reports

import (
	"context"
	"time"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

const topProductsLimit = 5

// UseCase casos de uso de relatórios.
type UseCase struct {
	reportRepo     repository.ReportRepository
	restaurantRepo repository.RestaurantRepository
	pdf            PDFGenerator
}

// NewUseCase constrói o caso de uso.
func NewUseCase(reportRepo repository.ReportRepository, restaurantRepo repository.RestaurantRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{reportRepo: reportRepo, restaurantRepo: restaurantRepo, pdf: pdf}
}

// GetDailyReport consolida o dia: resumo, produtos mais vendidos e
// faturamento por método de pagamento. date no formato YYYY-MM-DD (vazio = hoje).
func (uc *UseCase) GetDailyReport(restaurantID, date string) (*dto.SalesReportDTO, error) {
	day, err := parseDay(date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24*time.Hour - time.Nanosecond)

	summary, err := uc.reportRepo.GetDailySummary(restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	top, err := uc.reportRepo.GetTopProducts(restaurantID, from, to, topProductsLimit)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.reportRepo.GetPaymentBreakdown(restaurantID, from, to)
	if err != nil {
		return nil, err
	}

	report := &dto.SalesReportDTO{
		Summary: dto.DailySummaryDTO{
			Date:           from.Format("2006-01-02"),
			OrderCount:     summary.OrderCount,
			TableOrders:    summary.TableOrders,
			DeliveryOrders: summary.DeliveryOrders,
			Revenue:        summary.Revenue,
			DeliveryFees:   summary.DeliveryFees,
		},
	}
	for _, p := range top {
		report.TopProducts = append(report.TopProducts, dto.TopProductDTO{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			UnitsSold:   p.UnitsSold,
			Revenue:     p.Revenue,
		})
	}
	for _, b := range breakdown {
		report.PaymentBreakdown = append(report.PaymentBreakdown, dto.PaymentBreakdownDTO{
			Method:  b.Method,
			Orders:  b.Orders,
			Revenue: b.Revenue,
		})
	}
	return report, nil
}

// GetDailyReportPDF gera a versão PDF do relatório do dia.
func (uc *UseCase) GetDailyReportPDF(ctx context.Context, restaurantID, date string) ([]byte, error) {
	restaurant, err := uc.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, domain.ErrNotFound
	}
	report, err := uc.GetDailyReport(restaurantID, date)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSalesReport(ctx, restaurant, report)
}

func parseDay(date string) (time.Time, error) {
	if date == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", date, time.Local)
}
