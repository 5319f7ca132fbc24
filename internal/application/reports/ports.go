package reports

import (
	"context"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
)

// PDFGenerator renderiza o relatório diário em PDF. A implementação (Maroto)
// vive em infrastructure/pdf.
type PDFGenerator interface {
	GenerateSalesReport(ctx context.Context, restaurant *entity.Restaurant, report *dto.SalesReportDTO) ([]byte, error)
}
