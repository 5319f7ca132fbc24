// Package pdf renderiza o relatório diário de vendas em PDF (Maroto v2).
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante  │  Relatório de vendas + Data         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: pedidos / mesa / entrega / faturamento / taxas     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: produtos mais vendidos (qtd, nome, faturamento)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: faturamento por método de pagamento                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/application/reports"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 178, Green: 58, Blue: 44}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ptBR formata números no padrão brasileiro (1.234,56).
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReport gera o PDF do relatório e devolve seus bytes.
func (g *MarotoReportGenerator) GenerateSalesReport(
	_ context.Context,
	restaurant *entity.Restaurant,
	report *dto.SalesReportDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de vendas", true).
		WithAuthor(restaurant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(restaurant, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("PRODUTOS MAIS VENDIDOS"))
	m.AddRows(topProductsHeaderRow())
	for _, r := range topProductRows(report.TopProducts) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitleRow("FATURAMENTO POR MÉTODO DE PAGAMENTO"))
	for _, r := range paymentRows(report.PaymentBreakdown) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(restaurant *entity.Restaurant, report *dto.SalesReportDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(restaurant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RELATÓRIO DE VENDAS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Data: "+report.Summary.Date, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s dto.DailySummaryDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Align: align.Center}),
		)
	}
	return row.New(16).Add(
		cell("Pedidos", fmt.Sprintf("%d", s.OrderCount)),
		cell("Mesa / Entrega", fmt.Sprintf("%d / %d", s.TableOrders, s.DeliveryOrders)),
		cell("Faturamento", formatBRL(s.Revenue)),
		cell("Taxas de entrega", formatBRL(s.DeliveryFees)),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func topProductsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Qtd.", 2, align.Center),
		h("Produto", 7, align.Left),
		h("Faturamento", 3, align.Right),
	)
}

func topProductRows(products []dto.TopProductDTO) []core.Row {
	if len(products) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Nenhuma venda no período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", p.UnitsSold),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(7).Add(text.New(
				p.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatBRL(p.Revenue),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

func paymentRows(breakdown []dto.PaymentBreakdownDTO) []core.Row {
	if len(breakdown) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Nenhum pagamento no período.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		))}
	}
	result := make([]core.Row, 0, len(breakdown))
	for _, b := range breakdown {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(b.Method, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Left, Top: 1,
			})),
			col.New(4).Add(text.New(
				fmt.Sprintf("%d pedidos", b.Orders),
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray},
			)),
			col.New(4).Add(text.New(
				formatBRL(b.Revenue),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

// formatBRL formata um decimal como moeda brasileira ("R$ 1.234,56").
func formatBRL(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return ptBR.Sprintf("R$ %.2f", f)
}
