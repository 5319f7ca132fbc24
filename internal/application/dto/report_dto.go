package dto

import "github.com/shopspring/decimal"

// DailySummaryDTO resumo de vendas de um dia.
type DailySummaryDTO struct {
	Date           string          `json:"date"` // YYYY-MM-DD
	OrderCount     int             `json:"order_count"`
	TableOrders    int             `json:"table_orders"`
	DeliveryOrders int             `json:"delivery_orders"`
	Revenue        decimal.Decimal `json:"revenue"`
	DeliveryFees   decimal.Decimal `json:"delivery_fees"`
}

// TopProductDTO produto mais vendido no período.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int             `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// PaymentBreakdownDTO faturamento por método de pagamento.
type PaymentBreakdownDTO struct {
	Method  string          `json:"method"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesReportDTO relatório consolidado (resumo + tops + métodos).
type SalesReportDTO struct {
	Summary          DailySummaryDTO       `json:"summary"`
	TopProducts      []TopProductDTO       `json:"top_products"`
	PaymentBreakdown []PaymentBreakdownDTO `json:"payment_breakdown"`
}
