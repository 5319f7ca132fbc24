package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySummaryResult resultado cru da consulta de resumo diário.
// Produzido pela DB; o use case converte em DTO.
type DailySummaryResult struct {
	OrderCount    int
	TableOrders   int
	DeliveryOrders int
	Revenue       decimal.Decimal // soma dos totais dos pedidos
	DeliveryFees  decimal.Decimal // taxas de entrega do dia (fora de Revenue)
}

// TopProductResult resultado cru da consulta de produtos mais vendidos.
// Usa os snapshots de nome/preço dos itens, não o catálogo vivo.
type TopProductResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// PaymentBreakdownResult total faturado por método de pagamento.
type PaymentBreakdownResult struct {
	Method  string
	Orders  int
	Revenue decimal.Decimal
}

// ReportRepository define as consultas read-only de relatórios. As
// implementações nunca mutam o estado do ciclo de vida de mesas/pedidos.
type ReportRepository interface {
	GetDailySummary(restaurantID string, from, to time.Time) (*DailySummaryResult, error)
	GetTopProducts(restaurantID string, from, to time.Time, limit int) ([]TopProductResult, error)
	GetPaymentBreakdown(restaurantID string, from, to time.Time) ([]PaymentBreakdownResult, error)
}
