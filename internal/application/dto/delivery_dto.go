package dto

import "github.com/shopspring/decimal"

// CreateDeliveryAreaRequest cadastro de área de entrega. Os CEPs podem vir
// formatados; são normalizados (só dígitos) antes de persistir.
type CreateDeliveryAreaRequest struct {
	Name     string          `json:"name"`
	CEPStart string          `json:"cep_start"`
	CEPEnd   string          `json:"cep_end"`
	Fee      decimal.Decimal `json:"fee"`
	MinOrder decimal.Decimal `json:"min_order"`
}

// DeliveryAreaResponse área de entrega na resposta.
type DeliveryAreaResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	CEPStart string          `json:"cep_start"`
	CEPEnd   string          `json:"cep_end"`
	Fee      decimal.Decimal `json:"fee"`
	MinOrder decimal.Decimal `json:"min_order"`
}

// FeeQuoteResponse resultado da consulta pública de taxa de entrega.
// Covered=false com Reason preenchido nunca vira erro HTTP 5xx: o cliente
// ramifica sobre o corpo.
type FeeQuoteResponse struct {
	Covered  bool            `json:"covered"`
	Reason   string          `json:"reason,omitempty"` // "invalid_cep" | "no_coverage"
	AreaName string          `json:"area_name,omitempty"`
	Fee      decimal.Decimal `json:"fee,omitempty"`
	MinOrder decimal.Decimal `json:"min_order,omitempty"`
}
