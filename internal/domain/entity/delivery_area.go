package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryArea representa uma faixa de CEP atendida pelo restaurante, com
// taxa fixa de entrega e valor mínimo de pedido.
//
// CEPStart e CEPEnd são armazenados normalizados (apenas dígitos, 8 posições).
// Como os CEPs têm largura fixa, a comparação lexicográfica de strings coincide
// com a ordem numérica e evita parsing/overflow.
type DeliveryArea struct {
	ID           string
	RestaurantID string
	Name         string
	CEPStart     string
	CEPEnd       string
	Fee          decimal.Decimal
	MinOrder     decimal.Decimal
	CreatedAt    time.Time
}
