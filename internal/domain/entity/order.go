package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pagamento aceitos (aplicados a todos os pedidos da mesa no Pay).
const (
	PaymentPix     = "PIX"
	PaymentCard    = "CARTAO"
	PaymentCash    = "DINHEIRO"
	PaymentVoucher = "VALE"
)

// Order representa um pedido, vinculado a uma mesa ou de entrega.
//
// Invariantes:
//   - Total é sempre recomputado da soma dos subtotais dos itens, nunca
//     atribuído de forma independente.
//   - Os campos de entrega só são preenchidos quando TableID é nil.
//   - DeliveryFee fica fora de Total (é reportada à parte).
//   - Pedidos nunca são apagados; o reset da mesa apenas limpa TableID.
type Order struct {
	ID            string
	RestaurantID  string
	TableID       *string // nil para pedidos de entrega ou mesas já resetadas
	PaymentMethod string  // vazio até o pagamento
	Total         decimal.Decimal
	SelfService   bool // criado pelo próprio cliente (mesa ou entrega)

	// Campos de entrega (apenas quando TableID == nil)
	CustomerName  string
	CustomerPhone string
	DeliveryCEP   string
	Address       string
	DeliveryFee   decimal.Decimal

	// Itens carregados junto com o pedido (propriedade exclusiva do pedido).
	Items []OrderItem

	CreatedAt time.Time
}

// IsDelivery informa se o pedido é de entrega.
func (o *Order) IsDelivery() bool {
	return o.TableID == nil && o.DeliveryCEP != ""
}

// OrderItem representa uma linha do pedido.
//
// UnitPrice é um snapshot do preço do produto no momento do pedido, nunca
// relido do catálogo vivo. O mesmo vale para os adicionais (ItemAddon).
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string // snapshot para relatórios mesmo se o catálogo mudar
	Quantity    int    // sempre >= 1
	UnitPrice   decimal.Decimal
	Note        string
	Subtotal    decimal.Decimal // (UnitPrice + soma dos adicionais) * Quantity
	Addons      []ItemAddon
}

// ItemAddon snapshot de um adicional escolhido (nome+preço congelados).
type ItemAddon struct {
	ID          string
	OrderItemID string
	AddonID     string
	Name        string
	Price       decimal.Decimal
}
