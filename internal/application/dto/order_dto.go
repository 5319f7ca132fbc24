package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comanda-api/internal/domain/entity"
)

// OrderItemRequest uma linha do pedido a criar.
type OrderItemRequest struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Note      string   `json:"note"`
	AddonIDs  []string `json:"addon_ids"`
}

// CreateOrderRequest pedido de mesa criado pela equipe (garçom/dono).
type CreateOrderRequest struct {
	TableID string             `json:"table_id"`
	Items   []OrderItemRequest `json:"items"`
}

// CreateSelfServiceOrderRequest pedido de mesa feito pelo próprio cliente
// (QR code na mesa). A mesa é identificada pelo número.
type CreateSelfServiceOrderRequest struct {
	TableNumber  int                `json:"table_number"`
	CustomerName string             `json:"customer_name"`
	Items        []OrderItemRequest `json:"items"`
}

// CreateDeliveryOrderRequest pedido de entrega feito pelo cliente.
type CreateDeliveryOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	CEP           string             `json:"cep"`
	AddressNumber string             `json:"address_number"`
	Complement    string             `json:"complement"`
	Items         []OrderItemRequest `json:"items"`
}

// ItemAddonResponse snapshot de adicional em uma linha do pedido.
type ItemAddonResponse struct {
	AddonID string          `json:"addon_id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
}

// OrderItemResponse linha do pedido na resposta.
type OrderItemResponse struct {
	ProductID   string              `json:"product_id"`
	ProductName string              `json:"product_name"`
	Quantity    int                 `json:"quantity"`
	UnitPrice   decimal.Decimal     `json:"unit_price"`
	Note        string              `json:"note,omitempty"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	Addons      []ItemAddonResponse `json:"addons,omitempty"`
}

// OrderResponse pedido completo na resposta.
type OrderResponse struct {
	ID            string              `json:"id"`
	TableID       *string             `json:"table_id,omitempty"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	DeliveryFee   decimal.Decimal     `json:"delivery_fee,omitempty"`
	CustomerName  string              `json:"customer_name,omitempty"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	Address       string              `json:"address,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewOrderResponse converte a entidade (com itens) para a resposta HTTP.
func NewOrderResponse(o *entity.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		addons := make([]ItemAddonResponse, 0, len(it.Addons))
		for _, a := range it.Addons {
			addons = append(addons, ItemAddonResponse{AddonID: a.AddonID, Name: a.Name, Price: a.Price})
		}
		items = append(items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Note:        it.Note,
			Subtotal:    it.Subtotal,
			Addons:      addons,
		})
	}
	return &OrderResponse{
		ID:            o.ID,
		TableID:       o.TableID,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total,
		DeliveryFee:   o.DeliveryFee,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Address:       o.Address,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}

// OrderListResponse listagem paginada de pedidos.
type OrderListResponse struct {
	Items  []OrderResponse `json:"items"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}
