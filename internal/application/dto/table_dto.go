package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTableRequest criação de mesa (ação administrativa).
type CreateTableRequest struct {
	Number int `json:"number"`
}

// RenumberTableRequest troca do número da mesa.
type RenumberTableRequest struct {
	Number int `json:"number"`
}

// RenameTableCustomerRequest atualização do nome do cliente da mesa.
type RenameTableCustomerRequest struct {
	CustomerName string `json:"customer_name"`
}

// PayTableRequest fechamento da mesa: um único método para todos os pedidos.
type PayTableRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// TableResponse mesa na resposta.
type TableResponse struct {
	ID           string          `json:"id"`
	Number       int             `json:"number"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name,omitempty"`
	Total        decimal.Decimal `json:"total"`
	OpenedAt     *time.Time      `json:"opened_at,omitempty"`
}
