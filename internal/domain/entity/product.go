package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um item do cardápio.
type Product struct {
	ID           string
	RestaurantID string
	CategoryID   string
	Name         string
	Description  string
	Price        decimal.Decimal
	Active       bool // inativo não aparece no cardápio nem aceita pedidos
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category agrupa produtos no cardápio (ex.: "Lanches", "Bebidas").
type Category struct {
	ID           string
	RestaurantID string
	Name         string
	SortOrder    int
	CreatedAt    time.Time
}

// Addon representa um adicional opcional (ex.: "Bacon extra").
// O preço aqui é o vigente; pedidos guardam o snapshot em ItemAddon.
type Addon struct {
	ID           string
	RestaurantID string
	Name         string
	Price        decimal.Decimal
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
