package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados do ciclo de ocupação/pagamento de uma mesa.
const (
	TableStatusFree     = "FREE"
	TableStatusOccupied = "OCCUPIED"
	TableStatusPaid     = "PAID"
)

// Table representa uma mesa física do salão.
//
// Invariante: Total é sempre a soma dos totais dos pedidos atualmente
// vinculados à mesa. A mesa não guarda ponteiros para os pedidos; o vínculo
// vive em orders.table_id (modelo normalizado, sem back-pointers).
type Table struct {
	ID           string
	RestaurantID string
	Number       int    // único por restaurante
	Status       string // FREE | OCCUPIED | PAID
	CustomerName string
	Total        decimal.Decimal // acumulado dos pedidos vinculados, nunca negativo
	OpenedAt     *time.Time      // preenchido na transição FREE -> OCCUPIED
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
