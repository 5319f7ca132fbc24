package dto

import "time"

// QuotaStatusResponse situação da cota mensal de pedidos.
type QuotaStatusResponse struct {
	Current   int  `json:"current"`
	Limit     int  `json:"limit"`
	Unlimited bool `json:"unlimited"`
	Allowed   bool `json:"allowed"`
}

// UpgradePlanRequest upgrade de plano.
type UpgradePlanRequest struct {
	Tier   string `json:"tier"`
	Months int    `json:"months"` // duração contratada; padrão 1
}

// PlanResponse estado do plano do restaurante.
type PlanResponse struct {
	Tier               string     `json:"tier"`
	DeliveryPro        bool       `json:"delivery_pro"`
	SalaoPro           bool       `json:"salao_pro"`
	CurrentMonthOrders int        `json:"current_month_orders"`
	UserLimit          int        `json:"user_limit"`
	TableLimit         int        `json:"table_limit"`
	PlanExpiresAt      *time.Time `json:"plan_expires_at,omitempty"`
}
