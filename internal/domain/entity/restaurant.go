package entity

import "time"

// Restaurant representa um estabelecimento/tenant do sistema.
// Os contadores de uso e os flags de capacidade são mutados apenas pelo
// guardião de planos (application/plans); Order/Table nunca os escrevem.
type Restaurant struct {
	ID   string
	Name string
	Slug string // identificador público usado nas rotas de autoatendimento

	PlanTier    string // ver constantes em domain/plan
	DeliveryPro bool   // capacidade paga: pedidos de entrega
	SalaoPro    bool   // capacidade paga: salão (mesas ilimitadas, autoatendimento)
	Legacy      bool   // conta antiga isenta de cota
	BetaTester  bool   // isenção de cota durante o beta

	CurrentMonthOrders int        // pedidos criados no mês corrente (nunca decrementa sozinho)
	UserLimit          int        // teto de usuários (assentos)
	TableLimit         int        // teto de mesas
	PlanExpiresAt      *time.Time // nil = plano sem vencimento (FREE ou cortesia)

	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPaidCapability informa se o restaurante carrega alguma capacidade paga.
// É o critério de elegibilidade da varredura de downgrade.
func (r *Restaurant) HasPaidCapability() bool {
	return r.DeliveryPro || r.SalaoPro
}

// QuotaExempt informa se o restaurante está isento da cota mensal de pedidos.
func (r *Restaurant) QuotaExempt() bool {
	return r.Legacy || r.BetaTester
}
