package repository

import "github.com/jhoicas/comanda-api/internal/domain/entity"

// OrderRepository define o porto de persistência para Order e itens.
// Pedidos nunca são apagados (são a trilha de auditoria dos relatórios);
// o reset da mesa apenas limpa o vínculo table_id.
type OrderRepository interface {
	Create(o *entity.Order) error
	// CreateItem persiste o item e os snapshots de adicionais que ele carrega.
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	// ListByTable devolve os pedidos atualmente vinculados à mesa, com itens.
	ListByTable(tableID string) ([]*entity.Order, error)
	ListByRestaurant(restaurantID string, limit, offset int) ([]*entity.Order, error)
	// SetPaymentMethodByTable grava o método em todos os pedidos vinculados à
	// mesa em um único UPDATE (o Pay aplica um único método por passagem).
	SetPaymentMethodByTable(tableID, method string) error
	// DetachFromTable limpa table_id dos pedidos da mesa (reset). Não apaga.
	DetachFromTable(tableID string) error
}
