package plans

import (
	"context"

	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação com o repositório atado à tx.
// Upgrade e varredura de downgrade mutam a linha do restaurante sob o mesmo
// lock (FOR UPDATE) que a criação de pedido toma antes de incrementar o
// contador mensal, serializando as duas escritas.
type TxRunner interface {
	RunRestaurant(ctx context.Context, fn func(restaurantRepo repository.RestaurantRepository) error) error
}
