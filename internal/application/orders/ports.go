package orders

import (
	"context"

	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação com repositórios atados à tx.
// A criação de pedido roda inteira aqui: checagem de cota, insert do pedido e
// itens, atualização do total da mesa e incremento do contador mensal são
// tudo-ou-nada.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		restaurantRepo repository.RestaurantRepository,
		tableRepo repository.TableRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// Notifier envia a confirmação de pedido ao cliente (WhatsApp). Fire-and-forget:
// falhas são logadas pelo chamador e nunca propagadas ao fluxo do pedido.
type Notifier interface {
	NotifyOrderReceived(ctx context.Context, restaurant *entity.Restaurant, order *entity.Order) error
}

// Address endereço resolvido a partir do CEP.
type Address struct {
	Street   string
	District string
	City     string
	UF       string
}

// AddressLookup consulta endereço por CEP (ViaCEP). As implementações aplicam
// timeout próprio; erro aqui nunca bloqueia o pedido, apenas degrada o endereço.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}
