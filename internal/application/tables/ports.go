package tables

import (
	"context"

	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// TxRunner executa fn dentro de uma transação com repositórios atados à tx.
// As transições de estado da mesa (pay/reset) rodam aqui para que o lock de
// linha da mesa serialize operações concorrentes sobre a mesma mesa.
type TxRunner interface {
	RunTable(ctx context.Context, fn func(
		tableRepo repository.TableRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
