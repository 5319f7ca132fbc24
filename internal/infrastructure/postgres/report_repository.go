package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas read-only de relatórios sobre a trilha de pedidos.
type ReportRepo struct {
	q Querier
}

// NewReportRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetDailySummary consolida contagem e faturamento do período. As taxas de
// entrega ficam fora de Revenue (são somadas à parte).
func (r *ReportRepo) GetDailySummary(restaurantID string, from, to time.Time) (*repository.DailySummaryResult, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE delivery_cep IS NULL),
		       COUNT(*) FILTER (WHERE delivery_cep IS NOT NULL),
		       COALESCE(SUM(total), 0),
		       COALESCE(SUM(delivery_fee), 0)
		FROM orders
		WHERE restaurant_id = $1 AND created_at BETWEEN $2 AND $3`
	var res repository.DailySummaryResult
	err := r.q.QueryRow(context.Background(), query, restaurantID, from, to).Scan(
		&res.OrderCount, &res.TableOrders, &res.DeliveryOrders, &res.Revenue, &res.DeliveryFees,
	)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}
	return &res, nil
}

// GetTopProducts ranqueia produtos pelo snapshot dos itens, não pelo catálogo
// vivo: renomear ou apagar o produto não altera relatórios antigos.
func (r *ReportRepo) GetTopProducts(restaurantID string, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
		SELECT i.product_id, i.product_name, SUM(i.quantity), SUM(i.subtotal)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.restaurant_id = $1 AND o.created_at BETWEEN $2 AND $3
		GROUP BY i.product_id, i.product_name
		ORDER BY SUM(i.quantity) DESC, i.product_name
		LIMIT $4`
	rows, err := r.q.Query(context.Background(), query, restaurantID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	var list []repository.TopProductResult
	for rows.Next() {
		var p repository.TopProductResult
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.UnitsSold, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetPaymentBreakdown agrupa faturamento por método de pagamento. Pedidos
// ainda sem pagamento entram como "PENDENTE".
func (r *ReportRepo) GetPaymentBreakdown(restaurantID string, from, to time.Time) ([]repository.PaymentBreakdownResult, error) {
	query := `
		SELECT COALESCE(payment_method, 'PENDENTE'), COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE restaurant_id = $1 AND created_at BETWEEN $2 AND $3
		GROUP BY payment_method
		ORDER BY SUM(total) DESC`
	rows, err := r.q.Query(context.Background(), query, restaurantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("payment breakdown: %w", err)
	}
	defer rows.Close()
	var list []repository.PaymentBreakdownResult
	for rows.Next() {
		var b repository.PaymentBreakdownResult
		if err := rows.Scan(&b.Method, &b.Orders, &b.Revenue); err != nil {
			return nil, fmt.Errorf("scan payment breakdown: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
