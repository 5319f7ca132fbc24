package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, restaurant_id, table_id, payment_method, total, self_service,
       customer_name, customer_phone, delivery_cep, address, delivery_fee, created_at`

// OrderRepo implementação de OrderRepository (usável com pool ou tx).
// Pedidos nunca são apagados; o reset da mesa só limpa table_id.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste a cabeça do pedido. Os itens vão por CreateItem.
func (r *OrderRepo) Create(o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, restaurant_id, table_id, payment_method, total, self_service, customer_name, customer_phone, delivery_cep, address, delivery_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.RestaurantID, o.TableID, nullIfEmpty(o.PaymentMethod), o.Total, o.SelfService,
		nullIfEmpty(o.CustomerName), nullIfEmpty(o.CustomerPhone), nullIfEmpty(o.DeliveryCEP),
		nullIfEmpty(o.Address), o.DeliveryFee, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha do pedido e os snapshots de adicionais.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, note, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.ProductName,
		item.Quantity, item.UnitPrice, nullIfEmpty(item.Note), item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	for i := range item.Addons {
		addon := &item.Addons[i]
		if addon.ID == "" {
			addon.ID = uuid.New().String()
		}
		addon.OrderItemID = item.ID
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO order_item_addons (id, order_item_id, addon_id, name, price)
			VALUES ($1, $2, $3, $4, $5)`,
			addon.ID, addon.OrderItemID, addon.AddonID, addon.Name, addon.Price,
		)
		if err != nil {
			return fmt.Errorf("insert order item addon: %w", err)
		}
	}
	return nil
}

// GetByID obtém um pedido completo (com itens e adicionais) por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil || o == nil {
		return o, err
	}
	if err := r.loadItems([]*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByTable devolve os pedidos atualmente vinculados à mesa, com itens.
func (r *OrderRepo) ListByTable(tableID string) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE table_id = $1 ORDER BY created_at`
	list, err := r.list(query, tableID)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByRestaurant lista pedidos do restaurante, mais recentes primeiro.
func (r *OrderRepo) ListByRestaurant(restaurantID string, limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE restaurant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	list, err := r.list(query, restaurantID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetPaymentMethodByTable grava o método em todos os pedidos da mesa.
func (r *OrderRepo) SetPaymentMethodByTable(tableID, method string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET payment_method = $2 WHERE table_id = $1`, tableID, method)
	if err != nil {
		return fmt.Errorf("set payment method: %w", err)
	}
	return nil
}

// DetachFromTable limpa table_id dos pedidos da mesa. Não apaga nada.
func (r *OrderRepo) DetachFromTable(tableID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET table_id = NULL WHERE table_id = $1`, tableID)
	if err != nil {
		return fmt.Errorf("detach orders: %w", err)
	}
	return nil
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// loadItems carrega itens e adicionais de um lote de pedidos em duas consultas.
func (r *OrderRepo) loadItems(list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byOrder := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	for _, o := range list {
		byOrder[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, note, subtotal
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.OrderItem
		var note *string
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &note, &item.Subtotal); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		item.Note = derefStr(note)
		o := byOrder[item.OrderID]
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	byItem := make(map[string]*entity.OrderItem)
	for _, o := range list {
		for i := range o.Items {
			byItem[o.Items[i].ID] = &o.Items[i]
		}
	}

	addonRows, err := r.q.Query(context.Background(), `
		SELECT a.id, a.order_item_id, a.addon_id, a.name, a.price
		FROM order_item_addons a
		JOIN order_items i ON i.id = a.order_item_id
		WHERE i.order_id = ANY($1) ORDER BY a.id`, ids)
	if err != nil {
		return fmt.Errorf("list item addons: %w", err)
	}
	defer addonRows.Close()
	for addonRows.Next() {
		var addon entity.ItemAddon
		if err := addonRows.Scan(&addon.ID, &addon.OrderItemID, &addon.AddonID, &addon.Name, &addon.Price); err != nil {
			return fmt.Errorf("scan item addon: %w", err)
		}
		if item, ok := byItem[addon.OrderItemID]; ok {
			item.Addons = append(item.Addons, addon)
		}
	}
	return addonRows.Err()
}

func (r *OrderRepo) scanOne(row pgx.Row) (*entity.Order, error) {
	o, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) scanRow(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var paymentMethod, customerName, customerPhone, deliveryCEP, address *string
	err := row.Scan(
		&o.ID, &o.RestaurantID, &o.TableID, &paymentMethod, &o.Total, &o.SelfService,
		&customerName, &customerPhone, &deliveryCEP, &address, &o.DeliveryFee, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.PaymentMethod = derefStr(paymentMethod)
	o.CustomerName = derefStr(customerName)
	o.CustomerPhone = derefStr(customerPhone)
	o.DeliveryCEP = derefStr(deliveryCEP)
	o.Address = derefStr(address)
	return &o, nil
}
