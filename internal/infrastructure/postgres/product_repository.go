package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.AddonRepository = (*AddonRepo)(nil)

// ProductRepo implementação de ProductRepository (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste um produto do cardápio.
func (r *ProductRepo) Create(p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, restaurant_id, category_id, name, description, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.RestaurantID, nullIfEmpty(p.CategoryID), p.Name, nullIfEmpty(p.Description),
		p.Price, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID. Devolve nil sem erro quando não existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, restaurant_id, category_id, name, description, price, active, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	var categoryID, description *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.RestaurantID, &categoryID, &p.Name, &description,
		&p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.CategoryID = derefStr(categoryID)
	p.Description = derefStr(description)
	return &p, nil
}

// Update grava os campos mutáveis do produto.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, description = $4, price = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nullIfEmpty(p.CategoryID), p.Name, nullIfEmpty(p.Description),
		p.Price, p.Active, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// ListByRestaurant lista produtos do restaurante com paginação.
func (r *ProductRepo) ListByRestaurant(restaurantID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, restaurant_id, category_id, name, description, price, active, created_at, updated_at
		FROM products WHERE restaurant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, restaurantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var categoryID, description *string
		if err := rows.Scan(&p.ID, &p.RestaurantID, &categoryID, &p.Name, &description,
			&p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.CategoryID = derefStr(categoryID)
		p.Description = derefStr(description)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete remove um produto. Itens de pedidos antigos sobrevivem via snapshot.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// CategoryRepo implementação de CategoryRepository.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste uma categoria.
func (r *CategoryRepo) Create(c *entity.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO categories (id, restaurant_id, name, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.RestaurantID, c.Name, c.SortOrder, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtém uma categoria por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(), `
		SELECT id, restaurant_id, name, sort_order, created_at
		FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.RestaurantID, &c.Name, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListByRestaurant lista categorias por ordem de exibição.
func (r *CategoryRepo) ListByRestaurant(restaurantID string) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, name, sort_order, created_at
		FROM categories WHERE restaurant_id = $1 ORDER BY sort_order, name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete remove a categoria; os produtos ficam com category_id nulo (FK SET NULL).
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// AddonRepo implementação de AddonRepository.
type AddonRepo struct {
	q Querier
}

// NewAddonRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAddonRepository(q Querier) *AddonRepo {
	return &AddonRepo{q: q}
}

// Create persiste um adicional.
func (r *AddonRepo) Create(a *entity.Addon) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO addons (id, restaurant_id, name, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.RestaurantID, a.Name, a.Price, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert addon: %w", err)
	}
	return nil
}

// GetByID obtém um adicional por ID.
func (r *AddonRepo) GetByID(id string) (*entity.Addon, error) {
	var a entity.Addon
	err := r.q.QueryRow(context.Background(), `
		SELECT id, restaurant_id, name, price, active, created_at, updated_at
		FROM addons WHERE id = $1`, id,
	).Scan(&a.ID, &a.RestaurantID, &a.Name, &a.Price, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get addon: %w", err)
	}
	return &a, nil
}

// Update grava os campos mutáveis do adicional.
func (r *AddonRepo) Update(a *entity.Addon) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE addons SET name = $2, price = $3, active = $4, updated_at = $5 WHERE id = $1`,
		a.ID, a.Name, a.Price, a.Active, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update addon: %w", err)
	}
	return nil
}

// ListByRestaurant lista os adicionais do restaurante.
func (r *AddonRepo) ListByRestaurant(restaurantID string) ([]*entity.Addon, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, restaurant_id, name, price, active, created_at, updated_at
		FROM addons WHERE restaurant_id = $1 ORDER BY name`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list addons: %w", err)
	}
	defer rows.Close()
	var list []*entity.Addon
	for rows.Next() {
		var a entity.Addon
		if err := rows.Scan(&a.ID, &a.RestaurantID, &a.Name, &a.Price, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan addon: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Delete remove um adicional.
func (r *AddonRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM addons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete addon: %w", err)
	}
	return nil
}
