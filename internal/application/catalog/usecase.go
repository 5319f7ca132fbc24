// Package catalog implementa o CRUD do cardápio (produtos, categorias e
// adicionais). Plumbing fino: o motor de pedidos só consome leituras daqui.
package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// UseCase casos de uso do cardápio.
type UseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	addonRepo    repository.AddonRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	addonRepo repository.AddonRepository,
) *UseCase {
	return &UseCase{productRepo: productRepo, categoryRepo: categoryRepo, addonRepo: addonRepo}
}

// ── Produtos ──────────────────────────────────────────────────────────────────

// CreateProduct cria um produto ativo no cardápio.
func (uc *UseCase) CreateProduct(restaurantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil || category.RestaurantID != restaurantID {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateProduct atualização parcial. Mudar o preço não afeta pedidos já
// criados: as linhas guardam snapshot.
func (uc *UseCase) UpdateProduct(restaurantID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.ownedProduct(restaurantID, productID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct devolve um produto do restaurante.
func (uc *UseCase) GetProduct(restaurantID, productID string) (*dto.ProductResponse, error) {
	product, err := uc.ownedProduct(restaurantID, productID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListProducts lista produtos com paginação.
func (uc *UseCase) ListProducts(restaurantID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.ListByRestaurant(restaurantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Limit: page.Limit, Offset: page.Offset}, nil
}

// ── Categorias ────────────────────────────────────────────────────────────────

// CreateCategory cria uma categoria do cardápio.
func (uc *UseCase) CreateCategory(restaurantID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         in.Name,
		SortOrder:    in.SortOrder,
		CreatedAt:    time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name, SortOrder: category.SortOrder}, nil
}

// ListCategories lista as categorias do restaurante.
func (uc *UseCase) ListCategories(restaurantID string) ([]dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryResponse{ID: c.ID, Name: c.Name, SortOrder: c.SortOrder})
	}
	return items, nil
}

// DeleteCategory remove uma categoria (os produtos ficam sem categoria).
func (uc *UseCase) DeleteCategory(restaurantID, categoryID string) error {
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	if category.RestaurantID != restaurantID {
		return domain.ErrForbidden
	}
	return uc.categoryRepo.Delete(categoryID)
}

// ── Adicionais ────────────────────────────────────────────────────────────────

// CreateAddon cria um adicional ativo.
func (uc *UseCase) CreateAddon(restaurantID string, in dto.CreateAddonRequest) (*dto.AddonResponse, error) {
	if in.Name == "" || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	addon := &entity.Addon{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         in.Name,
		Price:        in.Price,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.addonRepo.Create(addon); err != nil {
		return nil, err
	}
	return toAddonResponse(addon), nil
}

// UpdateAddon atualização parcial de um adicional.
func (uc *UseCase) UpdateAddon(restaurantID, addonID string, in dto.UpdateAddonRequest) (*dto.AddonResponse, error) {
	addon, err := uc.addonRepo.GetByID(addonID)
	if err != nil {
		return nil, err
	}
	if addon == nil {
		return nil, domain.ErrNotFound
	}
	if addon.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		addon.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		addon.Price = *in.Price
	}
	if in.Active != nil {
		addon.Active = *in.Active
	}
	addon.UpdatedAt = time.Now()
	if err := uc.addonRepo.Update(addon); err != nil {
		return nil, err
	}
	return toAddonResponse(addon), nil
}

// ListAddons lista os adicionais do restaurante.
func (uc *UseCase) ListAddons(restaurantID string) ([]dto.AddonResponse, error) {
	list, err := uc.addonRepo.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AddonResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAddonResponse(a))
	}
	return items, nil
}

func (uc *UseCase) ownedProduct(restaurantID, productID string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Active:      p.Active,
	}
}

func toAddonResponse(a *entity.Addon) *dto.AddonResponse {
	return &dto.AddonResponse{ID: a.ID, Name: a.Name, Price: a.Price, Active: a.Active}
}
