// Package deliveryareas implementa o cadastro de áreas de entrega e expõe a
// consulta pública de taxa (usada pelo cardápio de autoatendimento).
package deliveryareas

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/delivery"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
)

// UseCase casos de uso de áreas de entrega.
type UseCase struct {
	areaRepo repository.DeliveryAreaRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(areaRepo repository.DeliveryAreaRepository) *UseCase {
	return &UseCase{areaRepo: areaRepo}
}

// Create cadastra uma área. Os CEPs são normalizados (só dígitos) e validados:
// 8 posições cada, início <= fim, taxa não negativa.
func (uc *UseCase) Create(restaurantID string, in dto.CreateDeliveryAreaRequest) (*dto.DeliveryAreaResponse, error) {
	start := delivery.NormalizeCEP(in.CEPStart)
	end := delivery.NormalizeCEP(in.CEPEnd)
	if in.Name == "" || len(start) != 8 || len(end) != 8 || start > end {
		return nil, domain.ErrInvalidInput
	}
	if in.Fee.IsNegative() || in.MinOrder.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	area := &entity.DeliveryArea{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         in.Name,
		CEPStart:     start,
		CEPEnd:       end,
		Fee:          in.Fee,
		MinOrder:     in.MinOrder,
		CreatedAt:    time.Now(),
	}
	if err := uc.areaRepo.Create(area); err != nil {
		return nil, err
	}
	return toAreaResponse(area), nil
}

// List lista as áreas na ordem de cadastro (a ordem define a precedência).
func (uc *UseCase) List(restaurantID string) ([]dto.DeliveryAreaResponse, error) {
	list, err := uc.areaRepo.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryAreaResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAreaResponse(a))
	}
	return items, nil
}

// Delete remove uma área do restaurante.
func (uc *UseCase) Delete(restaurantID, areaID string) error {
	area, err := uc.areaRepo.GetByID(areaID)
	if err != nil {
		return err
	}
	if area == nil {
		return domain.ErrNotFound
	}
	if area.RestaurantID != restaurantID {
		return domain.ErrForbidden
	}
	return uc.areaRepo.Delete(areaID)
}

// QuoteFee resolve a taxa de entrega para um CEP. CEP inválido e ausência de
// cobertura são respostas normais (Covered=false), nunca erro HTTP.
func (uc *UseCase) QuoteFee(restaurantID, rawCEP string) (*dto.FeeQuoteResponse, error) {
	areas, err := uc.areaRepo.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	quote, res := delivery.ResolveFee(areas, rawCEP)
	switch res {
	case delivery.ResolutionInvalidCode:
		return &dto.FeeQuoteResponse{Covered: false, Reason: "invalid_cep"}, nil
	case delivery.ResolutionNoCoverage:
		return &dto.FeeQuoteResponse{Covered: false, Reason: "no_coverage"}, nil
	default:
		return &dto.FeeQuoteResponse{
			Covered:  true,
			AreaName: quote.Area.Name,
			Fee:      quote.Fee,
			MinOrder: quote.Area.MinOrder,
		}, nil
	}
}

func toAreaResponse(a *entity.DeliveryArea) *dto.DeliveryAreaResponse {
	return &dto.DeliveryAreaResponse{
		ID:       a.ID,
		Name:     a.Name,
		CEPStart: a.CEPStart,
		CEPEnd:   a.CEPEnd,
		Fee:      a.Fee,
		MinOrder: a.MinOrder,
	}
}
