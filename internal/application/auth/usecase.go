// Package auth implementa cadastro e login. O core não depende daqui: toda
// operação recebe a identidade do tenant já resolvida (middleware JWT).
package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comanda-api/internal/application/dto"
	"github.com/jhoicas/comanda-api/internal/domain"
	"github.com/jhoicas/comanda-api/internal/domain/entity"
	"github.com/jhoicas/comanda-api/internal/domain/plan"
	"github.com/jhoicas/comanda-api/internal/domain/repository"
	"github.com/jhoicas/comanda-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticação: cadastro do restaurante, cadastro de
// usuários (assentos) e login.
type UseCase struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	jwtCfg         JWTConfig
}

// NewUseCase constrói o caso de uso.
func NewUseCase(userRepo repository.UserRepository, restaurantRepo repository.RestaurantRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{userRepo: userRepo, restaurantRepo: restaurantRepo, jwtCfg: jwtCfg}
}

// RegisterRestaurant cria o restaurante no tier FREE e o usuário dono.
func (uc *UseCase) RegisterRestaurant(in dto.RegisterRestaurantRequest) (*dto.LoginResponse, error) {
	if in.RestaurantName == "" || in.Email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	slug := in.Slug
	if slug == "" {
		slug = slugify(in.RestaurantName)
	}
	free := plan.LimitsFor(plan.TierFree)
	now := time.Now()
	restaurant := &entity.Restaurant{
		ID:         uuid.New().String(),
		Name:       in.RestaurantName,
		Slug:       slug,
		PlanTier:   plan.TierFree,
		UserLimit:  free.Users,
		TableLimit: free.Tables,
		Phone:      in.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.restaurantRepo.Create(restaurant); err != nil {
		return nil, err
	}

	owner, err := uc.createUser(restaurant.ID, in.OwnerName, in.Email, in.Password, entity.RoleDono)
	if err != nil {
		return nil, err
	}
	return uc.issueToken(owner)
}

// RegisterUser cria um usuário adicional no restaurante do chamador,
// respeitando o limite de assentos do plano.
func (uc *UseCase) RegisterUser(restaurantID string, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	restaurant, err := uc.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, domain.ErrNotFound
	}
	count, err := uc.userRepo.CountByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	if err := plan.CheckSeatLimit(restaurant, count); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role := in.Role
	if role == "" {
		role = entity.RoleGarcom
	}
	user, err := uc.createUser(restaurantID, in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login valida as credenciais e emite o JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

func (uc *UseCase) createUser(restaurantID, name, email, password, role string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.RestaurantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.ID,
		RestaurantID: u.RestaurantID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
	}
}

// slugify gera um slug simples a partir do nome ("Bar do Zé" -> "bar-do-ze").
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == 'á', r == 'à', r == 'ã', r == 'â':
			b.WriteRune('a')
			lastDash = false
		case r == 'é', r == 'ê':
			b.WriteRune('e')
			lastDash = false
		case r == 'í':
			b.WriteRune('i')
			lastDash = false
		case r == 'ó', r == 'ô', r == 'õ':
			b.WriteRune('o')
			lastDash = false
		case r == 'ú', r == 'ü':
			b.WriteRune('u')
			lastDash = false
		case r == 'ç':
			b.WriteRune('c')
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
