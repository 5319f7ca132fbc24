package dto

// RegisterRestaurantRequest cria o restaurante e o usuário dono em um passo.
type RegisterRestaurantRequest struct {
	RestaurantName string `json:"restaurant_name"`
	Slug           string `json:"slug"`
	Phone          string `json:"phone"`
	OwnerName      string `json:"owner_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

// RegisterUserRequest cria um usuário adicional (assento) no restaurante.
type RegisterUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest credenciais de login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido no login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse usuário na resposta (sem hash de senha).
type UserResponse struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}
