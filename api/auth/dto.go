package auth

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type CreateUserBody struct {
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Email           string `json:"email" validate:"required,email"`
}

type LoginUserBody struct {
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

type TokenResponse struct {
	Token      string `json:"token"`
	Expiration int    `json:"expiration"`
	User       *User  `json:"user,omitempty"`
}
