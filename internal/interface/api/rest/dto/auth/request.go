package auth

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required,max=64"`
		Password string `json:"password" validate:"required,max=72"`
	}
	LoginResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
)
