package dto

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"admin"`
	Password string `json:"password" binding:"required" example:"changeme"`
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"28800"`
	Campus      string `json:"campus" example:"twon"`
	Username    string `json:"username" example:"admin"`
}
