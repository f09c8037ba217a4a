package entity

// AuthResponse is returned by sign-in with a denormalized copy of the identity.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

type SignUpResponse struct {
	Message string `json:"message"`
}

type LikeResponse struct {
	Message string `json:"message"`
	Match   bool   `json:"match"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
