package api

// AdminLoginRequest carries the shared admin PIN.
type AdminLoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// AdminLoginResponse returns the bearer token for admin endpoints.
type AdminLoginResponse struct {
	Token string `json:"token"`
}
