package dto

// TokenRequest represents the JSON request body for the token endpoint.
//
// @Description Client credentials exchanged for an access token
// @Example {"client_id": "storefront", "client_secret": "s3cret"}
type TokenRequest struct {
	// ClientID identifies the calling application.
	ClientID string `json:"client_id" binding:"required" example:"storefront"`
	// ClientSecret is the shared secret issued to the client.
	ClientSecret string `json:"client_secret" binding:"required" example:"s3cret"`
} // @name TokenRequest

// TokenResponse represents the JSON response body for the token endpoint.
//
// @Description Issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"900"`
} // @name TokenResponse

// Claims are the verified claims of an access token.
type Claims struct {
	ClientID string   `json:"client_id"`
	Scopes   []string `json:"scopes,omitempty"`
}

// Validate performs custom validation on the token request.
func (r *TokenRequest) Validate() error {
	if r.ClientID == "" {
		return &ValidationError{
			Field:   "client_id",
			Message: "client_id is required",
		}
	}
	if r.ClientSecret == "" {
		return &ValidationError{
			Field:   "client_secret",
			Message: "client_secret is required",
		}
	}
	return nil
}
