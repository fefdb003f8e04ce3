package dto

// AuthRequest describes login/password payload. Currency is optional and
// only honoured at registration time.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Currency string `json:"currency,omitempty"`
}
