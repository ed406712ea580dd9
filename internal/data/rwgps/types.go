package rwgps

import "github.com/penwyp/go-eddington/internal/core/model"

// tripsResponse is the envelope of GET /trips.json.
type tripsResponse struct {
	Trips []model.Trip `json:"trips"`
	Meta  struct {
		Pagination struct {
			PageCount   int `json:"page_count"`
			RecordCount int `json:"record_count"`
		} `json:"pagination"`
	} `json:"meta"`
}

// authRequest is the body of POST /auth_tokens.json.
type authRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

// authResponse is the envelope of POST /auth_tokens.json.
type authResponse struct {
	AuthToken struct {
		AuthToken string `json:"auth_token"`
	} `json:"auth_token"`
}
