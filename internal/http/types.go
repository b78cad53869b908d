package http

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// SessionRequest is the request body for POST /api/v1/session.
type SessionRequest struct {
	AccessCode string `json:"access_code" form:"access_code"`
}

// SessionResponse reports the outcome of an access attempt.
type SessionResponse struct {
	Granted bool `json:"granted"`
}

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Messages shown to users.
const (
	msgInvalidCode  = "Invalid access code. Please try again."
	msgAuthRequired = "authentication required"
	msgContent      = "content unavailable"
)
