package checkoutController

type CreateSessionRequest struct {
	Plan string `json:"plan" binding:"required"`
}

type CreateSessionResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
