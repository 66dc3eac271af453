package httpdto

// MessageResponse acknowledges a write. Warning is set when a secondary,
// best-effort step failed while the primary write went through.
type MessageResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewErrorResponse(err string) ErrorResponse {
	return ErrorResponse{Error: err}
}
