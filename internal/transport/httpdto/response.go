package httpdto

// ErrorResponse is the error body for every endpoint: a human-readable
// detail string, matching what existing clients already parse.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewErrorResponse(detail string) ErrorResponse {
	return ErrorResponse{Detail: detail}
}
