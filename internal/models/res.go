package models

// ApiResponse is the error envelope. Success payloads are returned bare: the
// frontend consumes created resources and lists directly.
type ApiResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}
