// FILE: internal/pkg/serverutils/response.go
package serverutils

// Response is the standard JSON envelope for every API reply.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ErrorResponse(code int, message string) Response[ErrorBody] {
	return Response[ErrorBody]{
		Success: false,
		Message: message,
		Data:    ErrorBody{Code: code, Message: message},
	}
}
