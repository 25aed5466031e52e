package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"` // mismo texto que Message; el cliente web lee "error"
}

// NewError construye un ErrorResponse.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Error: message}
}

// MessageResponse respuesta con solo un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
