package server

import (
	"github.com/rezonia/invoice-editor/internal/model"
)

// EditRequest is the body of header and item edit requests
type EditRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// StateResponse carries the invoice state after any session operation
type StateResponse struct {
	Invoice    *model.Invoice `json:"invoice"`
	Exportable bool           `json:"exportable"`
	Total      string         `json:"total"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
